package deck

import (
	"encoding/json"
	"fmt"
)

// Rank represents a rank in a deck of cards
type Rank int

var rankNames = []string{"Ace", "Two", "Three", "Four", "Five", "Six", "Seven", "Eight", "Nine", "Ten", "Jack", "Queen", "King"}
var rankSymbols = []string{"A", "2", "3", "4", "5", "6", "7", "8", "9", "10", "J", "Q", "K"}

const (
	Ace Rank = iota
	Two
	Three
	Four
	Five
	Six
	Seven
	Eight
	Nine
	Ten
	Jack
	Queen
	King
)

func (r Rank) String() string {
	return rankNames[r]
}

// Suit represents a suit in a deck of cards.
// The declaration order doubles as the fixed precedence order for tie-breaks.
type Suit int

var suitNames = []string{"Clubs", "Diamonds", "Hearts", "Spades"}
var suitSymbols = []string{"C", "D", "H", "S"}

const (
	Clubs Suit = iota
	Diamonds
	Hearts
	Spades
)

func (s Suit) String() string {
	return suitNames[s]
}

// Suits lists all four suits in precedence order.
func Suits() []Suit {
	return []Suit{Clubs, Diamonds, Hearts, Spades}
}

// SuitFromName maps a suit name back to its Suit. The second return value is
// false for unknown names.
func SuitFromName(name string) (Suit, bool) {
	for i, n := range suitNames {
		if n == name {
			return Suit(i), true
		}
	}
	return 0, false
}

// Card represents a playing card. It is an immutable value; its identity is
// the ID derived from its rank and suit.
type Card struct {
	Rank Rank
	Suit Suit
}

// NewCard constructs a card. Panics if rank or suit is out of range.
func NewCard(rank Rank, suit Suit) Card {
	if rank < Ace || rank > King || suit < Clubs || suit > Spades {
		panic(fmt.Sprintf("card out of range: rank %d, suit %d", rank, suit))
	}
	return Card{Rank: rank, Suit: suit}
}

// ID returns the card's stable unique identifier, e.g. "2H" or "10C".
func (c Card) ID() string {
	return rankSymbols[c.Rank] + suitSymbols[c.Suit]
}

func (c Card) String() string {
	return fmt.Sprintf("%s of %s", rankNames[c.Rank], suitNames[c.Suit])
}

// FromID resolves a card ID back to its Card.
func FromID(id string) (Card, error) {
	if len(id) < 2 {
		return Card{}, fmt.Errorf("malformed card ID %q", id)
	}
	rankSym, suitSym := id[:len(id)-1], id[len(id)-1:]
	for r, rs := range rankSymbols {
		if rs != rankSym {
			continue
		}
		for s, ss := range suitSymbols {
			if ss == suitSym {
				return Card{Rank: Rank(r), Suit: Suit(s)}, nil
			}
		}
	}
	return Card{}, fmt.Errorf("unknown card ID %q", id)
}

type cardJSON struct {
	ID   string `json:"id"`
	Rank string `json:"rank"`
	Suit string `json:"suit"`
}

// MarshalJSON serialises a card with its ID alongside readable rank and suit
// names, so clients can echo the ID back in play requests.
func (c Card) MarshalJSON() ([]byte, error) {
	return json.Marshal(cardJSON{ID: c.ID(), Rank: c.Rank.String(), Suit: c.Suit.String()})
}

// UnmarshalJSON restores a card from its ID.
func (c *Card) UnmarshalJSON(b []byte) error {
	var cj cardJSON
	if err := json.Unmarshal(b, &cj); err != nil {
		return err
	}
	card, err := FromID(cj.ID)
	if err != nil {
		return err
	}
	*c = card
	return nil
}
