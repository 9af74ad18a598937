package deck

import (
	"math/rand"
)

// Deck represents a deck of cards. The last element is the top.
type Deck []Card

// New creates the canonical 52-card deck, one of each (suit, rank) pair, in a
// fixed order. No randomness is involved.
func New() Deck {
	cards := make(Deck, 0, 52)
	for _, suit := range Suits() {
		for rank := Ace; rank <= King; rank++ {
			cards = append(cards, NewCard(rank, suit))
		}
	}
	return cards
}

// Shuffle returns a new deck containing the same cards in uniform random
// order (Fisher-Yates from the end). The receiver is not mutated.
func (d Deck) Shuffle(r *rand.Rand) Deck {
	shuffled := make(Deck, len(d))
	copy(shuffled, d)
	for i := len(shuffled) - 1; i > 0; i-- {
		j := r.Intn(i + 1)
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	}
	return shuffled
}

// Deal deals n cards from the top of the deck, until it is empty
func (d *Deck) Deal(n int) []Card {
	numCardsInDeck := len(*d)
	if n < 0 {
		return []Card{}
	}
	if n > numCardsInDeck {
		n = numCardsInDeck
	}
	startingIndex := numCardsInDeck - n
	subSlice := (*d)[startingIndex:numCardsInDeck]
	*d = (*d)[:startingIndex]
	return subSlice
}
