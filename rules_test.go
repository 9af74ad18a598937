package fishka

import (
	"testing"

	"github.com/dnikiforova/fishka/deck"
	utils "github.com/dnikiforova/fishka/internal"
)

func TestIsValidMove(t *testing.T) {
	t.Run("nothing is legal without a top card", func(t *testing.T) {
		for _, card := range deck.New() {
			if isValidMove(card, deck.Card{}, false, deck.Hearts, 0) {
				t.Errorf("%s should not be playable on an empty pile", card)
			}
		}
	})

	t.Run("only a Two answers an attack", func(t *testing.T) {
		top := deck.NewCard(deck.Two, deck.Hearts)

		for _, card := range deck.New() {
			got := isValidMove(card, top, true, deck.Hearts, 2)
			want := card.Rank == deck.Two
			if got != want {
				t.Errorf("%s under attack: got %v, want %v", card, got, want)
			}
		}
	})

	t.Run("a Jack is always legal outside an attack", func(t *testing.T) {
		tops := []deck.Card{
			deck.NewCard(deck.Three, deck.Clubs),
			deck.NewCard(deck.King, deck.Spades),
			deck.NewCard(deck.Jack, deck.Hearts),
		}

		for _, top := range tops {
			for _, suit := range deck.Suits() {
				jack := deck.NewCard(deck.Jack, deck.Diamonds)
				utils.AssertTrue(t, isValidMove(jack, top, true, suit, 0))
			}
		}
	})

	t.Run("suit and rank matching", func(t *testing.T) {
		// The governing suit is Spades even though the top card shows
		// Hearts, as after a Jack.
		top := deck.NewCard(deck.King, deck.Hearts)
		activeSuit := deck.Spades

		cases := []struct {
			name string
			card deck.Card
			want bool
		}{
			{"matches the governing suit", deck.NewCard(deck.Three, deck.Spades), true},
			{"matches the top card's rank", deck.NewCard(deck.King, deck.Diamonds), true},
			{"matches the top card's printed suit only", deck.NewCard(deck.Three, deck.Hearts), false},
			{"matches neither", deck.NewCard(deck.Nine, deck.Clubs), false},
		}

		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				utils.AssertEqual(t, isValidMove(tc.card, top, true, activeSuit, 0), tc.want)
			})
		}
	})
}

func TestLegalMoves(t *testing.T) {
	top := deck.NewCard(deck.Seven, deck.Clubs)
	hand := []deck.Card{
		deck.NewCard(deck.Nine, deck.Hearts),  // no match
		deck.NewCard(deck.Four, deck.Clubs),   // suit match
		deck.NewCard(deck.Seven, deck.Spades), // rank match
		deck.NewCard(deck.Jack, deck.Hearts),  // wildcard
	}

	t.Run("no attack", func(t *testing.T) {
		utils.AssertDeepEqual(t, legalMoves(hand, top, true, deck.Clubs, 0), []int{1, 2, 3})
	})

	t.Run("under attack", func(t *testing.T) {
		utils.AssertDeepEqual(t, legalMoves(hand, top, true, deck.Clubs, 4), []int{})
	})

	t.Run("empty hand", func(t *testing.T) {
		utils.AssertDeepEqual(t, legalMoves(nil, top, true, deck.Clubs, 0), []int{})
	})
}

func TestEffectOf(t *testing.T) {
	cases := []struct {
		name string
		card deck.Card
		want playEffect
	}{
		{
			"Ace skips the next player",
			deck.NewCard(deck.Ace, deck.Hearts),
			playEffect{nextSuit: deck.Hearts, skip: true},
		},
		{
			"Two raises the attack",
			deck.NewCard(deck.Two, deck.Spades),
			playEffect{nextSuit: deck.Spades, attackDelta: 2},
		},
		{
			"Jack owes a suit choice",
			deck.NewCard(deck.Jack, deck.Diamonds),
			playEffect{suitChoiceRequired: true},
		},
		{
			"ordinary rank carries its own suit",
			deck.NewCard(deck.Nine, deck.Clubs),
			playEffect{nextSuit: deck.Clubs},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			utils.AssertEqual(t, effectOf(tc.card), tc.want)
		})
	}
}
