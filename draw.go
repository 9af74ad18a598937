package fishka

import (
	"github.com/dnikiforova/fishka/deck"
)

// drawOne produces a single card for the current draw, recycling the discard
// pile into a fresh deck when the draw pile is exhausted. The reshuffle sets
// the top discard card aside and it alone remains on the pile afterwards, so
// the active suit and rank context are unaffected.
//
// Returns false if no card can be produced (deck empty and fewer than two
// cards on the pile). Structurally unreachable in a full 52-card game, but
// callers get an inert result instead of a crash.
func (g *Game) drawOne() (deck.Card, bool) {
	if len(g.deck) == 0 {
		if len(g.pile) <= 1 {
			return deck.Card{}, false
		}
		top := g.pile[len(g.pile)-1]
		rest := deck.Deck(g.pile[:len(g.pile)-1])
		g.deck = rest.Shuffle(g.rng)
		g.pile = []deck.Card{top}
		g.logf("The discard pile was shuffled into a new deck.")
	}

	dealt := g.deck.Deal(1)
	return dealt[0], true
}

// drawN performs the draw primitive n times in sequence, stopping early
// without error if the supply runs out.
func (g *Game) drawN(n int) []deck.Card {
	drawn := []deck.Card{}
	for i := 0; i < n; i++ {
		card, ok := g.drawOne()
		if !ok {
			break
		}
		drawn = append(drawn, card)
	}
	return drawn
}
