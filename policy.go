package fishka

import (
	"github.com/dnikiforova/fishka/deck"
)

// choosePlay is the decision policy for non-human seats: an ordered pure
// heuristic, not a search. Preference order is a card matching the governing
// suit, then a card matching the top card's rank, then any legal card. Under
// attack every legal card is necessarily a Two, so the first one found is
// played. Returns false when the hand holds no legal card, which means the
// player must draw.
func choosePlay(hand []deck.Card, top deck.Card, hasTop bool, activeSuit deck.Suit, attackStack int) (int, bool) {
	legal := legalMoves(hand, top, hasTop, activeSuit, attackStack)
	if len(legal) == 0 {
		return 0, false
	}

	if attackStack > 0 {
		return legal[0], true
	}

	for _, i := range legal {
		if hand[i].Suit == activeSuit {
			return i, true
		}
	}

	for _, i := range legal {
		if hand[i].Rank == top.Rank {
			return i, true
		}
	}

	return legal[0], true
}

// chooseSuit picks the suit for a played Jack: the one most frequent in the
// remaining hand, ties broken by the fixed suit precedence order.
func chooseSuit(hand []deck.Card) deck.Suit {
	counts := map[deck.Suit]int{}
	for _, c := range hand {
		counts[c.Suit]++
	}

	best := deck.Clubs
	for _, suit := range deck.Suits() {
		if counts[suit] > counts[best] {
			best = suit
		}
	}
	return best
}
