package fishka

import (
	"github.com/dnikiforova/fishka/deck"
)

// isValidMove reports whether card may legally be played given the current
// top of the discard pile, the governing suit and the pending attack stack.
// It is a pure predicate with no side effects.
//
// While an attack is pending only a Two answers it; no other rank, Jack
// included, may be played. Otherwise a Jack is always legal, and any other
// card is legal if its suit matches the governing suit or its rank matches
// the top card. The governing suit may differ from the top card's printed
// suit after a Jack, so suit matching is never done against the top card.
func isValidMove(card, top deck.Card, hasTop bool, activeSuit deck.Suit, attackStack int) bool {
	if !hasTop {
		return false
	}
	if attackStack > 0 {
		return card.Rank == deck.Two
	}
	if card.Rank == deck.Jack {
		return true
	}
	return card.Suit == activeSuit || card.Rank == top.Rank
}

// legalMoves returns the indices of every card in hand that isValidMove
// accepts, in hand order.
func legalMoves(hand []deck.Card, top deck.Card, hasTop bool, activeSuit deck.Suit, attackStack int) []int {
	moves := []int{}
	for i, c := range hand {
		if isValidMove(c, top, hasTop, activeSuit, attackStack) {
			moves = append(moves, i)
		}
	}
	return moves
}

// playEffect is the pure outcome of playing a card: the suit that governs
// next, whether the following player is skipped, how much the attack stack
// grows, and whether the player still owes a suit choice.
type playEffect struct {
	nextSuit           deck.Suit
	suitChoiceRequired bool
	skip               bool
	attackDelta        int
}

// effectOf computes the effect of playing card. It never mutates game state;
// applying the effect is the state machine's job.
func effectOf(card deck.Card) playEffect {
	switch card.Rank {
	case deck.Ace:
		return playEffect{nextSuit: card.Suit, skip: true}
	case deck.Two:
		return playEffect{nextSuit: card.Suit, attackDelta: 2}
	case deck.Jack:
		return playEffect{suitChoiceRequired: true}
	default:
		return playEffect{nextSuit: card.Suit}
	}
}
