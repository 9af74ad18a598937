package protocol

import (
	"github.com/dnikiforova/fishka/deck"
)

// InboundMessage is an intent from the human player to the game engine.
// CardID accompanies PlayCard, Suit accompanies ChooseSuit.
type InboundMessage struct {
	Command Cmd    `json:"command"`
	CardID  string `json:"cardID,omitempty"`
	Suit    string `json:"suit,omitempty"`
}

// OutboundMessage is a message from the game engine to the human player.
type OutboundMessage struct {
	Command Cmd           `json:"command"`
	State   *GameSnapshot `json:"state,omitempty"`
	Error   string        `json:"error,omitempty"`
}

// Opponent is a representation of an opponent player. Only the hand size is
// visible.
type Opponent struct {
	Seat     string `json:"seat"`
	Name     string `json:"name"`
	HandSize int    `json:"handSize"`
}

// GameSnapshot is the full view of a game from one player's seat, plus the
// append-only narrated event log.
type GameSnapshot struct {
	DeckCount          int         `json:"deckCount"`
	PileCount          int         `json:"pileCount"`
	TopCard            *deck.Card  `json:"topCard,omitempty"`
	Hand               []deck.Card `json:"hand"`
	Opponents          []Opponent  `json:"opponents,omitempty"`
	CurrentTurn        string      `json:"currentTurn"`
	ActiveSuit         string      `json:"activeSuit"`
	AttackStack        int         `json:"attackStack"`
	AwaitingSuitChoice bool        `json:"awaitingSuitChoice"`
	Stage              string      `json:"stage"`
	Winner             string      `json:"winner,omitempty"`
	Events             []string    `json:"events"`
}
