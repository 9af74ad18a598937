// Package fishka implements the rules of Fishka, a four-player shedding card
// game in the Crazy Eights family. One deck, eight cards each, and three
// special ranks: Aces skip the next player, Twos stack a two-card draw
// penalty onto the next player, and Jacks let the player name the suit that
// governs play. First empty hand wins.
package fishka

import (
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/dnikiforova/fishka/deck"
	"github.com/dnikiforova/fishka/protocol"
)

var (
	ErrGameOver            = errors.New("the game is over")
	ErrNotStarted          = errors.New("game has not started")
	ErrNotYourTurn         = errors.New("not this player's turn")
	ErrSuitChoicePending   = errors.New("a suit choice is pending")
	ErrNoSuitChoicePending = errors.New("no suit choice is pending")
	ErrCardNotHeld         = errors.New("player does not hold that card")
	ErrIllegalMove         = errors.New("illegal move")
	ErrAlreadyStarted      = errors.New("game has already started")
)

// Seat identifies one of the four fixed positions at the table. Turn order
// is the cyclic sequence South, West, North, East.
type Seat int

const (
	South Seat = iota
	West
	North
	East
)

const numSeats = 4

var seatNames = []string{"South", "West", "North", "East"}

func (s Seat) String() string {
	return seatNames[s]
}

// next returns the seat whose turn follows s. A skip advances two positions
// instead of one.
func (s Seat) next(skip bool) Seat {
	steps := 1
	if skip {
		steps = 2
	}
	return Seat((int(s) + steps) % numSeats)
}

// Stage represents the states of the turn machine
type Stage int

const (
	Dealing Stage = iota
	AwaitingHumanMove
	AwaitingAIMove
	AwaitingSuitChoice
	Terminal
)

var stageNames = []string{"Dealing", "AwaitingHumanMove", "AwaitingAIMove", "AwaitingSuitChoice", "Terminal"}

func (s Stage) String() string {
	return stageNames[s]
}

const handSize = 8

// maxPolicyTurns bounds the AI loop. A well-formed 52-card game ends far
// sooner; the cap only matters for synthetic stuck configurations.
const maxPolicyTurns = 4096

// Game is the authoritative state of a single game: deck, discard pile, four
// hands, turn order, governing suit, pending attack penalty and winner. All
// mutation goes through Start, PlayCard, Draw, ChooseSuit and RunAITurns;
// illegal or out-of-turn actions are rejected without mutating anything.
type Game struct {
	deck        deck.Deck
	pile        []deck.Card
	hands       map[Seat][]deck.Card
	humans      map[Seat]bool
	names       map[Seat]string
	currentTurn Seat
	activeSuit  deck.Suit
	attackStack int
	stage       Stage
	winner      Seat
	turnsTaken  int
	events      []string
	rng         *rand.Rand
}

// GameOpts allows a game to be constructed mid-state. Zero-value fields fall
// back to a fresh, undealt game; tests use the rest to seed synthetic decks,
// piles and hands.
type GameOpts struct {
	Deck        deck.Deck
	Pile        []deck.Card
	Hands       map[Seat][]deck.Card
	Humans      map[Seat]bool
	Names       map[Seat]string
	CurrentTurn Seat
	ActiveSuit  deck.Suit
	AttackStack int
	Stage       Stage
	Rng         *rand.Rand
}

// NewGame constructs a game of Fishka. By default South is the human seat
// and the other three are played by the decision policy; pass Humans
// explicitly (possibly empty) to override.
func NewGame(opts GameOpts) *Game {
	g := &Game{
		deck:        opts.Deck,
		pile:        opts.Pile,
		hands:       opts.Hands,
		humans:      opts.Humans,
		names:       opts.Names,
		currentTurn: opts.CurrentTurn,
		activeSuit:  opts.ActiveSuit,
		attackStack: opts.AttackStack,
		stage:       opts.Stage,
		rng:         opts.Rng,
	}

	if g.deck == nil {
		g.deck = deck.New()
	}
	if g.pile == nil {
		g.pile = []deck.Card{}
	}
	if g.hands == nil {
		g.hands = map[Seat][]deck.Card{}
	}
	if g.humans == nil {
		g.humans = map[Seat]bool{South: true}
	}
	if g.names == nil {
		g.names = map[Seat]string{}
	}
	for seat := South; seat < numSeats; seat++ {
		if _, ok := g.names[seat]; ok {
			continue
		}
		if g.humans[seat] {
			g.names[seat] = "You"
		} else {
			g.names[seat] = fmt.Sprintf("%s AI", seat)
		}
	}
	if g.rng == nil {
		g.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	// When hands are seeded directly the turn machine is already live.
	if opts.Stage == Dealing && opts.Hands != nil {
		g.stage = g.stageFor(g.currentTurn)
	}

	return g
}

// Start shuffles the deck, deals eight cards round-robin to each seat and
// flips one card to open the discard pile. A flipped Two opens the attack
// stack at 2, so the first player must answer it straight away.
func (g *Game) Start() error {
	if g.stage != Dealing {
		return ErrAlreadyStarted
	}

	g.deck = g.deck.Shuffle(g.rng)

	for i := 0; i < handSize; i++ {
		for seat := South; seat < numSeats; seat++ {
			g.hands[seat] = append(g.hands[seat], g.deck.Deal(1)...)
		}
	}

	flipped := g.deck.Deal(1)[0]
	g.pile = append(g.pile, flipped)
	g.activeSuit = flipped.Suit
	g.logf("Dealt %d cards to each player. %s opens the pile.", handSize, flipped)

	if flipped.Rank == deck.Two {
		g.attackStack = 2
		g.logf("The flipped Two opens an attack of 2.")
	}

	g.stage = g.stageFor(g.currentTurn)
	return nil
}

// PlayCard plays the card with the given ID from seat's hand. The whole
// transition is atomic: on any rejection the game is untouched.
func (g *Game) PlayCard(seat Seat, cardID string) error {
	if g.stage == Dealing {
		return ErrNotStarted
	}
	if g.stage == Terminal {
		return ErrGameOver
	}
	if g.stage == AwaitingSuitChoice {
		return ErrSuitChoicePending
	}
	if seat != g.currentTurn {
		return ErrNotYourTurn
	}

	idx := -1
	for i, c := range g.hands[seat] {
		if c.ID() == cardID {
			idx = i
			break
		}
	}
	if idx == -1 {
		return ErrCardNotHeld
	}

	card := g.hands[seat][idx]
	top, hasTop := g.topOfPile()
	if !isValidMove(card, top, hasTop, g.activeSuit, g.attackStack) {
		return ErrIllegalMove
	}

	g.hands[seat] = append(g.hands[seat][:idx], g.hands[seat][idx+1:]...)
	g.pile = append(g.pile, card)
	g.logf("%s played %s.", g.names[seat], card)

	// The instant a hand empties the game is over; a Jack played as the
	// last card wins without a suit choice.
	if g.checkWin(seat) {
		return nil
	}

	effect := effectOf(card)

	if effect.attackDelta > 0 {
		g.attackStack += effect.attackDelta
		g.logf("The attack rises to %d.", g.attackStack)
	}

	if effect.suitChoiceRequired {
		g.stage = AwaitingSuitChoice
		if !g.humans[seat] {
			return g.ChooseSuit(seat, chooseSuit(g.hands[seat]))
		}
		return nil
	}

	if effect.skip {
		g.logf("%s was skipped.", g.names[seat.next(false)])
	}

	g.activeSuit = effect.nextSuit
	g.advanceTurn(effect.skip)
	return nil
}

// Draw makes seat draw the owed amount: the full attack stack if one is
// pending, otherwise a single card. Drawing never grants another action; the
// turn passes regardless of what was drawn.
func (g *Game) Draw(seat Seat) error {
	if g.stage == Dealing {
		return ErrNotStarted
	}
	if g.stage == Terminal {
		return ErrGameOver
	}
	if g.stage == AwaitingSuitChoice {
		return ErrSuitChoicePending
	}
	if seat != g.currentTurn {
		return ErrNotYourTurn
	}

	owed := 1
	attacked := g.attackStack > 0
	if attacked {
		owed = g.attackStack
	}

	drawn := g.drawN(owed)
	g.hands[seat] = append(g.hands[seat], drawn...)

	switch {
	case attacked:
		g.attackStack = 0
		g.logf("%s drew %d cards to pay the attack.", g.names[seat], len(drawn))
	case len(drawn) == 0:
		g.logf("%s had nothing to draw.", g.names[seat])
	default:
		g.logf("%s drew a card.", g.names[seat])
	}

	g.checkWin(seat)
	g.advanceTurn(false)
	return nil
}

// ChooseSuit resolves a pending Jack by naming the suit that governs play
// next. Only valid for the player who played the Jack.
func (g *Game) ChooseSuit(seat Seat, suit deck.Suit) error {
	if g.stage == Terminal {
		return ErrGameOver
	}
	if g.stage != AwaitingSuitChoice {
		return ErrNoSuitChoicePending
	}
	if seat != g.currentTurn {
		return ErrNotYourTurn
	}

	g.activeSuit = suit
	g.logf("%s chose %s.", g.names[seat], suit)
	g.advanceTurn(false)
	return nil
}

// RunAITurns lets the decision policy act for every consecutive non-human
// turn, stopping at a human turn or the end of the game.
func (g *Game) RunAITurns() {
	for turns := 0; g.stage == AwaitingAIMove && turns < maxPolicyTurns; turns++ {
		seat := g.currentTurn
		hand := g.hands[seat]
		top, hasTop := g.topOfPile()

		idx, ok := choosePlay(hand, top, hasTop, g.activeSuit, g.attackStack)
		if !ok {
			g.Draw(seat)
			continue
		}
		g.PlayCard(seat, hand[idx].ID())
	}
}

// Snapshot renders the game as seen from viewer's seat: their own cards in
// full, everyone else's hand sizes only.
func (g *Game) Snapshot(viewer Seat) protocol.GameSnapshot {
	hand := make([]deck.Card, len(g.hands[viewer]))
	copy(hand, g.hands[viewer])

	events := make([]string, len(g.events))
	copy(events, g.events)

	snapshot := protocol.GameSnapshot{
		DeckCount:          len(g.deck),
		PileCount:          len(g.pile),
		Hand:               hand,
		CurrentTurn:        g.currentTurn.String(),
		ActiveSuit:         g.activeSuit.String(),
		AttackStack:        g.attackStack,
		AwaitingSuitChoice: g.stage == AwaitingSuitChoice,
		Stage:              g.stage.String(),
		Events:             events,
	}

	if top, ok := g.topOfPile(); ok {
		topCard := top
		snapshot.TopCard = &topCard
	}

	for seat := viewer.next(false); seat != viewer; seat = seat.next(false) {
		snapshot.Opponents = append(snapshot.Opponents, protocol.Opponent{
			Seat:     seat.String(),
			Name:     g.names[seat],
			HandSize: len(g.hands[seat]),
		})
	}

	if g.stage == Terminal {
		snapshot.Winner = g.names[g.winner]
	}

	return snapshot
}

// Stage returns the current stage of the turn machine.
func (g *Game) Stage() Stage {
	return g.stage
}

// Winner returns the winning seat once the game is terminal.
func (g *Game) Winner() (Seat, bool) {
	return g.winner, g.stage == Terminal
}

// Turns returns the number of turns taken so far.
func (g *Game) Turns() int {
	return g.turnsTaken
}

// Name returns the display name of a seat.
func (g *Game) Name(seat Seat) string {
	return g.names[seat]
}

func (g *Game) topOfPile() (deck.Card, bool) {
	if len(g.pile) == 0 {
		return deck.Card{}, false
	}
	return g.pile[len(g.pile)-1], true
}

func (g *Game) stageFor(seat Seat) Stage {
	if g.humans[seat] {
		return AwaitingHumanMove
	}
	return AwaitingAIMove
}

func (g *Game) advanceTurn(skip bool) {
	g.turnsTaken++
	g.currentTurn = g.currentTurn.next(skip)
	g.stage = g.stageFor(g.currentTurn)
}

// checkWin runs after every hand mutation. The first empty hand ends the
// game on the spot; nothing is processed afterwards.
func (g *Game) checkWin(seat Seat) bool {
	if len(g.hands[seat]) > 0 {
		return false
	}
	g.winner = seat
	g.stage = Terminal
	g.logf("%s wins!", g.names[seat])
	return true
}

func (g *Game) logf(format string, args ...interface{}) {
	g.events = append(g.events, fmt.Sprintf(format, args...))
}
