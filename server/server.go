// Package server exposes a game of Fishka over HTTP and websockets. It is a
// thin presentation adapter: every rule lives in the engine, and illegal or
// out-of-turn intents are dropped silently rather than surfaced as faults.
package server

import (
	"encoding/json"
	"errors"
	"math/rand"
	"net/http"

	"github.com/gorilla/handlers"
	"github.com/gorilla/websocket"
	uuid "github.com/satori/go.uuid"
	"github.com/sirupsen/logrus"

	"github.com/dnikiforova/fishka"
	"github.com/dnikiforova/fishka/deck"
	"github.com/dnikiforova/fishka/protocol"
	"github.com/dnikiforova/fishka/results"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

type NewGameReq struct {
	Name string `json:"name"`
}

type NewGameRes struct {
	GameID   string `json:"game_id"`
	PlayerID string `json:"player_id"`
	Name     string `json:"name"`
}

// GameServer is a game server
type GameServer struct {
	store   fishka.GameStore
	results *results.Store
	log     *logrus.Logger

	// Seed, when non-zero, makes every deal reproducible.
	Seed int64

	http.Server
}

func NewID() string {
	return uuid.NewV4().String()
}

func NewGameID() string {
	letters := []byte("ABCDEFGHIJKLMNOPQRSTUVWXYZ")
	code := make([]byte, 6)
	for i := range code {
		code[i] = letters[rand.Intn(len(letters))]
	}
	return string(code)
}

// NewServer creates a new GameServer. resultsStore may be nil, in which case
// finished games are not recorded.
func NewServer(store fishka.GameStore, resultsStore *results.Store, log *logrus.Logger) *GameServer {
	if log == nil {
		log = logrus.New()
	}

	s := &GameServer{
		store:   store,
		results: resultsStore,
		log:     log,
	}

	router := http.NewServeMux()
	router.Handle("/new", http.HandlerFunc(s.HandleNewGame))
	router.Handle("/state", http.HandlerFunc(s.HandleState))
	router.Handle("/leaderboard", http.HandlerFunc(s.HandleLeaderboard))
	router.Handle("/ws", http.HandlerFunc(s.HandleWS))

	s.Handler = handlers.CORS(handlers.AllowedOrigins([]string{"*"}))(
		handlers.LoggingHandler(log.Writer(), router),
	)

	return s
}

// ServeHTTP serves http
func (g *GameServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	g.Handler.ServeHTTP(w, r)
}

func (g *GameServer) newGame(name string) *fishka.GameSession {
	opts := fishka.GameOpts{
		Names: map[fishka.Seat]string{fishka.South: name},
	}
	if g.Seed != 0 {
		opts.Rng = rand.New(rand.NewSource(g.Seed))
	}

	game := fishka.NewGame(opts)
	if err := game.Start(); err != nil {
		g.log.WithError(err).Error("could not start game")
	}

	return &fishka.GameSession{
		GameID:     NewGameID(),
		PlayerID:   NewID(),
		PlayerName: name,
		Game:       game,
	}
}

// HandleNewGame handles a request to create a new game
func (g *GameServer) HandleNewGame(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusNotFound)
		return
	}

	var data NewGameReq
	err := json.NewDecoder(r.Body).Decode(&data)
	defer r.Body.Close()
	if err != nil || data.Name == "" {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte("missing player name"))
		return
	}

	session := g.newGame(data.Name)
	if err := g.store.AddGame(session); err != nil {
		g.log.WithError(err).Error("could not store game")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	payload := NewGameRes{
		GameID:   session.GameID,
		PlayerID: session.PlayerID,
		Name:     data.Name,
	}

	w.Header().Add("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(payload)
}

// HandleState returns the player's current view of the game, for polling
// clients.
func (g *GameServer) HandleState(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusNotFound)
		return
	}

	session, ok := g.findSession(w, r)
	if !ok {
		return
	}

	session.Mu.Lock()
	snapshot := session.Game.Snapshot(fishka.South)
	session.Mu.Unlock()

	w.Header().Add("Content-Type", "application/json")
	json.NewEncoder(w).Encode(snapshot)
}

// HandleLeaderboard returns win counts over all finished games.
func (g *GameServer) HandleLeaderboard(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	if g.results == nil {
		w.WriteHeader(http.StatusNotFound)
		return
	}

	stats, err := g.results.Leaderboard()
	if err != nil {
		g.log.WithError(err).Error("could not read leaderboard")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Add("Content-Type", "application/json")
	json.NewEncoder(w).Encode(stats)
}

// HandleWS upgrades to a websocket, streams snapshots and accepts intents.
func (g *GameServer) HandleWS(w http.ResponseWriter, r *http.Request) {
	session, ok := g.findSession(w, r)
	if !ok {
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		g.log.WithError(err).Error("could not upgrade to websocket")
		return
	}
	defer conn.Close()

	g.sendState(conn, session)

	for {
		var msg protocol.InboundMessage
		if err := conn.ReadJSON(&msg); err != nil {
			g.log.WithError(err).Debug("websocket closed")
			return
		}

		if err := g.apply(session, msg); err != nil {
			if err := g.sendError(conn, err); err != nil {
				return
			}
			continue
		}
		if err := g.sendState(conn, session); err != nil {
			return
		}
	}
}

var (
	errUnknownCommand = errors.New("unknown command")
	errUnknownSuit    = errors.New("unknown suit")
)

// apply runs one intent against the session's game and then lets the AI
// seats act. Engine rejections are logged and swallowed, the contract being
// reject, don't crash; only malformed intents the engine never sees (an
// unknown command or suit name) are returned for an Error frame.
func (g *GameServer) apply(session *fishka.GameSession, msg protocol.InboundMessage) error {
	session.Mu.Lock()
	defer session.Mu.Unlock()

	_, wasOver := session.Game.Winner()

	var err error
	switch msg.Command {
	case protocol.PlayCard:
		err = session.Game.PlayCard(fishka.South, msg.CardID)
	case protocol.DrawCard:
		err = session.Game.Draw(fishka.South)
	case protocol.ChooseSuit:
		suit, known := deck.SuitFromName(msg.Suit)
		if !known {
			g.log.WithField("suit", msg.Suit).Debug("unknown suit")
			return errUnknownSuit
		}
		err = session.Game.ChooseSuit(fishka.South, suit)
	case protocol.NewGame:
		fresh := g.newGame(session.PlayerName)
		session.Game = fresh.Game
	default:
		g.log.WithField("command", msg.Command).Debug("unknown command")
		return errUnknownCommand
	}

	if err != nil {
		g.log.WithError(err).Debug("rejected intent")
		return nil
	}

	session.Game.RunAITurns()

	if winner, over := session.Game.Winner(); over && !wasOver && g.results != nil {
		err := g.results.RecordResult(session.GameID, session.Game.Name(winner), session.Game.Turns())
		if err != nil {
			g.log.WithError(err).Error("could not record result")
		}
	}
	return nil
}

func (g *GameServer) sendError(conn *websocket.Conn, cause error) error {
	err := conn.WriteJSON(protocol.OutboundMessage{
		Command: protocol.Error,
		Error:   cause.Error(),
	})
	if err != nil {
		g.log.WithError(err).Debug("could not write error")
	}
	return err
}

func (g *GameServer) sendState(conn *websocket.Conn, session *fishka.GameSession) error {
	session.Mu.Lock()
	snapshot := session.Game.Snapshot(fishka.South)
	session.Mu.Unlock()

	err := conn.WriteJSON(protocol.OutboundMessage{
		Command: protocol.State,
		State:   &snapshot,
	})
	if err != nil {
		g.log.WithError(err).Debug("could not write snapshot")
	}
	return err
}

func (g *GameServer) findSession(w http.ResponseWriter, r *http.Request) (*fishka.GameSession, bool) {
	query := r.URL.Query()

	gameID := query.Get("game_id")
	if gameID == "" {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte("missing game ID"))
		return nil, false
	}

	playerID := query.Get("player_id")
	if playerID == "" {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte("missing player ID"))
		return nil, false
	}

	session := g.store.FindGame(gameID)
	if session == nil {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte("unknown game ID '" + gameID + "'"))
		return nil, false
	}

	if session.PlayerID != playerID {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte("unknown player ID"))
		return nil, false
	}

	return session, true
}
