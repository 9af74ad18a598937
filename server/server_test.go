package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gorilla/websocket"

	"github.com/dnikiforova/fishka"
	utils "github.com/dnikiforova/fishka/internal"
	"github.com/dnikiforova/fishka/protocol"
	"github.com/dnikiforova/fishka/results"
)

func newTestServer(t *testing.T) *GameServer {
	t.Helper()
	return NewServer(fishka.NewInMemoryGameStore(), nil, nil)
}

func createGame(t *testing.T, server *GameServer, name string) NewGameRes {
	t.Helper()

	body := mustMakeJSON(t, NewGameReq{Name: name})
	response := httptest.NewRecorder()
	request, _ := http.NewRequest(http.MethodPost, "/new", bytes.NewReader(body))

	server.ServeHTTP(response, request)
	assertStatus(t, response.Code, http.StatusCreated)

	var payload NewGameRes
	utils.AssertNoError(t, json.NewDecoder(response.Body).Decode(&payload))
	return payload
}

func mustMakeJSON(t *testing.T, obj interface{}) []byte {
	t.Helper()

	bytes, err := json.Marshal(obj)
	utils.AssertNoError(t, err)
	return bytes
}

func assertStatus(t *testing.T, got, want int) {
	t.Helper()

	if got != want {
		t.Fatalf("got status %d, want %d", got, want)
	}
}

func TestServerPOSTNewGame(t *testing.T) {
	t.Run("succeeds and returns expected data", func(t *testing.T) {
		server := newTestServer(t)
		payload := createGame(t, server, "Elton")

		utils.AssertEqual(t, len(payload.GameID), 6)
		utils.AssertEqual(t, payload.Name, "Elton")
		if payload.PlayerID == "" {
			t.Error("expected a player ID")
		}
		if server.store.FindGame(payload.GameID) == nil {
			t.Error("expected the game to be stored")
		}
	})

	t.Run("returns 400 if the player's name is missing", func(t *testing.T) {
		server := newTestServer(t)

		response := httptest.NewRecorder()
		request, _ := http.NewRequest(http.MethodPost, "/new", bytes.NewReader([]byte{}))
		server.ServeHTTP(response, request)

		assertStatus(t, response.Code, http.StatusBadRequest)
	})

	t.Run("does not match on GET /new", func(t *testing.T) {
		server := newTestServer(t)

		response := httptest.NewRecorder()
		request, _ := http.NewRequest(http.MethodGet, "/new", nil)
		server.ServeHTTP(response, request)

		assertStatus(t, response.Code, http.StatusNotFound)
	})
}

func TestServerGETState(t *testing.T) {
	t.Run("returns the player's view of a fresh deal", func(t *testing.T) {
		server := newTestServer(t)
		payload := createGame(t, server, "Elton")

		response := httptest.NewRecorder()
		request, _ := http.NewRequest(http.MethodGet,
			"/state?game_id="+payload.GameID+"&player_id="+payload.PlayerID, nil)
		server.ServeHTTP(response, request)

		assertStatus(t, response.Code, http.StatusOK)

		var snapshot protocol.GameSnapshot
		utils.AssertNoError(t, json.NewDecoder(response.Body).Decode(&snapshot))

		utils.AssertEqual(t, len(snapshot.Hand), 8)
		utils.AssertEqual(t, snapshot.DeckCount, 19)
		utils.AssertEqual(t, snapshot.PileCount, 1)
		utils.AssertEqual(t, len(snapshot.Opponents), 3)
		utils.AssertEqual(t, snapshot.CurrentTurn, "South")
	})

	t.Run("rejects a wrong player ID", func(t *testing.T) {
		server := newTestServer(t)
		payload := createGame(t, server, "Elton")

		response := httptest.NewRecorder()
		request, _ := http.NewRequest(http.MethodGet,
			"/state?game_id="+payload.GameID+"&player_id=intruder", nil)
		server.ServeHTTP(response, request)

		assertStatus(t, response.Code, http.StatusUnauthorized)
	})

	t.Run("rejects an unknown game ID", func(t *testing.T) {
		server := newTestServer(t)

		response := httptest.NewRecorder()
		request, _ := http.NewRequest(http.MethodGet, "/state?game_id=NOPE&player_id=x", nil)
		server.ServeHTTP(response, request)

		assertStatus(t, response.Code, http.StatusNotFound)
	})

	t.Run("rejects missing credentials", func(t *testing.T) {
		server := newTestServer(t)

		response := httptest.NewRecorder()
		request, _ := http.NewRequest(http.MethodGet, "/state", nil)
		server.ServeHTTP(response, request)

		assertStatus(t, response.Code, http.StatusBadRequest)
	})
}

func TestServerWS(t *testing.T) {
	server := newTestServer(t)
	payload := createGame(t, server, "Elton")

	ts := httptest.NewServer(server)
	defer ts.Close()

	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") +
		"/ws?game_id=" + payload.GameID + "&player_id=" + payload.PlayerID
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	utils.AssertNoError(t, err)
	defer conn.Close()

	var initial protocol.OutboundMessage
	utils.AssertNoError(t, conn.ReadJSON(&initial))
	utils.AssertEqual(t, initial.Command, protocol.State)
	utils.AssertEqual(t, len(initial.State.Hand), 8)

	utils.AssertNoError(t, conn.WriteJSON(protocol.InboundMessage{Command: protocol.DrawCard}))

	var next protocol.OutboundMessage
	utils.AssertNoError(t, conn.ReadJSON(&next))
	utils.AssertEqual(t, next.Command, protocol.State)

	// The draw and the AI turns that follow it are all narrated.
	if len(next.State.Events) <= len(initial.State.Events) {
		t.Errorf("expected the event log to grow, got %d -> %d",
			len(initial.State.Events), len(next.State.Events))
	}
}

func TestServerWSMalformedIntent(t *testing.T) {
	server := newTestServer(t)
	payload := createGame(t, server, "Elton")

	ts := httptest.NewServer(server)
	defer ts.Close()

	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") +
		"/ws?game_id=" + payload.GameID + "&player_id=" + payload.PlayerID
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	utils.AssertNoError(t, err)
	defer conn.Close()

	var initial protocol.OutboundMessage
	utils.AssertNoError(t, conn.ReadJSON(&initial))
	utils.AssertEqual(t, initial.Command, protocol.State)

	// A command the protocol does not know gets an Error frame, not a state.
	utils.AssertNoError(t, conn.WriteJSON(protocol.InboundMessage{Command: protocol.Cmd(99)}))

	var reply protocol.OutboundMessage
	utils.AssertNoError(t, conn.ReadJSON(&reply))
	utils.AssertEqual(t, reply.Command, protocol.Error)
	utils.AssertEqual(t, reply.Error, "unknown command")

	// So does a suit name the deck does not know.
	utils.AssertNoError(t, conn.WriteJSON(protocol.InboundMessage{
		Command: protocol.ChooseSuit,
		Suit:    "Swords",
	}))
	utils.AssertNoError(t, conn.ReadJSON(&reply))
	utils.AssertEqual(t, reply.Command, protocol.Error)
	utils.AssertEqual(t, reply.Error, "unknown suit")

	// A well-formed but illegal intent is dropped silently: the state comes
	// back unchanged instead of an Error frame.
	utils.AssertNoError(t, conn.WriteJSON(protocol.InboundMessage{
		Command: protocol.PlayCard,
		CardID:  "not-a-card",
	}))
	utils.AssertNoError(t, conn.ReadJSON(&reply))
	utils.AssertEqual(t, reply.Command, protocol.State)
}

func TestServerLeaderboard(t *testing.T) {
	t.Run("404 without a results store", func(t *testing.T) {
		server := newTestServer(t)

		response := httptest.NewRecorder()
		request, _ := http.NewRequest(http.MethodGet, "/leaderboard", nil)
		server.ServeHTTP(response, request)

		assertStatus(t, response.Code, http.StatusNotFound)
	})

	t.Run("returns recorded wins", func(t *testing.T) {
		resultsStore, err := results.NewStore(filepath.Join(t.TempDir(), "results.db"))
		utils.AssertNoError(t, err)
		defer resultsStore.Close()
		utils.AssertNoError(t, resultsStore.RecordResult("ABCDEF", "Elton", 30))

		server := NewServer(fishka.NewInMemoryGameStore(), resultsStore, nil)

		response := httptest.NewRecorder()
		request, _ := http.NewRequest(http.MethodGet, "/leaderboard", nil)
		server.ServeHTTP(response, request)

		assertStatus(t, response.Code, http.StatusOK)

		var stats []results.WinnerStat
		utils.AssertNoError(t, json.NewDecoder(response.Body).Decode(&stats))
		utils.AssertDeepEqual(t, stats, []results.WinnerStat{{Winner: "Elton", Wins: 1}})
	})
}
