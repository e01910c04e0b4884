package stream

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"tilequest/internal/app/game"
	"tilequest/internal/app/ports"
	"tilequest/internal/domain/event"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

type fakeStates struct {
	views map[string]game.View
	after func(gameID string)
}

func (f fakeStates) WithState(_ context.Context, gameID string, fn func(game.View)) error {
	v, ok := f.views[gameID]
	if !ok {
		return ports.ErrNotFound
	}
	fn(v)
	if f.after != nil {
		f.after(gameID)
	}
	return nil
}

func TestHub_StreamsStateThenEvents(t *testing.T) {
	hub := NewHub(fakeStates{views: map[string]game.View{"g1": game.NewState().View()}}, "", quietLogger())
	srv := httptest.NewServer(hub.Routes())
	defer srv.Close()

	ws := dial(t, srv, "g1")
	defer ws.Close()

	first := readMessage(t, ws)
	if first.Type != MessageState || first.GameID != "g1" || first.State == nil {
		t.Fatalf("first frame mismatch: %+v", first)
	}
	if got := len(first.State.Board.Unexplored); got != 1 {
		t.Fatalf("expected seeded frontier, got %d", got)
	}

	hub.Observe("g1", event.EndTurn(event.PlayerID(2), time.Unix(1700000000, 0).UTC()))
	hub.Observe("other", event.StartGame(time.Unix(1700000000, 0).UTC()))

	msg := readMessage(t, ws)
	if msg.Type != MessageEvent || msg.Event == nil {
		t.Fatalf("event frame mismatch: %+v", msg)
	}
	if msg.Event.Kind != event.KindEndTurn {
		t.Fatalf("kind mismatch: got=%s want=%s", msg.Event.Kind, event.KindEndTurn)
	}
	if msg.Event.TriggeringPlayerID == nil || *msg.Event.TriggeringPlayerID != 2 {
		t.Fatalf("triggering player mismatch: %+v", msg.Event.TriggeringPlayerID)
	}
}

func TestHub_UnknownGameRejectedBeforeUpgrade(t *testing.T) {
	hub := NewHub(fakeStates{}, "", quietLogger())
	srv := httptest.NewServer(hub.Routes())
	defer srv.Close()

	_, resp, err := websocket.DefaultDialer.Dial(wsURL(srv, "missing"), nil)
	if err == nil {
		t.Fatalf("expected dial error")
	}
	if resp == nil || resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404 response, got %+v", resp)
	}
}

func TestHub_DropsSlowClient(t *testing.T) {
	hub := NewHub(nil, "", quietLogger())
	c := &client{gameID: "g1", send: make(chan []byte)}
	hub.register(c)

	hub.Observe("g1", event.StartGame(time.Unix(1700000000, 0).UTC()))

	if got := hub.Count("g1"); got != 0 {
		t.Fatalf("slow client should be dropped, count=%d", got)
	}
	if _, ok := <-c.send; ok {
		t.Fatalf("send channel should be closed")
	}
	hub.unregister(c)
}

func TestHub_EventRightAfterSnapshotIsDelivered(t *testing.T) {
	at := time.Unix(1700000000, 0).UTC()
	var hub *Hub
	states := fakeStates{
		views: map[string]game.View{"g1": game.NewState().View()},
		after: func(gameID string) {
			hub.Observe(gameID, event.StartGame(at))
		},
	}
	hub = NewHub(states, "", quietLogger())
	srv := httptest.NewServer(hub.Routes())
	defer srv.Close()

	ws := dial(t, srv, "g1")
	defer ws.Close()

	if first := readMessage(t, ws); first.Type != MessageState {
		t.Fatalf("expected state frame first, got %+v", first)
	}
	msg := readMessage(t, ws)
	if msg.Type != MessageEvent || msg.Event == nil || msg.Event.Kind != event.KindStartGame {
		t.Fatalf("expected start_game event after state, got %+v", msg)
	}
}

func TestHub_ChecksConfiguredOrigin(t *testing.T) {
	hub := NewHub(nil, "https://play.example", quietLogger())
	srv := httptest.NewServer(hub.Routes())
	defer srv.Close()

	_, resp, err := websocket.DefaultDialer.Dial(wsURL(srv, "g1"), http.Header{"Origin": {"https://evil.example"}})
	if err == nil {
		t.Fatalf("expected foreign origin to be rejected")
	}
	if resp == nil || resp.StatusCode != http.StatusForbidden {
		t.Fatalf("expected 403 response, got %+v", resp)
	}

	ws, _, err := websocket.DefaultDialer.Dial(wsURL(srv, "g1"), http.Header{"Origin": {"https://play.example"}})
	if err != nil {
		t.Fatalf("dial with allowed origin: %v", err)
	}
	ws.Close()
}

func TestOriginChecker(t *testing.T) {
	cases := []struct {
		origin string
		header string
		want   bool
	}{
		{"", "https://any.example", true},
		{"*", "https://any.example", true},
		{"https://play.example", "https://PLAY.example", true},
		{"https://play.example", "", true},
		{"https://play.example", "https://evil.example", false},
	}
	for _, tc := range cases {
		r := httptest.NewRequest(http.MethodGet, "/games/g1/stream", nil)
		if tc.header != "" {
			r.Header.Set("Origin", tc.header)
		}
		if got := originChecker(tc.origin)(r); got != tc.want {
			t.Fatalf("origin=%q header=%q: got=%v want=%v", tc.origin, tc.header, got, tc.want)
		}
	}
}

func dial(t *testing.T, srv *httptest.Server, gameID string) *websocket.Conn {
	t.Helper()
	ws, _, err := websocket.DefaultDialer.Dial(wsURL(srv, gameID), nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	return ws
}

func readMessage(t *testing.T, ws *websocket.Conn) Message {
	t.Helper()
	_ = ws.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, b, err := ws.ReadMessage()
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	var m Message
	if err := json.Unmarshal(b, &m); err != nil {
		t.Fatalf("unmarshal frame: %v", err)
	}
	return m
}

func wsURL(srv *httptest.Server, gameID string) string {
	return "ws" + strings.TrimPrefix(srv.URL, "http") + "/games/" + gameID + "/stream"
}

func quietLogger() logrus.FieldLogger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}
