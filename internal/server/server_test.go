package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/alexeagleson/goblin-boys/internal/domain"
	"github.com/alexeagleson/goblin-boys/internal/engine"
	"github.com/alexeagleson/goblin-boys/internal/network"
	"github.com/alexeagleson/goblin-boys/pkg/api"
	"github.com/alexeagleson/goblin-boys/pkg/logger"

	"github.com/gorilla/websocket"
)

func TestMain(m *testing.M) {
	logger.Init()
	os.Exit(m.Run())
}

type fakeGame struct {
	commands chan domain.Command
	snap     *engine.WorldSnapshot
}

func newFakeGame() *fakeGame {
	return &fakeGame{commands: make(chan domain.Command, 16)}
}

func (g *fakeGame) Submit(cmd domain.Command) bool {
	g.commands <- cmd
	return true
}

func (g *fakeGame) Snapshot() *engine.WorldSnapshot { return g.snap }

func (g *fakeGame) next(t *testing.T) domain.Command {
	t.Helper()
	select {
	case cmd := <-g.commands:
		return cmd
	case <-time.After(2 * time.Second):
		t.Fatal("no command submitted")
		return domain.Command{}
	}
}

func dial(t *testing.T, srv *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	return conn
}

func TestWebSocketCommandsReachGame(t *testing.T) {
	game := newFakeGame()
	hub := network.NewBroadcaster()
	srv := httptest.NewServer(New(game, hub, 0).Handler())
	defer srv.Close()

	conn := dial(t, srv)

	messages := []string{
		`{"action":"FLY"}`,
		`not json`,
		`{"action":"MOVE","payload":{"direction":"UP"}}`,
		`{"action":"CONNECT","payload":{"name":"Bob","appearance":"kidzilla"}}`,
	}
	for _, m := range messages {
		if err := conn.WriteMessage(websocket.TextMessage, []byte(m)); err != nil {
			t.Fatalf("write %q: %v", m, err)
		}
	}

	move := game.next(t)
	if move.Kind != domain.CommandMove || move.Direction != domain.North || move.Actor != 1 {
		t.Errorf("move = %+v", move)
	}
	connect := game.next(t)
	if connect.Kind != domain.CommandConnect || connect.Name != "Bob" || connect.Appearance != "kidzilla" {
		t.Errorf("connect = %+v", connect)
	}

	conn.Close()
	disconnect := game.next(t)
	if disconnect.Kind != domain.CommandDisconnect || disconnect.Actor != 1 {
		t.Errorf("disconnect = %+v", disconnect)
	}

	deadline := time.Now().Add(2 * time.Second)
	for hub.HasSubscriber(1) && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}
	if hub.HasSubscriber(1) {
		t.Error("subscriber still registered after close")
	}
}

func TestWebSocketDeliversHubMessages(t *testing.T) {
	game := newFakeGame()
	hub := network.NewBroadcaster()
	srv := httptest.NewServer(New(game, hub, 0).Handler())
	defer srv.Close()

	conn := dial(t, srv)
	defer conn.Close()

	deadline := time.Now().Add(2 * time.Second)
	for !hub.HasSubscriber(1) && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}

	hub.SendTo(1, api.LogMessage("hello"))

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var msg struct {
		Type    api.MessageType `json:"type"`
		Content string          `json:"content"`
	}
	if err := conn.ReadJSON(&msg); err != nil {
		t.Fatalf("read: %v", err)
	}
	if msg.Type != api.TypeLog || msg.Content != "hello" {
		t.Errorf("msg = %+v", msg)
	}
}

func TestHTTPRoutes(t *testing.T) {
	game := newFakeGame()
	game.snap = &engine.WorldSnapshot{
		Tick: 7,
		Maps: []engine.MapInfo{{ID: 1, Name: "sewer", Width: 47, Height: 15, Entities: 2, Users: 1}},
		Entities: map[domain.MapID][]engine.EntityInfo{
			1: {{ID: 3, Name: "Rat"}, {ID: 4, Name: "Bob"}},
			2: {},
		},
		Users: []engine.UserInfo{{User: 1, Name: "Bob", MapID: 1}},
	}
	s := New(game, network.NewBroadcaster(), 0)
	s.Metrics = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("metrics"))
	})
	h := s.Handler()

	tests := []struct {
		name     string
		path     string
		status   int
		contains string
	}{
		{"health", "/health", http.StatusOK, "ok"},
		{"version", "/version", http.StatusOK, "BuildDate"},
		{"metrics", "/metrics", http.StatusOK, "metrics"},
		{"maps", "/debug/maps", http.StatusOK, `"name":"sewer"`},
		{"entities", "/debug/entities?map=1", http.StatusOK, `"name":"Rat"`},
		{"empty map entities", "/debug/entities?map=2", http.StatusOK, "[]"},
		{"unknown map", "/debug/entities?map=9", http.StatusNotFound, "not found"},
		{"bad map id", "/debug/entities?map=x", http.StatusBadRequest, "integer"},
		{"users", "/debug/users", http.StatusOK, `"mapId":1`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.path, nil))

			if rec.Code != tt.status {
				t.Fatalf("status = %d, want %d (%s)", rec.Code, tt.status, rec.Body.String())
			}
			if !strings.Contains(rec.Body.String(), tt.contains) {
				t.Errorf("body %q does not contain %q", rec.Body.String(), tt.contains)
			}
		})
	}
}

func TestDebugWithoutSnapshot(t *testing.T) {
	h := NewDebugHandler(newFakeGame())
	mux := http.NewServeMux()
	h.RegisterRoutes(mux)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/debug/users", nil))

	var users []engine.UserInfo
	if err := json.Unmarshal(rec.Body.Bytes(), &users); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(users) != 0 {
		t.Errorf("users = %v", users)
	}
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Errorf("CORS header = %q", got)
	}
}
