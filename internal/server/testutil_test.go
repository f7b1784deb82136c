package server

import (
	"context"
	"encoding/json"
	"math/rand/v2"
	"net/http/httptest"
	"strings"
	"testing"
	"testing/fstest"
	"time"

	"nhooyr.io/websocket"

	"kibitzer/internal/controller"
	"kibitzer/internal/game"
	"kibitzer/internal/game/freeplay"
	"kibitzer/internal/game/warlords"
	"kibitzer/internal/storage"
)

// --- Test environment ---

type testEnv struct {
	ts    *httptest.Server
	srv   *Server
	store *storage.Store
}

func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()
	store, err := storage.New(":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	reg := game.NewRegistry()
	reg.Register(freeplay.Rules{})
	reg.Register(warlords.Rules{})
	rules, err := reg.Resolve([]string{warlords.ID, freeplay.ID})
	if err != nil {
		t.Fatalf("resolve rules: %v", err)
	}
	ctrl, err := controller.New(rules, 4, controller.WithRand(rand.New(rand.NewPCG(1, 2))))
	if err != nil {
		t.Fatalf("new controller: %v", err)
	}

	webFS := fstest.MapFS{
		"index.html": &fstest.MapFile{Data: []byte("<html><body>test</body></html>")},
	}
	srv := New(reg, ctrl, store, webFS, nil)
	ts := httptest.NewServer(srv)
	t.Cleanup(ts.Close)

	return &testEnv{ts: ts, srv: srv, store: store}
}

// --- Context helpers ---

func timeoutCtx(t *testing.T) (context.Context, context.CancelFunc) {
	t.Helper()
	return context.WithTimeout(context.Background(), 5*time.Second)
}

// --- WebSocket helpers ---

type envelope struct {
	ID   string          `json:"id"`
	Data json.RawMessage `json:"data"`
}

type cardsData struct {
	Message   string   `json:"message"`
	Turn      int      `json:"turn"`
	Hand      []string `json:"hand"`
	SessionID int      `json:"sessionId"`
}

func wsURL(ts *httptest.Server) string {
	return strings.Replace(ts.URL, "http://", "ws://", 1) + "/ws"
}

// wsConnect dials the table and returns the connection with its session id.
// The caller is responsible for closing the connection.
func wsConnect(t *testing.T, ts *httptest.Server) (*websocket.Conn, int) {
	t.Helper()
	ctx, cancel := timeoutCtx(t)
	defer cancel()
	conn, _, err := websocket.Dial(ctx, wsURL(ts), nil)
	if err != nil {
		t.Fatalf("ws dial: %v", err)
	}
	wsSend(ctx, t, conn, "init:")
	msg := wsRead(ctx, t, conn)
	if msg.ID != "init" {
		t.Fatalf("expected init, got %q: %s", msg.ID, msg.Data)
	}
	var welcome struct {
		SessionID int `json:"sessionId"`
	}
	if err := json.Unmarshal(msg.Data, &welcome); err != nil {
		t.Fatalf("unmarshal init: %v", err)
	}
	return conn, welcome.SessionID
}

// wsSend writes one command, calling t.Fatal on error.
func wsSend(ctx context.Context, t *testing.T, conn *websocket.Conn, cmd string) {
	t.Helper()
	if err := conn.Write(ctx, websocket.MessageText, []byte(cmd)); err != nil {
		t.Fatalf("ws write: %v", err)
	}
}

// wsRead reads and unmarshals an envelope, calling t.Fatal on error.
func wsRead(ctx context.Context, t *testing.T, conn *websocket.Conn) envelope {
	t.Helper()
	_, data, err := conn.Read(ctx)
	if err != nil {
		t.Fatalf("ws read: %v", err)
	}
	var msg envelope
	if err := json.Unmarshal(data, &msg); err != nil {
		t.Fatalf("unmarshal ws message: %v", err)
	}
	return msg
}

// readText reads an envelope and expects a chat-style message.
func readText(t *testing.T, ctx context.Context, conn *websocket.Conn) string {
	t.Helper()
	msg := wsRead(ctx, t, conn)
	if msg.ID != "message" {
		t.Fatalf("expected message, got %q: %s", msg.ID, msg.Data)
	}
	var text string
	if err := json.Unmarshal(msg.Data, &text); err != nil {
		t.Fatalf("unmarshal text: %v", err)
	}
	return text
}

// readCards reads an envelope and expects a table state.
func readCards(t *testing.T, ctx context.Context, conn *websocket.Conn) cardsData {
	t.Helper()
	msg := wsRead(ctx, t, conn)
	if msg.ID != "cards" {
		t.Fatalf("expected cards, got %q: %s", msg.ID, msg.Data)
	}
	var cd cardsData
	if err := json.Unmarshal(msg.Data, &cd); err != nil {
		t.Fatalf("unmarshal cards: %v", err)
	}
	return cd
}

// expectID reads an envelope and checks its id.
func expectID(t *testing.T, ctx context.Context, conn *websocket.Conn, id string) envelope {
	t.Helper()
	msg := wsRead(ctx, t, conn)
	if msg.ID != id {
		t.Fatalf("expected %s, got %q: %s", id, msg.ID, msg.Data)
	}
	return msg
}
