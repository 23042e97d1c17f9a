package http

import (
	"context"
	"encoding/json"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"ai-learning-lab/internal/app"
	"ai-learning-lab/internal/domain"
	"ai-learning-lab/internal/explain"
	"ai-learning-lab/internal/game"
	"ai-learning-lab/internal/identity"
	"ai-learning-lab/internal/infra/memory"
	"github.com/gorilla/websocket"
)

func newTestServer(t *testing.T, store *memory.LeaderboardStore, auth app.Authenticator) *httptest.Server {
	t.Helper()
	service := newTestService(func(opts *app.Options) {
		if store != nil {
			opts.Store = store
		}
		opts.Auth = auth
	})
	server := httptest.NewServer(NewRouter(service, NewWSHandler(service, time.Second)))
	t.Cleanup(server.Close)
	return server
}

func newTestService(configure func(*app.Options)) *app.LabService {
	opts := app.Options{
		Catalog: app.Catalog{
			Riddles: func() []domain.RiddleItem {
				return []domain.RiddleItem{{Title: "Face Finder", IsAI: true, Explanation: "Face detection is AI."}}
			},
			Words: func() []domain.WordItem {
				return []domain.WordItem{{Original: "ROBOT"}, {Original: "DATA"}}
			},
			Questions: func() []domain.QuestionItem {
				return []domain.QuestionItem{{Question: "What is 2 + 2?", Options: []string{"3", "4", "5", "6"}, Answer: "4"}}
			},
		},
		AppID:     "lab-test",
		SkipDelay: 20 * time.Millisecond,
		Scrambler: func() *game.Scrambler { return game.NewScrambler(rand.New(rand.NewSource(7))) },
	}
	if configure != nil {
		configure(&opts)
	}
	return app.NewLabService(opts)
}

// blockingGenerator holds every request until release is closed or the request is canceled.
type blockingGenerator struct {
	started  chan struct{}
	release  chan struct{}
	canceled chan struct{}
	once     sync.Once
}

func newBlockingGenerator() *blockingGenerator {
	return &blockingGenerator{
		started:  make(chan struct{}),
		release:  make(chan struct{}),
		canceled: make(chan struct{}, 1),
	}
}

func (g *blockingGenerator) Generate(ctx context.Context, _ string, _ explain.GenerationConfig) (string, error) {
	g.once.Do(func() { close(g.started) })
	select {
	case <-g.release:
		return "A robot that walks your dog.", nil
	case <-ctx.Done():
		g.canceled <- struct{}{}
		return "", ctx.Err()
	}
}

func dial(t *testing.T, server *httptest.Server, query string) *websocket.Conn {
	t.Helper()
	u := "ws" + server.URL[len("http"):] + "/ws?" + query
	conn, _, err := websocket.DefaultDialer.Dial(u, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func TestWebSocketQuizFlow(t *testing.T) {
	conn := dial(t, newTestServer(t, nil, nil), "activity=quiz")

	readNext(conn, t, "identity")
	_, state := readNext(conn, t, "state")
	if state["phase"] != "presenting" {
		t.Fatalf("expected presenting, got %v", state["phase"])
	}

	// Confirm without a choice only sets a notice.
	send(t, conn, "confirm", nil)
	_, state = readNext(conn, t, "state")
	if state["notice"] != "Please select an answer!" || state["phase"] != "presenting" {
		t.Fatalf("unexpected state after empty confirm: %v", state)
	}

	send(t, conn, "select", map[string]any{"option": "4"})
	readNext(conn, t, "state")
	send(t, conn, "confirm", nil)
	_, state = readNext(conn, t, "state")
	if state["phase"] != "revealed" || state["score"] != float64(1) {
		t.Fatalf("expected revealed with score 1, got %v", state)
	}

	send(t, conn, "advance", nil)
	_, state = readNext(conn, t, "state")
	if state["phase"] != "completed" {
		t.Fatalf("expected completed, got %v", state)
	}
}

func TestWebSocketRejectsInvalidTransition(t *testing.T) {
	conn := dial(t, newTestServer(t, nil, nil), "activity=riddle")
	readNext(conn, t, "identity")
	readNext(conn, t, "state")

	send(t, conn, "advance", nil)
	_, payload := readNext(conn, t, "error")
	if payload["message"] != domain.UserMessage(domain.ErrInvalidTransition) {
		t.Fatalf("unexpected error message %v", payload["message"])
	}

	send(t, conn, "dance", nil)
	_, payload = readNext(conn, t, "error")
	if payload["message"] != "unsupported message type" {
		t.Fatalf("unexpected error message %v", payload["message"])
	}
}

func TestWebSocketSubmitWithoutIdentity(t *testing.T) {
	store := memory.NewLeaderboardStore()
	conn := dial(t, newTestServer(t, store, nil), "activity=riddle")
	_, id := readNext(conn, t, "identity")
	if id["ready"] != false {
		t.Fatalf("expected no identity, got %v", id)
	}
	readNext(conn, t, "state")

	send(t, conn, "select", map[string]any{"isAI": true})
	readNext(conn, t, "state")
	send(t, conn, "advance", nil)
	readNext(conn, t, "state")

	send(t, conn, "submit", map[string]any{"displayName": "Ada"})
	_, pending := readNext(conn, t, "pending")
	if pending["pending"] != true {
		t.Fatalf("expected pending true, got %v", pending)
	}
	readNext(conn, t, "pending")
	_, payload := readNext(conn, t, "error")
	if payload["message"] != "App is not ready to submit score. Please try again." {
		t.Fatalf("unexpected error message %v", payload["message"])
	}
	if n := len(store.Entries("artifacts/lab-test/public/data/leaderboardSubmissions")); n != 0 {
		t.Fatalf("expected no writes, got %d", n)
	}
}

func TestWebSocketSubmitWithAnonymousIdentity(t *testing.T) {
	store := memory.NewLeaderboardStore()
	auth := identity.NewAuthenticator("test-secret", memory.NewIdentityRegistry(), time.Hour)
	server := newTestServer(t, store, auth)

	resp, err := http.Post(server.URL+"/auth/anonymous", "application/json", nil)
	if err != nil {
		t.Fatalf("sign in: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	var signIn signInResponse
	if err := json.NewDecoder(resp.Body).Decode(&signIn); err != nil {
		t.Fatalf("decode sign in: %v", err)
	}

	conn := dial(t, server, "activity=riddle")
	readNext(conn, t, "identity")
	readNext(conn, t, "state")

	send(t, conn, "identify", map[string]any{"token": signIn.Token})
	_, id := readNext(conn, t, "identity")
	if id["ready"] != true || id["userId"] != signIn.UserID {
		t.Fatalf("expected identity %s, got %v", signIn.UserID, id)
	}

	send(t, conn, "select", map[string]any{"isAI": true})
	readNext(conn, t, "state")
	send(t, conn, "advance", nil)
	readNext(conn, t, "state")

	send(t, conn, "submit", map[string]any{"displayName": "Ada"})
	readNext(conn, t, "pending")
	readNext(conn, t, "pending")
	_, entry := readNext(conn, t, "submitted")
	if entry["displayName"] != "Ada" || entry["score"] != float64(1) || entry["userId"] != signIn.UserID {
		t.Fatalf("unexpected entry %v", entry)
	}
	if n := len(store.Entries("artifacts/lab-test/public/data/leaderboardSubmissions")); n != 1 {
		t.Fatalf("expected one write, got %d", n)
	}
}

func TestWebSocketSkipAdvancesAfterDelay(t *testing.T) {
	conn := dial(t, newTestServer(t, nil, nil), "activity=word")
	readNext(conn, t, "identity")
	readNext(conn, t, "state")

	send(t, conn, "skip", nil)
	_, state := readNext(conn, t, "state")
	if state["notice"] != "Skipped! The word was: ROBOT" || state["position"] != float64(0) {
		t.Fatalf("unexpected skip state %v", state)
	}

	_, state = readNext(conn, t, "state")
	if state["position"] != float64(1) || state["score"] != float64(0) {
		t.Fatalf("expected second word with no score, got %v", state)
	}
}

func TestWebSocketInvalidOptionUsesGenericMessage(t *testing.T) {
	conn := dial(t, newTestServer(t, nil, nil), "activity=quiz")
	readNext(conn, t, "identity")
	readNext(conn, t, "state")

	send(t, conn, "select", map[string]any{"option": "bogus"})
	_, payload := readNext(conn, t, "error")
	if payload["message"] != "Please check your input and try again." {
		t.Fatalf("unexpected error message %v", payload["message"])
	}
}

func TestWebSocketRejectsRequestWhilePending(t *testing.T) {
	gen := newBlockingGenerator()
	service := newTestService(func(opts *app.Options) { opts.Generator = gen })
	server := httptest.NewServer(NewRouter(service, NewWSHandler(service, 5*time.Second)))
	t.Cleanup(server.Close)

	conn := dial(t, server, "activity=idea")
	readNext(conn, t, "identity")
	readNext(conn, t, "state")

	send(t, conn, "idea", map[string]any{"keyword": "pets"})
	_, pending := readNext(conn, t, "pending")
	if pending["pending"] != true {
		t.Fatalf("expected pending true, got %v", pending)
	}
	<-gen.started

	send(t, conn, "idea", map[string]any{"keyword": "space"})
	_, payload := readNext(conn, t, "error")
	if payload["message"] != "Please wait for the current request to finish." {
		t.Fatalf("expected pending rejection, got %v", payload["message"])
	}

	close(gen.release)
	_, pending = readNext(conn, t, "pending")
	if pending["pending"] != false {
		t.Fatalf("expected pending false, got %v", pending)
	}
	_, idea := readNext(conn, t, "idea")
	if idea["keyword"] != "pets" || idea["text"] != "A robot that walks your dog." {
		t.Fatalf("unexpected idea %v", idea)
	}
}

func TestWebSocketCloseDropsInFlightResult(t *testing.T) {
	gen := newBlockingGenerator()
	service := newTestService(func(opts *app.Options) { opts.Generator = gen })
	ws := NewWSHandler(service, 5*time.Second)
	handlerDone := make(chan struct{})
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		defer close(handlerDone)
		ws.ServeWS(w, r)
	})
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	conn := dial(t, server, "activity=idea")
	readNext(conn, t, "identity")
	readNext(conn, t, "state")

	send(t, conn, "idea", map[string]any{"keyword": "pets"})
	readNext(conn, t, "pending")
	<-gen.started
	conn.Close()

	select {
	case <-handlerDone:
	case <-time.After(3 * time.Second):
		t.Fatalf("handler did not return after the socket closed")
	}
	select {
	case <-gen.canceled:
	default:
		t.Fatalf("expected in-flight request to be canceled")
	}
}

func TestServeWSRejectsUnknownActivity(t *testing.T) {
	server := newTestServer(t, nil, nil)
	resp, err := http.Get(server.URL + "/ws?activity=chess")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}

func TestSignInWithoutSecret(t *testing.T) {
	server := newTestServer(t, nil, identity.NewAuthenticator("", nil, time.Hour))
	resp, err := http.Post(server.URL+"/auth/anonymous", "application/json", nil)
	if err != nil {
		t.Fatalf("post: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", resp.StatusCode)
	}
}

func send(t *testing.T, conn *websocket.Conn, typ string, payload any) {
	t.Helper()
	msg := map[string]any{"type": typ}
	if payload != nil {
		msg["payload"] = payload
	}
	if err := conn.WriteJSON(msg); err != nil {
		t.Fatalf("write %s: %v", typ, err)
	}
}

func readNext(conn *websocket.Conn, t *testing.T, expect string) (string, map[string]any) {
	t.Helper()
	var msg struct {
		Type    string         `json:"type"`
		Payload map[string]any `json:"payload"`
	}
	_ = conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	if err := conn.ReadJSON(&msg); err != nil {
		t.Fatalf("read json: %v", err)
	}
	if expect != "" && msg.Type != expect {
		t.Fatalf("expected type %s, got %s (%v)", expect, msg.Type, msg.Payload)
	}
	return msg.Type, msg.Payload
}
