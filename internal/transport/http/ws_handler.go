package http

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	"ai-learning-lab/internal/app"
	"ai-learning-lab/internal/domain"
	"github.com/gorilla/websocket"
)

// DefaultRequestTimeout bounds a single generation or submission.
const DefaultRequestTimeout = 30 * time.Second

type WSHandler struct {
	service        *app.LabService
	upgrader       websocket.Upgrader
	requestTimeout time.Duration
}

func NewWSHandler(service *app.LabService, requestTimeout time.Duration) *WSHandler {
	if requestTimeout <= 0 {
		requestTimeout = DefaultRequestTimeout
	}
	return &WSHandler{
		service: service,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
		requestTimeout: requestTimeout,
	}
}

type inboundMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

type selectPayload struct {
	IsAI   *bool  `json:"isAI"`
	Option string `json:"option"`
}

type textPayload struct {
	Text string `json:"text"`
}

type ideaPayload struct {
	Keyword string `json:"keyword"`
}

type submitPayload struct {
	DisplayName string `json:"displayName"`
}

type identifyPayload struct {
	Token string `json:"token"`
}

type outboundMessage[T any] struct {
	Type    string `json:"type"`
	Payload T      `json:"payload"`
}

type errorPayload struct {
	Message string `json:"message"`
}

type pendingPayload struct {
	Pending bool `json:"pending"`
}

type explanationPayload struct {
	Word string `json:"word"`
	Text string `json:"text"`
}

type ideaResult struct {
	Keyword string `json:"keyword"`
	Text    string `json:"text"`
}

type identityPayload struct {
	Ready  bool   `json:"ready"`
	UserID string `json:"userId,omitempty"`
}

// asyncResult carries the outcome of a generation or submission back to the event loop.
type asyncResult struct {
	kind    string
	payload any
	err     error
}

// ServeWS mounts one activity widget per connection. The widget lives exactly as
// long as the socket.
func (h *WSHandler) ServeWS(w http.ResponseWriter, r *http.Request) {
	activity, err := domain.ParseActivity(r.URL.Query().Get("activity"))
	if err != nil {
		http.Error(w, "missing or unknown activity", http.StatusBadRequest)
		return
	}
	identity := h.service.Identify(r.Context(), r.URL.Query().Get("token"))
	widget, err := h.service.Open(activity, identity)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("ws upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	send := make(chan outboundMessage[any], 16)
	writerDone := make(chan struct{})
	go func() {
		defer close(writerDone)
		for msg := range send {
			if err := conn.WriteJSON(msg); err != nil {
				log.Printf("ws write error: %v", err)
				_ = conn.Close()
				return
			}
		}
	}()

	done := make(chan struct{})
	inbound := make(chan inboundMessage)
	go func() {
		defer close(inbound)
		for {
			var msg inboundMessage
			if err := conn.ReadJSON(&msg); err != nil {
				return
			}
			select {
			case inbound <- msg:
			case <-done:
				return
			}
		}
	}()

	s := &wsSession{
		h:          h,
		ctx:        ctx,
		widget:     widget,
		send:       send,
		writerDone: writerDone,
		results:    make(chan asyncResult),
		done:       done,
	}
	s.emit("identity", identityView(widget.Identity()))
	s.emitState()
	s.run(inbound)

	close(done)
	cancel()
	s.stopSkip()
	s.inflight.Wait()
	close(send)
	<-writerDone
}

// wsSession owns one widget. Only the run loop touches the widget's state.
type wsSession struct {
	h          *WSHandler
	ctx        context.Context
	widget     *app.Widget
	send       chan<- outboundMessage[any]
	writerDone <-chan struct{}
	results    chan asyncResult
	done       chan struct{}
	inflight   sync.WaitGroup
	pending    bool

	skipTimer *time.Timer
	skipC     <-chan time.Time
}

func (s *wsSession) run(inbound <-chan inboundMessage) {
	for {
		select {
		case msg, ok := <-inbound:
			if !ok {
				return
			}
			s.handle(msg)
		case res := <-s.results:
			s.finish(res)
		case <-s.skipC:
			s.skipC = nil
			if err := s.widget.AdvanceSkipped(); err != nil {
				s.fail("skip", err)
				continue
			}
			s.emitState()
		case <-s.writerDone:
			return
		}
	}
}

func (s *wsSession) handle(msg inboundMessage) {
	w := s.widget
	var err error
	switch msg.Type {
	case "select":
		var p selectPayload
		if err = decode(msg.Payload, &p); err != nil {
			break
		}
		if w.Activity() == domain.ActivityRiddle {
			if p.IsAI == nil {
				err = fmt.Errorf("%w: isAI required", domain.ErrValidationFailed)
				break
			}
			err = w.SelectAnswer(*p.IsAI)
			break
		}
		err = w.Select(p.Option)
	case "confirm":
		err = w.Confirm()
	case "advance":
		s.stopSkip()
		err = w.Advance()
	case "reset":
		s.stopSkip()
		w.Reset()
	case "type", "guess":
		var p textPayload
		if err = decode(msg.Payload, &p); err != nil {
			break
		}
		if msg.Type == "type" {
			err = w.Type(p.Text)
		} else {
			err = w.Guess(p.Text)
		}
	case "hint":
		err = w.Hint()
	case "skip":
		if err = w.Skip(); err == nil {
			s.startSkip(w.SkipDelay())
		}
	case "explain":
		s.explain()
		return
	case "idea":
		var p ideaPayload
		if err = decode(msg.Payload, &p); err != nil {
			break
		}
		s.idea(p.Keyword)
		return
	case "submit":
		var p submitPayload
		if err = decode(msg.Payload, &p); err != nil {
			break
		}
		s.submit(p.DisplayName)
		return
	case "identify":
		var p identifyPayload
		if err = decode(msg.Payload, &p); err != nil {
			break
		}
		w.SetIdentity(s.h.service.Identify(s.ctx, p.Token))
		s.emit("identity", identityView(w.Identity()))
		return
	default:
		s.emit("error", errorPayload{Message: "unsupported message type"})
		return
	}
	if err != nil {
		s.fail(msg.Type, err)
		return
	}
	s.emitState()
}

func (s *wsSession) explain() {
	word, err := s.widget.ExplainTarget()
	if err != nil {
		s.fail("explain", err)
		return
	}
	w := s.widget
	s.launch("explanation", func(ctx context.Context) (any, error) {
		text, err := w.Explain(ctx, word)
		return explanationPayload{Word: word, Text: text}, err
	})
}

func (s *wsSession) idea(keyword string) {
	w := s.widget
	s.launch("idea", func(ctx context.Context) (any, error) {
		text, err := w.GenerateIdea(ctx, keyword)
		return ideaResult{Keyword: keyword, Text: text}, err
	})
}

func (s *wsSession) submit(displayName string) {
	sub, err := s.widget.SubmissionTarget()
	if err != nil {
		s.fail("submit", err)
		return
	}
	w := s.widget
	s.launch("submitted", func(ctx context.Context) (any, error) {
		return w.Submit(ctx, sub, displayName)
	})
}

// launch runs fn off the loop. At most one request is outstanding per connection;
// its result is dropped once the connection is gone.
func (s *wsSession) launch(kind string, fn func(context.Context) (any, error)) {
	if s.pending {
		s.fail(kind, domain.ErrRequestPending)
		return
	}
	s.pending = true
	s.emit("pending", pendingPayload{Pending: true})

	s.inflight.Add(1)
	go func() {
		defer s.inflight.Done()
		ctx, cancel := context.WithTimeout(s.ctx, s.h.requestTimeout)
		defer cancel()
		payload, err := fn(ctx)
		select {
		case s.results <- asyncResult{kind: kind, payload: payload, err: err}:
		case <-s.done:
		}
	}()
}

func (s *wsSession) finish(res asyncResult) {
	s.pending = false
	s.emit("pending", pendingPayload{Pending: false})
	if res.err != nil {
		s.fail(res.kind, res.err)
		return
	}
	s.emit(res.kind, res.payload)
}

func (s *wsSession) startSkip(delay time.Duration) {
	s.stopSkip()
	s.skipTimer = time.NewTimer(delay)
	s.skipC = s.skipTimer.C
}

func (s *wsSession) stopSkip() {
	if s.skipTimer != nil {
		s.skipTimer.Stop()
		s.skipTimer = nil
	}
	s.skipC = nil
}

func (s *wsSession) fail(op string, err error) {
	log.Printf("%s %s failed: %v", s.widget.Activity(), op, err)
	s.emit("error", errorPayload{Message: domain.UserMessage(err)})
}

func (s *wsSession) emitState() {
	s.emit("state", s.widget.Snapshot())
}

func (s *wsSession) emit(typ string, payload any) {
	select {
	case s.send <- outboundMessage[any]{Type: typ, Payload: payload}:
	case <-s.writerDone:
	}
}

func decode(raw json.RawMessage, v any) error {
	if len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrValidationFailed, err)
	}
	return nil
}

func identityView(id *domain.IdentitySession) identityPayload {
	if id == nil {
		return identityPayload{}
	}
	return identityPayload{Ready: true, UserID: id.ID}
}
