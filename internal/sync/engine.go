// Package sync owns the persistent socket connection. It decodes inbound
// room events and routes them, strictly in arrival order, into the message
// store, the listener registry, and the notification dispatcher.
package sync

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/gorilla/websocket"
	"go.opentelemetry.io/otel"

	"chat-client/internal/api"
	"chat-client/internal/directory"
	"chat-client/internal/listeners"
	"chat-client/internal/models"
	"chat-client/internal/notify"
	"chat-client/internal/observability"
	"chat-client/internal/store"
	"chat-client/internal/telemetry"
)

// State of the socket connection.
type State int32

const (
	StateDisconnected State = iota
	StateConnecting
	StateConnected
	StateReconnecting
)

func (s State) String() string {
	switch s {
	case StateDisconnected:
		return "disconnected"
	case StateConnecting:
		return "connecting"
	case StateConnected:
		return "connected"
	case StateReconnecting:
		return "reconnecting"
	default:
		return "unknown"
	}
}

// socketFrame is the envelope of every inbound socket event.
type socketFrame struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

type deletePayload struct {
	RoomID    string `json:"room"`
	MessageID string `json:"id"`
}

type editPayload struct {
	RoomID    string `json:"room"`
	MessageID string `json:"id"`
	Body      string `json:"body"`
}

// Engine owns the socket connection for the lifetime of a session.
type Engine struct {
	wsURL      string
	token      string
	rooms      *directory.RoomDirectory
	users      *directory.UserDirectory
	store      *store.MessageStore
	reg        *listeners.Registry
	dispatcher *notify.Dispatcher
	emitter    *telemetry.SessionEmitter
	roomAPI    api.RoomAPI

	frames chan []byte
	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu    sync.RWMutex
	state State

	closeOnce sync.Once
}

// NewEngine constructs an Engine. emitter may be nil.
func NewEngine(wsURL, token string, rooms *directory.RoomDirectory, users *directory.UserDirectory, msgStore *store.MessageStore, registry *listeners.Registry, dispatcher *notify.Dispatcher, emitter *telemetry.SessionEmitter, roomAPI api.RoomAPI) *Engine {
	return &Engine{
		wsURL:      wsURL,
		token:      token,
		rooms:      rooms,
		users:      users,
		store:      msgStore,
		reg:        registry,
		dispatcher: dispatcher,
		emitter:    emitter,
		roomAPI:    roomAPI,
		frames:     make(chan []byte, 256),
	}
}

// Start loads the room and user directories, then brings up the socket.
// The directory loads are a hard precondition: incoming events cannot be
// resolved without room metadata, so Start fails rather than racing them.
func (e *Engine) Start(ctx context.Context) error {
	if _, err := e.rooms.Load(ctx); err != nil {
		return fmt.Errorf("load rooms: %w", err)
	}
	if err := e.users.Load(ctx); err != nil {
		return fmt.Errorf("load users: %w", err)
	}

	ctx, e.cancel = context.WithCancel(ctx)

	e.wg.Add(2)
	go e.dispatchLoop()
	go e.connectLoop(ctx)
	return nil
}

// Close tears down the connection and waits for the loops to stop.
func (e *Engine) Close() {
	e.closeOnce.Do(func() {
		if e.cancel != nil {
			e.cancel()
		}
	})
	e.wg.Wait()
}

// State reports the current connection state.
func (e *Engine) State() State {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.state
}

func (e *Engine) setState(s State) {
	e.mu.Lock()
	e.state = s
	e.mu.Unlock()
	observability.SetSocketState(int(s))
}

// connectLoop dials, reads until the connection fails, and redials. It is the
// only writer to e.frames, so it closes the channel on exit.
func (e *Engine) connectLoop(ctx context.Context) {
	defer e.wg.Done()
	defer close(e.frames)

	first := true
	for {
		if first {
			e.setState(StateConnecting)
		} else {
			e.setState(StateReconnecting)
		}

		conn, err := e.dial(ctx)
		if err != nil {
			e.setState(StateDisconnected)
			return
		}
		first = false
		e.setState(StateConnected)
		e.emitter.Emit(context.Background(), "session_connect", "", "")

		err = e.readFrames(ctx, conn)
		conn.Close()

		reason := ""
		if err != nil {
			reason = err.Error()
		}
		e.emitter.Emit(context.Background(), "session_disconnect", "", reason)

		if ctx.Err() != nil {
			e.setState(StateDisconnected)
			return
		}
		log.Printf("socket connection lost, reconnecting: %v", err)
	}
}

// dial connects with exponential backoff until it succeeds or ctx ends.
func (e *Engine) dial(ctx context.Context) (*websocket.Conn, error) {
	var header http.Header
	if e.token != "" {
		header = http.Header{"Authorization": {"Bearer " + e.token}}
	}

	bo := backoff.NewExponentialBackOff()
	bo.MaxElapsedTime = 0

	var conn *websocket.Conn
	op := func() error {
		dialCtx, span := otel.Tracer("chat-client/sync").Start(ctx, "ws.connect")
		defer span.End()

		c, resp, err := websocket.DefaultDialer.DialContext(dialCtx, e.wsURL, header)
		if err != nil {
			log.Printf("socket dial failed: %v", err)
			return err
		}
		if resp != nil && resp.Body != nil {
			resp.Body.Close()
		}
		conn = c
		return nil
	}
	if err := backoff.Retry(op, backoff.WithContext(bo, ctx)); err != nil {
		return nil, err
	}
	return conn, nil
}

// readFrames pushes raw frames into the inbound queue until the connection
// fails or ctx ends.
func (e *Engine) readFrames(ctx context.Context, conn *websocket.Conn) error {
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			conn.Close()
		case <-done:
		}
	}()

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			return err
		}
		select {
		case e.frames <- data:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// dispatchLoop is the single consumer of the inbound queue; events are
// handled one at a time, in arrival order.
func (e *Engine) dispatchLoop() {
	defer e.wg.Done()
	for data := range e.frames {
		e.handleFrame(data)
	}
}

// handleFrame decodes and routes one inbound event. Bad frames are dropped
// and logged; a single bad event must not disrupt the session.
func (e *Engine) handleFrame(data []byte) {
	var frame socketFrame
	if err := json.Unmarshal(data, &frame); err != nil {
		log.Printf("dropping malformed socket frame: %v", err)
		observability.IncSocketEvent("unknown", "malformed")
		return
	}

	switch frame.Event {
	case "message":
		e.handleNewMessage(frame.Data)
	case "delete-message":
		e.handleDeleteMessage(frame.Data)
	case "edit-message":
		e.handleEditMessage(frame.Data)
	default:
		log.Printf("dropping socket event of unknown kind %q", frame.Event)
		observability.IncSocketEvent(frame.Event, "dropped")
	}
}

func (e *Engine) handleNewMessage(data json.RawMessage) {
	var msg models.Message
	if err := json.Unmarshal(data, &msg); err != nil {
		log.Printf("dropping malformed message event: %v", err)
		observability.IncSocketEvent("message", "malformed")
		return
	}

	// The server is trusted to only deliver events for rooms this session
	// is authorized for, but an unknown room id is still dropped.
	room, ok := e.rooms.Lookup(msg.RoomID)
	if !ok {
		observability.IncSocketEvent("message", "dropped")
		e.emitter.Emit(context.Background(), "event_dropped", msg.RoomID, "unknown room")
		return
	}

	e.dispatcher.MessageReceived(room, msg)

	// Cache mutation precedes listener dispatch so a listener that re-reads
	// the cache sees consistent state.
	e.store.ApplyInsert(msg.RoomID, msg)
	e.reg.Dispatch(models.RoomEvent{
		Kind:    listeners.KindNewMessage,
		RoomID:  msg.RoomID,
		Message: &msg,
	})
	observability.IncSocketEvent("message", "handled")
}

func (e *Engine) handleDeleteMessage(data json.RawMessage) {
	var p deletePayload
	if err := json.Unmarshal(data, &p); err != nil || p.RoomID == "" || p.MessageID == "" {
		log.Printf("dropping malformed delete-message event: %v", err)
		observability.IncSocketEvent("delete-message", "malformed")
		return
	}

	e.store.ApplyDelete(p.RoomID, p.MessageID)
	e.reg.Dispatch(models.RoomEvent{
		Kind:      listeners.KindDeleteMessage,
		RoomID:    p.RoomID,
		MessageID: p.MessageID,
	})
	observability.IncSocketEvent("delete-message", "handled")
}

func (e *Engine) handleEditMessage(data json.RawMessage) {
	var p editPayload
	if err := json.Unmarshal(data, &p); err != nil || p.RoomID == "" || p.MessageID == "" {
		log.Printf("dropping malformed edit-message event: %v", err)
		observability.IncSocketEvent("edit-message", "malformed")
		return
	}

	updated, ok := e.store.ApplyEdit(p.RoomID, p.MessageID, p.Body)
	if !ok {
		updated = models.Message{ID: p.MessageID, RoomID: p.RoomID, Body: p.Body}
	}
	e.reg.Dispatch(models.RoomEvent{
		Kind:    listeners.KindEditMessage,
		RoomID:  p.RoomID,
		Message: &updated,
	})
	observability.IncSocketEvent("edit-message", "handled")
}

// Send posts a message to a room. Outbound actions are fire-and-forget:
// failures are logged, never retried, and never acknowledged.
func (e *Engine) Send(roomID, body string) {
	go e.fireAndForget("send", func(ctx context.Context) error {
		return e.roomAPI.SendMessage(ctx, roomID, body)
	})
}

// Delete removes a message from a room.
func (e *Engine) Delete(roomID, messageID string) {
	go e.fireAndForget("delete", func(ctx context.Context) error {
		return e.roomAPI.DeleteMessage(ctx, roomID, messageID)
	})
}

// Edit replaces the body of a message in a room.
func (e *Engine) Edit(roomID, messageID, body string) {
	go e.fireAndForget("edit", func(ctx context.Context) error {
		return e.roomAPI.EditMessage(ctx, roomID, messageID, body)
	})
}

func (e *Engine) fireAndForget(action string, call func(context.Context) error) {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := call(ctx); err != nil {
		log.Printf("%s message failed: %v", action, err)
	}
}
