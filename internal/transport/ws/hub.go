// Package ws pushes playback snapshots to external renderers over
// WebSocket and accepts playback commands from them.
package ws

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/SeamusWaldron/cubestate/internal/logging"
	"github.com/SeamusWaldron/cubestate/internal/playback"
)

const (
	writeTimeout = 5 * time.Second
	readTimeout  = 60 * time.Second
	queueSize    = 16
)

// Controller is the playback surface a renderer may drive.
// *playback.Player implements it.
type Controller interface {
	Next() bool
	Prev() bool
	JumpTo(n int) error
	Reset()
	Play(ctx context.Context) error
	Pause()
	SetSpeed(ctx context.Context, s playback.Speed)
	Snapshot() playback.Snapshot
}

// Command is a control message sent by a client.
type Command struct {
	Action string `json:"action"`          // next, prev, jump, reset, play, pause, speed
	Step   int    `json:"step,omitempty"`  // for jump
	Speed  string `json:"speed,omitempty"` // for speed
}

// Message is sent to clients.
type Message struct {
	Type     string             `json:"type"` // snapshot, error
	Snapshot *playback.Snapshot `json:"snapshot,omitempty"`
	Error    string             `json:"error,omitempty"`
}

// Option configures a Hub.
type Option func(*Hub)

// WithLogger sets the hub logger.
func WithLogger(l *log.Logger) Option {
	return func(h *Hub) {
		h.log = l
	}
}

// WithRegisterer registers the hub metrics with reg instead of a private
// registry.
func WithRegisterer(reg prometheus.Registerer) Option {
	return func(h *Hub) {
		h.reg = reg
	}
}

type client struct {
	conn *websocket.Conn
	out  chan []byte
}

// Hub fans snapshots out to every connected client.
type Hub struct {
	ctx     context.Context
	ctrl    Controller
	log     *log.Logger
	reg     prometheus.Registerer
	metrics *Metrics

	upgrader websocket.Upgrader

	mu      sync.Mutex
	clients map[*client]struct{}
}

// NewHub creates a hub. ctx bounds auto-play started by clients.
func NewHub(ctx context.Context, ctrl Controller, opts ...Option) *Hub {
	h := &Hub{
		ctx:  ctx,
		ctrl: ctrl,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4 * 1024,
			WriteBufferSize: 16 * 1024,
			CheckOrigin:     func(r *http.Request) bool { return true }, // local renderers
		},
		clients: make(map[*client]struct{}),
	}
	for _, opt := range opts {
		opt(h)
	}
	h.log = logging.OrDiscard(h.log)
	if h.reg == nil {
		h.reg = prometheus.NewRegistry()
	}
	h.metrics = NewMetrics("cubestate", h.reg)
	return h
}

// Metrics returns the hub instruments.
func (h *Hub) Metrics() *Metrics {
	return h.metrics
}

// ClientCount returns the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// Broadcast sends a snapshot to every client. A client whose queue is full
// is disconnected.
func (h *Hub) Broadcast(snap playback.Snapshot) {
	b, err := json.Marshal(Message{Type: "snapshot", Snapshot: &snap})
	if err != nil {
		h.log.Error("failed to encode snapshot", "error", err)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	h.metrics.Broadcasts.Inc()
	for c := range h.clients {
		select {
		case c.out <- b:
		default:
			h.log.Warn("dropping slow client", "remote", c.conn.RemoteAddr())
			h.metrics.Dropped.Inc()
			h.removeLocked(c)
		}
	}
}

// Close disconnects every client.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		h.removeLocked(c)
	}
}

// Handler upgrades the request and serves one client until it disconnects.
func (h *Hub) Handler() http.HandlerFunc {
	return func(rw http.ResponseWriter, r *http.Request) {
		conn, err := h.upgrader.Upgrade(rw, r, nil)
		if err != nil {
			h.log.Debug("upgrade failed", "error", err)
			return
		}

		c := &client{conn: conn, out: make(chan []byte, queueSize)}
		h.register(c)
		defer h.unregister(c)

		// Writer goroutine.
		go h.writeLoop(c)

		// Greet with the current position.
		snap := h.ctrl.Snapshot()
		h.send(c, Message{Type: "snapshot", Snapshot: &snap})

		// Reader loop.
		for {
			_ = conn.SetReadDeadline(time.Now().Add(readTimeout))
			_, msg, err := conn.ReadMessage()
			if err != nil {
				return
			}

			var cmd Command
			if err := json.Unmarshal(msg, &cmd); err != nil {
				h.send(c, Message{Type: "error", Error: "malformed command"})
				continue
			}
			if err := h.dispatch(cmd); err != nil {
				h.send(c, Message{Type: "error", Error: err.Error()})
			}
		}
	}
}

// dispatch applies a command. Snapshots reach clients through the
// controller's step hook, so nothing is sent here on success.
func (h *Hub) dispatch(cmd Command) error {
	h.log.Debug("command", "action", cmd.Action, "step", cmd.Step)

	switch cmd.Action {
	case "next":
		h.ctrl.Next()
	case "prev":
		h.ctrl.Prev()
	case "jump":
		if err := h.ctrl.JumpTo(cmd.Step); err != nil {
			return err
		}
	case "reset":
		h.ctrl.Reset()
	case "play":
		if err := h.ctrl.Play(h.ctx); err != nil {
			return err
		}
	case "pause":
		h.ctrl.Pause()
	case "speed":
		speed, err := playback.ParseSpeed(cmd.Speed)
		if err != nil {
			return err
		}
		h.ctrl.SetSpeed(h.ctx, speed)
	default:
		h.metrics.Commands.WithLabelValues("unknown").Inc()
		return fmt.Errorf("unknown action %q", cmd.Action)
	}

	h.metrics.Commands.WithLabelValues(cmd.Action).Inc()
	return nil
}

func (h *Hub) writeLoop(c *client) {
	for b := range c.out {
		_ = c.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
		if err := c.conn.WriteMessage(websocket.TextMessage, b); err != nil {
			_ = c.conn.Close()
			return
		}
	}
	// Queue closed by the hub.
	_ = c.conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
		time.Now().Add(time.Second))
	_ = c.conn.Close()
}

func (h *Hub) send(c *client, msg Message) {
	b, err := json.Marshal(msg)
	if err != nil {
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[c]; !ok {
		return
	}
	select {
	case c.out <- b:
	default:
		h.metrics.Dropped.Inc()
		h.removeLocked(c)
	}
}

func (h *Hub) register(c *client) {
	h.mu.Lock()
	h.clients[c] = struct{}{}
	h.mu.Unlock()

	h.metrics.Clients.Inc()
	h.log.Info("renderer connected", "remote", c.conn.RemoteAddr())
}

func (h *Hub) unregister(c *client) {
	h.mu.Lock()
	h.removeLocked(c)
	h.mu.Unlock()
}

// removeLocked closes the client queue once; the writer then closes the
// connection.
func (h *Hub) removeLocked(c *client) {
	if _, ok := h.clients[c]; !ok {
		return
	}
	delete(h.clients, c)
	close(c.out)
	h.metrics.Clients.Dec()
	h.log.Info("renderer disconnected", "remote", c.conn.RemoteAddr())
}
