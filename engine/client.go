package engine

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"kataview/event"
)

// Client is the websocket analysis client. It keeps one connection per
// session and routes responses back by query ID. Every request is
// tagged with the position signature it was computed for; a response
// whose signature no longer matches the live position is dropped, so a
// stale evaluation can never be attributed to the wrong board.
type Client struct {
	settings Settings
	current  func() string // live position signature
	bus      *event.Bus
	log      *zap.SugaredLogger

	mu      sync.Mutex
	conn    *websocket.Conn
	pending map[string]string // query ID -> position signature
	order   []string          // pending query IDs, oldest first
	handler func(*Analysis)
	closed  bool
}

// NewClient creates an analysis client. current reports the signature
// of the position the UI is showing and is consulted on every arrival.
func NewClient(settings Settings, current func() string, bus *event.Bus, log *zap.SugaredLogger) *Client {
	return &Client{
		settings: settings,
		current:  current,
		bus:      bus,
		log:      log,
		pending:  make(map[string]string),
	}
}

// OnAnalysis registers the handler invoked for fresh responses. The
// handler runs on the reader goroutine; UI consumers must hop back to
// the UI loop themselves.
func (c *Client) OnAnalysis(fn func(*Analysis)) {
	c.mu.Lock()
	c.handler = fn
	c.mu.Unlock()
}

// Connect dials the analysis server and starts the reader goroutine.
func (c *Client) Connect(ctx context.Context) error {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, c.settings.ServerURL, nil)
	if err != nil {
		return fmt.Errorf("dial analysis server: %w", err)
	}

	c.mu.Lock()
	c.conn = conn
	c.closed = false
	c.mu.Unlock()

	c.log.Infow("connected to analysis server", "url", c.settings.ServerURL)
	go c.readLoop(conn)
	return nil
}

// Analyze submits a query. A missing ID is filled in; the query's
// signature is remembered for the staleness check on arrival.
func (c *Client) Analyze(q Query) error {
	if q.ID == "" {
		q.ID = uuid.New().String()
	}

	c.mu.Lock()
	conn := c.conn
	if conn == nil {
		c.mu.Unlock()
		return fmt.Errorf("analysis client not connected")
	}
	c.pending[q.ID] = q.Signature
	c.order = append(c.order, q.ID)
	err := conn.WriteJSON(q)
	c.mu.Unlock()

	if err != nil {
		c.forget(q.ID)
		return fmt.Errorf("send analysis query: %w", err)
	}
	c.log.Debugw("analysis query sent", "id", q.ID, "moves", len(q.Moves), "visits", q.MaxVisits)
	return nil
}

// Close shuts the connection down. Outstanding requests are dropped.
func (c *Client) Close() {
	c.mu.Lock()
	c.closed = true
	conn := c.conn
	c.conn = nil
	c.pending = make(map[string]string)
	c.order = nil
	c.mu.Unlock()

	if conn != nil {
		conn.Close()
	}
}

func (c *Client) readLoop(conn *websocket.Conn) {
	for {
		var a Analysis
		if err := conn.ReadJSON(&a); err != nil {
			c.mu.Lock()
			closed := c.closed
			c.mu.Unlock()
			if !closed {
				c.log.Warnw("analysis connection lost", "err", err)
			}
			return
		}
		c.dispatch(&a)
	}
}

// dispatch applies the ordering rule: the response is delivered only
// when the position it was requested for is still the one on screen.
func (c *Client) dispatch(a *Analysis) {
	sig, ok := c.forget(a.ID)
	if !ok {
		c.log.Debugw("response for unknown query", "id", a.ID)
		return
	}
	if a.Error != "" {
		c.log.Warnw("analysis server error", "id", a.ID, "err", a.Error)
		return
	}

	if c.current != nil && c.current() != sig {
		c.log.Debugw("stale analysis discarded", "id", a.ID, "signature", sig)
		c.publish(event.AnalysisDiscarded{Signature: sig})
		return
	}

	c.mu.Lock()
	handler := c.handler
	c.mu.Unlock()

	if handler != nil {
		handler(a)
	}
	c.publish(event.AnalysisApplied{Signature: sig})
}

// forget removes and returns the pending signature for a query ID. An
// empty ID falls back to the oldest pending request: the server answers
// queries in the order they were sent and its documented response
// payload does not echo the request ID.
func (c *Client) forget(id string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if id == "" {
		if len(c.order) == 0 {
			return "", false
		}
		id = c.order[0]
	}
	sig, ok := c.pending[id]
	if !ok {
		return "", false
	}
	delete(c.pending, id)
	for i, pending := range c.order {
		if pending == id {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
	return sig, true
}

func (c *Client) publish(e event.Event) {
	if c.bus != nil {
		c.bus.Publish(e)
	}
}
