package notify

import (
	"context"
	"fmt"
	"log"
	"sync"

	"github.com/automoto/doomerang-soundtrack/diag"
	"github.com/automoto/doomerang-soundtrack/soundtrack"
	"github.com/coder/websocket"
)

type ClientState int

const (
	StateDisconnected ClientState = iota
	StateConnecting
	StateConnected
	StateError
)

func (s ClientState) String() string {
	switch s {
	case StateConnecting:
		return "connecting"
	case StateConnected:
		return "connected"
	case StateError:
		return "error"
	}
	return "disconnected"
}

// Client subscribes to a websocket feed of gameplay notifications and turns
// each frame into a soundtrack event.
// All shared fields are protected by mu.
type Client struct {
	url      string
	reporter diag.Reporter

	mu        sync.RWMutex
	state     ClientState
	lastError error
	received  int
}

func NewClient(url string, reporter diag.Reporter) *Client {
	return &Client{url: url, reporter: diag.OrDefault(reporter)}
}

// Run dials the feed and delivers events to out in arrival order until the
// server closes the connection or ctx is done. A malformed frame is reported
// and skipped. A normal close returns nil.
func (c *Client) Run(ctx context.Context, out chan<- soundtrack.Event) error {
	c.setState(StateConnecting)

	conn, _, err := websocket.Dial(ctx, c.url, nil)
	if err != nil {
		return c.fail(fmt.Errorf("connection failed: %w", err))
	}
	defer conn.CloseNow()

	log.Printf("[notify] connected to %s", c.url)
	c.setState(StateConnected)

	for {
		typ, data, err := conn.Read(ctx)
		if err != nil {
			if websocket.CloseStatus(err) == websocket.StatusNormalClosure {
				log.Printf("[notify] disconnected from %s", c.url)
				c.setState(StateDisconnected)
				return nil
			}
			if ctx.Err() != nil {
				c.setState(StateDisconnected)
				return ctx.Err()
			}
			return c.fail(fmt.Errorf("read failed: %w", err))
		}

		ev, err := c.decode(typ, data)
		if err != nil {
			c.reporter.Report(err)
			continue
		}

		select {
		case out <- ev:
			c.mu.Lock()
			c.received++
			c.mu.Unlock()
		case <-ctx.Done():
			_ = conn.Close(websocket.StatusNormalClosure, "")
			c.setState(StateDisconnected)
			return ctx.Err()
		}
	}
}

func (c *Client) decode(typ websocket.MessageType, data []byte) (soundtrack.Event, error) {
	msg, err := Decode(typ, data)
	if err != nil {
		return soundtrack.Event{}, err
	}
	ev, err := msg.Event()
	if err != nil {
		return soundtrack.Event{}, fmt.Errorf("invalid notification: %w", err)
	}
	return ev, nil
}

func (c *Client) State() ClientState {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state
}

func (c *Client) LastError() error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.lastError
}

// Received returns how many events were delivered.
func (c *Client) Received() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.received
}

func (c *Client) setState(s ClientState) {
	c.mu.Lock()
	c.state = s
	c.mu.Unlock()
}

func (c *Client) fail(err error) error {
	log.Printf("[notify] error: %v", err)
	c.mu.Lock()
	c.state = StateError
	c.lastError = err
	c.mu.Unlock()
	c.reporter.Report(err)
	return err
}
