// Package mpvipc implements engine.Engine by running mpv as a child process and driving
// it over its JSON-IPC socket.
package mpvipc

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"sync"
	"time"
)

// ipcCommand is the JSON structure sent to mpv's IPC socket.
type ipcCommand struct {
	Command   []any `json:"command"`
	RequestID int   `json:"request_id"`
}

// ipcMessage is any line mpv writes to the socket: a reply when RequestID is set, an event
// otherwise.
type ipcMessage struct {
	Data      any    `json:"data"`
	Error     string `json:"error"`
	RequestID *int   `json:"request_id"`

	Event  string `json:"event"`
	Name   string `json:"name"`
	Reason string `json:"reason"`
	ID     int    `json:"id"`
}

const (
	maxRetries   = 3
	retryDelay   = 100 * time.Millisecond
	readDeadline = 2 * time.Second
	maxLineSize  = 1 << 20
)

// ErrProperty reports that mpv rejected a command, typically because a property is not
// available yet. It is never retried.
var ErrProperty = errors.New("mpv error")

// client sends commands over one persistent connection, redialling when it breaks.
type client struct {
	socketPath string

	mu     sync.Mutex
	conn   net.Conn
	reader *bufio.Reader
	nextID int
	closed bool
}

func newClient(socketPath string) *client {
	return &client{socketPath: socketPath}
}

// command sends an IPC command and returns mpv's data. Transient socket errors are
// retried; errors reported by mpv are not.
func (c *client) command(args ...any) (any, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil, net.ErrClosed
	}

	var lastErr error
	for attempt := 0; attempt < maxRetries; attempt++ {
		if attempt > 0 {
			time.Sleep(retryDelay)
		}

		data, err := c.roundTrip(args)
		if err == nil || errors.Is(err, ErrProperty) {
			return data, err
		}

		lastErr = err
		c.drop()
	}

	return nil, fmt.Errorf("ipc command failed after %d attempts: %w", maxRetries, lastErr)
}

func (c *client) roundTrip(args []any) (any, error) {
	if c.conn == nil {
		conn, err := net.Dial("unix", c.socketPath)
		if err != nil {
			return nil, fmt.Errorf("connect: %w", err)
		}
		c.conn = conn
		c.reader = bufio.NewReader(conn)
	}

	c.nextID++
	id := c.nextID

	payload, err := json.Marshal(ipcCommand{Command: args, RequestID: id})
	if err != nil {
		return nil, fmt.Errorf("marshal: %w", err)
	}

	if _, err := c.conn.Write(append(payload, '\n')); err != nil {
		return nil, fmt.Errorf("write: %w", err)
	}

	if err := c.conn.SetReadDeadline(time.Now().Add(readDeadline)); err != nil {
		return nil, fmt.Errorf("set deadline: %w", err)
	}

	// Events are broadcast to every client, so skip lines until our reply arrives.
	for {
		line, err := c.reader.ReadBytes('\n')
		if err != nil {
			return nil, fmt.Errorf("read: %w", err)
		}

		var msg ipcMessage
		if err := json.Unmarshal(line, &msg); err != nil {
			continue
		}
		if msg.RequestID == nil || *msg.RequestID != id {
			continue
		}

		if msg.Error != "" && msg.Error != "success" {
			return nil, fmt.Errorf("%w: %s", ErrProperty, msg.Error)
		}
		return msg.Data, nil
	}
}

func (c *client) drop() {
	if c.conn != nil {
		_ = c.conn.Close()
		c.conn = nil
		c.reader = nil
	}
}

func (c *client) close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	c.drop()
}
