package mpvipc

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"sync"

	"github.com/reelctl/reelctl/engine"
	"github.com/reelctl/reelctl/engine/mpvcore"
	"github.com/reelctl/reelctl/log"
)

// eventLoop reads mpv events from a dedicated connection and hands their engine
// translation to emit. The read goroutine plays the part of the engine's event thread.
type eventLoop struct {
	conn       net.Conn
	translator mpvcore.Translator
	emit       func(...engine.Event)

	stopOnce sync.Once
	done     chan struct{}
}

// observeBase offsets observe_property ids so they cannot be mistaken for anything else
// on the connection.
const observeBase = 100

// startEventLoop subscribes to the observed properties on conn and starts reading. The
// subscriptions are sent on the same connection, since mpv only reports property changes
// to the client that asked for them.
func startEventLoop(conn net.Conn, emit func(...engine.Event)) (*eventLoop, error) {
	for i, name := range mpvcore.Observed {
		payload, err := json.Marshal(ipcCommand{
			Command:   []any{"observe_property", observeBase + i, name},
			RequestID: observeBase + i,
		})
		if err != nil {
			return nil, fmt.Errorf("marshal observe %s: %w", name, err)
		}
		if _, err := conn.Write(append(payload, '\n')); err != nil {
			return nil, fmt.Errorf("observe %s: %w", name, err)
		}
	}

	l := &eventLoop{
		conn: conn,
		emit: emit,
		done: make(chan struct{}),
	}
	go l.read()

	log.Debugf("mpv event loop started (observing: %v)", mpvcore.Observed)
	return l, nil
}

func (l *eventLoop) read() {
	defer close(l.done)

	scanner := bufio.NewScanner(l.conn)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	for scanner.Scan() {
		if !l.process(scanner.Bytes()) {
			return
		}
	}

	if err := scanner.Err(); err != nil && !errors.Is(err, net.ErrClosed) && !errors.Is(err, io.EOF) {
		log.Warnf("mpv event loop read error: %v", err)
	}
}

// process translates one line and reports whether reading should continue.
func (l *eventLoop) process(line []byte) bool {
	var msg ipcMessage
	if err := json.Unmarshal(line, &msg); err != nil {
		log.Tracef("skipping unparseable mpv line: %s", line)
		return true
	}

	if msg.Event == "" {
		if msg.Error != "" && msg.Error != "success" {
			log.Warnf("mpv rejected request %v: %s", msg.RequestID, msg.Error)
		}
		return true
	}

	switch msg.Event {
	case "start-file":
		l.emit(l.translator.StartFile()...)
	case "file-loaded":
		l.emit(l.translator.FileLoaded()...)
	case "end-file":
		l.emit(l.translator.EndFile(msg.Reason)...)
	case "property-change":
		l.emit(l.translator.Property(msg.Name, msg.Data)...)
	case "shutdown":
		return false
	}
	return true
}

// stop closes the connection and waits for the read goroutine to return.
func (l *eventLoop) stop() {
	l.stopOnce.Do(func() {
		_ = l.conn.Close()
	})
	<-l.done
}
