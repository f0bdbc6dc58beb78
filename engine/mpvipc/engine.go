package mpvipc

import (
	"fmt"
	"net"
	"os/exec"
	"slices"
	"sync"

	"github.com/reelctl/reelctl/engine"
	"github.com/reelctl/reelctl/engine/mpvcore"
	"github.com/reelctl/reelctl/log"
	"github.com/reelctl/reelctl/where"
)

// DefaultPath is the mpv executable looked up in PATH when Engine.Path is empty.
const DefaultPath = "mpv"

// Engine launches one mpv process per player.
type Engine struct {
	// Path is the mpv executable.
	Path string

	// SocketDir holds the IPC sockets. It defaults to the application temp directory.
	SocketDir string
}

// New returns an engine that runs the mpv executable at path.
func New(path string) *Engine {
	return &Engine{Path: path}
}

// Open resolves the mpv executable. args are passed to every mpv process started from the
// instance, after reelctl's own arguments.
func (e *Engine) Open(args []string) (engine.Instance, error) {
	path := e.Path
	if path == "" {
		path = DefaultPath
	}

	resolved, err := exec.LookPath(path)
	if err != nil {
		return nil, fmt.Errorf("find mpv: %w", err)
	}

	dir := e.SocketDir
	if dir == "" {
		dir = where.Temp()
	}

	return &Instance{path: resolved, socketDir: dir, args: slices.Clone(args)}, nil
}

// Instance is a resolved mpv executable plus arguments.
type Instance struct {
	path      string
	socketDir string
	args      []string

	mu      sync.Mutex
	players int
}

// NewPlayer starts an mpv process and connects to it.
func (i *Instance) NewPlayer() (engine.Player, error) {
	socket, err := socketPath(i.socketDir)
	if err != nil {
		return nil, err
	}

	proc, err := launch(i.path, socket, i.args)
	if err != nil {
		return nil, err
	}

	p, err := connect(socket, proc)
	if err != nil {
		proc.stop(newClient(socket))
		return nil, err
	}

	i.mu.Lock()
	i.players++
	i.mu.Unlock()
	return p, nil
}

// Release implements engine.Instance. Each player owns its process, so there is nothing
// left to free.
func (i *Instance) Release() {
	i.mu.Lock()
	defer i.mu.Unlock()
	log.Debugf("mpv instance released after %d player(s)", i.players)
}

// connect attaches a Player to an mpv listening on socket. proc may be nil when mpv is
// not a child of this process.
func connect(socket string, proc *process) (*Player, error) {
	conn, err := net.Dial("unix", socket)
	if err != nil {
		return nil, fmt.Errorf("event connection: %w", err)
	}

	p := &Player{
		proc: proc,
		cmd:  newClient(socket),
	}
	p.overlay = mpvcore.NewOverlay(p.runStrings)

	p.events, err = startEventLoop(conn, p.handlers.Emit)
	if err != nil {
		_ = conn.Close()
		return nil, err
	}

	return p, nil
}
