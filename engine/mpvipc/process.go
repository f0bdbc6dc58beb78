package mpvipc

import (
	"crypto/rand"
	"errors"
	"fmt"
	"net"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"github.com/reelctl/reelctl/constant"
	"github.com/reelctl/reelctl/log"
)

const (
	socketWaitRetries = 10
	socketWaitDelay   = 300 * time.Millisecond
	quitTimeout       = 3 * time.Second
)

// baseArgs start every mpv process. Engine arguments are appended after them and win.
var baseArgs = []string{
	"--idle=yes",
	"--no-terminal",
	"--force-window=yes",
	"--input-default-bindings=yes",
}

// process is a running mpv child.
type process struct {
	socketPath string
	cmd        *exec.Cmd
	exited     chan struct{} // closed when mpv exits
}

// socketPath returns a random socket path in dir.
func socketPath(dir string) (string, error) {
	randomBytes := make([]byte, 4)
	if _, err := rand.Read(randomBytes); err != nil {
		return "", fmt.Errorf("generate socket name: %w", err)
	}
	return filepath.Join(dir, fmt.Sprintf("%s-%x.sock", constant.App, randomBytes)), nil
}

// launch starts mpv and waits until its IPC socket accepts connections.
func launch(path, socket string, args []string) (*process, error) {
	argv := append([]string{}, baseArgs...)
	argv = append(argv, fmt.Sprintf("--input-ipc-server=%s", socket))
	argv = append(argv, args...)

	cmd := exec.Command(path, argv...)

	// Detach from the parent process group so terminal signals reach us, not mpv.
	cmd.SysProcAttr = sysProcAttr()
	cmd.Stdout = nil
	cmd.Stderr = nil
	cmd.Stdin = nil

	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("start mpv: %w", err)
	}

	p := &process{
		socketPath: socket,
		cmd:        cmd,
		exited:     make(chan struct{}),
	}

	// Reap the process so it never lingers as a zombie.
	go func() {
		_ = cmd.Wait()
		close(p.exited)
	}()

	if err := p.waitForSocket(); err != nil {
		select {
		case <-p.exited:
		default:
			log.Warnf("killing mpv: socket never became ready")
			_ = killProcess(cmd)
		}
		_ = os.Remove(socket)
		return nil, fmt.Errorf("mpv socket not ready: %w", err)
	}

	log.Debugf("mpv started (pid %d, socket %s)", cmd.Process.Pid, socket)
	return p, nil
}

// waitForSocket polls until the mpv IPC socket is accepting connections.
func (p *process) waitForSocket() error {
	for i := 0; i < socketWaitRetries; i++ {
		select {
		case <-p.exited:
			return errors.New("mpv exited before socket was ready")
		case <-time.After(socketWaitDelay):
		}

		conn, err := net.Dial("unix", p.socketPath)
		if err == nil {
			_ = conn.Close()
			return nil
		}
	}
	return fmt.Errorf("socket %s not ready after %d attempts", p.socketPath, socketWaitRetries)
}

// stop asks mpv to quit through c, kills it if it does not exit in time and removes the
// socket.
func (p *process) stop(c *client) {
	if _, err := c.command("quit"); err != nil {
		log.Debugf("mpv quit: %v", err)
	}

	select {
	case <-p.exited:
	case <-time.After(quitTimeout):
		log.Warnf("mpv did not quit within %s, killing it", quitTimeout)
		_ = killProcess(p.cmd)
		<-p.exited
	}

	_ = os.Remove(p.socketPath)
}
