// Package instance keeps a single desktop window per user. The first
// process listens on a unix socket; later launches forward their image
// path to it and exit.
package instance

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/gogpu/presenter"
)

// ErrAlreadyRunning is returned by Acquire when another live instance
// holds the socket.
var ErrAlreadyRunning = errors.New("instance: already running")

const (
	dialTimeout = time.Second
	readTimeout = 5 * time.Second
)

// Message is one request sent to the primary instance, encoded as a JSON
// line.
type Message struct {
	// Open is the image path to load, if any.
	Open string `json:"open,omitempty"`

	// Focus asks the primary to bring its window forward.
	Focus bool `json:"focus,omitempty"`
}

// SocketPath returns the socket used for name. It lives in
// $XDG_RUNTIME_DIR when set, otherwise in the temp directory.
func SocketPath(name string) string {
	dir := os.Getenv("XDG_RUNTIME_DIR")
	if dir == "" {
		dir = os.TempDir()
	}
	return filepath.Join(dir, name+".sock")
}

// Lock is the primary instance's claim on the socket.
type Lock struct {
	ln   net.Listener
	path string

	closeOnce sync.Once
	closeErr  error
}

// Acquire claims the socket for name. If a live instance answers on it,
// Acquire returns ErrAlreadyRunning; a socket left behind by a crashed
// process is removed and reclaimed.
func Acquire(name string) (*Lock, error) {
	path := SocketPath(name)
	ln, err := net.Listen("unix", path)
	if err == nil {
		return &Lock{ln: ln, path: path}, nil
	}

	conn, dialErr := net.DialTimeout("unix", path, dialTimeout)
	if dialErr == nil {
		_ = conn.Close()
		return nil, ErrAlreadyRunning
	}

	presenter.Logger().Debug("instance: removing stale socket", "path", path, "err", dialErr)
	if rmErr := os.Remove(path); rmErr != nil && !errors.Is(rmErr, os.ErrNotExist) {
		return nil, fmt.Errorf("instance: remove stale socket: %w", rmErr)
	}
	ln, err = net.Listen("unix", path)
	if err != nil {
		return nil, fmt.Errorf("instance: listen: %w", err)
	}
	return &Lock{ln: ln, path: path}, nil
}

// Path returns the socket path.
func (l *Lock) Path() string {
	return l.path
}

// Serve accepts connections until ctx is done or the lock is closed,
// calling fn for every message received. Connections are handled one at a
// time, so fn is never called concurrently.
func (l *Lock) Serve(ctx context.Context, fn func(Message)) error {
	stop := context.AfterFunc(ctx, func() { _ = l.Close() })
	defer stop()

	for {
		conn, err := l.ln.Accept()
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, net.ErrClosed) {
				return nil
			}
			return fmt.Errorf("instance: accept: %w", err)
		}
		l.handle(conn, fn)
	}
}

func (l *Lock) handle(conn net.Conn, fn func(Message)) {
	defer func() { _ = conn.Close() }()
	_ = conn.SetReadDeadline(time.Now().Add(readTimeout))

	log := presenter.Logger()
	sc := bufio.NewScanner(conn)
	for sc.Scan() {
		var msg Message
		if err := json.Unmarshal(sc.Bytes(), &msg); err != nil {
			log.Warn("instance: malformed message", "err", err)
			continue
		}
		log.Debug("instance: received", "open", msg.Open, "focus", msg.Focus)
		fn(msg)
	}
}

// Close releases the socket. It is safe to call more than once.
func (l *Lock) Close() error {
	l.closeOnce.Do(func() {
		l.closeErr = l.ln.Close()
		if err := os.Remove(l.path); err != nil && !errors.Is(err, os.ErrNotExist) && l.closeErr == nil {
			l.closeErr = err
		}
	})
	return l.closeErr
}

// Forward asks the primary instance for name to open path and raise its
// window. An empty path only raises the window.
func Forward(ctx context.Context, name, path string) error {
	var d net.Dialer
	conn, err := d.DialContext(ctx, "unix", SocketPath(name))
	if err != nil {
		return fmt.Errorf("instance: dial: %w", err)
	}
	defer func() { _ = conn.Close() }()

	if deadline, ok := ctx.Deadline(); ok {
		_ = conn.SetWriteDeadline(deadline)
	}
	if err := json.NewEncoder(conn).Encode(Message{Open: path, Focus: true}); err != nil {
		return fmt.Errorf("instance: send: %w", err)
	}
	presenter.Logger().Debug("instance: forwarded", "open", path)
	return nil
}
