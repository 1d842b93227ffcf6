// Package signals receives external control events for a running dashboard:
// line-oriented unix domain sockets for instant refreshes and surprise
// control, and the USR1/USR2 process signals for stepping and firing
// surprises from shell hooks.
package signals

import (
	"bufio"
	stderrors "errors"
	"net"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"sync"
	"syscall"

	"github.com/wavelength-fm/kiosk/internal/errors"
	"github.com/wavelength-fm/kiosk/internal/logger"
)

// Socket file names under the configured socket directory, one per trigger
// class.
const (
	RefreshSocket       = "refresh"
	SurpriseSocket      = "surprise"
	SurpriseIndexSocket = "surprise-index"
)

// Handler receives decoded control events. Callbacks run on listener
// goroutines and must hand off quickly (in practice they enqueue onto the
// scheduler's trigger queue or bump an atomic counter).
type Handler struct {
	// Refresh is called with a source name from the refresh socket.
	Refresh func(source string)

	// Surprise is called with a variant name from the surprise socket.
	Surprise func(variant string)

	// SurpriseStep is called on an empty surprise-index payload or SIGUSR1.
	SurpriseStep func()

	// SurpriseFire is called on SIGUSR2.
	SurpriseFire func()
}

// Registry owns the socket listeners and the process-signal subscription.
// Create one per dashboard; there are no package globals.
type Registry struct {
	dir     string
	handler Handler
	log     logger.Logger

	listeners []net.Listener
	sigCh     chan os.Signal
	done      chan struct{}
	wg        sync.WaitGroup

	mu      sync.Mutex
	started bool
}

// NewRegistry builds a registry that will listen under dir.
func NewRegistry(dir string, handler Handler, log logger.Logger) *Registry {
	if log == nil {
		log = logger.Default()
	}
	return &Registry{
		dir:     dir,
		handler: handler,
		log:     log,
	}
}

// SocketPath returns the path of a named control socket under the registry's
// directory.
func (r *Registry) SocketPath(name string) string {
	return filepath.Join(r.dir, name)
}

// Start creates the socket directory, binds the three control sockets, and
// subscribes to USR1/USR2. Stale socket files from a previous run are
// removed before binding.
func (r *Registry) Start() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.started {
		return nil
	}

	if err := os.MkdirAll(r.dir, 0o755); err != nil {
		return errors.WrapWithCode(err, errors.ErrSignal,
			"Failed to create socket directory "+r.dir,
			"Check permissions on the socket directory")
	}

	r.done = make(chan struct{})

	sockets := []struct {
		name     string
		dispatch func(payload string)
	}{
		{RefreshSocket, func(p string) { r.call1(r.handler.Refresh, p) }},
		{SurpriseSocket, func(p string) { r.call1(r.handler.Surprise, p) }},
		{SurpriseIndexSocket, func(string) { r.call0(r.handler.SurpriseStep) }},
	}

	for _, s := range sockets {
		path := r.SocketPath(s.name)
		_ = os.Remove(path)

		ln, err := net.Listen("unix", path)
		if err != nil {
			r.closeLocked()
			return errors.WrapWithCode(err, errors.ErrSignal,
				"Failed to listen on control socket "+path,
				"Another dashboard instance may be running")
		}
		r.listeners = append(r.listeners, ln)

		r.wg.Add(1)
		go r.acceptLoop(ln, s.name, s.dispatch)
	}

	r.sigCh = make(chan os.Signal, 4)
	signal.Notify(r.sigCh, syscall.SIGUSR1, syscall.SIGUSR2)
	r.wg.Add(1)
	go r.signalLoop()

	r.started = true
	r.log.Debug("signal intake listening under %s", r.dir)
	return nil
}

// Stop tears down the listeners and the signal subscription, removes the
// socket files, and waits for all goroutines to exit. Safe to call twice.
func (r *Registry) Stop() {
	r.mu.Lock()
	if !r.started {
		r.mu.Unlock()
		return
	}
	r.started = false
	r.closeLocked()
	r.mu.Unlock()

	r.wg.Wait()

	for _, name := range []string{RefreshSocket, SurpriseSocket, SurpriseIndexSocket} {
		_ = os.Remove(r.SocketPath(name))
	}
}

func (r *Registry) closeLocked() {
	if r.done != nil {
		close(r.done)
	}
	for _, ln := range r.listeners {
		_ = ln.Close()
	}
	r.listeners = nil
	if r.sigCh != nil {
		signal.Stop(r.sigCh)
	}
}

// acceptLoop serves one control socket: accept, read a single line, dispatch,
// close. The sender is never held beyond its one write.
func (r *Registry) acceptLoop(ln net.Listener, name string, dispatch func(string)) {
	defer r.wg.Done()

	for {
		conn, err := ln.Accept()
		if err != nil {
			select {
			case <-r.done:
				return
			default:
			}
			if stderrors.Is(err, net.ErrClosed) {
				return
			}
			// A transient accept failure must not take the whole trigger
			// class down for the rest of the run.
			r.log.Warn("accept on %s socket failed: %v", name, err)
			continue
		}

		line, err := bufio.NewReader(conn).ReadString('\n')
		_ = conn.Close()
		if err != nil && line == "" {
			continue
		}
		dispatch(strings.TrimSpace(line))
	}
}

func (r *Registry) signalLoop() {
	defer r.wg.Done()

	for {
		select {
		case <-r.done:
			return
		case sig := <-r.sigCh:
			switch sig {
			case syscall.SIGUSR1:
				r.log.Debug("SIGUSR1: stepping surprise index")
				r.call0(r.handler.SurpriseStep)
			case syscall.SIGUSR2:
				r.log.Debug("SIGUSR2: firing surprise")
				r.call0(r.handler.SurpriseFire)
			}
		}
	}
}

func (r *Registry) call0(fn func()) {
	if fn != nil {
		fn()
	}
}

func (r *Registry) call1(fn func(string), payload string) {
	if fn != nil {
		fn(payload)
	}
}

// Send writes one payload line to a named control socket and closes the
// connection. It is the client half used by the trigger and surprise CLI
// commands.
func Send(dir, socket, payload string) error {
	path := filepath.Join(dir, socket)

	conn, err := net.Dial("unix", path)
	if err != nil {
		return errors.WrapWithCode(err, errors.ErrSignal,
			"Failed to reach the dashboard control socket at "+path,
			"Is the dashboard running with the same socket directory?")
	}
	defer conn.Close()

	if _, err := conn.Write([]byte(payload + "\n")); err != nil {
		return errors.WrapWithCode(err, errors.ErrSignal,
			"Failed to write to the control socket at "+path, "")
	}
	return nil
}
