package glcore

import (
	"errors"
	"runtime"
	"sync"
)

// ErrContextClosed is returned by Run after the context has been closed.
var ErrContextClosed = errors.New("glcore: context closed")

// Context describes one graphics context: its API family and version for
// capability probing, its GL function table, and the dedicated worker
// goroutine that owns the underlying GL state.
//
// GL calls are only valid on the thread that owns the context, so every
// operation touching GL state must go through Run. The worker goroutine
// locks itself to an OS thread for its lifetime.
type Context struct {
	api   API
	major int
	minor int
	gl    *Funcs

	work chan func()

	closeOnce sync.Once
	closed    chan struct{}
	done      chan struct{}
}

// NewContext creates a context for the given API version and function
// table and starts its worker thread.
//
// In production the worker must be the thread that made the GL context
// current; bindings typically arrange that by creating the GL context from
// a setup closure passed through Run immediately after NewContext.
func NewContext(api API, major, minor int, gl *Funcs) *Context {
	c := &Context{
		api:    api,
		major:  major,
		minor:  minor,
		gl:     gl,
		work:   make(chan func()),
		closed: make(chan struct{}),
		done:   make(chan struct{}),
	}
	go c.loop()
	return c
}

func (c *Context) loop() {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()
	defer close(c.done)
	for {
		select {
		case fn := <-c.work:
			fn()
		case <-c.closed:
			return
		}
	}
}

// GL returns the context's function table.
func (c *Context) GL() *Funcs { return c.gl }

// API returns the context's API family.
func (c *Context) API() API { return c.api }

// Version returns the context's major and minor version.
func (c *Context) Version() (major, minor int) { return c.major, c.minor }

// Run executes fn on the context's worker thread and blocks until it
// returns, propagating fn's error. There is no queueing beyond the
// caller's own call and no timeout: Run is a synchronous RPC onto the
// context thread.
func (c *Context) Run(fn func() error) error {
	res := make(chan error, 1)
	select {
	case c.work <- func() { res <- fn() }:
		return <-res
	case <-c.closed:
		return ErrContextClosed
	}
}

// Close stops the worker thread. Pending Run calls that were already
// accepted complete first; later calls fail with ErrContextClosed.
// Close blocks until the worker has exited.
func (c *Context) Close() {
	c.closeOnce.Do(func() { close(c.closed) })
	<-c.done
}
