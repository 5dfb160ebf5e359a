package media

import (
	"context"
	"sync"
)

// Starter issues queries. Controllers depend on this rather than on Loader so
// tests can drive them without goroutines.
type Starter interface {
	Start(q Query) *Handle
}

// Loader runs each query on its own goroutine against a Source.
type Loader struct {
	src Source
	ctx context.Context
}

// NewLoader returns a loader whose queries are bound to ctx.
func NewLoader(ctx context.Context, src Source) *Loader {
	return &Loader{src: src, ctx: ctx}
}

// Start launches q and returns a handle to its pending result.
func (l *Loader) Start(q Query) *Handle {
	h := newHandle(l.ctx, q)
	go func() {
		h.resolve(Run(h.ctx, l.src, q))
	}()
	return h
}

// Handle is a pending query result. A canceled handle never delivers.
type Handle struct {
	query  Query
	ctx    context.Context
	cancel context.CancelFunc
	done   chan Result
	once   sync.Once
}

func newHandle(parent context.Context, q Query) *Handle {
	ctx, cancel := context.WithCancel(parent)
	return &Handle{
		query:  q,
		ctx:    ctx,
		cancel: cancel,
		done:   make(chan Result, 1),
	}
}

// Resolved returns a handle that already holds res. Used by synchronous
// sources and tests.
func Resolved(res Result) *Handle {
	h := newHandle(context.Background(), res.Query)
	h.resolve(res)
	return h
}

func (h *Handle) resolve(res Result) {
	h.once.Do(func() {
		h.done <- res
	})
}

// Query returns the query this handle answers.
func (h *Handle) Query() Query {
	return h.query
}

// Cancel abandons the query. Safe to call more than once and on nil.
func (h *Handle) Cancel() {
	if h == nil {
		return
	}
	h.cancel()
}

// Canceled reports whether Cancel was called.
func (h *Handle) Canceled() bool {
	return h.ctx.Err() != nil
}

// Wait blocks until the result is available. It reports false when the
// handle was canceled before or while waiting.
func (h *Handle) Wait() (Result, bool) {
	select {
	case res := <-h.done:
		if h.ctx.Err() != nil {
			return Result{}, false
		}
		return res, true
	case <-h.ctx.Done():
		return Result{}, false
	}
}
