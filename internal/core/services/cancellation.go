package services

import (
	"context"
	"sync"
)

// CancellationHandle is a one-shot cancel signal for a background task.
// The owner replaces it wholesale for each new task.
type CancellationHandle struct {
	ctx    context.Context
	cancel context.CancelFunc
	once   sync.Once
}

// NewCancellationHandle derives a cancellable handle from parent.
func NewCancellationHandle(parent context.Context) *CancellationHandle {
	ctx, cancel := context.WithCancel(parent)
	return &CancellationHandle{ctx: ctx, cancel: cancel}
}

// Cancel fires the signal. Calling it more than once is a no-op.
// A nil handle is ignored.
func (h *CancellationHandle) Cancel() {
	if h == nil {
		return
	}
	h.once.Do(h.cancel)
}

// Cancelled reports whether the signal has fired. It has no side effects.
func (h *CancellationHandle) Cancelled() bool {
	if h == nil {
		return true
	}
	return h.ctx.Err() != nil
}

// Done returns a channel closed when the signal fires.
func (h *CancellationHandle) Done() <-chan struct{} {
	return h.ctx.Done()
}

// Context returns a context cancelled together with the handle.
func (h *CancellationHandle) Context() context.Context {
	return h.ctx
}
