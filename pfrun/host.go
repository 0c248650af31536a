package pfrun

import (
	"context"
	"errors"
	"sync"

	"github.com/reusee/pf/pfvm"
)

var ErrHostClosed = errors.New("host closed")

// Host gives other goroutines access to a VM owned by a Runner.
// Requests run on the runner's goroutine between polls.
type Host struct {
	requests  chan hostRequest
	closed    chan struct{}
	closeOnce sync.Once
}

type hostRequest struct {
	fn   func(*pfvm.VM)
	done chan struct{}
}

func NewHost() *Host {
	return &Host{
		requests: make(chan hostRequest),
		closed:   make(chan struct{}),
	}
}

// Do runs fn with the VM and waits for it to return
func (h *Host) Do(ctx context.Context, fn func(vm *pfvm.VM)) error {
	req := hostRequest{
		fn:   fn,
		done: make(chan struct{}),
	}
	select {
	case h.requests <- req:
	case <-h.closed:
		return ErrHostClosed
	case <-ctx.Done():
		return ctx.Err()
	}
	<-req.done
	return nil
}

// serve runs the pending requests
func (h *Host) serve(vm *pfvm.VM) {
	if h == nil {
		return
	}
	for {
		select {
		case req := <-h.requests:
			req.fn(vm)
			close(req.done)
		default:
			return
		}
	}
}

func (h *Host) Close() {
	if h == nil {
		return
	}
	h.closeOnce.Do(func() {
		close(h.closed)
	})
}
