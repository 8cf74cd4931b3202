package event

import (
	"context"
	"errors"
	"sync"

	"github.com/viant/schedsim/model"
	"github.com/viant/schedsim/service/messaging"
)

// Listener drains a queue into a handler on a single goroutine. After the
// first handler failure every remaining message is Nacked without being
// handled.
type Listener struct {
	queue   messaging.Queue[model.Event]
	handler Handler
	done    chan struct{}
	mu      sync.Mutex
	err     error
}

// NewListener creates a listener for queue.
func NewListener(queue messaging.Queue[model.Event], handler Handler) *Listener {
	return &Listener{
		queue:   queue,
		handler: handler,
		done:    make(chan struct{}),
	}
}

// Start begins draining until the queue is closed or ctx is done.
func (l *Listener) Start(ctx context.Context) {
	go func() {
		defer close(l.done)
		for {
			msg, err := l.queue.Consume(ctx)
			if err != nil {
				if !errors.Is(err, messaging.ErrClosed) {
					l.fail(err)
				}
				return
			}
			if failed := l.Err(); failed != nil {
				_ = msg.Nack(failed)
				continue
			}
			if err = l.handler(ctx, msg.T()); err != nil {
				l.fail(err)
				_ = msg.Nack(err)
				continue
			}
			_ = msg.Ack()
		}
	}()
}

// Err returns the first failure observed, if any.
func (l *Listener) Err() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.err
}

// Wait blocks until the listener stops and returns its first failure.
func (l *Listener) Wait() error {
	<-l.done
	return l.Err()
}

func (l *Listener) fail(err error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.err == nil {
		l.err = err
	}
}
