package event

import (
	"context"
	"sync"

	"github.com/viant/schedsim/internal/clock"
	"github.com/viant/schedsim/model"
	"github.com/viant/schedsim/service/messaging"
)

// Publisher stamps events with a sequence number and creation time and
// publishes them to a queue.
type Publisher struct {
	queue messaging.Queue[model.Event]
	mu    sync.Mutex
	seq   int
}

// NewPublisher creates a publisher over queue.
func NewPublisher(queue messaging.Queue[model.Event]) *Publisher {
	return &Publisher{queue: queue}
}

// Emit publishes e. Sequence numbers start at 1.
func (p *Publisher) Emit(ctx context.Context, e *model.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.seq++
	e.Seq = p.seq
	e.CreatedAt = clock.Now()
	return p.queue.Publish(ctx, e)
}

// Published returns the number of events published so far.
func (p *Publisher) Published() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.seq
}
