package event

import (
	"context"
	"fmt"

	"github.com/viant/schedsim/model"
	"github.com/viant/schedsim/service/messaging/memory"
)

// Service wires a queue, a publisher and a listener into a trace pipeline.
// Handlers run in registration order for every event; the first failing
// handler stops the pipeline.
type Service struct {
	queue     *memory.Queue[model.Event]
	publisher *Publisher
	listener  *Listener
	handlers  []Handler
	started   bool
}

// New creates a pipeline delivering events to handlers.
func New(config memory.Config, handlers ...Handler) *Service {
	ret := &Service{
		queue:    memory.NewQueue[model.Event](config),
		handlers: handlers,
	}
	ret.publisher = NewPublisher(ret.queue)
	ret.listener = NewListener(ret.queue, ret.handle)
	return ret
}

// Start launches the listener.
func (s *Service) Start(ctx context.Context) {
	if s.started {
		return
	}
	s.started = true
	s.listener.Start(ctx)
}

// Emit publishes e. It fails fast once a handler has failed.
func (s *Service) Emit(ctx context.Context, e *model.Event) error {
	if !s.started {
		return fmt.Errorf("event pipeline not started")
	}
	if err := s.listener.Err(); err != nil {
		return err
	}
	return s.publisher.Emit(ctx, e)
}

// Close stops accepting events, waits until every published event is
// delivered and returns the first handler failure.
func (s *Service) Close() error {
	if err := s.queue.Close(); err != nil {
		return err
	}
	if !s.started {
		return nil
	}
	return s.listener.Wait()
}

// Published returns the number of events published.
func (s *Service) Published() int {
	return s.publisher.Published()
}

// Undelivered returns the number of events Nacked after a handler failure.
func (s *Service) Undelivered() int {
	return s.queue.DLQSize()
}

func (s *Service) handle(ctx context.Context, e *model.Event) error {
	for _, handler := range s.handlers {
		if err := handler(ctx, e); err != nil {
			return err
		}
	}
	return nil
}
