package event

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/schedsim/model"
	"github.com/viant/schedsim/service/messaging/memory"
)

func TestService_DeliversInOrder(t *testing.T) {
	recorder := NewRecorder()
	srv := New(memory.Config{QueueBuffer: 2}, recorder.Handle)
	ctx := context.Background()
	srv.Start(ctx)

	process := &model.Process{Name: "P1", Priority: 0, BurstTime: 5, RAM: 100}
	kinds := []model.EventKind{model.EventQueuedCPU1, model.EventAssignedCPU1, model.EventCompleted}
	for _, kind := range kinds {
		require.NoError(t, srv.Emit(ctx, model.NewEvent(kind, process)))
	}
	require.NoError(t, srv.Close())

	assert.Equal(t, kinds, recorder.Kinds())
	assert.Equal(t, 3, srv.Published())
	for i, e := range recorder.Events() {
		assert.Equal(t, i+1, e.Seq)
		assert.Equal(t, model.CPU1, e.CPU)
	}
}

func TestService_HandlerFailure(t *testing.T) {
	sinkErr := errors.New("sink unavailable")
	calls := 0
	failing := func(ctx context.Context, e *model.Event) error {
		calls++
		if calls == 2 {
			return sinkErr
		}
		return nil
	}
	srv := New(memory.DefaultConfig(), failing)
	ctx := context.Background()
	srv.Start(ctx)

	process := &model.Process{Name: "P1", Priority: 1, BurstTime: 5, RAM: 100}
	var emitErr error
	for i := 0; i < 50 && emitErr == nil; i++ {
		emitErr = srv.Emit(ctx, model.NewEvent(model.EventAssignedSJF, process))
	}
	err := srv.Close()
	assert.ErrorIs(t, err, sinkErr)
	assert.Equal(t, 2, calls)
	assert.Equal(t, srv.Published()-1, srv.Undelivered())
}

func TestService_EmitBeforeStart(t *testing.T) {
	srv := New(memory.DefaultConfig())
	err := srv.Emit(context.Background(), &model.Event{Kind: model.EventCompleted})
	assert.Error(t, err)
	assert.NoError(t, srv.Close())
}

func TestRecorder(t *testing.T) {
	recorder := NewRecorder()
	ctx := context.Background()
	e := &model.Event{Kind: model.EventQueuedCPU2, Process: "P2"}
	require.NoError(t, recorder.Emit(ctx, e))
	e.Process = "mutated"
	assert.Equal(t, []string{"P2"}, recorder.Names())
	recorder.Reset()
	assert.Empty(t, recorder.Events())
}
