package progress

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProgress_Update(t *testing.T) {
	var observed []Progress
	ctx, tracker := WithNewTracker(context.Background(), "run-1", "input.txt", func(p Progress) {
		observed = append(observed, p)
	})

	UpdateCtx(ctx, Delta{Total: 3})
	UpdateCtx(ctx, Delta{Admitted: 2, Dropped: 1})
	UpdateCtx(ctx, Delta{Dispatched: 2, Completed: 1})

	snapshot := tracker.Snapshot()
	assert.Equal(t, 3, snapshot.TotalProcesses)
	assert.Equal(t, 2, snapshot.Admitted)
	assert.Equal(t, 1, snapshot.Dropped)
	assert.Equal(t, 1, tracker.Pending())
	assert.Len(t, observed, 3)
	assert.Equal(t, "run-1", observed[2].RunID)
}

func TestProgress_Concurrent(t *testing.T) {
	ctx, tracker := WithNewTracker(context.Background(), "run-2", "", nil)
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			UpdateCtx(ctx, Delta{Completed: 1})
		}()
	}
	wg.Wait()
	assert.Equal(t, 20, tracker.Snapshot().Completed)
}

func TestProgress_NoTracker(t *testing.T) {
	UpdateCtx(context.Background(), Delta{Total: 1})
	_, ok := FromContext(context.Background())
	assert.False(t, ok)
	var nilTracker *Progress
	nilTracker.Update(Delta{Total: 1})
	assert.Equal(t, 0, nilTracker.Pending())
}
