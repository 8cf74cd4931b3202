package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/schedsim/model"
	"github.com/viant/schedsim/service/dao"
)

func TestService(t *testing.T) {
	ctx := context.Background()
	srv := New()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	require.NoError(t, srv.Save(ctx, &model.Run{ID: "run-2", Source: "b.txt", StartedAt: base.Add(time.Second)}))
	require.NoError(t, srv.Save(ctx, &model.Run{ID: "run-1", Source: "a.txt", StartedAt: base}))
	assert.ErrorIs(t, srv.Save(ctx, nil), dao.ErrNilEntity)
	assert.ErrorIs(t, srv.Save(ctx, &model.Run{}), dao.ErrInvalidID)

	loaded, err := srv.Load(ctx, "run-1")
	require.NoError(t, err)
	assert.Equal(t, "a.txt", loaded.Source)
	_, err = srv.Load(ctx, "missing")
	assert.ErrorIs(t, err, dao.ErrNotFound)
	_, err = srv.Load(ctx, "")
	assert.ErrorIs(t, err, dao.ErrInvalidID)

	runs, err := srv.List(ctx)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, "run-1", runs[0].ID)
	assert.Equal(t, "run-2", runs[1].ID)

	runs, err = srv.List(ctx, dao.NewParameter(dao.ParameterSource, "b.txt"))
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, "run-2", runs[0].ID)

	require.NoError(t, srv.Delete(ctx, "run-2"))
	assert.ErrorIs(t, srv.Delete(ctx, "run-2"), dao.ErrNotFound)
}
