package memory

import (
	"context"

	"github.com/viant/schedsim/model"
	"github.com/viant/schedsim/service/dao"
	"github.com/viant/schedsim/service/dao/criteria"
	"github.com/viant/schedsim/service/dao/run"
	"github.com/viant/schedsim/service/dao/store"
)

// Service keeps run reports in memory.
type Service struct {
	*store.MemoryStore[string, model.Run]
}

var _ dao.Service[string, model.Run] = (*Service)(nil)

func (s *Service) Save(ctx context.Context, r *model.Run) error {
	if r == nil {
		return dao.ErrNilEntity
	}
	if r.ID == "" {
		return dao.ErrInvalidID
	}
	return s.MemoryStore.Save(ctx, r)
}

func (s *Service) Load(ctx context.Context, id string) (*model.Run, error) {
	if id == "" {
		return nil, dao.ErrInvalidID
	}
	return s.MemoryStore.Load(ctx, id)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	if id == "" {
		return dao.ErrInvalidID
	}
	return s.MemoryStore.Delete(ctx, id)
}

// List returns the runs matching parameters ordered by start time.
func (s *Service) List(ctx context.Context, parameters ...*dao.Parameter) ([]*model.Run, error) {
	all, err := s.MemoryStore.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*model.Run, 0, len(all))
	for _, r := range all {
		if criteria.MatchRun(r, parameters) {
			out = append(out, r)
		}
	}
	run.Sort(out)
	return out, nil
}

func New() *Service {
	return &Service{MemoryStore: store.NewMemoryStore[string, model.Run](func(r *model.Run) string {
		return r.ID
	})}
}
