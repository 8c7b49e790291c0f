package memory

import (
	"context"
	"sort"
	"time"

	"github.com/mohitkumar/workflowaction/model"
	"github.com/mohitkumar/workflowaction/persistence"
	c "github.com/patrickmn/go-cache"
)

var _ persistence.StatusStore = new(statusStore)

type statusStore struct {
	cache *c.Cache
}

func NewStatusStore() *statusStore {
	return &statusStore{
		cache: c.New(c.NoExpiration, 10*time.Minute),
	}
}

// Records are copied in and out so callers never share state with the store.
func (s *statusStore) Get(ctx context.Context, workflowId string) (*model.WorkflowStatusRecord, error) {
	v, found := s.cache.Get(workflowId)
	if !found {
		return nil, persistence.ErrNotFound
	}
	record := v.(model.WorkflowStatusRecord)
	return record.Copy(), nil
}

func (s *statusStore) Save(ctx context.Context, record *model.WorkflowStatusRecord) error {
	s.cache.Set(record.WorkflowId, *record.Copy(), c.NoExpiration)
	return nil
}

func (s *statusStore) ListResumable(ctx context.Context, before time.Time, limit int) ([]*model.WorkflowStatusRecord, error) {
	result := make([]*model.WorkflowStatusRecord, 0)
	for _, item := range s.cache.Items() {
		record := item.Object.(model.WorkflowStatusRecord)
		if !record.IsPaused() || record.ResumeTimestamp == nil || record.ResumeTimestamp.After(before) {
			continue
		}
		result = append(result, record.Copy())
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].ResumeTimestamp.Before(*result[j].ResumeTimestamp)
	})
	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}
