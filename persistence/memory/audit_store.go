package memory

import (
	"context"
	"sync"

	"github.com/mohitkumar/workflowaction/model"
	"github.com/mohitkumar/workflowaction/persistence"
)

var _ persistence.AuditStore = new(auditStore)

type auditStore struct {
	mu      sync.RWMutex
	entries []model.AuditEntry
}

func NewAuditStore() *auditStore {
	return &auditStore{}
}

func (s *auditStore) Append(ctx context.Context, entry model.AuditEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = append(s.entries, entry)
	return nil
}

func (s *auditStore) List(ctx context.Context, workflowId string) ([]model.AuditEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]model.AuditEntry, 0)
	for _, e := range s.entries {
		if e.WorkflowId == workflowId {
			result = append(result, e)
		}
	}
	return result, nil
}

// All returns every entry in append order.
func (s *auditStore) All() []model.AuditEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]model.AuditEntry(nil), s.entries...)
}
