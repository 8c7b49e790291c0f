package workflowaction

import (
	"context"
	"errors"
	"sync"

	"github.com/mohitkumar/workflowaction/model"
	"github.com/mohitkumar/workflowaction/persistence"
)

type fakeLookup struct {
	records map[string]*model.WorkflowStatusRecord
	failOn  string
	calls   []string
}

func newFakeLookup(records ...*model.WorkflowStatusRecord) *fakeLookup {
	l := &fakeLookup{records: make(map[string]*model.WorkflowStatusRecord)}
	for _, r := range records {
		l.records[r.WorkflowId] = r
	}
	return l
}

func (l *fakeLookup) Get(ctx context.Context, workflowId string) (*model.WorkflowStatusRecord, error) {
	l.calls = append(l.calls, workflowId)
	if workflowId == l.failOn {
		return nil, errors.New("connection refused")
	}
	r, ok := l.records[workflowId]
	if !ok {
		return nil, persistence.ErrNotFound
	}
	return r, nil
}

type fakeExecutor struct {
	calls [][]string
	err   error
	// apply moves applied records out of PAUSED, like the real executor does.
	apply bool
}

func (e *fakeExecutor) Apply(ctx context.Context, records []*model.WorkflowStatusRecord, action WorkflowActionCode) error {
	ids := make([]string, 0, len(records))
	for _, r := range records {
		ids = append(ids, r.WorkflowId)
		if e.apply {
			r.StatusCode = model.PROCESSING
		}
	}
	e.calls = append(e.calls, ids)
	return e.err
}

type recordingEmitter struct {
	mu      sync.Mutex
	entries []model.AuditEntry
	err     error
}

func (r *recordingEmitter) Emit(ctx context.Context, entry model.AuditEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, entry)
	return r.err
}

func (r *recordingEmitter) workflowIds() []string {
	ids := make([]string, 0, len(r.entries))
	for _, e := range r.entries {
		ids = append(ids, e.WorkflowId)
	}
	return ids
}

func record(id string, status model.StatusCode) *model.WorkflowStatusRecord {
	return &model.WorkflowStatusRecord{
		WorkflowId:            id,
		RegistrationType:      "NEW",
		StatusCode:            status,
		RegistrationStageName: "securezone-notification-stage",
	}
}
