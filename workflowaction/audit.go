package workflowaction

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/mohitkumar/workflowaction/model"
)

// AuditEmitter records one entry per decision. Its error is logged and otherwise ignored.
type AuditEmitter interface {
	Emit(ctx context.Context, entry model.AuditEntry) error
}

type AuditEmitterFunc func(ctx context.Context, entry model.AuditEntry) error

func (f AuditEmitterFunc) Emit(ctx context.Context, entry model.AuditEntry) error {
	return f(ctx, entry)
}

func newAuditEntry(d Decision, actor string, at time.Time) model.AuditEntry {
	msg := d.message()
	entry := model.AuditEntry{
		Id:         uuid.NewString(),
		WorkflowId: d.WorkflowId,
		Message:    msg.Message,
		ModuleName: MODULE_NAME,
		Actor:      actor,
		CreatedAt:  at,
	}
	if d.Successful() {
		entry.ModuleId = MODULE_ID
		entry.EventId = model.EVENT_ID_SUCCESS
		entry.EventName = model.EVENT_NAME_UPDATE
		entry.EventType = model.EVENT_TYPE_BUSINESS
	} else {
		entry.ModuleId = msg.Code
		entry.EventId = model.EVENT_ID_FAILURE
		entry.EventName = model.EVENT_NAME_EXCEPTION
		entry.EventType = model.EVENT_TYPE_SYSTEM
	}
	return entry
}
