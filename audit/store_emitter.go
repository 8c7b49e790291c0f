package audit

import (
	"context"

	"github.com/mohitkumar/workflowaction/model"
	"github.com/mohitkumar/workflowaction/persistence"
)

var _ Emitter = new(StoreEmitter)

type StoreEmitter struct {
	store persistence.AuditStore
}

func NewStoreEmitter(store persistence.AuditStore) *StoreEmitter {
	return &StoreEmitter{store: store}
}

func (se *StoreEmitter) Emit(ctx context.Context, entry model.AuditEntry) error {
	return se.store.Append(ctx, entry)
}

func (se *StoreEmitter) Close() error {
	return nil
}
