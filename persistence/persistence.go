package persistence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/mohitkumar/workflowaction/model"
)

var ErrNotFound = errors.New("record not found")

type StorageLayerError struct {
	Message string
}

func (e StorageLayerError) Error() string {
	return fmt.Sprintf("storage layer error %s", e.Message)
}

const PIPELINE_QUEUE string = "workflow-pipeline"
const COMPLETION_QUEUE string = "workflow-completed"

// StatusStore holds the current WorkflowStatusRecord per workflow id.
type StatusStore interface {
	// Get returns ErrNotFound when no record exists for the id.
	Get(ctx context.Context, workflowId string) (*model.WorkflowStatusRecord, error)
	Save(ctx context.Context, record *model.WorkflowStatusRecord) error
	// ListResumable returns paused records whose resume timestamp is not after before,
	// oldest first. A limit <= 0 returns every such record.
	ListResumable(ctx context.Context, before time.Time, limit int) ([]*model.WorkflowStatusRecord, error)
}

// AuditStore is append only; List returns entries in append order.
type AuditStore interface {
	Append(ctx context.Context, entry model.AuditEntry) error
	List(ctx context.Context, workflowId string) ([]model.AuditEntry, error)
}

type Queue interface {
	Push(ctx context.Context, queueName string, partition int, message []byte) error
	Pop(ctx context.Context, queueName string, partition int, batchSize int) ([]string, error)
}
