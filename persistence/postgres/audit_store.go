package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/mohitkumar/workflowaction/model"
	"github.com/mohitkumar/workflowaction/persistence"
)

var _ persistence.AuditStore = new(PostgresAuditStore)

// PostgresAuditStore appends audit entries to the workflow_audit table.
type PostgresAuditStore struct {
	db *pgxpool.Pool
}

func NewPostgresAuditStore(db *pgxpool.Pool) *PostgresAuditStore {
	return &PostgresAuditStore{db: db}
}

func (s *PostgresAuditStore) Append(ctx context.Context, e model.AuditEntry) error {
	_, err := s.db.Exec(ctx, `INSERT INTO workflow_audit
		(id, workflow_id, message, event_id, event_name, event_type, module_id, module_name, actor, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		e.Id, e.WorkflowId, e.Message, e.EventId, e.EventName, e.EventType, e.ModuleId, e.ModuleName, e.Actor, e.CreatedAt)
	if err != nil {
		return persistence.StorageLayerError{Message: err.Error()}
	}
	return nil
}

func (s *PostgresAuditStore) List(ctx context.Context, workflowId string) ([]model.AuditEntry, error) {
	rows, err := s.db.Query(ctx, `SELECT id, workflow_id, message, event_id, event_name, event_type,
		module_id, module_name, actor, created_at FROM workflow_audit WHERE workflow_id = $1 ORDER BY seq`, workflowId)
	if err != nil {
		return nil, persistence.StorageLayerError{Message: err.Error()}
	}
	defer rows.Close()

	entries := make([]model.AuditEntry, 0)
	for rows.Next() {
		var e model.AuditEntry
		if err := rows.Scan(&e.Id, &e.WorkflowId, &e.Message, &e.EventId, &e.EventName, &e.EventType,
			&e.ModuleId, &e.ModuleName, &e.Actor, &e.CreatedAt); err != nil {
			return nil, persistence.StorageLayerError{Message: err.Error()}
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, persistence.StorageLayerError{Message: err.Error()}
	}
	return entries, nil
}
