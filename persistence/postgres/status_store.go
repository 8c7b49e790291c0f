package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/mohitkumar/workflowaction/model"
	"github.com/mohitkumar/workflowaction/persistence"
)

var _ persistence.StatusStore = new(PostgresStatusStore)

// PostgresStatusStore keeps workflow status records in the workflow_status table.
type PostgresStatusStore struct {
	db *pgxpool.Pool
}

func NewPostgresStatusStore(db *pgxpool.Pool) *PostgresStatusStore {
	return &PostgresStatusStore{db: db}
}

const selectStatus = `SELECT workflow_id, registration_type, status_code, latest_transaction_status_code,
	registration_stage_name, default_resume_action, pause_rule_ids, tags, resume_timestamp, retry_count, updated_by, updated_at
	FROM workflow_status`

func (s *PostgresStatusStore) Get(ctx context.Context, workflowId string) (*model.WorkflowStatusRecord, error) {
	row := s.db.QueryRow(ctx, selectStatus+" WHERE workflow_id = $1", workflowId)
	record, err := scanRecord(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, persistence.ErrNotFound
	}
	if err != nil {
		return nil, persistence.StorageLayerError{Message: err.Error()}
	}
	return record, nil
}

func (s *PostgresStatusStore) Save(ctx context.Context, r *model.WorkflowStatusRecord) error {
	_, err := s.db.Exec(ctx, `INSERT INTO workflow_status (workflow_id, registration_type, status_code,
		latest_transaction_status_code, registration_stage_name, default_resume_action, pause_rule_ids,
		tags, resume_timestamp, retry_count, updated_by, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		ON CONFLICT (workflow_id) DO UPDATE SET
			registration_type = EXCLUDED.registration_type,
			status_code = EXCLUDED.status_code,
			latest_transaction_status_code = EXCLUDED.latest_transaction_status_code,
			registration_stage_name = EXCLUDED.registration_stage_name,
			default_resume_action = EXCLUDED.default_resume_action,
			pause_rule_ids = EXCLUDED.pause_rule_ids,
			tags = EXCLUDED.tags,
			resume_timestamp = EXCLUDED.resume_timestamp,
			retry_count = EXCLUDED.retry_count,
			updated_by = EXCLUDED.updated_by,
			updated_at = EXCLUDED.updated_at`,
		r.WorkflowId, r.RegistrationType, string(r.StatusCode), r.LatestTransactionStatusCode,
		r.RegistrationStageName, r.DefaultResumeAction, r.PauseRuleIds, r.Tags,
		r.ResumeTimestamp, r.RetryCount, r.UpdatedBy, updatedAt(r))
	if err != nil {
		return persistence.StorageLayerError{Message: err.Error()}
	}
	return nil
}

func (s *PostgresStatusStore) ListResumable(ctx context.Context, before time.Time, limit int) ([]*model.WorkflowStatusRecord, error) {
	query := selectStatus + ` WHERE upper(status_code) = 'PAUSED' AND resume_timestamp IS NOT NULL
		AND resume_timestamp <= $1 ORDER BY resume_timestamp`
	args := []any{before}
	if limit > 0 {
		query += " LIMIT $2"
		args = append(args, limit)
	}
	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, persistence.StorageLayerError{Message: err.Error()}
	}
	defer rows.Close()

	records := make([]*model.WorkflowStatusRecord, 0)
	for rows.Next() {
		record, err := scanRecord(rows)
		if err != nil {
			return nil, persistence.StorageLayerError{Message: err.Error()}
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, persistence.StorageLayerError{Message: err.Error()}
	}
	return records, nil
}

func scanRecord(row pgx.Row) (*model.WorkflowStatusRecord, error) {
	var r model.WorkflowStatusRecord
	var status string
	err := row.Scan(&r.WorkflowId, &r.RegistrationType, &status, &r.LatestTransactionStatusCode,
		&r.RegistrationStageName, &r.DefaultResumeAction, &r.PauseRuleIds, &r.Tags, &r.ResumeTimestamp,
		&r.RetryCount, &r.UpdatedBy, &r.UpdatedAt)
	if err != nil {
		return nil, err
	}
	r.StatusCode = model.StatusCode(status)
	return &r, nil
}

func updatedAt(r *model.WorkflowStatusRecord) time.Time {
	if r.UpdatedAt.IsZero() {
		return time.Now().UTC()
	}
	return r.UpdatedAt
}
