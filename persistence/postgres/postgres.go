package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

const schema = `
CREATE TABLE IF NOT EXISTS workflow_status (
	workflow_id                    TEXT PRIMARY KEY,
	registration_type              TEXT NOT NULL DEFAULT '',
	status_code                    TEXT NOT NULL,
	latest_transaction_status_code TEXT NOT NULL DEFAULT '',
	registration_stage_name        TEXT NOT NULL DEFAULT '',
	default_resume_action          TEXT NOT NULL DEFAULT '',
	pause_rule_ids                 TEXT[],
	tags                           TEXT[],
	resume_timestamp               TIMESTAMPTZ,
	retry_count                    INT NOT NULL DEFAULT 0,
	updated_by                     TEXT NOT NULL DEFAULT '',
	updated_at                     TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS workflow_status_paused_resume
	ON workflow_status (resume_timestamp) WHERE upper(status_code) = 'PAUSED';
CREATE TABLE IF NOT EXISTS workflow_audit (
	seq         BIGSERIAL PRIMARY KEY,
	id          TEXT NOT NULL,
	workflow_id TEXT NOT NULL,
	message     TEXT NOT NULL,
	event_id    TEXT NOT NULL,
	event_name  TEXT NOT NULL,
	event_type  TEXT NOT NULL,
	module_id   TEXT NOT NULL,
	module_name TEXT NOT NULL,
	actor       TEXT NOT NULL,
	created_at  TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS workflow_audit_workflow_id ON workflow_audit (workflow_id, seq);
`

func Connect(ctx context.Context, connString string) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, connString)
	if err != nil {
		return nil, err
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return pool, nil
}

// Migrate creates the tables used by the stores if they do not exist.
func Migrate(ctx context.Context, db *pgxpool.Pool) error {
	_, err := db.Exec(ctx, schema)
	return err
}
