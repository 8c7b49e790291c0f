package workflowaction

import (
	"context"
	"errors"
	"time"

	"github.com/mohitkumar/workflowaction/logger"
	"github.com/mohitkumar/workflowaction/model"
	"github.com/mohitkumar/workflowaction/persistence"
	"go.uber.org/zap"
)

// StatusLookup returns persistence.ErrNotFound, or a nil record, for unknown ids.
type StatusLookup interface {
	Get(ctx context.Context, workflowId string) (*model.WorkflowStatusRecord, error)
}

type ActionExecutor interface {
	Apply(ctx context.Context, records []*model.WorkflowStatusRecord, action WorkflowActionCode) error
}

type Orchestrator struct {
	lookup   StatusLookup
	executor ActionExecutor
	emitter  AuditEmitter
	policy   CompletionPolicy
	now      func() time.Time
}

func NewOrchestrator(lookup StatusLookup, executor ActionExecutor, emitter AuditEmitter, policy CompletionPolicy) *Orchestrator {
	if policy == "" {
		policy = POLICY_LENIENT
	}
	return &Orchestrator{
		lookup:   lookup,
		executor: executor,
		emitter:  emitter,
		policy:   policy,
		now:      time.Now,
	}
}

func (o *Orchestrator) Policy() CompletionPolicy {
	return o.policy
}

// Process checks every workflow id in order, audits each decision and then hands
// the qualifying records to the executor in a single call. A lookup or executor
// failure stops the batch; the returned BatchResult holds the decisions taken so far.
func (o *Orchestrator) Process(ctx context.Context, workflowIds []string, action WorkflowActionCode, actor string) (*BatchResult, error) {
	batch := newBatchResult(action, len(workflowIds))
	for _, workflowId := range workflowIds {
		record, err := o.lookup.Get(ctx, workflowId)
		if err != nil && !errors.Is(err, persistence.ErrNotFound) {
			return batch, CollaboratorError{Op: "status lookup", WorkflowId: workflowId, Err: err}
		}
		if err != nil {
			record = nil
		}
		d := decide(workflowId, record)
		o.audit(ctx, d, actor)
		if !d.Successful() {
			logger.Info("workflow id skipped", zap.String("workflowId", workflowId), zap.String("action", string(action)), zap.Stringer("outcome", d.Outcome))
		}
		batch.add(d)
	}

	if !o.policy.shouldExecute(batch) {
		logger.Info("workflow action not executed", zap.String("action", string(action)), zap.String("policy", string(o.policy)),
			zap.Int("qualified", batch.Count(QUALIFIED)), zap.Int("total", len(batch.Decisions)))
		return batch, nil
	}
	if err := o.executor.Apply(ctx, batch.Qualified(), action); err != nil {
		var actionErr ActionError
		if errors.As(err, &actionErr) {
			return batch, err
		}
		return batch, CollaboratorError{Op: "action executor", Err: err}
	}
	batch.Executed = true
	return batch, nil
}

func (o *Orchestrator) audit(ctx context.Context, d Decision, actor string) {
	entry := newAuditEntry(d, actor, o.now().UTC())
	if err := o.emitter.Emit(ctx, entry); err != nil {
		logger.Warn("error emitting audit entry", zap.String("workflowId", d.WorkflowId), zap.String("eventId", entry.EventId), zap.Error(err))
	}
}
