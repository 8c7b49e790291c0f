package action

import (
	"context"
	"fmt"
	"time"

	"github.com/mohitkumar/workflowaction/identity"
	"github.com/mohitkumar/workflowaction/logger"
	"github.com/mohitkumar/workflowaction/model"
	"github.com/mohitkumar/workflowaction/partition"
	"github.com/mohitkumar/workflowaction/persistence"
	"github.com/mohitkumar/workflowaction/util"
	"github.com/mohitkumar/workflowaction/workflowaction"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

const DEFAULT_BEGINNING_STAGE = "packet-receiver-stage"

type Config struct {
	PipelineQueue   string
	CompletionQueue string
	BeginningStage  string
}

func (c Config) withDefaults() Config {
	if c.PipelineQueue == "" {
		c.PipelineQueue = persistence.PIPELINE_QUEUE
	}
	if c.CompletionQueue == "" {
		c.CompletionQueue = persistence.COMPLETION_QUEUE
	}
	if c.BeginningStage == "" {
		c.BeginningStage = DEFAULT_BEGINNING_STAGE
	}
	return c
}

var _ workflowaction.ActionExecutor = new(Executor)

// Executor saves the transitioned record and publishes the resulting message
// on the partition that owns the workflow id.
type Executor struct {
	store       persistence.StatusStore
	queue       persistence.Queue
	ring        *partition.Ring
	transitions map[workflowaction.WorkflowActionCode]Transition
	encDec      util.EncoderDecoder[any]
	now         func() time.Time
}

func NewExecutor(store persistence.StatusStore, queue persistence.Queue, ring *partition.Ring, conf Config) *Executor {
	return &Executor{
		store:       store,
		queue:       queue,
		ring:        ring,
		transitions: Transitions(conf.withDefaults()),
		encDec:      util.NewJsonEncoderDecoder[any](),
		now:         time.Now,
	}
}

// Apply runs the action on every record. Records that fail do not stop the
// others; all failures come back together as one ActionError.
func (ex *Executor) Apply(ctx context.Context, records []*model.WorkflowStatusRecord, action workflowaction.WorkflowActionCode) error {
	if len(records) == 0 {
		return nil
	}
	transition, ok := ex.transitions[action]
	if !ok {
		return workflowaction.ActionError{Action: action, Err: fmt.Errorf("no transition for action %s", action)}
	}
	updatedBy := identity.Name(identity.FromContext(ctx))
	if updatedBy == "" {
		updatedBy = workflowaction.MODULE_NAME
	}

	var errs error
	applied := 0
	for _, record := range records {
		if err := ex.applyOne(ctx, transition, record, updatedBy); err != nil {
			errs = multierr.Append(errs, fmt.Errorf("%s: %w", record.WorkflowId, err))
			continue
		}
		applied++
	}
	logger.Info("workflow action applied", zap.String("action", string(action)), zap.Int("applied", applied), zap.Int("total", len(records)))
	if errs != nil {
		return workflowaction.ActionError{Action: action, Err: errs}
	}
	return nil
}

func (ex *Executor) applyOne(ctx context.Context, transition Transition, record *model.WorkflowStatusRecord, updatedBy string) error {
	updated := record.Copy()
	dispatch := transition.Apply(updated, ex.now().UTC())
	updated.UpdatedBy = updatedBy

	data, err := ex.encDec.Encode(dispatch.Message)
	if err != nil {
		return err
	}
	if err := ex.store.Save(ctx, updated); err != nil {
		return err
	}
	part := ex.ring.GetPartition(record.WorkflowId)
	if err := ex.queue.Push(ctx, dispatch.QueueName, part, data); err != nil {
		// the record must stay paused when nothing will pick it up
		if rerr := ex.store.Save(ctx, record); rerr != nil {
			logger.Error("error restoring workflow status", zap.String("workflowId", record.WorkflowId), zap.Error(rerr))
			return multierr.Append(err, rerr)
		}
		return err
	}
	logger.Debug("workflow dispatched", zap.String("workflowId", record.WorkflowId), zap.String("queue", dispatch.QueueName), zap.Int("partition", part))
	return nil
}
