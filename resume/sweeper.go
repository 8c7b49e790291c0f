// Package resume applies the default resume action of paused workflows once
// their resume time has passed.
package resume

import (
	"context"
	"sync"
	"time"

	"github.com/mohitkumar/workflowaction/identity"
	"github.com/mohitkumar/workflowaction/logger"
	"github.com/mohitkumar/workflowaction/model"
	"github.com/mohitkumar/workflowaction/persistence"
	"github.com/mohitkumar/workflowaction/util"
	"github.com/mohitkumar/workflowaction/workflowaction"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

const DEFAULT_BATCH_SIZE = 100

type Config struct {
	Interval  time.Duration
	BatchSize int
}

type Processor interface {
	Process(ctx context.Context, workflowIds []string, action workflowaction.WorkflowActionCode, actor string) (*workflowaction.BatchResult, error)
}

type Sweeper struct {
	store     persistence.StatusStore
	processor Processor
	batchSize int
	tw        *util.TickWorker
	now       func() time.Time
}

func NewSweeper(conf Config, store persistence.StatusStore, processor Processor, wg *sync.WaitGroup) *Sweeper {
	if conf.BatchSize <= 0 {
		conf.BatchSize = DEFAULT_BATCH_SIZE
	}
	if conf.Interval <= 0 {
		conf.Interval = time.Minute
	}
	s := &Sweeper{
		store:     store,
		processor: processor,
		batchSize: conf.BatchSize,
		now:       time.Now,
	}
	s.tw = util.NewTickWorker("resume-sweeper", conf.Interval, s.tick, wg)
	return s
}

func (s *Sweeper) Start() {
	s.tw.Start()
}

func (s *Sweeper) Stop() {
	s.tw.Stop()
}

func (s *Sweeper) tick() {
	if _, err := s.Sweep(context.Background()); err != nil {
		logger.Error("error in resume sweep", zap.Error(err))
	}
}

// Sweep submits one batch of resumable workflows and returns how many were
// handed to the orchestrator.
func (s *Sweeper) Sweep(ctx context.Context) (int, error) {
	records, err := s.store.ListResumable(ctx, s.now().UTC(), s.batchSize)
	if err != nil {
		return 0, err
	}
	if len(records) == 0 {
		return 0, nil
	}
	actions, order, skipped := groupByAction(records)

	ctx = identity.NewContext(ctx, identity.SYSTEM)
	actor := identity.SYSTEM.Username
	submitted := 0
	var errs error
	for _, r := range skipped {
		errs = multierr.Append(errs, s.unschedule(ctx, r))
	}
	for _, action := range order {
		ids := actions[action]
		batch, err := s.processor.Process(ctx, ids, action, actor)
		if err != nil {
			logger.Error("error resuming workflows", zap.String("action", string(action)), zap.Strings("workflowIds", ids), zap.Error(err))
			errs = multierr.Append(errs, err)
			continue
		}
		submitted += len(ids)
		logger.Info("workflows resumed", zap.String("action", string(action)), zap.Int("qualified", batch.Count(workflowaction.QUALIFIED)), zap.Int("total", len(ids)))
	}
	return submitted, errs
}

// unschedule drops the resume time of a record that cannot be resumed
// automatically, so it stays paused but leaves the resumable set.
func (s *Sweeper) unschedule(ctx context.Context, r *model.WorkflowStatusRecord) error {
	r.ResumeTimestamp = nil
	r.UpdatedBy = identity.SYSTEM.Username
	r.UpdatedAt = s.now().UTC()
	if err := s.store.Save(ctx, r); err != nil {
		logger.Error("error unscheduling workflow", zap.String("workflowId", r.WorkflowId), zap.Error(err))
		return err
	}
	return nil
}

func groupByAction(records []*model.WorkflowStatusRecord) (map[workflowaction.WorkflowActionCode][]string, []workflowaction.WorkflowActionCode, []*model.WorkflowStatusRecord) {
	actions := make(map[workflowaction.WorkflowActionCode][]string)
	order := make([]workflowaction.WorkflowActionCode, 0)
	skipped := make([]*model.WorkflowStatusRecord, 0)
	for _, r := range records {
		action, err := workflowaction.ParseWorkflowActionCode(r.DefaultResumeAction)
		if err != nil {
			logger.Warn("skipping workflow without a valid default resume action", zap.String("workflowId", r.WorkflowId),
				zap.String("defaultResumeAction", r.DefaultResumeAction))
			skipped = append(skipped, r)
			continue
		}
		if _, ok := actions[action]; !ok {
			order = append(order, action)
		}
		actions[action] = append(actions[action], r.WorkflowId)
	}
	return actions, order, skipped
}
