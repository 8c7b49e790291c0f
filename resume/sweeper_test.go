package resume

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/mohitkumar/workflowaction/action"
	"github.com/mohitkumar/workflowaction/model"
	"github.com/mohitkumar/workflowaction/partition"
	"github.com/mohitkumar/workflowaction/persistence/memory"
	"github.com/mohitkumar/workflowaction/workflowaction"
	"github.com/stretchr/testify/require"
)

type failingProcessor struct{}

func (failingProcessor) Process(ctx context.Context, workflowIds []string, action workflowaction.WorkflowActionCode, actor string) (*workflowaction.BatchResult, error) {
	return nil, errors.New("executor down")
}

func paused(id string, resumeAction string, resumeAt time.Time) *model.WorkflowStatusRecord {
	return &model.WorkflowStatusRecord{
		WorkflowId:            id,
		RegistrationType:      "NEW",
		StatusCode:            model.PAUSED,
		RegistrationStageName: "osi-validator-stage",
		DefaultResumeAction:   resumeAction,
		ResumeTimestamp:       &resumeAt,
	}
}

func TestSweep(t *testing.T) {
	ctx := context.Background()
	now := time.Now().UTC()
	statusStore := memory.NewStatusStore()
	auditStore := memory.NewAuditStore()
	records := []*model.WorkflowStatusRecord{
		paused("R1", string(workflowaction.RESUME_PROCESSING), now.Add(-3*time.Minute)),
		paused("S1", string(workflowaction.STOP_PROCESSING), now.Add(-2*time.Minute)),
		paused("R2", string(workflowaction.RESUME_PROCESSING), now.Add(-time.Minute)),
		paused("BAD", "resume", now.Add(-time.Minute)),
		paused("LATER", string(workflowaction.RESUME_PROCESSING), now.Add(time.Hour)),
	}
	for _, r := range records {
		require.NoError(t, statusStore.Save(ctx, r))
	}

	ring := partition.NewRing(partition.RingConfig{PartitionCount: 2})
	executor := action.NewExecutor(statusStore, memory.NewQueue(), ring, action.Config{})
	emitter := workflowaction.AuditEmitterFunc(auditStore.Append)
	orchestrator := workflowaction.NewOrchestrator(statusStore, executor, emitter, workflowaction.POLICY_LENIENT)

	var wg sync.WaitGroup
	sweeper := NewSweeper(Config{BatchSize: 10}, statusStore, orchestrator, &wg)
	submitted, err := sweeper.Sweep(ctx)
	require.NoError(t, err)
	require.Equal(t, 3, submitted)

	for id, status := range map[string]model.StatusCode{
		"R1":    model.PROCESSING,
		"R2":    model.PROCESSING,
		"S1":    model.REJECTED,
		"BAD":   model.PAUSED,
		"LATER": model.PAUSED,
	} {
		rec, err := statusStore.Get(ctx, id)
		require.NoError(t, err)
		require.Equal(t, status, rec.StatusCode, id)
	}

	entries := auditStore.All()
	require.Len(t, entries, 3)
	for _, e := range entries {
		require.Equal(t, "system", e.Actor)
	}
	r1, err := statusStore.Get(ctx, "R1")
	require.NoError(t, err)
	require.Equal(t, "system", r1.UpdatedBy)

	submitted, err = sweeper.Sweep(ctx)
	require.NoError(t, err)
	require.Equal(t, 0, submitted)
}

func TestSweepUnschedulesInvalidResumeAction(t *testing.T) {
	ctx := context.Background()
	now := time.Now().UTC()
	statusStore := memory.NewStatusStore()
	require.NoError(t, statusStore.Save(ctx, paused("BAD", "resume", now.Add(-2*time.Minute))))
	require.NoError(t, statusStore.Save(ctx, paused("GOOD", string(workflowaction.RESUME_PROCESSING), now.Add(-time.Minute))))

	ring := partition.NewRing(partition.RingConfig{PartitionCount: 1})
	executor := action.NewExecutor(statusStore, memory.NewQueue(), ring, action.Config{})
	orchestrator := workflowaction.NewOrchestrator(statusStore, executor, workflowaction.AuditEmitterFunc(memory.NewAuditStore().Append), "")

	var wg sync.WaitGroup
	sweeper := NewSweeper(Config{BatchSize: 1}, statusStore, orchestrator, &wg)
	submitted, err := sweeper.Sweep(ctx)
	require.NoError(t, err)
	require.Equal(t, 0, submitted)

	submitted, err = sweeper.Sweep(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, submitted)

	good, err := statusStore.Get(ctx, "GOOD")
	require.NoError(t, err)
	require.Equal(t, model.PROCESSING, good.StatusCode)

	bad, err := statusStore.Get(ctx, "BAD")
	require.NoError(t, err)
	require.Equal(t, model.PAUSED, bad.StatusCode)
	require.Nil(t, bad.ResumeTimestamp)
	require.Equal(t, "resume", bad.DefaultResumeAction)
	require.Equal(t, "system", bad.UpdatedBy)

	submitted, err = sweeper.Sweep(ctx)
	require.NoError(t, err)
	require.Equal(t, 0, submitted)
}

func TestSweepReportsProcessorFailure(t *testing.T) {
	ctx := context.Background()
	statusStore := memory.NewStatusStore()
	require.NoError(t, statusStore.Save(ctx, paused("R1", string(workflowaction.RESUME_PROCESSING), time.Now().Add(-time.Minute))))

	var wg sync.WaitGroup
	sweeper := NewSweeper(Config{}, statusStore, failingProcessor{}, &wg)
	submitted, err := sweeper.Sweep(ctx)
	require.Error(t, err)
	require.Equal(t, 0, submitted)
}

func TestSweeperRunsOnTick(t *testing.T) {
	ctx := context.Background()
	statusStore := memory.NewStatusStore()
	require.NoError(t, statusStore.Save(ctx, paused("R1", string(workflowaction.STOP_PROCESSING), time.Now().Add(-time.Minute))))
	ring := partition.NewRing(partition.RingConfig{PartitionCount: 1})
	executor := action.NewExecutor(statusStore, memory.NewQueue(), ring, action.Config{})
	orchestrator := workflowaction.NewOrchestrator(statusStore, executor, workflowaction.AuditEmitterFunc(memory.NewAuditStore().Append), "")

	var wg sync.WaitGroup
	sweeper := NewSweeper(Config{Interval: 10 * time.Millisecond}, statusStore, orchestrator, &wg)
	sweeper.Start()
	defer func() {
		sweeper.Stop()
		wg.Wait()
	}()

	require.Eventually(t, func() bool {
		rec, err := statusStore.Get(ctx, "R1")
		return err == nil && rec.StatusCode == model.REJECTED
	}, 2*time.Second, 10*time.Millisecond)
}
