package redis

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/mohitkumar/workflowaction/model"
	"github.com/mohitkumar/workflowaction/persistence"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

func TestRedisStorage(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping redis container test in short mode")
	}
	ctx := context.Background()
	redisContainer, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "redis:7-alpine",
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor:   wait.ForLog("Ready to accept connections"),
		},
		Started: true,
	})
	if err != nil {
		t.Fatal(err)
	}
	defer func() {
		if err := redisContainer.Terminate(ctx); err != nil {
			t.Fatalf("failed to terminate container: %s", err)
		}
	}()
	addr, err := redisContainer.Endpoint(ctx, "")
	if err != nil {
		t.Fatal(err)
	}

	for scenario, fn := range map[string]func(t *testing.T, conf Config){
		"status save and get": testStatusSaveGet,
		"resumable index":     testResumableIndex,
		"audit append order":  testAuditAppend,
		"queue is fifo":       testQueueFifo,
	} {
		t.Run(scenario, func(t *testing.T) {
			conf := Config{
				Addrs:     []string{addr},
				Namespace: "test-" + uuid.NewString(),
			}
			fn(t, conf)
		})
	}
}

func testStatusSaveGet(t *testing.T, conf Config) {
	ctx := context.Background()
	dao := NewRedisStatusDao(conf)
	defer dao.Close()

	_, err := dao.Get(ctx, "missing")
	require.ErrorIs(t, err, persistence.ErrNotFound)

	record := &model.WorkflowStatusRecord{
		WorkflowId:            "10001100770000320200720092256",
		RegistrationType:      "NEW",
		StatusCode:            model.PAUSED,
		RegistrationStageName: "securezone-notification-stage",
		PauseRuleIds:          []string{"HOTLISTED"},
	}
	require.NoError(t, dao.Save(ctx, record))

	got, err := dao.Get(ctx, record.WorkflowId)
	require.NoError(t, err)
	require.Equal(t, model.PAUSED, got.StatusCode)
	require.Equal(t, []string{"HOTLISTED"}, got.PauseRuleIds)
}

func testResumableIndex(t *testing.T, conf Config) {
	ctx := context.Background()
	dao := NewRedisStatusDao(conf)
	defer dao.Close()

	past := time.Now().Add(-time.Minute)
	future := time.Now().Add(time.Hour)
	require.NoError(t, dao.Save(ctx, &model.WorkflowStatusRecord{WorkflowId: "due", StatusCode: model.PAUSED, ResumeTimestamp: &past}))
	require.NoError(t, dao.Save(ctx, &model.WorkflowStatusRecord{WorkflowId: "later", StatusCode: model.PAUSED, ResumeTimestamp: &future}))

	due, err := dao.ListResumable(ctx, time.Now(), 10)
	require.NoError(t, err)
	require.Len(t, due, 1)
	require.Equal(t, "due", due[0].WorkflowId)

	require.NoError(t, dao.Save(ctx, &model.WorkflowStatusRecord{WorkflowId: "due", StatusCode: model.PROCESSING}))
	due, err = dao.ListResumable(ctx, time.Now(), 10)
	require.NoError(t, err)
	require.Empty(t, due)
}

func testAuditAppend(t *testing.T, conf Config) {
	ctx := context.Background()
	dao := NewRedisAuditDao(conf)
	defer dao.Close()

	for _, msg := range []string{"first", "second"} {
		require.NoError(t, dao.Append(ctx, model.AuditEntry{Id: uuid.NewString(), WorkflowId: "A", Message: msg}))
	}
	entries, err := dao.List(ctx, "A")
	require.NoError(t, err)
	require.Len(t, entries, 2)
	require.Equal(t, "first", entries[0].Message)
	require.Equal(t, "second", entries[1].Message)
}

func testQueueFifo(t *testing.T, conf Config) {
	ctx := context.Background()
	q := NewRedisQueue(conf)
	defer q.Close()

	require.NoError(t, q.Push(ctx, persistence.PIPELINE_QUEUE, 3, []byte("m1")))
	require.NoError(t, q.Push(ctx, persistence.PIPELINE_QUEUE, 3, []byte("m2")))

	res, err := q.Pop(ctx, persistence.PIPELINE_QUEUE, 3, 10)
	require.NoError(t, err)
	require.Equal(t, []string{"m1", "m2"}, res)

	res, err = q.Pop(ctx, persistence.PIPELINE_QUEUE, 3, 10)
	require.NoError(t, err)
	require.Empty(t, res)
}
