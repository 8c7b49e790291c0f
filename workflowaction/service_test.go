package workflowaction

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/mohitkumar/workflowaction/identity"
	"github.com/mohitkumar/workflowaction/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(lookup StatusLookup, executor ActionExecutor, emitter AuditEmitter, policy CompletionPolicy) *Service {
	validator := NewValidator(ValidatorConfig{DateTimePattern: "2006-01-02T15:04:05.000Z"})
	s := NewService(validator, NewOrchestrator(lookup, executor, emitter, policy), ResponseConfig{
		ApiId:           "mosip.registration.workflow.action",
		Version:         "1.0",
		DateTimePattern: "2006-01-02T15:04:05.000Z",
	})
	s.now = func() time.Time { return time.Date(2024, 3, 1, 10, 0, 0, 123000000, time.UTC) }
	return s
}

func actionRequest(action string, ids ...string) *model.WorkflowActionDTO {
	return &model.WorkflowActionDTO{
		Request: &model.WorkflowActionRequest{WorkflowIds: ids, WorkflowAction: action},
	}
}

func TestServiceHandle(t *testing.T) {
	ctx := identity.NewContext(context.Background(), identity.Identity{Username: "operator1"})

	t.Run("lenient batch reports success", func(t *testing.T) {
		lookup := newFakeLookup(record("A", model.PAUSED), record("C", model.PROCESSED))
		executor := &fakeExecutor{}
		emitter := &recordingEmitter{}
		s := newTestService(lookup, executor, emitter, POLICY_LENIENT)

		res := s.Handle(ctx, actionRequest("RESUME_PROCESSING", "A", "B", "C"))
		require.True(t, res.IsSuccess())
		assert.Equal(t, "mosip.registration.workflow.action", res.Id)
		assert.Equal(t, "1.0", res.Version)
		assert.Equal(t, "2024-03-01T10:00:00.123Z", res.ResponseTime)
		assert.Equal(t, "Process the workflowIds '[A, B, C]' successfully", res.Response.StatusMessage)
		assert.Empty(t, res.Errors)
		assert.Equal(t, [][]string{{"A"}}, executor.calls)
		require.Len(t, emitter.entries, 3)
		assert.Equal(t, "operator1", emitter.entries[0].Actor)
	})

	t.Run("validation failure touches nothing", func(t *testing.T) {
		lookup := newFakeLookup(record("A", model.PAUSED))
		executor := &fakeExecutor{}
		emitter := &recordingEmitter{}
		s := newTestService(lookup, executor, emitter, POLICY_LENIENT)

		res := s.Handle(ctx, actionRequest("RESTART", "A"))
		require.False(t, res.IsSuccess())
		require.Nil(t, res.Response)
		require.Len(t, res.Errors, 1)
		assert.Equal(t, RPR_WAA_INVALID_INPUT_PARAMETER.Code, res.Errors[0].ErrorCode)
		assert.Equal(t, "Invalid Request Value - request.workflowAction", res.Errors[0].Message)
		assert.Empty(t, lookup.calls)
		assert.Empty(t, executor.calls)
		assert.Empty(t, emitter.entries)

		res = s.Handle(ctx, actionRequest("RESUME_PROCESSING"))
		require.Len(t, res.Errors, 1)
		assert.Equal(t, RPR_WAA_MISSING_INPUT_PARAMETER.Code, res.Errors[0].ErrorCode)
		assert.Empty(t, lookup.calls)
	})

	t.Run("anonymous actor is empty", func(t *testing.T) {
		lookup := newFakeLookup(record("A", model.PAUSED))
		emitter := &recordingEmitter{}
		s := newTestService(lookup, &fakeExecutor{}, emitter, POLICY_LENIENT)

		res := s.Handle(context.Background(), actionRequest("STOP_PROCESSING", "A"))
		require.True(t, res.IsSuccess())
		require.Len(t, emitter.entries, 1)
		assert.Equal(t, "", emitter.entries[0].Actor)
	})

	t.Run("lookup failure is one generic error", func(t *testing.T) {
		lookup := newFakeLookup(record("A", model.PAUSED))
		lookup.failOn = "A"
		emitter := &recordingEmitter{}
		s := newTestService(lookup, &fakeExecutor{}, emitter, POLICY_LENIENT)

		res := s.Handle(ctx, actionRequest("RESUME_PROCESSING", "A", "B"))
		require.Nil(t, res.Response)
		require.Len(t, res.Errors, 1)
		assert.Equal(t, RPR_WAA_UNKNOWN_EXCEPTION.Code, res.Errors[0].ErrorCode)
		assert.Empty(t, emitter.entries)
	})

	t.Run("action failure is reported with its code", func(t *testing.T) {
		lookup := newFakeLookup(record("A", model.PAUSED))
		executor := &fakeExecutor{err: ActionError{Action: RESUME_PROCESSING, Err: errors.New("boom")}}
		s := newTestService(lookup, executor, &recordingEmitter{}, POLICY_LENIENT)

		res := s.Handle(ctx, actionRequest("RESUME_PROCESSING", "A"))
		require.Len(t, res.Errors, 1)
		assert.Equal(t, RPR_WAA_WORKFLOW_ACTION_FAILED.Code, res.Errors[0].ErrorCode)
	})

	t.Run("partial policy reports counts", func(t *testing.T) {
		lookup := newFakeLookup(record("A", model.PAUSED), record("C", model.PROCESSED))
		executor := &fakeExecutor{}
		s := newTestService(lookup, executor, &recordingEmitter{}, POLICY_PARTIAL)

		res := s.Handle(ctx, actionRequest("RESUME_PROCESSING", "A", "B", "C"))
		require.True(t, res.IsSuccess())
		assert.Equal(t, "Processed 1 of 3 workflowIds '[A, B, C]' successfully", res.Response.StatusMessage)

		res = s.Handle(ctx, actionRequest("RESUME_PROCESSING", "B", "C"))
		require.Len(t, res.Errors, 1)
		assert.Equal(t, RPR_WAA_NOT_ALL_QUALIFIED.Code, res.Errors[0].ErrorCode)
		assert.Len(t, executor.calls, 2)
	})

	t.Run("all-or-nothing policy rejects partial batch", func(t *testing.T) {
		lookup := newFakeLookup(record("A", model.PAUSED))
		executor := &fakeExecutor{}
		emitter := &recordingEmitter{}
		s := newTestService(lookup, executor, emitter, POLICY_ALL_OR_NOTHING)

		res := s.Handle(ctx, actionRequest("RESUME_PROCESSING", "A", "B"))
		require.Len(t, res.Errors, 1)
		assert.Equal(t, RPR_WAA_NOT_ALL_QUALIFIED.Code, res.Errors[0].ErrorCode)
		assert.Empty(t, executor.calls)
		assert.Len(t, emitter.entries, 2)
	})

	t.Run("malformed body", func(t *testing.T) {
		s := newTestService(newFakeLookup(), &fakeExecutor{}, &recordingEmitter{}, POLICY_LENIENT)
		res := s.Malformed(errors.New("unexpected EOF"))
		require.Len(t, res.Errors, 1)
		assert.Equal(t, RPR_SYS_IO_EXCEPTION.Code, res.Errors[0].ErrorCode)
		assert.Nil(t, res.Response)
	})
}

func TestParseCompletionPolicy(t *testing.T) {
	p, err := ParseCompletionPolicy("")
	require.NoError(t, err)
	require.Equal(t, POLICY_LENIENT, p)

	p, err = ParseCompletionPolicy("All-Or-Nothing")
	require.NoError(t, err)
	require.Equal(t, POLICY_ALL_OR_NOTHING, p)

	_, err = ParseCompletionPolicy("sometimes")
	require.Error(t, err)
}
