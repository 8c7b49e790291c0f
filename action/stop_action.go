package action

import (
	"time"

	"github.com/mohitkumar/workflowaction/model"
	"github.com/mohitkumar/workflowaction/workflowaction"
)

var _ Transition = new(StopTransition)

// StopTransition rejects a paused workflow and announces its completion.
type StopTransition struct {
	baseTransition
	queueName string
}

func NewStopTransition(queueName string) *StopTransition {
	return &StopTransition{
		baseTransition: baseTransition{name: workflowaction.STOP_PROCESSING},
		queueName:      queueName,
	}
}

func (st *StopTransition) Apply(record *model.WorkflowStatusRecord, now time.Time) Dispatch {
	st.release(record)
	record.StatusCode = model.REJECTED
	record.LatestTransactionStatusCode = string(model.REJECTED)
	record.UpdatedAt = now

	return Dispatch{
		QueueName: st.queueName,
		Message: model.WorkflowCompletedEvent{
			WorkflowId:       record.WorkflowId,
			RegistrationType: record.RegistrationType,
			ResultCode:       model.REJECTED,
			Action:           string(st.name),
			CompletedAt:      now,
		},
	}
}
