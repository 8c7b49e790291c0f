package action

import (
	"time"

	"github.com/mohitkumar/workflowaction/model"
	"github.com/mohitkumar/workflowaction/workflowaction"
)

var _ Transition = new(ResumeTransition)

// ResumeTransition sends a paused workflow back into the pipeline, either at
// the stage it paused in or at the first stage.
type ResumeTransition struct {
	baseTransition
	fromBeginning  bool
	beginningStage string
	queueName      string
}

func NewResumeTransition(name workflowaction.WorkflowActionCode, fromBeginning bool, beginningStage string, queueName string) *ResumeTransition {
	return &ResumeTransition{
		baseTransition: baseTransition{
			name:            name,
			removeHotlisted: name.RemovesHotlistedTag(),
		},
		fromBeginning:  fromBeginning,
		beginningStage: beginningStage,
		queueName:      queueName,
	}
}

func (rt *ResumeTransition) Apply(record *model.WorkflowStatusRecord, now time.Time) Dispatch {
	rt.release(record)
	stage := record.RegistrationStageName
	if rt.fromBeginning {
		stage = rt.beginningStage
		record.RegistrationStageName = rt.beginningStage
		record.RetryCount = 0
	} else {
		record.RetryCount++
	}
	record.StatusCode = model.PROCESSING
	record.LatestTransactionStatusCode = string(model.REPROCESS)
	record.UpdatedAt = now

	return Dispatch{
		QueueName: rt.queueName,
		Message: model.WorkflowMessage{
			WorkflowId:       record.WorkflowId,
			RegistrationType: record.RegistrationType,
			Stage:            stage,
			Action:           string(rt.name),
			IsValid:          true,
		},
	}
}
