// Package action applies workflow actions to status records and hands the
// updated workflows on to the registration pipeline.
package action

import (
	"time"

	"github.com/mohitkumar/workflowaction/model"
	"github.com/mohitkumar/workflowaction/workflowaction"
)

// Dispatch is the message a transition publishes after the record is saved.
type Dispatch struct {
	QueueName string
	Message   any
}

// Transition moves a paused record to its next state for one action.
type Transition interface {
	GetName() workflowaction.WorkflowActionCode
	Apply(record *model.WorkflowStatusRecord, now time.Time) Dispatch
}

type baseTransition struct {
	name            workflowaction.WorkflowActionCode
	removeHotlisted bool
}

func (bt *baseTransition) GetName() workflowaction.WorkflowActionCode {
	return bt.name
}

func (bt *baseTransition) release(record *model.WorkflowStatusRecord) {
	record.ClearPause()
	if bt.removeHotlisted {
		record.RemoveTag(model.HOTLISTED_TAG)
	}
}

// Transitions builds the transition of every supported action.
func Transitions(conf Config) map[workflowaction.WorkflowActionCode]Transition {
	transitions := []Transition{
		NewResumeTransition(workflowaction.RESUME_PROCESSING, false, "", conf.PipelineQueue),
		NewResumeTransition(workflowaction.RESUME_PROCESSING_AND_REMOVE_HOTLISTED_TAG, false, "", conf.PipelineQueue),
		NewResumeTransition(workflowaction.RESUME_FROM_BEGINNING, true, conf.BeginningStage, conf.PipelineQueue),
		NewResumeTransition(workflowaction.RESUME_FROM_BEGINNING_AND_REMOVE_HOTLISTED_TAG, true, conf.BeginningStage, conf.PipelineQueue),
		NewStopTransition(conf.CompletionQueue),
	}
	result := make(map[workflowaction.WorkflowActionCode]Transition, len(transitions))
	for _, t := range transitions {
		result[t.GetName()] = t
	}
	return result
}
