package workflowaction

import "fmt"

type WorkflowActionCode string

const (
	RESUME_PROCESSING                              WorkflowActionCode = "RESUME_PROCESSING"
	RESUME_FROM_BEGINNING                          WorkflowActionCode = "RESUME_FROM_BEGINNING"
	STOP_PROCESSING                                WorkflowActionCode = "STOP_PROCESSING"
	RESUME_PROCESSING_AND_REMOVE_HOTLISTED_TAG     WorkflowActionCode = "RESUME_PROCESSING_AND_REMOVE_HOTLISTED_TAG"
	RESUME_FROM_BEGINNING_AND_REMOVE_HOTLISTED_TAG WorkflowActionCode = "RESUME_FROM_BEGINNING_AND_REMOVE_HOTLISTED_TAG"
)

var allowedActions = map[WorkflowActionCode]bool{
	RESUME_PROCESSING:                              true,
	RESUME_FROM_BEGINNING:                          true,
	STOP_PROCESSING:                                true,
	RESUME_PROCESSING_AND_REMOVE_HOTLISTED_TAG:     true,
	RESUME_FROM_BEGINNING_AND_REMOVE_HOTLISTED_TAG: true,
}

// ParseWorkflowActionCode accepts only the exact names of the allowed actions.
func ParseWorkflowActionCode(name string) (WorkflowActionCode, error) {
	code := WorkflowActionCode(name)
	if !allowedActions[code] {
		return "", fmt.Errorf("unknown workflow action %q", name)
	}
	return code, nil
}

func (c WorkflowActionCode) RemovesHotlistedTag() bool {
	return c == RESUME_PROCESSING_AND_REMOVE_HOTLISTED_TAG || c == RESUME_FROM_BEGINNING_AND_REMOVE_HOTLISTED_TAG
}

const MODULE_NAME = "WorkflowActionApi"

// MODULE_ID is the module id of successful audits.
const MODULE_ID = "RPR-WAA-SUCCESS-001"

type platformMessage struct {
	Code    string
	Message string
}

var (
	RPR_WAA_MISSING_INPUT_PARAMETER = platformMessage{"RPR-WAA-001", "Missing Request Value - %s"}
	RPR_WAA_INVALID_INPUT_PARAMETER = platformMessage{"RPR-WAA-002", "Invalid Request Value - %s"}
	RPR_WAA_WORKFLOW_ID_NOT_FOUND   = platformMessage{"RPR-WAA-003", "Workflow id not found"}
	RPR_WAA_UNKNOWN_EXCEPTION       = platformMessage{"RPR-WAA-004", "Unknown exception occurred"}
	RPR_WAA_NOT_PAUSED              = platformMessage{"RPR-WAA-005", "Workflow id is not paused"}
	RPR_WAA_VALIDATION_SUCCESS      = platformMessage{"RPR-WAA-006", "Workflow id validated successfully"}
	RPR_WAA_WORKFLOW_ACTION_FAILED  = platformMessage{"RPR-WAA-007", "Workflow action failed"}
	RPR_WAA_NOT_ALL_QUALIFIED       = platformMessage{"RPR-WAA-008", "One or more workflow ids did not qualify for the action"}
	RPR_SYS_IO_EXCEPTION            = platformMessage{"RPR-SYS-004", "Unable to read request body"}
)
