package workflowaction

import (
	"errors"
	"fmt"
)

// RequestValidationError rejects a whole request before any workflow id is examined.
type RequestValidationError struct {
	Code    string
	Message string
}

func (e RequestValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func missingParameter(name string) RequestValidationError {
	return RequestValidationError{
		Code:    RPR_WAA_MISSING_INPUT_PARAMETER.Code,
		Message: fmt.Sprintf(RPR_WAA_MISSING_INPUT_PARAMETER.Message, name),
	}
}

func invalidParameter(name string) RequestValidationError {
	return RequestValidationError{
		Code:    RPR_WAA_INVALID_INPUT_PARAMETER.Code,
		Message: fmt.Sprintf(RPR_WAA_INVALID_INPUT_PARAMETER.Message, name),
	}
}

// ActionError is returned by an action executor that could not apply an action.
type ActionError struct {
	Action WorkflowActionCode
	Err    error
}

func (e ActionError) Error() string {
	return fmt.Sprintf("%s: %s %s: %v", RPR_WAA_WORKFLOW_ACTION_FAILED.Code, RPR_WAA_WORKFLOW_ACTION_FAILED.Message, e.Action, e.Err)
}

func (e ActionError) Unwrap() error {
	return e.Err
}

// CollaboratorError aborts the remainder of a batch.
type CollaboratorError struct {
	Op         string
	WorkflowId string
	Err        error
}

func (e CollaboratorError) Error() string {
	if e.WorkflowId == "" {
		return fmt.Sprintf("%s failed: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("%s failed for %s: %v", e.Op, e.WorkflowId, e.Err)
}

func (e CollaboratorError) Unwrap() error {
	return e.Err
}

// toErrorDTO maps an error that ended a request to the single error reported to the caller.
func toErrorDTO(err error) (code string, message string) {
	var validationErr RequestValidationError
	if errors.As(err, &validationErr) {
		return validationErr.Code, validationErr.Message
	}
	var actionErr ActionError
	if errors.As(err, &actionErr) {
		return RPR_WAA_WORKFLOW_ACTION_FAILED.Code, RPR_WAA_WORKFLOW_ACTION_FAILED.Message
	}
	return RPR_WAA_UNKNOWN_EXCEPTION.Code, RPR_WAA_UNKNOWN_EXCEPTION.Message
}
