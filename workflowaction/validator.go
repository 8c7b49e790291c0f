package workflowaction

import (
	"time"

	"github.com/mohitkumar/workflowaction/model"
)

type ValidatorConfig struct {
	ApiId           string
	Version         string
	DateTimePattern string
	// GracePeriod bounds how far requesttime may drift from now; zero disables the check.
	GracePeriod time.Duration
}

type Validator struct {
	conf ValidatorConfig
	now  func() time.Time
}

func NewValidator(conf ValidatorConfig) *Validator {
	return &Validator{
		conf: conf,
		now:  time.Now,
	}
}

// Validate checks the request shape and the requested action. It never touches
// any collaborator, so a rejected request leaves no trace besides the response.
func (v *Validator) Validate(dto *model.WorkflowActionDTO) error {
	if dto == nil {
		return missingParameter("request")
	}
	if dto.Id != "" && v.conf.ApiId != "" && dto.Id != v.conf.ApiId {
		return invalidParameter("id")
	}
	if dto.Version != "" && v.conf.Version != "" && dto.Version != v.conf.Version {
		return invalidParameter("version")
	}
	if dto.RequestTime != "" {
		if err := v.validateRequestTime(dto.RequestTime); err != nil {
			return err
		}
	}
	req := dto.Request
	if req == nil {
		return missingParameter("request")
	}
	if req.WorkflowAction == "" {
		return missingParameter("request.workflowAction")
	}
	if _, err := ParseWorkflowActionCode(req.WorkflowAction); err != nil {
		return invalidParameter("request.workflowAction")
	}
	if len(req.WorkflowIds) == 0 {
		return missingParameter("request.workflowIds")
	}
	for _, id := range req.WorkflowIds {
		if id == "" {
			return invalidParameter("request.workflowIds")
		}
	}
	return nil
}

func (v *Validator) validateRequestTime(value string) error {
	pattern := v.conf.DateTimePattern
	if pattern == "" {
		pattern = time.RFC3339
	}
	ts, err := time.Parse(pattern, value)
	if err != nil {
		return invalidParameter("requesttime")
	}
	if v.conf.GracePeriod <= 0 {
		return nil
	}
	drift := v.now().UTC().Sub(ts)
	if drift < 0 {
		drift = -drift
	}
	if drift > v.conf.GracePeriod {
		return invalidParameter("requesttime")
	}
	return nil
}
