package model

import (
	"strings"
	"time"
)

type StatusCode string

const (
	PAUSED     StatusCode = "PAUSED"
	PROCESSING StatusCode = "PROCESSING"
	PROCESSED  StatusCode = "PROCESSED"
	REJECTED   StatusCode = "REJECTED"
	FAILED     StatusCode = "FAILED"
	REPROCESS  StatusCode = "REPROCESS"
)

var statusCodes = []StatusCode{PAUSED, PROCESSING, PROCESSED, REJECTED, FAILED, REPROCESS}

// ParseStatusCode matches a status code case-insensitively and returns its canonical form.
func ParseStatusCode(code string) (StatusCode, bool) {
	for _, sc := range statusCodes {
		if strings.EqualFold(code, string(sc)) {
			return sc, true
		}
	}
	return "", false
}

const HOTLISTED_TAG = "HOTLISTED"

// WorkflowStatusRecord is the persisted state of one registration workflow.
type WorkflowStatusRecord struct {
	WorkflowId                  string     `json:"workflowId"`
	RegistrationType            string     `json:"registrationType"`
	StatusCode                  StatusCode `json:"statusCode"`
	LatestTransactionStatusCode string     `json:"latestTransactionStatusCode"`
	RegistrationStageName       string     `json:"registrationStageName"`
	DefaultResumeAction         string     `json:"defaultResumeAction,omitempty"`
	PauseRuleIds                []string   `json:"pauseRuleIds,omitempty"`
	Tags                        []string   `json:"tags,omitempty"`
	ResumeTimestamp             *time.Time `json:"resumeTimestamp,omitempty"`
	RetryCount                  int        `json:"retryCount"`
	UpdatedBy                   string     `json:"updatedBy,omitempty"`
	UpdatedAt                   time.Time  `json:"updatedAt"`
}

func (r *WorkflowStatusRecord) IsPaused() bool {
	return strings.EqualFold(string(r.StatusCode), string(PAUSED))
}

// ClearPause drops everything that kept the record paused.
func (r *WorkflowStatusRecord) ClearPause() {
	r.DefaultResumeAction = ""
	r.PauseRuleIds = nil
	r.ResumeTimestamp = nil
}

func (r *WorkflowStatusRecord) RemoveTag(tag string) {
	kept := make([]string, 0, len(r.Tags))
	for _, t := range r.Tags {
		if t != tag {
			kept = append(kept, t)
		}
	}
	r.Tags = kept
}

func (r *WorkflowStatusRecord) HasTag(tag string) bool {
	for _, t := range r.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// Copy returns a deep copy of the record.
func (r *WorkflowStatusRecord) Copy() *WorkflowStatusRecord {
	c := *r
	if r.PauseRuleIds != nil {
		c.PauseRuleIds = append([]string(nil), r.PauseRuleIds...)
	}
	if r.Tags != nil {
		c.Tags = append([]string(nil), r.Tags...)
	}
	if r.ResumeTimestamp != nil {
		ts := *r.ResumeTimestamp
		c.ResumeTimestamp = &ts
	}
	return &c
}

// WorkflowMessage is handed to the registration pipeline to (re)start processing.
type WorkflowMessage struct {
	WorkflowId       string `json:"workflowId"`
	RegistrationType string `json:"registrationType"`
	Stage            string `json:"stage"`
	Action           string `json:"action"`
	IsValid          bool   `json:"isValid"`
	InternalError    bool   `json:"internalError"`
}

// WorkflowCompletedEvent is published when a record reaches a terminal state.
type WorkflowCompletedEvent struct {
	WorkflowId       string     `json:"workflowId"`
	RegistrationType string     `json:"registrationType"`
	ResultCode       StatusCode `json:"resultCode"`
	Action           string     `json:"action"`
	CompletedAt      time.Time  `json:"completedAt"`
}
