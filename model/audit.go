package model

import "time"

const (
	EVENT_ID_SUCCESS = "RPR_402"
	EVENT_ID_FAILURE = "RPR_405"

	EVENT_NAME_UPDATE    = "UPDATE"
	EVENT_NAME_EXCEPTION = "EXCEPTION"

	EVENT_TYPE_BUSINESS = "BUSINESS"
	EVENT_TYPE_SYSTEM   = "SYSTEM"
)

// AuditEntry records one decision taken for one workflow id.
type AuditEntry struct {
	Id         string    `json:"id"`
	WorkflowId string    `json:"workflowId"`
	Message    string    `json:"message"`
	EventId    string    `json:"eventId"`
	EventName  string    `json:"eventName"`
	EventType  string    `json:"eventType"`
	ModuleId   string    `json:"moduleId"`
	ModuleName string    `json:"moduleName"`
	Actor      string    `json:"actor"`
	CreatedAt  time.Time `json:"createdAt"`
}

func (e AuditEntry) IsSuccess() bool {
	return e.EventId == EVENT_ID_SUCCESS
}
