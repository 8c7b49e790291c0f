package model

type WorkflowActionDTO struct {
	Id          string                 `json:"id,omitempty"`
	Version     string                 `json:"version,omitempty"`
	RequestTime string                 `json:"requesttime,omitempty"`
	Request     *WorkflowActionRequest `json:"request"`
}

type WorkflowActionRequest struct {
	WorkflowIds    []string `json:"workflowIds"`
	WorkflowAction string   `json:"workflowAction"`
}

type ErrorDTO struct {
	ErrorCode string `json:"errorCode"`
	Message   string `json:"message"`
}

type ResponseDTO struct {
	StatusMessage string `json:"statusMessage"`
}

// WorkflowActionResponseDTO carries either Response or Errors, never both.
type WorkflowActionResponseDTO struct {
	Id           string       `json:"id"`
	Version      string       `json:"version"`
	ResponseTime string       `json:"responsetime"`
	Response     *ResponseDTO `json:"response,omitempty"`
	Errors       []ErrorDTO   `json:"errors,omitempty"`
}

func (r WorkflowActionResponseDTO) IsSuccess() bool {
	return r.Response != nil && len(r.Errors) == 0
}
