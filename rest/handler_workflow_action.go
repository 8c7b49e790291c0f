package rest

import (
	"encoding/json"
	"net/http"

	"github.com/mohitkumar/workflowaction/model"
)

// HandleWorkflowAction always answers 200; the outcome is in the response envelope.
func (s *Server) HandleWorkflowAction(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()
	var req model.WorkflowActionDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithJSON(w, http.StatusOK, s.actionService.Malformed(err))
		return
	}
	res := s.actionService.Handle(r.Context(), &req)
	respondWithJSON(w, http.StatusOK, res)
}
