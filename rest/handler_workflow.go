package rest

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/mohitkumar/workflowaction/identity"
	"github.com/mohitkumar/workflowaction/logger"
	"github.com/mohitkumar/workflowaction/model"
	"github.com/mohitkumar/workflowaction/persistence"
	"go.uber.org/zap"
)

func (s *Server) HandleGetWorkflow(w http.ResponseWriter, r *http.Request) {
	workflowId := mux.Vars(r)["workflowId"]
	record, err := s.statusStore.Get(r.Context(), workflowId)
	if errors.Is(err, persistence.ErrNotFound) {
		respondWithError(w, http.StatusNotFound, "workflow not found")
		return
	}
	if err != nil {
		logger.Error("error getting workflow", zap.String("workflowId", workflowId), zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "error getting workflow")
		return
	}
	respondWithJSON(w, http.StatusOK, record)
}

func (s *Server) HandlePutWorkflow(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()
	var record model.WorkflowStatusRecord
	if err := json.NewDecoder(r.Body).Decode(&record); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid workflow record")
		return
	}
	if record.WorkflowId == "" || record.StatusCode == "" {
		respondWithError(w, http.StatusBadRequest, "workflowId and statusCode are required")
		return
	}
	status, ok := model.ParseStatusCode(string(record.StatusCode))
	if !ok {
		respondWithError(w, http.StatusBadRequest, "unknown statusCode")
		return
	}
	record.StatusCode = status
	record.UpdatedBy = identity.Name(identity.FromContext(r.Context()))
	record.UpdatedAt = time.Now().UTC()
	if err := s.statusStore.Save(r.Context(), &record); err != nil {
		logger.Error("error saving workflow", zap.String("workflowId", record.WorkflowId), zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "error saving workflow")
		return
	}
	respondOKWithoutBody(w)
}

func (s *Server) HandleGetAudit(w http.ResponseWriter, r *http.Request) {
	workflowId := mux.Vars(r)["workflowId"]
	entries, err := s.auditStore.List(r.Context(), workflowId)
	if err != nil {
		logger.Error("error listing audit entries", zap.String("workflowId", workflowId), zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "error listing audit entries")
		return
	}
	respondWithJSON(w, http.StatusOK, entries)
}
