package rest

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"github.com/mohitkumar/workflowaction/identity"
	"github.com/mohitkumar/workflowaction/logger"
	"github.com/mohitkumar/workflowaction/persistence"
	"github.com/mohitkumar/workflowaction/workflowaction"
	"go.uber.org/zap"
)

const USER_HEADER = "X-User-Name"

type Server struct {
	http.Server
	Port          int
	contextPath   string
	actionService *workflowaction.Service
	statusStore   persistence.StatusStore
	auditStore    persistence.AuditStore
}

func NewServer(httpPort int, contextPath string, actionService *workflowaction.Service, statusStore persistence.StatusStore, auditStore persistence.AuditStore) (*Server, error) {
	s := &Server{
		Server: http.Server{
			Addr:        fmt.Sprintf(":%d", httpPort),
			IdleTimeout: 2 * time.Second,
		},
		Port:          httpPort,
		contextPath:   strings.TrimSuffix(contextPath, "/"),
		actionService: actionService,
		statusStore:   statusStore,
		auditStore:    auditStore,
	}

	router := mux.NewRouter()
	api := router.PathPrefix(s.contextPath).Subrouter()
	if s.contextPath == "" {
		api = router
	}
	api.HandleFunc("/workflowaction", s.HandleWorkflowAction).Methods(http.MethodPost)
	api.HandleFunc("/workflow", s.HandlePutWorkflow).Methods(http.MethodPut)
	api.HandleFunc("/workflow/{workflowId}", s.HandleGetWorkflow).Methods(http.MethodGet)
	api.HandleFunc("/workflow/{workflowId}/audit", s.HandleGetAudit).Methods(http.MethodGet)

	router.Use(loggingMiddleware)
	router.Use(identityMiddleware)
	s.Handler = router
	return s, nil
}

func (s *Server) Start() error {
	logger.Info("starting http server on", zap.Int("port", s.Port), zap.String("contextPath", s.contextPath))
	if err := s.ListenAndServe(); err != nil {
		return err
	}
	return nil
}

func (s *Server) Stop() error {
	logger.Info("stopping http server")
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	err := s.Shutdown(ctx)
	if err != nil {
		logger.Error("error shutting down http server", zap.Error(err))
	}
	return nil
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		logger.Info(r.RequestURI, zap.String("method", r.Method), zap.Duration("took", time.Since(start)))
	})
}

// identityMiddleware puts the caller named by the user header into the request context.
func identityMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if user := strings.TrimSpace(r.Header.Get(USER_HEADER)); user != "" {
			r = r.WithContext(identity.NewContext(r.Context(), identity.Identity{Username: user}))
		}
		next.ServeHTTP(w, r)
	})
}

func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, _ := json.Marshal(payload)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(response)
}

func respondOKWithoutBody(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
}

func respondWithError(w http.ResponseWriter, code int, message string) {
	respondWithJSON(w, code, map[string]string{"error": message})
}
