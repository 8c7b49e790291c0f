package workflowaction

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/mohitkumar/workflowaction/identity"
	"github.com/mohitkumar/workflowaction/logger"
	"github.com/mohitkumar/workflowaction/model"
	"go.uber.org/zap"
)

type ResponseConfig struct {
	ApiId           string
	Version         string
	DateTimePattern string
}

// Service turns one workflow action request into exactly one response.
type Service struct {
	validator    *Validator
	orchestrator *Orchestrator
	conf         ResponseConfig
	now          func() time.Time
}

func NewService(validator *Validator, orchestrator *Orchestrator, conf ResponseConfig) *Service {
	return &Service{
		validator:    validator,
		orchestrator: orchestrator,
		conf:         conf,
		now:          time.Now,
	}
}

// Handle validates the request, processes the batch on behalf of the identity
// carried by ctx (if any) and builds the response.
func (s *Service) Handle(ctx context.Context, dto *model.WorkflowActionDTO) model.WorkflowActionResponseDTO {
	batchId := uuid.NewString()
	var workflowIds []string
	var action string
	if dto != nil && dto.Request != nil {
		workflowIds = dto.Request.WorkflowIds
		action = dto.Request.WorkflowAction
	}
	logger.Debug("processing workflow action", zap.String("batchId", batchId), zap.Strings("workflowIds", workflowIds), zap.String("action", action))

	if err := s.validator.Validate(dto); err != nil {
		return s.failure(batchId, workflowIds, action, err)
	}

	actor := identity.Name(identity.FromContext(ctx))
	batch, err := s.orchestrator.Process(ctx, workflowIds, WorkflowActionCode(action), actor)
	if err != nil {
		return s.failure(batchId, workflowIds, action, err)
	}

	message, notDone := s.orchestrator.Policy().resolve(batch)
	if notDone != nil {
		logger.Info("workflow action batch not completed", zap.String("batchId", batchId), zap.Strings("workflowIds", workflowIds), zap.String("action", action),
			zap.Int("qualified", batch.Count(QUALIFIED)), zap.Bool("executed", batch.Executed))
		return s.errorResponse(notDone.Code, notDone.Message)
	}
	logger.Info("processed workflow action", zap.String("batchId", batchId), zap.Strings("workflowIds", workflowIds), zap.String("action", action),
		zap.Int("qualified", batch.Count(QUALIFIED)))
	return s.successResponse(message)
}

// Malformed answers a request whose body could not be read.
func (s *Service) Malformed(err error) model.WorkflowActionResponseDTO {
	logger.Error("error reading workflow action request", zap.Error(err))
	return s.errorResponse(RPR_SYS_IO_EXCEPTION.Code, RPR_SYS_IO_EXCEPTION.Message)
}

func (s *Service) failure(batchId string, workflowIds []string, action string, err error) model.WorkflowActionResponseDTO {
	code, message := toErrorDTO(err)
	logger.Error("error in workflow action", zap.String("batchId", batchId), zap.Strings("workflowIds", workflowIds), zap.String("action", action),
		zap.String("errorCode", code), zap.Error(err))
	return s.errorResponse(code, message)
}

func (s *Service) successResponse(message string) model.WorkflowActionResponseDTO {
	res := s.envelope()
	res.Response = &model.ResponseDTO{StatusMessage: message}
	return res
}

func (s *Service) errorResponse(code string, message string) model.WorkflowActionResponseDTO {
	res := s.envelope()
	res.Errors = []model.ErrorDTO{{ErrorCode: code, Message: message}}
	return res
}

func (s *Service) envelope() model.WorkflowActionResponseDTO {
	pattern := s.conf.DateTimePattern
	if pattern == "" {
		pattern = time.RFC3339
	}
	return model.WorkflowActionResponseDTO{
		Id:           s.conf.ApiId,
		Version:      s.conf.Version,
		ResponseTime: s.now().UTC().Format(pattern),
	}
}
