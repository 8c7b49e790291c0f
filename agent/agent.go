package agent

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/mohitkumar/workflowaction/action"
	"github.com/mohitkumar/workflowaction/audit"
	"github.com/mohitkumar/workflowaction/config"
	"github.com/mohitkumar/workflowaction/container"
	"github.com/mohitkumar/workflowaction/logger"
	"github.com/mohitkumar/workflowaction/partition"
	"github.com/mohitkumar/workflowaction/resume"
	"github.com/mohitkumar/workflowaction/rest"
	"github.com/mohitkumar/workflowaction/workflowaction"
	"go.uber.org/zap"
)

type Agent struct {
	Config        config.Config
	container     *container.DIContiner
	emitter       audit.Emitter
	orchestrator  *workflowaction.Orchestrator
	actionService *workflowaction.Service
	sweeper       *resume.Sweeper
	httpServer    *rest.Server
	shutdown      bool
	shutdowns     chan struct{}
	shutdownLock  sync.Mutex
	wg            sync.WaitGroup
}

func New(config config.Config) (*Agent, error) {
	a := &Agent{
		Config:    config,
		shutdowns: make(chan struct{}),
	}
	setup := []func() error{
		a.setupContainer,
		a.setupAuditEmitter,
		a.setupWorkflowActionService,
		a.setupResumeSweeper,
		a.setupHttpServer,
	}
	for _, fn := range setup {
		if err := fn(); err != nil {
			if a.emitter != nil {
				_ = a.emitter.Close()
			}
			if a.container != nil {
				_ = a.container.Close()
			}
			return nil, err
		}
	}
	return a, nil
}

func (a *Agent) setupContainer() error {
	ring := partition.NewRing(partition.RingConfig{PartitionCount: a.Config.PartitionCount})
	a.container = container.NewDiContainer(ring)
	return a.container.Init(context.Background(), a.Config)
}

func (a *Agent) setupAuditEmitter() error {
	conf := audit.Config{
		SinkType:     audit.SinkType(a.Config.AuditConfig.SinkType),
		FileName:     a.Config.AuditConfig.FileName,
		Async:        a.Config.AuditConfig.Async,
		BufferSize:   a.Config.AuditConfig.BufferSize,
		MaxRetryTime: a.Config.AuditConfig.MaxRetryTime,
	}
	var err error
	a.emitter, err = audit.NewEmitter(conf, a.container.GetAuditStore(), &a.wg)
	return err
}

func (a *Agent) setupWorkflowActionService() error {
	waConf := a.Config.WorkflowAction
	policy, err := workflowaction.ParseCompletionPolicy(waConf.CompletionPolicy)
	if err != nil {
		return err
	}
	queueConf := a.Config.ActionQueueConfig
	executor := action.NewExecutor(a.container.GetStatusStore(), a.container.GetQueue(), a.container.GetRing(), action.Config{
		PipelineQueue:   queueConf.PipelineQueue,
		CompletionQueue: queueConf.CompletionQueue,
		BeginningStage:  queueConf.BeginningStage,
	})
	a.orchestrator = workflowaction.NewOrchestrator(a.container.GetStatusStore(), executor, a.emitter, policy)
	validator := workflowaction.NewValidator(workflowaction.ValidatorConfig{
		ApiId:           waConf.ApiId,
		Version:         waConf.Version,
		DateTimePattern: waConf.DateTimePattern,
		GracePeriod:     waConf.RequestGracePeriod,
	})
	a.actionService = workflowaction.NewService(validator, a.orchestrator, workflowaction.ResponseConfig{
		ApiId:           waConf.ApiId,
		Version:         waConf.Version,
		DateTimePattern: waConf.DateTimePattern,
	})
	return nil
}

func (a *Agent) setupResumeSweeper() error {
	sweepConf := a.Config.ResumeSweepConfig
	if !sweepConf.Enabled {
		return nil
	}
	a.sweeper = resume.NewSweeper(resume.Config{
		Interval:  time.Duration(sweepConf.IntervalSeconds) * time.Second,
		BatchSize: sweepConf.BatchSize,
	}, a.container.GetStatusStore(), a.orchestrator, &a.wg)
	return nil
}

func (a *Agent) setupHttpServer() error {
	var err error
	a.httpServer, err = rest.NewServer(a.Config.HttpPort, a.Config.ContextPath, a.actionService,
		a.container.GetStatusStore(), a.container.GetAuditStore())
	if err != nil {
		return err
	}
	return nil
}

func (a *Agent) Start() error {
	if a.sweeper != nil {
		a.sweeper.Start()
	}
	go func() {
		err := a.httpServer.Start()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server failed", zap.Error(err))
			_ = a.Shutdown()
		}
	}()
	return nil
}

func (a *Agent) Shutdown() error {
	logger.Info("shutting down server")
	a.shutdownLock.Lock()
	defer a.shutdownLock.Unlock()
	if a.shutdown {
		return nil
	}
	a.shutdown = true
	close(a.shutdowns)

	shutdown := []func() error{
		a.httpServer.Stop,
		func() error {
			if a.sweeper != nil {
				a.sweeper.Stop()
			}
			return nil
		},
		a.emitter.Close,
	}
	for _, fn := range shutdown {
		if err := fn(); err != nil {
			logger.Error("error during shutdown", zap.Error(err))
		}
	}
	logger.Info("waiting for all services to shutdown...")
	a.wg.Wait()
	return a.container.Close()
}
