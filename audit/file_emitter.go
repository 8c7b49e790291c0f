package audit

import (
	"context"
	"os"

	"github.com/mohitkumar/workflowaction/model"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var _ Emitter = new(FileEmitter)

// FileEmitter appends audit entries to a file as JSON lines.
type FileEmitter struct {
	fileName string
	logger   *zap.Logger
}

func NewFileEmitter(fileName string) (*FileEmitter, error) {
	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderConfig.StacktraceKey = ""
	encoderConfig.CallerKey = ""
	fileEncoder := zapcore.NewJSONEncoder(encoderConfig)
	logFile, err := os.OpenFile(fileName, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, err
	}
	core := zapcore.NewCore(fileEncoder, zapcore.AddSync(logFile), zapcore.InfoLevel)
	return &FileEmitter{
		fileName: fileName,
		logger:   zap.New(core),
	}, nil
}

func (fe *FileEmitter) Emit(ctx context.Context, entry model.AuditEntry) error {
	fe.logger.Info(entry.EventName,
		zap.String("id", entry.Id),
		zap.String("workflowId", entry.WorkflowId),
		zap.String("message", entry.Message),
		zap.String("eventId", entry.EventId),
		zap.String("eventType", entry.EventType),
		zap.String("moduleId", entry.ModuleId),
		zap.String("moduleName", entry.ModuleName),
		zap.String("actor", entry.Actor),
		zap.Time("createdAt", entry.CreatedAt))
	return nil
}

func (fe *FileEmitter) Close() error {
	return fe.logger.Sync()
}
