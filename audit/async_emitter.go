package audit

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	backoff "github.com/cenkalti/backoff/v4"
	"github.com/mohitkumar/workflowaction/logger"
	"github.com/mohitkumar/workflowaction/model"
	"github.com/mohitkumar/workflowaction/util"
	"go.uber.org/zap"
)

var ErrEmitterClosed = errors.New("audit emitter closed")

const DEFAULT_BUFFER_SIZE = 1024
const DEFAULT_MAX_RETRY_TIME = 30 * time.Second

var _ Emitter = new(AsyncEmitter)

// AsyncEmitter queues entries and delivers them in order on a single worker,
// retrying a failed delivery with exponential backoff.
type AsyncEmitter struct {
	delegate     Emitter
	worker       *util.Worker[model.AuditEntry]
	maxRetryTime time.Duration
	initialDelay time.Duration
	started      atomic.Bool
	mu           sync.RWMutex
	closed       bool
}

func NewAsyncEmitter(delegate Emitter, bufferSize int, maxRetryTime time.Duration, wg *sync.WaitGroup) *AsyncEmitter {
	if bufferSize <= 0 {
		bufferSize = DEFAULT_BUFFER_SIZE
	}
	if maxRetryTime <= 0 {
		maxRetryTime = DEFAULT_MAX_RETRY_TIME
	}
	ae := &AsyncEmitter{
		delegate:     delegate,
		maxRetryTime: maxRetryTime,
		initialDelay: backoff.DefaultInitialInterval,
	}
	ae.worker = util.NewWorker("audit-emitter", wg, ae.deliver, bufferSize)
	return ae
}

func (ae *AsyncEmitter) Start() {
	if ae.started.CompareAndSwap(false, true) {
		ae.worker.Start()
	}
}

// Emit queues the entry. It blocks while the buffer is full. An entry accepted
// with a nil error is delivered before Close returns.
func (ae *AsyncEmitter) Emit(ctx context.Context, entry model.AuditEntry) error {
	ae.mu.RLock()
	defer ae.mu.RUnlock()
	if ae.closed {
		return ErrEmitterClosed
	}
	select {
	case ae.worker.Sender() <- entry:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close stops accepting entries, waits for the queued ones to be delivered and
// closes the delegate.
func (ae *AsyncEmitter) Close() error {
	ae.mu.Lock()
	ae.closed = true
	ae.mu.Unlock()
	ae.worker.Stop()
	if ae.started.Load() {
		<-ae.worker.Done()
	}
	return ae.delegate.Close()
}

func (ae *AsyncEmitter) deliver(entry model.AuditEntry) error {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = ae.initialDelay
	b.MaxElapsedTime = ae.maxRetryTime
	attempt := 0
	err := backoff.Retry(func() error {
		attempt++
		err := ae.delegate.Emit(context.Background(), entry)
		if err != nil {
			logger.Warn("audit delivery failed", zap.String("workflowId", entry.WorkflowId), zap.Int("attempt", attempt), zap.Error(err))
		}
		return err
	}, b)
	if err != nil {
		return err
	}
	return nil
}
