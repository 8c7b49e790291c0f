package util

import (
	"sync"

	"github.com/mohitkumar/workflowaction/logger"
	"go.uber.org/zap"
)

// Worker handles tasks one at a time, in the order they were sent.
type Worker[T any] struct {
	name     string
	stop     chan struct{}
	done     chan struct{}
	stopOnce sync.Once
	wg       *sync.WaitGroup
	handler  func(T) error
	taskChan chan T
}

func NewWorker[T any](name string, wg *sync.WaitGroup, handler func(T) error, capacity int) *Worker[T] {
	return &Worker[T]{
		name:     name,
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
		wg:       wg,
		handler:  handler,
		taskChan: make(chan T, capacity),
	}
}

func (w *Worker[T]) Start() {
	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		defer close(w.done)
		for {
			select {
			case task := <-w.taskChan:
				w.handle(task)
			case <-w.stop:
				w.drain()
				logger.Info("stopping worker", zap.String("worker", w.name))
				return
			}
		}
	}()
}

func (w *Worker[T]) Sender() chan<- T {
	return w.taskChan
}

// Stop asks the worker to finish the tasks already queued and exit.
func (w *Worker[T]) Stop() {
	w.stopOnce.Do(func() {
		close(w.stop)
	})
}

func (w *Worker[T]) Stopped() <-chan struct{} {
	return w.stop
}

// Done is closed once a started worker has exited.
func (w *Worker[T]) Done() <-chan struct{} {
	return w.done
}

func (w *Worker[T]) drain() {
	for {
		select {
		case task := <-w.taskChan:
			w.handle(task)
		default:
			return
		}
	}
}

func (w *Worker[T]) handle(task T) {
	if err := w.handler(task); err != nil {
		logger.Error("error in executing task in worker", zap.String("worker", w.name), zap.Any("task", task), zap.Error(err))
	}
}
