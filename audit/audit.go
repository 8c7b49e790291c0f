// Package audit delivers workflow action audit entries to their sinks.
package audit

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/mohitkumar/workflowaction/model"
	"github.com/mohitkumar/workflowaction/persistence"
	"github.com/mohitkumar/workflowaction/workflowaction"
	"go.uber.org/multierr"
)

type SinkType string

const SINK_STORE SinkType = "store"
const SINK_FILE SinkType = "file"
const SINK_BOTH SinkType = "both"

type Config struct {
	SinkType     SinkType
	FileName     string
	Async        bool
	BufferSize   int
	MaxRetryTime time.Duration
}

// Emitter is an AuditEmitter that holds resources until closed.
type Emitter interface {
	workflowaction.AuditEmitter
	Close() error
}

// NewEmitter builds the emitter chain described by conf. Async delivery runs
// on a worker registered with wg.
func NewEmitter(conf Config, store persistence.AuditStore, wg *sync.WaitGroup) (Emitter, error) {
	var emitters []Emitter
	switch conf.SinkType {
	case SINK_STORE, "":
		emitters = append(emitters, NewStoreEmitter(store))
	case SINK_FILE:
		fe, err := NewFileEmitter(conf.FileName)
		if err != nil {
			return nil, err
		}
		emitters = append(emitters, fe)
	case SINK_BOTH:
		fe, err := NewFileEmitter(conf.FileName)
		if err != nil {
			return nil, err
		}
		emitters = append(emitters, NewStoreEmitter(store), fe)
	default:
		return nil, fmt.Errorf("unknown audit sink %s", conf.SinkType)
	}

	var emitter Emitter = NewMultiEmitter(emitters...)
	if len(emitters) == 1 {
		emitter = emitters[0]
	}
	if conf.Async {
		async := NewAsyncEmitter(emitter, conf.BufferSize, conf.MaxRetryTime, wg)
		async.Start()
		return async, nil
	}
	return emitter, nil
}

var _ Emitter = new(MultiEmitter)

// MultiEmitter hands every entry to each of its emitters.
type MultiEmitter struct {
	emitters []Emitter
}

func NewMultiEmitter(emitters ...Emitter) *MultiEmitter {
	return &MultiEmitter{emitters: emitters}
}

func (m *MultiEmitter) Emit(ctx context.Context, entry model.AuditEntry) error {
	var errs error
	for _, e := range m.emitters {
		errs = multierr.Append(errs, e.Emit(ctx, entry))
	}
	return errs
}

func (m *MultiEmitter) Close() error {
	var errs error
	for _, e := range m.emitters {
		errs = multierr.Append(errs, e.Close())
	}
	return errs
}
