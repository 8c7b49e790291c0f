package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/mohitkumar/workflowaction/persistence"
)

var _ persistence.Queue = new(queue)

type queue struct {
	mu     sync.Mutex
	queues map[string][]string
}

func NewQueue() *queue {
	return &queue{
		queues: make(map[string][]string),
	}
}

func (q *queue) Push(ctx context.Context, queueName string, partition int, message []byte) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	key := queueKey(queueName, partition)
	q.queues[key] = append(q.queues[key], string(message))
	return nil
}

func (q *queue) Pop(ctx context.Context, queueName string, partition int, batchSize int) ([]string, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	key := queueKey(queueName, partition)
	items := q.queues[key]
	if batchSize > len(items) {
		batchSize = len(items)
	}
	result := append([]string(nil), items[:batchSize]...)
	q.queues[key] = items[batchSize:]
	return result, nil
}

func queueKey(queueName string, partition int) string {
	return fmt.Sprintf("%s:%d", queueName, partition)
}
