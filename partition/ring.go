// Package partition spreads workflow ids over a fixed number of queue partitions.
package partition

import (
	"github.com/buraksezer/consistent"
	"github.com/mohitkumar/workflowaction/logger"
	"github.com/spaolacci/murmur3"
	"go.uber.org/zap"
)

type hasher struct{}

func (h hasher) Sum64(data []byte) uint64 {
	return murmur3.Sum64(data)
}

type RingConfig struct {
	PartitionCount int
	NodeName       string
}

type member string

func (m member) String() string {
	return string(m)
}

type Ring struct {
	RingConfig
	hring *consistent.Consistent
}

func NewRing(c RingConfig) *Ring {
	if c.PartitionCount <= 0 {
		c.PartitionCount = 1
	}
	if c.NodeName == "" {
		c.NodeName = "local"
	}
	cfg := consistent.Config{
		PartitionCount:    c.PartitionCount,
		ReplicationFactor: 20,
		Load:              1.25,
		Hasher:            hasher{},
	}
	hr := consistent.New([]consistent.Member{member(c.NodeName)}, cfg)
	logger.Info("partition ring ready", zap.String("node", c.NodeName), zap.Int("partitions", c.PartitionCount))
	return &Ring{
		RingConfig: c,
		hring:      hr,
	}
}

// GetPartition maps a workflow id to a partition in [0, PartitionCount).
func (r *Ring) GetPartition(workflowId string) int {
	return r.hring.FindPartitionID([]byte(workflowId))
}

// GetPartitions lists the partitions owned by this node.
func (r *Ring) GetPartitions() []int {
	partitions := make([]int, 0, r.PartitionCount)
	for i := 0; i < r.PartitionCount; i++ {
		if r.hring.GetPartitionOwner(i).String() == r.NodeName {
			partitions = append(partitions, i)
		}
	}
	return partitions
}
