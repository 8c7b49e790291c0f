package partition

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRing(t *testing.T) {
	ring := NewRing(RingConfig{PartitionCount: 7})

	seen := make(map[int]bool)
	for i := 0; i < 200; i++ {
		id := fmt.Sprintf("1000110077000032020072009%04d", i)
		p := ring.GetPartition(id)
		require.GreaterOrEqual(t, p, 0)
		require.Less(t, p, 7)
		require.Equal(t, p, ring.GetPartition(id))
		seen[p] = true
	}
	require.Greater(t, len(seen), 1)
	require.Len(t, ring.GetPartitions(), 7)
}

func TestRingDefaults(t *testing.T) {
	ring := NewRing(RingConfig{})
	require.Equal(t, 0, ring.GetPartition("any"))
	require.Equal(t, []int{0}, ring.GetPartitions())
}
