package blast

import (
	"math"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTxidAllocatorConcurrentCallersGetDistinctIDs(t *testing.T) {
	const (
		goroutines   = 8
		perGoroutine = 1000
	)

	a := &txidAllocator{}
	out := make(chan uint16, goroutines*perGoroutine)

	var wg sync.WaitGroup
	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < perGoroutine; j++ {
				out <- a.Next()
			}
		}()
	}
	wg.Wait()
	close(out)

	seen := make(map[uint16]struct{}, goroutines*perGoroutine)
	for id := range out {
		_, dup := seen[id]
		assert.False(t, dup, "transaction ID %d handed out twice", id)
		seen[id] = struct{}{}
	}
	assert.Len(t, seen, goroutines*perGoroutine)
}

func TestTxidAllocatorWrapsAt16Bits(t *testing.T) {
	a := &txidAllocator{next: math.MaxUint16}

	assert.Equal(t, uint16(math.MaxUint16), a.Next())
	assert.Equal(t, uint16(0), a.Next())
	assert.Equal(t, uint16(1), a.Next())
}
