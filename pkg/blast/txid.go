package blast

import (
	"sync"
)

// txidAllocator hands out DNS transaction IDs to all workers from a single
// 16-bit counter. Every caller receives the exact pre-increment value, so no
// two in-flight queries share an ID until the counter wraps at 2^16. IDs are
// reused silently after wrapping, collisions with still outstanding requests
// are accepted at very high volume.
type txidAllocator struct {
	mu   sync.Mutex
	next uint16
}

func (a *txidAllocator) Next() uint16 {
	a.mu.Lock()
	id := a.next
	a.next++
	a.mu.Unlock()
	return id
}
