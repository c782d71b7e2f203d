package inventory

import "sync"

// codeLocks serializes ledger mutations per inventory item code.
// Adjustments on different items proceed concurrently; two adjustments
// racing on the same item would both read the same history and one
// write would be lost, so same-code callers queue here. The lock set
// grows with the item catalogue and is never pruned.
type codeLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func newCodeLocks() *codeLocks {
	return &codeLocks{locks: make(map[string]*sync.Mutex)}
}

// Lock acquires the per-code mutex and returns its unlock func
func (c *codeLocks) Lock(code string) func() {
	c.mu.Lock()
	l, ok := c.locks[code]
	if !ok {
		l = &sync.Mutex{}
		c.locks[code] = l
	}
	c.mu.Unlock()

	l.Lock()
	return l.Unlock
}
