package service

import "sync"

// stampedeTracker counts concurrent cache misses per key. When the count for
// a key exceeds 1, multiple handlers are fetching the same coordinate at
// once, which shows up in the stampede metrics.
type stampedeTracker struct {
	mu           sync.Mutex
	activeMisses map[string]int
}

func newStampedeTracker() *stampedeTracker {
	return &stampedeTracker{activeMisses: make(map[string]int)}
}

// begin records a miss for key and returns the concurrent miss count.
// Callers must defer end(key).
func (st *stampedeTracker) begin(key string) int {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.activeMisses[key]++
	return st.activeMisses[key]
}

// end records completion of the miss for key.
func (st *stampedeTracker) end(key string) {
	st.mu.Lock()
	defer st.mu.Unlock()
	if n, ok := st.activeMisses[key]; ok && n > 0 {
		st.activeMisses[key]--
		if st.activeMisses[key] == 0 {
			delete(st.activeMisses, key)
		}
	}
}
