package di

import "sync"

// MemoMap caches constructed capability instances by tag. Sharing one memo
// map across several builds makes shared prerequisites (one RPC client, one
// ledger connection) construct exactly once; tests get isolation by creating
// their own map. The map is an explicit dependency of Build, never a process
// global.
type MemoMap struct {
	mu      sync.Mutex
	entries map[Key]*memoEntry
}

type memoEntry struct {
	done  chan struct{}
	value any
	err   error
}

// NewMemoMap creates an empty memo map.
func NewMemoMap() *MemoMap {
	return &MemoMap{entries: make(map[Key]*memoEntry)}
}

// claim returns the entry for a tag and whether the caller is the builder.
// The first claimant constructs the instance and must call settle; everyone
// else waits on the entry's done channel.
func (m *MemoMap) claim(k Key) (*memoEntry, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if e, ok := m.entries[k]; ok {
		return e, false
	}
	e := &memoEntry{done: make(chan struct{})}
	m.entries[k] = e
	return e, true
}

func (e *memoEntry) settle(value any, err error) {
	e.value = value
	e.err = err
	close(e.done)
}

// Len returns the number of memoized tags, settled or in flight.
func (m *MemoMap) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}
