package reactive

import "sync"

// Family memoizes per-item values by the structural equality of their key:
// two gets with equal-by-value keys return the identical instance, so
// per-item state (an in-flight revoke, a selection) survives recomputation of
// the parent list as long as the item's content is unchanged.
//
// Eviction is a sweep driven by the parent derivation: after producing a new
// list it calls Retain with exactly the keys it produced, and every other
// entry is dropped. Without the sweep the table would grow with list churn.
type Family[K comparable, V any] struct {
	mu      sync.Mutex
	build   func(K) V
	entries map[K]V
}

// NewFamily creates a family backed by the given constructor.
func NewFamily[K comparable, V any](build func(K) V) *Family[K, V] {
	return &Family[K, V]{
		build:   build,
		entries: make(map[K]V),
	}
}

// Get returns the memoized value for the key, constructing it on first use.
func (f *Family[K, V]) Get(k K) V {
	f.mu.Lock()
	defer f.mu.Unlock()
	if v, ok := f.entries[k]; ok {
		return v
	}
	v := f.build(k)
	f.entries[k] = v
	return v
}

// Retain drops every entry whose key is not in keep.
func (f *Family[K, V]) Retain(keep []K) {
	live := make(map[K]struct{}, len(keep))
	for _, k := range keep {
		live[k] = struct{}{}
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	for k := range f.entries {
		if _, ok := live[k]; !ok {
			delete(f.entries, k)
		}
	}
}

// Len returns the number of live entries.
func (f *Family[K, V]) Len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.entries)
}
