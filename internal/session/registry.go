package session

import (
	"sort"
	"sync"
)

// maxObserverFailures is how many consecutive panics/errors an observer
// may produce before the registry drops it.
const maxObserverFailures = 3

type observerEntry struct {
	fn       Observer
	failures int
}

// observerRegistry tracks a controller's subscribed observers, grounded
// on stlalpha-vision3/internal/session/registry.go's mutex-guarded-map
// shape (there keyed by node ID; here keyed by subscription handle).
type observerRegistry struct {
	mu      sync.RWMutex
	next    Handle
	entries map[Handle]*observerEntry
}

func newObserverRegistry() *observerRegistry {
	return &observerRegistry{entries: make(map[Handle]*observerEntry)}
}

// Subscribe registers fn and returns a handle Unsubscribe can use to
// remove it later.
func (r *observerRegistry) Subscribe(fn Observer) Handle {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.next++
	h := r.next
	r.entries[h] = &observerEntry{fn: fn}
	return h
}

// Unsubscribe removes the observer registered under h, if still present.
func (r *observerRegistry) Unsubscribe(h Handle) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.entries, h)
}

// notify invokes every live observer with ev, in subscription order.
// A panicking observer is recovered, reported through errLog, and
// counted toward its failure budget; after maxObserverFailures it is
// dropped. Observers run synchronously and must not block.
func (r *observerRegistry) notify(ev Event, errLog func(handle Handle, recovered any)) {
	r.mu.Lock()
	handles := make([]Handle, 0, len(r.entries))
	for h := range r.entries {
		handles = append(handles, h)
	}
	r.mu.Unlock()
	sort.Slice(handles, func(i, j int) bool { return handles[i] < handles[j] })

	for _, h := range handles {
		r.mu.RLock()
		entry, ok := r.entries[h]
		r.mu.RUnlock()
		if !ok {
			continue
		}
		if r.invoke(entry, ev, errLog, h) {
			r.mu.Lock()
			entry.failures++
			if entry.failures >= maxObserverFailures {
				delete(r.entries, h)
			}
			r.mu.Unlock()
		} else if entry.failures != 0 {
			r.mu.Lock()
			entry.failures = 0
			r.mu.Unlock()
		}
	}
}

// invoke calls entry.fn, recovering a panic and reporting it through
// errLog. It returns true if the call failed.
func (r *observerRegistry) invoke(entry *observerEntry, ev Event, errLog func(Handle, any), h Handle) (failed bool) {
	defer func() {
		if rec := recover(); rec != nil {
			failed = true
			if errLog != nil {
				errLog(h, rec)
			}
		}
	}()
	entry.fn(ev)
	return false
}

// Len reports how many observers are currently subscribed.
func (r *observerRegistry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}
