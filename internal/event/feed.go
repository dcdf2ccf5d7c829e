// Package event provides the typed change-notification surface the editing
// core exposes to its host: small subscription feeds rather than a global
// event bus. The host registers callbacks; the core publishes on mutation.
package event

import "sync"

// Feed is a typed subscription list. Publish invokes every subscriber
// synchronously in registration order.
type Feed[T any] struct {
	mu   sync.Mutex
	subs map[int]func(T)
	next int
}

// Subscribe registers a callback and returns a cancel function.
func (f *Feed[T]) Subscribe(fn func(T)) func() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.subs == nil {
		f.subs = make(map[int]func(T))
	}
	id := f.next
	f.next++
	f.subs[id] = fn
	return func() {
		f.mu.Lock()
		defer f.mu.Unlock()
		delete(f.subs, id)
	}
}

// Publish delivers v to every subscriber.
func (f *Feed[T]) Publish(v T) {
	f.mu.Lock()
	fns := make([]func(T), 0, len(f.subs))
	for i := 0; i < f.next; i++ {
		if fn, ok := f.subs[i]; ok {
			fns = append(fns, fn)
		}
	}
	f.mu.Unlock()

	for _, fn := range fns {
		fn(v)
	}
}

// Len returns the number of active subscribers.
func (f *Feed[T]) Len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.subs)
}
