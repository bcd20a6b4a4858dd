package repository

import (
	"sync"

	"github.com/JoeAtk/GymPT/internal/domain"
)

// splitWatchers is the in-process publish/subscribe registry for latest-split
// changes. Notification is synchronous; callbacks run outside the lock so an
// observer may unregister itself (or another) mid-notify.
type splitWatchers struct {
	mu      sync.Mutex
	nextID  int
	entries map[int]func(domain.Split)
}

func newSplitWatchers() *splitWatchers {
	return &splitWatchers{entries: make(map[int]func(domain.Split))}
}

func (w *splitWatchers) add(fn func(domain.Split)) func() {
	w.mu.Lock()
	id := w.nextID
	w.nextID++
	w.entries[id] = fn
	w.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			w.mu.Lock()
			delete(w.entries, id)
			w.mu.Unlock()
		})
	}
}

func (w *splitWatchers) notify(split domain.Split) {
	w.mu.Lock()
	fns := make([]func(domain.Split), 0, len(w.entries))
	for _, fn := range w.entries {
		fns = append(fns, fn)
	}
	w.mu.Unlock()

	for _, fn := range fns {
		fn(split)
	}
}
