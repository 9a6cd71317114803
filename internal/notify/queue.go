// Package notify keeps the console's transient feedback messages. Every
// message is visible for a fixed lifetime, fades, and is then removed. Items
// are timed independently; the queue never blocks the caller.
package notify

import (
	"sync"
	"time"

	"boxoffice/internal/clock"
)

type Severity string

const (
	Success Severity = "success"
	Error   Severity = "error"
	Info    Severity = "info"
)

const (
	DefaultLifetime = 5 * time.Second
	DefaultFade     = 300 * time.Millisecond
)

type Phase int

const (
	Visible Phase = iota
	Fading
)

type Item struct {
	ID         uint64
	Message    string
	Severity   Severity
	EnqueuedAt time.Time
	Phase      Phase
}

type Queue struct {
	clock    clock.Clock
	lifetime time.Duration
	fade     time.Duration

	mu      sync.Mutex
	nextID  uint64
	items   []Item
	changed chan struct{}
}

type Option func(*Queue)

func WithLifetime(d time.Duration) Option {
	return func(q *Queue) { q.lifetime = d }
}

func WithFade(d time.Duration) Option {
	return func(q *Queue) { q.fade = d }
}

func NewQueue(c clock.Clock, opts ...Option) *Queue {
	q := &Queue{
		clock:    c,
		lifetime: DefaultLifetime,
		fade:     DefaultFade,
		changed:  make(chan struct{}, 1),
	}
	for _, opt := range opts {
		opt(q)
	}
	return q
}

// Notify enqueues message and returns its id. An empty message is kept as-is.
func (q *Queue) Notify(message string, severity Severity) uint64 {
	q.mu.Lock()
	q.nextID++
	id := q.nextID
	q.items = append(q.items, Item{
		ID:         id,
		Message:    message,
		Severity:   severity,
		EnqueuedAt: q.clock.Now(),
		Phase:      Visible,
	})
	q.mu.Unlock()
	q.signal()

	q.clock.AfterFunc(q.lifetime, func() {
		q.setPhase(id, Fading)
		q.clock.AfterFunc(q.fade, func() { q.remove(id) })
	})
	return id
}

func (q *Queue) Success(message string) uint64 { return q.Notify(message, Success) }
func (q *Queue) Error(message string) uint64   { return q.Notify(message, Error) }
func (q *Queue) Info(message string) uint64    { return q.Notify(message, Info) }

// Items returns the items currently on screen, oldest first.
func (q *Queue) Items() []Item {
	q.mu.Lock()
	defer q.mu.Unlock()
	out := make([]Item, len(q.items))
	copy(out, q.items)
	return out
}

// Changed delivers a signal whenever the item set changes. Signals coalesce.
func (q *Queue) Changed() <-chan struct{} {
	return q.changed
}

func (q *Queue) setPhase(id uint64, phase Phase) {
	q.mu.Lock()
	for i := range q.items {
		if q.items[i].ID == id {
			q.items[i].Phase = phase
		}
	}
	q.mu.Unlock()
	q.signal()
}

func (q *Queue) remove(id uint64) {
	q.mu.Lock()
	kept := q.items[:0]
	for _, it := range q.items {
		if it.ID != id {
			kept = append(kept, it)
		}
	}
	q.items = kept
	q.mu.Unlock()
	q.signal()
}

func (q *Queue) signal() {
	select {
	case q.changed <- struct{}{}:
	default:
	}
}
