// Package memory provides the process-local entity store. All state is
// volatile and lost when the process exits.
package memory

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Record is a stored entity. Clone must return a copy sharing no mutable
// memory with the receiver; every read hands out a clone.
type Record[T any] interface {
	Clone() T
}

// Input builds a record of type T from caller fields plus the system-assigned
// identifier and creation time
type Input[T any] interface {
	Build(id string, createdAt time.Time) T
}

// Patch merges a partial update into a record of type T
type Patch[T any] interface {
	Apply(T) T
}

// Option configures a Repository
type Option func(*options)

type options struct {
	now   func() time.Time
	newID func() string
}

// WithClock overrides the creation timestamp source
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

// WithIDGenerator overrides identifier generation
func WithIDGenerator(newID func() string) Option {
	return func(o *options) { o.newID = newID }
}

func defaultOptions() options {
	return options{
		now:   time.Now,
		newID: func() string { return uuid.NewString() },
	}
}

// Repository is an ordered, mutex-guarded collection of one entity kind.
// Records come back as clones; insertion order is kept in a separate id slice
// so List is stable across calls.
type Repository[T Record[T], I Input[T], P Patch[T]] struct {
	mu      sync.RWMutex
	order   []string
	records map[string]T
	// ids ever handed out, so a deleted id is never reused
	issued map[string]struct{}
	opts   options
}

// NewRepository creates an empty repository
func NewRepository[T Record[T], I Input[T], P Patch[T]](opts ...Option) *Repository[T, I, P] {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &Repository[T, I, P]{
		records: make(map[string]T),
		issued:  make(map[string]struct{}),
		opts:    o,
	}
}

// List returns every record in insertion order. An empty collection yields
// an empty, non-nil slice.
func (r *Repository[T, I, P]) List() []T {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.listLocked()
}

func (r *Repository[T, I, P]) listLocked() []T {
	out := make([]T, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.records[id].Clone())
	}
	return out
}

// Get returns the record with the given id, or ok=false if there is none
func (r *Repository[T, I, P]) Get(id string) (T, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rec, ok := r.records[id]
	if !ok {
		var zero T
		return zero, false
	}
	return rec.Clone(), true
}

// Create assigns a fresh identifier and creation time, stores the record
// and returns a clone of it
func (r *Repository[T, I, P]) Create(in I) T {
	r.mu.Lock()
	defer r.mu.Unlock()

	id := r.nextIDLocked()
	r.issued[id] = struct{}{}

	rec := in.Build(id, r.opts.now())
	r.records[id] = rec
	r.order = append(r.order, id)
	return rec.Clone()
}

func (r *Repository[T, I, P]) nextIDLocked() string {
	for {
		id := r.opts.newID()
		if _, taken := r.issued[id]; !taken && id != "" {
			return id
		}
	}
}

// Update merges patch onto the stored record. It reports ok=false when the
// id is absent, including when a concurrent Delete won the race.
func (r *Repository[T, I, P]) Update(id string, patch P) (T, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec, ok := r.records[id]
	if !ok {
		var zero T
		return zero, false
	}
	rec = patch.Apply(rec.Clone())
	r.records[id] = rec
	return rec.Clone(), true
}

// Delete removes the record and reports whether one was removed
func (r *Repository[T, I, P]) Delete(id string) bool {
	_, ok := r.Remove(id)
	return ok
}

// Remove deletes the record and returns it, or ok=false if there was none
func (r *Repository[T, I, P]) Remove(id string) (T, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec, ok := r.records[id]
	if !ok {
		var zero T
		return zero, false
	}
	delete(r.records, id)
	for i, oid := range r.order {
		if oid == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return rec, true
}

// Len returns the number of stored records
func (r *Repository[T, I, P]) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.order)
}
