package cache

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/bassista/go_sitework/internal/backend"
	"github.com/bassista/go_sitework/internal/domain"
	"github.com/bassista/go_sitework/internal/logger"
	"github.com/bassista/go_sitework/internal/metrics"
)

// State is the observable content of one resource store.
type State[T any] struct {
	Data    T              `json:"data"`
	Loading bool           `json:"loading"`
	Error   *backend.Error `json:"error"`
}

// Named is the type-erased view of a resource used by the aggregator and the
// bridge.
type Named interface {
	Name() string
	View() (any, error)
	Clear()
	Subscribe(fn func()) (cancel func())
}

// Resource caches one remote resource together with its loading and error
// flags. Every fetch carries a generation number; only the settlement of the
// latest generation is applied.
type Resource[T any] struct {
	name      string
	fallback  string
	initial   func() T
	normalize func(T) T

	mu    sync.RWMutex
	state State[T]
	gen   uint64

	subMu   sync.Mutex
	subs    map[int]func()
	nextSub int
}

// NewResource creates a store named name. initial is called for the starting
// value and on every Clear. fallback is the error message used when the
// failure carries none of its own.
func NewResource[T any](name, fallback string, initial func() T) *Resource[T] {
	r := &Resource[T]{
		name:     name,
		fallback: fallback,
		initial:  initial,
		subs:     map[int]func(){},
	}
	r.state = State[T]{Data: initial()}
	return r
}

// NewList creates a store holding a slice. A nil result settles to an empty
// slice.
func NewList[E any](name, fallback string) *Resource[[]E] {
	r := NewResource(name, fallback, func() []E { return []E{} })
	r.normalize = func(v []E) []E {
		if v == nil {
			return []E{}
		}
		return v
	}
	return r
}

func (r *Resource[T]) Name() string {
	return r.name
}

// Fetch marks the store loading, runs fn and settles the store with its
// outcome. The returned state reflects this call's outcome even when a newer
// fetch or a Clear made it stale and it was not applied.
func (r *Resource[T]) Fetch(ctx context.Context, fn func(context.Context) (T, error)) (State[T], error) {
	log := logger.WithComponent("store").WithField("store", r.name)

	r.mu.Lock()
	r.gen++
	gen := r.gen
	r.state.Loading = true
	r.state.Error = nil
	r.mu.Unlock()
	r.notify()
	metrics.FetchStarted(r.name)

	data, err := fn(ctx)

	r.mu.Lock()
	if gen != r.gen {
		prev := r.state.Data
		r.mu.Unlock()
		metrics.RecordSettlement(r.name, metrics.OutcomeStale)
		log.Debugf("discarding stale settlement (generation %d)", gen)
		if err != nil {
			failure := r.failure(err)
			return State[T]{Data: prev, Error: failure}, failure
		}
		return State[T]{Data: r.apply(data)}, nil
	}

	var failure *backend.Error
	if err != nil {
		failure = r.failure(err)
		r.state.Error = failure
	} else {
		r.state.Data = r.apply(data)
	}
	r.state.Loading = false
	out := r.state
	r.mu.Unlock()
	r.notify()

	if failure != nil {
		metrics.RecordSettlement(r.name, metrics.OutcomeFailure)
		log.Debugf("fetch failed: %v", failure)
		return out, failure
	}
	metrics.RecordSettlement(r.name, metrics.OutcomeSuccess)
	return out, nil
}

func (r *Resource[T]) failure(err error) *backend.Error {
	return backend.AsError(err).WithFallback(r.fallback)
}

func (r *Resource[T]) apply(v T) T {
	if r.normalize != nil {
		return r.normalize(v)
	}
	return v
}

// Update applies a local reducer to the data.
func (r *Resource[T]) Update(fn func(T) T) {
	r.mu.Lock()
	r.state.Data = r.apply(fn(r.state.Data))
	r.mu.Unlock()
	r.notify()
}

// Clear resets the store to its initial state. In-flight fetches become stale.
func (r *Resource[T]) Clear() {
	r.mu.Lock()
	r.gen++
	r.state = State[T]{Data: r.initial()}
	r.mu.Unlock()
	r.notify()
}

// Restore installs data loaded from disk, leaving the flags alone.
func (r *Resource[T]) Restore(data T) {
	r.install(data)
	r.notify()
}

// install sets the data without notifying subscribers.
func (r *Resource[T]) install(data T) {
	r.mu.Lock()
	r.state.Data = r.apply(data)
	r.mu.Unlock()
}

// State returns the current state. The data is shared with the store and
// must not be modified; use Snapshot for an independent copy.
func (r *Resource[T]) State() State[T] {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.state
}

// Data returns the current data, see State.
func (r *Resource[T]) Data() T {
	return r.State().Data
}

// Snapshot returns a deep copy of the current state.
func (r *Resource[T]) Snapshot() (State[T], error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return clone(r.state)
}

// View implements Named.
func (r *Resource[T]) View() (any, error) {
	return r.Snapshot()
}

// Subscribe registers fn to be called after every state change. fn runs
// synchronously on the goroutine that made the change.
func (r *Resource[T]) Subscribe(fn func()) (cancel func()) {
	r.subMu.Lock()
	id := r.nextSub
	r.nextSub++
	r.subs[id] = fn
	r.subMu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			r.subMu.Lock()
			delete(r.subs, id)
			r.subMu.Unlock()
		})
	}
}

func (r *Resource[T]) notify() {
	r.subMu.Lock()
	fns := make([]func(), 0, len(r.subs))
	for _, fn := range r.subs {
		fns = append(fns, fn)
	}
	r.subMu.Unlock()
	for _, fn := range fns {
		fn()
	}
}

// RemoveByID drops every element whose id matches, keeping the order of the rest.
func RemoveByID[E domain.Identified](r *Resource[[]E], id string) {
	r.Update(func(items []E) []E {
		kept := make([]E, 0, len(items))
		for _, item := range items {
			if item.Identity() != id {
				kept = append(kept, item)
			}
		}
		return kept
	})
}

// clone deep-copies v so callers never share slices with the store.
func clone[V any](v V) (V, error) {
	bytes, err := json.Marshal(v)
	if err != nil {
		var zero V
		return zero, err
	}
	var copy V
	if err := json.Unmarshal(bytes, &copy); err != nil {
		var zero V
		return zero, err
	}
	return copy, nil
}
