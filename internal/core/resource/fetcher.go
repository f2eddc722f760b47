// Package resource implements the fetch-state machine every page is built on:
// a loading/error/data triple and the request that fills it.
package resource

import (
	"context"
	"errors"
	"sync"

	"coop-console/internal/core/domain"
	"coop-console/internal/core/session"
	"coop-console/internal/pkg/envelope"
)

// Loader performs the request for one resource
type Loader[T any] func(ctx context.Context, sess session.Session) ([]T, envelope.Meta, error)

// State is a snapshot of a fetcher. Data is never nil.
type State[T any] struct {
	Loading   bool
	Loaded    bool
	Skipped   bool
	Malformed bool
	Error     string
	Data      []T
	Meta      envelope.Meta
}

// Fetcher owns the state of one remote resource for the lifetime of a view
type Fetcher[T any] struct {
	label string
	scope domain.TenantScope
	sess  session.Session
	load  Loader[T]

	mu        sync.Mutex
	state     State[T]
	gen       uint64
	closed    bool
	observers []func(State[T])
}

// New creates a fetcher. scope is the tenant the resource needs; ScopeNone
// requires only a token.
func New[T any](label string, scope domain.TenantScope, sess session.Session, load Loader[T]) *Fetcher[T] {
	return &Fetcher[T]{
		label: label,
		scope: scope,
		sess:  sess,
		load:  load,
		state: State[T]{Data: []T{}},
	}
}

// Name is the label used in messages and tab bars
func (f *Fetcher[T]) Name() string {
	return f.label
}

// Subscribe registers fn to receive every state transition
func (f *Fetcher[T]) Subscribe(fn func(State[T])) {
	f.mu.Lock()
	f.observers = append(f.observers, fn)
	f.mu.Unlock()
}

// State returns the current snapshot
func (f *Fetcher[T]) State() State[T] {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// Loaded reports whether a request has completed
func (f *Fetcher[T]) Loaded() bool {
	return f.State().Loaded
}

// Load fetches the resource unless it is already loaded or in flight
func (f *Fetcher[T]) Load(ctx context.Context) {
	f.fetch(ctx, false)
}

// Refresh fetches the resource again. A request already in flight is superseded.
func (f *Fetcher[T]) Refresh(ctx context.Context) {
	f.fetch(ctx, true)
}

// Close detaches the fetcher from its view; late results are dropped
func (f *Fetcher[T]) Close() {
	f.mu.Lock()
	f.closed = true
	f.gen++
	f.observers = nil
	f.mu.Unlock()
}

func (f *Fetcher[T]) fetch(ctx context.Context, force bool) {
	f.mu.Lock()
	if f.closed || (!force && (f.state.Loaded || f.state.Loading)) {
		f.mu.Unlock()
		return
	}

	if err := f.sess.Require(f.scope); err != nil {
		f.gen++
		f.transition(State[T]{Skipped: true, Data: []T{}})
		return
	}

	f.gen++
	gen := f.gen
	f.transition(State[T]{Loading: true, Data: []T{}})

	items, meta, err := f.load(ctx, f.sess)

	f.mu.Lock()
	if f.closed || gen != f.gen {
		f.mu.Unlock()
		return
	}
	if ctx.Err() != nil {
		// abandoned by the caller; the next Load starts over
		f.transition(State[T]{Data: []T{}})
		return
	}

	next := State[T]{Loaded: true, Data: items, Meta: meta}
	if err != nil {
		next.Data = nil
		next.Error = Message(f.label, err)
		next.Malformed = errors.Is(err, domain.ErrMalformed)
	}
	if next.Data == nil {
		next.Data = []T{}
	}
	f.transition(next)
}

// transition stores s and notifies observers. Called with f.mu held; returns with it released.
func (f *Fetcher[T]) transition(s State[T]) {
	f.state = s
	observers := append([]func(State[T]){}, f.observers...)
	f.mu.Unlock()

	for _, fn := range observers {
		fn(s)
	}
}

// Message turns a fetch error into the text shown to the user
func Message(label string, err error) string {
	if msg := domain.ServerMessage(err); msg != "" {
		return msg
	}
	if errors.Is(err, domain.ErrMalformed) {
		return "Unexpected response while fetching " + label
	}
	return "Error fetching " + label
}

// Single adapts a loader of one record; the record is Data[0]
func Single[T any](fn func(ctx context.Context, sess session.Session) (T, error)) Loader[T] {
	return func(ctx context.Context, sess session.Session) ([]T, envelope.Meta, error) {
		v, err := fn(ctx, sess)
		if err != nil {
			return nil, envelope.Meta{}, err
		}
		return []T{v}, envelope.Meta{}, nil
	}
}
