// Package tabs multiplexes several resource fetchers behind a tab selector.
package tabs

import (
	"context"
	"errors"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"
)

// ErrUnknownTab is returned by Activate for a name that is not registered
var ErrUnknownTab = errors.New("unknown tab")

// Tab is what the aggregator needs from a fetcher
type Tab interface {
	Name() string
	Load(ctx context.Context)
	Refresh(ctx context.Context)
	Loaded() bool
	Close()
}

// Mode decides when tabs are fetched
type Mode int

const (
	// Eager fetches every tab when the view mounts
	Eager Mode = iota
	// OnDemand fetches a tab the first time it is activated
	OnDemand
)

// ParseMode maps the TAB_MODE setting
func ParseMode(s string) Mode {
	if strings.EqualFold(strings.TrimSpace(s), "on_demand") {
		return OnDemand
	}
	return Eager
}

// Aggregator holds the tabs of one page and which one is active
type Aggregator struct {
	mode        Mode
	concurrency int

	mu     sync.Mutex
	tabs   []Tab
	active int
	query  string
}

// New creates an aggregator over tabs; the first tab starts active
func New(mode Mode, concurrency int, tabs ...Tab) *Aggregator {
	if concurrency < 1 {
		concurrency = 1
	}
	return &Aggregator{mode: mode, concurrency: concurrency, tabs: tabs}
}

// Mount performs the initial fetch for the current mode
func (a *Aggregator) Mount(ctx context.Context) {
	if a.mode == OnDemand {
		if t := a.Active(); t != nil {
			t.Load(ctx)
		}
		return
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(a.concurrency)
	for _, t := range a.Tabs() {
		t := t
		g.Go(func() error {
			t.Load(gctx)
			return nil
		})
	}
	_ = g.Wait()
}

// Activate switches the rendered tab. Data already fetched is never
// re-requested; in OnDemand mode a tab not yet loaded is fetched now.
// The search query does not carry over.
func (a *Aggregator) Activate(ctx context.Context, name string) error {
	a.mu.Lock()
	idx := -1
	for i, t := range a.tabs {
		if t.Name() == name {
			idx = i
			break
		}
	}
	if idx < 0 {
		a.mu.Unlock()
		return ErrUnknownTab
	}
	if idx != a.active {
		a.query = ""
	}
	a.active = idx
	t := a.tabs[idx]
	a.mu.Unlock()

	if a.mode == OnDemand && !t.Loaded() {
		t.Load(ctx)
	}
	return nil
}

// Active returns the rendered tab
func (a *Aggregator) Active() Tab {
	a.mu.Lock()
	defer a.mu.Unlock()
	if len(a.tabs) == 0 {
		return nil
	}
	return a.tabs[a.active]
}

// ActiveName is the name of the rendered tab, or ""
func (a *Aggregator) ActiveName() string {
	if t := a.Active(); t != nil {
		return t.Name()
	}
	return ""
}

// Tabs returns the tabs in display order
func (a *Aggregator) Tabs() []Tab {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]Tab(nil), a.tabs...)
}

// SetQuery stores the search query for the active tab
func (a *Aggregator) SetQuery(q string) {
	a.mu.Lock()
	a.query = strings.TrimSpace(q)
	a.mu.Unlock()
}

// Query is the active tab's search query
func (a *Aggregator) Query() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.query
}

// Refresh re-fetches the named tab
func (a *Aggregator) Refresh(ctx context.Context, name string) error {
	for _, t := range a.Tabs() {
		if t.Name() == name {
			t.Refresh(ctx)
			return nil
		}
	}
	return ErrUnknownTab
}

// Close detaches every tab
func (a *Aggregator) Close() {
	for _, t := range a.Tabs() {
		t.Close()
	}
}

// Search filters items client-side: a case-insensitive substring match of
// query against any of fields. An empty query returns items unchanged.
func Search[T any](items []T, query string, fields ...func(T) string) []T {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" || len(fields) == 0 {
		return items
	}
	out := make([]T, 0, len(items))
	for _, it := range items {
		for _, field := range fields {
			if strings.Contains(strings.ToLower(field(it)), q) {
				out = append(out, it)
				break
			}
		}
	}
	return out
}
