package resource

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"testing"

	"coop-console/internal/core/domain"
	"coop-console/internal/core/session"
	"coop-console/internal/pkg/envelope"
)

var sess = session.Session{Token: "tok", AssociationID: "a1"}

type counter struct {
	calls int32
	items []string
	err   error
}

func (c *counter) load(ctx context.Context, s session.Session) ([]string, envelope.Meta, error) {
	atomic.AddInt32(&c.calls, 1)
	return c.items, envelope.Meta{Total: int64(len(c.items))}, c.err
}

func TestLoadTransitions(t *testing.T) {
	c := &counter{items: []string{"a", "b"}}
	f := New[string]("members", domain.ScopeAssociation, sess, c.load)

	var seen []State[string]
	f.Subscribe(func(s State[string]) { seen = append(seen, s) })
	f.Load(context.Background())

	if len(seen) != 2 {
		t.Fatalf("transitions = %d, want 2", len(seen))
	}
	if !seen[0].Loading || seen[0].Error != "" || len(seen[0].Data) != 0 {
		t.Fatalf("first = %+v", seen[0])
	}
	if seen[1].Loading || !seen[1].Loaded || len(seen[1].Data) != 2 || seen[1].Meta.Total != 2 {
		t.Fatalf("second = %+v", seen[1])
	}
}

func TestLoadIsIdempotent(t *testing.T) {
	c := &counter{items: []string{"a"}}
	f := New[string]("loans", domain.ScopeAssociation, sess, c.load)
	for i := 0; i < 3; i++ {
		f.Load(context.Background())
	}
	if c.calls != 1 {
		t.Fatalf("calls = %d, want 1", c.calls)
	}
	f.Refresh(context.Background())
	if c.calls != 2 {
		t.Fatalf("calls after refresh = %d, want 2", c.calls)
	}
}

func TestSkippedWithoutSession(t *testing.T) {
	cases := map[string]session.Session{
		"no token":  {AssociationID: "a1"},
		"no tenant": {Token: "tok"},
	}
	for name, s := range cases {
		c := &counter{}
		f := New[string]("members", domain.ScopeAssociation, s, c.load)
		f.Load(context.Background())
		st := f.State()
		if c.calls != 0 || !st.Skipped || st.Loading || st.Data == nil {
			t.Fatalf("%s: calls=%d state=%+v", name, c.calls, st)
		}
	}
}

func TestErrorMessages(t *testing.T) {
	cases := []struct {
		err       error
		msg       string
		malformed bool
	}{
		{fmt.Errorf("%w: dial tcp", domain.ErrNetwork), "Error fetching loans", false},
		{&domain.ServerError{StatusCode: 500}, "Error fetching loans", false},
		{&domain.ServerError{StatusCode: 403, Message: "Forbidden"}, "Forbidden", false},
		{fmt.Errorf("/loans: %w", domain.ErrMalformed), "Unexpected response while fetching loans", true},
	}
	for _, tc := range cases {
		c := &counter{items: []string{"stale"}, err: tc.err}
		f := New[string]("loans", domain.ScopeNone, sess, c.load)
		f.Load(context.Background())
		st := f.State()
		if st.Error != tc.msg || st.Malformed != tc.malformed {
			t.Errorf("%v: state = %+v", tc.err, st)
		}
		if st.Loading || len(st.Data) != 0 || st.Data == nil {
			t.Errorf("%v: error state should be empty and settled: %+v", tc.err, st)
		}
	}
}

func TestCloseDropsLateResult(t *testing.T) {
	var f *Fetcher[string]
	f = New[string]("meetings", domain.ScopeNone, sess, func(ctx context.Context, s session.Session) ([]string, envelope.Meta, error) {
		f.Close() // the view goes away while the request is in flight
		return []string{"late"}, envelope.Meta{}, nil
	})
	notified := 0
	f.Subscribe(func(State[string]) { notified++ })
	f.Load(context.Background())

	if st := f.State(); st.Loaded || len(st.Data) != 0 {
		t.Fatalf("late result applied: %+v", st)
	}
	if notified != 1 {
		t.Fatalf("notified = %d, want only the loading transition", notified)
	}
	f.Refresh(context.Background())
	if f.State().Loaded {
		t.Fatal("closed fetcher refreshed")
	}
}

func TestRefreshSupersedesInFlight(t *testing.T) {
	var f *Fetcher[string]
	first := true
	f = New[string]("roles", domain.ScopeNone, sess, func(ctx context.Context, s session.Session) ([]string, envelope.Meta, error) {
		if first {
			first = false
			f.Refresh(ctx)
			return []string{"old"}, envelope.Meta{}, nil
		}
		return []string{"new"}, envelope.Meta{}, nil
	})
	f.Load(context.Background())
	if st := f.State(); len(st.Data) != 1 || st.Data[0] != "new" {
		t.Fatalf("state = %+v", st)
	}
}

func TestCancelledContextResets(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	c := &counter{items: []string{"x"}}
	f := New[string]("members", domain.ScopeNone, sess, func(ctx context.Context, s session.Session) ([]string, envelope.Meta, error) {
		cancel()
		return c.load(ctx, s)
	})
	f.Load(ctx)
	if st := f.State(); st.Loaded || st.Loading {
		t.Fatalf("state = %+v", st)
	}
}

func TestSingle(t *testing.T) {
	load := Single(func(ctx context.Context, s session.Session) (domain.AdminProfile, error) {
		return domain.AdminProfile{FirstName: "Ada"}, nil
	})
	f := New[domain.AdminProfile]("profile", domain.ScopeNone, sess, load)
	f.Load(context.Background())
	if st := f.State(); len(st.Data) != 1 || st.Data[0].FirstName != "Ada" {
		t.Fatalf("state = %+v", st)
	}

	failing := Single(func(ctx context.Context, s session.Session) (domain.AdminProfile, error) {
		return domain.AdminProfile{}, errors.New("boom")
	})
	g := New[domain.AdminProfile]("profile", domain.ScopeNone, sess, failing)
	g.Load(context.Background())
	if st := g.State(); st.Error != "Error fetching profile" {
		t.Fatalf("state = %+v", st)
	}
}
