package tabs

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"coop-console/internal/core/domain"
	"coop-console/internal/core/resource"
	"coop-console/internal/core/session"
	"coop-console/internal/pkg/envelope"
)

var sess = session.Session{Token: "tok", AssociationID: "a1"}

func fetcher(name string, calls *int32, items ...domain.Member) *resource.Fetcher[domain.Member] {
	return resource.New[domain.Member](name, domain.ScopeAssociation, sess, func(ctx context.Context, s session.Session) ([]domain.Member, envelope.Meta, error) {
		atomic.AddInt32(calls, 1)
		return items, envelope.Meta{}, nil
	})
}

func TestEagerMountLoadsEveryTab(t *testing.T) {
	var a, b, c int32
	agg := New(Eager, 2, fetcher("members", &a), fetcher("loans", &b), fetcher("meetings", &c))
	agg.Mount(context.Background())

	if a != 1 || b != 1 || c != 1 {
		t.Fatalf("calls = %d %d %d, want 1 each", a, b, c)
	}
	for _, tab := range agg.Tabs() {
		if !tab.Loaded() {
			t.Fatalf("%s not loaded", tab.Name())
		}
	}
}

func TestActivateNeverRefetches(t *testing.T) {
	var a, b int32
	agg := New(Eager, 4, fetcher("members", &a), fetcher("loans", &b))
	agg.Mount(context.Background())

	for i := 0; i < 3; i++ {
		if err := agg.Activate(context.Background(), "loans"); err != nil {
			t.Fatalf("Activate: %v", err)
		}
		if err := agg.Activate(context.Background(), "members"); err != nil {
			t.Fatalf("Activate: %v", err)
		}
	}
	if a != 1 || b != 1 {
		t.Fatalf("calls = %d %d, want 1 each", a, b)
	}
	if err := agg.Refresh(context.Background(), "loans"); err != nil || b != 2 {
		t.Fatalf("refresh: err=%v calls=%d", err, b)
	}
}

func TestOnDemandLoadsActiveOnly(t *testing.T) {
	var a, b int32
	agg := New(OnDemand, 4, fetcher("members", &a), fetcher("loans", &b))
	agg.Mount(context.Background())
	if a != 1 || b != 0 {
		t.Fatalf("after mount calls = %d %d", a, b)
	}
	_ = agg.Activate(context.Background(), "loans")
	_ = agg.Activate(context.Background(), "loans")
	if b != 1 {
		t.Fatalf("loans calls = %d, want 1", b)
	}
	if agg.ActiveName() != "loans" {
		t.Fatalf("active = %q", agg.ActiveName())
	}
}

func TestActivateUnknown(t *testing.T) {
	var a int32
	agg := New(Eager, 1, fetcher("members", &a))
	if err := agg.Activate(context.Background(), "nope"); !errors.Is(err, ErrUnknownTab) {
		t.Fatalf("err = %v", err)
	}
	if err := agg.Refresh(context.Background(), "nope"); !errors.Is(err, ErrUnknownTab) {
		t.Fatalf("err = %v", err)
	}
}

func TestQueryClearedOnSwitch(t *testing.T) {
	var a, b int32
	agg := New(Eager, 1, fetcher("members", &a), fetcher("loans", &b))
	agg.SetQuery("  ada ")
	_ = agg.Activate(context.Background(), "members")
	if agg.Query() != "ada" {
		t.Fatalf("query = %q", agg.Query())
	}
	_ = agg.Activate(context.Background(), "loans")
	if agg.Query() != "" {
		t.Fatalf("query carried over: %q", agg.Query())
	}
}

func TestSearch(t *testing.T) {
	members := []domain.Member{
		{FullName: "Ada Obi", Email: "ada@coop.test"},
		{FullName: "Bola Ade", Email: "bola@coop.test"},
		{FullName: "Chidi Eze", Email: "c.eze@mail.test"},
	}
	name := func(m domain.Member) string { return m.FullName }
	email := func(m domain.Member) string { return m.Email }

	if got := Search(members, "ADE", name); len(got) != 1 || got[0].FullName != "Bola Ade" {
		t.Fatalf("by name = %+v", got)
	}
	if got := Search(members, "ad", name, email); len(got) != 2 {
		t.Fatalf("name or email = %+v", got)
	}
	if got := Search(members, "coop.test", name); len(got) != 0 {
		t.Fatalf("name only = %+v", got)
	}
	if got := Search(members, "  ", name); len(got) != 3 {
		t.Fatalf("empty query = %+v", got)
	}
}

func TestCloseClosesTabs(t *testing.T) {
	var a int32
	f := fetcher("members", &a)
	agg := New(Eager, 1, f)
	agg.Close()
	agg.Mount(context.Background())
	if a != 0 {
		t.Fatalf("closed tab fetched %d times", a)
	}
}
