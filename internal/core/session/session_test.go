package session

import (
	"errors"
	"testing"

	"coop-console/internal/core/domain"
)

func TestRequire(t *testing.T) {
	cases := []struct {
		name  string
		sess  Session
		scope domain.TenantScope
		want  error
	}{
		{"no token", Session{AssociationID: "a1"}, domain.ScopeAssociation, domain.ErrMissingToken},
		{"no tenant", Session{Token: "t"}, domain.ScopeAssociation, domain.ErrMissingTenant},
		{"wrong tenant", Session{Token: "t", AssociationID: "a1"}, domain.ScopeCooperative, domain.ErrMissingTenant},
		{"unscoped", Session{Token: "t"}, domain.ScopeNone, nil},
		{"ok", Session{Token: "t", CooperativeID: "c1"}, domain.ScopeCooperative, nil},
	}
	for _, tc := range cases {
		if err := tc.sess.Require(tc.scope); !errors.Is(err, tc.want) {
			t.Errorf("%s: err = %v, want %v", tc.name, err, tc.want)
		}
	}
}

func TestWithTenantDoesNotMutate(t *testing.T) {
	base := Session{Token: "t", CooperativeID: "c1"}
	scoped := base.WithTenant(domain.ScopeAssociation, "a9")
	if base.AssociationID != "" {
		t.Fatal("base session mutated")
	}
	if scoped.TenantID(domain.ScopeAssociation) != "a9" || scoped.Scope() != domain.ScopeAssociation {
		t.Fatalf("scoped = %+v", scoped)
	}
}
