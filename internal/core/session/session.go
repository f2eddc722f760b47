// Package session holds the per-request auth token and tenant ids. A Session
// is built once at the edge and passed explicitly to every fetch.
package session

import (
	"coop-console/internal/core/domain"
)

// Session is read-only for the view layer
type Session struct {
	Token         string
	AssociationID string
	CooperativeID string
	Admin         *domain.AdminProfile
}

// Authenticated reports whether a bearer token is present
func (s Session) Authenticated() bool {
	return s.Token != ""
}

// TenantID returns the id for scope
func (s Session) TenantID(scope domain.TenantScope) string {
	switch scope {
	case domain.ScopeAssociation:
		return s.AssociationID
	case domain.ScopeCooperative:
		return s.CooperativeID
	}
	return ""
}

// Scope is the narrowest tenant the session is bound to
func (s Session) Scope() domain.TenantScope {
	if s.AssociationID != "" {
		return domain.ScopeAssociation
	}
	if s.CooperativeID != "" {
		return domain.ScopeCooperative
	}
	return domain.ScopeNone
}

// Require checks the inputs a fetch scoped to scope needs
func (s Session) Require(scope domain.TenantScope) error {
	if !s.Authenticated() {
		return domain.ErrMissingToken
	}
	if scope != domain.ScopeNone && s.TenantID(scope) == "" {
		return domain.ErrMissingTenant
	}
	return nil
}

// WithTenant returns a copy bound to id for scope. Used when a page addresses
// a tenant explicitly in its URL (a cooperative admin viewing one association).
func (s Session) WithTenant(scope domain.TenantScope, id string) Session {
	switch scope {
	case domain.ScopeAssociation:
		s.AssociationID = id
	case domain.ScopeCooperative:
		s.CooperativeID = id
	}
	return s
}
