package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"coop-console/internal/core/domain"
	"coop-console/internal/core/session"
	"coop-console/internal/pkg/envelope"
	"coop-console/internal/pkg/pagination"
)

// list fetches path and unwraps a list from whatever shape the endpoint returns
func list[T any](ctx context.Context, c *Client, sess session.Session, path string, q url.Values, keys ...string) ([]T, envelope.Meta, error) {
	res, err := c.Get(ctx, sess, path, q)
	if err != nil {
		return nil, envelope.Meta{}, err
	}
	if err := res.Err(); err != nil {
		return nil, res.Meta, err
	}
	items, err := envelope.List[T](res.Payload, keys...)
	if err != nil {
		return nil, res.Meta, fmt.Errorf("%s: %w", path, err)
	}
	return items, res.Meta, nil
}

func object[T any](ctx context.Context, c *Client, sess session.Session, path, key string) (T, error) {
	var zero T
	res, err := c.Get(ctx, sess, path, nil)
	if err != nil {
		return zero, err
	}
	if err := res.Err(); err != nil {
		return zero, err
	}
	out, err := envelope.Object[T](res.Payload, key)
	if err != nil {
		return zero, fmt.Errorf("%s: %w", path, err)
	}
	return out, nil
}

func tenantPath(sess session.Session, scope domain.TenantScope, resource string) string {
	return fmt.Sprintf("/%s/%s/%s", scope.Plural(), url.PathEscape(sess.TenantID(scope)), resource)
}

// AssociationsOverview lists the associations of the session's cooperative
func (c *Client) AssociationsOverview(ctx context.Context, sess session.Session) ([]domain.AssociationOverview, envelope.Meta, error) {
	q := url.Values{}
	if sess.CooperativeID != "" {
		q.Set("cooperativeId", sess.CooperativeID)
	}
	return list[domain.AssociationOverview](ctx, c, sess, "/associations/overview", q, "associations")
}

// Association fetches one association
func (c *Client) Association(ctx context.Context, sess session.Session, id string) (domain.Association, error) {
	return object[domain.Association](ctx, c, sess, "/associations/"+url.PathEscape(id), "association")
}

// Members lists the members of the scoped tenant
func (c *Client) Members(ctx context.Context, sess session.Session, scope domain.TenantScope, page *pagination.Params) ([]domain.Member, envelope.Meta, error) {
	return list[domain.Member](ctx, c, sess, tenantPath(sess, scope, "members"), page.Values(), "members")
}

// Loans lists issued loans of the scoped tenant
func (c *Client) Loans(ctx context.Context, sess session.Session, scope domain.TenantScope, page *pagination.Params) ([]domain.Loan, envelope.Meta, error) {
	return list[domain.Loan](ctx, c, sess, tenantPath(sess, scope, "loans"), page.Values(), "loans")
}

// LoanApplications lists loan applications of the scoped tenant
func (c *Client) LoanApplications(ctx context.Context, sess session.Session, scope domain.TenantScope, page *pagination.Params) ([]domain.LoanApplication, envelope.Meta, error) {
	return list[domain.LoanApplication](ctx, c, sess, tenantPath(sess, scope, "loan-applications"), page.Values(), "loanApplications", "applications")
}

// Transactions lists transactions of the scoped tenant
func (c *Client) Transactions(ctx context.Context, sess session.Session, scope domain.TenantScope, page *pagination.Params) ([]domain.Transaction, envelope.Meta, error) {
	return list[domain.Transaction](ctx, c, sess, tenantPath(sess, scope, "transactions"), page.Values(), "transactions")
}

// Meetings lists meetings of the scoped tenant
func (c *Client) Meetings(ctx context.Context, sess session.Session, scope domain.TenantScope) ([]domain.Meeting, envelope.Meta, error) {
	return list[domain.Meeting](ctx, c, sess, tenantPath(sess, scope, "meetings"), nil, "meetings")
}

// RecentMeetings lists the admin's recent meetings
func (c *Client) RecentMeetings(ctx context.Context, sess session.Session) ([]domain.Meeting, envelope.Meta, error) {
	return list[domain.Meeting](ctx, c, sess, "/admin/meetings/recent", nil, "meetings")
}

// Attendance lists attendance records of one meeting
func (c *Client) Attendance(ctx context.Context, sess session.Session, meetingID string) ([]domain.AttendanceRecord, envelope.Meta, error) {
	return list[domain.AttendanceRecord](ctx, c, sess, "/meetings/"+url.PathEscape(meetingID)+"/attendance", nil, "attendance", "records")
}

// Roles lists roles of the scoped tenant
func (c *Client) Roles(ctx context.Context, sess session.Session, scope domain.TenantScope) ([]domain.Role, envelope.Meta, error) {
	return list[domain.Role](ctx, c, sess, tenantPath(sess, scope, "roles"), nil, "roles")
}

// Permissions lists every permission name roles may reference
func (c *Client) Permissions(ctx context.Context, sess session.Session) ([]domain.Permission, envelope.Meta, error) {
	return list[domain.Permission](ctx, c, sess, "/permissions", nil, "permissions")
}

// AdminProfile fetches the logged-in admin
func (c *Client) AdminProfile(ctx context.Context, sess session.Session) (domain.AdminProfile, error) {
	return object[domain.AdminProfile](ctx, c, sess, "/admin/profile", "admin")
}

// Writes

// CreateLoan posts a new loan
func (c *Client) CreateLoan(ctx context.Context, sess session.Session, payload map[string]any) error {
	_, err := c.Send(ctx, sess, Request{Method: http.MethodPost, Path: "/loans", JSON: payload})
	return err
}

// UpdateLoan replaces a loan's editable fields
func (c *Client) UpdateLoan(ctx context.Context, sess session.Session, id string, payload map[string]any) error {
	_, err := c.Send(ctx, sess, Request{Method: http.MethodPut, Path: "/loans/" + url.PathEscape(id), JSON: payload})
	return err
}

// SetLoanApplicationStatus approves, rejects or declines an application
func (c *Client) SetLoanApplicationStatus(ctx context.Context, sess session.Session, id string, status domain.LoanStatus) error {
	_, err := c.Send(ctx, sess, Request{
		Method: http.MethodPatch,
		Path:   "/loan-applications/" + url.PathEscape(id) + "/status",
		JSON:   map[string]any{"status": status},
	})
	return err
}

// CreateMember posts a member; mp is used instead of payload when a photo is attached
func (c *Client) CreateMember(ctx context.Context, sess session.Session, payload map[string]any, mp *Multipart) error {
	r := Request{Method: http.MethodPost, Path: "/members", JSON: payload}
	if mp != nil {
		r.JSON, r.Multipart = nil, mp
	}
	_, err := c.Send(ctx, sess, r)
	return err
}

// UpdateMember edits a member
func (c *Client) UpdateMember(ctx context.Context, sess session.Session, id string, payload map[string]any, mp *Multipart) error {
	r := Request{Method: http.MethodPut, Path: "/members/" + url.PathEscape(id), JSON: payload}
	if mp != nil {
		r.JSON, r.Multipart = nil, mp
	}
	_, err := c.Send(ctx, sess, r)
	return err
}

// DeleteMember removes a member
func (c *Client) DeleteMember(ctx context.Context, sess session.Session, id string) error {
	_, err := c.Send(ctx, sess, Request{Method: http.MethodDelete, Path: "/members/" + url.PathEscape(id)})
	return err
}

// MarkAttendance records a member's attendance at a meeting
func (c *Client) MarkAttendance(ctx context.Context, sess session.Session, meetingID string, payload map[string]any) error {
	_, err := c.Send(ctx, sess, Request{Method: http.MethodPost, Path: "/meetings/" + url.PathEscape(meetingID) + "/attendance", JSON: payload})
	return err
}

// CreateRole adds a role to the scoped tenant
func (c *Client) CreateRole(ctx context.Context, sess session.Session, scope domain.TenantScope, payload map[string]any) error {
	_, err := c.Send(ctx, sess, Request{Method: http.MethodPost, Path: tenantPath(sess, scope, "roles"), JSON: payload})
	return err
}

// UpdateAdminProfile edits the logged-in admin
func (c *Client) UpdateAdminProfile(ctx context.Context, sess session.Session, payload map[string]any) error {
	_, err := c.Send(ctx, sess, Request{Method: http.MethodPut, Path: "/admin/profile", JSON: payload})
	return err
}
