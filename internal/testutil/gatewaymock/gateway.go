package gatewaymock

import (
	"context"
	"errors"

	"coop-console/internal/adapters/api"
	"coop-console/internal/core/domain"
	"coop-console/internal/core/session"
	"coop-console/internal/pkg/envelope"
	"coop-console/internal/pkg/pagination"
)

// ErrNotImplemented is returned by methods the test left unset
var ErrNotImplemented = errors.New("gatewaymock: not implemented")

// Gateway is a function-backed mock of services.Gateway.
// Reads with no Fn set fail; writes with no Fn set succeed.
type Gateway struct {
	AssociationsOverviewFn func(ctx context.Context, sess session.Session) ([]domain.AssociationOverview, envelope.Meta, error)
	AssociationFn          func(ctx context.Context, sess session.Session, id string) (domain.Association, error)
	MembersFn              func(ctx context.Context, sess session.Session, scope domain.TenantScope, page *pagination.Params) ([]domain.Member, envelope.Meta, error)
	LoansFn                func(ctx context.Context, sess session.Session, scope domain.TenantScope, page *pagination.Params) ([]domain.Loan, envelope.Meta, error)
	LoanApplicationsFn     func(ctx context.Context, sess session.Session, scope domain.TenantScope, page *pagination.Params) ([]domain.LoanApplication, envelope.Meta, error)
	TransactionsFn         func(ctx context.Context, sess session.Session, scope domain.TenantScope, page *pagination.Params) ([]domain.Transaction, envelope.Meta, error)
	MeetingsFn             func(ctx context.Context, sess session.Session, scope domain.TenantScope) ([]domain.Meeting, envelope.Meta, error)
	RecentMeetingsFn       func(ctx context.Context, sess session.Session) ([]domain.Meeting, envelope.Meta, error)
	AttendanceFn           func(ctx context.Context, sess session.Session, meetingID string) ([]domain.AttendanceRecord, envelope.Meta, error)
	RolesFn                func(ctx context.Context, sess session.Session, scope domain.TenantScope) ([]domain.Role, envelope.Meta, error)
	PermissionsFn          func(ctx context.Context, sess session.Session) ([]domain.Permission, envelope.Meta, error)
	AdminProfileFn         func(ctx context.Context, sess session.Session) (domain.AdminProfile, error)

	CreateLoanFn               func(ctx context.Context, sess session.Session, payload map[string]any) error
	UpdateLoanFn               func(ctx context.Context, sess session.Session, id string, payload map[string]any) error
	SetLoanApplicationStatusFn func(ctx context.Context, sess session.Session, id string, status domain.LoanStatus) error
	CreateMemberFn             func(ctx context.Context, sess session.Session, payload map[string]any, mp *api.Multipart) error
	UpdateMemberFn             func(ctx context.Context, sess session.Session, id string, payload map[string]any, mp *api.Multipart) error
	DeleteMemberFn             func(ctx context.Context, sess session.Session, id string) error
	MarkAttendanceFn           func(ctx context.Context, sess session.Session, meetingID string, payload map[string]any) error
	CreateRoleFn               func(ctx context.Context, sess session.Session, scope domain.TenantScope, payload map[string]any) error
	UpdateAdminProfileFn       func(ctx context.Context, sess session.Session, payload map[string]any) error
}

func (m *Gateway) AssociationsOverview(ctx context.Context, sess session.Session) ([]domain.AssociationOverview, envelope.Meta, error) {
	if m.AssociationsOverviewFn != nil {
		return m.AssociationsOverviewFn(ctx, sess)
	}
	return nil, envelope.Meta{}, ErrNotImplemented
}

func (m *Gateway) Association(ctx context.Context, sess session.Session, id string) (domain.Association, error) {
	if m.AssociationFn != nil {
		return m.AssociationFn(ctx, sess, id)
	}
	return domain.Association{}, ErrNotImplemented
}

func (m *Gateway) Members(ctx context.Context, sess session.Session, scope domain.TenantScope, page *pagination.Params) ([]domain.Member, envelope.Meta, error) {
	if m.MembersFn != nil {
		return m.MembersFn(ctx, sess, scope, page)
	}
	return nil, envelope.Meta{}, ErrNotImplemented
}

func (m *Gateway) Loans(ctx context.Context, sess session.Session, scope domain.TenantScope, page *pagination.Params) ([]domain.Loan, envelope.Meta, error) {
	if m.LoansFn != nil {
		return m.LoansFn(ctx, sess, scope, page)
	}
	return nil, envelope.Meta{}, ErrNotImplemented
}

func (m *Gateway) LoanApplications(ctx context.Context, sess session.Session, scope domain.TenantScope, page *pagination.Params) ([]domain.LoanApplication, envelope.Meta, error) {
	if m.LoanApplicationsFn != nil {
		return m.LoanApplicationsFn(ctx, sess, scope, page)
	}
	return nil, envelope.Meta{}, ErrNotImplemented
}

func (m *Gateway) Transactions(ctx context.Context, sess session.Session, scope domain.TenantScope, page *pagination.Params) ([]domain.Transaction, envelope.Meta, error) {
	if m.TransactionsFn != nil {
		return m.TransactionsFn(ctx, sess, scope, page)
	}
	return nil, envelope.Meta{}, ErrNotImplemented
}

func (m *Gateway) Meetings(ctx context.Context, sess session.Session, scope domain.TenantScope) ([]domain.Meeting, envelope.Meta, error) {
	if m.MeetingsFn != nil {
		return m.MeetingsFn(ctx, sess, scope)
	}
	return nil, envelope.Meta{}, ErrNotImplemented
}

func (m *Gateway) RecentMeetings(ctx context.Context, sess session.Session) ([]domain.Meeting, envelope.Meta, error) {
	if m.RecentMeetingsFn != nil {
		return m.RecentMeetingsFn(ctx, sess)
	}
	return nil, envelope.Meta{}, ErrNotImplemented
}

func (m *Gateway) Attendance(ctx context.Context, sess session.Session, meetingID string) ([]domain.AttendanceRecord, envelope.Meta, error) {
	if m.AttendanceFn != nil {
		return m.AttendanceFn(ctx, sess, meetingID)
	}
	return nil, envelope.Meta{}, ErrNotImplemented
}

func (m *Gateway) Roles(ctx context.Context, sess session.Session, scope domain.TenantScope) ([]domain.Role, envelope.Meta, error) {
	if m.RolesFn != nil {
		return m.RolesFn(ctx, sess, scope)
	}
	return nil, envelope.Meta{}, ErrNotImplemented
}

func (m *Gateway) Permissions(ctx context.Context, sess session.Session) ([]domain.Permission, envelope.Meta, error) {
	if m.PermissionsFn != nil {
		return m.PermissionsFn(ctx, sess)
	}
	return nil, envelope.Meta{}, ErrNotImplemented
}

func (m *Gateway) AdminProfile(ctx context.Context, sess session.Session) (domain.AdminProfile, error) {
	if m.AdminProfileFn != nil {
		return m.AdminProfileFn(ctx, sess)
	}
	return domain.AdminProfile{}, ErrNotImplemented
}

func (m *Gateway) CreateLoan(ctx context.Context, sess session.Session, payload map[string]any) error {
	if m.CreateLoanFn != nil {
		return m.CreateLoanFn(ctx, sess, payload)
	}
	return nil
}

func (m *Gateway) UpdateLoan(ctx context.Context, sess session.Session, id string, payload map[string]any) error {
	if m.UpdateLoanFn != nil {
		return m.UpdateLoanFn(ctx, sess, id, payload)
	}
	return nil
}

func (m *Gateway) SetLoanApplicationStatus(ctx context.Context, sess session.Session, id string, status domain.LoanStatus) error {
	if m.SetLoanApplicationStatusFn != nil {
		return m.SetLoanApplicationStatusFn(ctx, sess, id, status)
	}
	return nil
}

func (m *Gateway) CreateMember(ctx context.Context, sess session.Session, payload map[string]any, mp *api.Multipart) error {
	if m.CreateMemberFn != nil {
		return m.CreateMemberFn(ctx, sess, payload, mp)
	}
	return nil
}

func (m *Gateway) UpdateMember(ctx context.Context, sess session.Session, id string, payload map[string]any, mp *api.Multipart) error {
	if m.UpdateMemberFn != nil {
		return m.UpdateMemberFn(ctx, sess, id, payload, mp)
	}
	return nil
}

func (m *Gateway) DeleteMember(ctx context.Context, sess session.Session, id string) error {
	if m.DeleteMemberFn != nil {
		return m.DeleteMemberFn(ctx, sess, id)
	}
	return nil
}

func (m *Gateway) MarkAttendance(ctx context.Context, sess session.Session, meetingID string, payload map[string]any) error {
	if m.MarkAttendanceFn != nil {
		return m.MarkAttendanceFn(ctx, sess, meetingID, payload)
	}
	return nil
}

func (m *Gateway) CreateRole(ctx context.Context, sess session.Session, scope domain.TenantScope, payload map[string]any) error {
	if m.CreateRoleFn != nil {
		return m.CreateRoleFn(ctx, sess, scope, payload)
	}
	return nil
}

func (m *Gateway) UpdateAdminProfile(ctx context.Context, sess session.Session, payload map[string]any) error {
	if m.UpdateAdminProfileFn != nil {
		return m.UpdateAdminProfileFn(ctx, sess, payload)
	}
	return nil
}
