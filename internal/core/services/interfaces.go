package services

import (
	"context"

	"coop-console/internal/adapters/api"
	"coop-console/internal/core/domain"
	"coop-console/internal/core/session"
	"coop-console/internal/core/tabs"
	"coop-console/internal/pkg/envelope"
	"coop-console/internal/pkg/pagination"
)

// Gateway is the remote API as the views use it. *api.Client implements it.
type Gateway interface {
	AssociationsOverview(ctx context.Context, sess session.Session) ([]domain.AssociationOverview, envelope.Meta, error)
	Association(ctx context.Context, sess session.Session, id string) (domain.Association, error)
	Members(ctx context.Context, sess session.Session, scope domain.TenantScope, page *pagination.Params) ([]domain.Member, envelope.Meta, error)
	Loans(ctx context.Context, sess session.Session, scope domain.TenantScope, page *pagination.Params) ([]domain.Loan, envelope.Meta, error)
	LoanApplications(ctx context.Context, sess session.Session, scope domain.TenantScope, page *pagination.Params) ([]domain.LoanApplication, envelope.Meta, error)
	Transactions(ctx context.Context, sess session.Session, scope domain.TenantScope, page *pagination.Params) ([]domain.Transaction, envelope.Meta, error)
	Meetings(ctx context.Context, sess session.Session, scope domain.TenantScope) ([]domain.Meeting, envelope.Meta, error)
	RecentMeetings(ctx context.Context, sess session.Session) ([]domain.Meeting, envelope.Meta, error)
	Attendance(ctx context.Context, sess session.Session, meetingID string) ([]domain.AttendanceRecord, envelope.Meta, error)
	Roles(ctx context.Context, sess session.Session, scope domain.TenantScope) ([]domain.Role, envelope.Meta, error)
	Permissions(ctx context.Context, sess session.Session) ([]domain.Permission, envelope.Meta, error)
	AdminProfile(ctx context.Context, sess session.Session) (domain.AdminProfile, error)

	CreateLoan(ctx context.Context, sess session.Session, payload map[string]any) error
	UpdateLoan(ctx context.Context, sess session.Session, id string, payload map[string]any) error
	SetLoanApplicationStatus(ctx context.Context, sess session.Session, id string, status domain.LoanStatus) error
	CreateMember(ctx context.Context, sess session.Session, payload map[string]any, mp *api.Multipart) error
	UpdateMember(ctx context.Context, sess session.Session, id string, payload map[string]any, mp *api.Multipart) error
	DeleteMember(ctx context.Context, sess session.Session, id string) error
	MarkAttendance(ctx context.Context, sess session.Session, meetingID string, payload map[string]any) error
	CreateRole(ctx context.Context, sess session.Session, scope domain.TenantScope, payload map[string]any) error
	UpdateAdminProfile(ctx context.Context, sess session.Session, payload map[string]any) error
}

var _ Gateway = (*api.Client)(nil)

// ViewOptions tunes how pages fetch
type ViewOptions struct {
	TabMode     tabs.Mode
	Concurrency int
	PageSize    int
}
