package services

import (
	"context"
	"net/url"

	"coop-console/internal/core/domain"
	"coop-console/internal/core/resource"
	"coop-console/internal/core/session"
	"coop-console/internal/core/tabs"
	"coop-console/internal/pkg/envelope"
	"coop-console/internal/pkg/pagination"
)

// ============================================================
// Association overview (cooperative admins)
// ============================================================

// AssociationRow is one line of the overview table
type AssociationRow struct {
	ID          string
	Name        string
	Members     string
	Loans       string
	Created     string
	DefaultRate string
	Href        string
}

// AssociationListPage is the overview page model
type AssociationListPage struct {
	Fetch FetchView
	Query string
	Rows  []AssociationRow
}

// AssociationListView is the resource view behind /associations
type AssociationListView struct {
	overview *resource.Fetcher[domain.AssociationOverview]
	query    string
}

// AssociationList creates the overview view
func (s *ViewService) AssociationList(sess session.Session) *AssociationListView {
	return &AssociationListView{
		overview: resource.New[domain.AssociationOverview]("associations", domain.ScopeNone, sess, s.gw.AssociationsOverview),
	}
}

// Mount fetches the overview
func (v *AssociationListView) Mount(ctx context.Context, query string) {
	v.query = query
	v.overview.Load(ctx)
}

// Close detaches the view
func (v *AssociationListView) Close() {
	v.overview.Close()
}

// Page builds the page model; search matches name or id
func (v *AssociationListView) Page() AssociationListPage {
	st := v.overview.State()
	items := tabs.Search(st.Data, v.query,
		func(a domain.AssociationOverview) string { return a.Name },
		func(a domain.AssociationOverview) string { return a.ID.String() },
	)
	rows := make([]AssociationRow, 0, len(items))
	for _, a := range items {
		rows = append(rows, AssociationRow{
			ID:          a.ID.String(),
			Name:        a.Name,
			Members:     a.Members.String(),
			Loans:       a.Loans.String(),
			Created:     a.Created,
			DefaultRate: a.DefaultRate,
			Href:        "/associations/" + url.PathEscape(a.ID.String()),
		})
	}
	return AssociationListPage{Fetch: fetchView(v.overview, "Associations"), Query: v.query, Rows: rows}
}

// ============================================================
// Tenant detail (association or cooperative)
// ============================================================

// Tab names of the tenant detail page
const (
	TabMembers      = "members"
	TabLoans        = "loans"
	TabApplications = "applications"
	TabTransactions = "transactions"
	TabMeetings     = "meetings"
)

var tabLabels = map[string]string{
	TabMembers:      "Members",
	TabLoans:        "Loans",
	TabApplications: "Loan Applications",
	TabTransactions: "Transactions",
	TabMeetings:     "Meetings",
}

// MeetingRow is a meeting with its attendance rate
type MeetingRow struct {
	domain.Meeting
	Percent string
	Href    string
}

func meetingRows(meetings []domain.Meeting) []MeetingRow {
	rows := make([]MeetingRow, 0, len(meetings))
	for _, m := range meetings {
		rows = append(rows, MeetingRow{
			Meeting: m,
			Percent: percent(m.AttendancePercent()),
			Href:    "/meetings/" + url.PathEscape(m.ID.String()) + "/attendance",
		})
	}
	return rows
}

// TenantPage is the tenant detail page model
type TenantPage struct {
	Scope        domain.TenantScope
	TenantID     string
	BasePath     string
	Title        string
	Header       *domain.Association
	Tabs         []FetchView
	Active       string
	Query        string
	Members      []domain.Member
	Loans        []domain.Loan
	Applications []domain.LoanApplication
	Transactions []domain.Transaction
	Meetings     []MeetingRow
	Pages        []pagination.Link
	Notice       string
	MemberForm   *DialogView
	DecisionForm *DialogView
}

// TenantView is the tabbed resource view behind /{scope}/{id}
type TenantView struct {
	svc    *ViewService
	sess   session.Session
	scope  domain.TenantScope
	id     string
	active string
	page   *pagination.Params

	header       *resource.Fetcher[domain.Association]
	members      *resource.Fetcher[domain.Member]
	loans        *resource.Fetcher[domain.Loan]
	applications *resource.Fetcher[domain.LoanApplication]
	transactions *resource.Fetcher[domain.Transaction]
	meetings     *resource.Fetcher[domain.Meeting]
	agg          *tabs.Aggregator

	memberForm   *DialogView
	decisionForm *DialogView
	notice       string
}

// Tenant creates the detail view of tenant id. The page params apply to
// the active tab only; the other list tabs show their first page.
func (s *ViewService) Tenant(sess session.Session, scope domain.TenantScope, id, active string, page *pagination.Params) *TenantView {
	if _, ok := tabLabels[active]; !ok {
		active = TabMembers
	}
	if page == nil {
		page = pagination.New(1, s.opts.PageSize)
	}
	sess = sess.WithTenant(scope, id)

	v := &TenantView{svc: s, sess: sess, scope: scope, id: id, active: active, page: page}
	pageFor := func(tab string) *pagination.Params {
		if tab == active {
			return page
		}
		return pagination.New(1, s.opts.PageSize)
	}

	if scope == domain.ScopeAssociation {
		v.header = resource.New[domain.Association]("association", scope, sess, resource.Single(func(ctx context.Context, sess session.Session) (domain.Association, error) {
			return s.gw.Association(ctx, sess, id)
		}))
	}
	v.members = resource.New[domain.Member](TabMembers, scope, sess, func(ctx context.Context, sess session.Session) ([]domain.Member, envelope.Meta, error) {
		return s.gw.Members(ctx, sess, scope, pageFor(TabMembers))
	})
	v.loans = resource.New[domain.Loan](TabLoans, scope, sess, func(ctx context.Context, sess session.Session) ([]domain.Loan, envelope.Meta, error) {
		return s.gw.Loans(ctx, sess, scope, pageFor(TabLoans))
	})
	v.applications = resource.New[domain.LoanApplication](TabApplications, scope, sess, func(ctx context.Context, sess session.Session) ([]domain.LoanApplication, envelope.Meta, error) {
		return s.gw.LoanApplications(ctx, sess, scope, pageFor(TabApplications))
	})
	v.transactions = resource.New[domain.Transaction](TabTransactions, scope, sess, func(ctx context.Context, sess session.Session) ([]domain.Transaction, envelope.Meta, error) {
		return s.gw.Transactions(ctx, sess, scope, pageFor(TabTransactions))
	})
	v.meetings = resource.New[domain.Meeting](TabMeetings, scope, sess, func(ctx context.Context, sess session.Session) ([]domain.Meeting, envelope.Meta, error) {
		return s.gw.Meetings(ctx, sess, scope)
	})

	v.agg = tabs.New(s.opts.TabMode, s.opts.Concurrency, v.members, v.loans, v.applications, v.transactions, v.meetings)
	return v
}

// Mount activates the requested tab and performs the initial fetches
func (v *TenantView) Mount(ctx context.Context, query string) {
	_ = v.agg.Activate(ctx, v.active)
	v.agg.SetQuery(query)
	if v.header != nil {
		v.header.Load(ctx)
	}
	v.agg.Mount(ctx)
}

// Close detaches every fetcher
func (v *TenantView) Close() {
	if v.header != nil {
		v.header.Close()
	}
	v.agg.Close()
}

// BasePath is the URL of the page
func (v *TenantView) BasePath() string {
	return "/" + v.scope.Plural() + "/" + url.PathEscape(v.id)
}

// SetNotice shows a confirmation above the tabs
func (v *TenantView) SetNotice(msg string) {
	v.notice = msg
}

// Page builds the page model
func (v *TenantView) Page() TenantPage {
	base := v.BasePath()
	p := TenantPage{
		Scope:        v.scope,
		TenantID:     v.id,
		BasePath:     base,
		Title:        v.scope.Title() + " " + v.id,
		Active:       v.agg.ActiveName(),
		Query:        v.agg.Query(),
		Notice:       v.notice,
		MemberForm:   v.memberForm,
		DecisionForm: v.decisionForm,
	}
	if v.header != nil {
		if st := v.header.State(); len(st.Data) > 0 {
			h := st.Data[0]
			p.Header = &h
			if h.Name != "" {
				p.Title = h.Name
			}
		}
	}

	views := []FetchView{
		fetchView(v.members, tabLabels[TabMembers]),
		fetchView(v.loans, tabLabels[TabLoans]),
		fetchView(v.applications, tabLabels[TabApplications]),
		fetchView(v.transactions, tabLabels[TabTransactions]),
		fetchView(v.meetings, tabLabels[TabMeetings]),
	}
	for i := range views {
		views[i].Href = base + "?tab=" + views[i].Name
		views[i].Active = views[i].Name == p.Active
	}
	p.Tabs = views

	q := p.Query
	extra := url.Values{"tab": {p.Active}}
	switch p.Active {
	case TabMembers:
		st := v.members.State()
		p.Members = tabs.Search(st.Data, q,
			func(m domain.Member) string { return m.FullName },
			func(m domain.Member) string { return m.PhoneNumber },
		)
		p.Pages = pageLinks(base, v.page, extra, st.Meta.Total, len(st.Data))
	case TabLoans:
		st := v.loans.State()
		p.Loans = tabs.Search(st.Data, q,
			func(l domain.Loan) string { return l.MemberName },
			func(l domain.Loan) string { return l.Purpose },
		)
		p.Pages = pageLinks(base, v.page, extra, st.Meta.Total, len(st.Data))
	case TabApplications:
		st := v.applications.State()
		p.Applications = tabs.Search(st.Data, q,
			func(l domain.LoanApplication) string { return l.MemberName },
			func(l domain.LoanApplication) string { return string(l.Status) },
		)
		p.Pages = pageLinks(base, v.page, extra, st.Meta.Total, len(st.Data))
	case TabTransactions:
		st := v.transactions.State()
		p.Transactions = tabs.Search(st.Data, q,
			func(t domain.Transaction) string { return t.Reference },
			func(t domain.Transaction) string { return t.MemberName },
		)
		p.Pages = pageLinks(base, v.page, extra, st.Meta.Total, len(st.Data))
	case TabMeetings:
		st := v.meetings.State()
		p.Meetings = meetingRows(tabs.Search(st.Data, q, func(m domain.Meeting) string { return m.Name }))
	}
	return p
}
