package services

import (
	"context"
	"net/url"

	"coop-console/internal/core/domain"
	"coop-console/internal/core/form"
	"coop-console/internal/core/resource"
	"coop-console/internal/core/session"
	"coop-console/internal/core/tabs"
	"coop-console/internal/pkg/envelope"
	"coop-console/internal/pkg/pagination"
)

// LoanFields are the loan form fields the API accepts
var LoanFields = []string{"memberId", "amount", "interestRate", "termMonths", "issueDate", "dueDate", "purpose"}

// LoanRequired are the fields the loan dialog will not submit without
var LoanRequired = []string{"memberId", "amount", "interestRate", "termMonths", "issueDate", "purpose"}

var loanLabels = map[string]string{
	"memberId":     "Member",
	"amount":       "Amount",
	"interestRate": "Interest rate",
	"termMonths":   "Term (months)",
	"issueDate":    "Issue date",
	"dueDate":      "Due date",
	"purpose":      "Purpose",
}

// LoanRow is a loan formatted for the table
type LoanRow struct {
	domain.Loan
	AmountText string
}

// LoansPage is the loan list page model
type LoansPage struct {
	Scope  domain.TenantScope
	Fetch  FetchView
	Query  string
	Rows   []LoanRow
	Pages  []pagination.Link
	Notice string
	Form   *DialogView
}

// LoansView is the resource view behind /loans
type LoansView struct {
	svc   *ViewService
	sess  session.Session
	scope domain.TenantScope
	page  *pagination.Params

	loans  *resource.Fetcher[domain.Loan]
	query  string
	notice string
	form   *DialogView
}

// Loans creates the loan list of the session's tenant
func (s *ViewService) Loans(sess session.Session, page *pagination.Params) *LoansView {
	if page == nil {
		page = pagination.New(1, s.opts.PageSize)
	}
	scope := sess.Scope()
	if scope == domain.ScopeNone {
		// no tenant to list loans for; the fetcher skips
		scope = domain.ScopeAssociation
	}
	v := &LoansView{svc: s, sess: sess, scope: scope, page: page}
	v.loans = resource.New[domain.Loan](TabLoans, scope, sess, func(ctx context.Context, sess session.Session) ([]domain.Loan, envelope.Meta, error) {
		return s.gw.Loans(ctx, sess, scope, page)
	})
	return v
}

// Mount fetches the list unless a submit already refreshed it
func (v *LoansView) Mount(ctx context.Context, query string) {
	v.query = query
	v.loans.Load(ctx)
}

// Close detaches the view
func (v *LoansView) Close() {
	v.loans.Close()
}

// SetNotice shows a confirmation above the table
func (v *LoansView) SetNotice(msg string) {
	v.notice = msg
}

// LoanValues flattens a loan for the edit dialog
func LoanValues(l domain.Loan) map[string]string {
	return map[string]string{
		"memberId":     l.MemberID.String(),
		"amount":       l.Amount.String(),
		"interestRate": l.InterestRate.String(),
		"termMonths":   l.TermMonths.String(),
		"issueDate":    l.IssueDate,
		"dueDate":      l.DueDate,
		"purpose":      l.Purpose,
	}
}

// Loan finds a loaded loan by id
func (v *LoansView) Loan(id string) (domain.Loan, bool) {
	for _, l := range v.loans.State().Data {
		if l.ID.String() == id {
			return l, true
		}
	}
	return domain.Loan{}, false
}

// Dialog is the create/edit loan modal; a saved loan refreshes the list once
func (v *LoansView) Dialog() *form.Dialog {
	return form.New(form.Config{
		Label:    "loan",
		Required: LoanRequired,
		Numeric:  []string{"amount", "interestRate", "termMonths"},
		Labels:   loanLabels,
		Submit: func(ctx context.Context, sub form.Submission) error {
			payload := pick(sub.Payload, LoanFields)
			if v.sess.AssociationID != "" {
				payload["associationId"] = v.sess.AssociationID
			}
			if sub.Mode == form.Edit {
				return v.svc.gw.UpdateLoan(ctx, v.sess, sub.ID, payload)
			}
			return v.svc.gw.CreateLoan(ctx, v.sess, payload)
		},
		OnSaved: v.loans.Refresh,
	})
}

// ShowForm renders d on the page
func (v *LoansView) ShowForm(d *form.Dialog, id string) {
	action := "/loans"
	if id != "" {
		action += "/" + url.PathEscape(id)
	}
	v.form = dialogView(d, id, action)
}

// Page builds the page model
func (v *LoansView) Page() LoansPage {
	st := v.loans.State()
	items := tabs.Search(st.Data, v.query,
		func(l domain.Loan) string { return l.MemberName },
		func(l domain.Loan) string { return l.Purpose },
	)
	rows := make([]LoanRow, 0, len(items))
	for _, l := range items {
		rows = append(rows, LoanRow{Loan: l, AmountText: FormatAmount(float64(l.Amount))})
	}
	return LoansPage{
		Scope:  v.scope,
		Fetch:  fetchView(v.loans, "Loans"),
		Query:  v.query,
		Rows:   rows,
		Pages:  pageLinks("/loans", v.page, nil, st.Meta.Total, len(st.Data)),
		Notice: v.notice,
		Form:   v.form,
	}
}
