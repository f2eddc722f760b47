package services

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"coop-console/internal/adapters/api"
	"coop-console/internal/core/domain"
	"coop-console/internal/core/form"
)

// MemberFields are the member form fields the API accepts
var MemberFields = []string{"fullName", "phoneNumber", "email", "address", "dateJoined", "membershipStatus"}

var memberLabels = map[string]string{
	"fullName":    "Full name",
	"phoneNumber": "Phone number",
	"dateJoined":  "Date joined",
}

// MemberValues flattens a member into form values for the edit dialog
func MemberValues(m domain.Member) map[string]string {
	return map[string]string{
		"fullName":         m.FullName,
		"phoneNumber":      m.PhoneNumber,
		"email":            m.Email,
		"address":          m.Address,
		"dateJoined":       m.DateJoined,
		"membershipStatus": string(m.MembershipStatus),
	}
}

// MemberDialog is the create/edit member modal. Members are created in the
// view's tenant; a saved member refreshes the members tab.
func (v *TenantView) MemberDialog() *form.Dialog {
	return form.New(form.Config{
		Label:    "member",
		Required: []string{"fullName", "phoneNumber"},
		Labels:   memberLabels,
		Submit: func(ctx context.Context, sub form.Submission) error {
			payload := pick(sub.Payload, MemberFields)
			if v.scope == domain.ScopeAssociation {
				payload["associationId"] = v.id
			} else {
				payload["cooperativeId"] = v.id
			}
			mp := memberMultipart(payload, sub.File)
			if sub.Mode == form.Edit {
				return v.svc.gw.UpdateMember(ctx, v.sess, sub.ID, payload, mp)
			}
			return v.svc.gw.CreateMember(ctx, v.sess, payload, mp)
		},
		OnSaved: v.members.Refresh,
	})
}

// Member finds a loaded member by id
func (v *TenantView) Member(id string) (domain.Member, bool) {
	for _, m := range v.members.State().Data {
		if m.ID.String() == id {
			return m, true
		}
	}
	return domain.Member{}, false
}

// DeleteMemberDialog confirms and performs a member deletion
func (v *TenantView) DeleteMemberDialog() *form.Dialog {
	return form.New(form.Config{
		Label:  "member",
		Action: "delete",
		Submit: func(ctx context.Context, sub form.Submission) error {
			return v.svc.gw.DeleteMember(ctx, v.sess, sub.ID)
		},
		OnSaved: v.members.Refresh,
	})
}

// ShowMemberForm renders d on the page; id is empty for a new member
func (v *TenantView) ShowMemberForm(d *form.Dialog, id string) {
	action := v.BasePath() + "/members"
	if id != "" {
		action += "/" + url.PathEscape(id)
	}
	v.memberForm = dialogView(d, id, action)
}

// ============================================================
// Loan application decisions
// ============================================================

var decisions = map[string]domain.LoanStatus{
	"approved": domain.LoanApproved,
	"rejected": domain.LoanRejected,
	"declined": domain.LoanDeclined,
}

// ParseDecision maps a submitted decision to a loan status
func ParseDecision(s string) (domain.LoanStatus, bool) {
	st, ok := decisions[strings.ToLower(strings.TrimSpace(s))]
	return st, ok
}

// DecisionDialog sets the status of one loan application and refreshes the
// applications tab
func (v *TenantView) DecisionDialog() *form.Dialog {
	return form.New(form.Config{
		Label:    "loan application",
		Required: []string{"status"},
		Labels:   map[string]string{"status": "Decision"},
		Submit: func(ctx context.Context, sub form.Submission) error {
			raw, _ := sub.Payload["status"].(string)
			status, ok := ParseDecision(raw)
			if !ok {
				return &form.ValidationError{Missing: []string{"Decision"}}
			}
			return v.svc.gw.SetLoanApplicationStatus(ctx, v.sess, sub.ID, status)
		},
		OnSaved: v.applications.Refresh,
	})
}

// ShowDecisionForm renders d on the page
func (v *TenantView) ShowDecisionForm(d *form.Dialog, id string) {
	v.decisionForm = dialogView(d, id, fmt.Sprintf("%s/applications/%s/status", v.BasePath(), url.PathEscape(id)))
}

func pick(payload map[string]any, fields []string) map[string]any {
	out := make(map[string]any, len(fields))
	for _, f := range fields {
		if v, ok := payload[f]; ok {
			out[f] = v
		}
	}
	return out
}

func memberMultipart(payload map[string]any, file *form.File) *api.Multipart {
	if file == nil || file.Content == nil {
		return nil
	}
	fields := make(map[string]string, len(payload))
	for k, v := range payload {
		if v == nil {
			fields[k] = ""
			continue
		}
		fields[k] = fmt.Sprint(v)
	}
	field := file.Field
	if field == "" {
		field = "photo"
	}
	return &api.Multipart{Fields: fields, FileField: field, FileName: file.Name, File: file.Content}
}
