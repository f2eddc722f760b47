package services

import (
	"context"
	"strings"

	"coop-console/internal/core/domain"
	"coop-console/internal/core/form"
	"coop-console/internal/core/resource"
	"coop-console/internal/core/session"
	"coop-console/internal/core/tabs"
	"coop-console/internal/pkg/envelope"
)

// Settings tab names
const (
	TabRoles   = "roles"
	TabProfile = "profile"
)

// ProfileFields are the editable admin profile fields
var ProfileFields = []string{"firstName", "lastName", "email", "phoneNumber"}

// RoleFields are the role form fields; permissions is a comma list
var RoleFields = []string{"name", "permissions"}

// RoleRow is a role with its permissions joined for display
type RoleRow struct {
	domain.Role
	PermissionList string
}

// SettingsPage is the settings page model
type SettingsPage struct {
	Scope       domain.TenantScope
	Tabs        []FetchView
	Active      string
	Roles       []RoleRow
	Permissions []string
	Profile     *domain.AdminProfile
	Notice      string
	RoleForm    *DialogView
	ProfileForm *DialogView
}

// SettingsView is the tabbed resource view behind /settings
type SettingsView struct {
	svc   *ViewService
	sess  session.Session
	scope domain.TenantScope

	roles       *resource.Fetcher[domain.Role]
	permissions *resource.Fetcher[domain.Permission]
	profile     *resource.Fetcher[domain.AdminProfile]
	agg         *tabs.Aggregator

	notice      string
	roleForm    *DialogView
	profileForm *DialogView
}

// Settings creates the settings view for the session's tenant
func (s *ViewService) Settings(sess session.Session) *SettingsView {
	scope := sess.Scope()
	if scope == domain.ScopeNone {
		scope = domain.ScopeCooperative
	}
	v := &SettingsView{svc: s, sess: sess, scope: scope}
	v.roles = resource.New[domain.Role](TabRoles, scope, sess, func(ctx context.Context, sess session.Session) ([]domain.Role, envelope.Meta, error) {
		return s.gw.Roles(ctx, sess, scope)
	})
	v.permissions = resource.New[domain.Permission]("permissions", domain.ScopeNone, sess, s.gw.Permissions)
	v.profile = resource.New[domain.AdminProfile](TabProfile, domain.ScopeNone, sess, resource.Single(s.gw.AdminProfile))
	v.agg = tabs.New(s.opts.TabMode, s.opts.Concurrency, v.roles, v.profile)
	return v
}

// Mount activates tab and fetches. Permissions load with the roles tab
// because the role dialog needs them.
func (v *SettingsView) Mount(ctx context.Context, tab string) {
	if err := v.agg.Activate(ctx, tab); err != nil {
		_ = v.agg.Activate(ctx, TabRoles)
	}
	v.agg.Mount(ctx)
	if v.agg.ActiveName() == TabRoles {
		v.permissions.Load(ctx)
	}
}

// Close detaches the view
func (v *SettingsView) Close() {
	v.permissions.Close()
	v.agg.Close()
}

// SetNotice shows a confirmation above the tabs
func (v *SettingsView) SetNotice(msg string) {
	v.notice = msg
}

// RoleDialog creates a role; permissions are submitted as a comma list
func (v *SettingsView) RoleDialog() *form.Dialog {
	return form.New(form.Config{
		Label:    "role",
		Required: []string{"name"},
		Labels:   map[string]string{"name": "Role name"},
		Submit: func(ctx context.Context, sub form.Submission) error {
			name, _ := sub.Payload["name"].(string)
			raw, _ := sub.Payload["permissions"].(string)
			return v.svc.gw.CreateRole(ctx, v.sess, v.scope, map[string]any{
				"name":        name,
				"permissions": splitList(raw),
			})
		},
		OnSaved: v.roles.Refresh,
	})
}

// ProfileDialog edits the logged-in admin
func (v *SettingsView) ProfileDialog() *form.Dialog {
	return form.New(form.Config{
		Label:    "profile",
		Required: []string{"firstName", "lastName", "email"},
		Labels:   map[string]string{"firstName": "First name", "lastName": "Last name", "email": "Email"},
		Submit: func(ctx context.Context, sub form.Submission) error {
			return v.svc.gw.UpdateAdminProfile(ctx, v.sess, pick(sub.Payload, ProfileFields))
		},
		OnSaved: v.profile.Refresh,
	})
}

// ProfileValues flattens a profile for the edit dialog
func ProfileValues(p domain.AdminProfile) map[string]string {
	return map[string]string{
		"firstName":   p.FirstName,
		"lastName":    p.LastName,
		"email":       p.Email,
		"phoneNumber": p.PhoneNumber,
	}
}

// CurrentProfile returns the fetched profile, if any
func (v *SettingsView) CurrentProfile() (domain.AdminProfile, bool) {
	st := v.profile.State()
	if len(st.Data) == 0 {
		return domain.AdminProfile{}, false
	}
	return st.Data[0], true
}

// ShowRoleForm renders d on the page
func (v *SettingsView) ShowRoleForm(d *form.Dialog) {
	v.roleForm = dialogView(d, "", "/settings/roles")
}

// ShowProfileForm renders d on the page
func (v *SettingsView) ShowProfileForm(d *form.Dialog) {
	v.profileForm = dialogView(d, "", "/settings/profile")
}

// Page builds the page model
func (v *SettingsView) Page() SettingsPage {
	p := SettingsPage{
		Scope:       v.scope,
		Active:      v.agg.ActiveName(),
		Notice:      v.notice,
		RoleForm:    v.roleForm,
		ProfileForm: v.profileForm,
	}
	p.Tabs = []FetchView{fetchView(v.roles, "Roles & Permissions"), fetchView(v.profile, "Profile")}
	for i := range p.Tabs {
		p.Tabs[i].Href = "/settings?tab=" + p.Tabs[i].Name
		p.Tabs[i].Active = p.Tabs[i].Name == p.Active
	}

	for _, r := range v.roles.State().Data {
		p.Roles = append(p.Roles, RoleRow{Role: r, PermissionList: strings.Join(r.Permissions, ", ")})
	}

	// roles may reference permissions the catalog does not list
	names := map[string]bool{}
	for _, perm := range v.permissions.State().Data {
		names[perm.Name] = true
	}
	for _, r := range p.Roles {
		for _, n := range r.Permissions {
			names[n] = true
		}
	}
	p.Permissions = sortedKeys(names)

	if prof, ok := v.CurrentProfile(); ok {
		p.Profile = &prof
	}
	return p
}

func splitList(s string) []string {
	out := []string{}
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
