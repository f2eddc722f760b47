package handlers

import (
	"coop-console/internal/adapters/http/middleware"
	"coop-console/internal/core/services"

	"github.com/gofiber/fiber/v2"
)

// SettingsHandler serves roles, permissions and the admin profile
type SettingsHandler struct {
	views *services.ViewService
}

// NewSettingsHandler creates a new settings handler
func NewSettingsHandler(views *services.ViewService) *SettingsHandler {
	return &SettingsHandler{views: views}
}

func (h *SettingsHandler) render(c *fiber.Ctx, status int, v *services.SettingsView) error {
	return render(c, status, "settings", "Settings", "settings", v.Page())
}

// Show renders the settings tabs; ?dialog=role or ?dialog=profile opens a form
func (h *SettingsHandler) Show(c *fiber.Ctx) error {
	v := h.views.Settings(middleware.SessionFrom(c))
	defer v.Close()

	tab := c.Query("tab")
	switch c.Query("dialog") {
	case "role":
		tab = services.TabRoles
	case "profile":
		tab = services.TabProfile
	}
	v.Mount(c.UserContext(), tab)

	switch c.Query("dialog") {
	case "role":
		d := v.RoleDialog()
		d.OpenCreate()
		v.ShowRoleForm(d)
	case "profile":
		prof, ok := v.CurrentProfile()
		if !ok {
			return fiber.NewError(fiber.StatusBadGateway, "Profile could not be loaded")
		}
		d := v.ProfileDialog()
		d.OpenEdit(prof.ID.String(), services.ProfileValues(prof))
		v.ShowProfileForm(d)
	}

	return h.render(c, fiber.StatusOK, v)
}

// CreateRole adds a role to the session's tenant
func (h *SettingsHandler) CreateRole(c *fiber.Ctx) error {
	v := h.views.Settings(middleware.SessionFrom(c))
	defer v.Close()

	d := v.RoleDialog()
	d.OpenCreate()
	d.SetAll(formValues(c, services.RoleFields))

	ctx := c.UserContext()
	err := d.Submit(ctx)
	if err != nil {
		v.ShowRoleForm(d)
	} else {
		v.SetNotice("Role created")
	}

	v.Mount(ctx, services.TabRoles)
	return h.render(c, submitStatus(err), v)
}

// UpdateProfile edits the logged-in admin
func (h *SettingsHandler) UpdateProfile(c *fiber.Ctx) error {
	v := h.views.Settings(middleware.SessionFrom(c))
	defer v.Close()

	d := v.ProfileDialog()
	d.OpenEdit("", nil)
	d.SetAll(formValues(c, services.ProfileFields))

	ctx := c.UserContext()
	err := d.Submit(ctx)
	if err != nil {
		v.ShowProfileForm(d)
	} else {
		v.SetNotice("Profile updated")
	}

	v.Mount(ctx, services.TabProfile)
	return h.render(c, submitStatus(err), v)
}
