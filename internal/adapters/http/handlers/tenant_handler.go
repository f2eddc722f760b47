package handlers

import (
	"coop-console/internal/adapters/http/middleware"
	"coop-console/internal/core/domain"
	"coop-console/internal/core/services"
	"coop-console/internal/pkg/pagination"

	"github.com/gofiber/fiber/v2"
)

// TenantHandler serves the tabbed detail page of an association or a
// cooperative and the member and loan application forms on it
type TenantHandler struct {
	views *services.ViewService
}

// NewTenantHandler creates a new tenant handler
func NewTenantHandler(views *services.ViewService) *TenantHandler {
	return &TenantHandler{views: views}
}

func (h *TenantHandler) tenant(c *fiber.Ctx, active string, page *pagination.Params) (*services.TenantView, error) {
	scope, err := domain.ParseScope(c.Params("scope"))
	if err != nil {
		return nil, fiber.ErrNotFound
	}
	id := c.Params("id")
	if id == "" {
		return nil, fiber.ErrNotFound
	}
	return h.views.Tenant(middleware.SessionFrom(c), scope, id, active, page), nil
}

func (h *TenantHandler) render(c *fiber.Ctx, status int, v *services.TenantView) error {
	page := v.Page()
	nav := ""
	if page.Scope == domain.ScopeAssociation {
		nav = "associations"
	}
	return render(c, status, "tenant", page.Title, nav, page)
}

// Detail renders the tabs. ?dialog=member opens the member form (with
// &edit=<id> for an existing member); ?dialog=decision&app=<id> opens the
// decision form of a loan application.
func (h *TenantHandler) Detail(c *fiber.Ctx) error {
	v, err := h.tenant(c, c.Query("tab"), pagination.GetParams(c, h.views.PageSize()))
	if err != nil {
		return err
	}
	defer v.Close()

	ctx := c.UserContext()
	v.Mount(ctx, c.Query("q"))

	switch c.Query("dialog") {
	case "member":
		d := v.MemberDialog()
		editID := c.Query("edit")
		if editID == "" {
			d.OpenCreate()
		} else {
			m, ok := v.Member(editID)
			if !ok {
				return fiber.NewError(fiber.StatusNotFound, "Member not found")
			}
			d.OpenEdit(editID, services.MemberValues(m))
		}
		v.ShowMemberForm(d, editID)
	case "decision":
		appID := c.Query("app")
		if appID == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Missing loan application")
		}
		d := v.DecisionDialog()
		d.OpenEdit(appID, nil)
		v.ShowDecisionForm(d, appID)
	}

	return h.render(c, fiber.StatusOK, v)
}

// SaveMember creates a member, or edits one when :memberId is present.
// The page is rendered in place: on success the members tab has been
// refreshed once by the dialog, on failure the form stays open.
func (h *TenantHandler) SaveMember(c *fiber.Ctx) error {
	v, err := h.tenant(c, services.TabMembers, nil)
	if err != nil {
		return err
	}
	defer v.Close()

	memberID := c.Params("memberId")
	d := v.MemberDialog()
	if memberID == "" {
		d.OpenCreate()
	} else {
		d.OpenEdit(memberID, nil)
	}
	d.SetAll(formValues(c, services.MemberFields))

	closeFile, err := attachUpload(c, d, "photo")
	if err != nil {
		return err
	}
	defer closeFile()

	ctx := c.UserContext()
	err = d.Submit(ctx)
	if err != nil {
		v.ShowMemberForm(d, memberID)
	} else if memberID == "" {
		v.SetNotice("Member added")
	} else {
		v.SetNotice("Member updated")
	}

	v.Mount(ctx, "")
	return h.render(c, submitStatus(err), v)
}

// DeleteMember removes a member and re-renders the members tab
func (h *TenantHandler) DeleteMember(c *fiber.Ctx) error {
	v, err := h.tenant(c, services.TabMembers, nil)
	if err != nil {
		return err
	}
	defer v.Close()

	d := v.DeleteMemberDialog()
	d.OpenEdit(c.Params("memberId"), nil)

	ctx := c.UserContext()
	err = d.Submit(ctx)
	if err != nil {
		v.SetNotice(d.Error())
	} else {
		v.SetNotice("Member deleted")
	}

	v.Mount(ctx, "")
	return h.render(c, submitStatus(err), v)
}

// Decide approves, rejects or declines a loan application
func (h *TenantHandler) Decide(c *fiber.Ctx) error {
	v, err := h.tenant(c, services.TabApplications, nil)
	if err != nil {
		return err
	}
	defer v.Close()

	appID := c.Params("appId")
	d := v.DecisionDialog()
	d.OpenEdit(appID, nil)
	d.Set("status", c.FormValue("status"))

	ctx := c.UserContext()
	err = d.Submit(ctx)
	if err != nil {
		v.ShowDecisionForm(d, appID)
	} else {
		v.SetNotice("Loan application updated")
	}

	v.Mount(ctx, "")
	return h.render(c, submitStatus(err), v)
}
