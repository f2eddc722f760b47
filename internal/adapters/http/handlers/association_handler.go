package handlers

import (
	"net/url"

	"coop-console/internal/adapters/http/middleware"
	"coop-console/internal/core/domain"
	"coop-console/internal/core/services"

	"github.com/gofiber/fiber/v2"
)

// AssociationHandler serves the cooperative's association overview
type AssociationHandler struct {
	views *services.ViewService
}

// NewAssociationHandler creates a new association handler
func NewAssociationHandler(views *services.ViewService) *AssociationHandler {
	return &AssociationHandler{views: views}
}

// Home sends association admins to their association and everyone else to
// the overview
func (h *AssociationHandler) Home(c *fiber.Ctx) error {
	sess := middleware.SessionFrom(c)
	if sess.Scope() == domain.ScopeAssociation {
		return c.Redirect("/associations/"+url.PathEscape(sess.AssociationID), fiber.StatusFound)
	}
	return c.Redirect("/associations", fiber.StatusFound)
}

// List renders the overview table
func (h *AssociationHandler) List(c *fiber.Ctx) error {
	v := h.views.AssociationList(middleware.SessionFrom(c))
	defer v.Close()

	v.Mount(c.UserContext(), c.Query("q"))
	return render(c, fiber.StatusOK, "associations", "Associations", "associations", v.Page())
}
