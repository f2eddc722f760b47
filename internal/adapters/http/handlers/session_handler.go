package handlers

import (
	"time"

	"coop-console/internal/config"

	"github.com/gofiber/fiber/v2"
)

// SessionHandler ends the console session
type SessionHandler struct {
	cfg *config.Config
}

// NewSessionHandler creates a new session handler
func NewSessionHandler(cfg *config.Config) *SessionHandler {
	return &SessionHandler{cfg: cfg}
}

// SignOut expires the token and tenant cookies and returns to the home page
func (h *SessionHandler) SignOut(c *fiber.Ctx) error {
	for _, name := range []string{h.cfg.Cookie.TokenName, h.cfg.Cookie.AssociationName, h.cfg.Cookie.CooperativeName} {
		c.Cookie(&fiber.Cookie{
			Name:     name,
			Value:    "",
			Path:     "/",
			MaxAge:   -1,
			Expires:  time.Now().Add(-time.Hour),
			Secure:   h.cfg.Cookie.Secure,
			HTTPOnly: true,
			SameSite: h.cfg.Cookie.SameSite,
		})
	}
	return c.Redirect("/", fiber.StatusSeeOther)
}
