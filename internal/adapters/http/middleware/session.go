package middleware

import (
	"strings"

	"coop-console/internal/adapters/api"
	"coop-console/internal/config"
	"coop-console/internal/core/domain"
	"coop-console/internal/core/session"
	"coop-console/internal/pkg/jwt"

	"github.com/gofiber/fiber/v2"
)

const sessionKey = "session"

// Session builds the request's session from the cookies the login flow left
// behind. Tenant ids missing from cookies are read from the token claims.
// The token itself is never validated here; the API rejects bad tokens.
func Session(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sess := session.Session{
			// 1. Cookies first
			Token:         c.Cookies(cfg.Cookie.TokenName),
			AssociationID: c.Cookies(cfg.Cookie.AssociationName),
			CooperativeID: c.Cookies(cfg.Cookie.CooperativeName),
		}

		// 2. Fall back to the Authorization header
		if sess.Token == "" {
			if authHeader := c.Get(fiber.HeaderAuthorization); strings.HasPrefix(authHeader, "Bearer ") {
				sess.Token = strings.TrimPrefix(authHeader, "Bearer ")
			}
		}

		// 3. Claims fill the admin and any missing tenant
		if sess.Token != "" {
			if claims, err := jwt.ReadClaims(sess.Token); err == nil {
				if sess.AssociationID == "" && sess.CooperativeID == "" {
					sess.AssociationID = claims.AssociationID
					sess.CooperativeID = claims.CooperativeID
				}
				sess.Admin = &domain.AdminProfile{
					ID:        domain.ID(claims.AdminID),
					FirstName: claims.FirstName,
					LastName:  claims.LastName,
					Email:     claims.Email,
					Role:      claims.Role,
					AdminType: claims.AdminType,
				}
			}
		}

		c.Locals(sessionKey, sess)
		if rid := c.GetRespHeader(fiber.HeaderXRequestID); rid != "" {
			c.SetUserContext(api.WithRequestID(c.UserContext(), rid))
		}
		return c.Next()
	}
}

// SessionFrom returns the session stored by Session, or the zero session
func SessionFrom(c *fiber.Ctx) session.Session {
	sess, _ := c.Locals(sessionKey).(session.Session)
	return sess
}
