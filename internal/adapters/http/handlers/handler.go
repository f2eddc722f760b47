package handlers

import (
	"errors"
	"strings"

	"coop-console/internal/adapters/http/middleware"
	"coop-console/internal/adapters/http/views"
	"coop-console/internal/core/domain"
	"coop-console/internal/core/form"

	"github.com/gofiber/fiber/v2"
)

// render writes page name inside the layout
func render(c *fiber.Ctx, status int, name, title, nav string, page any) error {
	sess := middleware.SessionFrom(c)
	return c.Status(status).Render(name, views.Data{
		Title:    title,
		Nav:      nav,
		Admin:    sess.Admin,
		SignedIn: sess.Authenticated(),
		Page:     page,
	})
}

// submitStatus maps a dialog submit error to the status of the re-rendered page
func submitStatus(err error) int {
	var se *domain.ServerError
	switch {
	case err == nil:
		return fiber.StatusOK
	case errors.Is(err, domain.ErrValidation):
		return fiber.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrMissingToken):
		return fiber.StatusUnauthorized
	case errors.Is(err, domain.ErrBusy):
		return fiber.StatusConflict
	case errors.As(err, &se) && se.StatusCode >= 400 && se.StatusCode < 500:
		return se.StatusCode
	default:
		return fiber.StatusBadGateway
	}
}

// formValues reads fields from a urlencoded or multipart body
func formValues(c *fiber.Ctx, fields []string) map[string]string {
	out := make(map[string]string, len(fields))
	for _, f := range fields {
		out[f] = strings.TrimSpace(c.FormValue(f))
	}
	return out
}

// attachUpload attaches the uploaded file in field to d, if one was sent.
// The returned close func must be called once the dialog has submitted.
func attachUpload(c *fiber.Ctx, d *form.Dialog, field string) (func(), error) {
	fh, err := c.FormFile(field)
	if err != nil || fh == nil || fh.Size == 0 {
		// no file part
		return func() {}, nil
	}
	f, err := fh.Open()
	if err != nil {
		return func() {}, fiber.NewError(fiber.StatusBadRequest, "Could not read the uploaded file")
	}
	d.Attach(&form.File{Field: field, Name: fh.Filename, Content: f})
	return func() { _ = f.Close() }, nil
}
