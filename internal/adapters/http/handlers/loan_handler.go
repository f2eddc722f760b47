package handlers

import (
	"coop-console/internal/adapters/http/middleware"
	"coop-console/internal/core/services"
	"coop-console/internal/pkg/pagination"

	"github.com/gofiber/fiber/v2"
)

// LoanHandler serves the loan list of the session's tenant
type LoanHandler struct {
	views *services.ViewService
}

// NewLoanHandler creates a new loan handler
func NewLoanHandler(views *services.ViewService) *LoanHandler {
	return &LoanHandler{views: views}
}

// List renders the loans; ?dialog=loan opens the form, &edit=<id> on an
// existing loan
func (h *LoanHandler) List(c *fiber.Ctx) error {
	v := h.views.Loans(middleware.SessionFrom(c), pagination.GetParams(c, h.views.PageSize()))
	defer v.Close()

	v.Mount(c.UserContext(), c.Query("q"))

	if c.Query("dialog") == "loan" {
		d := v.Dialog()
		editID := c.Query("edit")
		if editID == "" {
			d.OpenCreate()
		} else {
			l, ok := v.Loan(editID)
			if !ok {
				return fiber.NewError(fiber.StatusNotFound, "Loan not found")
			}
			d.OpenEdit(editID, services.LoanValues(l))
		}
		v.ShowForm(d, editID)
	}

	return render(c, fiber.StatusOK, "loans", "Loans", "loans", v.Page())
}

// Save creates a loan, or edits one when :id is present. A successful save
// refreshes the list exactly once and closes the form.
func (h *LoanHandler) Save(c *fiber.Ctx) error {
	v := h.views.Loans(middleware.SessionFrom(c), nil)
	defer v.Close()

	loanID := c.Params("id")
	d := v.Dialog()
	if loanID == "" {
		d.OpenCreate()
	} else {
		d.OpenEdit(loanID, nil)
	}
	d.SetAll(formValues(c, services.LoanFields))

	ctx := c.UserContext()
	err := d.Submit(ctx)
	if err != nil {
		v.ShowForm(d, loanID)
	} else {
		v.SetNotice("Loan saved")
	}

	v.Mount(ctx, "")
	return render(c, submitStatus(err), "loans", "Loans", "loans", v.Page())
}
