package handlers

import (
	"coop-console/internal/adapters/http/middleware"
	"coop-console/internal/core/services"

	"github.com/gofiber/fiber/v2"
)

var attendanceFields = []string{"memberId", "status", "checkInTime"}

// AttendanceHandler serves recent meetings and their attendance sheets
type AttendanceHandler struct {
	views *services.ViewService
}

// NewAttendanceHandler creates a new attendance handler
func NewAttendanceHandler(views *services.ViewService) *AttendanceHandler {
	return &AttendanceHandler{views: views}
}

// Recent renders the recent meetings with their attendance rate
func (h *AttendanceHandler) Recent(c *fiber.Ctx) error {
	v := h.views.Attendance(middleware.SessionFrom(c))
	defer v.Close()

	v.Mount(c.UserContext(), c.Query("q"))
	return render(c, fiber.StatusOK, "attendance", "Attendance", "attendance", v.Page())
}

// Sheet renders the attendance records of one meeting
func (h *AttendanceHandler) Sheet(c *fiber.Ctx) error {
	v := h.views.MeetingAttendance(middleware.SessionFrom(c), c.Params("id"))
	defer v.Close()

	v.Mount(c.UserContext())
	return render(c, fiber.StatusOK, "meeting_attendance", "Attendance", "attendance", v.Page())
}

// Mark records one member as present or absent
func (h *AttendanceHandler) Mark(c *fiber.Ctx) error {
	v := h.views.MeetingAttendance(middleware.SessionFrom(c), c.Params("id"))
	defer v.Close()

	d := v.Dialog()
	d.OpenCreate()
	d.SetAll(formValues(c, attendanceFields))

	ctx := c.UserContext()
	err := d.Submit(ctx)
	if err != nil {
		v.ShowForm(d)
	} else {
		v.SetNotice("Attendance recorded")
	}

	v.Mount(ctx)
	return render(c, submitStatus(err), "meeting_attendance", "Attendance", "attendance", v.Page())
}
