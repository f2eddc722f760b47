package services

import (
	"context"
	"net/url"

	"coop-console/internal/core/domain"
	"coop-console/internal/core/form"
	"coop-console/internal/core/resource"
	"coop-console/internal/core/session"
	"coop-console/internal/core/tabs"
	"coop-console/internal/pkg/envelope"
)

// ============================================================
// Recent meetings
// ============================================================

// AttendancePage is the recent meetings page model
type AttendancePage struct {
	Fetch FetchView
	Query string
	Rows  []MeetingRow
}

// AttendanceView is the resource view behind /attendance
type AttendanceView struct {
	meetings *resource.Fetcher[domain.Meeting]
	query    string
}

// Attendance creates the recent meetings view
func (s *ViewService) Attendance(sess session.Session) *AttendanceView {
	return &AttendanceView{
		meetings: resource.New[domain.Meeting](TabMeetings, domain.ScopeNone, sess, s.gw.RecentMeetings),
	}
}

// Mount fetches the meetings
func (v *AttendanceView) Mount(ctx context.Context, query string) {
	v.query = query
	v.meetings.Load(ctx)
}

// Close detaches the view
func (v *AttendanceView) Close() {
	v.meetings.Close()
}

// Page builds the page model
func (v *AttendanceView) Page() AttendancePage {
	st := v.meetings.State()
	items := tabs.Search(st.Data, v.query,
		func(m domain.Meeting) string { return m.Name },
		func(m domain.Meeting) string { return m.Type },
	)
	return AttendancePage{Fetch: fetchView(v.meetings, "Meetings"), Query: v.query, Rows: meetingRows(items)}
}

// ============================================================
// Attendance of one meeting
// ============================================================

// MeetingAttendancePage is the attendance sheet model
type MeetingAttendancePage struct {
	MeetingID string
	Action    string
	Fetch     FetchView
	Records   []domain.AttendanceRecord
	Present   int
	Absent    int
	Percent   string
	Notice    string
	Form      *DialogView
}

// MeetingAttendanceView is the resource view behind /meetings/{id}/attendance
type MeetingAttendanceView struct {
	svc       *ViewService
	sess      session.Session
	meetingID string
	records   *resource.Fetcher[domain.AttendanceRecord]
	notice    string
	form      *DialogView
}

// MeetingAttendance creates the attendance sheet of one meeting
func (s *ViewService) MeetingAttendance(sess session.Session, meetingID string) *MeetingAttendanceView {
	v := &MeetingAttendanceView{svc: s, sess: sess, meetingID: meetingID}
	v.records = resource.New[domain.AttendanceRecord]("attendance", domain.ScopeNone, sess, func(ctx context.Context, sess session.Session) ([]domain.AttendanceRecord, envelope.Meta, error) {
		return s.gw.Attendance(ctx, sess, meetingID)
	})
	return v
}

// Mount fetches the records
func (v *MeetingAttendanceView) Mount(ctx context.Context) {
	v.records.Load(ctx)
}

// Close detaches the view
func (v *MeetingAttendanceView) Close() {
	v.records.Close()
}

// SetNotice shows a confirmation above the sheet
func (v *MeetingAttendanceView) SetNotice(msg string) {
	v.notice = msg
}

func (v *MeetingAttendanceView) action() string {
	return "/meetings/" + url.PathEscape(v.meetingID) + "/attendance"
}

// Dialog marks one member present or absent
func (v *MeetingAttendanceView) Dialog() *form.Dialog {
	return form.New(form.Config{
		Label:    "attendance",
		Required: []string{"memberId", "status"},
		Labels:   map[string]string{"memberId": "Member", "status": "Status"},
		Submit: func(ctx context.Context, sub form.Submission) error {
			status := domain.AttendanceAbsent
			if raw, _ := sub.Payload["status"].(string); sameStatus(raw, string(domain.AttendancePresent)) {
				status = domain.AttendancePresent
			}
			payload := pick(sub.Payload, []string{"memberId", "checkInTime"})
			payload["status"] = status
			return v.svc.gw.MarkAttendance(ctx, v.sess, v.meetingID, payload)
		},
		OnSaved: v.records.Refresh,
	})
}

// ShowForm renders d on the page
func (v *MeetingAttendanceView) ShowForm(d *form.Dialog) {
	v.form = dialogView(d, v.meetingID, v.action())
}

// Page builds the page model
func (v *MeetingAttendanceView) Page() MeetingAttendancePage {
	st := v.records.State()
	p := MeetingAttendancePage{
		MeetingID: v.meetingID,
		Action:    v.action(),
		Fetch:     fetchView(v.records, "Attendance"),
		Records:   st.Data,
		Notice:    v.notice,
		Form:      v.form,
	}
	for _, r := range st.Data {
		if sameStatus(string(r.Status), string(domain.AttendancePresent)) {
			p.Present++
		} else {
			p.Absent++
		}
	}
	m := domain.Meeting{AttendeesCount: domain.Number(p.Present), TotalMembers: domain.Number(len(st.Data))}
	p.Percent = percent(m.AttendancePercent())
	return p
}
