package domain

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// TenantScope identifies which kind of tenant a view is scoped to
type TenantScope string

const (
	ScopeNone        TenantScope = ""
	ScopeAssociation TenantScope = "association"
	ScopeCooperative TenantScope = "cooperative"
)

// ParseScope maps a URL segment ("association", "associations", "cooperative", ...) to a scope
func ParseScope(s string) (TenantScope, error) {
	switch strings.TrimSuffix(strings.ToLower(strings.TrimSpace(s)), "s") {
	case "association":
		return ScopeAssociation, nil
	case "cooperative":
		return ScopeCooperative, nil
	}
	return ScopeNone, ErrInvalidScope
}

// Plural returns the collection segment used by the API ("associations")
func (s TenantScope) Plural() string {
	if s == ScopeNone {
		return ""
	}
	return string(s) + "s"
}

// Title returns a display label
func (s TenantScope) Title() string {
	switch s {
	case ScopeAssociation:
		return "Association"
	case ScopeCooperative:
		return "Cooperative"
	}
	return ""
}

// ID is an API identifier. The API returns both numbers and strings.
type ID string

// UnmarshalJSON accepts "a1", 1 and null
func (id *ID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*id = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*id = ID(n.String())
	return nil
}

func (id ID) String() string {
	return string(id)
}

// Number is a numeric API field that is sometimes sent as a string ("50000")
type Number float64

// UnmarshalJSON accepts 5, "5", "" and null
func (n *Number) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*n = 0
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		s = strings.TrimSpace(strings.ReplaceAll(s, ",", ""))
		if s == "" {
			*n = 0
			return nil
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return err
		}
		*n = Number(f)
		return nil
	}
	var f float64
	if err := json.Unmarshal(b, &f); err != nil {
		return err
	}
	*n = Number(f)
	return nil
}

// String formats without trailing zeros (5 -> "5", 2.5 -> "2.5")
func (n Number) String() string {
	return strconv.FormatFloat(float64(n), 'f', -1, 64)
}

// Status enums

type LoanStatus string

const (
	LoanPending  LoanStatus = "Pending"
	LoanApproved LoanStatus = "Approved"
	LoanRejected LoanStatus = "Rejected"
	LoanDeclined LoanStatus = "Declined"
)

type TransactionStatus string

const (
	TransactionCompleted TransactionStatus = "completed"
	TransactionPending   TransactionStatus = "pending"
	TransactionFailed    TransactionStatus = "failed"
)

type AttendanceStatus string

const (
	AttendancePresent AttendanceStatus = "Present"
	AttendanceAbsent  AttendanceStatus = "Absent"
)

type MembershipStatus string

const (
	MembershipActive    MembershipStatus = "Active"
	MembershipInactive  MembershipStatus = "Inactive"
	MembershipSuspended MembershipStatus = "Suspended"
)

// Member belongs to one association
type Member struct {
	ID               ID               `json:"id"`
	FullName         string           `json:"fullName"`
	PhoneNumber      string           `json:"phoneNumber"`
	Email            string           `json:"email"`
	Address          string           `json:"address"`
	DateJoined       string           `json:"dateJoined"`
	MembershipStatus MembershipStatus `json:"membershipStatus"`
	AssociationID    ID               `json:"associationId"`
	Photo            string           `json:"photo,omitempty"`
}

// Association belongs to one cooperative
type Association struct {
	ID             ID     `json:"id"`
	Name           string `json:"name"`
	LeaderName     string `json:"leaderName"`
	Category       string `json:"category"`
	MonthlySavings Number `json:"monthlySavings"`
	LoanDuration   Number `json:"loanDuration"`
	InterestRate   Number `json:"interestRate"`
	CooperativeID  ID     `json:"cooperativeId"`
}

// AssociationOverview is a row of the cooperative's association overview
type AssociationOverview struct {
	ID          ID     `json:"id"`
	Name        string `json:"name"`
	Members     Number `json:"members"`
	Loans       Number `json:"loans"`
	Created     string `json:"created"`
	DefaultRate string `json:"defaultRate"`
}

// Loan is an issued loan; LoanApplication shares the shape
type Loan struct {
	ID            ID         `json:"id"`
	MemberID      ID         `json:"memberId"`
	MemberName    string     `json:"memberName,omitempty"`
	AssociationID ID         `json:"associationId,omitempty"`
	Amount        Number     `json:"amount"`
	InterestRate  Number     `json:"interestRate"`
	TermMonths    Number     `json:"termMonths"`
	IssueDate     string     `json:"issueDate"`
	DueDate       string     `json:"dueDate"`
	Status        LoanStatus `json:"status"`
	Purpose       string     `json:"purpose"`
}

// LoanApplication is a loan awaiting a decision
type LoanApplication = Loan

// Transaction references a member
type Transaction struct {
	ID            ID                `json:"id"`
	MemberID      ID                `json:"memberId"`
	MemberName    string            `json:"memberName,omitempty"`
	Type          string            `json:"type"`
	Amount        Number            `json:"amount"`
	Status        TransactionStatus `json:"status"`
	PaymentMethod string            `json:"paymentMethod"`
	Reference     string            `json:"reference"`
	Date          string            `json:"date"`
}

// Meeting belongs to one association
type Meeting struct {
	ID             ID     `json:"id"`
	AssociationID  ID     `json:"associationId"`
	Name           string `json:"name"`
	Type           string `json:"type"`
	Date           string `json:"date"`
	AttendeesCount Number `json:"attendeesCount"`
	TotalMembers   Number `json:"totalMembers"`
}

// AttendancePercent is round(attendees/total*100), 0 when the meeting has no members
func (m Meeting) AttendancePercent() int {
	if m.TotalMembers <= 0 {
		return 0
	}
	return int(math.Round(float64(m.AttendeesCount) / float64(m.TotalMembers) * 100))
}

// AttendanceRecord references a meeting and a member
type AttendanceRecord struct {
	MeetingID   ID               `json:"meetingId"`
	MemberID    ID               `json:"memberId"`
	MemberName  string           `json:"memberName,omitempty"`
	Status      AttendanceStatus `json:"status"`
	CheckInTime string           `json:"checkInTime"`
}

// Permission is referenced by name from roles
type Permission struct {
	ID          ID     `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// Role groups permissions within a cooperative or association
type Role struct {
	ID          ID       `json:"id"`
	Name        string   `json:"name"`
	Permissions []string `json:"permissions"`
}

// AdminProfile is the logged-in admin
type AdminProfile struct {
	ID          ID     `json:"id"`
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phoneNumber"`
	Role        string `json:"role"`
	AdminType   string `json:"adminType"`
}

// FullName joins first and last name
func (p AdminProfile) FullName() string {
	return strings.TrimSpace(p.FirstName + " " + p.LastName)
}
