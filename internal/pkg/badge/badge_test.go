package badge

import (
	"testing"

	"coop-console/internal/core/domain"
)

var statuses = []string{
	string(domain.LoanPending), string(domain.LoanApproved), string(domain.LoanRejected), string(domain.LoanDeclined),
	string(domain.TransactionCompleted), string(domain.TransactionFailed),
	string(domain.AttendancePresent), string(domain.AttendanceAbsent),
	string(domain.MembershipActive), string(domain.MembershipInactive), string(domain.MembershipSuspended),
}

func TestEveryStatusHasDistinctStyle(t *testing.T) {
	seen := map[Badge]string{}
	for _, s := range statuses {
		b := For(s)
		if b == Default {
			t.Fatalf("%s maps to the default badge", s)
		}
		if prev, dup := seen[b]; dup {
			t.Fatalf("%s and %s share a badge", s, prev)
		}
		seen[b] = s
	}
	// transaction "pending" is the same status word as the loan one
	if For(string(domain.TransactionPending)) != For(string(domain.LoanPending)) {
		t.Fatal("pending should map consistently")
	}
}

func TestCaseInsensitive(t *testing.T) {
	for _, s := range []string{"APPROVED", " approved ", "Approved"} {
		if For(s) != For("approved") {
			t.Fatalf("%q mapped differently", s)
		}
	}
}

func TestUnknownFallsBack(t *testing.T) {
	for _, s := range []string{"", "archived", "???"} {
		if For(s) != Default || Known(s) {
			t.Fatalf("%q should use the default badge", s)
		}
	}
	if For("failed").Class() != "badge bg-rose-100 text-rose-800 border-rose-300" {
		t.Fatalf("class = %q", For("failed").Class())
	}
}
