// Package badge maps record statuses to the CSS classes of their badges.
package badge

import "strings"

// Badge is the class tuple a status renders with
type Badge struct {
	Background string
	Text       string
	Border     string
}

// Class joins the tuple for a class attribute
func (b Badge) Class() string {
	return "badge " + b.Background + " " + b.Text + " " + b.Border
}

// Default is used for statuses the console does not know
var Default = Badge{Background: "bg-gray-100", Text: "text-gray-700", Border: "border-gray-300"}

// keys are lower-cased; every known status has its own tuple
var styles = map[string]Badge{
	// loans
	"pending":  {Background: "bg-yellow-100", Text: "text-yellow-800", Border: "border-yellow-300"},
	"approved": {Background: "bg-green-100", Text: "text-green-800", Border: "border-green-300"},
	"rejected": {Background: "bg-red-100", Text: "text-red-800", Border: "border-red-300"},
	"declined": {Background: "bg-orange-100", Text: "text-orange-800", Border: "border-orange-300"},

	// transactions ("pending" is shared with loans)
	"completed": {Background: "bg-emerald-100", Text: "text-emerald-800", Border: "border-emerald-300"},
	"failed":    {Background: "bg-rose-100", Text: "text-rose-800", Border: "border-rose-300"},

	// attendance
	"present": {Background: "bg-teal-100", Text: "text-teal-800", Border: "border-teal-300"},
	"absent":  {Background: "bg-slate-200", Text: "text-slate-800", Border: "border-slate-400"},

	// membership
	"active":    {Background: "bg-blue-100", Text: "text-blue-800", Border: "border-blue-300"},
	"inactive":  {Background: "bg-zinc-100", Text: "text-zinc-600", Border: "border-zinc-300"},
	"suspended": {Background: "bg-purple-100", Text: "text-purple-800", Border: "border-purple-300"},
}

// For returns the badge for status, case-insensitively
func For(status string) Badge {
	if b, ok := styles[strings.ToLower(strings.TrimSpace(status))]; ok {
		return b
	}
	return Default
}

// Known reports whether status has its own style
func Known(status string) bool {
	_, ok := styles[strings.ToLower(strings.TrimSpace(status))]
	return ok
}
