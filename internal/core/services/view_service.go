package services

import (
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"

	"coop-console/internal/core/form"
	"coop-console/internal/core/resource"
	"coop-console/internal/pkg/pagination"
)

// ViewService builds the resource views behind every console page
type ViewService struct {
	gw   Gateway
	opts ViewOptions
}

// NewViewService creates a new view service
func NewViewService(gw Gateway, opts ViewOptions) *ViewService {
	if opts.Concurrency < 1 {
		opts.Concurrency = 4
	}
	if opts.PageSize < 1 {
		opts.PageSize = pagination.DefaultLimit
	}
	return &ViewService{gw: gw, opts: opts}
}

// PageSize is the default list page size
func (s *ViewService) PageSize() int {
	return s.opts.PageSize
}

// FetchView is the render-ready state of one fetcher
type FetchView struct {
	Name      string
	Label     string
	Href      string
	Active    bool
	Loading   bool
	Loaded    bool
	Skipped   bool
	Malformed bool
	Error     string
	Count     int
}

// Empty reports a settled fetch with nothing to show
func (v FetchView) Empty() bool {
	return !v.Loading && v.Error == "" && v.Count == 0
}

func fetchView[T any](f *resource.Fetcher[T], label string) FetchView {
	st := f.State()
	return FetchView{
		Name:      f.Name(),
		Label:     label,
		Loading:   st.Loading,
		Loaded:    st.Loaded,
		Skipped:   st.Skipped,
		Malformed: st.Malformed,
		Error:     st.Error,
		Count:     len(st.Data),
	}
}

// DialogView is the render-ready state of a form dialog
type DialogView struct {
	Open   bool
	Edit   bool
	ID     string
	Action string
	Values map[string]string
	Error  string
}

// Value reads one form value for templates
func (v *DialogView) Value(field string) string {
	if v == nil {
		return ""
	}
	return v.Values[field]
}

func dialogView(d *form.Dialog, id, action string) *DialogView {
	return &DialogView{
		Open:   d.IsOpen(),
		Edit:   d.Mode() == form.Edit,
		ID:     id,
		Action: action,
		Values: d.Values(),
		Error:  d.Error(),
	}
}

// pageLinks builds the pagination control for a list served at base
func pageLinks(base string, params *pagination.Params, extra url.Values, total int64, returned int) []pagination.Link {
	meta := pagination.GetMeta(params, total, returned)
	return pagination.Control(meta, func(page int) string {
		q := url.Values{}
		for k, v := range extra {
			q[k] = v
		}
		q.Set("page", strconv.Itoa(page))
		if params.Limit != pagination.DefaultLimit {
			q.Set("limit", strconv.Itoa(params.Limit))
		}
		return base + "?" + q.Encode()
	})
}

// FormatAmount renders a money value with thousands separators
func FormatAmount(v float64) string {
	neg := v < 0
	if neg {
		v = -v
	}
	s := strconv.FormatFloat(v, 'f', 2, 64)
	whole, frac := s[:len(s)-3], s[len(s)-3:]
	var b strings.Builder
	for i, r := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	out := b.String()
	if frac != ".00" {
		out += frac
	}
	if neg {
		out = "-" + out
	}
	return out
}

// percent renders n as "n%"
func percent(n int) string {
	return fmt.Sprintf("%d%%", n)
}

// sortedKeys is used for deterministic permission lists
func sortedKeys(m map[string]bool) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// sameStatus compares statuses the way the API spells them inconsistently
func sameStatus(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}
