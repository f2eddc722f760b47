package pagination

import (
	"net/url"
	"strconv"

	"github.com/gofiber/fiber/v2"
)

// Params represents pagination parameters
type Params struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
}

// Meta represents pagination metadata
type Meta struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
	HasNext    bool  `json:"has_next"`
	HasPrev    bool  `json:"has_prev"`
}

// DefaultLimit is the default number of items per page
const DefaultLimit = 20

// MaxLimit is the maximum number of items per page
const MaxLimit = 100

// window is how many page links the control shows around the current page
const window = 2

// GetParams extracts pagination parameters from request
func GetParams(c *fiber.Ctx, defaultLimit int) *Params {
	if defaultLimit < 1 {
		defaultLimit = DefaultLimit
	}
	page, _ := strconv.Atoi(c.Query("page", "1"))
	limit, _ := strconv.Atoi(c.Query("limit", strconv.Itoa(defaultLimit)))
	return New(page, limit)
}

// New clamps page and limit into range
func New(page, limit int) *Params {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	return &Params{Page: page, Limit: limit}
}

// Values encodes the params as API query parameters
func (p *Params) Values() url.Values {
	v := url.Values{}
	if p == nil {
		return v
	}
	v.Set("page", strconv.Itoa(p.Page))
	v.Set("limit", strconv.Itoa(p.Limit))
	return v
}

// GetMeta calculates pagination metadata. When the API does not report a
// total, a full page is taken to mean there may be another one.
func GetMeta(params *Params, total int64, returned int) *Meta {
	if params == nil {
		params = New(1, DefaultLimit)
	}
	meta := &Meta{
		Page:    params.Page,
		Limit:   params.Limit,
		Total:   total,
		HasPrev: params.Page > 1,
	}

	if total > 0 {
		totalPages := int(total) / params.Limit
		if int(total)%params.Limit > 0 {
			totalPages++
		}
		meta.TotalPages = totalPages
		meta.HasNext = params.Page < totalPages
		return meta
	}

	meta.HasNext = returned >= params.Limit
	meta.TotalPages = params.Page
	if meta.HasNext {
		meta.TotalPages++
	}
	return meta
}

// Link is one button of the page-number control
type Link struct {
	Page    int
	Label   string
	Href    string
	Current bool
	Gap     bool
}

// Control builds the page-number control for meta. href maps a page to its URL.
func Control(meta *Meta, href func(page int) string) []Link {
	if meta == nil || meta.TotalPages <= 1 {
		return nil
	}

	var links []Link
	if meta.HasPrev {
		links = append(links, Link{Page: meta.Page - 1, Label: "Previous", Href: href(meta.Page - 1)})
	}

	last := 0
	for _, p := range visiblePages(meta.Page, meta.TotalPages) {
		if last != 0 && p != last+1 {
			links = append(links, Link{Label: "…", Gap: true})
		}
		links = append(links, Link{
			Page:    p,
			Label:   strconv.Itoa(p),
			Href:    href(p),
			Current: p == meta.Page,
		})
		last = p
	}

	if meta.HasNext {
		links = append(links, Link{Page: meta.Page + 1, Label: "Next", Href: href(meta.Page + 1)})
	}
	return links
}

// visiblePages lists the first page, the pages around current and the last
// page in order; the cost does not grow with total
func visiblePages(current, total int) []int {
	pages := []int{1}
	from, to := current-window, current+window
	if from < 2 {
		from = 2
	}
	if to > total-1 {
		to = total - 1
	}
	for p := from; p <= to; p++ {
		pages = append(pages, p)
	}
	if total > 1 {
		pages = append(pages, total)
	}
	return pages
}
