// Package views renders the console pages from embedded templates. Every
// template shares one set, so pages can call the partials; the layout wraps a
// page with {{embed}}.
package views

import (
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"strings"

	"coop-console/internal/core/domain"
	"coop-console/internal/core/services"
	"coop-console/internal/pkg/badge"

	"github.com/gofiber/template/html/v2"
)

// Layout is the template pages are rendered inside
const Layout = "layout"

//go:embed templates/*.html
var templateFS embed.FS

// Data is the binding every page is rendered with
type Data struct {
	Title    string
	Nav      string
	Admin    *domain.AdminProfile
	SignedIn bool
	Page     any
}

// ErrorPage is the page model of the error template
type ErrorPage struct {
	Status  int
	Message string
}

// New creates the view engine; Fiber calls Load when the app starts
func New() *html.Engine {
	sub, err := fs.Sub(templateFS, "templates")
	if err != nil {
		panic(fmt.Sprintf("views: %v", err))
	}
	engine := html.NewFileSystem(http.FS(sub), ".html")
	engine.AddFuncMap(Funcs())
	return engine
}

// Funcs are the helpers available to every template
func Funcs() template.FuncMap {
	return template.FuncMap{
		"badge": func(status any) string {
			return badge.For(fmt.Sprint(status)).Class()
		},
		"money": func(n domain.Number) string {
			return services.FormatAmount(float64(n))
		},
		"lower": strings.ToLower,
	}
}
