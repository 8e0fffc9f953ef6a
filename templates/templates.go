// Package templates holds the HTML shell served outside /api/.
package templates

import (
	"embed"
	"html/template"
	"io"

	"github.com/khanh208/shop-noithat-vp-sub000/pkg/view"
)

//go:embed *.html
var files embed.FS

var pages = template.Must(template.New("").Funcs(template.FuncMap{
	"alertClass": func(k view.FlashKind) string { return k.AlertClass() },
}).ParseFS(files, "*.html"))

// Shell is the data for every page rendered by the layout.
type Shell struct {
	Title     string
	Page      string // front-end entry point, e.g. "checkout"
	Flash     *view.Flash
	Username  string
	IsStaff   bool
	ShowPopup bool
	RequestID string
	Status    int
	Message   string
}

// Render executes one of: "shell", "error", "access_denied".
func Render(w io.Writer, name string, data Shell) error {
	return pages.ExecuteTemplate(w, name, data)
}
