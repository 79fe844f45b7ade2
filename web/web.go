// Package web holds the page templates and static assets compiled into the
// binary.
package web

import (
	"embed"
	"html/template"
	"io/fs"
	"strings"

	"github.com/yeremiapane/blackfish/models"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

// Static returns the asset tree served under /static.
func Static() fs.FS {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return sub
}

var funcs = template.FuncMap{
	"placeholderColor": models.PlaceholderColor,
	"lower":            strings.ToLower,
	"guestLabel": func(option string) string {
		switch option {
		case models.GuestsCallUs:
			return "7+ Guests (Call us)"
		case "1":
			return "1 Guest"
		}
		return option + " Guests"
	},
}

// Templates parses every page template.
func Templates() (*template.Template, error) {
	return template.New("").Funcs(funcs).ParseFS(templateFS, "templates/*.tmpl")
}
