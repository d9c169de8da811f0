// Package web embeds the admin HTML templates and static assets.
package web

import (
	"embed"
	"html/template"
	"io/fs"
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/aura-seminar/admin/internal/models"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

// Templates parses every page template with the shared helpers.
func Templates() (*template.Template, error) {
	return template.New("").Funcs(FuncMap()).ParseFS(templateFS, "templates/*.html")
}

// Static serves the embedded CSS and JS under /static.
func Static() http.FileSystem {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return http.FS(sub)
}

// FuncMap holds the template helpers.
func FuncMap() template.FuncMap {
	return template.FuncMap{
		"pages":        pages,
		"truncate":     truncate,
		"counterClass": counterClass,
		"maxDesc":      func() int { return models.MaxDescriptionLength },
		"add":          func(a, b int) int { return a + b },
	}
}

// pages returns 1..n.
func pages(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i + 1
	}
	return out
}

func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	r := []rune(s)
	return strings.TrimSpace(string(r[:n])) + "…"
}

func counterClass(n int) string {
	if n >= models.MaxDescriptionLength {
		return "counter warn"
	}
	return "counter"
}
