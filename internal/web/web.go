// Package web holds the HTML pages rendered by the controllers.
package web

import (
	"embed"
	"fmt"
	"html/template"
	"io/fs"
)

//go:embed templates/*.html static/*
var FS embed.FS

// Templates parses every page with the shared helper functions.
func Templates() (*template.Template, error) {
	return template.New("").Funcs(template.FuncMap{
		"pct": func(v float64) string { return fmt.Sprintf("%.1f%%", v) },
	}).ParseFS(FS, "templates/*.html")
}

// Static returns the stylesheet and other assets served under /static.
func Static() fs.FS {
	sub, err := fs.Sub(FS, "static")
	if err != nil {
		panic(err)
	}
	return sub
}
