// Package ui serves the browser client of the catalog.
package ui

import (
	"embed"
	"io/fs"
	"net/http"
)

//go:embed static
var static embed.FS

// Handler serves the embedded single page and its script.
func Handler() http.Handler {
	sub, err := fs.Sub(static, "static")
	if err != nil {
		// static is embedded, Sub only fails on a malformed name
		panic(err)
	}
	return http.FileServerFS(sub)
}
