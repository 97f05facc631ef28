// Package site serves the browser dashboard.
package site

import (
	"context"
	"net/http"
)

// Register attaches the embedded dashboard at / to mux. Paths without a
// more specific route fall through to the dashboard files.
func Register(_ context.Context, mux *http.ServeMux) {
	if mux == nil {
		panic("mux is nil")
	}
	mux.Handle("/", http.FileServer(FS()))
}
