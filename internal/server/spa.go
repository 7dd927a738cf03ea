package server

import (
	"context"
	"io"
	"io/fs"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/N-Varsha-Nayak/jobnotify/internal/hits"
	"github.com/N-Varsha-Nayak/jobnotify/internal/spa"
)

const recordTimeout = 2 * time.Second

// HitStore persists and summarises served requests.
type HitStore interface {
	Record(ctx context.Context, h hits.Hit) error
	Summary(ctx context.Context, limit int) (hits.Summary, error)
}

// handleSPA serves files from root, answering client-side routes listed in
// table with the index document. Misses are the file server's own 404.
// The index is served by name, independent of the request URL, so route
// paths such as /jt/index.html or /dashboard/../x still get the document.
func handleSPA(table *spa.Table, root fs.FS, store HitStore, logger *slog.Logger) http.HandlerFunc {
	files := http.FileServer(http.FS(root))

	return func(w http.ResponseWriter, r *http.Request) {
		served, route := table.Classify(r.URL.RequestURI())

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		if served == table.Index() {
			serveIndex(ww, r, root, served)
		} else {
			files.ServeHTTP(ww, r)
		}

		if store == nil {
			return
		}

		kind := hits.KindAsset
		if route {
			kind = hits.KindRoute
		}
		hit := hits.Hit{
			Method:    r.Method,
			Path:      r.URL.Path,
			Served:    served,
			Kind:      kind,
			Status:    ww.Status(),
			Bytes:     ww.BytesWritten(),
			RequestID: middleware.GetReqID(r.Context()),
			At:        time.Now(),
		}

		ctx, cancel := context.WithTimeout(context.WithoutCancel(r.Context()), recordTimeout)
		defer cancel()
		if err := store.Record(ctx, hit); err != nil {
			logger.Warn("recording hit failed", "path", hit.Path, "error", err)
		}
	}
}

// serveIndex writes the index document with http.ServeContent, bypassing
// the file server's URL checks and its redirect of paths ending in
// /index.html.
func serveIndex(w http.ResponseWriter, r *http.Request, root fs.FS, index string) {
	name := strings.TrimPrefix(index, "/")
	f, err := root.Open(name)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil || !info.Mode().IsRegular() {
		http.NotFound(w, r)
		return
	}
	content, ok := f.(io.ReadSeeker)
	if !ok {
		http.Error(w, "index is not seekable", http.StatusInternalServerError)
		return
	}
	http.ServeContent(w, r, info.Name(), info.ModTime(), content)
}
