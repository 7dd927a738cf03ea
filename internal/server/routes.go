package server

import (
	"log/slog"

	"github.com/go-chi/chi/v5"
	"github.com/swaggest/swgui/v5emb"

	"github.com/N-Varsha-Nayak/jobnotify/internal/handler/health"
)

func addRoutes(r chi.Router, logger *slog.Logger, opts Options) {
	r.Mount("/healthz", health.NewHandler(logger, opts.Checks).Routes())

	if opts.Docs {
		r.Get("/openapi.json", handleOpenAPI())
		r.Mount("/docs", v5emb.New("jobnotify", "/openapi.json", "/docs"))
	}

	if opts.Hits != nil {
		r.Get("/api/hits", handleHits(opts.Hits))
	}

	// Everything else is a client-side route or a static file.
	h := handleSPA(opts.Table, opts.Root, opts.Hits, logger)
	r.Get("/*", h)
	r.Head("/*", h)
}
