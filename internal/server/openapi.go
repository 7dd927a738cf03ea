package server

import (
	"encoding/json"
	"net/http"

	openapi "github.com/swaggest/openapi-go"
	"github.com/swaggest/openapi-go/openapi3"

	"github.com/N-Varsha-Nayak/jobnotify/internal/handler/health"
	"github.com/N-Varsha-Nayak/jobnotify/internal/hits"
)

// ErrorResponse is returned for all JSON error responses.
type ErrorResponse struct {
	Error string `json:"error"`
}

// HealthResponse maps check names to their result.
type HealthResponse map[string]health.Result

type spaPathRequest struct {
	Path string `path:"path" description:"Client-side route or static file path."`
}

func newOpenAPISpec() *openapi3.Spec {
	r := openapi3.NewReflector()
	r.Spec.Info.Title = "jobnotify"
	r.Spec.Info.Version = "0.1.0"
	r.Spec.Info.WithDescription("Static server for the Job Notification Tracker single-page app.")

	// GET /healthz
	getHealthz, _ := r.NewOperationContext(http.MethodGet, "/healthz")
	getHealthz.SetSummary("Health check")
	getHealthz.SetDescription("Reports whether the index document and the hits database are usable.")
	getHealthz.AddRespStructure(HealthResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	getHealthz.AddRespStructure(HealthResponse{}, openapi.WithHTTPStatus(http.StatusServiceUnavailable))
	_ = r.AddOperation(getHealthz)

	// GET /api/hits
	getHits, _ := r.NewOperationContext(http.MethodGet, "/api/hits")
	getHits.SetSummary("Hit summary")
	getHits.SetDescription("Counts served requests by kind and lists the most requested paths. Only mounted when HITS_DB is set.")
	getHits.AddReqStructure(HitsRequest{})
	getHits.AddRespStructure(hits.Summary{}, openapi.WithHTTPStatus(http.StatusOK))
	getHits.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusBadRequest))
	_ = r.AddOperation(getHits)

	// GET /{path}
	getPath, _ := r.NewOperationContext(http.MethodGet, "/{path}")
	getPath.SetSummary("Static files and client-side routes")
	getPath.SetDescription("Serves the file at path. Client-side routes are answered with the index document.")
	getPath.AddReqStructure(spaPathRequest{})
	getPath.AddRespStructure(nil, openapi.WithHTTPStatus(http.StatusOK),
		openapi.WithContentType("text/html"))
	getPath.AddRespStructure(nil, openapi.WithHTTPStatus(http.StatusNotFound),
		openapi.WithContentType("text/plain"))
	_ = r.AddOperation(getPath)

	return r.Spec
}

func handleOpenAPI() http.HandlerFunc {
	spec := newOpenAPISpec()
	data, _ := json.MarshalIndent(spec, "", "  ")

	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(data)
	}
}
