package handler

import (
	"context"
	"net/http"

	"github.com/pkordes/bike-logbook/internal/handler/gen"
	"github.com/pkordes/bike-logbook/spec"
)

// GetHealth handles GET /healthz.
func (s *Server) GetHealth(ctx context.Context, _ gen.GetHealthRequestObject) (gen.GetHealthResponseObject, error) {
	return gen.GetHealth200JSONResponse{Status: "ok"}, nil
}

// OpenAPISpec serves the embedded OpenAPI document at /openapi.yaml.
func OpenAPISpec(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/yaml")
	_, _ = w.Write(spec.OpenAPI)
}
