package api

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/danielgtaylor/huma/v2"
)

func (s *Server) registerHealthRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "healthCheck",
		Method:      http.MethodGet,
		Path:        "/health",
		Summary:     "Health check",
		Description: "Returns server health status with component checks",
		Tags:        []string{"Health"},
	}, s.handleHealthCheck)
}

// ComponentHealth describes the health of a single component.
type ComponentHealth struct {
	Status  string `json:"status" doc:"Component status: healthy, degraded, or unhealthy"`
	Latency string `json:"latency,omitempty" doc:"Response time for this component"`
	Message string `json:"message,omitempty" doc:"Additional status information"`
}

// HealthResponse contains health check data in API responses.
type HealthResponse struct {
	Status     string                     `json:"status" doc:"Overall status: healthy, degraded, or unhealthy"`
	Version    string                     `json:"version" doc:"Server version"`
	Components map[string]ComponentHealth `json:"components" doc:"Individual component statuses"`
}

// HealthOutput wraps the health response for Huma.
type HealthOutput struct {
	Body HealthResponse
}

func (s *Server) handleHealthCheck(ctx context.Context, _ *struct{}) (*HealthOutput, error) {
	components := make(map[string]ComponentHealth)
	overall := "healthy"

	cacheHealth := s.checkCache(ctx)
	components["cache"] = cacheHealth
	if cacheHealth.Status != "healthy" {
		overall = "unhealthy"
	}

	catalogHealth := s.checkCatalog()
	components["catalog"] = catalogHealth
	if catalogHealth.Status == "degraded" && overall == "healthy" {
		overall = "degraded"
	}

	return &HealthOutput{
		Body: HealthResponse{
			Status:     overall,
			Version:    s.opts.Version,
			Components: components,
		},
	}, nil
}

// checkCache verifies the record cache is open and readable.
func (s *Server) checkCache(ctx context.Context) ComponentHealth {
	// Handle nil store (e.g., in tests)
	if s.store == nil {
		return ComponentHealth{
			Status:  "degraded",
			Message: "cache not configured",
		}
	}

	start := time.Now()
	err := s.store.Ping(ctx)
	latency := time.Since(start)

	if err != nil {
		return ComponentHealth{
			Status:  "unhealthy",
			Latency: latency.String(),
			Message: "cache read failed",
		}
	}

	n, err := s.store.Len(ctx)
	if err != nil {
		return ComponentHealth{
			Status:  "healthy",
			Latency: latency.String(),
		}
	}
	return ComponentHealth{
		Status:  "healthy",
		Latency: latency.String(),
		Message: formatEntries(n),
	}
}

// checkCatalog reports whether the catalog backed services are wired.
// It never calls upstream so health checks cannot spend catalog quota.
func (s *Server) checkCatalog() ComponentHealth {
	if s.services == nil || s.services.Person == nil || s.services.Discovery == nil {
		return ComponentHealth{
			Status:  "degraded",
			Message: "catalog services not configured",
		}
	}
	return ComponentHealth{Status: "healthy"}
}

func formatEntries(n int) string {
	if n == 1 {
		return "1 cached entry"
	}
	return strconv.Itoa(n) + " cached entries"
}
