package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/reiverr/reiverr-server/internal/service"
)

func (s *Server) registerDiscoveryRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "getDiscovery",
		Method:      http.MethodGet,
		Path:        "/api/v1/discovery",
		Summary:     "Get discovery",
		Description: "Returns the discovery carousels. A section that failed to load reports status error and the rest still load",
		Tags:        []string{"Discovery"},
	}, s.handleGetDiscovery)
}

// DiscoveryOutput wraps the discovery view for Huma.
type DiscoveryOutput struct {
	Body *service.DiscoveryView
}

func (s *Server) handleGetDiscovery(ctx context.Context, _ *struct{}) (*DiscoveryOutput, error) {
	view, err := s.services.Discovery.GetDiscovery(ctx)
	if err != nil {
		return nil, err
	}

	return &DiscoveryOutput{Body: view}, nil
}
