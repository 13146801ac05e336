package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	domainerrors "github.com/reiverr/reiverr-server/internal/errors"
	"github.com/reiverr/reiverr-server/internal/geometry"
)

func (s *Server) registerLayoutRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "resolveGeometry",
		Method:      http.MethodPost,
		Path:        "/api/v1/layout/geometry",
		Summary:     "Resolve backdrop height",
		Description: "Returns the backdrop image height for measured region sizes. In modal mode the height follows the top region, in full mode the bottom region peeks above the fold",
		Tags:        []string{"Layout"},
	}, s.handleResolveGeometry)
}

// GeometryRequest is the request body for resolving the backdrop height.
// Sizes are in CSS pixels.
type GeometryRequest struct {
	TopHeight      float64 `json:"top_height" required:"false" validate:"gte=0" doc:"Measured height of the top region"`
	BottomHeight   float64 `json:"bottom_height" required:"false" validate:"gte=0" doc:"Measured height of the bottom region"`
	ViewportHeight float64 `json:"viewport_height" required:"false" validate:"gte=0" doc:"Viewport height"`
	Mode           string  `json:"mode" required:"false" validate:"required,oneof=modal full" doc:"Presentation mode: modal or full"`
}

// GeometryInput wraps the geometry request for Huma.
type GeometryInput struct {
	Body GeometryRequest
}

// GeometryResponse contains the resolved backdrop height.
type GeometryResponse struct {
	ImageHeight float64 `json:"image_height" doc:"Backdrop image height"`
	Mode        string  `json:"mode" doc:"Mode the height was resolved for"`
}

// GeometryOutput wraps the geometry response for Huma.
type GeometryOutput struct {
	Body GeometryResponse
}

func (s *Server) handleResolveGeometry(_ context.Context, input *GeometryInput) (*GeometryOutput, error) {
	if err := s.validator.Validate(input.Body); err != nil {
		return nil, err
	}

	mode, err := geometry.ParseMode(input.Body.Mode)
	if err != nil {
		return nil, domainerrors.Validation(err.Error())
	}

	height := geometry.Input{
		TopHeight:      input.Body.TopHeight,
		BottomHeight:   input.Body.BottomHeight,
		ViewportHeight: input.Body.ViewportHeight,
		Mode:           mode,
	}.Resolve()

	return &GeometryOutput{
		Body: GeometryResponse{
			ImageHeight: height,
			Mode:        mode.String(),
		},
	}, nil
}
