package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/reiverr/reiverr-server/internal/service"
)

func (s *Server) registerPeopleRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "getPerson",
		Method:      http.MethodGet,
		Path:        "/api/v1/people/{id}",
		Summary:     "Get person",
		Description: "Returns the display-ready person page: biography, socials, and the known-for list",
		Tags:        []string{"People"},
	}, s.handleGetPerson)

	huma.Register(s.api, huma.Operation{
		OperationID: "refreshPerson",
		Method:      http.MethodPost,
		Path:        "/api/v1/people/{id}/refresh",
		Summary:     "Refresh person",
		Description: "Drops every cached copy of a person and loads it again from the catalog",
		Tags:        []string{"People"},
	}, s.handleRefreshPerson)
}

// GetPersonInput contains parameters for getting a person.
type GetPersonInput struct {
	ID int `path:"id" doc:"Catalog person ID"`
}

// PersonOutput wraps the person view for Huma.
type PersonOutput struct {
	CacheControl string `header:"Cache-Control"`
	Body         *service.PersonView
}

func (s *Server) handleGetPerson(ctx context.Context, input *GetPersonInput) (*PersonOutput, error) {
	view, err := s.services.Person.GetPersonPage(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	return &PersonOutput{
		CacheControl: "public, max-age=300",
		Body:         view,
	}, nil
}

func (s *Server) handleRefreshPerson(ctx context.Context, input *GetPersonInput) (*PersonOutput, error) {
	if err := s.services.Person.Invalidate(ctx, input.ID); err != nil {
		s.logger.Warn("Failed to invalidate person", "person_id", input.ID, "error", err)
	}

	view, err := s.services.Person.GetPersonPage(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	return &PersonOutput{
		CacheControl: "no-store",
		Body:         view,
	}, nil
}
