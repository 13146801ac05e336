package api

import (
	"github.com/reiverr/reiverr-server/internal/service"
)

// Services groups the business services used by the API server.
type Services struct {
	Person    *service.PersonService
	Discovery *service.DiscoveryService
}
