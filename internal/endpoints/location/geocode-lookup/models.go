// internal/endpoints/location/geocode-lookup/models.go

package geocodelookup

import (
	"context"

	"healthquote-funnel/internal/common/logger"
	"healthquote-funnel/internal/geo"
	"healthquote-funnel/internal/models"
)

type Input struct {
	Zip string
}

type Output struct {
	Success   bool   `json:"success"`
	City      string `json:"city"`
	State     string `json:"state"`
	StateLong string `json:"state_long"`
}

// Locator resolves a ZIP; geo.Service is the production implementation.
type Locator interface {
	Lookup(ctx context.Context, zip string) (*models.Location, geo.Precision, error)
}

type ServiceDependencies struct {
	Locator Locator
	Logger  logger.Logger
}
