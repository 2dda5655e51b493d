// internal/endpoints/lead/offers-fetch/models.go

package offersfetch

import (
	"context"

	"healthquote-funnel/internal/common/logger"
	"healthquote-funnel/internal/models"
)

type Input struct {
	ArrivalID string
	FormType  models.FormType
}

type Output struct {
	Success bool           `json:"success"`
	Offers  []models.Offer `json:"offers"`
}

// OffersClient is the lead service call this endpoint proxies.
type OffersClient interface {
	FetchOffers(ctx context.Context, arrivalID string, formType models.FormType) ([]models.Offer, error)
}

type ServiceDependencies struct {
	Client OffersClient
	Logger logger.Logger
}
