// internal/endpoints/lead/offers-fetch/service.go

package offersfetch

import (
	"context"
	"strings"

	apperrors "healthquote-funnel/internal/common/errors"
	"healthquote-funnel/internal/common/logger"
	"healthquote-funnel/internal/models"
)

type Service struct {
	config *Config
	client OffersClient
	logger logger.Logger
}

func NewService(deps ServiceDependencies, config *Config) *Service {
	return &Service{
		config: config,
		client: deps.Client,
		logger: deps.Logger,
	}
}

// NormalizeFormType maps anything but "medicare" onto health, the way the thank-you page
// treats its type parameter.
func NormalizeFormType(s string) models.FormType {
	if strings.EqualFold(strings.TrimSpace(s), string(models.FormTypeMedicare)) {
		return models.FormTypeMedicare
	}
	return models.FormTypeHealth
}

func (s *Service) Execute(ctx context.Context, input *Input) (*Output, error) {
	if strings.TrimSpace(input.ArrivalID) == "" {
		return nil, apperrors.NewMissingArrivalIDError()
	}

	offers, err := s.client.FetchOffers(ctx, input.ArrivalID, input.FormType)
	if err != nil {
		s.logger.Warn("Offers request failed", map[string]interface{}{
			"arrivalId": input.ArrivalID,
			"formType":  string(input.FormType),
			"error":     err.Error(),
		})
		if stdErr, ok := apperrors.As(err); ok {
			return nil, stdErr
		}
		return nil, apperrors.NewOffersFetchFailedError(err)
	}

	if len(offers) > s.config.MaxOffers {
		offers = offers[:s.config.MaxOffers]
	}
	if offers == nil {
		offers = []models.Offer{}
	}

	s.logger.Debug("Offers fetched", map[string]interface{}{
		"arrivalId": input.ArrivalID,
		"count":     len(offers),
	})

	return &Output{Success: true, Offers: offers}, nil
}
