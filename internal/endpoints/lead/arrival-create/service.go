// internal/endpoints/lead/arrival-create/service.go

package arrivalcreate

import (
	"context"

	apperrors "healthquote-funnel/internal/common/errors"
	"healthquote-funnel/internal/common/logger"
	"healthquote-funnel/internal/models"
)

type Service struct {
	config *Config
	client ArrivalClient
	logger logger.Logger
}

func NewService(deps ServiceDependencies, config *Config) *Service {
	return &Service{
		config: config,
		client: deps.Client,
		logger: deps.Logger,
	}
}

// BuildPayload maps an arrival onto the lead service arrival_request body.
func (s *Service) BuildPayload(input *Input) *models.ArrivalPayload {
	sourceID := input.Campaign
	if sourceID == "" {
		sourceID = s.config.DefaultSourceID
	}
	return &models.ArrivalPayload{
		WebID:      "",
		IPAddress:  input.IPAddress,
		Referer:    input.Referrer,
		UserAgent:  input.UserAgent,
		SiteID:     s.config.SiteID,
		LandingURL: input.LandingURL,
		SourceID:   sourceID,
		Campaign:   input.Campaign,
		Keyword:    input.Term,
		VerticalID: input.FormType.VerticalID(),
	}
}

func (s *Service) Execute(ctx context.Context, input *Input) (*Output, error) {
	payload := s.BuildPayload(input)

	arrivalID, err := s.client.CreateArrival(ctx, payload)
	if err != nil {
		s.logger.Warn("Arrival request failed", map[string]interface{}{
			"formType":   string(input.FormType),
			"verticalId": payload.VerticalID,
			"error":      err.Error(),
		})
		if stdErr, ok := apperrors.As(err); ok {
			return nil, stdErr
		}
		return nil, apperrors.NewArrivalCreateFailedError(err)
	}

	s.logger.Info("Arrival created", map[string]interface{}{
		"arrivalId":  arrivalID,
		"verticalId": payload.VerticalID,
		"sourceId":   payload.SourceID,
	})

	return &Output{Success: true, ArrivalID: arrivalID}, nil
}
