// internal/endpoints/location/geocode-lookup/service.go

package geocodelookup

import (
	"context"
	"strings"

	"healthquote-funnel/internal/common/logger"
)

type Service struct {
	config  *Config
	locator Locator
	logger  logger.Logger
}

func NewService(deps ServiceDependencies, config *Config) *Service {
	return &Service{
		config:  config,
		locator: deps.Locator,
		logger:  deps.Logger,
	}
}

func (s *Service) Execute(ctx context.Context, input *Input) (*Output, error) {
	zip := strings.TrimSpace(input.Zip)

	loc, precision, err := s.locator.Lookup(ctx, zip)
	if err != nil {
		return nil, err
	}

	s.logger.Debug("ZIP resolved", map[string]interface{}{
		"zip":       zip,
		"state":     loc.State,
		"precision": string(precision),
	})

	return &Output{
		Success:   true,
		City:      loc.City,
		State:     loc.State,
		StateLong: loc.StateLong,
	}, nil
}
