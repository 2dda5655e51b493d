// internal/endpoints/content/content-search/service.go

package contentsearch

import (
	"context"
	"strings"
	"unicode/utf8"

	apperrors "healthquote-funnel/internal/common/errors"
	"healthquote-funnel/internal/common/logger"
	"healthquote-funnel/internal/content"
)

type Service struct {
	config   *Config
	primary  content.Searcher
	fallback content.Searcher
	logger   logger.Logger
}

func NewService(deps ServiceDependencies, config *Config) *Service {
	return &Service{
		config:   config,
		primary:  deps.Primary,
		fallback: deps.Fallback,
		logger:   deps.Logger,
	}
}

func (s *Service) Execute(ctx context.Context, input *Input) (*Output, error) {
	query := strings.TrimSpace(input.Query)
	if utf8.RuneCountInString(query) < s.config.MinQueryLength {
		return &Output{Success: true, Query: query, Results: []content.Hit{}}, nil
	}

	size := input.Size
	if size <= 0 {
		size = s.config.DefaultSize
	}

	hits, err := s.primary.Search(ctx, query, size)
	if err != nil && s.fallback != nil {
		s.logger.Warn("Search index unavailable, using page store", map[string]interface{}{
			"query": query,
			"error": err.Error(),
		})
		hits, err = s.fallback.Search(ctx, query, size)
	}
	if err != nil {
		return nil, apperrors.NewSearchQueryFailedError(err)
	}

	return &Output{Success: true, Query: query, Results: hits}, nil
}
