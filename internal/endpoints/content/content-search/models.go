// internal/endpoints/content/content-search/models.go

package contentsearch

import (
	"healthquote-funnel/internal/common/logger"
	"healthquote-funnel/internal/content"
)

type Input struct {
	Query string
	Size  int
}

type Output struct {
	Success bool          `json:"success"`
	Query   string        `json:"query"`
	Results []content.Hit `json:"results"`
}

type ServiceDependencies struct {
	// Primary answers queries; Fallback, when set, answers them if Primary fails.
	Primary  content.Searcher
	Fallback content.Searcher
	Logger   logger.Logger
}
