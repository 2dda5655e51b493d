// internal/endpoints/content/content-search/handler.go

package contentsearch

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"healthquote-funnel/internal/common/config"
	"healthquote-funnel/internal/common/logger"
	"healthquote-funnel/internal/content"
	"healthquote-funnel/internal/endpoints"

	"github.com/gin-gonic/gin"
)

const (
	TaskType     = "content.search"
	endpointName = "content-search"
	failMessage  = "Search failed"
)

type Handler struct {
	config  *Config
	logger  logger.Logger
	service *Service
}

type HandlerOptions struct {
	AppConfig    *config.Config
	Primary      content.Searcher
	Fallback     content.Searcher
	CustomConfig *Config
	Logger       logger.Logger
}

func NewHandler(opts HandlerOptions) (*Handler, error) {
	endpointConfig := createConfigFromAppConfig(opts.AppConfig, opts.CustomConfig)

	if err := endpointConfig.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration for %s: %w", endpointName, err)
	}
	if opts.Primary == nil {
		return nil, fmt.Errorf("%s requires a searcher", endpointName)
	}

	var loggerInstance logger.Logger
	if opts.Logger != nil {
		loggerInstance = opts.Logger
	} else {
		loggerInstance = logger.NewStructured("info", "json")
	}

	handler := &Handler{
		config: endpointConfig,
		logger: loggerInstance,
	}

	handler.service = NewService(ServiceDependencies{
		Primary:  opts.Primary,
		Fallback: opts.Fallback,
		Logger:   loggerInstance,
	}, handler.config)

	return handler, nil
}

// Handle serves GET /api/search?q=&size=.
func (h *Handler) Handle(c *gin.Context) {
	size, _ := strconv.Atoi(c.Query("size"))

	output, err := h.Execute(c.Request.Context(), &Input{Query: c.Query("q"), Size: size})
	if err != nil {
		endpoints.Fail(c, err, failMessage)
		return
	}
	c.JSON(200, output)
}

// Execute runs the service under the endpoint timeout and records metrics.
func (h *Handler) Execute(ctx context.Context, input *Input) (output *Output, err error) {
	done := endpoints.Observe(TaskType)
	defer func() { done(err) }()

	ctx, cancel := context.WithTimeout(ctx, h.config.Timeout)
	defer cancel()

	return h.service.Execute(ctx, input)
}

func (h *Handler) GetTaskType() string {
	return TaskType
}

func (h *Handler) IsEnabled() bool {
	return h.config.Enabled
}

func createConfigFromAppConfig(appConfig *config.Config, customConfig *Config) *Config {
	if customConfig != nil {
		return customConfig
	}

	cfg := DefaultConfig()

	if appConfig != nil {
		if endpointCfg, exists := appConfig.Endpoints[endpointName]; exists {
			cfg.Enabled = endpointCfg.Enabled
			if endpointCfg.Timeout > 0 {
				cfg.Timeout = time.Duration(endpointCfg.Timeout) * time.Millisecond
			}
		}
	}

	return cfg
}
