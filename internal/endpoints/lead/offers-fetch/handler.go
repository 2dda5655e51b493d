// internal/endpoints/lead/offers-fetch/handler.go

package offersfetch

import (
	"context"
	"fmt"
	"time"

	"healthquote-funnel/internal/common/config"
	"healthquote-funnel/internal/common/logger"
	"healthquote-funnel/internal/endpoints"

	"github.com/gin-gonic/gin"
)

const (
	TaskType     = "lead.offers.fetch"
	endpointName = "offers-fetch"
	failMessage  = "Failed to fetch offers"
)

type Handler struct {
	config  *Config
	logger  logger.Logger
	service *Service
}

type HandlerOptions struct {
	AppConfig    *config.Config
	Client       OffersClient
	CustomConfig *Config
	Logger       logger.Logger
}

func NewHandler(opts HandlerOptions) (*Handler, error) {
	endpointConfig := createConfigFromAppConfig(opts.AppConfig, opts.CustomConfig)

	if err := endpointConfig.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration for %s: %w", endpointName, err)
	}
	if opts.Client == nil {
		return nil, fmt.Errorf("%s requires a lead service client", endpointName)
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
		Client: opts.Client,
		Logger: loggerInstance,
	}, handler.config)

	return handler, nil
}

// Handle serves GET /api/lead/offers?arrivalId=&type=.
func (h *Handler) Handle(c *gin.Context) {
	output, err := h.Execute(c.Request.Context(), &Input{
		ArrivalID: c.Query("arrivalId"),
		FormType:  NormalizeFormType(c.Query("type")),
	})
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
