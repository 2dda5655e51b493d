// internal/endpoints/lead/arrival-create/handler.go

package arrivalcreate

import (
	"context"
	"fmt"
	"time"

	"healthquote-funnel/internal/common/config"
	"healthquote-funnel/internal/common/logger"
	"healthquote-funnel/internal/endpoints"
	"healthquote-funnel/internal/models"
	"healthquote-funnel/internal/wizard"

	"github.com/gin-gonic/gin"
)

const (
	TaskType     = "lead.arrival.create"
	endpointName = "arrival-create"
	failMessage  = "Failed to create arrival"
)

type Handler struct {
	config  *Config
	logger  logger.Logger
	service *Service
}

type HandlerOptions struct {
	AppConfig    *config.Config
	Client       ArrivalClient
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

// Handle serves POST /api/lead/arrival.
func (h *Handler) Handle(c *gin.Context) {
	var req Request
	if err := endpoints.BindJSON(c, GetInputSchema(), &req); err != nil {
		endpoints.Fail(c, err, failMessage)
		return
	}

	output, err := h.Execute(c.Request.Context(), &Input{
		FormType:   models.FormType(req.FormType),
		Campaign:   req.Campaign,
		Term:       req.Term,
		Referrer:   req.Referrer,
		LandingURL: req.LandingURL,
		IPAddress:  endpoints.ClientIP(c.Request),
		UserAgent:  c.Request.UserAgent(),
	})
	if err != nil {
		endpoints.Fail(c, err, failMessage)
		return
	}
	c.JSON(200, output)
}

// RegisterArrival lets the server-side wizard register arrivals in process.
func (h *Handler) RegisterArrival(ctx context.Context, req wizard.ArrivalRequest) (string, bool) {
	output, err := h.Execute(ctx, &Input{
		FormType:   req.FormType,
		Campaign:   req.Campaign,
		Term:       req.Term,
		Referrer:   req.Referrer,
		LandingURL: req.LandingURL,
		IPAddress:  req.IPAddress,
		UserAgent:  req.UserAgent,
	})
	if err != nil {
		return "", false
	}
	return output.ArrivalID, true
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

func (h *Handler) GetConfig() *Config {
	return h.config
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
		if appConfig.LeadService.SiteID != "" {
			cfg.SiteID = appConfig.LeadService.SiteID
		}
		if appConfig.LeadService.DefaultSourceID != "" {
			cfg.DefaultSourceID = appConfig.LeadService.DefaultSourceID
		}
	}

	return cfg
}
