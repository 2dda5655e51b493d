// internal/endpoints/location/geocode-lookup/handler.go

package geocodelookup

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"healthquote-funnel/internal/common/config"
	"healthquote-funnel/internal/common/logger"
	"healthquote-funnel/internal/endpoints"
	"healthquote-funnel/internal/models"

	"github.com/gin-gonic/gin"
)

const (
	TaskType     = "location.geocode.lookup"
	endpointName = "geocode-lookup"
	failMessage  = "Failed to resolve ZIP code"
)

type Handler struct {
	config  *Config
	logger  logger.Logger
	service *Service
}

type HandlerOptions struct {
	AppConfig    *config.Config
	Locator      Locator
	CustomConfig *Config
	Logger       logger.Logger
}

func NewHandler(opts HandlerOptions) (*Handler, error) {
	endpointConfig := createConfigFromAppConfig(opts.AppConfig, opts.CustomConfig)

	if err := endpointConfig.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration for %s: %w", endpointName, err)
	}
	if opts.Locator == nil {
		return nil, fmt.Errorf("%s requires a locator", endpointName)
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
		Locator: opts.Locator,
		Logger:  loggerInstance,
	}, handler.config)

	return handler, nil
}

// Handle serves GET /api/geocode?zip= and POST /api/geocode with a {"zip": ...} body.
func (h *Handler) Handle(c *gin.Context) {
	zip := c.Query("zip")
	if c.Request.Method == "POST" {
		zip = zipFromBody(c.Request.Body)
	}

	output, err := h.Execute(c.Request.Context(), &Input{Zip: zip})
	if err != nil {
		endpoints.Fail(c, err, failMessage)
		return
	}
	c.JSON(200, output)
}

// zipFromBody accepts the ZIP as a string or a number; anything unreadable yields "".
func zipFromBody(body io.Reader) string {
	var req struct {
		Zip interface{} `json:"zip"`
	}
	if err := json.NewDecoder(io.LimitReader(body, 4096)).Decode(&req); err != nil {
		return ""
	}
	switch v := req.Zip.(type) {
	case string:
		return v
	case float64:
		return fmt.Sprintf("%.0f", v)
	default:
		return ""
	}
}

// LookupZip lets the wizard autofill city and state in process.
func (h *Handler) LookupZip(ctx context.Context, zip string) (*models.Location, bool) {
	output, err := h.Execute(ctx, &Input{Zip: zip})
	if err != nil {
		return nil, false
	}
	return &models.Location{City: output.City, State: output.State, StateLong: output.StateLong}, true
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
