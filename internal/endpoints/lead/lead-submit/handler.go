// internal/endpoints/lead/lead-submit/handler.go

package leadsubmit

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"healthquote-funnel/internal/common/config"
	"healthquote-funnel/internal/common/logger"
	"healthquote-funnel/internal/common/observability"
	"healthquote-funnel/internal/endpoints"
	"healthquote-funnel/internal/models"
	"healthquote-funnel/internal/wizard"

	"github.com/gin-gonic/gin"
)

const (
	TaskType     = "lead.submit"
	endpointName = "lead-submit"
	failMessage  = "Failed to submit lead"
)

type Handler struct {
	config  *Config
	logger  logger.Logger
	service *Service
}

type HandlerOptions struct {
	AppConfig     *config.Config
	Client        LeadClient
	Processes     ProcessStarter
	Observability *observability.Observability
	CustomConfig  *Config
	Logger        logger.Logger
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
		Client:        opts.Client,
		Processes:     opts.Processes,
		Observability: opts.Observability,
		Logger:        loggerInstance,
	}, handler.config)

	return handler, nil
}

// Handle serves POST /api/lead/submit.
func (h *Handler) Handle(c *gin.Context) {
	var req Request
	if err := endpoints.BindJSON(c, GetInputSchema(), &req); err != nil {
		endpoints.Fail(c, err, failMessage)
		return
	}

	output, err := h.Execute(c.Request.Context(), &Input{
		FormType: models.FormType(req.FormType),
		FormData: req.FormData,
	})
	if err != nil {
		endpoints.Fail(c, err, failMessage)
		return
	}
	c.JSON(200, output)
}

// SubmitLead lets the server-side wizard submit in process. Failures come back the way the
// API would answer them: an unsuccessful result carrying the API's error message.
func (h *Handler) SubmitLead(ctx context.Context, req wizard.SubmitRequest) (*wizard.SubmitResult, error) {
	output, err := h.Execute(ctx, &Input{FormType: req.FormType, FormData: req.FormData})
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		_, msg := endpoints.Describe(err, failMessage)
		return &wizard.SubmitResult{Success: false, Error: msg}, nil
	}
	return &wizard.SubmitResult{
		Success:   true,
		LeadID:    output.LeadID,
		ArrivalID: output.ArrivalID,
		City:      output.City,
		State:     output.State,
	}, nil
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
		if id, err := strconv.Atoi(appConfig.LeadService.DefaultSourceID); err == nil && id > 0 {
			cfg.DefaultSourceID = id
		}
		cfg.StartFollowup = appConfig.Camunda.Enabled
		if appConfig.Camunda.ProcessID != "" {
			cfg.ProcessID = appConfig.Camunda.ProcessID
		}
	}

	return cfg
}
