// internal/common/leadservice/client.go

// Package leadservice talks to the external lead-buying service. In stub mode it answers locally
// with generated ids and the demo offer set.
package leadservice

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	apperrors "healthquote-funnel/internal/common/errors"
	httpclient "healthquote-funnel/internal/common/http"
	"healthquote-funnel/internal/common/logger"
	"healthquote-funnel/internal/models"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

const (
	arrivalPath = "/slt_leads/lead_service/arrival_request"
	leadPath    = "/slt_leads/lead_service/lead_request"
	offersPath  = "/slt_leads/lead_service/click_request_by_location/thank_you_page/"
)

type Config struct {
	BaseURL         string
	SiteID          string
	DefaultSourceID string
	Mode            string // stub | live
	Timeout         time.Duration
	MaxRetries      int
}

type Client struct {
	cfg    Config
	http   *httpclient.Client
	logger logger.Logger
	tracer trace.Tracer
	now    func() time.Time
}

type arrivalResponse struct {
	Status    string `json:"status"`
	ArrivalID string `json:"arrivalID"`
	Message   string `json:"message"`
}

type leadResponse struct {
	Status  string `json:"status"`
	LeadID  string `json:"leadID"`
	Message string `json:"message"`
}

type offersResponse struct {
	ClickADs []models.Offer `json:"clickADs"`
}

func NewClient(cfg Config, log logger.Logger, tracer trace.Tracer) *Client {
	if tracer == nil {
		tracer = noop.NewTracerProvider().Tracer("leadservice")
	}
	if log == nil {
		log = logger.NewNoOpLogger()
	}
	return &Client{
		cfg:    cfg,
		http:   httpclient.NewClient(cfg.Timeout, cfg.MaxRetries),
		logger: log.WithFields(map[string]interface{}{"component": "leadservice", "mode": cfg.Mode}),
		tracer: tracer,
		now:    time.Now,
	}
}

// WithHTTPClient replaces the outbound client; tests point it at httptest servers.
func (c *Client) WithHTTPClient(hc *httpclient.Client) *Client {
	c.http = hc
	return c
}

func (c *Client) SiteID() string          { return c.cfg.SiteID }
func (c *Client) DefaultSourceID() string { return c.cfg.DefaultSourceID }
func (c *Client) live() bool              { return c.cfg.Mode == "live" }

func (c *Client) endpoint(path string) string {
	return strings.TrimRight(c.cfg.BaseURL, "/") + path
}

func (c *Client) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return c.tracer.Start(ctx, name, trace.WithAttributes(attribute.String("leadservice.mode", c.cfg.Mode)))
}

func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}

// CreateArrival registers a visitor arrival and returns the arrival id.
func (c *Client) CreateArrival(ctx context.Context, payload *models.ArrivalPayload) (id string, err error) {
	ctx, span := c.startSpan(ctx, "leadservice.arrival_request")
	defer func() { endSpan(span, err) }()

	if !c.live() {
		id = newID("arr", c.now())
		c.logger.Debug("arrival created", map[string]interface{}{
			"arrivalId":  id,
			"verticalId": payload.VerticalID,
			"sourceId":   payload.SourceID,
		})
		return id, nil
	}

	var resp arrivalResponse
	if err = c.http.PostJSON(ctx, c.endpoint(arrivalPath), payload, &resp); err != nil {
		return "", c.transportError(err)
	}
	if resp.Status != "success" {
		return "", upstreamError(resp.Message, "Failed to create arrival")
	}
	return resp.ArrivalID, nil
}

// SubmitLead forwards a completed lead and returns the lead id.
func (c *Client) SubmitLead(ctx context.Context, payload *models.LeadPayload) (id string, err error) {
	ctx, span := c.startSpan(ctx, "leadservice.lead_request")
	span.SetAttributes(attribute.String("lead.type", payload.Type))
	defer func() { endSpan(span, err) }()

	if !c.live() {
		id = newID("lead", c.now())
		c.logger.Info("lead accepted", map[string]interface{}{
			"leadId":    id,
			"type":      payload.Type,
			"arrivalId": payload.ArrivalID,
		})
		return id, nil
	}

	var resp leadResponse
	if err = c.http.PostJSON(ctx, c.endpoint(leadPath), payload, &resp); err != nil {
		return "", c.transportError(err)
	}
	if resp.Status != "success" {
		return "", upstreamError(resp.Message, "Failed to submit lead")
	}
	return resp.LeadID, nil
}

// FetchOffers returns the thank-you page ads for an arrival.
func (c *Client) FetchOffers(ctx context.Context, arrivalID string, formType models.FormType) (offers []models.Offer, err error) {
	ctx, span := c.startSpan(ctx, "leadservice.click_request")
	defer func() { endSpan(span, err) }()

	if !c.live() {
		return DemoOffers(formType), nil
	}

	var resp offersResponse
	if err = c.http.GetJSON(ctx, c.endpoint(offersPath+url.PathEscape(arrivalID)), &resp); err != nil {
		return nil, c.transportError(err)
	}
	return resp.ClickADs, nil
}

func (c *Client) transportError(err error) error {
	var statusErr *httpclient.StatusError
	if errors.As(err, &statusErr) {
		return apperrors.NewLeadServiceUnavailableError(statusErr.StatusCode, statusErr.Body)
	}
	return apperrors.NewExternalServiceError("leadservice", err)
}

func upstreamError(message, fallback string) error {
	if message == "" {
		message = fallback
	}
	return fmt.Errorf("lead service rejected request: %s", message)
}
