// internal/endpoints/lead/lead-submit/models.go

package leadsubmit

import (
	"context"

	"healthquote-funnel/internal/common/logger"
	"healthquote-funnel/internal/common/observability"
	"healthquote-funnel/internal/models"
)

// Request is the POST /api/lead/submit body.
type Request struct {
	FormType string                 `json:"formType"`
	FormData map[string]interface{} `json:"formData"`
}

type Input struct {
	FormType models.FormType
	FormData map[string]interface{}
}

type Output struct {
	Success   bool   `json:"success"`
	LeadID    string `json:"leadId"`
	ArrivalID string `json:"arrivalId"`
	City      string `json:"city"`
	State     string `json:"state"`
}

// LeadClient is the lead service call this endpoint proxies.
type LeadClient interface {
	SubmitLead(ctx context.Context, payload *models.LeadPayload) (string, error)
}

// ProcessStarter starts the follow-up workflow for an accepted lead.
type ProcessStarter interface {
	StartProcess(ctx context.Context, processID string, variables map[string]interface{}) (int64, error)
}

type ServiceDependencies struct {
	Client        LeadClient
	Processes     ProcessStarter
	Observability *observability.Observability
	Logger        logger.Logger
}
