// internal/endpoints/lead/lead-submit/service.go

package leadsubmit

import (
	"context"
	"time"

	apperrors "healthquote-funnel/internal/common/errors"
	"healthquote-funnel/internal/common/logger"
	"healthquote-funnel/internal/common/observability"
	"healthquote-funnel/internal/models"
)

const (
	fallbackCity  = "Your City"
	fallbackState = "Your State"
)

type Service struct {
	config    *Config
	client    LeadClient
	processes ProcessStarter
	obs       *observability.Observability
	logger    logger.Logger
	now       func() time.Time
}

func NewService(deps ServiceDependencies, config *Config) *Service {
	return &Service{
		config:    config,
		client:    deps.Client,
		processes: deps.Processes,
		obs:       deps.Observability,
		logger:    deps.Logger,
		now:       time.Now,
	}
}

func (s *Service) Execute(ctx context.Context, input *Input) (*Output, error) {
	if !input.FormType.Valid() {
		return nil, apperrors.NewInvalidFormTypeError(string(input.FormType))
	}
	if missing := missingFields(input.FormData); len(missing) > 0 {
		return nil, apperrors.NewMissingRequiredFieldsError(missing)
	}

	payload := BuildPayload(input.FormType, input.FormData, s.config.DefaultSourceID)

	leadID, err := s.client.SubmitLead(ctx, payload)
	if err != nil {
		s.logger.Error("Lead submission failed", map[string]interface{}{
			"type":      payload.Type,
			"arrivalId": payload.ArrivalID,
			"error":     err.Error(),
		})
		if stdErr, ok := apperrors.As(err); ok {
			return nil, stdErr
		}
		return nil, apperrors.NewLeadSubmitFailedError(err)
	}

	output := &Output{
		Success:   true,
		LeadID:    leadID,
		ArrivalID: payload.ArrivalID,
		City:      str(input.FormData, "city"),
		State:     str(input.FormData, "state"),
	}
	if output.City == "" {
		output.City = fallbackCity
	}
	if output.State == "" {
		output.State = fallbackState
	}

	s.obs.RecordLeadSubmitted(ctx, string(input.FormType))
	s.logger.Info("Lead submitted", map[string]interface{}{
		"leadId":    leadID,
		"type":      payload.Type,
		"arrivalId": payload.ArrivalID,
	})

	s.startFollowup(ctx, input.FormType, output)
	return output, nil
}

// startFollowup hands the accepted lead to the workflow engine. Failure never fails the
// submission.
func (s *Service) startFollowup(ctx context.Context, formType models.FormType, output *Output) {
	if !s.config.StartFollowup || s.processes == nil {
		return
	}

	followup := models.LeadFollowup{
		LeadID:      output.LeadID,
		ArrivalID:   output.ArrivalID,
		FormType:    string(formType),
		City:        output.City,
		State:       output.State,
		SubmittedAt: s.now().UTC().Format(time.RFC3339),
	}

	key, err := s.processes.StartProcess(ctx, s.config.ProcessID, map[string]interface{}{
		"leadId":      followup.LeadID,
		"arrivalId":   followup.ArrivalID,
		"formType":    followup.FormType,
		"city":        followup.City,
		"state":       followup.State,
		"submittedAt": followup.SubmittedAt,
	})
	if err != nil {
		s.logger.Warn("Lead follow-up process not started", map[string]interface{}{
			"leadId":    output.LeadID,
			"processId": s.config.ProcessID,
			"error":     err.Error(),
		})
		return
	}

	s.logger.Info("Lead follow-up process started", map[string]interface{}{
		"leadId":             output.LeadID,
		"processInstanceKey": key,
	})
}
