package wizard

import (
	"context"
	"net/url"
	"time"

	apperrors "healthquote-funnel/internal/common/errors"
	"healthquote-funnel/internal/common/logger"
	"healthquote-funnel/internal/common/metrics"
	"healthquote-funnel/internal/models"
	"healthquote-funnel/internal/session"
)

const (
	msgSubmitFailed    = "Submission failed"
	msgSubmitTransport = "An error occurred. Please try again."
)

// SubmitRequest is the lead submission body: the form type and the full record.
type SubmitRequest struct {
	FormType models.FormType `json:"formType"`
	FormData Record          `json:"formData"`
}

// SubmitResult mirrors the submission response.
type SubmitResult struct {
	Success   bool   `json:"success"`
	LeadID    string `json:"leadId,omitempty"`
	ArrivalID string `json:"arrivalId,omitempty"`
	City      string `json:"city,omitempty"`
	State     string `json:"state,omitempty"`
	Error     string `json:"error,omitempty"`
}

// LeadSubmitter posts a completed record. A returned error means the call itself failed; an
// unsuccessful result means the submission was rejected.
type LeadSubmitter interface {
	SubmitLead(ctx context.Context, req SubmitRequest) (*SubmitResult, error)
}

// SubmitOutcome is what the final-step action produced.
type SubmitOutcome struct {
	Submitted bool
	LeadID    string
	Redirect  string
}

// Submitter runs the final-step action shared by every variant.
type Submitter struct {
	leads    LeadSubmitter
	arrivals *ArrivalTracker
	cache    session.Cache
	lockTTL  time.Duration
	logger   logger.Logger
	now      func() time.Time
}

func NewSubmitter(leads LeadSubmitter, arrivals *ArrivalTracker, cache session.Cache, lockTTL time.Duration, log logger.Logger) *Submitter {
	if lockTTL <= 0 {
		lockTTL = 60 * time.Second
	}
	if log == nil {
		log = logger.NewNoOpLogger()
	}
	return &Submitter{
		leads:    leads,
		arrivals: arrivals,
		cache:    cache,
		lockTTL:  lockTTL,
		logger:   log,
		now:      time.Now,
	}
}

// Submit validates the last step and posts the record. Validation or submission failures are
// written into the state's error map and leave the record untouched. A concurrent submit for
// the same session returns a SUBMISSION_IN_PROGRESS error.
func (s *Submitter) Submit(ctx context.Context, state *FormState) (*SubmitOutcome, error) {
	v := state.Variant()
	rec := state.Record()
	variant := string(v.FormType)

	if errs := v.ValidateStep(rec, v.StepCount(), s.now()); len(errs) > 0 {
		state.SetErrors(errs)
		return &SubmitOutcome{}, nil
	}

	sid := state.SessionID()
	locked, err := s.cache.SetNX(ctx, sid, v.submitLockKey(), "1", s.lockTTL)
	if err != nil {
		// without the cache there is nothing to lock against; carry on
		metrics.SessionStoreFailures.WithLabelValues("submit_lock").Inc()
		s.logger.Warn("submit lock unavailable", map[string]interface{}{
			"formType": variant,
			"error":    err.Error(),
		})
	} else if !locked {
		metrics.LeadSubmissions.WithLabelValues(variant, "duplicate").Inc()
		return nil, apperrors.NewSubmissionInProgressError()
	}
	defer func() {
		_ = s.cache.Delete(context.WithoutCancel(ctx), sid, v.submitLockKey())
	}()

	handle := ""
	if s.arrivals != nil {
		handle = s.arrivals.Handle(ctx, sid, v)
	}
	if handle != "" {
		rec["arrival_id"] = handle
	}

	result, err := s.leads.SubmitLead(ctx, SubmitRequest{FormType: v.FormType, FormData: rec})
	if err != nil {
		metrics.LeadSubmissions.WithLabelValues(variant, "error").Inc()
		s.logger.Error("lead submission failed", map[string]interface{}{
			"formType": variant,
			"error":    err.Error(),
		})
		state.SetErrors(ErrorMap{SubmitErrorKey: msgSubmitTransport})
		return &SubmitOutcome{}, nil
	}
	if result == nil || !result.Success {
		msg := msgSubmitFailed
		if result != nil && result.Error != "" {
			msg = result.Error
		}
		metrics.LeadSubmissions.WithLabelValues(variant, "rejected").Inc()
		state.SetErrors(ErrorMap{SubmitErrorKey: msg})
		return &SubmitOutcome{}, nil
	}

	metrics.LeadSubmissions.WithLabelValues(variant, "success").Inc()
	state.Clear(ctx)

	return &SubmitOutcome{
		Submitted: true,
		LeadID:    result.LeadID,
		Redirect:  thankYouURL(v.FormType, rec, result, handle),
	}, nil
}

func thankYouURL(formType models.FormType, rec Record, result *SubmitResult, handle string) string {
	q := url.Values{}
	q.Set("type", string(formType))
	q.Set("arrivalId", firstNonEmpty(result.ArrivalID, handle))
	q.Set("leadId", result.LeadID)
	q.Set("city", firstNonEmpty(rec.String("city"), result.City))
	q.Set("state", firstNonEmpty(rec.String("state"), result.State))
	return "/thank-you/?" + q.Encode()
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
