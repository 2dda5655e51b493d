package wizard

import (
	"context"
	"encoding/json"
	"fmt"

	apperrors "healthquote-funnel/internal/common/errors"
	"healthquote-funnel/internal/common/logger"
	"healthquote-funnel/internal/common/metrics"
	"healthquote-funnel/internal/session"
)

// FormState is the record and error map for one session and one variant. It is built per
// request around an injected session cache; nothing is shared between sessions.
type FormState struct {
	variant   *Variant
	cache     session.Cache
	sessionID string
	logger    logger.Logger

	record Record
	errors ErrorMap
}

func NewFormState(v *Variant, cache session.Cache, sessionID string, log logger.Logger) *FormState {
	if log == nil {
		log = logger.NewNoOpLogger()
	}
	return &FormState{
		variant:   v,
		cache:     cache,
		sessionID: sessionID,
		logger:    log,
		record:    v.Defaults(),
		errors:    ErrorMap{},
	}
}

func (s *FormState) Variant() *Variant { return s.variant }
func (s *FormState) SessionID() string { return s.sessionID }

// Initialize loads the persisted record, merged over the defaults. Missing, malformed or
// unreachable state leaves the defaults in place. It reports whether anything was restored.
func (s *FormState) Initialize(ctx context.Context) bool {
	s.record = s.variant.Defaults()
	s.errors = ErrorMap{}

	raw, ok, err := s.cache.Get(ctx, s.sessionID, s.variant.DataKey())
	if err != nil {
		s.storeFailed("load", err)
		return false
	}
	if !ok {
		return false
	}

	var saved map[string]interface{}
	if err := json.Unmarshal([]byte(raw), &saved); err != nil {
		s.logger.Warn("discarding malformed form state", map[string]interface{}{
			"formType": s.variant.FormType,
			"error":    err.Error(),
		})
		return false
	}

	for name, value := range saved {
		kind, known := s.variant.Kind(name)
		if !known {
			continue
		}
		if v, ok := checkKind(kind, value); ok {
			s.record[name] = v
		}
	}
	return true
}

// UpdateField sets one field and clears its error. Zip is kept as digits, phone in display
// format. Changing the household size resets the income bracket, whose options depend on it.
func (s *FormState) UpdateField(name string, value interface{}) error {
	kind, ok := s.variant.Kind(name)
	if !ok {
		return fmt.Errorf("unknown field %q for %s form", name, s.variant.FormType)
	}
	v, ok := checkKind(kind, value)
	if !ok {
		return fmt.Errorf("field %q expects a %s value, got %T", name, kind, value)
	}

	switch name {
	case "zip":
		v = NormalizeZip(v.(string))
	case "phone":
		v = FormatPhone(v.(string))
	case "household_size":
		if v.(string) != s.record.String("household_size") {
			if _, has := s.variant.Kind("household_income"); has {
				s.record["household_income"] = ""
			}
		}
	}

	s.record[name] = v
	delete(s.errors, name)
	return nil
}

// UpdateFields applies several updates, stopping at the first rejected one. The household
// size goes first so an income posted alongside it is not reset.
func (s *FormState) UpdateFields(fields map[string]interface{}) error {
	if size, ok := fields["household_size"]; ok {
		if err := s.UpdateField("household_size", size); err != nil {
			return err
		}
	}
	for name, value := range fields {
		if name == "household_size" {
			continue
		}
		if err := s.UpdateField(name, value); err != nil {
			return err
		}
	}
	return nil
}

// Persist writes the record to the session cache. Failures are logged and counted; the
// visitor keeps going with the in-memory record.
func (s *FormState) Persist(ctx context.Context) {
	data, err := json.Marshal(s.record)
	if err == nil {
		err = s.cache.Set(ctx, s.sessionID, s.variant.DataKey(), string(data))
	}
	if err != nil {
		s.storeFailed("persist", err)
	}
}

// Clear drops the variant's persisted record and arrival bookkeeping.
func (s *FormState) Clear(ctx context.Context) {
	v := s.variant
	if err := s.cache.Delete(ctx, s.sessionID, v.DataKey(), v.arrivalIDKey(), v.arrivalClaimKey(), v.trackingKey()); err != nil {
		s.storeFailed("clear", err)
	}
	s.record = v.Defaults()
}

func (s *FormState) storeFailed(op string, err error) {
	metrics.SessionStoreFailures.WithLabelValues(op).Inc()
	stdErr := apperrors.NewSessionStoreFailedError(op, err)
	s.logger.Warn(stdErr.Message, map[string]interface{}{
		"formType": s.variant.FormType,
		"code":     stdErr.Code,
		"details":  stdErr.Details,
	})
}

// CaptureTracking stores campaign, term and a prefilled zip from the landing URL. Only the
// first call per session has any effect.
func (s *FormState) CaptureTracking(ctx context.Context, campaign, term, zip string) bool {
	if campaign == "" && term == "" && zip == "" {
		return false
	}
	first, err := s.cache.SetNX(ctx, s.sessionID, s.variant.trackingKey(), "1", 0)
	if err != nil {
		metrics.SessionStoreFailures.WithLabelValues("tracking").Inc()
		return false
	}
	if !first {
		return false
	}
	s.record["campaign"] = campaign
	s.record["term"] = term
	if zip != "" {
		s.record["zip"] = NormalizeZip(zip)
	}
	return true
}

// Record returns a copy of the current answers.
func (s *FormState) Record() Record {
	return s.record.Clone()
}

func (s *FormState) Errors() ErrorMap {
	return s.errors.Clone()
}

func (s *FormState) SetErrors(errs ErrorMap) {
	if errs == nil {
		errs = ErrorMap{}
	}
	s.errors = errs.Clone()
}
