package wizard

import (
	"context"
	"sync"
	"time"

	"healthquote-funnel/internal/common/logger"
	"healthquote-funnel/internal/common/metrics"
	"healthquote-funnel/internal/models"
	"healthquote-funnel/internal/session"
)

// ArrivalRequest carries the attribution sent when a visitor lands on a wizard.
type ArrivalRequest struct {
	FormType   models.FormType
	Campaign   string
	Term       string
	Referrer   string
	LandingURL string
	IPAddress  string
	UserAgent  string
}

// ArrivalRegistrar registers an arrival with the lead service. ok is false on any failure.
type ArrivalRegistrar interface {
	RegisterArrival(ctx context.Context, req ArrivalRequest) (arrivalID string, ok bool)
}

// ArrivalTracker registers each session's arrival once per variant, in the background.
type ArrivalTracker struct {
	registrar ArrivalRegistrar
	cache     session.Cache
	timeout   time.Duration
	logger    logger.Logger

	wg sync.WaitGroup
}

func NewArrivalTracker(registrar ArrivalRegistrar, cache session.Cache, timeout time.Duration, log logger.Logger) *ArrivalTracker {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	if log == nil {
		log = logger.NewNoOpLogger()
	}
	return &ArrivalTracker{registrar: registrar, cache: cache, timeout: timeout, logger: log}
}

// Track starts a registration unless the session already has a handle or another request
// holds the claim. It returns true when a registration was started.
func (t *ArrivalTracker) Track(ctx context.Context, sessionID string, v *Variant, req ArrivalRequest) bool {
	if t.Handle(ctx, sessionID, v) != "" {
		return false
	}

	// the claim outlives the call so a slow registration is not duplicated
	claimed, err := t.cache.SetNX(ctx, sessionID, v.arrivalClaimKey(), "1", 2*t.timeout)
	if err != nil {
		metrics.SessionStoreFailures.WithLabelValues("arrival_claim").Inc()
		return false
	}
	if !claimed {
		return false
	}

	req.FormType = v.FormType
	bg := context.WithoutCancel(ctx)

	t.wg.Add(1)
	go func() {
		defer t.wg.Done()
		t.register(bg, sessionID, v, req)
	}()
	return true
}

func (t *ArrivalTracker) register(ctx context.Context, sessionID string, v *Variant, req ArrivalRequest) {
	callCtx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()

	id, ok := t.registrar.RegisterArrival(callCtx, req)
	if !ok || id == "" {
		metrics.ArrivalOutcomes.WithLabelValues(string(v.FormType), "failed").Inc()
		// release so a later visit can try again
		_ = t.cache.Delete(ctx, sessionID, v.arrivalClaimKey())
		return
	}

	if err := t.cache.Set(ctx, sessionID, v.arrivalIDKey(), id); err != nil {
		metrics.SessionStoreFailures.WithLabelValues("arrival_store").Inc()
		t.logger.Warn("failed to store arrival id", map[string]interface{}{
			"formType": v.FormType,
			"error":    err.Error(),
		})
		_ = t.cache.Delete(ctx, sessionID, v.arrivalClaimKey())
		return
	}
	metrics.ArrivalOutcomes.WithLabelValues(string(v.FormType), "created").Inc()
}

// Handle returns the session's arrival id for v, or "".
func (t *ArrivalTracker) Handle(ctx context.Context, sessionID string, v *Variant) string {
	id, ok, err := t.cache.Get(ctx, sessionID, v.arrivalIDKey())
	if err != nil || !ok {
		return ""
	}
	return id
}

// Wait blocks until in-flight registrations finish.
func (t *ArrivalTracker) Wait() {
	t.wg.Wait()
}
