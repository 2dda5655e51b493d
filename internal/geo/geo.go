// Package geo resolves US ZIP codes to a city and state from a fixed table, with an optional
// Redis cache in front.
package geo

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	apperrors "healthquote-funnel/internal/common/errors"
	"healthquote-funnel/internal/common/logger"
	"healthquote-funnel/internal/common/metrics"
	"healthquote-funnel/internal/common/validation"
	"healthquote-funnel/internal/models"

	"github.com/redis/go-redis/v9"
)

// Precision says how a location was found.
type Precision string

const (
	PrecisionExact    Precision = "exact"
	PrecisionArea     Precision = "area"
	PrecisionState    Precision = "state"
	PrecisionFallback Precision = "fallback"
)

const placeholderCity = "Your City"

// Resolve looks a ZIP up in the table. Any valid five-digit ZIP resolves to something; only
// malformed input fails.
func Resolve(zip string) (models.Location, Precision, error) {
	if !validation.ValidateZip(zip) {
		return models.Location{}, "", apperrors.NewInvalidZipError(zip)
	}
	if loc, ok := zipTable[zip]; ok {
		return loc, PrecisionExact, nil
	}
	if loc, ok := areaIndex[zip[:3]]; ok {
		return loc, PrecisionArea, nil
	}
	if loc, ok := stateByFirstDigit[zip[0]]; ok {
		loc.City = placeholderCity
		return loc, PrecisionState, nil
	}
	return models.Location{City: placeholderCity, State: "US", StateLong: "United States"}, PrecisionFallback, nil
}

type cachedLocation struct {
	models.Location
	Precision Precision `json:"precision"`
}

// Service resolves ZIPs and caches results in Redis when a client is configured.
type Service struct {
	redis  redis.Cmdable
	ttl    time.Duration
	logger logger.Logger
}

func NewService(client redis.Cmdable, ttl time.Duration, log logger.Logger) *Service {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	if log == nil {
		log = logger.NewNoOpLogger()
	}
	return &Service{redis: client, ttl: ttl, logger: log}
}

func cacheKey(zip string) string {
	return "hqh:geo:" + zip
}

// Lookup resolves zip. Cache failures are logged and bypassed.
func (s *Service) Lookup(ctx context.Context, zip string) (*models.Location, Precision, error) {
	if !validation.ValidateZip(zip) {
		return nil, "", apperrors.NewInvalidZipError(zip)
	}

	if s.redis != nil {
		raw, err := s.redis.Get(ctx, cacheKey(zip)).Result()
		switch {
		case err == nil:
			var hit cachedLocation
			if jsonErr := json.Unmarshal([]byte(raw), &hit); jsonErr == nil {
				metrics.GeocodeLookups.WithLabelValues(string(hit.Precision), "hit").Inc()
				return &hit.Location, hit.Precision, nil
			}
		case !errors.Is(err, redis.Nil):
			s.logger.Warn("geocode cache read failed", map[string]interface{}{"zip": zip, "error": err.Error()})
		}
	}

	loc, precision, err := Resolve(zip)
	if err != nil {
		return nil, "", err
	}

	cacheState := "none"
	if s.redis != nil {
		cacheState = "miss"
		data, _ := json.Marshal(cachedLocation{Location: loc, Precision: precision})
		if err := s.redis.Set(ctx, cacheKey(zip), string(data), s.ttl).Err(); err != nil {
			s.logger.Warn("geocode cache write failed", map[string]interface{}{"zip": zip, "error": err.Error()})
		}
	}
	metrics.GeocodeLookups.WithLabelValues(string(precision), cacheState).Inc()
	return &loc, precision, nil
}

// LookupZip is the best-effort form used by the wizard: any failure yields ok=false.
func (s *Service) LookupZip(ctx context.Context, zip string) (*models.Location, bool) {
	loc, _, err := s.Lookup(ctx, zip)
	if err != nil {
		return nil, false
	}
	return loc, true
}
