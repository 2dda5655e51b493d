// internal/endpoints/endpoint.go

// Package endpoints holds what the JSON API handlers share: the error body, request binding
// against a JSON schema, client IP resolution and the per-endpoint metrics.
package endpoints

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	apperrors "healthquote-funnel/internal/common/errors"
	"healthquote-funnel/internal/common/metrics"
	"healthquote-funnel/internal/common/validation"

	"github.com/gin-gonic/gin"
)

// maxBodyBytes bounds request bodies read by BindJSON.
const maxBodyBytes = 1 << 20

// ErrorBody is the failure shape every API route answers with.
type ErrorBody struct {
	Success bool     `json:"success"`
	Error   string   `json:"error"`
	Code    string   `json:"code,omitempty"`
	Details []string `json:"details,omitempty"`
}

// Describe picks the status and message the API answers err with. StandardErrors choose their
// own; server-side failures and plain errors report fallback.
func Describe(err error, fallback string) (int, string) {
	stdErr, ok := apperrors.As(err)
	if !ok {
		return http.StatusInternalServerError, fallback
	}
	status := apperrors.HTTPStatus(stdErr.Code)
	if status >= http.StatusInternalServerError && fallback != "" {
		return status, fallback
	}
	return status, stdErr.Message
}

// Fail writes err as an ErrorBody.
func Fail(c *gin.Context, err error, fallback string) {
	status, msg := Describe(err, fallback)
	body := ErrorBody{Error: msg, Code: "INTERNAL_ERROR"}
	if stdErr, ok := apperrors.As(err); ok {
		body.Code = string(stdErr.Code)
		if details, ok := stdErr.Metadata["errors"].([]string); ok {
			body.Details = details
		}
	}
	c.JSON(status, body)
}

// BindJSON validates the request body against schema and decodes it into dst.
func BindJSON(c *gin.Context, schema validation.JSONSchema, dst interface{}) error {
	body, err := io.ReadAll(io.LimitReader(c.Request.Body, maxBodyBytes))
	if err != nil {
		return apperrors.NewValidationFailedError("unreadable request body")
	}

	result, err := validation.ValidateJSON(body, schema)
	if err != nil {
		return err
	}
	if !result.Valid {
		messages := result.GetErrorMessages()
		return apperrors.NewValidationFailedError(strings.Join(messages, "; ")).
			WithMetadata("errors", messages)
	}

	if err := json.Unmarshal(body, dst); err != nil {
		return apperrors.NewValidationFailedError(err.Error())
	}
	return nil
}

// ClientIP prefers the proxy headers the site runs behind: the first X-Forwarded-For entry,
// then X-Real-IP, then CF-Connecting-IP.
func ClientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		if first := strings.TrimSpace(strings.Split(fwd, ",")[0]); first != "" {
			return first
		}
	}
	if ip := r.Header.Get("X-Real-IP"); ip != "" {
		return ip
	}
	if ip := r.Header.Get("CF-Connecting-IP"); ip != "" {
		return ip
	}
	return "127.0.0.1"
}

// Observe counts one call to taskType as active and returns the function that records its
// outcome.
func Observe(taskType string) func(err error) {
	start := time.Now()
	metrics.WorkerJobsActive.WithLabelValues(taskType).Inc()
	return func(err error) {
		metrics.WorkerJobsActive.WithLabelValues(taskType).Dec()
		if err != nil {
			metrics.WorkerJobsFailed.WithLabelValues(taskType, apperrors.CodeOf(err)).Inc()
			return
		}
		metrics.WorkerJobsCompleted.WithLabelValues(taskType).Inc()
		metrics.WorkerJobDuration.WithLabelValues(taskType).Observe(time.Since(start).Seconds())
	}
}

func IntPtr(i int) *int { return &i }
