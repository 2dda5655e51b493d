// internal/common/errors/errors.go

// Package errors provides the standardized error type shared by the funnel API, the wizard and the
// lead follow-up workers.
package errors

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// ==========================
// 1. Standard Error Types
// ==========================

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	ErrCodeValidationFailed      ErrorCode = "VALIDATION_FAILED"
	ErrCodeInvalidZip            ErrorCode = "INVALID_ZIP"
	ErrCodeMissingRequiredFields ErrorCode = "MISSING_REQUIRED_FIELDS"
	ErrCodeMissingArrivalID      ErrorCode = "MISSING_ARRIVAL_ID"
	ErrCodeInvalidFormType       ErrorCode = "INVALID_FORM_TYPE"

	ErrCodeArrivalCreateFailed    ErrorCode = "ARRIVAL_CREATE_FAILED"
	ErrCodeLeadSubmitFailed       ErrorCode = "LEAD_SUBMIT_FAILED"
	ErrCodeOffersFetchFailed      ErrorCode = "OFFERS_FETCH_FAILED"
	ErrCodeLeadServiceUnavailable ErrorCode = "LEAD_SERVICE_UNAVAILABLE"
	ErrCodeSubmissionInProgress   ErrorCode = "SUBMISSION_IN_PROGRESS"

	ErrCodeSessionStoreFailed ErrorCode = "SESSION_STORE_FAILED"

	ErrCodeJournalInsertFailed    ErrorCode = "JOURNAL_INSERT_FAILED"
	ErrCodeDuplicateDelivery      ErrorCode = "DUPLICATE_DELIVERY"
	ErrCodeNotificationSendFailed ErrorCode = "NOTIFICATION_SEND_FAILED"

	ErrCodeSearchQueryFailed ErrorCode = "SEARCH_QUERY_FAILED"
	ErrCodeContentNotFound   ErrorCode = "CONTENT_NOT_FOUND"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

// WithMetadata attaches a key/value pair and returns the same error.
func (e *StandardError) WithMetadata(key string, value interface{}) *StandardError {
	if e.Metadata == nil {
		e.Metadata = make(map[string]interface{})
	}
	e.Metadata[key] = value
	return e
}

// As extracts a *StandardError from an error chain.
func As(err error) (*StandardError, bool) {
	var stdErr *StandardError
	if errors.As(err, &stdErr) {
		return stdErr, true
	}
	return nil, false
}

// CodeOf returns the error code of err, or UNKNOWN_ERROR.
func CodeOf(err error) string {
	if stdErr, ok := As(err); ok {
		return string(stdErr.Code)
	}
	return "UNKNOWN_ERROR"
}

// ==========================
// 2. BPMN Error Integration
// ==========================

// BPMNError represents an error that can be thrown to the Zeebe workflow engine.
type BPMNError struct {
	Code           string                 `json:"code"`
	Message        string                 `json:"message"`
	Details        string                 `json:"details,omitempty"`
	Retryable      bool                   `json:"retryable"`
	Retries        int                    `json:"retries"`
	ErrorVariables map[string]interface{} `json:"errorVariables,omitempty"`
}

func (e *BPMNError) Error() string {
	return fmt.Sprintf("BPMNError[%s]: %s", e.Code, e.Message)
}

// ToErrorVariables returns a map suitable for job fail/throw variables.
func (e *BPMNError) ToErrorVariables() map[string]interface{} {
	vars := map[string]interface{}{
		"errorCode":    e.Code,
		"errorMessage": e.Message,
		"errorDetails": e.Details,
		"retryable":    e.Retryable,
	}
	for k, v := range e.ErrorVariables {
		vars[k] = v
	}
	return vars
}

// ==========================
// 3. Error Constructors
// ==========================

func newError(code ErrorCode, message, details string, retryable bool) *StandardError {
	return &StandardError{
		Code:      code,
		Message:   message,
		Details:   details,
		Retryable: retryable,
		Timestamp: time.Now().UTC(),
	}
}

func NewValidationFailedError(details string) *StandardError {
	return newError(ErrCodeValidationFailed, "Input validation failed", details, false)
}

func NewInvalidZipError(zip string) *StandardError {
	return newError(ErrCodeInvalidZip, "Invalid ZIP code", fmt.Sprintf("zip: %q", zip), false)
}

func NewMissingRequiredFieldsError(fields []string) *StandardError {
	return newError(ErrCodeMissingRequiredFields, "Missing required fields",
		fmt.Sprintf("missing: %s", strings.Join(fields, ", ")), false)
}

func NewMissingArrivalIDError() *StandardError {
	return newError(ErrCodeMissingArrivalID, "Missing arrival ID", "", false)
}

func NewInvalidFormTypeError(formType string) *StandardError {
	return newError(ErrCodeInvalidFormType, "Unknown form type", fmt.Sprintf("formType: %q", formType), false)
}

// NewArrivalCreateFailedError wraps a lead-service failure during arrival registration.
func NewArrivalCreateFailedError(err error) *StandardError {
	return newError(ErrCodeArrivalCreateFailed, "Failed to create arrival", err.Error(), true)
}

// NewLeadSubmitFailedError wraps a lead-service failure during lead submission.
func NewLeadSubmitFailedError(err error) *StandardError {
	return newError(ErrCodeLeadSubmitFailed, "Failed to submit lead", err.Error(), true)
}

func NewOffersFetchFailedError(err error) *StandardError {
	return newError(ErrCodeOffersFetchFailed, "Failed to fetch offers", err.Error(), true)
}

func NewLeadServiceUnavailableError(status int, body string) *StandardError {
	return newError(ErrCodeLeadServiceUnavailable, "Lead service unavailable",
		fmt.Sprintf("status %d: %s", status, body), status >= 500)
}

func NewSubmissionInProgressError() *StandardError {
	return newError(ErrCodeSubmissionInProgress, "Submission already in progress", "", false)
}

func NewSessionStoreFailedError(op string, err error) *StandardError {
	return newError(ErrCodeSessionStoreFailed, "Session store operation failed",
		fmt.Sprintf("op: %s, error: %s", op, err.Error()), true)
}

func NewJournalInsertFailedError(err error) *StandardError {
	return newError(ErrCodeJournalInsertFailed, "Lead journal insert failed", err.Error(), true)
}

func NewDuplicateDeliveryError(leadID string) *StandardError {
	return newError(ErrCodeDuplicateDelivery, "Lead delivery already journaled", fmt.Sprintf("leadId: %s", leadID), false)
}

func NewNotificationSendFailedError(channel string, err error) *StandardError {
	return newError(ErrCodeNotificationSendFailed, "Notification delivery failed",
		fmt.Sprintf("channel: %s, error: %s", channel, err.Error()), true)
}

func NewSearchQueryFailedError(err error) *StandardError {
	return newError(ErrCodeSearchQueryFailed, "Search query failed", err.Error(), true)
}

func NewContentNotFoundError(slug string) *StandardError {
	return newError(ErrCodeContentNotFound, "Page not found", fmt.Sprintf("slug: %s", slug), false)
}

// Generic constructors

func NewBusinessRuleError(message, details string) *StandardError {
	return newError("BUSINESS_RULE_VIOLATION", message, details, false)
}

func NewExternalServiceError(service string, err error) *StandardError {
	return newError("EXTERNAL_SERVICE_ERROR", fmt.Sprintf("External service '%s' error", service), err.Error(), true)
}

func NewTimeoutError(service string, err error) *StandardError {
	return newError("TIMEOUT_ERROR", fmt.Sprintf("Service '%s' timeout", service), err.Error(), true)
}

func NewResourceNotFoundError(service, details string) *StandardError {
	return newError("RESOURCE_NOT_FOUND", fmt.Sprintf("Resource not found in %s", service), details, false)
}

// ==========================
// 4. Transport mappings
// ==========================

// HTTPStatus maps an error code onto the status the API answers with.
func HTTPStatus(code ErrorCode) int {
	switch code {
	case ErrCodeValidationFailed,
		ErrCodeInvalidZip,
		ErrCodeMissingRequiredFields,
		ErrCodeMissingArrivalID,
		ErrCodeInvalidFormType:
		return http.StatusBadRequest
	case ErrCodeContentNotFound, "RESOURCE_NOT_FOUND":
		return http.StatusNotFound
	case ErrCodeSubmissionInProgress:
		return http.StatusConflict
	case "TIMEOUT_ERROR":
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

// GetRetryCount returns the recommended job retry count for a code.
func GetRetryCount(code ErrorCode) int {
	switch code {
	case ErrCodeJournalInsertFailed,
		ErrCodeNotificationSendFailed,
		ErrCodeLeadServiceUnavailable,
		"EXTERNAL_SERVICE_ERROR":
		return 3
	case "TIMEOUT_ERROR":
		return 2
	default:
		return 0
	}
}

// ConvertToBPMNError converts a StandardError for the workflow engine.
func ConvertToBPMNError(stdErr *StandardError) *BPMNError {
	retries := GetRetryCount(stdErr.Code)
	if !stdErr.Retryable {
		retries = 0
	}

	return &BPMNError{
		Code:      string(stdErr.Code),
		Message:   stdErr.Message,
		Details:   stdErr.Details,
		Retryable: stdErr.Retryable,
		Retries:   retries,
		ErrorVariables: map[string]interface{}{
			"originalErrorCode": string(stdErr.Code),
			"timestamp":         stdErr.Timestamp.Format(time.RFC3339),
		},
	}
}

// IsRetryableErrorCode checks if an error code is retryable.
func IsRetryableErrorCode(code ErrorCode) bool {
	return GetRetryCount(code) > 0
}

// GetErrorCategory buckets a code for dashboards.
func GetErrorCategory(code ErrorCode) string {
	codeStr := string(code)
	switch {
	case strings.Contains(codeStr, "VALIDATION") || strings.Contains(codeStr, "INVALID") || strings.Contains(codeStr, "MISSING"):
		return "VALIDATION"
	case strings.Contains(codeStr, "ARRIVAL") || strings.Contains(codeStr, "LEAD") || strings.Contains(codeStr, "OFFERS") || strings.Contains(codeStr, "SUBMISSION"):
		return "LEAD_SERVICE"
	case strings.Contains(codeStr, "SESSION"):
		return "SESSION"
	case strings.Contains(codeStr, "JOURNAL") || strings.Contains(codeStr, "DELIVERY"):
		return "DATABASE"
	case strings.Contains(codeStr, "NOTIFICATION"):
		return "NOTIFICATION"
	case strings.Contains(codeStr, "SEARCH") || strings.Contains(codeStr, "CONTENT"):
		return "CONTENT"
	default:
		return "OTHER"
	}
}
