package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/pb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		code ErrorCode
		want int
	}{
		{ErrCodeValidationFailed, http.StatusBadRequest},
		{ErrCodeInvalidZip, http.StatusBadRequest},
		{ErrCodeMissingRequiredFields, http.StatusBadRequest},
		{ErrCodeMissingArrivalID, http.StatusBadRequest},
		{ErrCodeContentNotFound, http.StatusNotFound},
		{ErrCodeSubmissionInProgress, http.StatusConflict},
		{"TIMEOUT_ERROR", http.StatusGatewayTimeout},
		{ErrCodeLeadSubmitFailed, http.StatusInternalServerError},
		{ErrCodeArrivalCreateFailed, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(string(tt.code), func(t *testing.T) {
			assert.Equal(t, tt.want, HTTPStatus(tt.code))
		})
	}
}

func TestConvertToBPMNError(t *testing.T) {
	t.Run("retryable journal failure keeps retries", func(t *testing.T) {
		bpmn := ConvertToBPMNError(NewJournalInsertFailedError(fmt.Errorf("conn reset")))
		assert.Equal(t, "JOURNAL_INSERT_FAILED", bpmn.Code)
		assert.Equal(t, 3, bpmn.Retries)
		assert.True(t, bpmn.Retryable)
		assert.Equal(t, "JOURNAL_INSERT_FAILED", bpmn.ToErrorVariables()["originalErrorCode"])
	})

	t.Run("non retryable error gets zero retries", func(t *testing.T) {
		bpmn := ConvertToBPMNError(NewDuplicateDeliveryError("lead_1"))
		assert.Equal(t, 0, bpmn.Retries)
		assert.False(t, bpmn.Retryable)
	})

	t.Run("4xx from lead service is not retried", func(t *testing.T) {
		bpmn := ConvertToBPMNError(NewLeadServiceUnavailableError(422, "bad"))
		assert.Equal(t, 0, bpmn.Retries)
	})
}

func TestAsAndCodeOf(t *testing.T) {
	wrapped := fmt.Errorf("submit: %w", NewLeadSubmitFailedError(stderrors.New("boom")))

	stdErr, ok := As(wrapped)
	require.True(t, ok)
	assert.Equal(t, ErrCodeLeadSubmitFailed, stdErr.Code)
	assert.Equal(t, "LEAD_SUBMIT_FAILED", CodeOf(wrapped))
	assert.Equal(t, "UNKNOWN_ERROR", CodeOf(stderrors.New("plain")))
}

func TestNormalize(t *testing.T) {
	stdErr := Normalize(stderrors.New("plain failure"))
	assert.Equal(t, ErrorCode("INTERNAL_ERROR"), stdErr.Code)
	assert.Equal(t, "plain failure", stdErr.Details)

	original := NewNotificationSendFailedError("ses", stderrors.New("throttled"))
	assert.Same(t, original, Normalize(original))
}

func TestRemainingRetries(t *testing.T) {
	job := func(retries int32) entities.Job {
		return entities.Job{ActivatedJob: &pb.ActivatedJob{Retries: retries}}
	}

	assert.Equal(t, int32(1), remainingRetries(job(2), 3))
	assert.Equal(t, int32(2), remainingRetries(job(5), 3))
	assert.Equal(t, int32(2), remainingRetries(job(3), 3))
}

func TestGetErrorCategory(t *testing.T) {
	assert.Equal(t, "VALIDATION", GetErrorCategory(ErrCodeInvalidZip))
	assert.Equal(t, "LEAD_SERVICE", GetErrorCategory(ErrCodeArrivalCreateFailed))
	assert.Equal(t, "SESSION", GetErrorCategory(ErrCodeSessionStoreFailed))
	assert.Equal(t, "DATABASE", GetErrorCategory(ErrCodeJournalInsertFailed))
	assert.Equal(t, "NOTIFICATION", GetErrorCategory(ErrCodeNotificationSendFailed))
	assert.Equal(t, "CONTENT", GetErrorCategory(ErrCodeSearchQueryFailed))
	assert.Equal(t, "OTHER", GetErrorCategory("SOMETHING"))
}

func TestWithMetadata(t *testing.T) {
	err := NewInvalidZipError("123").WithMetadata("source", "geocode")
	assert.Equal(t, "geocode", err.Metadata["source"])
	assert.Contains(t, err.Error(), "INVALID_ZIP")
}
