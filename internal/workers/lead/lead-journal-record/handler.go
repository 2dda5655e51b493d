// internal/workers/lead/lead-journal-record/handler.go

// Package leadjournalrecord records a delivered lead in the delivery journal. The journal holds
// ids, status and timestamps only; no contact data reaches it.
package leadjournalrecord

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	apperrors "healthquote-funnel/internal/common/errors"
	"healthquote-funnel/internal/common/logger"
	"healthquote-funnel/internal/common/metrics"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/google/uuid"
)

const (
	TaskType   = "lead.journal.record"
	workerName = "lead-journal-record"
)

type Handler struct {
	config       *Config
	db           *sql.DB
	logger       logger.Logger
	errorHandler *apperrors.JobErrorHandler
	now          func() time.Time
}

func NewHandler(config *Config, db *sql.DB, log logger.Logger) *Handler {
	if config == nil {
		config = DefaultConfig()
	}
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:       config,
		db:           db,
		logger:       log,
		errorHandler: apperrors.NewJobErrorHandler(log),
		now:          time.Now,
	}
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) {
	start := time.Now()
	metrics.WorkerJobsActive.WithLabelValues(TaskType).Inc()
	defer metrics.WorkerJobsActive.WithLabelValues(TaskType).Dec()

	h.logger.Info("processing job", map[string]interface{}{
		"jobKey":      job.Key,
		"workflowKey": job.ProcessInstanceKey,
	})

	ctx, cancel := context.WithTimeout(context.Background(), h.config.Timeout)
	defer cancel()

	var input Input
	if err := json.Unmarshal([]byte(job.Variables), &input); err != nil {
		h.fail(ctx, client, job, apperrors.NewValidationFailedError(fmt.Sprintf("parse input: %v", err)))
		return
	}

	output, err := h.Execute(ctx, &input)
	if err != nil {
		h.fail(ctx, client, job, err)
		return
	}

	h.completeJob(ctx, client, job, output)
	metrics.WorkerJobsCompleted.WithLabelValues(TaskType).Inc()
	metrics.WorkerJobDuration.WithLabelValues(TaskType).Observe(time.Since(start).Seconds())
}

// Execute inserts one lead_deliveries row and a best-effort audit_log entry.
func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	if input.LeadID == "" {
		return nil, apperrors.NewValidationFailedError("leadId is required")
	}
	recordedAt := h.now().UTC()
	submittedAt := recordedAt
	if input.SubmittedAt != "" {
		t, err := time.Parse(time.RFC3339, input.SubmittedAt)
		if err != nil {
			return nil, apperrors.NewValidationFailedError(fmt.Sprintf("submittedAt: %v", err))
		}
		submittedAt = t.UTC()
	}

	var exists bool
	err := h.db.QueryRowContext(ctx, `
		SELECT EXISTS(
			SELECT 1 FROM lead_deliveries WHERE lead_id = $1
		)`, input.LeadID).Scan(&exists)
	if err != nil {
		return nil, apperrors.NewJournalInsertFailedError(fmt.Errorf("duplicate check failed: %w", err))
	}
	if exists {
		return nil, apperrors.NewDuplicateDeliveryError(input.LeadID)
	}

	deliveryID := uuid.New().String()
	_, err = h.db.ExecContext(ctx, `
		INSERT INTO lead_deliveries (
			id, lead_id, arrival_id, form_type, city, state,
			status, submitted_at, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		deliveryID,
		input.LeadID,
		input.ArrivalID,
		input.FormType,
		input.City,
		input.State,
		StatusDelivered,
		submittedAt,
		recordedAt,
	)
	if err != nil {
		return nil, apperrors.NewJournalInsertFailedError(fmt.Errorf("insert failed: %w", err))
	}

	h.audit(ctx, deliveryID, input, recordedAt)

	h.logger.Info("lead delivery recorded", map[string]interface{}{
		"deliveryId": deliveryID,
		"leadId":     input.LeadID,
		"formType":   input.FormType,
	})

	return &Output{
		DeliveryID:     deliveryID,
		DeliveryStatus: StatusDelivered,
		RecordedAt:     recordedAt.Format(time.RFC3339),
	}, nil
}

// audit failures are logged and otherwise ignored.
func (h *Handler) audit(ctx context.Context, deliveryID string, input *Input, at time.Time) {
	details, err := json.Marshal(map[string]interface{}{
		"leadId":    input.LeadID,
		"arrivalId": input.ArrivalID,
		"formType":  input.FormType,
	})
	if err != nil {
		details = []byte("{}")
	}

	_, err = h.db.ExecContext(ctx, `
		INSERT INTO audit_log (event_type, resource_type, resource_id, details, created_at)
		VALUES ($1, $2, $3, $4, $5)`,
		"lead_delivered",
		"lead_delivery",
		deliveryID,
		details,
		at,
	)
	if err != nil {
		h.logger.Warn("audit log insert failed", map[string]interface{}{
			"error":      err.Error(),
			"deliveryId": deliveryID,
		})
	}
}

func (h *Handler) fail(ctx context.Context, client worker.JobClient, job entities.Job, err error) {
	metrics.WorkerJobsFailed.WithLabelValues(TaskType, apperrors.CodeOf(err)).Inc()
	h.errorHandler.HandleJobError(ctx, client, job, err)
}

func (h *Handler) completeJob(ctx context.Context, client worker.JobClient, job entities.Job, output *Output) {
	cmd, err := client.NewCompleteJobCommand().
		JobKey(job.Key).
		VariablesFromObject(output)
	if err != nil {
		h.logger.Error("failed to create complete job command", map[string]interface{}{
			"error": err.Error(),
		})
		return
	}
	if _, err := cmd.Send(ctx); err != nil {
		h.logger.Error("failed to send complete job command", map[string]interface{}{
			"error": err.Error(),
		})
		return
	}
	h.logger.Info("job completed successfully", map[string]interface{}{"jobKey": job.Key})
}

func (h *Handler) GetTaskType() string { return TaskType }

func (h *Handler) IsEnabled() bool { return h.config.Enabled }
