// internal/workers/lead/lead-notify/handler.go

// Package leadnotify alerts the operations team that a lead was delivered: an SES email to the
// configured recipients and an SNS publish to the alert topic. Each channel is switched
// independently. Messages carry ids and location only.
package leadnotify

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	awsx "healthquote-funnel/internal/common/aws"
	apperrors "healthquote-funnel/internal/common/errors"
	"healthquote-funnel/internal/common/logger"
	"healthquote-funnel/internal/common/metrics"
	"healthquote-funnel/internal/models"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/google/uuid"
)

const (
	TaskType   = "lead.notify"
	workerName = "lead-notify"
)

type Handler struct {
	config       *Config
	logger       logger.Logger
	sesClient    awsx.SESService
	snsClient    awsx.SNSService
	errorHandler *apperrors.JobErrorHandler
	now          func() time.Time
}

// NewHandler builds the handler. A nil client disables its channel.
func NewHandler(config *Config, sesClient awsx.SESService, snsClient awsx.SNSService, log logger.Logger) *Handler {
	if config == nil {
		config = DefaultConfig()
	}
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:       config,
		logger:       log,
		sesClient:    sesClient,
		snsClient:    snsClient,
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

// Execute sends on every enabled channel. It fails only when every enabled channel failed, so a
// retry never repeats a message that already went out.
func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	if input.LeadID == "" {
		return nil, apperrors.NewValidationFailedError("leadId is required")
	}

	data := map[string]interface{}{
		"leadId":      input.LeadID,
		"arrivalId":   input.ArrivalID,
		"formType":    input.FormType,
		"formLabel":   models.FormType(input.FormType).Label(),
		"city":        input.City,
		"state":       input.State,
		"submittedAt": input.SubmittedAt,
	}

	emailNote, emailErr := h.sendEmail(ctx, input.LeadID, data)
	smsNote, smsErr := h.sendSMS(ctx, input.LeadID, data)
	notes := []models.Notification{emailNote, smsNote}

	attempted, sent := 0, 0
	for _, n := range notes {
		if n.Status != StatusDisabled {
			attempted++
		}
		if n.Status == StatusSent {
			sent++
		}
	}

	switch {
	case attempted == 0:
		h.logger.Info("no notification channel enabled", map[string]interface{}{"leadId": input.LeadID})
		return &Output{Status: StatusDisabled, Notifications: notes}, nil
	case sent == 0:
		if emailErr != nil {
			return nil, apperrors.NewNotificationSendFailedError(ChannelEmail, emailErr)
		}
		return nil, apperrors.NewNotificationSendFailedError(ChannelSMS, smsErr)
	}

	h.logger.Info("lead notification sent", map[string]interface{}{
		"leadId":    input.LeadID,
		"attempted": attempted,
		"sent":      sent,
	})
	return &Output{Status: StatusSent, Notifications: notes}, nil
}

func (h *Handler) newNotification(leadID, channel string) models.Notification {
	return models.Notification{
		ID:      uuid.New().String(),
		LeadID:  leadID,
		Channel: channel,
		Status:  StatusDisabled,
	}
}

func (h *Handler) sendEmail(ctx context.Context, leadID string, data map[string]interface{}) (models.Notification, error) {
	n := h.newNotification(leadID, ChannelEmail)
	if !h.config.EmailEnabled || h.sesClient == nil {
		return n, nil
	}

	messageID, err := awsx.SendEmail(ctx, h.sesClient, awsx.Email{
		From:    h.config.FromEmail,
		To:      h.config.Recipients,
		Subject: renderTemplate(leadDelivered.Subject, data),
		Text:    renderTemplate(leadDelivered.Body, data),
	})
	if err != nil {
		h.logger.Error("email send failed", map[string]interface{}{
			"error":      err.Error(),
			"recipients": len(h.config.Recipients),
		})
		n.Status = StatusFailed
		return n, err
	}

	n.Status = StatusSent
	n.MessageID = messageID
	n.SentAt = h.now().UTC().Format(time.RFC3339)
	return n, nil
}

func (h *Handler) sendSMS(ctx context.Context, leadID string, data map[string]interface{}) (models.Notification, error) {
	n := h.newNotification(leadID, ChannelSMS)
	if !h.config.SMSEnabled || h.snsClient == nil {
		return n, nil
	}

	messageID, err := awsx.PublishToTopic(ctx, h.snsClient, h.config.TopicARN,
		renderTemplate(leadDelivered.Subject, data), renderTemplate(smsBody, data))
	if err != nil {
		h.logger.Error("SMS publish failed", map[string]interface{}{
			"error": err.Error(),
			"topic": h.config.TopicARN,
		})
		n.Status = StatusFailed
		return n, err
	}

	n.Status = StatusSent
	n.MessageID = messageID
	n.SentAt = h.now().UTC().Format(time.RFC3339)
	return n, nil
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
	}
}

func (h *Handler) GetTaskType() string { return TaskType }

func (h *Handler) IsEnabled() bool { return h.config.Enabled }
