// internal/workers/lead/lead-notify/models.go

package leadnotify

import "healthquote-funnel/internal/models"

// Input is the lead-followup process variable set.
type Input struct {
	LeadID      string `json:"leadId"`
	ArrivalID   string `json:"arrivalId"`
	FormType    string `json:"formType"`
	City        string `json:"city"`
	State       string `json:"state"`
	SubmittedAt string `json:"submittedAt"`
}

type Output struct {
	Status        string                `json:"notificationStatus"` // "sent", "failed", "disabled"
	Notifications []models.Notification `json:"notifications"`
}

const (
	ChannelEmail = "email"
	ChannelSMS   = "sms"
)

const (
	StatusSent     = "sent"
	StatusFailed   = "failed"
	StatusDisabled = "disabled"
)
