package models

// Notification records one ops alert sent for a delivered lead.
type Notification struct {
	ID        string `json:"id"`
	LeadID    string `json:"leadId"`
	Channel   string `json:"channel"` // "email", "sms"
	Status    string `json:"status"`  // "sent", "failed", "disabled"
	MessageID string `json:"messageId,omitempty"`
	SentAt    string `json:"sentAt,omitempty"`
}
