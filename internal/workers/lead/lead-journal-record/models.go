// internal/workers/lead/lead-journal-record/models.go

package leadjournalrecord

// Input is the lead-followup process variable set.
type Input struct {
	LeadID      string `json:"leadId"`
	ArrivalID   string `json:"arrivalId"`
	FormType    string `json:"formType"`
	City        string `json:"city"`
	State       string `json:"state"`
	SubmittedAt string `json:"submittedAt"` // RFC 3339
}

type Output struct {
	DeliveryID     string `json:"deliveryId"`
	DeliveryStatus string `json:"deliveryStatus"`
	RecordedAt     string `json:"recordedAt"` // RFC 3339
}

const StatusDelivered = "delivered"
