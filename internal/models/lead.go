package models

// FormType names a funnel variant on the wire.
type FormType string

const (
	FormTypeHealth   FormType = "health"
	FormTypeMedicare FormType = "medicare"
)

// Valid reports whether f names a known funnel.
func (f FormType) Valid() bool {
	return f == FormTypeHealth || f == FormTypeMedicare
}

// VerticalID returns the lead-service vertical for a form type: 102 for medicare, 101 otherwise.
func (f FormType) VerticalID() string {
	if f == FormTypeMedicare {
		return "102"
	}
	return "101"
}

// LeadType returns the lead-service "type" field.
func (f FormType) LeadType() string {
	if f == FormTypeMedicare {
		return "medicare"
	}
	return "health_insurance"
}

// Label is the human name used in headings.
func (f FormType) Label() string {
	if f == FormTypeMedicare {
		return "Medicare"
	}
	return "Health Insurance"
}

// ArrivalPayload is the body of the lead service arrival_request call.
type ArrivalPayload struct {
	WebID      string `json:"webID"`
	IPAddress  string `json:"IPAddress"`
	Referer    string `json:"referer"`
	UserAgent  string `json:"userAgent"`
	SiteID     string `json:"siteID"`
	LandingURL string `json:"landingURL"`
	SourceID   string `json:"sourceID"`
	Campaign   string `json:"campaign"`
	Keyword    string `json:"keyword"`
	VerticalID string `json:"verticalID"`
}

// LeadPayload is the body of the lead service lead_request call. Data carries the
// variant-specific keys, including one boolean key per health condition.
type LeadPayload struct {
	Type         string                 `json:"type"`
	FirstName    string                 `json:"firstName"`
	LastName     string                 `json:"lastName"`
	AddressLine1 string                 `json:"addressLine1"`
	Zip          string                 `json:"zip"`
	Email        string                 `json:"email"`
	Phone        string                 `json:"phone"`
	SourceID     int                    `json:"sourceID"`
	ArrivalID    string                 `json:"arrivalID"`
	Data         map[string]interface{} `json:"data"`
}

// LeadFollowup is the variable set handed to the lead-followup process.
type LeadFollowup struct {
	LeadID      string `json:"leadId"`
	ArrivalID   string `json:"arrivalId"`
	FormType    string `json:"formType"`
	City        string `json:"city"`
	State       string `json:"state"`
	SubmittedAt string `json:"submittedAt"`
}
