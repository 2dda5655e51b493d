// internal/endpoints/lead/lead-submit/payload.go

package leadsubmit

import (
	"fmt"
	"strconv"
	"strings"

	"healthquote-funnel/internal/common/validation"
	"healthquote-funnel/internal/models"
)

// BuildPayload maps a wizard record onto the lead service lead_request body.
func BuildPayload(formType models.FormType, data map[string]interface{}, sourceID int) *models.LeadPayload {
	phone := validation.Digits(str(data, "phone"))
	if len(phone) > 10 {
		phone = phone[:10]
	}

	extra := map[string]interface{}{
		"jornayaID": str(data, "jornaya_id"),
		"birthday":  formatDate(str(data, "birth_month"), str(data, "birth_day"), str(data, "birth_year")),
		"gender":    str(data, "gender"),
	}

	if formType == models.FormTypeMedicare {
		extra["coverage_type"] = str(data, "interested_in")
	} else {
		addHealthData(extra, data)
	}

	return &models.LeadPayload{
		Type:         formType.LeadType(),
		FirstName:    str(data, "first_name"),
		LastName:     str(data, "last_name"),
		AddressLine1: str(data, "address"),
		Zip:          str(data, "zip"),
		Email:        str(data, "email"),
		Phone:        phone,
		SourceID:     sourceID,
		ArrivalID:    str(data, "arrival_id"),
		Data:         extra,
	}
}

func addHealthData(extra, data map[string]interface{}) {
	extra["household_size"] = atoiOr(str(data, "household_size"), 1)
	extra["household_income"] = atoiOr(str(data, "household_income"), 0)
	extra["is_self_employed"] = boolean(data, "is_self_employed")

	event := str(data, "major_life_event")
	if boolean(data, "has_major_event") && event != "" {
		extra["qualifying_life_event"] = event
		month, day, year := str(data, "event_month"), str(data, "event_day"), str(data, "event_year")
		if month != "" && day != "" && year != "" {
			extra["qualifying_life_event_date"] = formatDate(month, day, year)
		}
	} else {
		extra["qualifying_life_event"] = "none"
	}

	conditions := list(data, "health_conditions")
	if boolean(data, "have_conditions") && len(conditions) > 0 {
		extra["has_major_condition"] = true
		for _, c := range conditions {
			extra[c] = true
		}
	} else {
		extra["has_major_condition"] = false
	}
}

// formatDate renders M/D/YYYY, dropping leading zeros from month and day.
func formatDate(month, day, year string) string {
	return fmt.Sprintf("%s/%s/%s", trimNumber(month), trimNumber(day), year)
}

func trimNumber(s string) string {
	if n, err := strconv.Atoi(s); err == nil {
		return strconv.Itoa(n)
	}
	return s
}

// atoiOr parses the leading integer of s, so "8+" reads as 8.
func atoiOr(s string, fallback int) int {
	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if n, err := strconv.Atoi(s[:end]); err == nil && n != 0 {
		return n
	}
	return fallback
}

// The record arrives either from the session store or decoded from JSON, so lists may be
// []string or []interface{} and numbers may be float64.

func str(data map[string]interface{}, key string) string {
	switch v := data[key].(type) {
	case string:
		return strings.TrimSpace(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	default:
		return ""
	}
}

func boolean(data map[string]interface{}, key string) bool {
	switch v := data[key].(type) {
	case bool:
		return v
	case string:
		b, _ := strconv.ParseBool(v)
		return b
	default:
		return false
	}
}

func list(data map[string]interface{}, key string) []string {
	switch v := data[key].(type) {
	case []string:
		return v
	case []interface{}:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok && s != "" {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}
