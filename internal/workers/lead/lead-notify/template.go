// internal/workers/lead/lead-notify/template.go

package leadnotify

import (
	"fmt"
	"strings"
)

type message struct {
	Subject string
	Body    string
}

var leadDelivered = message{
	Subject: "New {{formLabel}} lead: {{city}}, {{state}}",
	Body: "Lead {{leadId}} was delivered at {{submittedAt}}.\n" +
		"Arrival: {{arrivalId}}\nForm: {{formType}}\nLocation: {{city}}, {{state}}\n",
}

// smsBody is short enough for one SMS segment with typical ids.
const smsBody = "HQH {{formType}} lead {{leadId}} ({{city}}, {{state}})"

// renderTemplate replaces {{key}} placeholders and drops any left without a value.
func renderTemplate(tmpl string, data map[string]interface{}) string {
	result := tmpl
	for k, v := range data {
		value := ""
		switch val := v.(type) {
		case string:
			value = val
		case nil:
		default:
			value = fmt.Sprintf("%v", val)
		}
		result = strings.ReplaceAll(result, "{{"+k+"}}", value)
	}

	for {
		start := strings.Index(result, "{{")
		if start == -1 {
			break
		}
		end := strings.Index(result[start:], "}}")
		if end == -1 {
			break
		}
		result = result[:start] + result[start+end+2:]
	}
	return result
}
