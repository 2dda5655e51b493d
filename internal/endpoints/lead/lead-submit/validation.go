// internal/endpoints/lead/lead-submit/validation.go

package leadsubmit

import (
	"healthquote-funnel/internal/common/validation"
	"healthquote-funnel/internal/endpoints"
)

func GetInputSchema() validation.JSONSchema {
	return validation.JSONSchema{
		Type:     "object",
		Required: []string{"formType", "formData"},
		Properties: map[string]validation.Property{
			"formType": {
				Type:        "string",
				Description: "Funnel variant",
				Enum:        []string{"health", "medicare"},
			},
			"formData": {
				Type:        "object",
				Description: "The wizard record, keyed by field name",
				Properties: map[string]validation.Property{
					"zip":               {Type: "string", MaxLength: endpoints.IntPtr(10)},
					"email":             {Type: "string", MaxLength: endpoints.IntPtr(255)},
					"phone":             {Type: "string", MaxLength: endpoints.IntPtr(30)},
					"first_name":        {Type: "string", MaxLength: endpoints.IntPtr(100)},
					"last_name":         {Type: "string", MaxLength: endpoints.IntPtr(100)},
					"health_conditions": {Type: "array", Items: &validation.Property{Type: "string"}},
				},
			},
		},
		AdditionalProperties: true,
	}
}

// requiredFields must be non-empty before a lead is forwarded.
var requiredFields = []string{"first_name", "last_name", "email", "phone"}

func missingFields(data map[string]interface{}) []string {
	var missing []string
	for _, f := range requiredFields {
		if str(data, f) == "" {
			missing = append(missing, f)
		}
	}
	return missing
}
