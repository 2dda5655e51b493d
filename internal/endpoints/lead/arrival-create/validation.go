// internal/endpoints/lead/arrival-create/validation.go

package arrivalcreate

import (
	"healthquote-funnel/internal/common/validation"
	"healthquote-funnel/internal/endpoints"
)

func GetInputSchema() validation.JSONSchema {
	return validation.JSONSchema{
		Type: "object",
		Properties: map[string]validation.Property{
			"formType": {
				Type:        "string",
				Description: "Funnel variant: health or medicare",
				MaxLength:   endpoints.IntPtr(20),
			},
			"campaign": {
				Type:        "string",
				Description: "Campaign id from the cid or campaign query parameter",
				MaxLength:   endpoints.IntPtr(100),
			},
			"term": {
				Type:        "string",
				Description: "Search keyword from the kw or term query parameter",
				MaxLength:   endpoints.IntPtr(255),
			},
			"referrer": {
				Type:        "string",
				Description: "Document referrer",
				MaxLength:   endpoints.IntPtr(2048),
			},
			"landingUrl": {
				Type:        "string",
				Description: "URL the visitor landed on",
				MaxLength:   endpoints.IntPtr(2048),
			},
		},
		AdditionalProperties: true,
	}
}
