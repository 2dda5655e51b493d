package models

// Offer is one placeholder ad shown on the thank-you page.
type Offer struct {
	ID                    string   `json:"id"`
	Company               string   `json:"company"`
	PlanName              string   `json:"planName"`
	LogoURL               string   `json:"logoURL"`
	ClickURL              string   `json:"clickURL"`
	Headline              string   `json:"headline"`
	DescriptionLines      []string `json:"descriptionLines"`
	MonthlyCost           *float64 `json:"monthlyCost,omitempty"`
	Deductible            *float64 `json:"deductible,omitempty"`
	CoinsurancePercentage *float64 `json:"coinsurancePercentage,omitempty"`
	OutOfPocketMax        *float64 `json:"outOfPocketMax,omitempty"`
	LifeTimeMaxBenefit    *float64 `json:"lifeTimeMaxBenefit,omitempty"`
	AdType                string   `json:"adtype"` // click | click_to_call
	ActionLink            string   `json:"actionLink,omitempty"`
	ActionButtonURL       string   `json:"actionButtonURL,omitempty"`
	ContentImageURL       string   `json:"contentImageURL,omitempty"`
	PixelURL              string   `json:"pixelURL,omitempty"`
}
