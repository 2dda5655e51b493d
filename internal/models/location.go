package models

// Location is the result of a ZIP lookup.
type Location struct {
	City      string `json:"city"`
	State     string `json:"state"`
	StateLong string `json:"state_long"`
}
