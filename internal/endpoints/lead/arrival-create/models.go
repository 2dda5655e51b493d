// internal/endpoints/lead/arrival-create/models.go

package arrivalcreate

import (
	"context"

	"healthquote-funnel/internal/common/logger"
	"healthquote-funnel/internal/models"
)

// Request is the POST /api/lead/arrival body.
type Request struct {
	FormType   string `json:"formType"`
	Campaign   string `json:"campaign"`
	Term       string `json:"term"`
	Referrer   string `json:"referrer"`
	LandingURL string `json:"landingUrl"`
}

type Input struct {
	FormType   models.FormType
	Campaign   string
	Term       string
	Referrer   string
	LandingURL string
	IPAddress  string
	UserAgent  string
}

type Output struct {
	Success   bool   `json:"success"`
	ArrivalID string `json:"arrivalId"`
}

// ArrivalClient is the lead service call this endpoint proxies.
type ArrivalClient interface {
	CreateArrival(ctx context.Context, payload *models.ArrivalPayload) (string, error)
}

type ServiceDependencies struct {
	Client ArrivalClient
	Logger logger.Logger
}
