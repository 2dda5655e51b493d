// internal/endpoints/lead/offers-fetch/handler_test.go

package offersfetch

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"healthquote-funnel/internal/common/leadservice"
	"healthquote-funnel/internal/common/logger"
	"healthquote-funnel/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockOffersClient struct {
	mock.Mock
}

func (m *MockOffersClient) FetchOffers(ctx context.Context, arrivalID string, formType models.FormType) ([]models.Offer, error) {
	args := m.Called(ctx, arrivalID, formType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Offer), args.Error(1)
}

func newTestHandler(t *testing.T, client OffersClient, maxOffers int) *Handler {
	t.Helper()
	h, err := NewHandler(HandlerOptions{
		Client:       client,
		CustomConfig: &Config{Enabled: true, Timeout: time.Second, MaxOffers: maxOffers},
		Logger:       logger.NewTestLogger(t),
	})
	require.NoError(t, err)
	return h
}

func get(h *Handler, target string) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/api/lead/offers", h.Handle)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, target, nil))
	return w
}

func TestNormalizeFormType(t *testing.T) {
	assert.Equal(t, models.FormTypeMedicare, NormalizeFormType("medicare"))
	assert.Equal(t, models.FormTypeMedicare, NormalizeFormType(" Medicare "))
	assert.Equal(t, models.FormTypeHealth, NormalizeFormType(""))
	assert.Equal(t, models.FormTypeHealth, NormalizeFormType("dental"))
}

func TestHandler_Handle(t *testing.T) {
	tests := []struct {
		name     string
		target   string
		formType models.FormType
		offers   []models.Offer
		err      error
		max      int
		status   int
		count    int
		message  string
	}{
		{name: "medicare demo offers", target: "/api/lead/offers?arrivalId=arr_1&type=medicare", formType: models.FormTypeMedicare, offers: leadservice.DemoOffers(models.FormTypeMedicare), max: 10, status: 200, count: 3},
		{name: "type defaults to health", target: "/api/lead/offers?arrivalId=arr_1", formType: models.FormTypeHealth, offers: leadservice.DemoOffers(models.FormTypeHealth), max: 10, status: 200, count: 4},
		{name: "capped", target: "/api/lead/offers?arrivalId=arr_1", formType: models.FormTypeHealth, offers: leadservice.DemoOffers(models.FormTypeHealth), max: 2, status: 200, count: 2},
		{name: "empty feed", target: "/api/lead/offers?arrivalId=arr_1", formType: models.FormTypeHealth, offers: nil, max: 10, status: 200, count: 0},
		{name: "missing arrival id", target: "/api/lead/offers?type=health", max: 10, status: 400, message: "Missing arrival ID"},
		{name: "upstream failure", target: "/api/lead/offers?arrivalId=arr_1", formType: models.FormTypeHealth, err: errors.New("boom"), max: 10, status: 500, message: "Failed to fetch offers"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := &MockOffersClient{}
			if tt.status == 200 || tt.err != nil {
				if tt.err != nil {
					client.On("FetchOffers", mock.Anything, "arr_1", tt.formType).Return(nil, tt.err)
				} else {
					client.On("FetchOffers", mock.Anything, "arr_1", tt.formType).Return(tt.offers, nil)
				}
			}

			w := get(newTestHandler(t, client, tt.max), tt.target)
			require.Equal(t, tt.status, w.Code)

			var out map[string]interface{}
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
			if tt.status == 200 {
				assert.Equal(t, true, out["success"])
				assert.Len(t, out["offers"], tt.count)
			} else {
				assert.Equal(t, false, out["success"])
				assert.Equal(t, tt.message, out["error"])
			}
			client.AssertExpectations(t)
		})
	}
}
