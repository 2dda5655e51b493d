package wizard

import (
	"context"
	"testing"
	"time"

	"healthquote-funnel/internal/models"
	"healthquote-funnel/internal/session"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubLookup map[string]models.Location

func (s stubLookup) LookupZip(_ context.Context, zip string) (*models.Location, bool) {
	loc, ok := s[zip]
	if !ok {
		return nil, false
	}
	return &loc, true
}

func TestAutofillLocation(t *testing.T) {
	lookup := stubLookup{"02421": {City: "Lexington", State: "MA", StateLong: "Massachusetts"}}
	s := newState(t, Health(), session.NewMemoryCache(time.Hour), session.NewID())

	require.NoError(t, s.UpdateField("zip", "0242"))
	assert.False(t, AutofillLocation(context.Background(), s, lookup))

	require.NoError(t, s.UpdateField("zip", "02421"))
	assert.True(t, AutofillLocation(context.Background(), s, lookup))
	assert.Equal(t, "Lexington", s.Record().String("city"))
	assert.Equal(t, "MA", s.Record().String("state"))

	// lookup failure leaves manual entries alone
	require.NoError(t, s.UpdateField("city", "Typed"))
	require.NoError(t, s.UpdateField("zip", "99999"))
	assert.False(t, AutofillLocation(context.Background(), s, lookup))
	assert.Equal(t, "Typed", s.Record().String("city"))

	assert.False(t, AutofillLocation(context.Background(), s, nil))
}
