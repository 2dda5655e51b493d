package wizard

import (
	"context"

	"healthquote-funnel/internal/models"
)

// LocationLookup resolves a ZIP to a city and state. ok is false on any failure.
type LocationLookup interface {
	LookupZip(ctx context.Context, zip string) (loc *models.Location, ok bool)
}

// AutofillLocation fills city and state from a complete ZIP. A failed lookup changes nothing;
// the visitor types them in on the address step.
func AutofillLocation(ctx context.Context, state *FormState, lookup LocationLookup) bool {
	if lookup == nil {
		return false
	}
	zip := state.Record().String("zip")
	if len(zip) != 5 {
		return false
	}
	loc, ok := lookup.LookupZip(ctx, zip)
	if !ok || loc == nil {
		return false
	}
	state.record["city"] = loc.City
	state.record["state"] = loc.State
	return true
}
