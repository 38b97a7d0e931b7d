// timetable/store_test.go
package timetable

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quickflightcal/backend/models"
)

func TestStoreLookup(t *testing.T) {
	store := NewStore()
	store.Replace([]models.RouteRecord{
		{FlightNumber: "LH458", Airline: "LH", DepartureAirport: "MUC", ArrivalAirport: "SFO", DepartureTime: "14:50", DurationMinutes: 1200},
		{FlightNumber: "UA123", Airline: "UA", DepartureAirport: "SFO", ArrivalAirport: "EWR", DepartureTime: "08:15", DurationMinutes: 320},
	})

	rec, ok := store.Lookup("LH458")
	require.True(t, ok)
	assert.Equal(t, "MUC", rec.DepartureAirport)

	_, ok = store.Lookup("XX999")
	assert.False(t, ok)

	// Lookup is case-sensitive after normalization; the store never guesses.
	_, ok = store.Lookup("lh458")
	assert.False(t, ok)

	assert.Equal(t, 2, store.Len())
}

func TestStoreEmptyBeforeLoad(t *testing.T) {
	store := NewStore()
	_, ok := store.Lookup("LH458")
	assert.False(t, ok)
	assert.Zero(t, store.Len())
}

func TestStoreDuplicateKeepsFirst(t *testing.T) {
	store := NewStore()
	store.Replace([]models.RouteRecord{
		{FlightNumber: "LH458", DepartureAirport: "MUC"},
		{FlightNumber: "LH458", DepartureAirport: "FRA"},
	})

	rec, ok := store.Lookup("LH458")
	require.True(t, ok)
	assert.Equal(t, "MUC", rec.DepartureAirport)
	assert.Equal(t, 1, store.Len())
}

func TestStoreReplaceSwapsWholeSnapshot(t *testing.T) {
	store := NewStore()
	store.Replace([]models.RouteRecord{{FlightNumber: "LH458"}})
	store.Replace([]models.RouteRecord{{FlightNumber: "UA123"}})

	_, ok := store.Lookup("LH458")
	assert.False(t, ok, "old snapshot fully replaced")
	_, ok = store.Lookup("UA123")
	assert.True(t, ok)
}
