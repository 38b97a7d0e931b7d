// timetable/store.go
package timetable

import (
	"log"
	"sync/atomic"

	"github.com/quickflightcal/backend/models"
)

// Store holds the read-only flight timetable, keyed by the exact
// flight-number string ("LH458"). A refresh replaces the whole snapshot at
// once so concurrent readers never observe a half-loaded table.
type Store struct {
	snapshot atomic.Pointer[map[string]models.RouteRecord]
}

// NewStore returns an empty store. Call Replace to load a dataset into it.
func NewStore() *Store {
	s := &Store{}
	empty := make(map[string]models.RouteRecord)
	s.snapshot.Store(&empty)
	return s
}

// Replace swaps in a freshly loaded dataset. Duplicate flight numbers keep
// the first entry, matching the lookup invariant that every flight number
// maps to at most one route.
func (s *Store) Replace(records []models.RouteRecord) {
	byNumber := make(map[string]models.RouteRecord, len(records))
	for _, rec := range records {
		if _, dup := byNumber[rec.FlightNumber]; dup {
			log.Printf("WARN Timetable: duplicate flight number %s in dataset, keeping first entry", rec.FlightNumber)
			continue
		}
		byNumber[rec.FlightNumber] = rec
	}
	s.snapshot.Store(&byNumber)
	log.Printf("Timetable: loaded %d routes into the store\n", len(byNumber))
}

// Lookup returns the route template for an exact flight-number string.
// Pure and total: every flight number matches exactly one record or none.
func (s *Store) Lookup(flightNumber string) (models.RouteRecord, bool) {
	rec, ok := (*s.snapshot.Load())[flightNumber]
	return rec, ok
}

// Len reports how many routes the current snapshot holds.
func (s *Store) Len() int {
	return len(*s.snapshot.Load())
}
