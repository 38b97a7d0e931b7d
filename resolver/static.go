// resolver/static.go
package resolver

import (
	"context"
	"fmt"
	"time"

	"github.com/quickflightcal/backend/models"
	"github.com/quickflightcal/backend/timetable"
)

// StaticSource resolves flights against the in-memory timetable store.
type StaticSource struct {
	Table       *timetable.Store
	FeedbackURL string // attached to NotFound errors so users can report gaps
}

func (s *StaticSource) Name() string { return "timetable" }

// Resolve looks the flight number up in the timetable and anchors its
// scheduled time-of-day to the caller's reference date at UTC midnight,
// rolling to the next day when the reference instant has already passed the
// naive departure.
func (s *StaticSource) Resolve(_ context.Context, id models.FlightIdentifier, ref time.Time) (*models.FlightLeg, error) {
	rec, ok := s.Table.Lookup(id.String())
	if !ok {
		return nil, &models.ResolutionError{
			Kind:         models.ErrNotFound,
			Message:      fmt.Sprintf("Flight %s not found in the timetable", id),
			FeedbackLink: s.FeedbackURL,
		}
	}

	tod, err := time.Parse("15:04", rec.DepartureTime)
	if err != nil {
		// The CSV loader filters malformed rows, so this only fires for
		// records injected by other means. Treat it as a data gap.
		return nil, &models.ResolutionError{
			Kind:         models.ErrNotFound,
			Message:      fmt.Sprintf("Flight %s has an unusable schedule entry", id),
			FeedbackLink: s.FeedbackURL,
		}
	}

	ref = ref.UTC()
	midnight := time.Date(ref.Year(), ref.Month(), ref.Day(), 0, 0, 0, 0, time.UTC)
	departure := midnight.Add(time.Duration(tod.Hour())*time.Hour + time.Duration(tod.Minute())*time.Minute)
	departure = AdjustOvernight(departure, ref)
	arrival := departure.Add(time.Duration(rec.DurationMinutes) * time.Minute)

	return &models.FlightLeg{
		Airline:          rec.Airline,
		FlightNumber:     rec.FlightNumber,
		Number:           rec.Number,
		DepartureAirport: rec.DepartureAirport,
		ArrivalAirport:   rec.ArrivalAirport,
		DepartureTime:    departure,
		ArrivalTime:      arrival,
		DurationMinutes:  rec.DurationMinutes,
	}, nil
}
