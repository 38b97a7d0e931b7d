// scraper/csv_parser.go
package scraper

import (
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"time"

	"github.com/jszwec/csvutil"
	"github.com/quickflightcal/backend/models"
)

// ParseTimetableCsv takes an io.Reader containing the published timetable CSV
// and returns a slice of RouteRecord structs. csvutil assumes the first line
// is a header and maps it to struct fields via the `csv:"..."` tags on
// models.RouteRecord - the headers must EXACTLY match those tags.
//
// Rows with an unusable schedule (bad HH:MM time, non-3-letter airports,
// non-positive duration) are skipped with a warning rather than failing the
// whole load; one bad row in a published dataset should not take the
// timetable offline.
func ParseTimetableCsv(reader io.Reader) ([]models.RouteRecord, error) {
	decoder, err := csvutil.NewDecoder(csv.NewReader(reader))
	if err != nil {
		return nil, fmt.Errorf("failed to create CSV decoder for timetable: %w", err)
	}

	var raw []models.RouteRecord
	if err := decoder.Decode(&raw); err != nil {
		return nil, fmt.Errorf("failed to decode timetable CSV data: %w", err)
	}

	routes := make([]models.RouteRecord, 0, len(raw))
	for _, rec := range raw {
		if err := validateRouteRecord(rec); err != nil {
			log.Printf("WARN Scraper: skipping timetable row for %q: %v", rec.FlightNumber, err)
			continue
		}
		routes = append(routes, rec)
	}

	log.Printf("Successfully parsed %d timetable routes from CSV (%d rows skipped).\n",
		len(routes), len(raw)-len(routes))
	return routes, nil
}

func validateRouteRecord(rec models.RouteRecord) error {
	if rec.FlightNumber == "" {
		return fmt.Errorf("missing flight number")
	}
	if _, err := time.Parse("15:04", rec.DepartureTime); err != nil {
		return fmt.Errorf("departure time %q is not HH:MM: %w", rec.DepartureTime, err)
	}
	if len(rec.DepartureAirport) != 3 || len(rec.ArrivalAirport) != 3 {
		return fmt.Errorf("airport codes %q/%q are not 3-letter codes",
			rec.DepartureAirport, rec.ArrivalAirport)
	}
	if rec.DurationMinutes <= 0 {
		return fmt.Errorf("duration %d is not positive", rec.DurationMinutes)
	}
	return nil
}
