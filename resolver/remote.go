// resolver/remote.go
package resolver

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/quickflightcal/backend/models"
	"github.com/quickflightcal/backend/utils"
)

// ChatClient is the slice of the retrieval client the remote source needs.
type ChatClient interface {
	Chat(ctx context.Context, prompt string) (string, error)
}

// RemoteSource resolves flights through a natural-language retrieval service.
// This is the most failure-prone path in the system: transport errors,
// malformed output and schema drift are steady-state occurrences, so every
// failure is classified (transport / parse / schema) for the orchestrator's
// retry policy.
type RemoteSource struct {
	Client ChatClient
}

func (s *RemoteSource) Name() string { return "retrieval" }

// remotePayload is the shape the retrieval service is instructed to return.
// Pointer fields distinguish "absent" from zero values during validation;
// timestamps stay strings so parse failures and schema failures can be told
// apart before any time arithmetic happens.
type remotePayload struct {
	Airline          *string  `json:"airline"`
	FlightNumber     *string  `json:"flightNumber"`
	Number           *int     `json:"number"`
	DepartureAirport *string  `json:"departureAirport"`
	ArrivalAirport   *string  `json:"arrivalAirport"`
	DepartureTime    *string  `json:"departureTime"`
	ArrivalTime      *string  `json:"arrivalTime"`
	Duration         *float64 `json:"duration"`
}

func (s *RemoteSource) Resolve(ctx context.Context, id models.FlightIdentifier, ref time.Time) (*models.FlightLeg, error) {
	prompt := fmt.Sprintf(
		"Fetch the flight information for flight number %s on date %s. "+
			"Provide the airline, flight number, departure and arrival airports "+
			"(MUST be 3-character IATA codes ONLY, e.g., 'FRA' not 'FRA (Frankfurt)'), "+
			"departure and arrival times (in UTC and ISO 8601 format), and duration in minutes. "+
			"Respond with a single JSON object with the fields airline, flightNumber, number, "+
			"departureAirport, arrivalAirport, departureTime, arrivalTime and duration.",
		id, ref.UTC().Format(time.RFC3339))

	raw, err := s.Client.Chat(ctx, prompt)
	if err != nil {
		return nil, &models.ResolutionError{
			Kind:    models.ErrTransportFailure,
			Message: fmt.Sprintf("retrieval request for flight %s failed: %v", id, err),
		}
	}
	log.Printf("Resolver: raw retrieval output for %s: %s", id, raw)

	payload, err := extractPayload(raw)
	if err != nil {
		return nil, err
	}

	return payload.toFlightLeg(id, ref)
}

// extractPayload applies the self-healing extraction policy to raw model
// output. The service sometimes appends commentary after the JSON object, so
// the substring through the first closing brace is tried first; if that fails
// to parse or validate, the entire text gets one more chance before the call
// fails.
func extractPayload(raw string) (*remotePayload, error) {
	text := strings.TrimSpace(raw)

	if idx := strings.Index(text, "}"); idx != -1 {
		if payload, err := parseAndValidate(text[:idx+1]); err == nil {
			return payload, nil
		}
		// First object failed; fall through to the full text.
	}

	return parseAndValidate(text)
}

func parseAndValidate(text string) (*remotePayload, error) {
	var payload remotePayload
	if err := json.Unmarshal([]byte(text), &payload); err != nil {
		return nil, &models.ResolutionError{
			Kind:    models.ErrParseFailure,
			Message: fmt.Sprintf("retrieval output is not valid JSON: %v", err),
		}
	}
	if err := payload.validate(); err != nil {
		return nil, err
	}
	return &payload, nil
}

// validate enforces the FlightLeg schema on the parsed payload: required
// fields present, timestamps date-parseable, duration numeric and positive.
func (p *remotePayload) validate() error {
	var missing []string
	if p.Airline == nil || *p.Airline == "" {
		missing = append(missing, "airline")
	}
	if p.FlightNumber == nil || *p.FlightNumber == "" {
		missing = append(missing, "flightNumber")
	}
	if p.DepartureAirport == nil || *p.DepartureAirport == "" {
		missing = append(missing, "departureAirport")
	}
	if p.ArrivalAirport == nil || *p.ArrivalAirport == "" {
		missing = append(missing, "arrivalAirport")
	}
	if p.DepartureTime == nil || *p.DepartureTime == "" {
		missing = append(missing, "departureTime")
	}
	if p.ArrivalTime == nil || *p.ArrivalTime == "" {
		missing = append(missing, "arrivalTime")
	}
	if p.Duration == nil {
		missing = append(missing, "duration")
	}
	if len(missing) > 0 {
		return &models.ResolutionError{
			Kind:    models.ErrSchemaValidation,
			Message: fmt.Sprintf("retrieval output missing required fields: %s", strings.Join(missing, ", ")),
		}
	}

	if _, ok := parseTimestamp(*p.DepartureTime); !ok {
		return &models.ResolutionError{
			Kind:    models.ErrSchemaValidation,
			Message: fmt.Sprintf("departureTime %q is not a parseable timestamp", *p.DepartureTime),
		}
	}
	if _, ok := parseTimestamp(*p.ArrivalTime); !ok {
		return &models.ResolutionError{
			Kind:    models.ErrSchemaValidation,
			Message: fmt.Sprintf("arrivalTime %q is not a parseable timestamp", *p.ArrivalTime),
		}
	}
	if *p.Duration <= 0 {
		return &models.ResolutionError{
			Kind:    models.ErrSchemaValidation,
			Message: fmt.Sprintf("duration %v is not a positive number of minutes", *p.Duration),
		}
	}
	return nil
}

// toFlightLeg turns a validated payload into a FlightLeg: airport codes get
// the leniency cap, timestamps are canonicalized to UTC, the overnight policy
// is applied, and arrival is recomputed as departure plus duration so the
// duration invariant holds no matter what the service claimed.
func (p *remotePayload) toFlightLeg(id models.FlightIdentifier, ref time.Time) (*models.FlightLeg, error) {
	departure, _ := parseTimestamp(*p.DepartureTime) // validate already checked
	claimedArrival, _ := parseTimestamp(*p.ArrivalTime)
	duration := int(*p.Duration)

	if computed := departure.Add(time.Duration(duration) * time.Minute); !claimedArrival.Equal(computed) {
		log.Printf("WARN Resolver: retrieval arrival %s disagrees with departure+duration %s for %s, keeping the computed value",
			claimedArrival.Format(time.RFC3339), computed.Format(time.RFC3339), id)
	}

	departure = AdjustOvernight(departure, ref.UTC())
	arrival := departure.Add(time.Duration(duration) * time.Minute)

	number := id.Number
	if p.Number != nil {
		number = *p.Number
	}

	return &models.FlightLeg{
		Airline:          strings.TrimSpace(*p.Airline),
		FlightNumber:     strings.TrimSpace(*p.FlightNumber),
		Number:           number,
		DepartureAirport: utils.NormalizeAirportCode(*p.DepartureAirport, "departureAirport"),
		ArrivalAirport:   utils.NormalizeAirportCode(*p.ArrivalAirport, "arrivalAirport"),
		DepartureTime:    departure,
		ArrivalTime:      arrival,
		DurationMinutes:  duration,
	}, nil
}

// timestampLayouts covers the formats retrieval services actually emit.
// Everything is normalized to UTC on the way out.
var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

func parseTimestamp(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}
