// models/flight.go
package models

import "time"

// FlightIdentifier is a normalized flight number, split into its carrier and
// numeric parts (e.g. "LH" + 458). Only the resolver's Normalize produces
// these; free text that fails the flight-number pattern never becomes one.
type FlightIdentifier struct {
	CarrierCode string // 2-3 uppercase letters, e.g. "LH"
	NumberText  string // numeric suffix as entered, e.g. "458"
	Number      int    // numeric suffix as an integer
}

// String returns the canonical flight-number form, e.g. "LH458".
// This is also the timetable lookup key.
func (id FlightIdentifier) String() string {
	return id.CarrierCode + id.NumberText
}

// RouteRecord is one scheduled leg template from the timetable dataset.
// CSV tags EXACTLY match the headers of the published timetable CSV.
// The schedule carries a time-of-day only; the concrete calendar day comes
// from the caller's travel date at resolution time.
type RouteRecord struct {
	Airline          string `csv:"Airline"`     // carrier code, e.g. "LH"
	FlightNumber     string `csv:"Flight"`      // full flight number, e.g. "LH458"
	Number           int    `csv:"Number"`      // numeric suffix, e.g. 458
	DepartureAirport string `csv:"DepAirport"`  // 3-letter IATA code
	ArrivalAirport   string `csv:"ArrAirport"`  // 3-letter IATA code
	DepartureTime    string `csv:"DepTimeUTC"`  // "HH:MM", UTC, no date
	DurationMinutes  int    `csv:"DurationMin"` // scheduled block time
}

// FlightLeg is a fully resolved flight segment, owned by the caller that
// requested it. ArrivalTime is always DepartureTime plus DurationMinutes,
// exactly.
type FlightLeg struct {
	Airline          string    `json:"airline"`
	FlightNumber     string    `json:"flightNumber"`
	Number           int       `json:"number"`
	DepartureAirport string    `json:"departureAirport"`
	ArrivalAirport   string    `json:"arrivalAirport"`
	DepartureTime    time.Time `json:"departureTime"`
	ArrivalTime      time.Time `json:"arrivalTime"`
	DurationMinutes  int       `json:"duration"`
}
