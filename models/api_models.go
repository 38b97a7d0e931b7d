// models/api_models.go
package models

// ErrorResponse is the JSON error body returned by every API endpoint.
type ErrorResponse struct {
	Error        string `json:"error"`
	FeedbackLink string `json:"feedbackLink,omitempty"`
}

// CalendarLinks holds the three calendar-add targets for one journey.
type CalendarLinks struct {
	GoogleLink  string `json:"googleLink"`
	OutlookLink string `json:"outlookLink"`
	ICalLink    string `json:"icalLink"` // data:text/calendar payload
}

// CalendarLinksResponse is the body for /api/calendar-links: the resolved
// legs plus the links covering all of them.
type CalendarLinksResponse struct {
	Legs []FlightLeg `json:"legs"`
	CalendarLinks
}
