// handlers/flight_handler_test.go
package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quickflightcal/backend/models"
	"github.com/quickflightcal/backend/resolver"
	"github.com/quickflightcal/backend/services"
	"github.com/quickflightcal/backend/timetable"
)

func newStaticService(t *testing.T) *services.ResolutionService {
	t.Helper()
	store := timetable.NewStore()
	store.Replace([]models.RouteRecord{
		{Airline: "LH", FlightNumber: "LH458", Number: 458, DepartureAirport: "MUC",
			ArrivalAirport: "SFO", DepartureTime: "14:50", DurationMinutes: 1200},
		{Airline: "UA", FlightNumber: "UA123", Number: 123, DepartureAirport: "SFO",
			ArrivalAirport: "EWR", DepartureTime: "13:00", DurationMinutes: 320},
	})
	source := &resolver.StaticSource{Table: store, FeedbackURL: "https://example.test/report"}
	return services.NewResolutionService(source, 3, time.Millisecond)
}

// failingSource always fails with a retryable error.
type failingSource struct{}

func (failingSource) Name() string { return "failing" }

func (failingSource) Resolve(context.Context, models.FlightIdentifier, time.Time) (*models.FlightLeg, error) {
	return nil, &models.ResolutionError{Kind: models.ErrTransportFailure, Message: "service unavailable"}
}

func TestFlightInfoHandlerSuccess(t *testing.T) {
	handler := FlightInfoHandler(newStaticService(t))

	req := httptest.NewRequest(http.MethodGet, "/api/flight-info?flightNumber=LH458&date=2024-03-01", nil)
	rec := httptest.NewRecorder()
	handler(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var leg models.FlightLeg
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &leg))
	assert.Equal(t, "LH458", leg.FlightNumber)
	assert.Equal(t, time.Date(2024, 3, 1, 14, 50, 0, 0, time.UTC), leg.DepartureTime)
	assert.Equal(t, time.Date(2024, 3, 2, 10, 50, 0, 0, time.UTC), leg.ArrivalTime)
}

func TestFlightInfoHandlerNormalizesInput(t *testing.T) {
	handler := FlightInfoHandler(newStaticService(t))

	req := httptest.NewRequest(http.MethodGet, "/api/flight-info?flightNumber=lh+458&date=2024-03-01", nil)
	rec := httptest.NewRecorder()
	handler(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var leg models.FlightLeg
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &leg))
	assert.Equal(t, "LH458", leg.FlightNumber)
}

func TestFlightInfoHandlerMissingParams(t *testing.T) {
	handler := FlightInfoHandler(newStaticService(t))

	for _, target := range []string{
		"/api/flight-info",
		"/api/flight-info?flightNumber=LH458",
		"/api/flight-info?date=2024-03-01",
	} {
		req := httptest.NewRequest(http.MethodGet, target, nil)
		rec := httptest.NewRecorder()
		handler(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code, "target %s", target)
	}
}

func TestFlightInfoHandlerInvalidDate(t *testing.T) {
	handler := FlightInfoHandler(newStaticService(t))

	req := httptest.NewRequest(http.MethodGet, "/api/flight-info?flightNumber=LH458&date=March+1st", nil)
	rec := httptest.NewRecorder()
	handler(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestFlightInfoHandlerInvalidFlightNumber(t *testing.T) {
	handler := FlightInfoHandler(newStaticService(t))

	req := httptest.NewRequest(http.MethodGet, "/api/flight-info?flightNumber=12345&date=2024-03-01", nil)
	rec := httptest.NewRecorder()
	handler(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	var body models.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Invalid flight number", body.Error)
	assert.Empty(t, body.FeedbackLink)
}

func TestFlightInfoHandlerNotFoundCarriesFeedbackLink(t *testing.T) {
	handler := FlightInfoHandler(newStaticService(t))

	req := httptest.NewRequest(http.MethodGet, "/api/flight-info?flightNumber=XX999&date=2024-03-01", nil)
	rec := httptest.NewRecorder()
	handler(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	var body models.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Contains(t, body.Error, "XX999")
	assert.Equal(t, "https://example.test/report", body.FeedbackLink)
}

func TestFlightInfoHandlerExhaustedRetries(t *testing.T) {
	svc := services.NewResolutionService(failingSource{}, 3, time.Millisecond)
	handler := FlightInfoHandler(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/flight-info?flightNumber=LH458&date=2024-03-01", nil)
	rec := httptest.NewRecorder()
	handler(rec, req)

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	var body models.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Contains(t, body.Error, "LH458")
	assert.Contains(t, body.Error, "3 attempts")
}

func TestFlightInfoHandlerMethodNotAllowed(t *testing.T) {
	handler := FlightInfoHandler(newStaticService(t))

	req := httptest.NewRequest(http.MethodPost, "/api/flight-info?flightNumber=LH458&date=2024-03-01", nil)
	rec := httptest.NewRecorder()
	handler(rec, req)

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestCalendarLinksHandlerSuccess(t *testing.T) {
	handler := CalendarLinksHandler(newStaticService(t))

	req := httptest.NewRequest(http.MethodGet, "/api/calendar-links?flights=LH458,UA123&date=2024-03-01", nil)
	rec := httptest.NewRecorder()
	handler(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var body models.CalendarLinksResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Legs, 2)
	assert.Equal(t, "LH458", body.Legs[0].FlightNumber)
	assert.Equal(t, "UA123", body.Legs[1].FlightNumber)
	assert.Contains(t, body.GoogleLink, "www.google.com/calendar/render")
	assert.Contains(t, body.OutlookLink, "outlook.live.com")
	assert.Contains(t, body.ICalLink, "BEGIN:VCALENDAR")
}

func TestCalendarLinksHandlerFailingLeg(t *testing.T) {
	handler := CalendarLinksHandler(newStaticService(t))

	req := httptest.NewRequest(http.MethodGet, "/api/calendar-links?flights=LH458,XX999&date=2024-03-01", nil)
	rec := httptest.NewRecorder()
	handler(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	var body models.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Contains(t, body.Error, "XX999")
}

func TestCalendarLinksHandlerMissingParams(t *testing.T) {
	handler := CalendarLinksHandler(newStaticService(t))

	req := httptest.NewRequest(http.MethodGet, "/api/calendar-links?flights=,,&date=2024-03-01", nil)
	rec := httptest.NewRecorder()
	handler(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
