// handlers/flight_handler.go
package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/quickflightcal/backend/calendar"
	"github.com/quickflightcal/backend/models"
	"github.com/quickflightcal/backend/services"
)

// Helper to respond with JSON.
func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		log.Printf("Handler ERROR: Marshalling JSON response: %v", err)
		http.Error(w, `{"error":"Failed to marshal JSON response"}`, http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(response)
}

// Helper to respond with an error body, optionally carrying a feedback link.
func respondWithError(w http.ResponseWriter, code int, message, feedbackLink string) {
	log.Printf("Handler API Error %d: %s", code, message)
	respondWithJSON(w, code, models.ErrorResponse{Error: message, FeedbackLink: feedbackLink})
}

// respondWithResolutionError maps every ResolutionError kind to an HTTP
// status. The switch is exhaustive over models.ErrorKind so a new kind shows
// up here as a compile-time review item, not a silent 500.
func respondWithResolutionError(w http.ResponseWriter, err error) {
	var resErr *models.ResolutionError
	if !errors.As(err, &resErr) {
		respondWithError(w, http.StatusInternalServerError, err.Error(), "")
		return
	}

	var code int
	switch resErr.Kind {
	case models.ErrInvalidFormat, models.ErrNotFound:
		code = http.StatusBadRequest
	case models.ErrExhaustedRetries:
		code = http.StatusInternalServerError
	case models.ErrParseFailure, models.ErrSchemaValidation, models.ErrTransportFailure:
		// Retryable kinds normally die inside the retry loop; if one escapes
		// (cancellation), it is still a server-side failure.
		code = http.StatusInternalServerError
	default:
		code = http.StatusInternalServerError
	}
	respondWithError(w, code, resErr.Message, resErr.FeedbackLink)
}

// parseDateParam accepts both plain dates and full RFC 3339 instants, so a
// caller can supply "now" as the reference instant for overnight rollover.
func parseDateParam(dateStr string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", dateStr); err == nil {
		return t.UTC(), nil
	}
	return time.Parse(time.RFC3339, dateStr)
}

// FlightInfoHandler handles GET /api/flight-info?flightNumber=LH458&date=2024-03-01
// and returns the resolved FlightLeg as JSON.
func FlightInfoHandler(svc *services.ResolutionService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			respondWithError(w, http.StatusMethodNotAllowed, "Only GET method is allowed", "")
			return
		}

		flightNumber := r.URL.Query().Get("flightNumber")
		dateStr := r.URL.Query().Get("date")
		if flightNumber == "" || dateStr == "" {
			respondWithError(w, http.StatusBadRequest, "Missing flightNumber or date parameter", "")
			return
		}

		date, err := parseDateParam(dateStr)
		if err != nil {
			respondWithError(w, http.StatusBadRequest, "Invalid date format. Use YYYY-MM-DD or RFC 3339.", "")
			return
		}

		log.Printf("Handler: Received flight-info request for %s on %s\n", flightNumber, date.Format(time.RFC3339))

		leg, err := svc.ResolveFlightLeg(r.Context(), flightNumber, date)
		if err != nil {
			respondWithResolutionError(w, err)
			return
		}

		respondWithJSON(w, http.StatusOK, leg)
	}
}

// CalendarLinksHandler handles
// GET /api/calendar-links?flights=LH458,UA123&date=2024-03-01.
// Each leg resolves independently and concurrently; one event covering all
// legs comes back with Google/Outlook/iCal targets.
func CalendarLinksHandler(svc *services.ResolutionService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			respondWithError(w, http.StatusMethodNotAllowed, "Only GET method is allowed", "")
			return
		}

		flightsParam := r.URL.Query().Get("flights")
		dateStr := r.URL.Query().Get("date")
		if flightsParam == "" || dateStr == "" {
			respondWithError(w, http.StatusBadRequest, "Missing flights or date parameter", "")
			return
		}

		date, err := parseDateParam(dateStr)
		if err != nil {
			respondWithError(w, http.StatusBadRequest, "Invalid date format. Use YYYY-MM-DD or RFC 3339.", "")
			return
		}

		var flightNumbers []string
		for _, f := range strings.Split(flightsParam, ",") {
			if f = strings.TrimSpace(f); f != "" {
				flightNumbers = append(flightNumbers, f)
			}
		}
		if len(flightNumbers) == 0 {
			respondWithError(w, http.StatusBadRequest, "No flight numbers provided", "")
			return
		}

		legs := make([]*models.FlightLeg, len(flightNumbers))
		errs := make([]error, len(flightNumbers))
		var wg sync.WaitGroup
		for i, flightNumber := range flightNumbers {
			wg.Add(1)
			go func(i int, flightNumber string) {
				defer wg.Done()
				legs[i], errs[i] = svc.ResolveFlightLeg(r.Context(), flightNumber, date)
			}(i, flightNumber)
		}
		wg.Wait()

		// Report the first failed leg in travel order.
		for _, err := range errs {
			if err != nil {
				respondWithResolutionError(w, err)
				return
			}
		}

		resolved := make([]models.FlightLeg, len(legs))
		for i, leg := range legs {
			resolved[i] = *leg
		}

		links, err := calendar.GenerateLinks(resolved)
		if err != nil {
			respondWithError(w, http.StatusInternalServerError, err.Error(), "")
			return
		}

		respondWithJSON(w, http.StatusOK, models.CalendarLinksResponse{
			Legs:          resolved,
			CalendarLinks: links,
		})
	}
}
