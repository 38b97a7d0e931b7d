// handlers/admin_handler.go
package handlers

import (
	"fmt"
	"net/http"

	"github.com/quickflightcal/backend/services"
)

// ForceRefreshTimetableHandler handles POST /api/admin/refresh-timetable:
// unconditionally re-download the published timetable CSV and swap it in.
func ForceRefreshTimetableHandler(updater *services.TimetableUpdater) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			respondWithError(w, http.StatusMethodNotAllowed, "Only POST method is allowed", "")
			return
		}

		if err := updater.ForceUpdateTimetable(); err != nil {
			respondWithError(w, http.StatusInternalServerError,
				fmt.Sprintf("Failed to force refresh timetable data: %v", err), "")
			return
		}

		respondWithJSON(w, http.StatusOK, map[string]string{
			"message": "Timetable data refresh completed successfully.",
		})
	}
}

// CheckAndUpdateTimetableHandler handles POST /api/admin/check-update-timetable:
// refresh only if the publication page advertises a newer effective window.
func CheckAndUpdateTimetableHandler(updater *services.TimetableUpdater) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			respondWithError(w, http.StatusMethodNotAllowed, "Only POST method is allowed", "")
			return
		}

		if err := updater.UpdateTimetableIfNeeded(); err != nil {
			respondWithError(w, http.StatusInternalServerError,
				fmt.Sprintf("Failed to check/update timetable data: %v", err), "")
			return
		}

		respondWithJSON(w, http.StatusOK, map[string]string{
			"message": "Timetable check-and-update completed.",
		})
	}
}
