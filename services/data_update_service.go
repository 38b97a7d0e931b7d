// services/data_update_service.go
package services

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/quickflightcal/backend/config"
	"github.com/quickflightcal/backend/scraper"
	"github.com/quickflightcal/backend/timetable"
)

// TimetableUpdater keeps the in-memory timetable store in sync with the
// published dataset: scrape the publication page for the effective-date
// window, and when a newer window appears, download, parse and swap in the
// fresh CSV.
type TimetableUpdater struct {
	Store *timetable.Store

	lastKnownEffectiveUntil time.Time
}

func NewTimetableUpdater(store *timetable.Store) *TimetableUpdater {
	return &TimetableUpdater{Store: store}
}

// LoadLocalTimetable loads the locally saved CSV into the store at process
// start. A missing file is not fatal - the store stays empty until the first
// refresh (or the remote resolver mode never needs it).
func (u *TimetableUpdater) LoadLocalTimetable() error {
	localPath := config.AppConfig.Timetable.LocalCSVPath
	if localPath == "" {
		return fmt.Errorf("local timetable CSV path is not configured")
	}

	file, err := os.Open(localPath)
	if err != nil {
		if os.IsNotExist(err) {
			log.Printf("Service: No local timetable CSV at %s yet; starting with an empty store.\n", localPath)
			return nil
		}
		return fmt.Errorf("failed to open local timetable CSV %s: %w", localPath, err)
	}
	defer file.Close()

	routes, err := scraper.ParseTimetableCsv(file)
	if err != nil {
		return fmt.Errorf("failed to parse local timetable CSV %s: %w", localPath, err)
	}

	u.Store.Replace(routes)
	return nil
}

// UpdateTimetableIfNeeded scrapes the publication page and refreshes the
// dataset only when its effective-until date moved past the one we already
// loaded.
func (u *TimetableUpdater) UpdateTimetableIfNeeded() error {
	selector := config.AppConfig.Timetable.EffectiveDateSelector
	log.Printf("Service: Checking if a timetable update is needed (selector: '%s')...\n", selector)

	info, err := scraper.ScrapeTimetableEffectiveDates(selector)
	if err != nil {
		return fmt.Errorf("failed to scrape timetable effective dates: %w", err)
	}

	currentUntil := time.Date(info.EffectiveUntil.Year(), info.EffectiveUntil.Month(), info.EffectiveUntil.Day(), 0, 0, 0, 0, time.UTC)
	if !u.lastKnownEffectiveUntil.IsZero() && !currentUntil.After(u.lastKnownEffectiveUntil) {
		log.Printf("Service: No timetable update needed; published dataset still effective until %s.\n",
			currentUntil.Format("2006-01-02"))
		return nil
	}

	log.Printf("Service: Newer timetable dataset detected (effective until %s); refreshing.\n",
		currentUntil.Format("2006-01-02"))
	if err := u.ForceUpdateTimetable(); err != nil {
		return err
	}
	u.lastKnownEffectiveUntil = currentUntil
	return nil
}

// ForceUpdateTimetable unconditionally downloads the published CSV, parses
// it and swaps the new snapshot into the store.
func (u *TimetableUpdater) ForceUpdateTimetable() error {
	log.Println("Service: Forcing timetable dataset update...")

	localPath, err := scraper.DownloadTimetableCsv()
	if err != nil {
		return fmt.Errorf("failed to download timetable CSV: %w", err)
	}

	file, err := os.Open(localPath)
	if err != nil {
		return fmt.Errorf("failed to open downloaded file %s: %w", localPath, err)
	}
	defer file.Close()

	routes, err := scraper.ParseTimetableCsv(file)
	if err != nil {
		return fmt.Errorf("failed to parse timetable CSV from %s: %w", localPath, err)
	}

	u.Store.Replace(routes)
	log.Printf("Service: Successfully refreshed the timetable with %d routes.\n", u.Store.Len())
	return nil
}
