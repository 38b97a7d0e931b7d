// models/meta.go
package models

import "time"

// TimetableEffectiveInfo holds the scraped effective-date window of the
// published timetable dataset.
type TimetableEffectiveInfo struct {
	EffectiveFrom  time.Time
	EffectiveUntil time.Time
	RawDateString  string    // the full "Effective ... until ..." string scraped
	LastChecked    time.Time // when this information was scraped
}
