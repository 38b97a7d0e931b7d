// resolver/overnight.go
package resolver

import "time"

// AdjustOvernight decides which calendar day a time-of-day schedule lands on.
// If the caller's reference instant is strictly later than the computed
// departure, the naive same-day departure has already passed and the flight
// actually leaves the next calendar day, same time-of-day. All arithmetic is
// UTC calendar-day stepping; no timezone database is involved.
//
// Policy: this adjustment applies uniformly in every resolution variant and
// always compares against the caller-supplied reference instant.
func AdjustOvernight(computed, ref time.Time) time.Time {
	if ref.After(computed) {
		return computed.AddDate(0, 0, 1)
	}
	return computed
}
