// resolver/source.go
package resolver

import (
	"context"
	"time"

	"github.com/quickflightcal/backend/models"
)

// Source resolves a normalized flight identifier against one route dataset.
// The static timetable and the remote retrieval service are interchangeable
// implementations, selected by configuration.
type Source interface {
	// Name returns a human-readable source name for logging.
	Name() string

	// Resolve turns an identifier plus the caller's reference instant into a
	// concrete FlightLeg. Failures come back as *models.ResolutionError
	// through the error return; nothing is panicked across this boundary.
	Resolve(ctx context.Context, id models.FlightIdentifier, ref time.Time) (*models.FlightLeg, error)
}
