// services/resolution_service.go
package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/quickflightcal/backend/models"
	"github.com/quickflightcal/backend/resolver"
)

// ResolutionService orchestrates one flight-leg resolution: normalize the raw
// input, then drive the configured source with bounded retries. There is no
// shared mutable state here; concurrent resolutions are fully independent.
type ResolutionService struct {
	Source      resolver.Source
	MaxAttempts int
	BaseDelay   time.Duration

	// sleep suspends between attempts; tests swap it out so retry paths run
	// without real delays.
	sleep func(ctx context.Context, d time.Duration) error
}

func NewResolutionService(source resolver.Source, maxAttempts int, baseDelay time.Duration) *ResolutionService {
	if maxAttempts <= 0 {
		maxAttempts = 3
	}
	if baseDelay <= 0 {
		baseDelay = time.Second
	}
	return &ResolutionService{
		Source:      source,
		MaxAttempts: maxAttempts,
		BaseDelay:   baseDelay,
		sleep:       sleepCtx,
	}
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// ResolveFlightLeg turns raw flight-number text plus a travel date into a
// FlightLeg or a *models.ResolutionError.
//
// Terminal failures (InvalidFormat, NotFound) return immediately. Retryable
// failures (transport, parse, schema) are retried up to MaxAttempts with a
// linear backoff of attempt*BaseDelay between attempts; only the final
// failure surfaces, wrapped as ExhaustedRetries naming the flight number and
// the attempt count. A cancelled context aborts at the next suspension point
// and never commits a result.
func (s *ResolutionService) ResolveFlightLeg(ctx context.Context, rawFlightNumber string, date time.Time) (*models.FlightLeg, error) {
	id, err := resolver.Normalize(rawFlightNumber)
	if err != nil {
		return nil, err
	}

	var lastErr *models.ResolutionError
	for attempt := 1; attempt <= s.MaxAttempts; attempt++ {
		log.Printf("Service: Attempt %d/%d to resolve flight %s via %s\n", attempt, s.MaxAttempts, id, s.Source.Name())

		leg, err := s.Source.Resolve(ctx, id, date)
		if err == nil {
			return leg, nil
		}

		var resErr *models.ResolutionError
		if !errors.As(err, &resErr) {
			// Sources only emit ResolutionError; anything else is a transport
			// fault from below them.
			resErr = &models.ResolutionError{Kind: models.ErrTransportFailure, Message: err.Error()}
		}
		log.Printf("Service: Attempt %d for flight %s failed: %s (%s)\n", attempt, id, resErr.Message, resErr.Kind)

		if !resErr.Retryable() {
			return nil, resErr
		}
		lastErr = resErr

		if attempt < s.MaxAttempts {
			// Linear backoff: the delay grows by one base unit per attempt.
			if err := s.sleep(ctx, time.Duration(attempt)*s.BaseDelay); err != nil {
				return nil, &models.ResolutionError{
					Kind:    models.ErrTransportFailure,
					Message: fmt.Sprintf("resolution of flight %s cancelled: %v", id, err),
				}
			}
		}
	}

	return nil, &models.ResolutionError{
		Kind:    models.ErrExhaustedRetries,
		Message: fmt.Sprintf("Failed to fetch flight info for %s after %d attempts: %s", id, s.MaxAttempts, lastErr.Message),
	}
}
