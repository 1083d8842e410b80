package form

import (
	"context"
	"errors"
	"fmt"

	"github.com/BerylCAtieno/scheme-recommender/internal/logger"
	"github.com/BerylCAtieno/scheme-recommender/internal/metrics"
	"github.com/BerylCAtieno/scheme-recommender/internal/models"
)

// ErrSubmissionPending is returned when the session already has a request
// in flight.
var ErrSubmissionPending = errors.New("submission already pending")

// Fetcher issues a single recommendation request.
type Fetcher interface {
	FetchSchemes(ctx context.Context, p models.Profile) models.SchemeResponse
}

// PendingLock tracks which form sessions have a request in flight.
type PendingLock interface {
	TryAcquire(ctx context.Context, sessionID string) (bool, error)
	Release(ctx context.Context, sessionID string) error
}

// Submitter allows at most one in-flight request per session.
type Submitter struct {
	fetcher Fetcher
	lock    PendingLock
	logger  logger.Logger
}

func NewSubmitter(fetcher Fetcher, lock PendingLock, log logger.Logger) *Submitter {
	return &Submitter{fetcher: fetcher, lock: lock, logger: log}
}

// Submit sends p on behalf of sessionID. If a previous Submit for the same
// session has not returned yet, no request is made and ErrSubmissionPending
// is returned.
func (s *Submitter) Submit(ctx context.Context, sessionID string, p models.Profile) (models.SchemeResponse, error) {
	ok, err := s.lock.TryAcquire(ctx, sessionID)
	if err != nil {
		return models.SchemeResponse{}, fmt.Errorf("acquire pending flag: %w", err)
	}
	if !ok {
		metrics.SubmissionsTotal.WithLabelValues(metrics.OutcomePending).Inc()
		return models.SchemeResponse{}, ErrSubmissionPending
	}
	defer func() {
		// The flag must be cleared even when ctx was cancelled.
		if err := s.lock.Release(context.WithoutCancel(ctx), sessionID); err != nil {
			s.logger.WithError(err).Warn("release pending flag", map[string]interface{}{"session": sessionID})
		}
	}()

	resp := s.fetcher.FetchSchemes(ctx, p)

	switch {
	case resp.Error == models.FetchFailedMessage:
		metrics.SubmissionsTotal.WithLabelValues(metrics.OutcomeFetchFailed).Inc()
	case resp.Failed():
		metrics.SubmissionsTotal.WithLabelValues(metrics.OutcomeAppError).Inc()
	default:
		metrics.SubmissionsTotal.WithLabelValues(metrics.OutcomeSuccess).Inc()
	}
	return resp, nil
}
