// Package session keeps each browser's in-progress profile and its pending
// submission flag.
package session

import (
	"context"

	"github.com/BerylCAtieno/scheme-recommender/internal/models"
)

// Store is safe for concurrent use. Load on an unknown id returns an empty
// Profile.
type Store interface {
	Load(ctx context.Context, id string) (models.Profile, error)
	Save(ctx context.Context, id string, p models.Profile) error
	Delete(ctx context.Context, id string) error

	TryAcquire(ctx context.Context, id string) (bool, error)
	Release(ctx context.Context, id string) error
	Pending(ctx context.Context, id string) (bool, error)
}
