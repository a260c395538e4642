// Package service is the read surface over the club cache.
package service

import (
	"context"

	"github.com/use-agent/clubfeed/models"
)

// Cache is the subset of cache.Manager the service needs.
type Cache interface {
	Records(ctx context.Context) ([]models.Club, error)
	Stats() models.SnapshotStats
}

// Clubs serves the current club list.
type Clubs struct {
	cache Cache
}

// NewClubs returns a Clubs service reading from c.
func NewClubs(c Cache) *Clubs {
	return &Clubs{cache: c}
}

// List returns the clubs the cache holds after its freshness decision.
// A successful result is never nil.
func (s *Clubs) List(ctx context.Context) ([]models.Club, error) {
	clubs, err := s.cache.Records(ctx)
	if err != nil {
		return nil, err
	}
	if clubs == nil {
		clubs = []models.Club{}
	}
	return clubs, nil
}

// Stats reports the state of the underlying snapshot.
func (s *Clubs) Stats() models.SnapshotStats {
	return s.cache.Stats()
}
