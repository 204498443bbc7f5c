package locations

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/gatherline/server/internal/domain/ids"
)

// Service dispatches location mutations. Unlike the other entity kinds it has
// no publisher: location changes are not observable on any channel.
type Service struct {
	repo      Repository
	logger    zerolog.Logger
	validator *validator.Validate
}

func NewService(repo Repository, logger zerolog.Logger) *Service {
	return &Service{
		repo:      repo,
		logger:    logger.With().Str("component", "locations").Logger(),
		validator: validator.New(),
	}
}

// List returns all locations in insertion order.
func (s *Service) List(ctx context.Context) []Location {
	return s.repo.List(ctx)
}

// Get returns the location with the given id, or ErrNotFound.
func (s *Service) Get(ctx context.Context, id string) (*Location, error) {
	return s.repo.GetByID(ctx, ids.Normalize(id))
}

// Create validates the payload and inserts the location (id minted by the
// store).
func (s *Service) Create(ctx context.Context, params CreateParams) (*Location, error) {
	if err := s.validator.Struct(params); err != nil {
		return nil, fmt.Errorf("validate location: %w", err)
	}

	loc, err := s.repo.Insert(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("insert location: %w", err)
	}

	s.logger.Debug().Str("id", loc.ID).Msg("location created")
	return loc, nil
}

// Update patches the location by id; a miss returns ErrNotFound.
func (s *Service) Update(ctx context.Context, id string, params UpdateParams) (*Location, error) {
	if err := s.validator.Struct(params); err != nil {
		return nil, fmt.Errorf("validate location: %w", err)
	}

	loc, err := s.repo.Patch(ctx, ids.Normalize(id), params)
	if err != nil {
		return nil, err
	}

	s.logger.Debug().Str("id", loc.ID).Msg("location updated")
	return loc, nil
}

// Delete removes the location by id; a miss returns ErrNotFound. Events that
// referenced the location keep their location_id, which now dangles; the
// resolver reports it as absent.
func (s *Service) Delete(ctx context.Context, id string) (*Location, error) {
	loc, err := s.repo.Remove(ctx, ids.Normalize(id))
	if err != nil {
		return nil, err
	}

	s.logger.Debug().Str("id", loc.ID).Msg("location deleted")
	return loc, nil
}

// DeleteAll clears the collection and returns the removed locations in their
// original order. Never fails.
func (s *Service) DeleteAll(ctx context.Context) []Location {
	removed := s.repo.Clear(ctx)
	if len(removed) > 0 {
		s.logger.Debug().Int("count", len(removed)).Msg("locations cleared")
	}
	return removed
}
