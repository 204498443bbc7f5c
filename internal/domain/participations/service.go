package participations

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/gatherline/server/internal/bus"
	"github.com/gatherline/server/internal/domain/ids"
)

// Service dispatches participation mutations: every successful write mutates
// the store and publishes the matching topic; a failed write publishes
// nothing.
type Service struct {
	repo      Repository
	pub       bus.Publisher
	logger    zerolog.Logger
	validator *validator.Validate
}

func NewService(repo Repository, pub bus.Publisher, logger zerolog.Logger) *Service {
	return &Service{
		repo:      repo,
		pub:       pub,
		logger:    logger.With().Str("component", "participations").Logger(),
		validator: validator.New(),
	}
}

// List returns all participations in insertion order.
func (s *Service) List(ctx context.Context) []Participation {
	return s.repo.List(ctx)
}

// Get returns the participation with the given id, or ErrNotFound.
func (s *Service) Get(ctx context.Context, id string) (*Participation, error) {
	return s.repo.GetByID(ctx, ids.Normalize(id))
}

// Create validates the payload, inserts the participation (id minted by the
// store), and publishes the created topic. Account and event references are
// stored verbatim, dangling or not.
func (s *Service) Create(ctx context.Context, params CreateParams) (*Participation, error) {
	if err := s.validator.Struct(params); err != nil {
		return nil, fmt.Errorf("validate participation: %w", err)
	}

	part, err := s.repo.Insert(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("insert participation: %w", err)
	}

	s.logger.Debug().Str("id", part.ID).Msg("participation created")
	s.pub.Publish(TopicCreated, *part)
	return part, nil
}

// Update patches the participation by id. On a miss it returns ErrNotFound
// and publishes nothing; on success it publishes the updated topic.
func (s *Service) Update(ctx context.Context, id string, params UpdateParams) (*Participation, error) {
	part, err := s.repo.Patch(ctx, ids.Normalize(id), params)
	if err != nil {
		return nil, err
	}

	s.logger.Debug().Str("id", part.ID).Msg("participation updated")
	s.pub.Publish(TopicUpdated, *part)
	return part, nil
}

// Delete removes the participation by id. On a miss it returns ErrNotFound
// and publishes nothing; on success it publishes the deleted topic.
func (s *Service) Delete(ctx context.Context, id string) (*Participation, error) {
	part, err := s.repo.Remove(ctx, ids.Normalize(id))
	if err != nil {
		return nil, err
	}

	s.logger.Debug().Str("id", part.ID).Msg("participation deleted")
	s.pub.Publish(TopicDeleted, *part)
	return part, nil
}

// DeleteAll clears the collection and publishes one deleted topic per removed
// participation, in their original order. Never fails.
func (s *Service) DeleteAll(ctx context.Context) []Participation {
	removed := s.repo.Clear(ctx)
	for _, part := range removed {
		s.pub.Publish(TopicDeleted, part)
	}
	if len(removed) > 0 {
		s.logger.Debug().Int("count", len(removed)).Msg("participations cleared")
	}
	return removed
}
