package events

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/gatherline/server/internal/bus"
	"github.com/gatherline/server/internal/domain/ids"
)

// Service dispatches event mutations: every successful write mutates the
// store and publishes the matching topic; a failed write publishes nothing.
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
		logger:    logger.With().Str("component", "events").Logger(),
		validator: validator.New(),
	}
}

// List returns all events in insertion order.
func (s *Service) List(ctx context.Context) []Event {
	return s.repo.List(ctx)
}

// Get returns the event with the given id, or ErrNotFound.
func (s *Service) Get(ctx context.Context, id string) (*Event, error) {
	return s.repo.GetByID(ctx, ids.Normalize(id))
}

// Create validates the payload, inserts the event (id minted by the store),
// and publishes the created topic with the full stored entity. Owner and
// location references are stored verbatim, dangling or not.
func (s *Service) Create(ctx context.Context, params CreateParams) (*Event, error) {
	if err := s.validator.Struct(params); err != nil {
		return nil, fmt.Errorf("validate event: %w", err)
	}

	ev, err := s.repo.Insert(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("insert event: %w", err)
	}

	s.logger.Debug().Str("id", ev.ID).Msg("event created")
	s.pub.Publish(TopicCreated, *ev)
	return ev, nil
}

// Update patches the event by id. On a miss it returns ErrNotFound and
// publishes nothing; on success it publishes the updated topic with the
// merged entity.
func (s *Service) Update(ctx context.Context, id string, params UpdateParams) (*Event, error) {
	ev, err := s.repo.Patch(ctx, ids.Normalize(id), params)
	if err != nil {
		return nil, err
	}

	s.logger.Debug().Str("id", ev.ID).Msg("event updated")
	s.pub.Publish(TopicUpdated, *ev)
	return ev, nil
}

// Delete removes the event by id. On a miss it returns ErrNotFound and
// publishes nothing; on success it publishes the deleted topic with the
// removed entity.
func (s *Service) Delete(ctx context.Context, id string) (*Event, error) {
	ev, err := s.repo.Remove(ctx, ids.Normalize(id))
	if err != nil {
		return nil, err
	}

	s.logger.Debug().Str("id", ev.ID).Msg("event deleted")
	s.pub.Publish(TopicDeleted, *ev)
	return ev, nil
}

// DeleteAll clears the collection and publishes one deleted topic per removed
// event, in their original order. Never fails.
func (s *Service) DeleteAll(ctx context.Context) []Event {
	removed := s.repo.Clear(ctx)
	for _, ev := range removed {
		s.pub.Publish(TopicDeleted, ev)
	}
	if len(removed) > 0 {
		s.logger.Debug().Int("count", len(removed)).Msg("events cleared")
	}
	return removed
}
