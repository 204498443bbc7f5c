package accounts

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/gatherline/server/internal/bus"
	"github.com/gatherline/server/internal/domain/ids"
)

// Service dispatches account mutations: every successful write mutates the
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
		logger:    logger.With().Str("component", "accounts").Logger(),
		validator: validator.New(),
	}
}

// List returns all accounts in insertion order. Read-only; the bus is not
// involved.
func (s *Service) List(ctx context.Context) []Account {
	return s.repo.List(ctx)
}

// Get returns the account with the given id, or ErrNotFound.
func (s *Service) Get(ctx context.Context, id string) (*Account, error) {
	return s.repo.GetByID(ctx, ids.Normalize(id))
}

// Create validates the payload, inserts the account (id minted by the store),
// and publishes the created topic with the full stored entity.
func (s *Service) Create(ctx context.Context, params CreateParams) (*Account, error) {
	if err := s.validator.Struct(params); err != nil {
		return nil, fmt.Errorf("validate account: %w", err)
	}

	acct, err := s.repo.Insert(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("insert account: %w", err)
	}

	s.logger.Debug().Str("id", acct.ID).Msg("account created")
	s.pub.Publish(TopicCreated, *acct)
	return acct, nil
}

// Update patches the account by id. On a miss it returns ErrNotFound and
// publishes nothing; on success it publishes the updated topic with the
// merged entity.
func (s *Service) Update(ctx context.Context, id string, params UpdateParams) (*Account, error) {
	acct, err := s.repo.Patch(ctx, ids.Normalize(id), params)
	if err != nil {
		return nil, err
	}

	s.logger.Debug().Str("id", acct.ID).Msg("account updated")
	s.pub.Publish(TopicUpdated, *acct)
	return acct, nil
}

// Delete removes the account by id. On a miss it returns ErrNotFound and
// publishes nothing; on success it publishes the deleted topic with the
// removed entity.
func (s *Service) Delete(ctx context.Context, id string) (*Account, error) {
	acct, err := s.repo.Remove(ctx, ids.Normalize(id))
	if err != nil {
		return nil, err
	}

	s.logger.Debug().Str("id", acct.ID).Msg("account deleted")
	s.pub.Publish(TopicDeleted, *acct)
	return acct, nil
}

// DeleteAll clears the collection and publishes one deleted topic per removed
// account, in their original order. Never fails; an empty collection yields
// an empty result and no events.
func (s *Service) DeleteAll(ctx context.Context) []Account {
	removed := s.repo.Clear(ctx)
	for _, acct := range removed {
		s.pub.Publish(TopicDeleted, acct)
	}
	if len(removed) > 0 {
		s.logger.Debug().Int("count", len(removed)).Msg("accounts cleared")
	}
	return removed
}
