package services

import (
	"context"
	"fmt"

	"github.com/comitanigiacomo/smokefree-tracker/internal/core/domain"
)

// SubscriptionDispatcher hands a stored subscriber off for marketing sync.
// Dispatch must not block the request path.
type SubscriptionDispatcher interface {
	Dispatch(subscriber *domain.EmailSubscriber)
}

type SubscriptionService struct {
	repo       domain.SubscriberRepository
	dispatcher SubscriptionDispatcher
	clock      Clock
}

func NewSubscriptionService(repo domain.SubscriberRepository, dispatcher SubscriptionDispatcher) *SubscriptionService {
	return &SubscriptionService{
		repo:       repo,
		dispatcher: dispatcher,
		clock:      systemClock,
	}
}

func (s *SubscriptionService) WithClock(clock Clock) *SubscriptionService {
	s.clock = clock
	return s
}

type SubscribeInput struct {
	Email   string
	Consent bool
	Source  string
}

// Subscribe stores consent locally first. The marketing sync happens
// afterwards and its failures never surface to the caller.
func (s *SubscriptionService) Subscribe(ctx context.Context, input SubscribeInput) (*domain.EmailSubscriber, error) {
	subscriber, err := domain.NewEmailSubscriber(input.Email, input.Consent, input.Source, s.clock())
	if err != nil {
		return nil, err
	}

	if err := s.repo.Upsert(ctx, subscriber); err != nil {
		return nil, fmt.Errorf("subscription service: store subscriber: %w", err)
	}

	if s.dispatcher != nil {
		s.dispatcher.Dispatch(subscriber)
	}

	return subscriber, nil
}

func (s *SubscriptionService) Status(ctx context.Context, email string) (*domain.EmailSubscriber, error) {
	email = domain.NormalizeEmail(email)
	if !domain.IsValidEmail(email) {
		return nil, domain.ErrInvalidEmail
	}
	return s.repo.GetByEmail(ctx, email)
}
