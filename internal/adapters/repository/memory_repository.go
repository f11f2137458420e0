package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/comitanigiacomo/smokefree-tracker/internal/core/domain"
)

// In-memory repositories back DB_DRIVER=memory and the handler tests. They
// store copies so callers cannot mutate stored state.

type InMemoryUserRepository struct {
	byID    map[string]domain.User
	byEmail map[string]string

	mu sync.RWMutex
}

func NewInMemoryUserRepository() *InMemoryUserRepository {
	return &InMemoryUserRepository{
		byID:    make(map[string]domain.User),
		byEmail: make(map[string]string),
	}
}

func (r *InMemoryUserRepository) Create(ctx context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	email := user.EmailAddress()
	if email != "" {
		if _, taken := r.byEmail[email]; taken {
			return domain.ErrEmailAlreadyExists
		}
		r.byEmail[email] = user.ID
	}
	r.byID[user.ID] = *user
	return nil
}

func (r *InMemoryUserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return &user, nil
}

func (r *InMemoryUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byEmail[email]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	user := r.byID[id]
	return &user, nil
}

func (r *InMemoryUserRepository) EnsureGuest(ctx context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[user.ID]; !ok {
		r.byID[user.ID] = *user
	}
	return nil
}

type InMemoryQuitProfileRepository struct {
	byUser map[string]domain.QuitProfile

	mu sync.RWMutex
}

func NewInMemoryQuitProfileRepository() *InMemoryQuitProfileRepository {
	return &InMemoryQuitProfileRepository{
		byUser: make(map[string]domain.QuitProfile),
	}
}

func (r *InMemoryQuitProfileRepository) Upsert(ctx context.Context, profile *domain.QuitProfile) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, ok := r.byUser[profile.UserID]; ok {
		profile.ID = existing.ID
		profile.CreatedAt = existing.CreatedAt
	}
	r.byUser[profile.UserID] = *profile
	return nil
}

func (r *InMemoryQuitProfileRepository) GetByUserID(ctx context.Context, userID string) (*domain.QuitProfile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	profile, ok := r.byUser[userID]
	if !ok {
		return nil, domain.ErrQuitProfileNotFound
	}
	return &profile, nil
}

type InMemoryCheckInRepository struct {
	byUser map[string]map[string]domain.CheckIn

	mu sync.RWMutex
}

func NewInMemoryCheckInRepository() *InMemoryCheckInRepository {
	return &InMemoryCheckInRepository{
		byUser: make(map[string]map[string]domain.CheckIn),
	}
}

func (r *InMemoryCheckInRepository) Create(ctx context.Context, checkIn *domain.CheckIn) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	day := checkIn.Date.Format(domain.DateLayout)
	days, ok := r.byUser[checkIn.UserID]
	if !ok {
		days = make(map[string]domain.CheckIn)
		r.byUser[checkIn.UserID] = days
	}
	if _, exists := days[day]; exists {
		return domain.ErrCheckInExists
	}
	days[day] = *checkIn
	return nil
}

func (r *InMemoryCheckInRepository) ListByUserID(ctx context.Context, userID string, from, to time.Time) ([]*domain.CheckIn, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if !from.IsZero() {
		from = domain.TruncateToDay(from)
	}
	if !to.IsZero() {
		to = domain.TruncateToDay(to)
	}

	checkIns := []*domain.CheckIn{}
	for _, c := range r.byUser[userID] {
		c := c
		if !from.IsZero() && c.Date.Before(from) {
			continue
		}
		if !to.IsZero() && c.Date.After(to) {
			continue
		}
		checkIns = append(checkIns, &c)
	}

	sort.Slice(checkIns, func(i, j int) bool {
		return checkIns[i].Date.After(checkIns[j].Date)
	})

	return checkIns, nil
}

type InMemorySubscriberRepository struct {
	byEmail map[string]domain.EmailSubscriber

	mu sync.RWMutex
}

func NewInMemorySubscriberRepository() *InMemorySubscriberRepository {
	return &InMemorySubscriberRepository{
		byEmail: make(map[string]domain.EmailSubscriber),
	}
}

func (r *InMemorySubscriberRepository) Upsert(ctx context.Context, subscriber *domain.EmailSubscriber) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, ok := r.byEmail[subscriber.Email]; ok {
		subscriber.ID = existing.ID
		subscriber.CreatedAt = existing.CreatedAt
		if subscriber.Source == domain.DefaultSubscriberSource {
			subscriber.Source = existing.Source
		}
	}
	r.byEmail[subscriber.Email] = *subscriber
	return nil
}

func (r *InMemorySubscriberRepository) GetByEmail(ctx context.Context, email string) (*domain.EmailSubscriber, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	subscriber, ok := r.byEmail[email]
	if !ok {
		return nil, domain.ErrSubscriberNotFound
	}
	return &subscriber, nil
}
