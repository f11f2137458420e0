package services

import (
	"context"
	"sync"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/comitanigiacomo/smokefree-tracker/internal/core/domain"
)

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *domain.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) EnsureGuest(ctx context.Context, user *domain.User) error {
	return m.Called(ctx, user).Error(0)
}

type MockQuitProfileRepository struct {
	mock.Mock
}

func (m *MockQuitProfileRepository) Upsert(ctx context.Context, profile *domain.QuitProfile) error {
	return m.Called(ctx, profile).Error(0)
}

func (m *MockQuitProfileRepository) GetByUserID(ctx context.Context, userID string) (*domain.QuitProfile, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.QuitProfile), args.Error(1)
}

type MockCheckInRepository struct {
	mock.Mock
}

func (m *MockCheckInRepository) Create(ctx context.Context, checkIn *domain.CheckIn) error {
	return m.Called(ctx, checkIn).Error(0)
}

func (m *MockCheckInRepository) ListByUserID(ctx context.Context, userID string, from, to time.Time) ([]*domain.CheckIn, error) {
	args := m.Called(ctx, userID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.CheckIn), args.Error(1)
}

type MockSubscriberRepository struct {
	mock.Mock
}

func (m *MockSubscriberRepository) Upsert(ctx context.Context, subscriber *domain.EmailSubscriber) error {
	return m.Called(ctx, subscriber).Error(0)
}

func (m *MockSubscriberRepository) GetByEmail(ctx context.Context, email string) (*domain.EmailSubscriber, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.EmailSubscriber), args.Error(1)
}

type recordingDispatcher struct {
	mu   sync.Mutex
	seen []*domain.EmailSubscriber
}

func (d *recordingDispatcher) Dispatch(subscriber *domain.EmailSubscriber) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.seen = append(d.seen, subscriber)
}

func fixedClock(t time.Time) Clock {
	return func() time.Time { return t }
}
