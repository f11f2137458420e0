package domain

import (
	"context"
	"time"
)

type UserRepository interface {
	// Create persists a registered user. A taken email yields ErrEmailAlreadyExists.
	Create(ctx context.Context, user *User) error

	GetByID(ctx context.Context, id string) (*User, error)

	GetByEmail(ctx context.Context, email string) (*User, error)

	// EnsureGuest creates the guest user if no user with that id exists yet.
	EnsureGuest(ctx context.Context, user *User) error
}

type QuitProfileRepository interface {
	// Upsert creates the user's profile or replaces the mutable fields of the
	// existing one. The stored record is written back into profile.
	Upsert(ctx context.Context, profile *QuitProfile) error

	// GetByUserID returns ErrQuitProfileNotFound when the user never onboarded.
	GetByUserID(ctx context.Context, userID string) (*QuitProfile, error)
}

type CheckInRepository interface {
	// Create fails with ErrCheckInExists if the user already has a check-in on that date.
	Create(ctx context.Context, checkIn *CheckIn) error

	// ListByUserID returns check-ins newest first. Zero from/to leave that side unbounded.
	ListByUserID(ctx context.Context, userID string, from, to time.Time) ([]*CheckIn, error)
}

type SubscriberRepository interface {
	// Upsert keys on email; an existing row gets consent, consented_at and,
	// when the new source is not the default, source refreshed.
	Upsert(ctx context.Context, subscriber *EmailSubscriber) error

	GetByEmail(ctx context.Context, email string) (*EmailSubscriber, error)
}
