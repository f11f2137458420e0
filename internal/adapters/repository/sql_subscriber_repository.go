package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/comitanigiacomo/smokefree-tracker/internal/core/domain"
)

var _ domain.SubscriberRepository = (*SQLSubscriberRepository)(nil)

const subscriberColumns = `id, email, consent, consented_at, source, created_at, updated_at`

type SQLSubscriberRepository struct {
	db *sqlx.DB
}

func NewSQLSubscriberRepository(db *sqlx.DB) *SQLSubscriberRepository {
	return &SQLSubscriberRepository{db: db}
}

func (r *SQLSubscriberRepository) Upsert(ctx context.Context, subscriber *domain.EmailSubscriber) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	query := r.db.Rebind(`
		INSERT INTO email_subscribers (` + subscriberColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (email) DO UPDATE SET
			consent      = excluded.consent,
			consented_at = excluded.consented_at,
			source       = CASE WHEN excluded.source = ? THEN email_subscribers.source ELSE excluded.source END,
			updated_at   = excluded.updated_at
		RETURNING ` + subscriberColumns)

	var stored domain.EmailSubscriber
	err := r.db.QueryRowxContext(ctx, query,
		subscriber.ID,
		subscriber.Email,
		subscriber.Consent,
		subscriber.ConsentedAt,
		subscriber.Source,
		subscriber.CreatedAt,
		subscriber.UpdatedAt,
		domain.DefaultSubscriberSource,
	).StructScan(&stored)
	if err != nil {
		return fmt.Errorf("repository: upsert subscriber failed: %w", err)
	}

	*subscriber = stored
	return nil
}

func (r *SQLSubscriberRepository) GetByEmail(ctx context.Context, email string) (*domain.EmailSubscriber, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	query := r.db.Rebind(`SELECT ` + subscriberColumns + ` FROM email_subscribers WHERE email = ?`)

	var subscriber domain.EmailSubscriber
	if err := r.db.GetContext(ctx, &subscriber, query, email); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrSubscriberNotFound
		}
		return nil, fmt.Errorf("repository: get subscriber failed: %w", err)
	}
	return &subscriber, nil
}
