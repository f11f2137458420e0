package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/comitanigiacomo/smokefree-tracker/internal/core/domain"
)

var _ domain.QuitProfileRepository = (*SQLQuitProfileRepository)(nil)

const quitProfileColumns = `id, user_id, quit_date, cigarettes_per_day, cost_per_pack,
	cigarettes_per_pack, personal_goal, created_at, updated_at`

type SQLQuitProfileRepository struct {
	db *sqlx.DB
}

func NewSQLQuitProfileRepository(db *sqlx.DB) *SQLQuitProfileRepository {
	return &SQLQuitProfileRepository{db: db}
}

// Upsert keeps the original id and created_at of an existing profile and
// writes the stored row back into profile.
func (r *SQLQuitProfileRepository) Upsert(ctx context.Context, profile *domain.QuitProfile) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	query := r.db.Rebind(`
		INSERT INTO quit_profiles (` + quitProfileColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (user_id) DO UPDATE SET
			quit_date           = excluded.quit_date,
			cigarettes_per_day  = excluded.cigarettes_per_day,
			cost_per_pack       = excluded.cost_per_pack,
			cigarettes_per_pack = excluded.cigarettes_per_pack,
			personal_goal       = excluded.personal_goal,
			updated_at          = excluded.updated_at
		RETURNING ` + quitProfileColumns)

	var stored domain.QuitProfile
	err := r.db.QueryRowxContext(ctx, query,
		profile.ID,
		profile.UserID,
		profile.QuitDate.Format(domain.DateLayout),
		profile.CigarettesPerDay,
		profile.CostPerPack,
		profile.CigarettesPerPack,
		profile.PersonalGoal,
		profile.CreatedAt,
		profile.UpdatedAt,
	).StructScan(&stored)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrUserNotFound
		}
		return fmt.Errorf("repository: upsert quit profile failed: %w", err)
	}

	stored.QuitDate = domain.TruncateToDay(stored.QuitDate)
	*profile = stored
	return nil
}

func (r *SQLQuitProfileRepository) GetByUserID(ctx context.Context, userID string) (*domain.QuitProfile, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	query := r.db.Rebind(`SELECT ` + quitProfileColumns + ` FROM quit_profiles WHERE user_id = ?`)

	var profile domain.QuitProfile
	if err := r.db.GetContext(ctx, &profile, query, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrQuitProfileNotFound
		}
		return nil, fmt.Errorf("repository: get quit profile failed: %w", err)
	}

	profile.QuitDate = domain.TruncateToDay(profile.QuitDate)
	return &profile, nil
}
