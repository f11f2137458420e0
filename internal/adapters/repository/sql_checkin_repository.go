package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/comitanigiacomo/smokefree-tracker/internal/core/domain"
)

var _ domain.CheckInRepository = (*SQLCheckInRepository)(nil)

const checkInColumns = `id, user_id, date, craving_intensity, mood, notes, created_at`

type SQLCheckInRepository struct {
	db *sqlx.DB
}

func NewSQLCheckInRepository(db *sqlx.DB) *SQLCheckInRepository {
	return &SQLCheckInRepository{db: db}
}

func (r *SQLCheckInRepository) Create(ctx context.Context, checkIn *domain.CheckIn) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	query := r.db.Rebind(`
		INSERT INTO check_ins (` + checkInColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?)`)

	_, err := r.db.ExecContext(ctx, query,
		checkIn.ID,
		checkIn.UserID,
		checkIn.Date.Format(domain.DateLayout),
		checkIn.CravingIntensity,
		checkIn.Mood,
		checkIn.Notes,
		checkIn.CreatedAt,
	)
	if err != nil {
		switch {
		case isUniqueViolation(err):
			return domain.ErrCheckInExists
		case isForeignKeyViolation(err):
			return domain.ErrUserNotFound
		}
		return fmt.Errorf("repository: create check-in failed: %w", err)
	}
	return nil
}

func (r *SQLCheckInRepository) ListByUserID(ctx context.Context, userID string, from, to time.Time) ([]*domain.CheckIn, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var sb strings.Builder
	sb.WriteString(`SELECT ` + checkInColumns + ` FROM check_ins WHERE user_id = ?`)
	args := []any{userID}

	if !from.IsZero() {
		sb.WriteString(` AND date >= ?`)
		args = append(args, domain.TruncateToDay(from).Format(domain.DateLayout))
	}
	if !to.IsZero() {
		sb.WriteString(` AND date <= ?`)
		args = append(args, domain.TruncateToDay(to).Format(domain.DateLayout))
	}
	sb.WriteString(` ORDER BY date DESC`)

	checkIns := []*domain.CheckIn{}
	if err := r.db.SelectContext(ctx, &checkIns, r.db.Rebind(sb.String()), args...); err != nil {
		return nil, fmt.Errorf("repository: list check-ins failed: %w", err)
	}

	for _, c := range checkIns {
		c.Date = domain.TruncateToDay(c.Date)
	}
	return checkIns, nil
}
