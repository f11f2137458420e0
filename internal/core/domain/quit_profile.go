package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrQuitProfileNotFound     = errors.New("quit profile not found")
	ErrQuitDateRequired        = errors.New("quit date is required")
	ErrQuitDateInFuture        = errors.New("quit date cannot be in the future")
	ErrQuitDateTooOld          = errors.New("quit date cannot be before 1900-01-01")
	ErrInvalidCigarettesPerDay = errors.New("cigarettesPerDay must be a positive number")
	ErrTooManyCigarettesPerDay = errors.New("cigarettesPerDay cannot exceed 200")
	ErrInvalidCostPerPack      = errors.New("costPerPack must be a positive number")
	ErrInvalidCigarettesPack   = errors.New("cigarettesPerPack must be a positive number")
	ErrPersonalGoalTooLong     = errors.New("personal goal is too long (max 500 chars)")
)

const (
	DefaultCigarettesPerPack = 20
	MaxCigarettesPerDay      = 200
	MaxPersonalGoalLen       = 500
)

// MinQuitDate is the earliest quit date a profile accepts.
var MinQuitDate = time.Date(1900, 1, 1, 0, 0, 0, 0, time.UTC)

// QuitProfile is the one-per-user smoking history the progress figures are
// derived from. QuitDate is stored at its UTC calendar day.
type QuitProfile struct {
	ID                string    `json:"id" db:"id"`
	UserID            string    `json:"userId" db:"user_id"`
	QuitDate          time.Time `json:"quitDate" db:"quit_date"`
	CigarettesPerDay  int       `json:"cigarettesPerDay" db:"cigarettes_per_day"`
	CostPerPack       float64   `json:"costPerPack" db:"cost_per_pack"`
	CigarettesPerPack int       `json:"cigarettesPerPack" db:"cigarettes_per_pack"`
	PersonalGoal      *string   `json:"personalGoal" db:"personal_goal"`
	CreatedAt         time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt         time.Time `json:"updatedAt" db:"updated_at"`
}

// NewQuitProfile validates the submitted values against now and returns a
// profile ready to be upserted. cigarettesPerPack <= 0 is rejected; callers
// apply DefaultCigarettesPerPack when the field is omitted.
func NewQuitProfile(userID string, quitDate time.Time, cigarettesPerDay int, costPerPack float64, cigarettesPerPack int, personalGoal string, now time.Time) (*QuitProfile, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, ErrUserIDRequired
	}
	if quitDate.IsZero() {
		return nil, ErrQuitDateRequired
	}
	if quitDate.After(now) {
		return nil, ErrQuitDateInFuture
	}
	if quitDate.Before(MinQuitDate) {
		return nil, ErrQuitDateTooOld
	}
	if cigarettesPerDay <= 0 {
		return nil, ErrInvalidCigarettesPerDay
	}
	if cigarettesPerDay > MaxCigarettesPerDay {
		return nil, ErrTooManyCigarettesPerDay
	}
	if costPerPack <= 0 {
		return nil, ErrInvalidCostPerPack
	}
	if cigarettesPerPack <= 0 {
		return nil, ErrInvalidCigarettesPack
	}

	goal := strings.TrimSpace(personalGoal)
	if len([]rune(goal)) > MaxPersonalGoalLen {
		return nil, ErrPersonalGoalTooLong
	}
	var goalPtr *string
	if goal != "" {
		goalPtr = &goal
	}

	ts := now.UTC()
	return &QuitProfile{
		ID:                uuid.NewString(),
		UserID:            userID,
		QuitDate:          TruncateToDay(quitDate),
		CigarettesPerDay:  cigarettesPerDay,
		CostPerPack:       costPerPack,
		CigarettesPerPack: cigarettesPerPack,
		PersonalGoal:      goalPtr,
		CreatedAt:         ts,
		UpdatedAt:         ts,
	}, nil
}

// TruncateToDay drops the time-of-day component at the UTC calendar day.
func TruncateToDay(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}
