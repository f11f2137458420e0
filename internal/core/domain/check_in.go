package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrCheckInExists           = errors.New("a check-in already exists for this date")
	ErrCheckInDateRequired     = errors.New("check-in date is required")
	ErrCheckInDateInFuture     = errors.New("check-in date cannot be in the future")
	ErrInvalidCravingIntensity = errors.New("craving intensity must be between 1 and 10")
	ErrMoodRequired            = errors.New("mood is required")
	ErrMoodTooLong             = errors.New("mood is too long (max 50 chars)")
	ErrNotesTooLong            = errors.New("notes are too long (max 1000 chars)")
)

const (
	MinCravingIntensity = 1
	MaxCravingIntensity = 10
	MaxMoodLen          = 50
	MaxNotesLen         = 1000
	DateLayout          = "2006-01-02"
)

// CheckIn is a daily record, unique per (UserID, Date) and immutable once stored.
type CheckIn struct {
	ID               string    `json:"id" db:"id"`
	UserID           string    `json:"userId" db:"user_id"`
	Date             time.Time `json:"date" db:"date"`
	CravingIntensity int       `json:"cravingIntensity" db:"craving_intensity"`
	Mood             string    `json:"mood" db:"mood"`
	Notes            *string   `json:"notes" db:"notes"`
	CreatedAt        time.Time `json:"createdAt" db:"created_at"`
}

func NewCheckIn(userID string, date time.Time, cravingIntensity int, mood, notes string, now time.Time) (*CheckIn, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, ErrUserIDRequired
	}
	if date.IsZero() {
		return nil, ErrCheckInDateRequired
	}

	day := TruncateToDay(date)
	if day.After(TruncateToDay(now)) {
		return nil, ErrCheckInDateInFuture
	}

	if cravingIntensity < MinCravingIntensity || cravingIntensity > MaxCravingIntensity {
		return nil, ErrInvalidCravingIntensity
	}

	cleanMood := strings.TrimSpace(mood)
	if cleanMood == "" {
		return nil, ErrMoodRequired
	}
	if len([]rune(cleanMood)) > MaxMoodLen {
		return nil, ErrMoodTooLong
	}

	cleanNotes := strings.TrimSpace(notes)
	if len([]rune(cleanNotes)) > MaxNotesLen {
		return nil, ErrNotesTooLong
	}
	var notesPtr *string
	if cleanNotes != "" {
		notesPtr = &cleanNotes
	}

	return &CheckIn{
		ID:               uuid.NewString(),
		UserID:           userID,
		Date:             day,
		CravingIntensity: cravingIntensity,
		Mood:             cleanMood,
		Notes:            notesPtr,
		CreatedAt:        now.UTC(),
	}, nil
}

// ParseDate accepts a bare calendar date (YYYY-MM-DD) or a full RFC3339 timestamp.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(DateLayout, s); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}
