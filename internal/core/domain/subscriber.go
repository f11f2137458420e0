package domain

import (
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrConsentRequired    = errors.New("consent is required to subscribe")
	ErrSubscriberNotFound = errors.New("subscriber not found")
)

const (
	DefaultSubscriberSource = "unknown"
	MarketingListTag        = "quit_smoking_tracker"
	maxSourceTagLen         = 60
)

var (
	sourceTagStrip      = regexp.MustCompile(`[^a-z0-9_ -]`)
	sourceTagWhitespace = regexp.MustCompile(`\s+`)
)

// EmailSubscriber is the local record of marketing consent. It is the source of
// truth; the external marketing list is synced from it on a best-effort basis.
type EmailSubscriber struct {
	ID          string    `json:"id" db:"id"`
	Email       string    `json:"email" db:"email"`
	Consent     bool      `json:"consent" db:"consent"`
	ConsentedAt time.Time `json:"consentedAt" db:"consented_at"`
	Source      string    `json:"source" db:"source"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time `json:"updatedAt" db:"updated_at"`
}

func NewEmailSubscriber(email string, consent bool, source string, now time.Time) (*EmailSubscriber, error) {
	email = NormalizeEmail(email)
	if !IsValidEmail(email) {
		return nil, ErrInvalidEmail
	}
	if !consent {
		return nil, ErrConsentRequired
	}

	src := strings.TrimSpace(source)
	if src == "" {
		src = DefaultSubscriberSource
	}

	ts := now.UTC()
	return &EmailSubscriber{
		ID:          uuid.NewString(),
		Email:       email,
		Consent:     true,
		ConsentedAt: ts,
		Source:      src,
		CreatedAt:   ts,
		UpdatedAt:   ts,
	}, nil
}

// Tags returns the marketing tags a subscriber is attached to.
func (s *EmailSubscriber) Tags() []string {
	return []string{MarketingListTag, SourceToTag(s.Source)}
}

// SourceToTag turns a free-form signup source ("Home Hero") into a tag name
// ("source_home_hero").
func SourceToTag(source string) string {
	cleaned := strings.ToLower(source)
	if cleaned == "" {
		cleaned = DefaultSubscriberSource
	}
	cleaned = sourceTagStrip.ReplaceAllString(cleaned, "")
	cleaned = sourceTagWhitespace.ReplaceAllString(cleaned, "_")
	if len(cleaned) > maxSourceTagLen {
		cleaned = cleaned[:maxSourceTagLen]
	}
	if cleaned == "" {
		cleaned = DefaultSubscriberSource
	}
	return "source_" + cleaned
}
