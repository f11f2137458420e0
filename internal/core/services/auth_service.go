package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/comitanigiacomo/smokefree-tracker/internal/core/domain"
)

type AuthService struct {
	repo   domain.UserRepository
	tokens *TokenService
}

func NewAuthService(repo domain.UserRepository, tokens *TokenService) *AuthService {
	return &AuthService{
		repo:   repo,
		tokens: tokens,
	}
}

type Credentials struct {
	Email    string
	Password string
}

// Session is what a successful signup or login hands back to the client.
type Session struct {
	User  *domain.User
	Token string
}

func (s *AuthService) Signup(ctx context.Context, input Credentials) (*Session, error) {
	user, err := domain.NewUser(uuid.NewString(), input.Email)
	if err != nil {
		return nil, err
	}

	if err := user.SetPassword(input.Password); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("auth service: create user: %w", err)
	}

	return s.issue(user)
}

// Login never reveals whether the email or the password was wrong.
func (s *AuthService) Login(ctx context.Context, input Credentials) (*Session, error) {
	email := domain.NormalizeEmail(input.Email)
	if !domain.IsValidEmail(email) {
		return nil, domain.ErrInvalidCredentials
	}

	user, err := s.repo.GetByEmail(ctx, email)
	if errors.Is(err, domain.ErrUserNotFound) {
		return nil, domain.ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("auth service: lookup user: %w", err)
	}

	if err := user.CheckPassword(input.Password); err != nil {
		return nil, err
	}

	return s.issue(user)
}

// EnsureGuest makes sure a guest identity has a backing user row.
func (s *AuthService) EnsureGuest(ctx context.Context, guestID string) error {
	user, err := domain.NewGuestUser(guestID)
	if err != nil {
		return err
	}
	if err := s.repo.EnsureGuest(ctx, user); err != nil {
		return fmt.Errorf("auth service: ensure guest: %w", err)
	}
	return nil
}

func (s *AuthService) CurrentUser(ctx context.Context, userID string) (*domain.User, error) {
	return s.repo.GetByID(ctx, userID)
}

func (s *AuthService) Authenticate(ctx context.Context, token string) (string, error) {
	return s.tokens.ValidateToken(ctx, token)
}

func (s *AuthService) issue(user *domain.User) (*Session, error) {
	token, err := s.tokens.GenerateToken(user.ID)
	if err != nil {
		return nil, err
	}
	return &Session{User: user, Token: token}, nil
}
