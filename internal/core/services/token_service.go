package services

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/comitanigiacomo/smokefree-tracker/internal/core/domain"
)

const tokenLookupTimeout = 2 * time.Second

type TokenService struct {
	secretKey []byte
	issuer    string
	ttl       time.Duration
	userRepo  domain.UserRepository
	clock     Clock
}

func NewTokenService(secretKey, issuer string, ttl time.Duration, userRepo domain.UserRepository) *TokenService {
	return &TokenService{
		secretKey: []byte(secretKey),
		issuer:    issuer,
		ttl:       ttl,
		userRepo:  userRepo,
		clock:     systemClock,
	}
}

func (s *TokenService) WithClock(clock Clock) *TokenService {
	s.clock = clock
	return s
}

// TTL is also used as the session cookie lifetime.
func (s *TokenService) TTL() time.Duration {
	return s.ttl
}

func (s *TokenService) GenerateToken(userID string) (string, error) {
	now := s.clock()
	claims := jwt.RegisteredClaims{
		Subject:   userID,
		Issuer:    s.issuer,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secretKey)
	if err != nil {
		return "", fmt.Errorf("token service: sign token: %w", err)
	}
	return signed, nil
}

// ValidateToken returns the subject of a valid token whose user still exists.
// Every rejection wraps domain.ErrUnauthorized.
func (s *TokenService) ValidateToken(ctx context.Context, tokenString string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secretKey, nil
	},
		jwt.WithIssuer(s.issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.clock),
	)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrUnauthorized, err)
	}
	if !token.Valid || claims.Subject == "" {
		return "", fmt.Errorf("%w: invalid token claims", domain.ErrUnauthorized)
	}

	ctx, cancel := context.WithTimeout(ctx, tokenLookupTimeout)
	defer cancel()

	if _, err := s.userRepo.GetByID(ctx, claims.Subject); err != nil {
		return "", fmt.Errorf("%w: user no longer exists: %v", domain.ErrUnauthorized, err)
	}

	return claims.Subject, nil
}
