// Package auth provides credential verification and bearer-token
// issuance for the dashboard's mutating endpoints.
package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/netsentry/fortiview/internal/services"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidCredentials is returned when the username or password does
// not match the stored account.
var ErrInvalidCredentials = errors.New("invalid credentials")

const tokenIssuer = "fortiview"

// Claims are the JWT claims carried by an access token.
type Claims struct {
	jwt.RegisteredClaims
	Username string `json:"username"`
}

// Service verifies credentials against the settings store and manages
// signed access tokens.
type Service struct {
	settings services.SettingsRepository
	secret   []byte
	ttl      time.Duration
	logger   *zap.Logger

	// now is injectable for tests.
	now func() time.Time
}

// NewService creates an auth Service. The secret signs and verifies
// tokens; ttl bounds their lifetime.
func NewService(settings services.SettingsRepository, secret []byte, ttl time.Duration, logger *zap.Logger) *Service {
	return &Service{
		settings: settings,
		secret:   secret,
		ttl:      ttl,
		logger:   logger,
		now:      time.Now,
	}
}

// Login checks the credentials against the stored account and returns a
// signed token on success. Unknown users and wrong passwords both yield
// ErrInvalidCredentials so callers cannot probe for account names.
func (s *Service) Login(ctx context.Context, username, password string) (string, error) {
	storedUser, err := s.settingValue(ctx, services.SettingAuthUsername)
	if err != nil {
		return "", err
	}
	storedHash, err := s.settingValue(ctx, services.SettingAuthPasswordHash)
	if err != nil {
		return "", err
	}
	if storedUser == "" || storedHash == "" {
		s.logger.Warn("login attempted before credentials were configured")
		return "", ErrInvalidCredentials
	}

	if username != storedUser {
		return "", ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(storedHash), []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}

	return s.issueToken(username)
}

// ValidateToken parses and verifies a token string.
func (s *Service) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	}, jwt.WithTimeFunc(s.now))
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}

func (s *Service) issueToken(username string) (string, error) {
	now := s.now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   username,
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    tokenIssuer,
			ID:        uuid.New().String(),
		},
		Username: username,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

func (s *Service) settingValue(ctx context.Context, key string) (string, error) {
	setting, err := s.settings.Get(ctx, key)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return "", nil
		}
		return "", fmt.Errorf("read setting %q: %w", key, err)
	}
	return setting.Value, nil
}
