package security

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/jellydator/ttlcache/v3"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials = errors.New("invalid password")
	ErrInvalidToken       = errors.New("invalid token")
)

// Session gates the API behind a single shared password. A successful login issues a
// signed token; logging out revokes that token until it would have expired anyway.
type Session struct {
	passwordHash []byte
	secret       []byte
	ttl          time.Duration
	revoked      *ttlcache.Cache[string, struct{}]
	now          func() time.Time
}

func NewSession(passwordHash string, secret []byte, ttl time.Duration) (*Session, error) {
	if _, err := bcrypt.Cost([]byte(passwordHash)); err != nil {
		return nil, fmt.Errorf("invalid password hash: %w", err)
	}
	if len(secret) == 0 {
		return nil, errors.New("JWT secret must not be empty")
	}
	if ttl <= 0 {
		return nil, fmt.Errorf("session TTL must be positive, got %s", ttl)
	}

	revoked := ttlcache.New[string, struct{}]()
	go revoked.Start()

	return &Session{
		passwordHash: []byte(passwordHash),
		secret:       secret,
		ttl:          ttl,
		revoked:      revoked,
		now:          time.Now,
	}, nil
}

func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

// Login checks password and returns a token with its expiry.
func (s *Session) Login(password string) (string, time.Time, error) {
	if err := bcrypt.CompareHashAndPassword(s.passwordHash, []byte(password)); err != nil {
		return "", time.Time{}, ErrInvalidCredentials
	}

	issuedAt := s.now()
	expiresAt := issuedAt.Add(s.ttl)
	claims := jwt.RegisteredClaims{
		ID:        uuid.NewString(),
		IssuedAt:  jwt.NewNumericDate(issuedAt),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign token: %w", err)
	}

	return token, expiresAt, nil
}

// Validate parses token and rejects it when it is malformed, expired or revoked.
func (s *Session) Validate(token string) (*jwt.RegisteredClaims, error) {
	claims := &jwt.RegisteredClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return s.secret, nil
	}, jwt.WithTimeFunc(s.now), jwt.WithExpirationRequired())
	if err != nil || !parsed.Valid {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if claims.ID == "" {
		return nil, fmt.Errorf("%w: missing token id", ErrInvalidToken)
	}
	if s.revoked.Has(claims.ID) {
		return nil, fmt.Errorf("%w: token has been revoked", ErrInvalidToken)
	}

	return claims, nil
}

// Logout revokes token. Logging out an invalid token fails with ErrInvalidToken.
func (s *Session) Logout(token string) error {
	claims, err := s.Validate(token)
	if err != nil {
		return err
	}

	remaining := claims.ExpiresAt.Sub(s.now())
	if remaining <= 0 {
		return nil
	}
	s.revoked.Set(claims.ID, struct{}{}, remaining)
	return nil
}

// Close stops the revocation list expiry goroutine.
func (s *Session) Close() {
	s.revoked.Stop()
}
