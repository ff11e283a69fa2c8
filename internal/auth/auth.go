// Package auth implements account registration, login and sign-out. Tokens
// are HS256 JWTs carrying a session id; a token is only honored while its
// session is present in the session store, so sign-out revokes immediately.
package auth

import (
	"context"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/Bhushan1137/Movie-Ticket-Booking/internal/domain"
	"github.com/Bhushan1137/Movie-Ticket-Booking/internal/observability"
)

const minPasswordLen = 6

type Users interface {
	Create(ctx context.Context, u domain.User) error
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id string) (*domain.User, error)
}

type Sessions interface {
	Add(ctx context.Context, sessionID, userID string, ttl time.Duration) error
	Alive(ctx context.Context, sessionID string) (bool, error)
	Revoke(ctx context.Context, sessionID string) error
}

type Service struct {
	users    Users
	sessions Sessions
	secret   []byte
	ttl      time.Duration
	logger   observability.Logger
}

func NewService(users Users, sessions Sessions, secret string, ttl time.Duration, logger observability.Logger) *Service {
	return &Service{
		users:    users,
		sessions: sessions,
		secret:   []byte(secret),
		ttl:      ttl,
		logger:   logger,
	}
}

type claims struct {
	Email     string `json:"email"`
	SessionID string `json:"sid"`
	jwt.RegisteredClaims
}

func (s *Service) Register(ctx context.Context, username, email, phone, password string) (*domain.User, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if username == "" || email == "" {
		return nil, errors.Wrap(domain.ErrInvalidInput, "username and email are required")
	}
	if len(password) < minPasswordLen {
		return nil, errors.Wrapf(domain.ErrInvalidInput, "password must be at least %d characters", minPasswordLen)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, errors.Wrap(err, "hash password")
	}

	u := domain.User{
		ID:           uuid.New().String(),
		Username:     username,
		Email:        email,
		Phone:        phone,
		PasswordHash: string(hash),
	}
	if err := s.users.Create(ctx, u); err != nil {
		return nil, err
	}

	s.logger.WithField("user_id", u.ID).Info("user registered")
	return &u, nil
}

func (s *Service) Login(ctx context.Context, email, password string) (string, error) {
	email = strings.TrimSpace(strings.ToLower(email))

	u, err := s.users.GetByEmail(ctx, email)
	if errors.Is(err, domain.ErrNotFound) {
		return "", domain.ErrBadCredentials
	}
	if err != nil {
		return "", err
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return "", domain.ErrBadCredentials
	}

	sessionID := uuid.New().String()
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		Email:     u.Email,
		SessionID: sessionID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   u.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	})
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", errors.Wrap(err, "sign token")
	}

	if err := s.sessions.Add(ctx, sessionID, u.ID, s.ttl); err != nil {
		return "", errors.Wrap(err, "store session")
	}

	s.logger.WithField("user_id", u.ID).Info("user logged in")
	return signed, nil
}

func (s *Service) SignOut(ctx context.Context, identity domain.Identity) error {
	return s.sessions.Revoke(ctx, identity.SessionID)
}

// Profile loads the account behind an authenticated identity.
func (s *Service) Profile(ctx context.Context, userID string) (*domain.User, error) {
	return s.users.GetByID(ctx, userID)
}

// Verify parses and validates a token and confirms its session is still
// live. It returns the identity the rest of the request runs under.
func (s *Service) Verify(ctx context.Context, tokenStr string) (*domain.Identity, error) {
	var c claims
	_, err := jwt.ParseWithClaims(tokenStr, &c, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.Newf("unexpected signing method %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, domain.ErrUnauthenticated
	}

	alive, err := s.sessions.Alive(ctx, c.SessionID)
	if err != nil {
		return nil, err
	}
	if !alive {
		return nil, domain.ErrSessionRevoked
	}

	return &domain.Identity{
		UserID:    c.Subject,
		Email:     c.Email,
		SessionID: c.SessionID,
	}, nil
}
