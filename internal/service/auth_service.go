// FILE: internal/service/auth_service.go
package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"news-rating-be/internal/config"
	"news-rating-be/internal/dto"
	"news-rating-be/internal/entity"
	"news-rating-be/internal/metrics"
	"news-rating-be/internal/pkg/logger"
	"news-rating-be/internal/repository/memory"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrSessionRevoked     = errors.New("session revoked")
	ErrNoSigningKey       = errors.New("session signing key is empty")
)

// dummyHash keeps unknown-user logins as slow as wrong-password logins.
var dummyHash, _ = bcrypt.GenerateFromPassword([]byte("not-a-real-password"), bcrypt.DefaultCost)

type IAuthService interface {
	Login(ctx context.Context, req *dto.LoginRequest) (entity.AuthState, error)
	Resolve(token string) entity.AuthState
	Logout(ctx context.Context, token string) error
	CookieName() string
	SessionTTL() time.Duration
}

type SessionClaims struct {
	Username string `json:"username"`
	Name     string `json:"name"`
	jwt.RegisteredClaims
}

type authService struct {
	users    map[string]config.AllowedUser
	key      []byte
	cookie   string
	ttl      time.Duration
	sessions *memory.SessionRepository
	logger   logger.ILogger
	now      func() time.Time
}

func NewAuthService(
	users map[string]config.AllowedUser,
	cfg config.AuthConfig,
	sessions *memory.SessionRepository,
	sysLogger logger.ILogger,
) IAuthService {
	days := cfg.CookieExpiryDays
	if days <= 0 {
		days = 7
	}
	return &authService{
		users:    users,
		key:      []byte(cfg.CookieKey),
		cookie:   cfg.CookieName,
		ttl:      time.Duration(days) * 24 * time.Hour,
		sessions: sessions,
		logger:   sysLogger,
		now:      time.Now,
	}
}

func (s *authService) CookieName() string {
	return s.cookie
}

func (s *authService) SessionTTL() time.Duration {
	return s.ttl
}

func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (entity.AuthState, error) {
	username := strings.ToLower(strings.TrimSpace(req.Username))
	if username == "" || req.Password == "" {
		metrics.LoginAttempts.WithLabelValues(entity.AuthUnauthenticated.String()).Inc()
		return entity.Unauthenticated(), nil
	}

	user, err := s.verify(username, req.Password)
	if err != nil {
		metrics.LoginAttempts.WithLabelValues(entity.AuthFailed.String()).Inc()
		s.logger.Warn("AUTH", "Login failed", map[string]interface{}{
			"username": username,
		})
		return entity.LoginFailed(), nil
	}

	if len(s.key) == 0 {
		return entity.Unauthenticated(), ErrNoSigningKey
	}

	now := s.now()
	session := &entity.Session{
		Id:        uuid.New(),
		Username:  username,
		Name:      user.Name,
		IssuedAt:  now,
		ExpiresAt: now.Add(s.ttl),
	}

	claims := SessionClaims{
		Username: session.Username,
		Name:     session.Name,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        session.Id.String(),
			Subject:   session.Username,
			IssuedAt:  jwt.NewNumericDate(session.IssuedAt),
			ExpiresAt: jwt.NewNumericDate(session.ExpiresAt),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.key)
	if err != nil {
		return entity.Unauthenticated(), err
	}
	session.Token = token

	metrics.LoginAttempts.WithLabelValues(entity.AuthSucceeded.String()).Inc()
	s.logger.Info("AUTH", "Login succeeded", map[string]interface{}{
		"username":   username,
		"session_id": session.Id.String(),
	})

	return entity.Authenticated(session), nil
}

func (s *authService) verify(username, password string) (config.AllowedUser, error) {
	user, ok := s.users[username]
	if !ok {
		_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
		return config.AllowedUser{}, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return config.AllowedUser{}, ErrInvalidCredentials
	}
	return user, nil
}

func (s *authService) parse(token string) (*entity.Session, error) {
	claims := &SessionClaims{}
	_, err := jwt.ParseWithClaims(token, claims,
		func(t *jwt.Token) (interface{}, error) {
			if len(s.key) == 0 {
				return nil, ErrNoSigningKey
			}
			return s.key, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return nil, err
	}

	id, err := uuid.Parse(claims.ID)
	if err != nil {
		return nil, err
	}
	if s.sessions.IsRevoked(id) {
		return nil, ErrSessionRevoked
	}
	// users dropped from the allow-list lose access on their next request
	if _, ok := s.users[claims.Username]; !ok {
		return nil, ErrInvalidCredentials
	}

	session := &entity.Session{
		Id:        id,
		Username:  claims.Username,
		Name:      claims.Name,
		Token:     token,
		ExpiresAt: claims.ExpiresAt.Time,
	}
	if claims.IssuedAt != nil {
		session.IssuedAt = claims.IssuedAt.Time
	}
	return session, nil
}

func (s *authService) Resolve(token string) entity.AuthState {
	if token == "" {
		return entity.Unauthenticated()
	}
	session, err := s.parse(token)
	if err != nil {
		return entity.Unauthenticated()
	}
	return entity.Authenticated(session)
}

func (s *authService) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	session, err := s.parse(token)
	if err != nil {
		// Already expired, revoked or forged: nothing left to invalidate
		return nil
	}

	s.sessions.Revoke(session.Id, session.ExpiresAt)
	metrics.Logouts.Inc()
	s.logger.Info("AUTH", "Logout", map[string]interface{}{
		"username":   session.Username,
		"session_id": session.Id.String(),
	})
	return nil
}
