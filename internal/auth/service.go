// Package auth provides the demo identity and session layer: accounts are
// stored through a UserStore and sessions are signed JWTs.
package auth

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"oakvale/server/internal/database"
	"oakvale/server/internal/models"
)

const MinPasswordLength = 6

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidToken       = errors.New("invalid or expired session")
	ErrInvalidSignUp      = errors.New("invalid sign-up details")
)

// UserStore persists accounts
type UserStore interface {
	CreateUser(ctx context.Context, u *models.User) error
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByID(ctx context.Context, id string) (*models.User, error)
}

type Config struct {
	Secret        string
	TTL           time.Duration
	AdminEmail    string
	AdminPassword string
	AdminName     string
	AdminPhone    string
}

type Session struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expires_at"`
	User      *models.User `json:"user"`
}

type SignUpRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"full_name"`
	Phone    string `json:"phone"`
}

type Service struct {
	store  UserStore
	config Config
	logger *logrus.Logger
	now    func() time.Time

	mu      sync.Mutex
	revoked map[string]time.Time // token ID -> expiry
}

type Option func(*Service)

func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func NewService(store UserStore, cfg Config, logger *logrus.Logger, opts ...Option) *Service {
	if logger == nil {
		logger = logrus.New()
		logger.SetFormatter(&logrus.JSONFormatter{})
		logger.SetOutput(os.Stdout)
	}
	if cfg.TTL <= 0 {
		cfg.TTL = 24 * time.Hour
	}

	s := &Service{
		store:   store,
		config:  cfg,
		logger:  logger,
		now:     time.Now,
		revoked: make(map[string]time.Time),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// EnsureAdmin creates the configured administrator account if it is missing.
func (s *Service) EnsureAdmin(ctx context.Context) error {
	if s.config.AdminEmail == "" {
		return nil
	}
	email, err := normalizeEmail(s.config.AdminEmail)
	if err != nil {
		return fmt.Errorf("invalid admin email: %w", err)
	}

	_, err = s.store.GetUserByEmail(ctx, email)
	if err == nil {
		return nil
	}
	if !errors.Is(err, database.ErrNotFound) {
		return fmt.Errorf("failed to look up admin: %w", err)
	}

	hash, err := HashPassword(s.config.AdminPassword)
	if err != nil {
		return err
	}
	admin := &models.User{
		Email:        email,
		FullName:     s.config.AdminName,
		Phone:        s.config.AdminPhone,
		Role:         models.RoleAdmin,
		PasswordHash: hash,
	}
	if err := s.store.CreateUser(ctx, admin); err != nil {
		return fmt.Errorf("failed to create admin: %w", err)
	}

	s.logger.WithField("email", admin.Email).Info("Created admin account")
	return nil
}

// SignUp registers a client account and opens a session for it.
func (s *Service) SignUp(ctx context.Context, req SignUpRequest) (*Session, error) {
	email, err := normalizeEmail(req.Email)
	if err != nil {
		return nil, err
	}
	if len(req.Password) < MinPasswordLength {
		return nil, fmt.Errorf("%w: password must be at least %d characters", ErrInvalidSignUp, MinPasswordLength)
	}
	if strings.TrimSpace(req.FullName) == "" {
		return nil, fmt.Errorf("%w: full name is required", ErrInvalidSignUp)
	}

	user, err := s.register(ctx, email, req.Password, strings.TrimSpace(req.FullName), strings.TrimSpace(req.Phone))
	if err != nil {
		return nil, err
	}
	return s.issue(user)
}

// SignIn checks the credentials and opens a session. An email with no
// account is registered as a new client on the spot.
func (s *Service) SignIn(ctx context.Context, email, password string) (*Session, error) {
	email, err := normalizeEmail(email)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	user, err := s.store.GetUserByEmail(ctx, email)
	switch {
	case errors.Is(err, database.ErrNotFound):
		if len(password) < MinPasswordLength {
			return nil, ErrInvalidCredentials
		}
		user, err = s.register(ctx, email, password, strings.Split(email, "@")[0], "")
		if err != nil {
			return nil, err
		}
	case err != nil:
		return nil, fmt.Errorf("failed to look up user: %w", err)
	case !CheckPasswordHash(password, user.PasswordHash):
		s.logger.WithField("email", email).Warn("Rejected sign-in")
		return nil, ErrInvalidCredentials
	}

	return s.issue(user)
}

// SignOut revokes the session behind token.
func (s *Service) SignOut(token string) error {
	claims, err := s.Authenticate(token)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.revoked[claims.ID] = claims.ExpiresAt.Time
	s.pruneLocked()
	return nil
}

// Authenticate validates a session token without touching the store.
func (s *Service) Authenticate(token string) (*Claims, error) {
	claims, err := ValidateJWT(token, s.config.Secret, s.now())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	s.mu.Lock()
	_, revoked := s.revoked[claims.ID]
	s.mu.Unlock()
	if revoked {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// CurrentUser resolves the account behind a session token.
func (s *Service) CurrentUser(ctx context.Context, token string) (*models.User, error) {
	claims, err := s.Authenticate(token)
	if err != nil {
		return nil, err
	}

	user, err := s.store.GetUserByID(ctx, claims.UserID)
	if errors.Is(err, database.ErrNotFound) {
		return nil, ErrInvalidToken
	}
	return user, err
}

func (s *Service) register(ctx context.Context, email, password, fullName, phone string) (*models.User, error) {
	hash, err := HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Email:        email,
		FullName:     fullName,
		Phone:        phone,
		Role:         models.RoleClient,
		PasswordHash: hash,
	}
	if err := s.store.CreateUser(ctx, user); err != nil {
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{
		"user_id": user.ID,
		"email":   user.Email,
	}).Info("Registered client account")
	return user, nil
}

func (s *Service) issue(user *models.User) (*Session, error) {
	token, claims, err := GenerateJWT(user, s.config.Secret, s.config.TTL, s.now())
	if err != nil {
		return nil, err
	}
	return &Session{
		Token:     token,
		ExpiresAt: claims.ExpiresAt.Time,
		User:      user,
	}, nil
}

// pruneLocked drops revocations whose tokens have expired anyway
func (s *Service) pruneLocked() {
	now := s.now()
	for id, exp := range s.revoked {
		if now.After(exp) {
			delete(s.revoked, id)
		}
	}
}

func normalizeEmail(raw string) (string, error) {
	addr, err := mail.ParseAddress(strings.TrimSpace(raw))
	if err != nil || addr.Address != strings.TrimSpace(raw) {
		return "", fmt.Errorf("%w: invalid email address", ErrInvalidSignUp)
	}
	return strings.ToLower(addr.Address), nil
}
