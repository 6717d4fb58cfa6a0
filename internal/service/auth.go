package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/Skotchmaster/product_catalog/internal/events"
	"github.com/Skotchmaster/product_catalog/internal/logging"
	"github.com/Skotchmaster/product_catalog/internal/models"
	"github.com/Skotchmaster/product_catalog/internal/repo"
)

type UserStore interface {
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	CreateUser(ctx context.Context, u *models.User) error
}

type PasswordHasher interface {
	HashPassword(password string) (string, error)
	CheckPassword(hash, password string) bool
}

type TokenIssuer interface {
	Issue(userID uint) (string, time.Time, error)
}

type AuthService struct {
	Repo   UserStore
	Hasher PasswordHasher
	Tokens TokenIssuer
	Events events.Publisher

	decoyOnce sync.Once
	decoy     string
}

type LoginResult struct {
	Token     string
	ExpiresAt time.Time
	UserID    uint
}

func (s *AuthService) Register(ctx context.Context, username, password string) (*models.User, error) {
	l := logging.FromContext(ctx).With("svc", "auth.register")

	if username == "" || password == "" {
		return nil, fmt.Errorf("%w: username and password are required", ErrValidation)
	}

	pwHash, err := s.Hasher.HashPassword(password)
	if err != nil {
		l.Error("register_error", "status", 500, "reason", "cannot hash the password", "error", err)
		return nil, err
	}

	user := models.User{
		Username:     username,
		PasswordHash: pwHash,
	}
	if err := s.Repo.CreateUser(ctx, &user); err != nil {
		if errors.Is(err, repo.ErrUserAlreadyExist) {
			l.Warn("register_error", "status", 400, "reason", "user already exist")
			return nil, ErrConflict
		}
		l.Error("register_error", "status", 500, "reason", "cannot create user", "error", err)
		return nil, err
	}

	events.Emit(ctx, s.Events, events.TopicUsers, userKey(user.ID), events.Event{
		Type:     events.UserRegistered,
		UserID:   user.ID,
		Username: user.Username,
	})
	return &user, nil
}

// Login answers unknown users and wrong passwords identically, including a
// bcrypt comparison on the unknown-user path.
func (s *AuthService) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	l := logging.FromContext(ctx).With("svc", "auth.login", "username", username)

	if username == "" || password == "" {
		return nil, fmt.Errorf("%w: username and password are required", ErrValidation)
	}

	user, err := s.Repo.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			s.Hasher.CheckPassword(s.decoyHash(), password)
			l.Warn("login_failed", "status", 401, "reason", "invalid username or password")
			return nil, ErrInvalidCredentials
		}
		l.Error("login_failed", "status", 500, "error", err)
		return nil, err
	}

	if !s.Hasher.CheckPassword(user.PasswordHash, password) {
		l.Warn("login_failed", "status", 401, "reason", "invalid username or password")
		return nil, ErrInvalidCredentials
	}

	token, exp, err := s.Tokens.Issue(user.ID)
	if err != nil {
		l.Error("login_failed", "status", 500, "reason", "cannot issue token", "error", err)
		return nil, err
	}

	events.Emit(ctx, s.Events, events.TopicUsers, userKey(user.ID), events.Event{
		Type:     events.UserLoggedIn,
		UserID:   user.ID,
		Username: user.Username,
	})

	return &LoginResult{Token: token, ExpiresAt: exp, UserID: user.ID}, nil
}

// LogOut only acknowledges: tokens are stateless and expire on their own.
func (s *AuthService) LogOut(ctx context.Context) error {
	logging.FromContext(ctx).Info("logout", "svc", "auth.logout")
	return nil
}

func (s *AuthService) decoyHash() string {
	s.decoyOnce.Do(func() {
		s.decoy, _ = s.Hasher.HashPassword("decoy-password")
	})
	return s.decoy
}

func userKey(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}
