package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/fjod/storefront/internal/auth"
	"github.com/fjod/storefront/internal/domain"
	"github.com/fjod/storefront/internal/repository"
)

var ErrInvalidCredentials = fmt.Errorf("%w: invalid username/password", domain.ErrUnauthorized)

type LoginResult struct {
	UserID int64
	Token  string
}

type UserService struct {
	repo   repository.UserRepository
	now    func() time.Time
	logger *slog.Logger
}

func NewUserService(repo repository.UserRepository, logger *slog.Logger) *UserService {
	if logger == nil {
		logger = slog.Default()
	}
	return &UserService{repo: repo, now: time.Now, logger: logger}
}

func (s *UserService) Register(ctx context.Context, username, password string) (*domain.User, error) {
	user, err := s.repo.CreateUser(ctx, username, password)
	if err != nil {
		return nil, err
	}
	s.logger.InfoContext(ctx, "user registered", "user_id", user.ID)
	return user, nil
}

// Login issues an opaque token for a known username. The password is not checked.
func (s *UserService) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	if username == "" || password == "" {
		return nil, fmt.Errorf("%w: username and password required", domain.ErrInvalidArgument)
	}

	user, err := s.repo.GetUserByUsername(ctx, username)
	if errors.Is(err, repository.ErrUserNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	return &LoginResult{
		UserID: user.ID,
		Token:  auth.IssueToken(user.ID, s.now()),
	}, nil
}

func (s *UserService) ListUsers(ctx context.Context) ([]domain.PublicUser, error) {
	users, err := s.repo.ListUsers(ctx)
	if err != nil {
		return nil, err
	}
	result := make([]domain.PublicUser, 0, len(users))
	for _, u := range users {
		result = append(result, u.Public())
	}
	return result, nil
}
