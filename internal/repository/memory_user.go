package repository

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/fjod/storefront/internal/domain"
)

type MemoryUserStore struct {
	mu         sync.RWMutex
	users      []*domain.User
	byUsername map[string]*domain.User
	nextID     int64
}

func NewMemoryUserStore() *MemoryUserStore {
	return &MemoryUserStore{
		byUsername: make(map[string]*domain.User),
		nextID:     1,
	}
}

// CreateUser stores the password as given; hashing is out of scope for this store.
func (s *MemoryUserStore) CreateUser(ctx context.Context, username, password string) (*domain.User, error) {
	if username == "" || password == "" {
		return nil, fmt.Errorf("%w: username and password required", domain.ErrInvalidArgument)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.byUsername[username]; exists {
		return nil, ErrUsernameTaken
	}

	user := &domain.User{
		ID:        s.nextID,
		Username:  username,
		Password:  password,
		CreatedAt: time.Now().UTC(),
	}
	s.nextID++
	s.users = append(s.users, user)
	s.byUsername[username] = user

	cp := *user
	return &cp, nil
}

func (s *MemoryUserStore) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, exists := s.byUsername[username]
	if !exists {
		return nil, ErrUserNotFound
	}
	cp := *user
	return &cp, nil
}

func (s *MemoryUserStore) ListUsers(ctx context.Context) ([]*domain.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*domain.User, 0, len(s.users))
	for _, u := range s.users {
		cp := *u
		result = append(result, &cp)
	}
	return result, nil
}
