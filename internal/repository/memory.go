package repository

import (
	"context"
	"sync"
	"time"

	"github.com/accountly/accountly-go/internal/model"
	"github.com/google/uuid"
)

// MemoryUserStore is an in-memory UserStore used in tests.
type MemoryUserStore struct {
	mu    sync.RWMutex
	users map[string]*model.User
}

func NewMemoryUserStore() *MemoryUserStore {
	return &MemoryUserStore{users: make(map[string]*model.User)}
}

func (s *MemoryUserStore) Create(ctx context.Context, user *model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Email == user.Email {
			return ErrDuplicateEmail
		}
	}

	user.ID = uuid.New().String()
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now

	stored := *user
	s.users[user.ID] = &stored
	return nil
}

func (s *MemoryUserStore) GetByID(ctx context.Context, id string) (*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[id]
	if !ok {
		return nil, ErrUserNotFound
	}

	out := *u
	return &out, nil
}

func (s *MemoryUserStore) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.users {
		if u.Email == email {
			out := *u
			return &out, nil
		}
	}

	return nil, ErrUserNotFound
}

func (s *MemoryUserStore) UpdateProfile(ctx context.Context, user *model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[user.ID]
	if !ok {
		return ErrUserNotFound
	}

	u.Name = user.Name
	u.Phone = user.Phone
	u.Bio = user.Bio
	u.Photo = user.Photo
	u.UpdatedAt = time.Now()
	return nil
}

func (s *MemoryUserStore) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	if !ok {
		return ErrUserNotFound
	}

	u.PasswordHash = passwordHash
	u.UpdatedAt = time.Now()
	return nil
}

// Delete removes a record directly. Tests use it to simulate a user
// deleted out of band; no HTTP operation exposes deletion.
func (s *MemoryUserStore) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.users, id)
}

// Len reports the number of stored records.
func (s *MemoryUserStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.users)
}
