package memory

import (
	"context"
	"sync"
	"time"

	"github.com/moneyseed/moneyseed/internal/domain/user"
	"github.com/moneyseed/moneyseed/internal/repo/postgres"
)

// UsersRepo is a map-backed stand-in for the postgres repo. It mirrors the
// same error contract, including insert-time uniqueness enforcement, so
// handlers behave identically against either store.
type UsersRepo struct {
	mu     sync.RWMutex
	nextID int64
	items  map[int64]user.User
}

func NewUsersRepo() *UsersRepo {
	return &UsersRepo{
		nextID: 1,
		items:  make(map[int64]user.User),
	}
}

func (r *UsersRepo) GetByEmail(ctx context.Context, email string) (user.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.items {
		if u.Email == email {
			return u, nil
		}
	}

	return user.User{}, postgres.ErrUserNotFound
}

func (r *UsersRepo) GetByUsername(ctx context.Context, username string) (user.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.items {
		if u.Username == username {
			return u, nil
		}
	}

	return user.User{}, postgres.ErrUserNotFound
}

func (r *UsersRepo) Create(ctx context.Context, username, email, passwordHash string) (user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.items {
		if u.Email == email {
			return user.User{}, postgres.ErrEmailAlreadyUsed
		}
	}

	for _, u := range r.items {
		if u.Username == username {
			return user.User{}, postgres.ErrUsernameAlreadyUsed
		}
	}

	u := user.User{
		ID:           r.nextID,
		Username:     username,
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now().UTC(),
	}

	r.nextID++
	r.items[u.ID] = u

	return u, nil
}
