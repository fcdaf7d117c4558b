package postgres

import (
	"context"

	"github.com/moneyseed/moneyseed/internal/domain/user"
	"github.com/moneyseed/moneyseed/internal/observability"
)

// InstrumentedUsers wraps UsersRepo so each logical store op lands in the
// db metrics. Handlers depend on the same interface either way.
type InstrumentedUsers struct {
	next *UsersRepo
	prom *observability.Prom
}

func NewInstrumentedUsers(next *UsersRepo, prom *observability.Prom) *InstrumentedUsers {
	return &InstrumentedUsers{next: next, prom: prom}
}

func (r *InstrumentedUsers) GetByEmail(ctx context.Context, email string) (user.User, error) {
	var u user.User

	err := r.prom.ObserveDB("users.get_by_email", func() error {
		var err error
		u, err = r.next.GetByEmail(ctx, email)
		return err
	})

	return u, err
}

func (r *InstrumentedUsers) GetByUsername(ctx context.Context, username string) (user.User, error) {
	var u user.User

	err := r.prom.ObserveDB("users.get_by_username", func() error {
		var err error
		u, err = r.next.GetByUsername(ctx, username)
		return err
	})

	return u, err
}

func (r *InstrumentedUsers) Create(ctx context.Context, username, email, passwordHash string) (user.User, error) {
	var u user.User

	err := r.prom.ObserveDB("users.create", func() error {
		var err error
		u, err = r.next.Create(ctx, username, email, passwordHash)
		return err
	})

	return u, err
}
