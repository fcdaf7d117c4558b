package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/moneyseed/moneyseed/internal/domain/user"
)

var (
	ErrUserNotFound        = errors.New("user not found")
	ErrEmailAlreadyUsed    = errors.New("email already used")
	ErrUsernameAlreadyUsed = errors.New("username already used")
)

// DB is the slice of pgxpool.Pool the repo needs. Keeping it narrow lets
// pgxmock stand in during tests.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type UsersRepo struct {
	db DB
}

func NewUsersRepo(db DB) *UsersRepo {
	return &UsersRepo{db: db}
}

func (r *UsersRepo) GetByEmail(ctx context.Context, email string) (user.User, error) {
	return r.getBy(ctx, "email", email)
}

func (r *UsersRepo) GetByUsername(ctx context.Context, username string) (user.User, error) {
	return r.getBy(ctx, "username", username)
}

func (r *UsersRepo) getBy(ctx context.Context, column, value string) (user.User, error) {
	var u user.User

	err := r.db.QueryRow(
		ctx,
		`SELECT id, username, email, password_hash, created_at
         FROM users
         WHERE `+column+` = $1`,
		value,
	).Scan(
		&u.ID,
		&u.Username,
		&u.Email,
		&u.PasswordHash,
		&u.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return user.User{}, ErrUserNotFound
		}

		return user.User{}, err
	}
	return u, nil
}

// Create inserts a new user. id and created_at are assigned by the database.
// Unique violations are translated per constraint so the handler can tell
// the caller which field collided, even when the pre-insert checks raced.
func (r *UsersRepo) Create(ctx context.Context, username, email, passwordHash string) (user.User, error) {
	u := user.User{
		Username:     username,
		Email:        email,
		PasswordHash: passwordHash,
	}

	err := r.db.QueryRow(
		ctx,
		`INSERT INTO users (username, email, password_hash)
         VALUES ($1, $2, $3)
         RETURNING id, created_at`,
		username,
		email,
		passwordHash,
	).Scan(&u.ID, &u.CreatedAt)

	if err != nil {
		var pgErr *pgconn.PgError

		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			switch pgErr.ConstraintName {
			case "users_email_key":
				return user.User{}, ErrEmailAlreadyUsed
			case "users_username_key":
				return user.User{}, ErrUsernameAlreadyUsed
			}
		}

		return user.User{}, err
	}

	return u, nil
}
