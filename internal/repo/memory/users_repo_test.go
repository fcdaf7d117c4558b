package memory_test

import (
	"context"
	"errors"
	"testing"

	"github.com/moneyseed/moneyseed/internal/repo/memory"
	"github.com/moneyseed/moneyseed/internal/repo/postgres"
)

func TestCreateAndLookup(t *testing.T) {
	repo := memory.NewUsersRepo()
	ctx := context.Background()

	u, err := repo.Create(ctx, "alice", "alice@example.com", "hashed")

	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	if u.ID == 0 {
		t.Fatalf("Create did not assign an id")
	}

	if u.CreatedAt.IsZero() {
		t.Fatalf("Create did not assign created_at")
	}

	byEmail, err := repo.GetByEmail(ctx, "alice@example.com")
	if err != nil {
		t.Fatalf("GetByEmail returned error: %v", err)
	}
	if byEmail.ID != u.ID {
		t.Fatalf("GetByEmail id = %d, want %d", byEmail.ID, u.ID)
	}

	byUsername, err := repo.GetByUsername(ctx, "alice")
	if err != nil {
		t.Fatalf("GetByUsername returned error: %v", err)
	}
	if byUsername.ID != u.ID {
		t.Fatalf("GetByUsername id = %d, want %d", byUsername.ID, u.ID)
	}
}

func TestLookupMissing(t *testing.T) {
	repo := memory.NewUsersRepo()
	ctx := context.Background()

	if _, err := repo.GetByEmail(ctx, "nobody@example.com"); !errors.Is(err, postgres.ErrUserNotFound) {
		t.Fatalf("GetByEmail(missing) = %v, want ErrUserNotFound", err)
	}

	if _, err := repo.GetByUsername(ctx, "nobody"); !errors.Is(err, postgres.ErrUserNotFound) {
		t.Fatalf("GetByUsername(missing) = %v, want ErrUserNotFound", err)
	}
}

func TestCreateUniqueness(t *testing.T) {
	repo := memory.NewUsersRepo()
	ctx := context.Background()

	if _, err := repo.Create(ctx, "alice", "alice@example.com", "hashed"); err != nil {
		t.Fatalf("seed Create returned error: %v", err)
	}

	// email collision wins over username collision
	if _, err := repo.Create(ctx, "alice", "alice@example.com", "hashed"); !errors.Is(err, postgres.ErrEmailAlreadyUsed) {
		t.Fatalf("duplicate email = %v, want ErrEmailAlreadyUsed", err)
	}

	if _, err := repo.Create(ctx, "alice", "other@example.com", "hashed"); !errors.Is(err, postgres.ErrUsernameAlreadyUsed) {
		t.Fatalf("duplicate username = %v, want ErrUsernameAlreadyUsed", err)
	}
}
