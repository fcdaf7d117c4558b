package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/moneyseed/moneyseed/internal/domain/user"
	"github.com/redis/go-redis/v9"
)

// Users is a read-through cache of user records keyed by email, used on the
// token-resolution path. Records never change after registration, so a short
// TTL only bounds staleness against out-of-band deletes.
type Users struct {
	client *redis.Client
	ttl    time.Duration
}

func NewUsers(client *redis.Client, ttl time.Duration) *Users {
	if ttl <= 0 {
		ttl = time.Minute
	}

	return &Users{client: client, ttl: ttl}
}

func (c *Users) key(email string) string {
	return "user:email:" + email
}

// Get returns the cached record for email. A miss, a disabled cache, and a
// redis failure all look the same to the caller: go to the store.
func (c *Users) Get(ctx context.Context, email string) (user.User, bool) {
	if c == nil || c.client == nil {
		return user.User{}, false
	}

	raw, err := c.client.Get(ctx, c.key(email)).Bytes()

	if err != nil {
		return user.User{}, false
	}

	var u user.User

	if err := json.Unmarshal(raw, &u); err != nil {
		return user.User{}, false
	}

	return u, true
}

// Set stores the record best-effort; cache failures never fail the request.
func (c *Users) Set(ctx context.Context, u user.User) {
	if c == nil || c.client == nil {
		return
	}

	raw, err := json.Marshal(u)

	if err != nil {
		return
	}

	_ = c.client.Set(ctx, c.key(u.Email), raw, c.ttl).Err()
}
