// Package cache decorates a UserStore with a Redis read-through cache for
// account lookups. Password hashes are never cached.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/yigit/campusauth/internal/app/models"
	"github.com/yigit/campusauth/internal/app/repositories"
	"github.com/yigit/campusauth/internal/pkg/logger"
)

// Key prefixes for namespacing Redis keys
const (
	PrefixAccountID    = "account:id:"
	PrefixAccountEmail = "account:email:"
)

// DefaultTTL applies when NewCachedUserStore receives a non-positive ttl
const DefaultTTL = 5 * time.Minute

// ErrCacheMiss is returned when the requested key is not cached
var ErrCacheMiss = errors.New("cache: key not found")

// CachedUserStore caches positive FindByID and FindByEmail results.
// Writes go to the wrapped store first and then invalidate. Redis failures
// are logged and fall through to the wrapped store.
type CachedUserStore struct {
	next   repositories.UserStore
	client redis.UniversalClient
	ttl    time.Duration
}

var _ repositories.UserStore = (*CachedUserStore)(nil)

// NewCachedUserStore wraps next with a Redis cache
func NewCachedUserStore(next repositories.UserStore, client redis.UniversalClient, ttl time.Duration) *CachedUserStore {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &CachedUserStore{next: next, client: client, ttl: ttl}
}

// IDKey returns the cache key for an account ID
func IDKey(id int64) string {
	return fmt.Sprintf("%s%d", PrefixAccountID, id)
}

// EmailKey returns the cache key for an email
func EmailKey(email string) string {
	return PrefixAccountEmail + email
}

// FindByEmail retrieves an account by email, consulting the cache first
func (c *CachedUserStore) FindByEmail(ctx context.Context, email string) (*models.Account, error) {
	if account, err := c.get(ctx, EmailKey(email)); err == nil {
		return account, nil
	}

	account, err := c.next.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	c.set(ctx, account)
	return account, nil
}

// FindByID retrieves an account by ID, consulting the cache first
func (c *CachedUserStore) FindByID(ctx context.Context, id int64) (*models.Account, error) {
	if account, err := c.get(ctx, IDKey(id)); err == nil {
		return account, nil
	}

	account, err := c.next.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	c.set(ctx, account)
	return account, nil
}

// FindStudentByStudentID is not cached
func (c *CachedUserStore) FindStudentByStudentID(ctx context.Context, studentID string) (*models.Account, error) {
	return c.next.FindStudentByStudentID(ctx, studentID)
}

// GetPasswordHash always reads from the wrapped store
func (c *CachedUserStore) GetPasswordHash(ctx context.Context, email string) (string, error) {
	return c.next.GetPasswordHash(ctx, email)
}

// InsertStudent stores a student account
func (c *CachedUserStore) InsertStudent(ctx context.Context, account *models.Account) error {
	return c.next.InsertStudent(ctx, account)
}

// InsertAdmin stores an administrator account
func (c *CachedUserStore) InsertAdmin(ctx context.Context, account *models.Account) error {
	return c.next.InsertAdmin(ctx, account)
}

// Update writes through and drops both the old and new cache entries
func (c *CachedUserStore) Update(ctx context.Context, account *models.Account) error {
	keys := []string{IDKey(account.ID), EmailKey(account.Email)}
	if previous, err := c.get(ctx, IDKey(account.ID)); err == nil && previous.Email != account.Email {
		keys = append(keys, EmailKey(previous.Email))
	}

	if err := c.next.Update(ctx, account); err != nil {
		return err
	}
	c.invalidate(ctx, keys...)
	return nil
}

// UpdatePasswordHash writes through; cached entries carry no hash
func (c *CachedUserStore) UpdatePasswordHash(ctx context.Context, id int64, passwordHash string) error {
	return c.next.UpdatePasswordHash(ctx, id, passwordHash)
}

// Delete removes the account and its cache entries
func (c *CachedUserStore) Delete(ctx context.Context, id int64) error {
	keys := []string{IDKey(id)}
	if previous, err := c.get(ctx, IDKey(id)); err == nil {
		keys = append(keys, EmailKey(previous.Email))
	}

	if err := c.next.Delete(ctx, id); err != nil {
		return err
	}
	c.invalidate(ctx, keys...)
	return nil
}

// List is not cached
func (c *CachedUserStore) List(ctx context.Context, filter models.AccountFilter) ([]*models.Account, error) {
	return c.next.List(ctx, filter)
}

func (c *CachedUserStore) get(ctx context.Context, key string) (*models.Account, error) {
	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrCacheMiss
		}
		logger.Warn().Err(err).Str("key", key).Msg("Account cache read failed")
		return nil, err
	}

	var account models.Account
	if err := json.Unmarshal(data, &account); err != nil {
		logger.Warn().Err(err).Str("key", key).Msg("Dropping undecodable account cache entry")
		c.invalidate(ctx, key)
		return nil, ErrCacheMiss
	}
	return &account, nil
}

func (c *CachedUserStore) set(ctx context.Context, account *models.Account) {
	// PasswordHash is tagged json:"-" so it never reaches Redis
	data, err := json.Marshal(account)
	if err != nil {
		logger.Warn().Err(err).Int64("account_id", account.ID).Msg("Failed to encode account for cache")
		return
	}

	pipe := c.client.Pipeline()
	pipe.Set(ctx, IDKey(account.ID), data, c.ttl)
	pipe.Set(ctx, EmailKey(account.Email), data, c.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		logger.Warn().Err(err).Int64("account_id", account.ID).Msg("Account cache write failed")
	}
}

func (c *CachedUserStore) invalidate(ctx context.Context, keys ...string) {
	if len(keys) == 0 {
		return
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		logger.Warn().Err(err).Strs("keys", keys).Msg("Account cache invalidation failed")
	}
}
