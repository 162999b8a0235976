// Package cache stores full responses in redis keyed by a digest of the
// question. The cache is strictly best-effort: a missing or failing redis
// degrades every operation to a pass-through.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	stderrors "github.com/jaredmarko/worldly-demo/internal/common/errors"
	"github.com/jaredmarko/worldly-demo/internal/common/logger"
	"github.com/jaredmarko/worldly-demo/internal/models"
)

const keyPrefix = "worldly:"

type ResponseCache struct {
	client *redis.Client
	ttl    time.Duration
	logger logger.Logger
}

// New builds a response cache. A nil client disables caching entirely.
func New(client *redis.Client, ttl time.Duration, log logger.Logger) *ResponseCache {
	return &ResponseCache{
		client: client,
		ttl:    ttl,
		logger: log.WithFields(map[string]interface{}{"component": "cache"}),
	}
}

// Key derives the cache key for a question. The raw question text is hashed
// as-is, so differently phrased questions never collide.
func Key(question string) string {
	sum := sha256.Sum256([]byte(question))
	return keyPrefix + hex.EncodeToString(sum[:])
}

// Get returns the cached response for a question, or (nil, false) on a miss
// or any redis failure.
func (c *ResponseCache) Get(ctx context.Context, question string) (*models.Response, bool) {
	if c.client == nil {
		return nil, false
	}

	payload, err := c.client.Get(ctx, Key(question)).Bytes()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		c.logger.WithError(stderrors.NewCacheUnavailableError(err)).Warn("cache read failed", nil)
		return nil, false
	}

	var response models.Response
	if err := json.Unmarshal(payload, &response); err != nil {
		c.logger.Warn("cache entry corrupt", map[string]interface{}{"error": err.Error()})
		return nil, false
	}
	return &response, true
}

// Set stores a response under the question's key. Failures are logged and
// swallowed.
func (c *ResponseCache) Set(ctx context.Context, question string, response *models.Response) {
	if c.client == nil {
		return
	}

	payload, err := json.Marshal(response)
	if err != nil {
		c.logger.Warn("cache encode failed", map[string]interface{}{"error": err.Error()})
		return
	}
	if err := c.client.Set(ctx, Key(question), payload, c.ttl).Err(); err != nil {
		c.logger.WithError(stderrors.NewCacheUnavailableError(err)).Warn("cache write failed", nil)
	}
}
