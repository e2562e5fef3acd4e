package denylist

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "denylist:token:"

// Denylist records revoked token ids until their natural expiry. Verification
// consults it when configured; a nil Denylist means revocation is disabled and
// tokens are honored until they expire.
type Denylist interface {
	Add(ctx context.Context, tokenId string, ttl time.Duration) error
	Contains(ctx context.Context, tokenId string) (bool, error)
}

type redisDenylist struct {
	redisClient *redis.Client
}

func NewRedisDenylist(redisClient *redis.Client) Denylist {
	return &redisDenylist{
		redisClient: redisClient,
	}
}

func (d *redisDenylist) Add(ctx context.Context, tokenId string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}

	return d.redisClient.Set(ctx, keyPrefix+tokenId, "1", ttl).Err()
}

func (d *redisDenylist) Contains(ctx context.Context, tokenId string) (bool, error) {
	exists, err := d.redisClient.Exists(ctx, keyPrefix+tokenId).Result()
	if err != nil {
		return false, err
	}

	return exists > 0, nil
}
