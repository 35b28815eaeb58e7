package redis

import (
	"context"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/jhoicas/retail-api/internal/application/auth"
)

// keyRevoked auth:revoked:{jti} -> "1", con TTL = vida restante del token.
const keyRevoked = "auth:revoked:%s"

var _ auth.TokenDenylist = (*Denylist)(nil)

// Denylist tokens revocados en Redis.
type Denylist struct {
	rdb *goredis.Client
}

// NewDenylist construye la denylist sobre un cliente existente.
func NewDenylist(rdb *goredis.Client) *Denylist {
	return &Denylist{rdb: rdb}
}

// Revoke marca el jti como revocado hasta que el token expire por sí solo.
func (d *Denylist) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	if err := d.rdb.Set(ctx, fmt.Sprintf(keyRevoked, tokenID), "1", ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

// IsRevoked indica si el jti fue revocado.
func (d *Denylist) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	n, err := d.rdb.Exists(ctx, fmt.Sprintf(keyRevoked, tokenID)).Result()
	if err != nil {
		return false, fmt.Errorf("redis exists: %w", err)
	}
	return n > 0, nil
}
