package auth

import (
	"context"
	"time"
)

// TokenDenylist registra tokens revocados (logout) hasta su vencimiento.
type TokenDenylist interface {
	Revoke(ctx context.Context, tokenID string, ttl time.Duration) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

// NopDenylist no revoca nada; se usa cuando no hay Redis configurado.
type NopDenylist struct{}

func (NopDenylist) Revoke(context.Context, string, time.Duration) error { return nil }
func (NopDenylist) IsRevoked(context.Context, string) (bool, error)     { return false, nil }
