// Package identity transporta el usuario autenticado en el context.Context de la petición.
package identity

import "context"

// User identidad resuelta por el middleware de autenticación.
type User struct {
	ID    string
	Name  string
	Email string
	// TokenID jti del token usado en la petición (para logout).
	TokenID string
}

type ctxKey struct{}

// WithUser devuelve un contexto hijo con la identidad adjunta.
func WithUser(ctx context.Context, u User) context.Context {
	return context.WithValue(ctx, ctxKey{}, u)
}

// FromContext devuelve la identidad adjunta por WithUser.
func FromContext(ctx context.Context) (User, bool) {
	u, ok := ctx.Value(ctxKey{}).(User)
	return u, ok && u.ID != ""
}
