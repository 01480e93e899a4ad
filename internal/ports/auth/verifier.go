package auth

import "context"

// AuthVerifier verifica un Bearer token y devuelve la identidad del dispositivo.
type AuthVerifier interface {
	Verify(ctx context.Context, token string) (Claims, error)
}
