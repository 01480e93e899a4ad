package middleware

import (
	"context"
	"net/http"
	"strings"

	"pet-companion/internal/ports/auth"
)

type ctxKey string

const claimsKey ctxKey = "claims"

const (
	// HeaderDeviceID identifica al dispositivo; es el user id del store.
	HeaderDeviceID  = "X-Device-ID"
	HeaderDebugUser = "X-Debug-User-ID"
)

// AuthContext:
// - Si verifier == nil => modo dev: X-Device-ID (o X-Debug-User-ID) es la identidad.
// - Si verifier != nil => solo un Bearer token válido da claims; los headers se ignoran.
// - Si no hay claims, el request sigue igual; los handlers decidirán si exigen auth.
func AuthContext(verifier auth.AuthVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// Dev mode: permitir inyectar device sin verifier
			if verifier == nil {
				if uid := deviceID(r); uid != "" {
					next.ServeHTTP(w, withClaims(r, auth.Claims{UserID: uid}))
					return
				}
				next.ServeHTTP(w, r)
				return
			}

			// Verifier mode
			token := bearerToken(r.Header.Get("Authorization"))
			if token == "" {
				next.ServeHTTP(w, r)
				return
			}

			claims, err := verifier.Verify(r.Context(), token)
			if err != nil || strings.TrimSpace(claims.UserID) == "" {
				// No cortamos aquí para no acoplar. El handler decide 401.
				next.ServeHTTP(w, r)
				return
			}
			next.ServeHTTP(w, withClaims(r, claims))
		})
	}
}

func GetClaims(ctx context.Context) (auth.Claims, bool) {
	v := ctx.Value(claimsKey)
	if v == nil {
		return auth.Claims{}, false
	}
	c, ok := v.(auth.Claims)
	return c, ok
}

func withClaims(r *http.Request, c auth.Claims) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), claimsKey, c))
}

func deviceID(r *http.Request) string {
	if uid := strings.TrimSpace(r.Header.Get(HeaderDeviceID)); uid != "" {
		return uid
	}
	return strings.TrimSpace(r.Header.Get(HeaderDebugUser))
}

func bearerToken(authHeader string) string {
	if strings.TrimSpace(authHeader) == "" {
		return ""
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 {
		return ""
	}
	if !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
