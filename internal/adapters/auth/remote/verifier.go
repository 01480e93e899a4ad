// Package remote verifica Bearer tokens contra un servicio de identidad
// externo por HTTP. Implementa auth.AuthVerifier.
package remote

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"pet-companion/internal/platform/httpclient"
	"pet-companion/internal/ports/auth"
)

var (
	ErrNotConfigured = errors.New("auth verifier not configured")
	ErrUnauthorized  = errors.New("token unauthorized")
	ErrUpstream      = errors.New("auth upstream error")
)

const verifyPath = "/v1/tokens/verify"

type Config struct {
	BaseURL string
	APIKey  string

	// APIKeyHeader vacío = "X-Api-Key".
	APIKeyHeader string
	Timeout      time.Duration

	// Transport opcional (tests).
	Transport http.RoundTripper
}

type Verifier struct {
	client *httpclient.Client
}

func NewVerifier(cfg Config) (*Verifier, error) {
	if strings.TrimSpace(cfg.BaseURL) == "" || strings.TrimSpace(cfg.APIKey) == "" {
		return nil, ErrNotConfigured
	}
	c, err := httpclient.New(httpclient.Options{
		BaseURL:   cfg.BaseURL,
		Timeout:   cfg.Timeout,
		Transport: cfg.Transport,
	})
	if err != nil {
		return nil, err
	}

	h := strings.TrimSpace(cfg.APIKeyHeader)
	if h == "" {
		h = "X-Api-Key"
	}
	c.Header.Set(h, strings.TrimSpace(cfg.APIKey))
	return &Verifier{client: c}, nil
}

type verifyResponse struct {
	// device_id tiene prioridad: es la key bajo la que se guardan las stats.
	DeviceID string `json:"device_id"`
	UserID   string `json:"user_id"`
	Email    string `json:"email"`
}

func (v *Verifier) Verify(ctx context.Context, token string) (auth.Claims, error) {
	if v == nil || v.client == nil {
		return auth.Claims{}, ErrNotConfigured
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return auth.Claims{}, ErrUnauthorized
	}

	var out verifyResponse
	found, err := v.client.DoJSON(ctx, http.MethodPost, verifyPath, map[string]string{"token": token}, &out)
	if err != nil {
		if httpclient.IsStatus(err, http.StatusUnauthorized) || httpclient.IsStatus(err, http.StatusForbidden) {
			return auth.Claims{}, ErrUnauthorized
		}
		return auth.Claims{}, fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	if !found {
		return auth.Claims{}, fmt.Errorf("%w: empty response", ErrUpstream)
	}

	id := strings.TrimSpace(out.DeviceID)
	if id == "" {
		id = strings.TrimSpace(out.UserID)
	}
	if id == "" {
		return auth.Claims{}, fmt.Errorf("%w: response missing device_id", ErrUpstream)
	}

	return auth.Claims{UserID: id, Email: strings.TrimSpace(out.Email)}, nil
}
