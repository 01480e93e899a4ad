// Package kvrest guarda stats en un key-value REST en la nube
// (estilo realtime database): GET/PUT de JSON en users/{user}/pets/{pet}.json.
package kvrest

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"pet-companion/internal/domain/care"
	"pet-companion/internal/platform/httpclient"
)

type Config struct {
	BaseURL string
	// APIKey va como query param "auth" en cada request.
	APIKey  string
	Timeout time.Duration

	Transport http.RoundTripper
}

type StatsStore struct {
	client *httpclient.Client
	now    func() time.Time
}

func NewStatsStore(cfg Config) (*StatsStore, error) {
	if strings.TrimSpace(cfg.BaseURL) == "" {
		return nil, fmt.Errorf("kvrest: base url required")
	}
	c, err := httpclient.New(httpclient.Options{
		BaseURL:   cfg.BaseURL,
		Timeout:   cfg.Timeout,
		Transport: cfg.Transport,
	})
	if err != nil {
		return nil, fmt.Errorf("kvrest: %w", err)
	}
	if key := strings.TrimSpace(cfg.APIKey); key != "" {
		c.Query.Set("auth", key)
	}
	return &StatsStore{client: c, now: time.Now}, nil
}

func recordPath(userID, petName string) string {
	return "/users/" + url.PathEscape(userID) + "/pets/" + url.PathEscape(petName) + ".json"
}

// Load: 404 o body null = no hay registro.
func (s *StatsStore) Load(ctx context.Context, userID, petName string) (care.Record, bool, error) {
	var rec care.Record
	found, err := s.client.DoJSON(ctx, http.MethodGet, recordPath(userID, petName), nil, &rec)
	if err != nil {
		if httpclient.IsStatus(err, http.StatusNotFound) {
			return care.Record{}, false, nil
		}
		return care.Record{}, false, fmt.Errorf("kvrest load: %w", err)
	}
	if !found {
		return care.Record{}, false, nil
	}
	return rec, true, nil
}

func (s *StatsStore) Save(ctx context.Context, userID, petName string, rec care.Record) error {
	rec.UpdatedAt = s.now().UTC()
	if _, err := s.client.DoJSON(ctx, http.MethodPut, recordPath(userID, petName), rec, nil); err != nil {
		return fmt.Errorf("kvrest save: %w", err)
	}
	return nil
}
