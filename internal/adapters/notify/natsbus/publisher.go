// Package natsbus publica cada cambio de stats en NATS para consumidores
// externos (dashboards, companion apps). Es opcional: sin NATS_URL no se usa.
package natsbus

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"pet-companion/internal/domain/care"

	"github.com/nats-io/nats.go"
)

const DefaultPrefix = "petcare"

// conn es la parte de *nats.Conn que usamos.
type conn interface {
	Publish(subj string, data []byte) error
}

type Publisher struct {
	nc     conn
	prefix string
}

// Connect abre la conexión con reconexión infinita; el motor nunca espera a NATS.
func Connect(url, name string) (*nats.Conn, error) {
	nc, err := nats.Connect(url,
		nats.Name(name),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
	)
	if err != nil {
		return nil, fmt.Errorf("connect to NATS: %w", err)
	}
	return nc, nil
}

func NewPublisher(nc *nats.Conn, prefix string) *Publisher {
	return newPublisher(nc, prefix)
}

func newPublisher(nc conn, prefix string) *Publisher {
	prefix = strings.Trim(strings.TrimSpace(prefix), ".")
	if prefix == "" {
		prefix = DefaultPrefix
	}
	return &Publisher{nc: nc, prefix: prefix}
}

// StatsEvent es el payload publicado en {prefix}.{user}.stats.
type StatsEvent struct {
	UserID    string           `json:"user_id"`
	Active    bool             `json:"active"`
	Pet       string           `json:"pet,omitempty"`
	Stats     *care.Record     `json:"stats,omitempty"`
	Mood      string           `json:"mood,omitempty"`
	MoodColor care.Color       `json:"mood_color,omitempty"`
	Colors    *care.StatColors `json:"colors,omitempty"`
	Saves     int64            `json:"saves"`
	At        time.Time        `json:"at"`
}

func (p *Publisher) Subject(userID string) string {
	return p.prefix + "." + subjectToken(userID) + ".stats"
}

func (p *Publisher) Publish(ctx context.Context, s care.Snapshot) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	ev := StatsEvent{
		UserID: s.UserID,
		Active: s.Active,
		Saves:  s.Saves,
		At:     s.At,
	}
	if s.Active {
		rec := care.RecordOf(s.Stats)
		colors := s.Colors
		ev.Pet = s.Pet.Name
		ev.Stats = &rec
		ev.Mood = s.Mood.Label
		ev.MoodColor = s.Mood.Color
		ev.Colors = &colors
	}

	data, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal stats event: %w", err)
	}
	if err := p.nc.Publish(p.Subject(s.UserID), data); err != nil {
		return fmt.Errorf("publish stats event: %w", err)
	}
	return nil
}

// subjectToken deja el user id como un solo token NATS válido.
func subjectToken(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return "_"
	}
	return strings.Map(func(r rune) rune {
		switch r {
		case '.', '*', '>', ' ', '\t', '\n', '\r':
			return '_'
		}
		return r
	}, s)
}
