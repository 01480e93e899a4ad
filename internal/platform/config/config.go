// Package config carga la configuración del servicio: archivo YAML opcional,
// luego overrides por env (mismo estilo que el logger), luego Validate.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	HTTP    HTTPConfig    `yaml:"http"`
	Log     LogConfig     `yaml:"log"`
	Care    CareConfig    `yaml:"care"`
	Storage StorageConfig `yaml:"storage"`
	NATS    NATSConfig    `yaml:"nats"`
	Auth    AuthConfig    `yaml:"auth"`

	// driverSet: el archivo eligió storage.driver explícitamente.
	driverSet bool
}

type HTTPConfig struct {
	Addr         string        `yaml:"addr"`
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	App    string `yaml:"app"`
}

// CareConfig controla los tiempos del motor de cuidado.
type CareConfig struct {
	// TickInterval es cada cuánto decaen las stats de la mascota activa.
	TickInterval time.Duration `yaml:"tick_interval"`
	// SaveDelay es la ventana de debounce antes de persistir.
	SaveDelay time.Duration `yaml:"save_delay"`
	// LoadTimeout acota la lectura única al seleccionar mascota.
	LoadTimeout time.Duration `yaml:"load_timeout"`
	// SaveTimeout acota cada escritura al store.
	SaveTimeout time.Duration `yaml:"save_timeout"`
}

// StorageConfig elige dónde se guardan las stats.
// Driver: memory | postgres | sqlite | kv
type StorageConfig struct {
	Driver     string   `yaml:"driver"`
	DSN        string   `yaml:"dsn"`
	SQLitePath string   `yaml:"sqlite_path"`
	KV         KVConfig `yaml:"kv"`
}

// KVConfig apunta al key-value REST en la nube (estilo realtime database).
type KVConfig struct {
	BaseURL string        `yaml:"base_url"`
	APIKey  string        `yaml:"api_key"`
	Timeout time.Duration `yaml:"timeout"`
}

type NATSConfig struct {
	// URL vacía = no se publican cambios.
	URL           string `yaml:"url"`
	SubjectPrefix string `yaml:"subject_prefix"`
}

// AuthConfig apunta al servicio que verifica Bearer tokens.
// BaseURL vacía = modo dev (identidad solo por headers).
type AuthConfig struct {
	BaseURL string        `yaml:"base_url"`
	APIKey  string        `yaml:"api_key"`
	Timeout time.Duration `yaml:"timeout"`
}

const (
	DriverMemory   = "memory"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
	DriverKV       = "kv"
)

func DefaultConfig() *Config {
	return &Config{
		HTTP: HTTPConfig{
			Addr:         ":8080",
			ReadTimeout:  5 * time.Second,
			WriteTimeout: 10 * time.Second,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
			App:    "pet-companion",
		},
		Care: CareConfig{
			TickInterval: 5 * time.Second,
			SaveDelay:    1 * time.Second,
			LoadTimeout:  3 * time.Second,
			SaveTimeout:  5 * time.Second,
		},
		Storage: StorageConfig{
			Driver:     DriverMemory,
			SQLitePath: "data/pet-companion.db",
			KV: KVConfig{
				Timeout: 10 * time.Second,
			},
		},
		NATS: NATSConfig{
			SubjectPrefix: "petcare",
		},
		Auth: AuthConfig{
			Timeout: 5 * time.Second,
		},
	}
}

// Load arma la config: defaults <- archivo (si path != "") <- env.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	if strings.TrimSpace(path) != "" {
		fromFile, err := LoadFromFile(path)
		if err != nil {
			return nil, err
		}
		cfg = fromFile
	}
	if err := cfg.ApplyEnv(os.Getenv); err != nil {
		return nil, err
	}
	return cfg, nil
}

func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config file: %w", err)
	}

	// Los defaults ya traen driver; hay que mirar si la clave estaba.
	var explicit struct {
		Storage struct {
			Driver *string `yaml:"driver"`
		} `yaml:"storage"`
	}
	if err := yaml.Unmarshal(data, &explicit); err != nil {
		return nil, fmt.Errorf("parse config file: %w", err)
	}
	cfg.driverSet = explicit.Storage.Driver != nil
	return cfg, nil
}

// ApplyEnv pisa valores con variables de entorno (para dev/handoff).
// getenv se inyecta para tests.
func (c *Config) ApplyEnv(getenv func(string) string) error {
	str := func(key string, dst *string) {
		if v := strings.TrimSpace(getenv(key)); v != "" {
			*dst = v
		}
	}
	dur := func(key string, dst *time.Duration) error {
		v := strings.TrimSpace(getenv(key))
		if v == "" {
			return nil
		}
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		*dst = d
		return nil
	}

	if v := strings.TrimSpace(getenv("PORT")); v != "" {
		c.HTTP.Addr = ":" + v
	}
	str("LOG_LEVEL", &c.Log.Level)
	str("LOG_FORMAT", &c.Log.Format)
	str("APP_NAME", &c.Log.App)

	str("STORE_DRIVER", &c.Storage.Driver)
	str("DB_DSN", &c.Storage.DSN)
	str("SQLITE_PATH", &c.Storage.SQLitePath)
	str("KV_BASE_URL", &c.Storage.KV.BaseURL)
	str("KV_API_KEY", &c.Storage.KV.APIKey)
	str("NATS_URL", &c.NATS.URL)
	str("AUTH_BASE_URL", &c.Auth.BaseURL)
	str("AUTH_API_KEY", &c.Auth.APIKey)

	// Compat: si hay DSN y nadie eligió driver (ni env ni archivo), usamos postgres.
	if c.Storage.DSN != "" && !c.driverSet && strings.TrimSpace(getenv("STORE_DRIVER")) == "" && c.Storage.Driver == DriverMemory {
		c.Storage.Driver = DriverPostgres
	}

	if err := dur("CARE_TICK_INTERVAL", &c.Care.TickInterval); err != nil {
		return err
	}
	if err := dur("CARE_SAVE_DELAY", &c.Care.SaveDelay); err != nil {
		return err
	}
	return nil
}

func (c *Config) Validate() error {
	if strings.TrimSpace(c.HTTP.Addr) == "" {
		return fmt.Errorf("http.addr is required")
	}
	if c.Care.TickInterval <= 0 {
		return fmt.Errorf("care.tick_interval must be positive")
	}
	if c.Care.SaveDelay <= 0 {
		return fmt.Errorf("care.save_delay must be positive")
	}

	switch c.Storage.Driver {
	case DriverMemory:
	case DriverPostgres:
		if strings.TrimSpace(c.Storage.DSN) == "" {
			return fmt.Errorf("storage.dsn is required for postgres")
		}
	case DriverSQLite:
		if strings.TrimSpace(c.Storage.SQLitePath) == "" {
			return fmt.Errorf("storage.sqlite_path is required for sqlite")
		}
	case DriverKV:
		if strings.TrimSpace(c.Storage.KV.BaseURL) == "" {
			return fmt.Errorf("storage.kv.base_url is required for kv")
		}
	default:
		return fmt.Errorf("unknown storage.driver %q", c.Storage.Driver)
	}

	if c.Auth.BaseURL != "" && strings.TrimSpace(c.Auth.APIKey) == "" {
		return fmt.Errorf("auth.api_key is required when auth.base_url is set")
	}
	return nil
}
