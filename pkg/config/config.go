package config

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config agrupa la configuración de la aplicación (lectura vía Viper desde env y opcionalmente archivo).
type Config struct {
	App      AppConfig
	HTTP     HTTPConfig
	Upstream UpstreamConfig
	JWT      JWTConfig
	Session  SessionConfig
	Notifier NotifierConfig
	Redis    RedisConfig
	DB       DBConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env       string // development, staging, production
	Name      string
	LogLevel  string
	PublicURL string // URL pública del dashboard (QR del reporte PDF)
}

// HTTPConfig configuración del servidor HTTP.
type HTTPConfig struct {
	Host string
	Port int
}

// Addr devuelve la dirección de escucha (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// UpstreamConfig API REST de inventario y pronóstico.
type UpstreamConfig struct {
	BaseURL  string
	Timeout  time.Duration
	PageSize int
}

// JWTConfig verificación local de tokens (opcional) y emisión de tokens de desarrollo.
type JWTConfig struct {
	Secret     string
	Expiration int // minutos
	Issuer     string
}

// SessionConfig caché de sesiones resueltas.
type SessionConfig struct {
	CacheTTL      time.Duration
	LoadingBudget time.Duration
}

// NotifierConfig notificador de stock bajo.
type NotifierConfig struct {
	PollInterval time.Duration
	StorageKey   string
	Store        string // memory | redis | postgres
	FeedSize     int
	IdleTimeout  time.Duration
	Timezone     string // IANA; vacío = hora local del proceso
}

// Location zona horaria del reinicio de medianoche.
func (c NotifierConfig) Location() (*time.Location, error) {
	if c.Timezone == "" {
		return time.Local, nil
	}
	return time.LoadLocation(c.Timezone)
}

// RedisConfig conexión a Redis (NOTIFIER_STORE=redis).
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// DBConfig configuración de PostgreSQL (NOTIFIER_STORE=postgres).
// Si DatabaseURL no está vacío, se usa como connection string completo.
type DBConfig struct {
	DatabaseURL string
	Host        string
	Port        int
	User        string
	Password    string
	DBName      string
	SSLMode     string
	MaxConns    int
}

// ConnectionString devuelve el DSN a usar: DATABASE_URL si está definido, si no el construido con DSN().
func (c DBConfig) ConnectionString() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return c.DSN()
}

// DSN devuelve el connection string para PostgreSQL con URL encoding para caracteres especiales.
func (c DBConfig) DSN() string {
	u := &url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     fmt.Sprintf("%s:%d", c.Host, c.Port),
		Path:     "/" + c.DBName,
		RawQuery: fmt.Sprintf("sslmode=%s", c.SSLMode),
	}
	return u.String()
}

// Load lee la configuración desde variables de entorno (y opcionalmente desde .env / config.env).
// Las env vars tienen prioridad.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // ignoramos error si no existe

	v.SetConfigName("config")
	v.AddConfigPath("./config")
	_ = v.ReadInConfig()

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	return fromViper(v)
}

func fromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		App: AppConfig{
			Env:       getString(v, "APP_ENV", "development"),
			Name:      getString(v, "APP_NAME", "dashboard-gateway"),
			LogLevel:  getString(v, "LOG_LEVEL", "info"),
			PublicURL: getString(v, "APP_PUBLIC_URL", ""),
		},
		HTTP: HTTPConfig{
			Host: getString(v, "HTTP_HOST", "0.0.0.0"),
			Port: getInt(v, "HTTP_PORT", 8080),
		},
		Upstream: UpstreamConfig{
			BaseURL:  getString(v, "UPSTREAM_BASE_URL", "http://127.0.0.1:8000/api/v1"),
			Timeout:  time.Duration(getInt(v, "UPSTREAM_TIMEOUT_SECONDS", 15)) * time.Second,
			PageSize: getInt(v, "UPSTREAM_PAGE_SIZE", 100),
		},
		JWT: JWTConfig{
			Secret:     getString(v, "JWT_SECRET", ""),
			Expiration: getInt(v, "JWT_EXPIRATION_MINUTES", 60),
			Issuer:     getString(v, "JWT_ISSUER", "dashboard-gateway"),
		},
		Session: SessionConfig{
			CacheTTL:      time.Duration(getInt(v, "SESSION_CACHE_TTL_SECONDS", 60)) * time.Second,
			LoadingBudget: time.Duration(getInt(v, "SESSION_LOADING_BUDGET_MS", 300)) * time.Millisecond,
		},
		Notifier: NotifierConfig{
			PollInterval: time.Duration(getInt(v, "NOTIFIER_POLL_INTERVAL_SECONDS", 300)) * time.Second,
			StorageKey:   getString(v, "NOTIFIER_STORAGE_KEY", "lowstock_notified_ids"),
			Store:        strings.ToLower(getString(v, "NOTIFIER_STORE", "memory")),
			FeedSize:     getInt(v, "NOTIFIER_FEED_SIZE", 50),
			IdleTimeout:  time.Duration(getInt(v, "NOTIFIER_IDLE_TIMEOUT_MINUTES", 30)) * time.Minute,
			Timezone:     getString(v, "NOTIFIER_TIMEZONE", ""),
		},
		Redis: RedisConfig{
			Addr:     getString(v, "REDIS_ADDR", "localhost:6379"),
			Password: getString(v, "REDIS_PASSWORD", ""),
			DB:       getInt(v, "REDIS_DB", 0),
		},
		DB: DBConfig{
			DatabaseURL: getString(v, "DATABASE_URL", ""),
			Host:        getString(v, "DB_HOST", "localhost"),
			Port:        getInt(v, "DB_PORT", 5432),
			User:        getString(v, "DB_USER", "postgres"),
			Password:    getString(v, "DB_PASSWORD", ""),
			DBName:      getString(v, "DB_NAME", "dashboard"),
			SSLMode:     getString(v, "DB_SSLMODE", "disable"),
			MaxConns:    getInt(v, "DB_MAX_CONNS", 10),
		},
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Upstream.BaseURL == "" {
		return fmt.Errorf("config: UPSTREAM_BASE_URL es obligatorio")
	}
	if c.Notifier.PollInterval <= 0 {
		return fmt.Errorf("config: NOTIFIER_POLL_INTERVAL_SECONDS debe ser mayor que cero")
	}
	switch c.Notifier.Store {
	case "memory", "redis", "postgres":
	default:
		return fmt.Errorf("config: NOTIFIER_STORE %q no soportado (memory|redis|postgres)", c.Notifier.Store)
	}
	if _, err := c.Notifier.Location(); err != nil {
		return fmt.Errorf("config: NOTIFIER_TIMEZONE: %w", err)
	}
	return nil
}

func getString(v *viper.Viper, key, def string) string {
	if v.IsSet(key) {
		return v.GetString(key)
	}
	return def
}

func getInt(v *viper.Viper, key string, def int) int {
	if v.IsSet(key) {
		switch v.Get(key).(type) {
		case int:
			return v.GetInt(key)
		case string:
			n, err := strconv.Atoi(strings.TrimSpace(v.GetString(key)))
			if err != nil {
				return def
			}
			return n
		default:
			return v.GetInt(key)
		}
	}
	return def
}
