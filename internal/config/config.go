package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

// DevSessionSecret is the documented development fallback. Load refuses to
// start a production deployment that is still running on it.
const DevSessionSecret = "dev-session-secret-change-me"

type HTTPConfig struct {
	Host         string
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

type PostgresConfig struct {
	DSN             string
	MaxOpen         int
	MaxIdle         int
	ConnMaxLifetime time.Duration
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type SecurityConfig struct {
	SessionSecret    string
	SessionTTL       time.Duration
	BcryptCost       int
	LoginMaxAttempts int
	LoginWindow      time.Duration
}

type BootstrapConfig struct {
	EnsureAdmin   bool
	AdminUsername string
	AdminPassword string
}

type JobsConfig struct {
	Enabled      bool
	Stream       string
	Group        string
	ReminderCron string
}

type AppConfig struct {
	Environment      string
	HTTP             HTTPConfig
	Postgres         PostgresConfig
	Redis            RedisConfig
	Security         SecurityConfig
	Bootstrap        BootstrapConfig
	Jobs             JobsConfig
	AllowCORSOrigins []string
}

func Load() (*AppConfig, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("../config")

	v.SetEnvPrefix("TASKLOG")
	// Nested keys map to env vars with underscores, e.g.
	// security.sessionsecret -> TASKLOG_SECURITY_SESSIONSECRET.
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("load config file: %w", err)
		}
	}

	var cfg AppConfig
	if err := v.Unmarshal(&cfg, func(dc *mapstructure.DecoderConfig) {
		dc.TagName = "mapstructure"
		dc.DecodeHook = mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		)
	}); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate fails fast on configuration that must never reach production,
// and fills in development fallbacks elsewhere.
func (c *AppConfig) Validate() error {
	if c.Environment == "production" {
		if c.Security.SessionSecret == "" || c.Security.SessionSecret == DevSessionSecret {
			return fmt.Errorf("security.sessionsecret must be set to a non-default value in production")
		}
	}
	if c.Security.SessionSecret == "" {
		c.Security.SessionSecret = DevSessionSecret
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("environment", "development")

	v.SetDefault("http.host", "0.0.0.0")
	v.SetDefault("http.port", 8080)
	v.SetDefault("http.readtimeout", "10s")
	v.SetDefault("http.writetimeout", "15s")
	v.SetDefault("http.idletimeout", "60s")

	// Keys without a meaningful default still need registering, or env-only
	// values never reach Unmarshal.
	v.SetDefault("postgres.dsn", "")

	v.SetDefault("postgres.maxopen", 30)
	v.SetDefault("postgres.maxidle", 10)
	v.SetDefault("postgres.connmaxlifetime", "30m")

	v.SetDefault("redis.addr", "127.0.0.1:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)

	v.SetDefault("security.sessionsecret", "")
	v.SetDefault("security.sessionttl", "24h")
	v.SetDefault("security.bcryptcost", 10)
	v.SetDefault("security.loginmaxattempts", 10)
	v.SetDefault("security.loginwindow", "15m")

	v.SetDefault("bootstrap.ensureadmin", false)
	v.SetDefault("bootstrap.adminusername", "admin")
	v.SetDefault("bootstrap.adminpassword", "admin123")

	v.SetDefault("jobs.enabled", true)
	v.SetDefault("jobs.stream", "tasks:jobs")
	v.SetDefault("jobs.group", "tasklog-api")
	v.SetDefault("jobs.remindercron", "0 0 7 * * *") // daily at 07:00

	v.SetDefault("allowcorsorigins", []string{})
}
