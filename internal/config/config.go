package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig
	API      APIConfig
	Session  SessionConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Audit    AuditConfig
}

type ServerConfig struct {
	Port    string
	AppName string `mapstructure:"app_name"`
}

// APIConfig points at the remote moderation service.
type APIConfig struct {
	BaseURL string `mapstructure:"base_url"`
	// Timeout of zero leaves requests unbounded.
	Timeout time.Duration
}

type SessionConfig struct {
	CookieName string `mapstructure:"cookie_name"`
	TTL        time.Duration
	Secure     bool
}

type DatabaseConfig struct {
	Driver      string
	Path        string
	Host        string
	Port        int
	User        string
	Password    string
	DBName      string
	SSLMode     string
	TimeZone    string
	TablePrefix string `mapstructure:"table_prefix"`
}

// AuditConfig bounds the local audit trail. A zero Retention keeps everything.
type AuditConfig struct {
	Retention     time.Duration
	PruneInterval time.Duration `mapstructure:"prune_interval"`
	BufferSize    int           `mapstructure:"buffer_size"`
}

type RedisConfig struct {
	Addr        string
	Password    string
	DB          int
	PoolSize    int           `mapstructure:"pool_size"`
	DialTimeout time.Duration `mapstructure:"dial_timeout"`
}

// LoadConfig reads .env, config.yaml and the environment, exiting on a decode failure.
func LoadConfig() *Config {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Printf("Warning: Error loading .env file, %s", err)
	}

	cfg, err := load(viper.New(), ".", "./config")
	if err != nil {
		log.Fatalf("Unable to decode into struct, %v", err)
	}
	return cfg
}

func load(v *viper.Viper, paths ...string) (*Config, error) {
	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	for _, p := range paths {
		v.AddConfigPath(p)
	}

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		log.Printf("Warning: Error reading config file, %s", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	cfg.API.BaseURL = strings.TrimRight(cfg.API.BaseURL, "/")
	return &cfg, nil
}

// Every key gets a default so AutomaticEnv can override it on Unmarshal.
func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", ":3000")
	v.SetDefault("server.app_name", "modconsole")

	v.SetDefault("api.base_url", "http://localhost:8080")
	v.SetDefault("api.timeout", 0)

	v.SetDefault("session.cookie_name", "console_session")
	v.SetDefault("session.ttl", "12h")
	v.SetDefault("session.secure", false)

	v.SetDefault("database.driver", "postgres")
	v.SetDefault("database.path", "data/console.db")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.password", "")
	v.SetDefault("database.dbname", "modconsole")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.timezone", "UTC")
	v.SetDefault("database.table_prefix", "console_")

	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.pool_size", 10)
	v.SetDefault("redis.dial_timeout", "5s")

	v.SetDefault("audit.retention", 0)
	v.SetDefault("audit.prune_interval", "1h")
	v.SetDefault("audit.buffer_size", 256)
}
