package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

// Store backends selectable with SESSION_STORE.
const (
	StoreMemory = "memory"
	StoreRedis  = "redis"
	StoreMongo  = "mongo"
)

type Config struct {
	BridgeAddr    string `env:"BRIDGE_ADDR,    default=127.0.0.1:8090"`
	BridgeToken   string `env:"BRIDGE_TOKEN"`
	Env           string `env:"ENV,            default=development"`
	LogLevel      string `env:"LOG_LEVEL,      default=info"`
	LogPretty     bool   `env:"LOG_PRETTY,     default=false"`
	EnableSwagger bool   `env:"ENABLE_SWAGGER, default=false"`

	API     APIConfig
	Session SessionConfig
	Mongo   MongoConfig
	Redis   RedisConfig
}

type APIConfig struct {
	BaseURL string        `env:"API_BASE_URL, default=http://localhost:8000/api"`
	Timeout time.Duration `env:"API_TIMEOUT,  default=15s"`
}

type SessionConfig struct {
	Store             string        `env:"SESSION_STORE,              default=memory"`
	Namespace         string        `env:"SESSION_NAMESPACE,          default=portal:session"`
	InactivityTimeout time.Duration `env:"SESSION_INACTIVITY_TIMEOUT, default=7m"`
	ActivityThrottle  time.Duration `env:"SESSION_ACTIVITY_THROTTLE,  default=30s"`
	WatchdogInterval  time.Duration `env:"SESSION_WATCHDOG_INTERVAL,  default=1m"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=consultorio_juridico"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR,     default=localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB,       default=0"`
}

// IsDevelopment reports whether the agent runs against a development backend.
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	return load(ctx, envconfig.OsLookuper())
}

func load(ctx context.Context, lookuper envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: lookuper}); err != nil {
		return nil, fmt.Errorf("load configuration: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	switch c.Session.Store {
	case StoreMemory, StoreRedis, StoreMongo:
	default:
		return fmt.Errorf("SESSION_STORE must be one of memory, redis, mongo; got %q", c.Session.Store)
	}
	if c.Session.ActivityThrottle >= c.Session.InactivityTimeout {
		return fmt.Errorf("SESSION_ACTIVITY_THROTTLE (%s) must be shorter than SESSION_INACTIVITY_TIMEOUT (%s)",
			c.Session.ActivityThrottle, c.Session.InactivityTimeout)
	}
	return nil
}
