package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Server   ServerConfig
	Redis    RedisConfig
	Upstream UpstreamConfig
	Embed    EmbedConfig
}

type ServerConfig struct {
	Port            int           `envconfig:"API_PORT" default:"8080"`
	ReadTimeout     time.Duration `envconfig:"API_READ_TIMEOUT" default:"10s"`
	WriteTimeout    time.Duration `envconfig:"API_WRITE_TIMEOUT" default:"30s"`
	ShutdownTimeout time.Duration `envconfig:"API_SHUTDOWN_TIMEOUT" default:"10s"`
}

type RedisConfig struct {
	Host     string `envconfig:"REDIS_HOST" default:"localhost"`
	Port     int    `envconfig:"REDIS_PORT" default:"6379"`
	Password string `envconfig:"REDIS_PASSWORD" default:""`
	DB       int    `envconfig:"REDIS_DB" default:"0"`
}

func (c RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

type UpstreamConfig struct {
	APIURL     string        `envconfig:"UPSTREAM_API_URL" default:"https://www.tikwm.com/api/"`
	CDNBaseURL string        `envconfig:"UPSTREAM_CDN_BASE_URL" default:"https://www.tikwm.com"`
	Timeout    time.Duration `envconfig:"UPSTREAM_TIMEOUT" default:"10s"`
}

type EmbedConfig struct {
	CacheTTL           time.Duration `envconfig:"EMBED_CACHE_TTL" default:"1h"`
	WritebackQueueSize int           `envconfig:"EMBED_WRITEBACK_QUEUE_SIZE" default:"128"`
	FallbackURL        string        `envconfig:"EMBED_FALLBACK_URL" default:"https://github.com/embedtok/embedtok"`
	SourceBaseURL      string        `envconfig:"EMBED_SOURCE_BASE_URL" default:"https://tiktok.com"`
	ShortLinkBaseHost  string        `envconfig:"EMBED_SHORT_LINK_BASE_HOST" default:"tiktok.com"`
	ResolveTimeout     time.Duration `envconfig:"EMBED_RESOLVE_TIMEOUT" default:"10s"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return &cfg, nil
}
