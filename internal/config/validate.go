package config

import (
	"fmt"
	"net/url"
	"time"
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if len(c.Auth.JWTSecret) < 32 {
		return fmt.Errorf("auth.jwt_secret must be at least 32 characters (got %d)", len(c.Auth.JWTSecret))
	}

	if u, err := url.Parse(c.Redis.URL); err != nil || (u.Scheme != "redis" && u.Scheme != "rediss") {
		return fmt.Errorf("redis.url must be a redis:// or rediss:// URL (got %q)", c.Redis.URL)
	}

	if err := c.Cache.validate(); err != nil {
		return fmt.Errorf("cache: %w", err)
	}
	if err := c.Notify.validate(); err != nil {
		return fmt.Errorf("notify: %w", err)
	}
	if err := c.WebSocket.validate(); err != nil {
		return fmt.Errorf("websocket: %w", err)
	}

	if c.RateLimit.RequestsPerMinute <= 0 {
		return fmt.Errorf("rate_limit.requests_per_minute must be > 0 (got %d)", c.RateLimit.RequestsPerMinute)
	}

	return nil
}

func (c *CacheConfig) validate() error {
	// SETEX rejects sub-second expiries.
	if c.ThreadsTTL < time.Second {
		return fmt.Errorf("threads_ttl must be at least 1s (got %s)", c.ThreadsTTL)
	}
	if c.RepliesTTL < time.Second {
		return fmt.Errorf("replies_ttl must be at least 1s (got %s)", c.RepliesTTL)
	}
	return nil
}

func (n *NotifyConfig) validate() error {
	if n.BatchConcurrency <= 0 {
		return fmt.Errorf("batch_concurrency must be > 0 (got %d)", n.BatchConcurrency)
	}
	if n.RetentionDays <= 0 {
		return fmt.Errorf("retention_days must be > 0 (got %d)", n.RetentionDays)
	}
	return nil
}

func (w *WebSocketConfig) validate() error {
	if w.RegistryShards <= 0 {
		return fmt.Errorf("registry_shards must be > 0 (got %d)", w.RegistryShards)
	}
	if w.SendBuffer <= 0 {
		return fmt.Errorf("send_buffer must be > 0 (got %d)", w.SendBuffer)
	}
	if w.PongWait <= 0 || w.WriteWait <= 0 {
		return fmt.Errorf("pong_wait and write_wait must be > 0")
	}
	return nil
}
