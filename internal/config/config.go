package config

import "time"

// Config is the root application configuration.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Database  DatabaseConfig  `yaml:"database"`
	Redis     RedisConfig     `yaml:"redis"`
	Auth      AuthConfig      `yaml:"auth"`
	Log       LogConfig       `yaml:"log"`
	CORS      CORSConfig      `yaml:"cors"`
	Cache     CacheConfig     `yaml:"cache"`
	Notify    NotifyConfig    `yaml:"notify"`
	WebSocket WebSocketConfig `yaml:"websocket"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins   string `yaml:"allowed_origins"   env:"CORS_ALLOWED_ORIGINS"   env-default:"*"`
	AllowedMethods   string `yaml:"allowed_methods"   env:"CORS_ALLOWED_METHODS"   env-default:"GET,POST,PATCH,DELETE,OPTIONS"`
	AllowedHeaders   string `yaml:"allowed_headers"   env:"CORS_ALLOWED_HEADERS"   env-default:"Authorization,Content-Type"`
	AllowCredentials bool   `yaml:"allow_credentials" env:"CORS_ALLOW_CREDENTIALS" env-default:"true"`
	MaxAge           int    `yaml:"max_age"           env:"CORS_MAX_AGE"           env-default:"86400"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `yaml:"host"             env:"SERVER_HOST"             env-default:"0.0.0.0"`
	Port            int           `yaml:"port"             env:"SERVER_PORT"             env-default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"SERVER_READ_TIMEOUT"     env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"SERVER_WRITE_TIMEOUT"    env-default:"30s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"     env:"SERVER_IDLE_TIMEOUT"     env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`
}

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	DSN             string        `yaml:"dsn"                env:"DATABASE_DSN"                env-required:"true"`
	MaxConns        int32         `yaml:"max_conns"          env:"DATABASE_MAX_CONNS"          env-default:"25"`
	MinConns        int32         `yaml:"min_conns"          env:"DATABASE_MIN_CONNS"          env-default:"5"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime"  env:"DATABASE_MAX_CONN_LIFETIME"  env-default:"1h"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env:"DATABASE_MAX_CONN_IDLE_TIME" env-default:"30m"`
}

// RedisConfig holds settings of the Redis instance backing the cache.
type RedisConfig struct {
	URL          string        `yaml:"url"           env:"REDIS_URL"           env-default:"redis://localhost:6379"`
	DialTimeout  time.Duration `yaml:"dial_timeout"  env:"REDIS_DIAL_TIMEOUT"  env-default:"5s"`
	ReadTimeout  time.Duration `yaml:"read_timeout"  env:"REDIS_READ_TIMEOUT"  env-default:"3s"`
	WriteTimeout time.Duration `yaml:"write_timeout" env:"REDIS_WRITE_TIMEOUT" env-default:"3s"`
}

// AuthConfig holds access token verification settings.
type AuthConfig struct {
	JWTSecret      string        `yaml:"jwt_secret"       env:"AUTH_JWT_SECRET"       env-required:"true"`
	JWTIssuer      string        `yaml:"jwt_issuer"       env:"AUTH_JWT_ISSUER"       env-default:"threads"`
	AccessTokenTTL time.Duration `yaml:"access_token_ttl" env:"AUTH_ACCESS_TOKEN_TTL" env-default:"24h"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}

// CacheConfig holds read-through cache settings.
// Cached listings may lag the database by up to their TTL.
type CacheConfig struct {
	ThreadsTTL time.Duration `yaml:"threads_ttl"   env:"CACHE_THREADS_TTL"   env-default:"30s"`
	RepliesTTL time.Duration `yaml:"replies_ttl"   env:"CACHE_REPLIES_TTL"   env-default:"30s"`
	// SingleFlight collapses concurrent misses on the same key into one fetch.
	SingleFlight bool `yaml:"single_flight" env:"CACHE_SINGLE_FLIGHT" env-default:"false"`
}

// NotifyConfig holds notification dispatch settings.
type NotifyConfig struct {
	BatchConcurrency int  `yaml:"batch_concurrency" env:"NOTIFY_BATCH_CONCURRENCY" env-default:"8"`
	PersistLikes     bool `yaml:"persist_likes"     env:"NOTIFY_PERSIST_LIKES"     env-default:"true"`
	RetentionDays    int  `yaml:"retention_days"    env:"NOTIFY_RETENTION_DAYS"    env-default:"90"`
}

// WebSocketConfig holds live session transport settings.
type WebSocketConfig struct {
	RegistryShards  int           `yaml:"registry_shards"   env:"WS_REGISTRY_SHARDS"   env-default:"32"`
	SendBuffer      int           `yaml:"send_buffer"       env:"WS_SEND_BUFFER"       env-default:"16"`
	WriteWait       time.Duration `yaml:"write_wait"        env:"WS_WRITE_WAIT"        env-default:"10s"`
	PongWait        time.Duration `yaml:"pong_wait"         env:"WS_PONG_WAIT"         env-default:"60s"`
	MaxMessageBytes int64         `yaml:"max_message_bytes" env:"WS_MAX_MESSAGE_BYTES" env-default:"4096"`
	// EnforceTokenExpiry closes a session when the token it was opened with expires.
	// Off by default: a session stays open for as long as the transport does.
	EnforceTokenExpiry bool `yaml:"enforce_token_expiry" env:"WS_ENFORCE_TOKEN_EXPIRY" env-default:"false"`
}

// PingPeriod returns how often the server pings a session. It must be shorter than PongWait.
func (c WebSocketConfig) PingPeriod() time.Duration {
	return c.PongWait * 9 / 10
}

// RateLimitConfig holds per-IP REST rate limiting settings.
type RateLimitConfig struct {
	RequestsPerMinute int           `yaml:"requests_per_minute" env:"RATE_LIMIT_RPM"     env-default:"300"`
	CleanupInterval   time.Duration `yaml:"cleanup_interval"    env:"RATE_LIMIT_CLEANUP" env-default:"5m"`
}
