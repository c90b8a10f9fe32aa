package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Razorpay RazorpayConfig
	Unlock   UnlockConfig
	Pricing  PricingConfig
	Geo      GeoConfig
	Blog     BlogConfig
}

type AppConfig struct {
	AppName       string
	Environment   string
	HTTPPort      string
	PublicBaseURL string
	CORSOrigins   []string
}

// DatabaseConfig is optional. With no host and no URL the payment ledger is
// kept in memory.
type DatabaseConfig struct {
	DatabaseURL string
	DBHost      string
	DBPort      string
	DBName      string
	DBUser      string
	DBPassword  string
	DBSSLMode   string

	ConnectTimeout        time.Duration
	PoolMaxConns          int32
	PoolMinConns          int32
	PoolMaxConnLifetime   time.Duration
	PoolMaxConnIdleTime   time.Duration
	PoolHealthCheckPeriod time.Duration

	RunMigrations bool
}

func (c DatabaseConfig) Enabled() bool {
	return c.DatabaseURL != "" || c.DBHost != ""
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
	TTL      time.Duration
}

type RazorpayConfig struct {
	KeyID         string
	KeySecret     string
	WebhookSecret string
	BaseURL       string
	Timeout       time.Duration
}

type UnlockConfig struct {
	Secret    string
	ExpiresIn time.Duration
}

// PricingConfig amounts are in major units.
type PricingConfig struct {
	INRAmount         float64
	INROriginalAmount float64
	USDAmount         float64
	USDOriginalAmount float64
}

type GeoConfig struct {
	BaseURL  string
	Timeout  time.Duration
	CacheTTL time.Duration
}

type BlogConfig struct {
	Dir       string
	CacheSize int
	CacheTTL  time.Duration
}

var (
	errMissingRequiredEnv = errors.New("missing required environment variables")
	errInvalidEnv         = errors.New("invalid environment variables")
)

func Load() (Config, error) {
	cfg := Config{}

	var missing, invalid []string
	req := func(key string) string {
		v := strings.TrimSpace(os.Getenv(key))
		if v == "" {
			missing = append(missing, key)
		}
		return v
	}
	opt := func(key string) string {
		return strings.TrimSpace(os.Getenv(key))
	}
	optDefault := func(key, def string) string {
		if v := opt(key); v != "" {
			return v
		}
		return def
	}
	optInt := func(key string, def int) int {
		raw := opt(key)
		if raw == "" {
			return def
		}
		v, err := strconv.Atoi(raw)
		if err != nil || v < 0 {
			invalid = append(invalid, key)
			return def
		}
		return v
	}
	optFloat := func(key string, def float64) float64 {
		raw := opt(key)
		if raw == "" {
			return def
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil || v <= 0 {
			invalid = append(invalid, key)
			return def
		}
		return v
	}
	// durations are given in whole seconds
	optSeconds := func(key string, def time.Duration) time.Duration {
		raw := opt(key)
		if raw == "" {
			return def
		}
		v, err := strconv.Atoi(raw)
		if err != nil || v < 0 {
			invalid = append(invalid, key)
			return def
		}
		return time.Duration(v) * time.Second
	}
	optBool := func(key string, def bool) bool {
		raw := opt(key)
		if raw == "" {
			return def
		}
		v, err := strconv.ParseBool(raw)
		if err != nil {
			invalid = append(invalid, key)
			return def
		}
		return v
	}

	cfg.App = AppConfig{
		AppName:       req("APP_NAME"),
		Environment:   req("APP_ENV"),
		HTTPPort:      req("HTTP_PORT"),
		PublicBaseURL: strings.TrimRight(optDefault("PUBLIC_BASE_URL", "https://numguru.online"), "/"),
		CORSOrigins:   splitList(opt("CORS_ALLOW_ORIGINS")),
	}

	cfg.Database = DatabaseConfig{
		DatabaseURL:           opt("DATABASE_URL"),
		DBHost:                opt("DB_HOST"),
		DBPort:                optDefault("DB_PORT", "5432"),
		DBName:                opt("DB_NAME"),
		DBUser:                opt("DB_USER"),
		DBPassword:            opt("DB_PASSWORD"),
		DBSSLMode:             optDefault("DB_SSL_MODE", "disable"),
		ConnectTimeout:        optSeconds("DB_CONNECT_TIMEOUT", 5*time.Second),
		PoolMaxConns:          int32(optInt("DB_POOL_MAX_CONNS", 0)),
		PoolMinConns:          int32(optInt("DB_POOL_MIN_CONNS", 0)),
		PoolMaxConnLifetime:   optSeconds("DB_POOL_MAX_CONN_LIFETIME", 0),
		PoolMaxConnIdleTime:   optSeconds("DB_POOL_MAX_CONN_IDLE_TIME", 0),
		PoolHealthCheckPeriod: optSeconds("DB_POOL_HEALTH_CHECK_PERIOD", 0),
		RunMigrations:         optBool("DB_RUN_MIGRATIONS", true),
	}

	cfg.Redis = RedisConfig{
		Host:     optDefault("REDIS_HOST", "localhost"),
		Port:     optDefault("REDIS_PORT", "6379"),
		Password: opt("REDIS_PASSWORD"),
		DB:       optInt("REDIS_DB", 0),
		TTL:      optSeconds("REDIS_TTL", 600*time.Second),
	}

	cfg.Razorpay = RazorpayConfig{
		KeyID:         opt("RAZORPAY_KEY_ID"),
		KeySecret:     opt("RAZORPAY_KEY_SECRET"),
		WebhookSecret: opt("RAZORPAY_WEBHOOK_SECRET"),
		BaseURL:       strings.TrimRight(optDefault("RAZORPAY_BASE_URL", "https://api.razorpay.com"), "/"),
		Timeout:       optSeconds("RAZORPAY_TIMEOUT", 10*time.Second),
	}

	cfg.Unlock = UnlockConfig{
		Secret:    req("UNLOCK_TOKEN_SECRET"),
		ExpiresIn: optSeconds("UNLOCK_TOKEN_EXPIRES_IN", 30*24*time.Hour),
	}

	cfg.Pricing = PricingConfig{
		INRAmount:         optFloat("PRICE_INR", 399),
		INROriginalAmount: optFloat("PRICE_INR_ORIGINAL", 3999),
		USDAmount:         optFloat("PRICE_USD", 4.99),
		USDOriginalAmount: optFloat("PRICE_USD_ORIGINAL", 49.99),
	}

	cfg.Geo = GeoConfig{
		BaseURL:  strings.TrimRight(optDefault("GEO_BASE_URL", "https://ipapi.co"), "/"),
		Timeout:  optSeconds("GEO_TIMEOUT", 3*time.Second),
		CacheTTL: optSeconds("GEO_CACHE_TTL", 24*time.Hour),
	}

	cfg.Blog = BlogConfig{
		Dir:       optDefault("BLOG_DIR", "content/blogs"),
		CacheSize: optInt("BLOG_CACHE_SIZE", 256),
		CacheTTL:  optSeconds("BLOG_CACHE_TTL", 5*time.Minute),
	}

	if len(missing) > 0 {
		return Config{}, fmt.Errorf("%w: %s", errMissingRequiredEnv, strings.Join(missing, ", "))
	}
	if len(invalid) > 0 {
		return Config{}, fmt.Errorf("%w: %s", errInvalidEnv, strings.Join(invalid, ", "))
	}

	return cfg, nil
}

func (c AppConfig) IsDevelopment() bool {
	switch strings.ToLower(c.Environment) {
	case "dev", "development", "local":
		return true
	default:
		return false
	}
}

func splitList(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
