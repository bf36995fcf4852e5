package structs

import "time"

type Config struct {
	Server    *ServerConfig
	Cors      *CorsConfig
	Database  *DatabaseConfig
	Cache     *CacheConfig
	RateLimit *RateLimitConfig
	Email     *EmailConfig
	Notify    *NotifyConfig
	Contact   *ContactConfig
	Catalog   *CatalogConfig
}

type ServerConfig struct {
	AppName        string        // CocoManthra
	Environment    string        // development, production
	Port           string        // :8082
	ReadTimeout    time.Duration // in seconds
	WriteTimeout   time.Duration // in seconds
	IdleTimeout    time.Duration // in seconds
	MaxHeaderBytes int           // in bytes
}

type CorsConfig struct {
	AllowOrigins     []string
	AllowMethods     []string
	AllowHeaders     []string
	ExposedHeaders   []string
	AllowCredentials bool
	MaxAge           int
}

type DatabaseConfig struct {
	Host         string
	Port         int
	User         string
	Password     string
	Name         string
	MaxConns     int
	MinConns     int
	MaxLifetime  time.Duration // in seconds
	MaxIdleTime  time.Duration // in seconds
	ReadTimeout  time.Duration // in seconds
	WriteTimeout time.Duration // in seconds
}

type CacheConfig struct {
	Address  string
	Username string
	Password string
	DB       int

	PoolSize     int
	MinIdleConns int
	MaxIdleConns int
	PoolTimeout  time.Duration
	IdleTimeout  time.Duration

	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration

	MaxRetries      int
	MinRetryBackoff time.Duration
	MaxRetryBackoff time.Duration
}

type RateLimitConfig struct {
	Enabled bool

	GeneralLimit  int
	GeneralWindow time.Duration

	AdminLimit  int
	AdminWindow time.Duration

	ExpensiveLimit  int
	ExpensiveWindow time.Duration
}

type EmailConfig struct {
	Enabled bool
	ApiKey  string
	From    string
	OwnerTo string // where order inquiries are forwarded
}

// NotifyConfig selects the change-notification backend the catalog store
// listens on. Backend is "postgres", "redis" or "off".
type NotifyConfig struct {
	Backend       string
	ChannelPrefix string // redis channel prefix, e.g. "catalog:changed:"
}

type ContactConfig struct {
	Phone    string // tel: target, e.g. +91-9248788585
	WhatsApp string // wa.me number, digits only, e.g. 919248788585
}

type CatalogConfig struct {
	LoadTimeout time.Duration // upper bound for one full reload
}
