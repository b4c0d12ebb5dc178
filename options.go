package hireboard

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

// Option configures the Client.
type Option interface {
	apply(*clientConfig)
}

// optionFunc adapts a function to the Option interface.
type optionFunc func(*clientConfig)

func (f optionFunc) apply(c *clientConfig) { f(c) }

type clientConfig struct {
	driver    string // "memory", "redis", "valkey" or "postgres"
	addrs     []string
	password  string
	url       string
	keyPrefix string
	seed      bool

	defaultLimit int
	maxLimit     int

	now        func() time.Time
	logger     *zap.Logger
	metricsReg prometheus.Registerer
}

// WithMemory keeps records in process memory. seed loads the bundled
// sample records.
func WithMemory(seed bool) Option {
	return optionFunc(func(c *clientConfig) {
		c.driver = "memory"
		c.seed = seed
	})
}

// WithRedis configures the client to connect to a Redis instance.
func WithRedis(addr, password string) Option {
	return optionFunc(func(c *clientConfig) {
		c.driver = "redis"
		c.addrs = []string{addr}
		c.password = password
	})
}

// WithValkey configures the client to connect to a Valkey instance.
func WithValkey(addr, password string) Option {
	return optionFunc(func(c *clientConfig) {
		c.driver = "valkey"
		c.addrs = []string{addr}
		c.password = password
	})
}

// WithPostgres stores records in PostgreSQL. The schema is created on Open.
func WithPostgres(url string) Option {
	return optionFunc(func(c *clientConfig) {
		c.driver = "postgres"
		c.url = url
	})
}

// WithSeed loads the bundled sample records into any store on Open.
// Records with the same id are replaced.
func WithSeed() Option {
	return optionFunc(func(c *clientConfig) {
		c.seed = true
	})
}

// WithKeyPrefix namespaces Redis/Valkey keys. Default: "hireboard:".
func WithKeyPrefix(prefix string) Option {
	return optionFunc(func(c *clientConfig) {
		c.keyPrefix = prefix
	})
}

// WithListLimits sets the default and maximum listing sizes.
// Default: unlimited, capped at 500.
func WithListLimits(defaultLimit, maxLimit int) Option {
	return optionFunc(func(c *clientConfig) {
		c.defaultLimit = defaultLimit
		c.maxLimit = maxLimit
	})
}

// WithClock overrides the time source for "today" defaults and reports.
func WithClock(now func() time.Time) Option {
	return optionFunc(func(c *clientConfig) {
		c.now = now
	})
}

// WithLogger enables structured logging for client operations.
// Pass nil to disable (default).
func WithLogger(l *zap.Logger) Option {
	return optionFunc(func(c *clientConfig) {
		c.logger = l
	})
}

// WithPrometheus registers client metrics (operation counts and durations)
// on the given registerer. Pass nil to disable (default).
func WithPrometheus(reg prometheus.Registerer) Option {
	return optionFunc(func(c *clientConfig) {
		c.metricsReg = reg
	})
}
