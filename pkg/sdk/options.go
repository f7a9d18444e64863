package stranalyzer

import (
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
)

// Option configures the Client.
type Option interface {
	apply(*clientConfig)
}

// optionFunc adapts a function to the Option interface.
type optionFunc func(*clientConfig)

func (f optionFunc) apply(c *clientConfig) { f(c) }

type clientConfig struct {
	driver     string // "badger", "valkey" or "redis"
	addrs      []string
	password   string
	standalone bool

	badgerPath string
	inMemory   bool

	keyPrefix string
	zstd      bool
	maxLength int

	logger     *slog.Logger
	metricsReg prometheus.Registerer
}

// WithBadger stores entries in an embedded Badger database under path.
func WithBadger(path string) Option {
	return optionFunc(func(c *clientConfig) {
		c.driver = driverBadger
		c.badgerPath = path
		c.inMemory = false
	})
}

// WithInMemory stores entries in an in-memory Badger database.
// Everything is lost on Close.
func WithInMemory() Option {
	return optionFunc(func(c *clientConfig) {
		c.driver = driverBadger
		c.inMemory = true
	})
}

// WithValkey configures the client to connect to a Valkey instance.
func WithValkey(addr, password string) Option {
	return optionFunc(func(c *clientConfig) {
		c.driver = driverValkey
		c.addrs = []string{addr}
		c.password = password
	})
}

// WithRedis configures the client to connect to a Redis instance.
func WithRedis(addr, password string) Option {
	return optionFunc(func(c *clientConfig) {
		c.driver = driverRedis
		c.addrs = []string{addr}
		c.password = password
	})
}

// WithStandalone disables cluster topology discovery for Redis/Valkey.
func WithStandalone() Option {
	return optionFunc(func(c *clientConfig) {
		c.standalone = true
	})
}

// WithKeyPrefix sets the key namespace. It must match the server's
// storage.key_prefix to share data with it. Default: "stranalyzer:".
func WithKeyPrefix(prefix string) Option {
	return optionFunc(func(c *clientConfig) {
		c.keyPrefix = prefix
	})
}

// WithZstd writes new records zstd-compressed. Reads handle both encodings.
func WithZstd() Option {
	return optionFunc(func(c *clientConfig) {
		c.zstd = true
	})
}

// WithMaxLength bounds accepted values, in code points. Default: 500.
func WithMaxLength(n int) Option {
	return optionFunc(func(c *clientConfig) {
		c.maxLength = n
	})
}

// WithLogger enables structured logging for SDK operations.
// Pass nil to disable (default). Uses standard library slog.
func WithLogger(l *slog.Logger) Option {
	return optionFunc(func(c *clientConfig) {
		c.logger = l
	})
}

// WithPrometheus registers SDK metrics (operation counts and durations)
// on the given registerer. Pass nil to disable (default).
func WithPrometheus(reg prometheus.Registerer) Option {
	return optionFunc(func(c *clientConfig) {
		c.metricsReg = reg
	})
}
