package worker

import (
	"fmt"
	"time"

	"github.com/satoqz/basti/internal/task"
	"github.com/satoqz/basti/internal/worker/metrics"
)

// Config holds a Node's tunables, assembled via functional options the
// same way the teacher library builds its Config — a zero Config is
// never used directly; New always starts from defaultConfig.
type Config struct {
	Name             task.WorkerName
	WorkerCount      int
	FeedbackInterval time.Duration
	WorkTimeout      time.Duration
	FindInterval     time.Duration
	RequeueInterval  time.Duration
	BackoffInterval  time.Duration
	FindBatchSize    int
	RequeueBatchSize int
	Metrics          metrics.Provider
}

// defaultConfig mirrors spec.md §5's constants: a 5s feedback interval
// under a 10s work timeout, and conservative batch sizes and backoffs for
// the find/requeue polling loops.
func defaultConfig() Config {
	return Config{
		WorkerCount:      4,
		FeedbackInterval: 5 * time.Second,
		WorkTimeout:      10 * time.Second,
		FindInterval:     500 * time.Millisecond,
		RequeueInterval:  500 * time.Millisecond,
		BackoffInterval:  5 * time.Second,
		FindBatchSize:    10,
		RequeueBatchSize: 10,
		Metrics:          metrics.NewNoopProvider(),
	}
}

// Option configures a Node. Use New(store, opts...) to construct one.
type Option func(*Config)

// WithName sets the worker identity recorded on every task it acquires.
// Required: New returns an error if it's never set.
func WithName(name task.WorkerName) Option {
	return func(c *Config) { c.Name = name }
}

// WithWorkerCount sets how many executors work tasks concurrently.
func WithWorkerCount(n int) Option {
	return func(c *Config) { c.WorkerCount = n }
}

// WithFeedbackInterval sets how often an executor checkpoints progress on
// the task it's working. Must stay below the work timeout (spec.md §5).
func WithFeedbackInterval(d time.Duration) Option {
	return func(c *Config) { c.FeedbackInterval = d }
}

// WithWorkTimeout sets how long a running task may go without a progress
// checkpoint before the requeuer considers its worker dead.
func WithWorkTimeout(d time.Duration) Option {
	return func(c *Config) { c.WorkTimeout = d }
}

// WithFindInterval sets the finder's poll interval when no work was found.
func WithFindInterval(d time.Duration) Option {
	return func(c *Config) { c.FindInterval = d }
}

// WithRequeueInterval sets the requeuer's poll interval between sweeps.
func WithRequeueInterval(d time.Duration) Option {
	return func(c *Config) { c.RequeueInterval = d }
}

// WithBackoffInterval sets how long any activity sleeps after a store
// error before retrying (spec.md §7: "log and back off").
func WithBackoffInterval(d time.Duration) Option {
	return func(c *Config) { c.BackoffInterval = d }
}

// WithMetrics installs a metrics.Provider. The default is a no-op.
func WithMetrics(p metrics.Provider) Option {
	return func(c *Config) { c.Metrics = p }
}

func buildConfig(opts ...Option) (Config, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if err := cfg.Name.Validate(); err != nil {
		return Config{}, fmt.Errorf("worker: %w", err)
	}
	if cfg.WorkerCount <= 0 {
		return Config{}, fmt.Errorf("worker: worker count must be positive, got %d", cfg.WorkerCount)
	}
	if cfg.FeedbackInterval <= 0 || cfg.WorkTimeout <= 0 {
		return Config{}, fmt.Errorf("worker: feedback interval and work timeout must be positive")
	}
	if cfg.FeedbackInterval >= cfg.WorkTimeout {
		return Config{}, fmt.Errorf("worker: feedback interval (%s) must be less than work timeout (%s)", cfg.FeedbackInterval, cfg.WorkTimeout)
	}
	return cfg, nil
}
