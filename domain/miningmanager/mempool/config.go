package mempool

const defaultMaximumTransactionCount = 100_000

// Config represents a mempool configuration
type Config struct {
	MaximumTransactionCount int
}

// DefaultConfig returns the default mempool configuration
func DefaultConfig() *Config {
	return &Config{
		MaximumTransactionCount: defaultMaximumTransactionCount,
	}
}
