package config

import "time"

// TransactionConfig holds the unit-of-work transaction bounds.
// Both limits are enforced by the store adapter: exceeding either aborts
// the transaction with a timeout-class error.
type TransactionConfig struct {
	// Maximum time to wait acquiring a transaction slot
	MaxWait time.Duration `mapstructure:"max_wait"`

	// Maximum total transaction duration
	MaxDuration time.Duration `mapstructure:"max_duration"`
}
