package config

// MetricsConfig holds the prometheus listener configuration
type MetricsConfig struct {
	// Enable the /metrics endpoint
	Enabled bool `mapstructure:"enabled"`

	// Listen address for the metrics endpoint
	Address string `mapstructure:"address"`
}
