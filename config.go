package portier

// Config holds configuration for the Portier engine.
type Config struct {
	// LogDecisions enables persisting permission decisions to the
	// decision log. Defaults to false.
	LogDecisions bool `json:"log_decisions,omitempty"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{}
}
