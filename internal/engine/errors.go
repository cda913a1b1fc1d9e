package engine

// ConfigurationError reports a failed component initialization, such as
// the entity model refusing to load. Fatal for the process configuration;
// never retried or silently downgraded to pattern-only detection.
type ConfigurationError struct {
	Err error
}

func (e *ConfigurationError) Error() string {
	return "configuration error: " + e.Err.Error()
}

func (e *ConfigurationError) Unwrap() error { return e.Err }
