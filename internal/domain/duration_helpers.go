package domain

import "time"

// ShutdownTimeout returns the graceful shutdown budget, applying defaults.
func (c Config) ShutdownTimeout() time.Duration {
	seconds := c.ShutdownTimeoutSeconds
	if seconds <= 0 {
		seconds = DefaultShutdownTimeoutSeconds
	}
	return time.Duration(seconds) * time.Second
}

// SessionTimeout returns the idle session timeout or zero if disabled.
func (c HTTPTransportConfig) SessionTimeout() time.Duration {
	if c.SessionTimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(c.SessionTimeoutSeconds) * time.Second
}

// ReloadDebounce is the quiet period before a changed config file is reread.
func ReloadDebounce() time.Duration {
	return time.Duration(DefaultConfigReloadDebounceMillis) * time.Millisecond
}
