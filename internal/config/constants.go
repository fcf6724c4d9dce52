package config

const (
	// DefaultServiceName identifies this service in logs and metrics
	DefaultServiceName = "lifequest-stats"
)
