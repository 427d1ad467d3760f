package config

// Web configures the server-rendered web front-end.
type Web struct {
	Backend Backend

	BindAddr         string
	PortCandidates   []string
	PortAutoFallback bool

	SessionCookie string

	LogLevel string
	LogFile  string
}

// LoadWeb reads the web front-end configuration from the environment.
func LoadWeb() (*Web, error) {
	loadDotenv()

	cfg := &Web{
		Backend:          loadBackend(),
		BindAddr:         getEnvOrDefault("STUDIO_BIND_ADDR", "127.0.0.1:8640"),
		PortCandidates:   getEnvListOrDefault("STUDIO_PORT_CANDIDATES", []string{"127.0.0.1:8641", "127.0.0.1:8642", "127.0.0.1:8643"}),
		PortAutoFallback: getEnvBoolOrDefault("STUDIO_PORT_AUTO_FALLBACK", true),
		SessionCookie:    getEnvOrDefault("STUDIO_SESSION_COOKIE", "studio_session"),
		LogLevel:         getEnvOrDefault("STUDIO_LOG_LEVEL", "info"),
		LogFile:          getEnvOrDefault("STUDIO_LOG_FILE", "logs/studio_web.log"),
	}

	return cfg, nil
}
