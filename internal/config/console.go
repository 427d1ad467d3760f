package config

// Console configures the terminal front-end.
type Console struct {
	Backend Backend

	LogLevel string
	LogFile  string
}

// LoadConsole reads the terminal front-end configuration from the
// environment.
func LoadConsole() (*Console, error) {
	loadDotenv()

	cfg := &Console{
		Backend:  loadBackend(),
		LogLevel: getEnvOrDefault("STUDIO_LOG_LEVEL", "info"),
		LogFile:  getEnvOrDefault("STUDIO_LOG_FILE", "logs/studio_console.log"),
	}

	return cfg, nil
}
