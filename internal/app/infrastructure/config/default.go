package config

func (m *Manager) GetDefault() *Config {
	return &Config{
		App: App{
			LogLevel:   "info",
			GinMode:    "release",
			ListenAddr: ":8080",
		},
	}
}
