package config

import (
	"errors"
	"fmt"
	"strings"
)

func (m *Manager) validate(cfg *Config) error {
	validLevels := map[string]bool{"trace": true, "debug": true, "info": true, "warn": true, "error": true}
	if cfg.App.LogLevel != "" && !validLevels[cfg.App.LogLevel] {
		return fmt.Errorf("app.log_level must be one of trace, debug, info, warn, error; got %s", cfg.App.LogLevel)
	}

	// username and oauth may both be empty, the client then logs in
	// anonymously (read-only); one without the other is a mistake
	if (cfg.App.Username == "") != (cfg.App.OAuth == "") {
		return errors.New("app.username and app.oauth must both be set or both be empty")
	}

	if len(cfg.App.Channels) == 0 {
		return errors.New("app.channels is required")
	}
	for i, ch := range cfg.App.Channels {
		cfg.App.Channels[i] = strings.ToLower(strings.TrimPrefix(ch, "#"))
	}

	if cfg.App.ListenAddr != "" && cfg.App.AuthToken == "" {
		return errors.New("app.auth_token is required when app.listen_addr is set")
	}

	return nil
}
