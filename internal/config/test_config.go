package config

import "time"

// TestConfig returns a config suitable for testing
func TestConfig() *Config {
	cfg := defaultConfig()
	cfg.Source.Location = "testdata"
	cfg.Source.HTTPTimeout = 2 * time.Second
	cfg.Source.UserAgent = "relampago-test/1.0"
	cfg.Locale.Timezone = "UTC"
	cfg.UI.Topics = []string{"Tech", "Sports", "Mundo"}
	return cfg
}
