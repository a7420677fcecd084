// internal/workers/prompt/enhance-prompt/config.go
package enhanceprompt

import "time"

type Config struct {
	Timeout time.Duration
}

func LoadConfig() *Config {
	return &Config{
		Timeout: 60 * time.Second,
	}
}
