package logger

import (
	"fmt"
	"os"
	"strings"

	log "github.com/sirupsen/logrus"
)

type Config struct {
	Level string
}

// PrepareLogger applies the configured level to the global logger.
func PrepareLogger(config Config) error {
	level, err := log.ParseLevel(strings.ToLower(config.Level))
	if err != nil {
		return fmt.Errorf("failed to parse log level %q: %w", config.Level, err)
	}
	log.SetLevel(level)
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	log.SetOutput(os.Stdout)
	return nil
}
