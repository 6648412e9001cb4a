// Package logging configures the process-wide logrus logger.
package logging

import (
	"fmt"
	"io"
	"os"

	log "github.com/sirupsen/logrus"
)

// Setup sets the level and formatter of the standard logger. Logs go to
// stderr so rendered reports on stdout stay clean.
func Setup(level, format string) error {
	return SetupTo(os.Stderr, level, format)
}

// SetupTo is Setup with an explicit writer.
func SetupTo(w io.Writer, level, format string) error {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("logging.Setup: %w", err)
	}
	switch format {
	case "", "text":
		log.SetFormatter(&log.TextFormatter{FullTimestamp: true, DisableColors: w != os.Stderr})
	case "json":
		log.SetFormatter(&log.JSONFormatter{})
	default:
		return fmt.Errorf("logging.Setup: unknown format %q", format)
	}
	log.SetOutput(w)
	log.SetLevel(lvl)
	return nil
}
