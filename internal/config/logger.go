package config

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"
)

func parseLevel(level string) (log.Level, error) {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return lvl, fmt.Errorf("%w: log level %q", ErrInvalid, level)
	}
	return lvl, nil
}

// NewLogger builds the structured logger shared by every component.
func NewLogger(level string, w io.Writer) (*log.Logger, error) {
	lvl, err := parseLevel(level)
	if err != nil {
		return nil, err
	}
	return log.NewWithOptions(w, log.Options{
		Level:           lvl,
		Prefix:          "cosmos",
		ReportTimestamp: true,
	}), nil
}
