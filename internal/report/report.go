// Package report renders engine results for humans (go-pretty tables) and
// machines (JSON, YAML). The engines define the schema; this package only
// serializes it.
package report

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"gopkg.in/yaml.v3"
)

// Format selects the output rendering.
type Format string

// Supported output formats.
const (
	FormatTable Format = "table"
	FormatJSON  Format = "json"
	FormatYAML  Format = "yaml"
)

// ErrUnknownFormat is returned for unsupported output formats.
var ErrUnknownFormat = errors.New("unknown output format")

// ParseFormat validates a format flag value.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatTable, FormatJSON, FormatYAML:
		return Format(s), nil
	default:
		return "", fmt.Errorf("%w: %q (want table, json or yaml)", ErrUnknownFormat, s)
	}
}

// jsonIndent is the indentation for pretty JSON output.
const jsonIndent = "  "

// writeMachine serializes a result object as JSON or YAML.
func writeMachine(w io.Writer, format Format, value any) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", jsonIndent)

		err := enc.Encode(value)
		if err != nil {
			return fmt.Errorf("encode json: %w", err)
		}

		return nil
	case FormatYAML:
		data, err := yaml.Marshal(value)
		if err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}

		_, err = w.Write(data)
		if err != nil {
			return fmt.Errorf("write yaml: %w", err)
		}

		return nil
	case FormatTable:
		return fmt.Errorf("%w: table has no machine form", ErrUnknownFormat)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

// LogWarnings summarizes per-item warnings without drowning the report.
// A command with only per-item warnings still produces its full report.
func LogWarnings(warnings []string) {
	if len(warnings) == 0 {
		return
	}

	slog.Warn("analysis completed with warnings", "count", len(warnings))

	for _, warning := range warnings {
		slog.Debug("warning detail", "warning", warning)
	}
}
