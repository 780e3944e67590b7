// Package render turns an assistant record into the artifacts the chat
// widget and other consumers load: a browser script, JSON or YAML.
package render

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"bladeassist/pkg/assistant"
	"bladeassist/pkg/fileutil"
)

// Format is an output format for the record.
type Format string

const (
	FormatJS   Format = "js"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// Formats lists the supported formats.
func Formats() []Format {
	return []Format{FormatJS, FormatJSON, FormatYAML}
}

// ParseFormat accepts a format name or a common alias for it.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "js", "javascript":
		return FormatJS, nil
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unsupported format %q (want js, json or yaml)", s)
	}
}

// FormatFromPath guesses the format from a file extension.
func FormatFromPath(path string) (Format, bool) {
	f, err := ParseFormat(strings.TrimPrefix(filepath.Ext(path), "."))
	if err != nil {
		return "", false
	}
	return f, true
}

// Render writes cfg to w in the given format.
func Render(w io.Writer, cfg *assistant.Config, format Format) error {
	data, err := Bytes(cfg, format)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

// Bytes returns cfg encoded in the given format.
func Bytes(cfg *assistant.Config, format Format) ([]byte, error) {
	if cfg == nil {
		return nil, fmt.Errorf("render: nil assistant record")
	}

	switch format {
	case FormatJS:
		return script(cfg)
	case FormatJSON:
		data, err := json.MarshalIndent(cfg.Spec(), "", "  ")
		if err != nil {
			return nil, fmt.Errorf("encoding json: %w", err)
		}
		return append(data, '\n'), nil
	case FormatYAML:
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(cfg.Spec()); err != nil {
			return nil, fmt.Errorf("encoding yaml: %w", err)
		}
		if err := enc.Close(); err != nil {
			return nil, fmt.Errorf("encoding yaml: %w", err)
		}
		return buf.Bytes(), nil
	default:
		return nil, fmt.Errorf("unsupported format %q", format)
	}
}

// WriteFile renders cfg to path, replacing the file atomically. Unchanged
// content is not rewritten. It reports whether the file was written.
func WriteFile(path string, cfg *assistant.Config, format Format) (bool, error) {
	data, err := Bytes(cfg, format)
	if err != nil {
		return false, err
	}
	written, err := fileutil.WriteFileIfChanged(path, data, 0o644)
	if err != nil {
		return false, fmt.Errorf("writing %s: %w", path, err)
	}
	return written, nil
}
