package domain

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

var (
	ErrPluginDisabled    = errors.New("importer plugin is disabled")
	ErrChecksumMismatch  = errors.New("importer plugin checksum mismatch")
	ErrFormatUnsupported = errors.New("no importer plugin for format")
	ErrPluginTimeout     = errors.New("importer plugin timeout")
)

var (
	sha256Pattern = regexp.MustCompile(`^[a-f0-9]{64}$`)
	formatPattern = regexp.MustCompile(`^[a-z0-9][a-z0-9_-]*$`)
)

// ReservedFormat is parsed in process and cannot be claimed by a plugin.
const ReservedFormat = "text"

type Manifest struct {
	Name    string   `json:"name"`
	Version string   `json:"version"`
	Binary  string   `json:"binary"`
	SHA256  string   `json:"sha256"`
	Enabled bool     `json:"enabled"`
	Formats []string `json:"formats"`
}

func (m Manifest) Validate() error {
	if m.Name == "" {
		return fmt.Errorf("plugin name is required")
	}
	if m.Version == "" {
		return fmt.Errorf("plugin version is required")
	}
	if m.Binary == "" {
		return fmt.Errorf("plugin binary path is required")
	}
	if !sha256Pattern.MatchString(m.SHA256) {
		return fmt.Errorf("plugin sha256 must be lowercase 64-char hex")
	}
	if len(m.Formats) == 0 {
		return fmt.Errorf("plugin %s declares no formats", m.Name)
	}
	seen := map[string]struct{}{}
	for _, format := range m.Formats {
		if !formatPattern.MatchString(format) {
			return fmt.Errorf("invalid format name: %q", format)
		}
		if format == ReservedFormat {
			return fmt.Errorf("format %q is built in", format)
		}
		if _, ok := seen[format]; ok {
			return fmt.Errorf("duplicate format: %s", format)
		}
		seen[format] = struct{}{}
	}
	return nil
}

func (m Manifest) Supports(format string) bool {
	format = NormalizeFormat(format)
	for _, f := range m.Formats {
		if f == format {
			return true
		}
	}
	return false
}

func NormalizeFormat(format string) string {
	return strings.ToLower(strings.TrimSpace(format))
}

type Metadata struct {
	Name    string
	Version string
	Formats []string
}

type Card struct {
	Front string
	Back  string
}

type ParseRequest struct {
	Format string
	Raw    string
}

func (r ParseRequest) Validate() error {
	if r.Format == "" {
		return fmt.Errorf("format is required")
	}
	if strings.TrimSpace(r.Raw) == "" {
		return fmt.Errorf("raw input is empty")
	}
	return nil
}
