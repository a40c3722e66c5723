package types

import (
	"fmt"
	"go/token"
	"strings"
)

// Issue represents a lint issue found in the code base.
type Issue struct {
	Rule       string
	Category   string
	Filename   string
	Message    string
	Suggestion string
	Note       string
	Start      token.Position
	End        token.Position
	Severity   Severity
}

// Severity is the level an issue is reported with.
type Severity int

const (
	SeverityError Severity = iota
	SeverityWarning
	SeverityInfo
	SeverityOff
)

func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "ERROR"
	case SeverityWarning:
		return "WARNING"
	case SeverityInfo:
		return "INFO"
	case SeverityOff:
		return "OFF"
	default:
		return "UNKNOWN"
	}
}

// ParseSeverity accepts the names used in configuration files.
// "warn" is accepted as a synonym of "warning".
func ParseSeverity(s string) (Severity, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "error":
		return SeverityError, nil
	case "warning", "warn":
		return SeverityWarning, nil
	case "info":
		return SeverityInfo, nil
	case "off":
		return SeverityOff, nil
	default:
		return SeverityError, fmt.Errorf("unknown severity %q", s)
	}
}

func (s Severity) MarshalText() ([]byte, error) {
	return []byte(strings.ToLower(s.String())), nil
}

func (s *Severity) UnmarshalText(text []byte) error {
	parsed, err := ParseSeverity(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// ConfigRule is the per-rule section of the configuration file.
// Data is handed to the rule constructor untouched. A nil Severity keeps
// the level the rule reports with.
type ConfigRule struct {
	Severity *Severity `yaml:"severity,omitempty" toml:"severity,omitempty" json:"severity,omitempty"`
	Data     any       `yaml:"data,omitempty" toml:"data,omitempty" json:"data,omitempty"`
}

// RuleWithSeverity returns a rule section that sets the severity only.
func RuleWithSeverity(s Severity) ConfigRule {
	return ConfigRule{Severity: &s}
}

// Override returns the configured severity, if one was given.
func (r ConfigRule) Override() (Severity, bool) {
	if r.Severity == nil {
		return SeverityError, false
	}
	return *r.Severity, true
}

// IsOff reports whether the section turns the rule off.
func (r ConfigRule) IsOff() bool {
	s, ok := r.Override()
	return ok && s == SeverityOff
}
