// Package errs defines the error taxonomy shared by the curve construction
// and valuation packages.
//
// ConfigurationError marks a caller/config defect (unknown identifier,
// malformed date, degenerate schedule) detected at construction time.
// DomainError marks a numerically invalid query against an otherwise valid
// curve (out-of-range date, non-positive discount factor) at valuation time.
package errs

import (
	"fmt"
	"time"
)

// ConfigurationError reports an unrecognized or inconsistent static input.
// It is always surfaced immediately and never recovered internally.
type ConfigurationError struct {
	Setting string // which input was being interpreted, e.g. "calendar"
	Value   string // the offending value as supplied
	Reason  string // optional detail
}

func (e *ConfigurationError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("configuration: %s %q: %s", e.Setting, e.Value, e.Reason)
	}
	return fmt.Sprintf("configuration: unsupported %s %q", e.Setting, e.Value)
}

// Configf builds a ConfigurationError with a formatted reason.
func Configf(setting, value, format string, args ...any) *ConfigurationError {
	return &ConfigurationError{Setting: setting, Value: value, Reason: fmt.Sprintf(format, args...)}
}

// DomainError reports a curve query outside its valid domain or a
// numerically degenerate intermediate value. It propagates out of valuation
// (and out of the calibration loop) rather than being masked as zero or NaN.
type DomainError struct {
	Op     string    // operation that failed, e.g. "curve.DF"
	Date   time.Time // queried date, zero if not applicable
	Reason string
}

func (e *DomainError) Error() string {
	if e.Date.IsZero() {
		return fmt.Sprintf("domain: %s: %s", e.Op, e.Reason)
	}
	return fmt.Sprintf("domain: %s at %s: %s", e.Op, e.Date.Format("2006-01-02"), e.Reason)
}

// Domainf builds a DomainError with a formatted reason.
func Domainf(op string, date time.Time, format string, args ...any) *DomainError {
	return &DomainError{Op: op, Date: date, Reason: fmt.Sprintf(format, args...)}
}
