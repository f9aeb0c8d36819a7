// ABOUTME: Typed domain errors for the capacity engine
// ABOUTME: DataError, ConfigError, and LookupError carry the offending identifier

package models

import "fmt"

// DataError reports malformed or empty input traffic for a cell or link.
// Subject names the identifier so callers processing many links can skip the
// failing one and continue.
type DataError struct {
	Subject string
	Reason  string
}

func (e *DataError) Error() string {
	return fmt.Sprintf("invalid traffic data for %s: %s", e.Subject, e.Reason)
}

// ConfigError reports an engineering parameter outside its documented range.
// Out-of-range values are rejected before any simulation runs, never clamped.
type ConfigError struct {
	Param  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid parameter %s: %s", e.Param, e.Reason)
}

// LookupError reports a speed tier missing from the static cost table. It is
// a configuration defect of the cost step only and does not invalidate an
// already-computed capacity result.
type LookupError struct {
	SpeedGbps float64
}

func (e *LookupError) Error() string {
	return fmt.Sprintf("no cost entry for %gG tier", e.SpeedGbps)
}
