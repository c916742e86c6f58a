package flags

import (
	"time"

	"github.com/temirov/gitfu/internal/utils"
)

const durationValueTypeName = "duration"

// DurationValue is a pflag.Value accepting bare milliseconds ("2500") or Go
// duration text ("2.5s"), matching how configuration files are read.
type DurationValue struct {
	target *time.Duration
}

// NewDurationValue stores defaultDuration in target.
func NewDurationValue(target *time.Duration, defaultDuration time.Duration) *DurationValue {
	*target = defaultDuration
	return &DurationValue{target: target}
}

// String renders the current value as Go duration text.
func (value *DurationValue) String() string {
	if value == nil || value.target == nil {
		return ""
	}
	return value.target.String()
}

// Set parses rawValue with utils.ParseDuration.
func (value *DurationValue) Set(rawValue string) error {
	parsed, parseError := utils.ParseDuration(rawValue)
	if parseError != nil {
		return parseError
	}
	*value.target = parsed
	return nil
}

// Type names the value kind in help output.
func (value *DurationValue) Type() string {
	return durationValueTypeName
}
