package utils

import (
	"strconv"
	"strings"
	"time"
)

// ParseDuration accepts Go duration text such as "2.5s" as well as bare
// integers, which count milliseconds.
func ParseDuration(rawValue string) (time.Duration, error) {
	trimmedValue := strings.TrimSpace(rawValue)
	if milliseconds, integerError := strconv.ParseInt(trimmedValue, 10, 64); integerError == nil {
		return time.Duration(milliseconds) * time.Millisecond, nil
	}
	return time.ParseDuration(trimmedValue)
}
