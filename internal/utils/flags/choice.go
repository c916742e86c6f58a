package flags

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

const (
	choicePlaceholderPrefix        = "<"
	choicePlaceholderSuffix        = ">"
	choiceSeparatorLiteral         = "|"
	choiceUsageEmptyTemplate       = "`%s`"
	choiceUsageFullTemplate        = "`%s` %s"
	choiceValueTypeName            = "string"
	unsupportedChoiceErrorTemplate = "%w %q (choose %s)"
	choiceListSeparator            = ", "
)

// ErrUnsupportedChoice indicates a flag value outside the accepted choices.
var ErrUnsupportedChoice = errors.New("unsupported value")

// ChoiceValue is a pflag.Value restricted to a fixed set of case-insensitive choices.
type ChoiceValue struct {
	target        *string
	defaultChoice string
	choices       []string
}

// NewChoiceValue stores defaultChoice in target and accepts only choices on Set.
// An empty defaultChoice leaves every choice unhighlighted in the usage text.
func NewChoiceValue(target *string, defaultChoice string, choices []string) *ChoiceValue {
	*target = defaultChoice
	return &ChoiceValue{target: target, defaultChoice: defaultChoice, choices: normalizeChoices(choices)}
}

// String returns the current value.
func (value *ChoiceValue) String() string {
	if value == nil || value.target == nil {
		return ""
	}
	return *value.target
}

// Set stores the lower-cased choice or rejects it with ErrUnsupportedChoice.
func (value *ChoiceValue) Set(rawValue string) error {
	normalizedValue := strings.ToLower(strings.TrimSpace(rawValue))
	if !slices.Contains(value.choices, normalizedValue) {
		return fmt.Errorf(unsupportedChoiceErrorTemplate, ErrUnsupportedChoice, rawValue, strings.Join(value.choices, choiceListSeparator))
	}
	*value.target = normalizedValue
	return nil
}

// Type names the value kind in help output.
func (value *ChoiceValue) Type() string {
	return choiceValueTypeName
}

// Usage prefixes description with the choice placeholder, capitalizing the default.
func (value *ChoiceValue) Usage(description string) string {
	return FormatChoiceUsage(value.defaultChoice, value.choices, description)
}

// FormatChoiceUsage builds a usage string where the default option is capitalized inside a placeholder.
func FormatChoiceUsage(defaultChoice string, choices []string, description string) string {
	normalizedDefault := strings.ToLower(strings.TrimSpace(defaultChoice))
	displayed := normalizeChoices(choices)
	for index, choice := range displayed {
		if choice == normalizedDefault {
			displayed[index] = strings.ToUpper(choice)
		}
	}

	placeholder := choicePlaceholderPrefix + strings.Join(displayed, choiceSeparatorLiteral) + choicePlaceholderSuffix
	if len(strings.TrimSpace(description)) == 0 {
		return fmt.Sprintf(choiceUsageEmptyTemplate, placeholder)
	}
	return fmt.Sprintf(choiceUsageFullTemplate, placeholder, description)
}

// normalizeChoices trims and lower-cases choices, dropping blanks and duplicates in order.
func normalizeChoices(choices []string) []string {
	normalized := make([]string, 0, len(choices))
	for _, choice := range choices {
		normalizedChoice := strings.ToLower(strings.TrimSpace(choice))
		if len(normalizedChoice) == 0 || slices.Contains(normalized, normalizedChoice) {
			continue
		}
		normalized = append(normalized, normalizedChoice)
	}
	return normalized
}
