package flags

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFormatChoiceUsage(testInstance *testing.T) {
	testCases := []struct {
		name           string
		defaultChoice  string
		choices        []string
		description    string
		expectedOutput string
	}{
		{
			name:           "default_first",
			defaultChoice:  "always",
			choices:        []string{"always", "auto", "never"},
			description:    "Color output mode",
			expectedOutput: "`<ALWAYS|auto|never>` Color output mode",
		},
		{
			name:           "default_last",
			defaultChoice:  "console",
			choices:        []string{"structured", "console"},
			description:    "Log encoding",
			expectedOutput: "`<structured|CONSOLE>` Log encoding",
		},
		{
			name:           "empty_description",
			defaultChoice:  "never",
			choices:        []string{"always", "never"},
			expectedOutput: "`<always|NEVER>`",
		},
		{
			name:           "duplicates_and_case_folded",
			defaultChoice:  "Warn",
			choices:        []string{"warn", "WARN", " error "},
			description:    "Level",
			expectedOutput: "`<WARN|error>` Level",
		},
		{
			name:           "no_default",
			defaultChoice:  "",
			choices:        []string{"debug", "info"},
			description:    "Level",
			expectedOutput: "`<debug|info>` Level",
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			require.Equal(testInstance, testCase.expectedOutput, FormatChoiceUsage(testCase.defaultChoice, testCase.choices, testCase.description))
		})
	}
}

func TestChoiceValueSet(testInstance *testing.T) {
	testCases := []struct {
		name          string
		rawValue      string
		expectedValue string
		expectError   bool
	}{
		{name: "exact", rawValue: "auto", expectedValue: "auto"},
		{name: "mixed_case_trimmed", rawValue: " NEVER ", expectedValue: "never"},
		{name: "unsupported", rawValue: "sometimes", expectedValue: "always", expectError: true},
		{name: "empty", rawValue: "", expectedValue: "always", expectError: true},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			var target string
			value := NewChoiceValue(&target, "always", []string{"always", "auto", "never"})
			require.Equal(testInstance, "always", value.String())

			setError := value.Set(testCase.rawValue)
			if testCase.expectError {
				require.ErrorIs(testInstance, setError, ErrUnsupportedChoice)
				require.Contains(testInstance, setError.Error(), "always, auto, never")
			} else {
				require.NoError(testInstance, setError)
			}
			require.Equal(testInstance, testCase.expectedValue, target)
			require.Equal(testInstance, "string", value.Type())
		})
	}
}
