package execshell

import (
	"fmt"
	"strings"
)

const (
	genericStartTemplateConstant            = "Running %s"
	genericSuccessTemplateConstant          = "Completed %s"
	genericFailureTemplateConstant          = "%s failed with exit code %d%s"
	genericExecutionFailureTemplateConstant = "%s failed: %s"
	workingDirectorySuffixTemplateConstant  = " (in %s)"
	standardErrorSuffixTemplateConstant     = ": %s"
	locatedSubjectTemplateConstant          = "%s in %s"
	fetchReferencesSubjectTemplateConstant  = "%s from %s"
	fetchRemoteSubjectTemplateConstant      = "from %s"
	commandArgumentsJoinSeparatorConstant   = " "
	referencesJoinSeparatorConstant         = ", "
	unknownFailureMessageConstant           = "unknown error"
	defaultWorkingDirectoryLabelConstant    = "current directory"
	fallbackUnknownValueLabelConstant       = "unknown"
	gitFetchAllRemotesLabelConstant         = "all remotes"
	flagPrefixConstant                      = "-"
)

const (
	gitStatusSubcommandNameConstant  = "status"
	gitFetchSubcommandNameConstant   = "fetch"
	gitRevListSubcommandNameConstant = "rev-list"
)

// lifecycleTemplates holds one template per lifecycle stage. Every template
// starts with the subject; failure templates continue with the exit code and
// standard error suffix, execution failure templates with the cause.
type lifecycleTemplates struct {
	started         string
	succeeded       string
	failed          string
	executionFailed string
}

var genericTemplates = lifecycleTemplates{
	started:         genericStartTemplateConstant,
	succeeded:       genericSuccessTemplateConstant,
	failed:          genericFailureTemplateConstant,
	executionFailed: genericExecutionFailureTemplateConstant,
}

var gitSubcommandTemplates = map[string]lifecycleTemplates{
	gitStatusSubcommandNameConstant: {
		started:         "Reviewing working tree status in %s",
		succeeded:       "Collected working tree status for %s",
		failed:          "Failed to review working tree status in %s (exit code %d%s)",
		executionFailed: "Unable to review working tree status in %s: %s",
	},
	gitRevListSubcommandNameConstant: {
		started:         "Counting commits for %s",
		succeeded:       "Counted commits for %s",
		failed:          "Failed to count commits for %s (exit code %d%s)",
		executionFailed: "Unable to count commits for %s: %s",
	},
	gitFetchSubcommandNameConstant: {
		started:         "Fetching %s",
		succeeded:       "Fetched %s",
		failed:          "Failed to fetch %s (exit code %d%s)",
		executionFailed: "Unable to fetch %s: %s",
	},
}

// CommandMessageFormatter builds human-readable messages for command lifecycle events.
type CommandMessageFormatter struct{}

// BuildStartedMessage formats the message describing a command about to run.
func (formatter CommandMessageFormatter) BuildStartedMessage(command ShellCommand) string {
	templates, subject := formatter.describe(command)
	return fmt.Sprintf(templates.started, subject)
}

// BuildSuccessMessage formats the message describing a completed command with a zero exit code.
func (formatter CommandMessageFormatter) BuildSuccessMessage(command ShellCommand) string {
	templates, subject := formatter.describe(command)
	return fmt.Sprintf(templates.succeeded, subject)
}

// BuildFailureMessage formats the message describing a command that returned a non-zero exit code.
func (formatter CommandMessageFormatter) BuildFailureMessage(command ShellCommand, result ExecutionResult) string {
	templates, subject := formatter.describe(command)
	return fmt.Sprintf(templates.failed, subject, result.ExitCode, standardErrorSuffix(result.StandardError))
}

// BuildExecutionFailureMessage formats the message describing an unexpected execution failure.
func (formatter CommandMessageFormatter) BuildExecutionFailureMessage(command ShellCommand, failure error) string {
	templates, subject := formatter.describe(command)
	failureDescription := unknownFailureMessageConstant
	if failure != nil {
		failureDescription = failure.Error()
	}
	return fmt.Sprintf(templates.executionFailed, subject, failureDescription)
}

func (formatter CommandMessageFormatter) describe(command ShellCommand) (lifecycleTemplates, string) {
	if command.Name != CommandGit || len(command.Details.Arguments) == 0 {
		return genericTemplates, commandLabel(command)
	}

	subcommand := strings.TrimSpace(command.Details.Arguments[0])
	templates, known := gitSubcommandTemplates[subcommand]
	if !known {
		return genericTemplates, commandLabel(command)
	}

	workingDirectory := describeWorkingDirectory(command)
	remainingArguments := command.Details.Arguments[1:]
	switch subcommand {
	case gitRevListSubcommandNameConstant:
		return templates, fmt.Sprintf(locatedSubjectTemplateConstant, lastRevision(remainingArguments), workingDirectory)
	case gitFetchSubcommandNameConstant:
		return templates, fmt.Sprintf(locatedSubjectTemplateConstant, fetchSubject(remainingArguments), workingDirectory)
	default:
		return templates, workingDirectory
	}
}

func commandLabel(command ShellCommand) string {
	label := strings.Join(append([]string{string(command.Name)}, command.Details.Arguments...), commandArgumentsJoinSeparatorConstant)
	if trimmedWorkingDirectory := strings.TrimSpace(command.Details.WorkingDirectory); len(trimmedWorkingDirectory) > 0 {
		label += fmt.Sprintf(workingDirectorySuffixTemplateConstant, trimmedWorkingDirectory)
	}
	return label
}

func describeWorkingDirectory(command ShellCommand) string {
	trimmedWorkingDirectory := strings.TrimSpace(command.Details.WorkingDirectory)
	if len(trimmedWorkingDirectory) == 0 {
		return defaultWorkingDirectoryLabelConstant
	}
	return trimmedWorkingDirectory
}

func standardErrorSuffix(standardError string) string {
	trimmedStandardError := strings.TrimSpace(standardError)
	if len(trimmedStandardError) == 0 {
		return ""
	}
	return fmt.Sprintf(standardErrorSuffixTemplateConstant, trimmedStandardError)
}

func lastRevision(arguments []string) string {
	if len(arguments) == 0 {
		return fallbackUnknownValueLabelConstant
	}
	lastArgument := strings.TrimSpace(arguments[len(arguments)-1])
	if len(lastArgument) == 0 || strings.HasPrefix(lastArgument, flagPrefixConstant) {
		return fallbackUnknownValueLabelConstant
	}
	return lastArgument
}

// fetchSubject renders "<refs> from <remote>" or "from <remote>"; the first
// positional argument is the remote.
func fetchSubject(arguments []string) string {
	var positional []string
	for _, argument := range arguments {
		trimmed := strings.TrimSpace(argument)
		if len(trimmed) == 0 || strings.HasPrefix(trimmed, flagPrefixConstant) {
			continue
		}
		positional = append(positional, trimmed)
	}

	if len(positional) == 0 {
		return fmt.Sprintf(fetchRemoteSubjectTemplateConstant, gitFetchAllRemotesLabelConstant)
	}
	if len(positional) == 1 {
		return fmt.Sprintf(fetchRemoteSubjectTemplateConstant, positional[0])
	}
	return fmt.Sprintf(fetchReferencesSubjectTemplateConstant, strings.Join(positional[1:], referencesJoinSeparatorConstant), positional[0])
}
