package execshell

import (
	"fmt"
	"strings"
)

const (
	exitCodeSuffixTemplateConstant       = " (exit code %d%s)"
	standardErrorSuffixTemplateConstant  = ": %s"
	failureCauseSuffixTemplateConstant   = ": %s"
	workingDirectoryLabelTemplate        = " (in %s)"
	addSubjectTemplateConstant           = "%s in %s"
	commitSubjectTemplateConstant        = "in %s with message %q"
	pushSubjectTemplateConstant          = "%s from %s"
	unknownFailureMessageConstant        = "unknown error"
	defaultWorkingDirectoryLabelConstant = "current directory"
	unknownTargetLabelConstant           = "unknown"
	defaultPushTargetLabelConstant       = "configured remotes"
	gitMessageFlagConstant               = "-m"
	flagPrefixConstant                   = "-"
)

// lifecycleTemplates holds one sentence per lifecycle event. Each template
// receives the subject describing what the command acts on.
type lifecycleTemplates struct {
	started     string
	succeeded   string
	failed      string
	couldNotRun string
}

// gitSubcommandVocabulary describes the git subcommands a synchronization runs.
type gitSubcommandVocabulary struct {
	templates lifecycleTemplates
	subject   func(arguments []string, workingDirectory string) string
}

var genericTemplates = lifecycleTemplates{
	started:     "Running %s",
	succeeded:   "Completed %s",
	failed:      "%s failed",
	couldNotRun: "%s failed",
}

var gitVocabulary = map[string]gitSubcommandVocabulary{
	"status": {
		templates: lifecycleTemplates{
			started:     "Reviewing working tree status in %s",
			succeeded:   "Collected working tree status for %s",
			failed:      "Failed to review working tree status in %s",
			couldNotRun: "Unable to review working tree status in %s",
		},
		subject: func(_ []string, workingDirectory string) string {
			return workingDirectory
		},
	},
	"add": {
		templates: lifecycleTemplates{
			started:     "Staging %s",
			succeeded:   "Staged %s",
			failed:      "Failed to stage %s",
			couldNotRun: "Unable to stage %s",
		},
		subject: func(arguments []string, workingDirectory string) string {
			return fmt.Sprintf(addSubjectTemplateConstant, firstOperand(arguments, unknownTargetLabelConstant), workingDirectory)
		},
	},
	"commit": {
		templates: lifecycleTemplates{
			started:     "Creating commit %s",
			succeeded:   "Created commit %s",
			failed:      "Failed to create commit %s",
			couldNotRun: "Unable to create commit %s",
		},
		subject: func(arguments []string, workingDirectory string) string {
			return fmt.Sprintf(commitSubjectTemplateConstant, workingDirectory, commitSummary(arguments))
		},
	},
	"push": {
		templates: lifecycleTemplates{
			started:     "Pushing %s",
			succeeded:   "Pushed %s",
			failed:      "Failed to push %s",
			couldNotRun: "Unable to push %s",
		},
		subject: func(arguments []string, workingDirectory string) string {
			return fmt.Sprintf(pushSubjectTemplateConstant, firstOperand(arguments, defaultPushTargetLabelConstant), workingDirectory)
		},
	},
}

// CommandMessageFormatter builds human-readable messages for command lifecycle events.
type CommandMessageFormatter struct{}

// BuildStartedMessage formats the message describing a command about to run.
func (formatter CommandMessageFormatter) BuildStartedMessage(command ShellCommand) string {
	templates, subject := describeCommand(command)
	return fmt.Sprintf(templates.started, subject)
}

// BuildSuccessMessage formats the message describing a completed command with a zero exit code.
func (formatter CommandMessageFormatter) BuildSuccessMessage(command ShellCommand) string {
	templates, subject := describeCommand(command)
	return fmt.Sprintf(templates.succeeded, subject)
}

// BuildFailureMessage formats the message describing a command that returned a non-zero exit code.
func (formatter CommandMessageFormatter) BuildFailureMessage(command ShellCommand, result ExecutionResult) string {
	templates, subject := describeCommand(command)
	standardErrorSuffix := ""
	if trimmedStandardError := strings.TrimSpace(result.StandardError); len(trimmedStandardError) > 0 {
		standardErrorSuffix = fmt.Sprintf(standardErrorSuffixTemplateConstant, trimmedStandardError)
	}
	return fmt.Sprintf(templates.failed, subject) + fmt.Sprintf(exitCodeSuffixTemplateConstant, result.ExitCode, standardErrorSuffix)
}

// BuildExecutionFailureMessage formats the message describing a command that could not be started.
func (formatter CommandMessageFormatter) BuildExecutionFailureMessage(command ShellCommand, failure error) string {
	templates, subject := describeCommand(command)
	cause := unknownFailureMessageConstant
	if failure != nil {
		cause = failure.Error()
	}
	return fmt.Sprintf(templates.couldNotRun, subject) + fmt.Sprintf(failureCauseSuffixTemplateConstant, cause)
}

func describeCommand(command ShellCommand) (lifecycleTemplates, string) {
	arguments := command.Details.Arguments
	if command.Name == CommandGit && len(arguments) > 0 {
		if vocabulary, known := gitVocabulary[strings.TrimSpace(arguments[0])]; known {
			workingDirectory := strings.TrimSpace(command.Details.WorkingDirectory)
			if len(workingDirectory) == 0 {
				workingDirectory = defaultWorkingDirectoryLabelConstant
			}
			return vocabulary.templates, vocabulary.subject(arguments[1:], workingDirectory)
		}
	}
	return genericTemplates, commandLabel(command)
}

func commandLabel(command ShellCommand) string {
	label := strings.Join(append([]string{string(command.Name)}, command.Details.Arguments...), " ")
	if workingDirectory := strings.TrimSpace(command.Details.WorkingDirectory); len(workingDirectory) > 0 {
		label += fmt.Sprintf(workingDirectoryLabelTemplate, workingDirectory)
	}
	return label
}

func firstOperand(arguments []string, fallback string) string {
	for _, argument := range arguments {
		trimmedArgument := strings.TrimSpace(argument)
		if len(trimmedArgument) > 0 && !strings.HasPrefix(trimmedArgument, flagPrefixConstant) {
			return trimmedArgument
		}
	}
	return fallback
}

// commitSummary returns the value of the first -m flag.
func commitSummary(arguments []string) string {
	for argumentIndex := 0; argumentIndex+1 < len(arguments); argumentIndex++ {
		if strings.TrimSpace(arguments[argumentIndex]) == gitMessageFlagConstant {
			return arguments[argumentIndex+1]
		}
	}
	return ""
}
