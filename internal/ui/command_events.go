package ui

import (
	"strings"

	"go.uber.org/zap"

	"github.com/temirov/gitbulkpush/internal/execshell"
)

const (
	carriageReturnConstant = "\r"
	lineFeedConstant       = "\n"
)

// ConsoleCommandEventLogger narrates git commands as plain sentences on a console logger.
type ConsoleCommandEventLogger struct {
	logger    *zap.Logger
	formatter execshell.CommandMessageFormatter
}

// NewConsoleCommandEventLogger constructs a console event logger backed by the provided zap logger.
func NewConsoleCommandEventLogger(logger *zap.Logger) *ConsoleCommandEventLogger {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ConsoleCommandEventLogger{logger: logger}
}

// CommandStarted implements execshell.CommandEventObserver.
func (eventLogger *ConsoleCommandEventLogger) CommandStarted(command execshell.ShellCommand) {
	if eventLogger == nil {
		return
	}
	eventLogger.logger.Info(eventLogger.formatter.BuildStartedMessage(command))
}

// CommandCompleted implements execshell.CommandEventObserver. Git reports push
// progress on standard error even when it succeeds; each progress line is
// echoed at debug level.
func (eventLogger *ConsoleCommandEventLogger) CommandCompleted(command execshell.ShellCommand, result execshell.ExecutionResult) {
	if eventLogger == nil {
		return
	}
	if result.ExitCode != 0 {
		eventLogger.logger.Warn(eventLogger.formatter.BuildFailureMessage(command, result))
		return
	}
	eventLogger.logger.Info(eventLogger.formatter.BuildSuccessMessage(command))
	for _, progressLine := range strings.Split(strings.ReplaceAll(result.StandardError, carriageReturnConstant, lineFeedConstant), lineFeedConstant) {
		if trimmedLine := strings.TrimSpace(progressLine); len(trimmedLine) > 0 {
			eventLogger.logger.Debug(trimmedLine)
		}
	}
}

// CommandExecutionFailed implements execshell.CommandEventObserver.
func (eventLogger *ConsoleCommandEventLogger) CommandExecutionFailed(command execshell.ShellCommand, failure error) {
	if eventLogger == nil {
		return
	}
	eventLogger.logger.Error(eventLogger.formatter.BuildExecutionFailureMessage(command, failure))
}
