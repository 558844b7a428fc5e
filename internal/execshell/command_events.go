package execshell

import (
	"go.uber.org/zap"
)

const (
	logFieldCommandConstant          = "command"
	logFieldArgumentsConstant        = "arguments"
	logFieldWorkingDirectoryConstant = "working_directory"
	logFieldExitCodeConstant         = "exit_code"
	logFieldStandardErrorConstant    = "standard_error"
)

// CommandEventObserver receives lifecycle notifications for shell command execution.
type CommandEventObserver interface {
	// CommandStarted notifies observers that command execution is beginning.
	CommandStarted(command ShellCommand)
	// CommandCompleted notifies observers that command execution finished and supplies the result.
	CommandCompleted(command ShellCommand, result ExecutionResult)
	// CommandExecutionFailed reports unexpected failures prior to receiving an execution result.
	CommandExecutionFailed(command ShellCommand, failure error)
}

// noopCommandEventObserver discards all command events.
type noopCommandEventObserver struct{}

// CommandStarted implements CommandEventObserver for the no-op observer.
func (noopCommandEventObserver) CommandStarted(ShellCommand) {}

// CommandCompleted implements CommandEventObserver for the no-op observer.
func (noopCommandEventObserver) CommandCompleted(ShellCommand, ExecutionResult) {}

// CommandExecutionFailed implements CommandEventObserver for the no-op observer.
func (noopCommandEventObserver) CommandExecutionFailed(ShellCommand, error) {}

// StructuredCommandEventLogger records command lifecycle events as structured zap entries.
type StructuredCommandEventLogger struct {
	logger    *zap.Logger
	formatter CommandMessageFormatter
}

// NewStructuredCommandEventLogger constructs a structured event logger backed by the provided zap logger.
func NewStructuredCommandEventLogger(logger *zap.Logger) *StructuredCommandEventLogger {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StructuredCommandEventLogger{logger: logger, formatter: CommandMessageFormatter{}}
}

// CommandStarted logs the command about to run at debug level.
func (eventLogger *StructuredCommandEventLogger) CommandStarted(command ShellCommand) {
	eventLogger.logger.Debug(eventLogger.formatter.BuildStartedMessage(command), commandFields(command)...)
}

// CommandCompleted logs the command result, warning when the exit code is non-zero.
func (eventLogger *StructuredCommandEventLogger) CommandCompleted(command ShellCommand, result ExecutionResult) {
	fields := append(commandFields(command), zap.Int(logFieldExitCodeConstant, result.ExitCode))
	if len(result.StandardError) > 0 {
		fields = append(fields, zap.String(logFieldStandardErrorConstant, result.StandardError))
	}
	if result.ExitCode == 0 {
		eventLogger.logger.Debug(eventLogger.formatter.BuildSuccessMessage(command), fields...)
		return
	}
	eventLogger.logger.Warn(eventLogger.formatter.BuildFailureMessage(command, result), fields...)
}

// CommandExecutionFailed logs commands that could not be run at all.
func (eventLogger *StructuredCommandEventLogger) CommandExecutionFailed(command ShellCommand, failure error) {
	fields := append(commandFields(command), zap.Error(failure))
	eventLogger.logger.Error(eventLogger.formatter.BuildExecutionFailureMessage(command, failure), fields...)
}

func commandFields(command ShellCommand) []zap.Field {
	return []zap.Field{
		zap.String(logFieldCommandConstant, string(command.Name)),
		zap.Strings(logFieldArgumentsConstant, command.Details.Arguments),
		zap.String(logFieldWorkingDirectoryConstant, command.Details.WorkingDirectory),
	}
}
