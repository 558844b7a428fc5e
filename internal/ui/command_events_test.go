package ui_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/temirov/gitbulkpush/internal/execshell"
	"github.com/temirov/gitbulkpush/internal/ui"
)

const (
	testCommandWorkingDirectoryConstant    = "/tmp/project"
	testExecutionFailureReasonConstant     = "executable file not found"
	testStandardErrorMessageConstant       = "fatal: the current branch main has no upstream branch"
	testPushProgressMessageConstant        = "To https://example.com\r\n   167dfd2..0b0714a  main -> main\n"
	testStartMessageExpectationConstant    = "Pushing configured remotes from /tmp/project"
	testSuccessMessageExpectationConstant  = "Pushed configured remotes from /tmp/project"
	testFailureMessageExpectationConstant  = "Failed to push configured remotes from /tmp/project (exit code 128: " + testStandardErrorMessageConstant + ")"
	testExecutionFailureMessageExpectation = "Unable to push configured remotes from /tmp/project: " + testExecutionFailureReasonConstant
)

func TestConsoleCommandEventLoggerEmitsMessages(testInstance *testing.T) {
	command := execshell.ShellCommand{
		Name: execshell.CommandGit,
		Details: execshell.CommandDetails{
			Arguments:        []string{"push"},
			WorkingDirectory: testCommandWorkingDirectoryConstant,
		},
	}

	testCases := []struct {
		name             string
		invoke           func(logger *ui.ConsoleCommandEventLogger)
		expectedLevels   []zapcore.Level
		expectedMessages []string
	}{
		{
			name: "command_started",
			invoke: func(logger *ui.ConsoleCommandEventLogger) {
				logger.CommandStarted(command)
			},
			expectedLevels:   []zapcore.Level{zapcore.InfoLevel},
			expectedMessages: []string{testStartMessageExpectationConstant},
		},
		{
			name: "command_completed_success",
			invoke: func(logger *ui.ConsoleCommandEventLogger) {
				logger.CommandCompleted(command, execshell.ExecutionResult{ExitCode: 0})
			},
			expectedLevels:   []zapcore.Level{zapcore.InfoLevel},
			expectedMessages: []string{testSuccessMessageExpectationConstant},
		},
		{
			name: "command_completed_success_with_progress",
			invoke: func(logger *ui.ConsoleCommandEventLogger) {
				logger.CommandCompleted(command, execshell.ExecutionResult{ExitCode: 0, StandardError: testPushProgressMessageConstant})
			},
			expectedLevels:   []zapcore.Level{zapcore.InfoLevel, zapcore.DebugLevel, zapcore.DebugLevel},
			expectedMessages: []string{testSuccessMessageExpectationConstant, "To https://example.com", "167dfd2..0b0714a  main -> main"},
		},
		{
			name: "command_completed_failure",
			invoke: func(logger *ui.ConsoleCommandEventLogger) {
				logger.CommandCompleted(command, execshell.ExecutionResult{ExitCode: 128, StandardError: testStandardErrorMessageConstant})
			},
			expectedLevels:   []zapcore.Level{zapcore.WarnLevel},
			expectedMessages: []string{testFailureMessageExpectationConstant},
		},
		{
			name: "command_execution_failure",
			invoke: func(logger *ui.ConsoleCommandEventLogger) {
				logger.CommandExecutionFailed(command, errors.New(testExecutionFailureReasonConstant))
			},
			expectedLevels:   []zapcore.Level{zapcore.ErrorLevel},
			expectedMessages: []string{testExecutionFailureMessageExpectation},
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			observerCore, observedLogs := observer.New(zapcore.DebugLevel)
			consoleLogger := zap.New(observerCore)
			eventLogger := ui.NewConsoleCommandEventLogger(consoleLogger)

			testCase.invoke(eventLogger)

			entries := observedLogs.All()
			require.Len(testInstance, entries, len(testCase.expectedMessages))
			for entryIndex, entry := range entries {
				require.Equal(testInstance, testCase.expectedLevels[entryIndex], entry.Level)
				require.Equal(testInstance, testCase.expectedMessages[entryIndex], entry.Message)
			}
		})
	}
}
