package utils

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	logLevelDebugStringConstant          = "debug"
	logLevelInfoStringConstant           = "info"
	logLevelWarnStringConstant           = "warn"
	logLevelErrorStringConstant          = "error"
	logFormatStructuredStringConstant    = "structured"
	logFormatConsoleStringConstant       = "console"
	unsupportedLogLevelTemplateConstant  = "unsupported log level: %s"
	unsupportedLogFormatTemplateConstant = "unsupported log format: %s"
	consoleTimeLayoutConstant            = "15:04:05"
	samplingTickConstant                 = time.Second
	samplingInitialConstant              = 100
	samplingThereafterConstant           = 100
)

// LogLevel enumerates supported logging granularities.
type LogLevel string

// Exported log level constants for reuse across packages.
const (
	LogLevelDebug LogLevel = LogLevel(logLevelDebugStringConstant)
	LogLevelInfo  LogLevel = LogLevel(logLevelInfoStringConstant)
	LogLevelWarn  LogLevel = LogLevel(logLevelWarnStringConstant)
	LogLevelError LogLevel = LogLevel(logLevelErrorStringConstant)
)

// LogFormat enumerates supported logger output encodings.
type LogFormat string

// Exported log format constants for reuse across packages.
const (
	LogFormatStructured LogFormat = LogFormat(logFormatStructuredStringConstant)
	LogFormatConsole    LogFormat = LogFormat(logFormatConsoleStringConstant)
)

var logLevelMapping = map[LogLevel]zapcore.Level{
	LogLevelDebug: zapcore.DebugLevel,
	LogLevelInfo:  zapcore.InfoLevel,
	LogLevelWarn:  zapcore.WarnLevel,
	LogLevelError: zapcore.ErrorLevel,
}

// LoggerFactory builds zap.Logger instances that write to a single sink.
type LoggerFactory struct {
	sink           zapcore.WriteSyncer
	colorizeLevels bool
}

// NewLoggerFactory constructs a factory writing to standard error. Console
// level names are colored when standard error is a terminal.
func NewLoggerFactory() *LoggerFactory {
	descriptor := os.Stderr.Fd()
	return &LoggerFactory{
		sink:           zapcore.Lock(os.Stderr),
		colorizeLevels: isatty.IsTerminal(descriptor) || isatty.IsCygwinTerminal(descriptor),
	}
}

// NewLoggerFactoryWithSink constructs a factory writing uncolored output to sink.
func NewLoggerFactoryWithSink(sink zapcore.WriteSyncer) *LoggerFactory {
	if sink == nil {
		return NewLoggerFactory()
	}
	return &LoggerFactory{sink: sink}
}

// CreateLogger produces a zap.Logger honoring the requested log level and format.
// Level and format names are matched case-insensitively. Structured output is
// sampled JSON with caller annotations; console output is one plain line per
// entry.
func (factory *LoggerFactory) CreateLogger(requestedLogLevel LogLevel, requestedLogFormat LogFormat) (*zap.Logger, error) {
	zapLogLevel, levelExists := logLevelMapping[LogLevel(normalizeName(string(requestedLogLevel)))]
	if !levelExists {
		return nil, fmt.Errorf(unsupportedLogLevelTemplateConstant, requestedLogLevel)
	}
	levelEnabler := zap.NewAtomicLevelAt(zapLogLevel)

	switch LogFormat(normalizeName(string(requestedLogFormat))) {
	case LogFormatStructured:
		core := zapcore.NewCore(zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()), factory.sink, levelEnabler)
		sampledCore := zapcore.NewSamplerWithOptions(core, samplingTickConstant, samplingInitialConstant, samplingThereafterConstant)
		return zap.New(sampledCore, zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel)), nil
	case LogFormatConsole:
		encoderConfiguration := zap.NewProductionEncoderConfig()
		encoderConfiguration.EncodeTime = zapcore.TimeEncoderOfLayout(consoleTimeLayoutConstant)
		encoderConfiguration.EncodeLevel = zapcore.CapitalLevelEncoder
		if factory.colorizeLevels {
			encoderConfiguration.EncodeLevel = zapcore.CapitalColorLevelEncoder
		}
		return zap.New(zapcore.NewCore(zapcore.NewConsoleEncoder(encoderConfiguration), factory.sink, levelEnabler)), nil
	default:
		return nil, fmt.Errorf(unsupportedLogFormatTemplateConstant, requestedLogFormat)
	}
}

func normalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
