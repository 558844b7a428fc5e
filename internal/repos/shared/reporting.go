package shared

import (
	"fmt"
	"io"
)

// Reporter emits newline-terminated report lines to an underlying sink.
type Reporter interface {
	Linef(format string, args ...any)
}

type writerReporter struct {
	writer io.Writer
}

// NewWriterReporter constructs a Reporter that writes to the provided io.Writer.
// A nil writer discards every line.
func NewWriterReporter(writer io.Writer) Reporter {
	if writer == nil {
		writer = io.Discard
	}
	return writerReporter{writer: writer}
}

func (reporter writerReporter) Linef(format string, args ...any) {
	fmt.Fprintf(reporter.writer, format, args...)
	fmt.Fprintln(reporter.writer)
}
