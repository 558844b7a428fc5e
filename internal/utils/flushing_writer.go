package utils

import (
	"io"
	"sync"
)

// FlushingWriter flushes buffered destinations after every write and remembers the first
// failure so line-oriented printers that discard errors can report it afterwards.
type FlushingWriter struct {
	writer     io.Writer
	mutex      sync.Mutex
	firstError error
}

// NewFlushingWriter wraps writer. Wrapping an existing FlushingWriter returns it unchanged.
func NewFlushingWriter(writer io.Writer) *FlushingWriter {
	if alreadyWrapped, isFlushingWriter := writer.(*FlushingWriter); isFlushingWriter {
		return alreadyWrapped
	}
	return &FlushingWriter{writer: writer}
}

// Write delegates to the underlying writer and flushes it when possible.
// After a failure every later write fails with the same error.
func (flushingWriter *FlushingWriter) Write(data []byte) (int, error) {
	if flushingWriter == nil || flushingWriter.writer == nil {
		return 0, nil
	}

	flushingWriter.mutex.Lock()
	defer flushingWriter.mutex.Unlock()

	if flushingWriter.firstError != nil {
		return 0, flushingWriter.firstError
	}

	bytesWritten, writeError := flushingWriter.writer.Write(data)
	if writeError != nil {
		flushingWriter.firstError = writeError
		return bytesWritten, writeError
	}

	if flushableWriter, implementsFlush := flushingWriter.writer.(interface{ Flush() error }); implementsFlush {
		if flushError := flushableWriter.Flush(); flushError != nil {
			flushingWriter.firstError = flushError
			return bytesWritten, flushError
		}
	}

	return bytesWritten, nil
}

// Err returns the first write or flush failure, if any.
func (flushingWriter *FlushingWriter) Err() error {
	if flushingWriter == nil {
		return nil
	}

	flushingWriter.mutex.Lock()
	defer flushingWriter.mutex.Unlock()
	return flushingWriter.firstError
}
