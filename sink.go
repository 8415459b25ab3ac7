package boxify

import (
	"io"
	"strings"
)

// Sink receives the rendered output. Implementations are append-only;
// a streaming sink writing straight to an output stream is a valid
// substitute for the in-memory default.
type Sink interface {
	Append(text string)
	AppendLine()
}

// StringSink accumulates output in memory. The zero value is ready to use.
type StringSink struct {
	sb strings.Builder
}

func (s *StringSink) Append(text string) { s.sb.WriteString(text) }
func (s *StringSink) AppendLine()        { s.sb.WriteByte('\n') }

// String returns everything appended so far.
func (s *StringSink) String() string { return s.sb.String() }

// WriterSink streams output to an io.Writer. The first write error is
// retained and suppresses all further writes; check Err after rendering.
type WriterSink struct {
	w   io.Writer
	err error
}

// NewWriterSink returns a sink writing to w.
func NewWriterSink(w io.Writer) *WriterSink {
	return &WriterSink{w: w}
}

func (s *WriterSink) Append(text string) {
	if s.err == nil {
		_, s.err = io.WriteString(s.w, text)
	}
}

func (s *WriterSink) AppendLine() { s.Append("\n") }

// Err returns the first error encountered while writing, if any.
func (s *WriterSink) Err() error { return s.err }
