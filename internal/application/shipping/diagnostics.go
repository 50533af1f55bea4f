package shipping

import (
	"fmt"
	"strings"
	"sync"

	"github.com/maplecart/backend/internal/domain/shipping"
)

// DiagnosticsGate decides, per resolved settings, which carrier payloads
// are written to the application log.
type DiagnosticsGate struct {
	LogRequest  bool
	LogResponse bool
}

// NewDiagnosticsGate derives the gate from the log flags of a resolved
// settings value.
func NewDiagnosticsGate(log shipping.LogSettings) DiagnosticsGate {
	return DiagnosticsGate{
		LogRequest:  log.Request,
		LogResponse: log.Response,
	}
}

// CaptureBuffer is a DiagnosticsSink that accumulates incidental client
// output in memory. It is attached to a ClientConfig for the duration of a
// single carrier call and drained afterwards; output is never written to
// the process streams.
type CaptureBuffer struct {
	mu  sync.Mutex
	buf strings.Builder
}

var _ shipping.DiagnosticsSink = (*CaptureBuffer)(nil)

// NewCaptureBuffer creates an empty capture buffer.
func NewCaptureBuffer() *CaptureBuffer {
	return &CaptureBuffer{}
}

// Printf implements shipping.DiagnosticsSink.
func (b *CaptureBuffer) Printf(format string, args ...any) {
	b.mu.Lock()
	defer b.mu.Unlock()
	fmt.Fprintf(&b.buf, format, args...)
}

// Drain returns everything captured so far and resets the buffer. It is
// safe to call even if the carrier call panicked or returned early.
func (b *CaptureBuffer) Drain() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := b.buf.String()
	b.buf.Reset()
	return out
}
