// Package observe wires structured logging and tracing for the CLI.
package observe

import (
	"context"
	"io"

	"github.com/felixgeelhaar/bolt/v3"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

var tracer = otel.Tracer("coracle")

// Options controls Observer output.
type Options struct {
	// JSON switches from console to JSON log output, for CI consumers.
	JSON bool
	// Verbose lowers the level from WARN to everything.
	Verbose bool
}

// Observer handles logging and tracing.
type Observer struct {
	log *bolt.Logger
}

// New creates an Observer writing to out.
func New(out io.Writer, opts Options) *Observer {
	var handler bolt.Handler
	if opts.JSON {
		handler = bolt.NewJSONHandler(out)
	} else {
		handler = bolt.NewConsoleHandler(out)
	}

	l := bolt.New(handler)
	if !opts.Verbose {
		l.SetLevel(bolt.WARN)
	}

	return &Observer{log: l}
}

// Log returns the underlying logger.
func (o *Observer) Log() *bolt.Logger {
	return o.log
}

// StartSpan starts a new OTel span.
func (o *Observer) StartSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return tracer.Start(ctx, name)
}

// Close flushes any buffered logs or traces (currently nothing buffers).
func (o *Observer) Close() error {
	return nil
}
