/*
Package tracing gives every executed command a span for log correlation.

Spans are synchronous: Execute starts one, tags it with the method, URL and
status, and logs it at debug level when the round trip ends. Nothing is
buffered or exported.

# Usage

	span, ctx := tracing.StartSpan(ctx, "getTitle")
	defer func() {
		span.Finish()
		span.Log(logger)
	}()

# Propagation

A caller that already has a trace passes it in with WithTraceID; the
connection then sends it to the remote end as:
  - X-Trace-ID: identifier for the whole flow
  - X-Span-ID: identifier for the command
*/
package tracing
