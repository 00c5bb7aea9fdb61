package collab

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/GriffinCanCode/wdremote/internal/remote"
)

// Service is a process, or anything else, serving a WebDriver remote end.
type Service interface {
	Start(ctx context.Context) error
	Stop() error
	// URL is the base URL of the remote end. Valid after Start.
	URL() string
}

// Connect starts svc and opens a connection on its URL. The service is
// stopped again when the connection cannot be built.
func Connect(ctx context.Context, svc Service, opts ...remote.Option) (*remote.Connection, error) {
	if err := svc.Start(ctx); err != nil {
		return nil, fmt.Errorf("start service: %w", err)
	}
	conn, err := remote.New(svc.URL(), opts...)
	if err != nil {
		_ = svc.Stop()
		return nil, err
	}
	return conn, nil
}

// Static is a Service for a remote end that is already running.
type Static string

// Start implements Service.
func (s Static) Start(context.Context) error {
	if s == "" {
		return fmt.Errorf("static service has no URL")
	}
	return nil
}

// Stop implements Service.
func (Static) Stop() error { return nil }

// URL implements Service.
func (s Static) URL() string { return string(s) }

// LogOutput says where a service writes its log: a file, an open writer,
// or the parent's stdout. The zero value discards output.
type LogOutput struct {
	Path    string
	Writer  io.Writer
	Inherit bool
}

// LogToFile appends service output to path.
func LogToFile(path string) LogOutput {
	return LogOutput{Path: path}
}

// LogToWriter sends service output to w. w is not closed.
func LogToWriter(w io.Writer) LogOutput {
	return LogOutput{Writer: w}
}

// InheritStdout sends service output to the parent's stdout.
func InheritStdout() LogOutput {
	return LogOutput{Inherit: true}
}

// Open returns the sink. Only a file opened from Path is closed by the
// returned closer.
func (o LogOutput) Open() (io.WriteCloser, error) {
	switch {
	case o.Path != "":
		f, err := os.OpenFile(o.Path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("open service log: %w", err)
		}
		return f, nil
	case o.Writer != nil:
		return nopCloser{o.Writer}, nil
	case o.Inherit:
		return nopCloser{os.Stdout}, nil
	default:
		return nopCloser{io.Discard}, nil
	}
}

type nopCloser struct {
	io.Writer
}

func (nopCloser) Close() error { return nil }
