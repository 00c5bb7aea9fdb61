// Package logging builds the zap loggers used by the WebDriver connection
// layer and adapts them to the logger interfaces of its HTTP libraries.
//
// Two modes:
//   - Production: JSON lines on stderr
//   - Development: colored console output at debug level
//
// Example Usage:
//
//	logger := logging.NewDefault()
//	conn, err := remote.New("http://localhost:4444", remote.WithLogger(logger))
package logging
