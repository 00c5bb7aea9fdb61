package wderr

import (
	"errors"
	"fmt"
)

var (
	ErrMissingCredentials = errors.New("missing credentials for auth type")
	ErrEmptyAddress       = errors.New("remote server address is empty")
)

// ConfigurationError reports invalid or contradictory client settings.
type ConfigurationError struct {
	Field   string
	Message string
	Cause   error
}

func (e *ConfigurationError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("configuration error [%s]: %s: %v", e.Field, e.Message, e.Cause)
	}
	return fmt.Sprintf("configuration error [%s]: %s", e.Field, e.Message)
}

func (e *ConfigurationError) Unwrap() error {
	return e.Cause
}

// NewConfigurationError creates a configuration error
func NewConfigurationError(field, message string, cause error) *ConfigurationError {
	return &ConfigurationError{Field: field, Message: message, Cause: cause}
}

// ProxyResolutionError reports a proxy URL that cannot be used.
type ProxyResolutionError struct {
	ProxyURL string
	Message  string
	Cause    error
}

func (e *ProxyResolutionError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("proxy error [%s]: %s: %v", e.ProxyURL, e.Message, e.Cause)
	}
	return fmt.Sprintf("proxy error [%s]: %s", e.ProxyURL, e.Message)
}

func (e *ProxyResolutionError) Unwrap() error {
	return e.Cause
}

// NewProxyResolutionError creates a proxy resolution error
func NewProxyResolutionError(proxyURL, message string, cause error) *ProxyResolutionError {
	return &ProxyResolutionError{ProxyURL: proxyURL, Message: message, Cause: cause}
}

// TransportError wraps connection refused, DNS, TLS and timeout failures.
type TransportError struct {
	Method string
	URL    string
	Cause  error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("transport error [%s %s]: %v", e.Method, e.URL, e.Cause)
}

func (e *TransportError) Unwrap() error {
	return e.Cause
}

// NewTransportError creates a transport error
func NewTransportError(method, url string, cause error) *TransportError {
	return &TransportError{Method: method, URL: url, Cause: cause}
}

// ProtocolError reports a response body that is not a valid envelope.
type ProtocolError struct {
	Method string
	URL    string
	Status int
	Body   string
	Cause  error
}

func (e *ProtocolError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("protocol error [%s %s -> %d]: %v", e.Method, e.URL, e.Status, e.Cause)
	}
	return fmt.Sprintf("protocol error [%s %s -> %d]: malformed response body", e.Method, e.URL, e.Status)
}

func (e *ProtocolError) Unwrap() error {
	return e.Cause
}

// NewProtocolError creates a protocol error
func NewProtocolError(method, url string, status int, body string, cause error) *ProtocolError {
	return &ProtocolError{Method: method, URL: url, Status: status, Body: body, Cause: cause}
}

// UnknownCommandError is returned when a command name is not registered.
type UnknownCommandError struct {
	Command string
}

func (e *UnknownCommandError) Error() string {
	return fmt.Sprintf("unrecognised command %q", e.Command)
}

// InvalidArgumentError reports a URL template placeholder with no matching parameter.
type InvalidArgumentError struct {
	Command   string
	Parameter string
}

func (e *InvalidArgumentError) Error() string {
	return fmt.Sprintf("command %q: missing parameter %q", e.Command, e.Parameter)
}

// CommandExecutionError carries a well-formed error envelope returned by the remote end.
type CommandExecutionError struct {
	Status     int
	Code       string
	Message    string
	Stacktrace string
	Data       any
}

func (e *CommandExecutionError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("%s (%d): %s", e.Code, e.Status, e.Message)
	}
	return fmt.Sprintf("remote error (%d): %s", e.Status, e.Message)
}

// IsTransport reports whether err is a TransportError.
func IsTransport(err error) bool {
	var target *TransportError
	return errors.As(err, &target)
}

// IsProtocol reports whether err is a ProtocolError.
func IsProtocol(err error) bool {
	var target *ProtocolError
	return errors.As(err, &target)
}

// IsUnknownCommand reports whether err is an UnknownCommandError.
func IsUnknownCommand(err error) bool {
	var target *UnknownCommandError
	return errors.As(err, &target)
}

// IsConfiguration reports whether err is a ConfigurationError.
func IsConfiguration(err error) bool {
	var target *ConfigurationError
	return errors.As(err, &target)
}

// IsProxyResolution reports whether err is a ProxyResolutionError.
func IsProxyResolution(err error) bool {
	var target *ProxyResolutionError
	return errors.As(err, &target)
}
