package wderr

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTransportErrorUnwrap(t *testing.T) {
	err := NewTransportError("GET", "http://remote/status", context.DeadlineExceeded)

	assert.True(t, errors.Is(err, context.DeadlineExceeded))
	assert.True(t, IsTransport(fmt.Errorf("execute: %w", err)))
	assert.Contains(t, err.Error(), "GET http://remote/status")
}

func TestClassification(t *testing.T) {
	tests := []struct {
		name  string
		err   error
		check func(error) bool
	}{
		{"configuration", NewConfigurationError("auth", "token required", ErrMissingCredentials), IsConfiguration},
		{"proxy", NewProxyResolutionError("http//bad", "missing scheme", nil), IsProxyResolution},
		{"protocol", NewProtocolError("POST", "http://remote/session", 200, "<html>", nil), IsProtocol},
		{"unknown command", &UnknownCommandError{Command: "nope"}, IsUnknownCommand},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, tt.check(tt.err))
			assert.False(t, IsTransport(tt.err))
		})
	}
}

func TestCommandExecutionErrorMessage(t *testing.T) {
	err := &CommandExecutionError{Status: 404, Code: "no such element", Message: "Unable to locate element"}
	assert.Equal(t, "no such element (404): Unable to locate element", err.Error())

	bare := &CommandExecutionError{Status: 401, Message: "Authorization Required"}
	assert.Equal(t, "remote error (401): Authorization Required", bare.Error())
}

func TestConfigurationErrorWrapsCause(t *testing.T) {
	err := NewConfigurationError("auth_type", "basic auth needs username and password", ErrMissingCredentials)
	assert.ErrorIs(t, err, ErrMissingCredentials)
	assert.Contains(t, err.Error(), "[auth_type]")
}
