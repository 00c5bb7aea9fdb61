package testutil

import (
	"context"
	"testing"

	"github.com/stretchr/testify/mock"
)

// MockFedCM is a mock FedCM dialog.
type MockFedCM struct {
	mock.Mock
}

// Accept mocks the Accept method.
func (m *MockFedCM) Accept(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

// Dismiss mocks the Dismiss method.
func (m *MockFedCM) Dismiss(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

// SelectAccount mocks the SelectAccount method.
func (m *MockFedCM) SelectAccount(ctx context.Context, index int) error {
	return m.Called(ctx, index).Error(0)
}

// DialogType mocks the DialogType method.
func (m *MockFedCM) DialogType(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

// Title mocks the Title method.
func (m *MockFedCM) Title(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

// Subtitle mocks the Subtitle method.
func (m *MockFedCM) Subtitle(ctx context.Context) (map[string]any, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]any), args.Error(1)
}

// AccountList mocks the AccountList method.
func (m *MockFedCM) AccountList(ctx context.Context) ([]map[string]any, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]map[string]any), args.Error(1)
}

// MockService is a mock remote end service.
type MockService struct {
	mock.Mock
}

// Start mocks the Start method.
func (m *MockService) Start(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

// Stop mocks the Stop method.
func (m *MockService) Stop() error {
	return m.Called().Error(0)
}

// URL mocks the URL method.
func (m *MockService) URL() string {
	return m.Called().String(0)
}

// NewMockService creates a mock service that starts cleanly and serves url.
func NewMockService(t *testing.T, url string) *MockService {
	t.Helper()
	m := new(MockService)

	m.On("Start", mock.Anything).Return(nil).Maybe()
	m.On("Stop").Return(nil).Maybe()
	m.On("URL").Return(url).Maybe()

	return m
}
