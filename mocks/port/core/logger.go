package core

import (
	"github.com/stretchr/testify/mock"

	"github.com/adsmarket/ledger-engine/internal/domain/port/core"
)

// MockLogger is a testify mock for the Logger port
type MockLogger struct {
	mock.Mock
}

// NewMockLogger creates a mock logger that accepts any logging call.
// Tests that assert on specific messages can add expectations on top.
func NewMockLogger() *MockLogger {
	m := &MockLogger{}
	m.On("SetLevel", mock.Anything).Return().Maybe()
	m.On("Debug", mock.Anything, mock.Anything).Return().Maybe()
	m.On("Info", mock.Anything, mock.Anything).Return().Maybe()
	m.On("Warn", mock.Anything, mock.Anything).Return().Maybe()
	m.On("Error", mock.Anything, mock.Anything).Return().Maybe()
	m.On("Flush").Return(nil).Maybe()
	return m
}

func (m *MockLogger) SetLevel(level core.LogLevel) {
	m.Called(level)
}

func (m *MockLogger) Debug(message string, fields map[string]any) {
	m.Called(message, fields)
}

func (m *MockLogger) Info(message string, fields map[string]any) {
	m.Called(message, fields)
}

func (m *MockLogger) Warn(message string, fields map[string]any) {
	m.Called(message, fields)
}

func (m *MockLogger) Error(message string, fields map[string]any) {
	m.Called(message, fields)
}

func (m *MockLogger) Flush() error {
	args := m.Called()
	return args.Error(0)
}
