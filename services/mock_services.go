package services

import (
	"github.com/stretchr/testify/mock"
	"go-student-dashboard/models"
)

// Ensure the mocks implement their interfaces
var (
	_ MetricsPublisher           = (*MockMetricsPublisher)(nil)
	_ Notifier                   = (*MockNotifier)(nil)
	_ FileStore                  = (*MockFileStore)(nil)
	_ CredentialServiceInterface = (*MockCredentialService)(nil)
)

// MockMetricsPublisher is a mock MetricsPublisher built on `mock.Mock`
type MockMetricsPublisher struct {
	mock.Mock
}

// PublishLogin (Mocked)
func (m *MockMetricsPublisher) PublishLogin(success bool) {
	m.Called(success)
}

// PublishRecordCaptured (Mocked)
func (m *MockMetricsPublisher) PublishRecordCaptured(t models.RecordType) {
	m.Called(t)
}

// MockNotifier is a mock Notifier
type MockNotifier struct {
	mock.Mock
}

// Success (Mocked)
func (m *MockNotifier) Success(message string) {
	m.Called(message)
}

// MockFileStore is a mock FileStore
type MockFileStore struct {
	mock.Mock
}

// Save (Mocked)
func (m *MockFileStore) Save(upload *FileUpload) (string, error) {
	args := m.Called(upload)
	return args.String(0), args.Error(1)
}

// MockCredentialService is a mock CredentialServiceInterface
type MockCredentialService struct {
	mock.Mock
}

// Authenticate (Mocked)
func (m *MockCredentialService) Authenticate(username, password string) bool {
	args := m.Called(username, password)
	return args.Bool(0)
}
