// Package services: services/credential_service.go
package services

import (
	"os"
	"sync"

	"github.com/pkg/errors"
	"go-student-dashboard/logger"
	"go-student-dashboard/models"
	"golang.org/x/crypto/bcrypt"
	"gopkg.in/yaml.v3"
)

// CredentialServiceInterface checks a username and password pair.
type CredentialServiceInterface interface {
	Authenticate(username, password string) bool
}

// CredentialService authenticates against a bcrypt hashed credentials list.
// Until credentials are loaded every attempt fails.
type CredentialService struct {
	mu    sync.RWMutex
	creds *models.Credentials
}

// NewCredentialService creates a service, optionally seeded with creds.
func NewCredentialService(creds *models.Credentials) *CredentialService {
	return &CredentialService{creds: creds}
}

// LoadCredentials reads the YAML credentials file at path.
func LoadCredentials(path string) (*models.Credentials, error) {
	data, err := os.ReadFile(path) // #nosec G304
	if err != nil {
		return nil, errors.Wrapf(err, "read credentials %s", path)
	}

	var creds models.Credentials
	if err := yaml.Unmarshal(data, &creds); err != nil {
		return nil, errors.Wrapf(err, "parse credentials %s", path)
	}
	for i, u := range creds.Users {
		if u.Username == "" || u.Password == "" {
			return nil, errors.Errorf("credentials %s: user %d is missing a username or password", path, i)
		}
	}
	return &creds, nil
}

// Load replaces the current credentials with the contents of path.
func (s *CredentialService) Load(path string) error {
	creds, err := LoadCredentials(path)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.creds = creds
	s.mu.Unlock()
	logger.Info.Printf("CredentialService: loaded %d user(s) from %s", len(creds.Users), path)
	return nil
}

// Authenticate reports whether password matches the stored hash for username.
func (s *CredentialService) Authenticate(username, password string) bool {
	if username == "" || password == "" {
		return false
	}
	s.mu.RLock()
	creds := s.creds
	s.mu.RUnlock()
	if creds == nil {
		logger.Warn.Println("CredentialService: no credentials loaded; rejecting login")
		return false
	}

	user, ok := creds.Find(username)
	if !ok {
		return false
	}
	return checkPasswordHash(password, user.Password)
}

// ------------------ password utilities ------------------

// checkPasswordHash verifies if the provided plain-text password matches the stored hashed password.
func checkPasswordHash(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// HashPassword produces a bcrypt hash suitable for the credentials file.
func HashPassword(password string, cost int) (string, error) {
	if password == "" {
		return "", errors.New("password must not be empty")
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", errors.Wrap(err, "hash password")
	}
	return string(hashed), nil
}
