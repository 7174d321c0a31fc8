// Package services: services/session_service.go
package services

import (
	"sync"

	"github.com/gin-contrib/sessions"
	"go-student-dashboard/logger"
)

// LoggedInKey is the persisted key holding the login flag.
const LoggedInKey = "isLoggedIn"

// loggedInSentinel is the only stored value that counts as logged in.
const loggedInSentinel = "true"

// ------------------- key-value stores -------------------

// KeyValueStore is the persisted string store behind the session gate.
type KeyValueStore interface {
	Get(key string) (string, bool)
	Set(key, value string) error
	Delete(key string) error
}

// CookieStore adapts a cookie-backed gin session to KeyValueStore.
// Every write is saved immediately so the response carries the new cookie.
type CookieStore struct {
	session sessions.Session
}

// NewCookieStore wraps the request's session.
func NewCookieStore(s sessions.Session) *CookieStore {
	return &CookieStore{session: s}
}

// Get returns the value only when it is stored as a string.
func (s *CookieStore) Get(key string) (string, bool) {
	v, ok := s.session.Get(key).(string)
	return v, ok
}

// Set stores value under key and saves the session.
func (s *CookieStore) Set(key, value string) error {
	s.session.Set(key, value)
	return s.session.Save()
}

// Delete removes key and saves the session.
func (s *CookieStore) Delete(key string) error {
	s.session.Delete(key)
	return s.session.Save()
}

// MemoryStore is a process-local KeyValueStore.
type MemoryStore struct {
	mu   sync.Mutex
	data map[string]string
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string]string)}
}

func (s *MemoryStore) Get(key string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.data[key]
	return v, ok
}

func (s *MemoryStore) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = value
	return nil
}

func (s *MemoryStore) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, key)
	return nil
}

// ------------------- session gate -------------------

// SessionGate holds the binary logged-in state consulted by every protected route.
type SessionGate interface {
	IsAuthenticated() bool
	Login() error
	Logout() error
}

// Gate is a SessionGate whose in-memory flag mirrors a KeyValueStore.
type Gate struct {
	store    KeyValueStore
	loggedIn bool
}

// NewSessionGate creates a gate and initializes it from the store.
func NewSessionGate(store KeyValueStore) *Gate {
	g := &Gate{store: store}
	g.Initialize()
	return g
}

// Initialize reloads the flag from the store. Only the literal "true" counts;
// anything else, including an absent key, is logged out.
func (g *Gate) Initialize() bool {
	v, ok := g.store.Get(LoggedInKey)
	g.loggedIn = ok && v == loggedInSentinel
	return g.loggedIn
}

// IsAuthenticated reports the in-memory flag.
func (g *Gate) IsAuthenticated() bool {
	return g.loggedIn
}

// Login marks the session logged in and persists the sentinel.
func (g *Gate) Login() error {
	g.loggedIn = true
	if err := g.store.Set(LoggedInKey, loggedInSentinel); err != nil {
		logger.Error.Printf("SessionGate: failed to persist login: %v", err)
		return err
	}
	return nil
}

// Logout marks the session logged out and removes the persisted key.
func (g *Gate) Logout() error {
	g.loggedIn = false
	if err := g.store.Delete(LoggedInKey); err != nil {
		logger.Error.Printf("SessionGate: failed to persist logout: %v", err)
		return err
	}
	return nil
}
