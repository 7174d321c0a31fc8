// Package services: services/record_repository.go
package services

import (
	"sync"

	"go-student-dashboard/logger"
	"go-student-dashboard/models"
)

// RecordRepositoryInterface stores the achievements handed over by the capture form.
type RecordRepositoryInterface interface {
	Add(user string, r models.Record)
	List(user string) []models.Record
	ListByType(user string, t models.RecordType) []models.Record
	Reset(user string)
}

// RecordRepository keeps every user's records in memory, newest first.
type RecordRepository struct {
	mu      sync.RWMutex
	records map[string][]models.Record
}

// NewRecordRepository creates an empty repository.
func NewRecordRepository() *RecordRepository {
	return &RecordRepository{
		records: make(map[string][]models.Record),
	}
}

// Add prepends r to the user's records.
func (s *RecordRepository) Add(user string, r models.Record) {
	if r == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[user] = append([]models.Record{r}, s.records[user]...)
	logger.Info.Printf("RecordRepository: stored %s %d for user '%s' (total %d)", r.Type(), r.Meta().ID, user, len(s.records[user]))
}

// List returns a copy of the user's records.
func (s *RecordRepository) List(user string) []models.Record {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Record, len(s.records[user]))
	copy(out, s.records[user])
	return out
}

// ListByType returns the user's records of one type.
func (s *RecordRepository) ListByType(user string, t models.RecordType) []models.Record {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.Record
	for _, r := range s.records[user] {
		if r.Type() == t {
			out = append(out, r)
		}
	}
	return out
}

// Reset drops all of the user's records.
func (s *RecordRepository) Reset(user string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	logger.Info.Printf("RecordRepository: clearing records for user '%s'", user)
	delete(s.records, user)
}
