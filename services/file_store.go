// Package services: services/file_store.go
package services

import (
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go-student-dashboard/logger"
)

// ------------------- record ids -------------------

// IDGenerator hands out millisecond timestamps that never repeat or go backwards.
type IDGenerator struct {
	mu   sync.Mutex
	last int64
	now  func() time.Time
}

// NewIDGenerator creates a generator on the wall clock.
func NewIDGenerator() *IDGenerator {
	return &IDGenerator{now: time.Now}
}

// Next returns the next id.
func (g *IDGenerator) Next() int64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	id := g.now().UnixMilli()
	if id <= g.last {
		id = g.last + 1
	}
	g.last = id
	return id
}

// ------------------- uploaded files -------------------

// FileUpload is a file selected in the capture form.
type FileUpload struct {
	Name   string
	Reader io.Reader
}

// Ext is the lower-cased extension of the original file name.
func (u *FileUpload) Ext() string {
	return strings.ToLower(filepath.Ext(u.Name))
}

// FileStore turns an upload into a dereferenceable reference.
type FileStore interface {
	Save(upload *FileUpload) (string, error)
}

// DiskFileStore writes uploads under Dir with random names and serves them
// beneath URLPrefix.
type DiskFileStore struct {
	Dir       string
	URLPrefix string
}

// NewDiskFileStore creates a store; call Prepare before the first Save.
func NewDiskFileStore(dir, urlPrefix string) *DiskFileStore {
	return &DiskFileStore{Dir: dir, URLPrefix: urlPrefix}
}

// Prepare creates the upload directory.
func (s *DiskFileStore) Prepare() error {
	if err := os.MkdirAll(s.Dir, 0750); err != nil {
		return fmt.Errorf("prepare upload dir %s: %w", s.Dir, err)
	}
	return nil
}

// Save copies the upload to disk and returns its URL path.
func (s *DiskFileStore) Save(upload *FileUpload) (string, error) {
	if upload == nil || upload.Reader == nil {
		return "", fmt.Errorf("no file to save")
	}

	name := uuid.NewString() + upload.Ext()
	dst := filepath.Join(s.Dir, name)

	f, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_EXCL, 0600) // #nosec G304
	if err != nil {
		return "", fmt.Errorf("create %s: %w", dst, err)
	}
	n, copyErr := io.Copy(f, upload.Reader)
	closeErr := f.Close()
	if copyErr != nil || closeErr != nil {
		_ = os.Remove(dst)
		if copyErr != nil {
			return "", fmt.Errorf("write %s: %w", dst, copyErr)
		}
		return "", fmt.Errorf("close %s: %w", dst, closeErr)
	}

	logger.Debug.Printf("DiskFileStore: stored %q as %s (%d bytes)", upload.Name, name, n)
	return path.Join(s.URLPrefix, name), nil
}
