package radius

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"
)

// MemoryStorage is an in-memory implementation of DocumentStorage.
// It is primarily intended for testing and development.
// All data is lost when the process terminates.
type MemoryStorage struct {
	mu        sync.RWMutex
	documents map[string][]*StoredDocument // name -> versions, newest first
	closed    bool
}

// MemoryStorageDriver is the driver for creating MemoryStorage instances.
type MemoryStorageDriver struct{}

func init() {
	RegisterStorageDriver(StorageDriverNameMemory, &MemoryStorageDriver{})
}

// Open creates a new MemoryStorage instance.
// The connection string is ignored for memory storage.
func (d *MemoryStorageDriver) Open(connectionString string) (DocumentStorage, error) {
	return NewMemoryStorage(), nil
}

// NewMemoryStorage creates a new in-memory document storage.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{
		documents: make(map[string][]*StoredDocument),
	}
}

// Get retrieves the latest version of a document by name.
func (s *MemoryStorage) Get(ctx context.Context, name string) (*StoredDocument, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, NewStorageClosedError()
	}

	versions, ok := s.documents[name]
	if !ok || len(versions) == 0 {
		return nil, NewDocumentNotFoundError(name)
	}
	return copyStoredDocument(versions[0]), nil
}

// GetVersion retrieves a specific version of a document.
func (s *MemoryStorage) GetVersion(ctx context.Context, name string, version int) (*StoredDocument, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, NewStorageClosedError()
	}

	for _, doc := range s.documents[name] {
		if doc.Version == version {
			return copyStoredDocument(doc), nil
		}
	}
	return nil, NewVersionNotFoundError(name, version)
}

// Save stores a document, creating a new version if one exists.
func (s *MemoryStorage) Save(ctx context.Context, doc *StoredDocument) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if doc.Name == "" {
		return &StorageError{Message: ErrMsgInvalidDocumentName}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return NewStorageClosedError()
	}

	versions := s.documents[doc.Name]
	nextVersion := 1
	if len(versions) > 0 {
		nextVersion = versions[0].Version + 1
	}

	now := time.Now()
	stored := &StoredDocument{
		ID:        generateDocumentID(),
		Name:      doc.Name,
		Source:    doc.Source,
		Version:   nextVersion,
		Metadata:  copyStringMap(doc.Metadata),
		CreatedAt: now,
		UpdatedAt: now,
	}

	s.documents[doc.Name] = append([]*StoredDocument{stored}, versions...)

	doc.ID = stored.ID
	doc.Version = stored.Version
	doc.CreatedAt = stored.CreatedAt
	doc.UpdatedAt = stored.UpdatedAt
	return nil
}

// Delete removes all versions of a document.
func (s *MemoryStorage) Delete(ctx context.Context, name string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return NewStorageClosedError()
	}

	if _, ok := s.documents[name]; !ok {
		return NewDocumentNotFoundError(name)
	}
	delete(s.documents, name)
	return nil
}

// List returns the latest version of each document whose name has prefix.
func (s *MemoryStorage) List(ctx context.Context, prefix string) ([]*StoredDocument, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, NewStorageClosedError()
	}

	results := make([]*StoredDocument, 0, len(s.documents))
	for name, versions := range s.documents {
		if len(versions) == 0 || !strings.HasPrefix(name, prefix) {
			continue
		}
		results = append(results, copyStoredDocument(versions[0]))
	}
	sort.Slice(results, func(i, j int) bool {
		return results[i].Name < results[j].Name
	})
	return results, nil
}

// Exists checks if a document with the given name exists.
func (s *MemoryStorage) Exists(ctx context.Context, name string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return false, NewStorageClosedError()
	}

	versions, ok := s.documents[name]
	return ok && len(versions) > 0, nil
}

// ListVersions returns all version numbers of a document, newest first.
func (s *MemoryStorage) ListVersions(ctx context.Context, name string) ([]int, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, NewStorageClosedError()
	}

	versions := s.documents[name]
	result := make([]int, 0, len(versions))
	for _, doc := range versions {
		result = append(result, doc.Version)
	}
	return result, nil
}

// Close marks the storage as closed.
func (s *MemoryStorage) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.closed = true
	s.documents = nil
	return nil
}
