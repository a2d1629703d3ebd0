package radius

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	json "github.com/goccy/go-json"
)

// FilesystemStorage stores documents as JSON files, one file per version.
//
// Directory structure:
//
//	<root>/
//	  <document-name>/
//	    v1.json
//	    v2.json
//	    ...
type FilesystemStorage struct {
	mu     sync.RWMutex
	root   string
	closed bool
}

// FilesystemStorageDriver is the driver for creating FilesystemStorage instances.
type FilesystemStorageDriver struct{}

func init() {
	RegisterStorageDriver(StorageDriverNameFilesystem, &FilesystemStorageDriver{})
}

// Open creates a new FilesystemStorage instance.
// The connection string is the root directory path.
func (d *FilesystemStorageDriver) Open(connectionString string) (DocumentStorage, error) {
	return NewFilesystemStorage(connectionString)
}

// NewFilesystemStorage creates a filesystem-backed document storage.
// The root directory is created if it doesn't exist.
func NewFilesystemStorage(root string) (*FilesystemStorage, error) {
	if root == "" {
		return nil, &StorageError{Message: ErrMsgInvalidStorageRoot}
	}

	if err := os.MkdirAll(root, FilesystemDirPermissions); err != nil {
		return nil, &StorageError{Message: ErrMsgCreateStorageDir, Name: root, Cause: err}
	}

	return &FilesystemStorage{root: root}, nil
}

// Root returns the storage root directory.
func (s *FilesystemStorage) Root() string {
	return s.root
}

// Get retrieves the latest version of a document by name.
func (s *FilesystemStorage) Get(ctx context.Context, name string) (*StoredDocument, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := validateDocumentName(name); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, NewStorageClosedError()
	}

	versions, err := s.versions(name)
	if err != nil {
		return nil, err
	}
	if len(versions) == 0 {
		return nil, NewDocumentNotFoundError(name)
	}
	return s.load(name, versions[0])
}

// GetVersion retrieves a specific version of a document.
func (s *FilesystemStorage) GetVersion(ctx context.Context, name string, version int) (*StoredDocument, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := validateDocumentName(name); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, NewStorageClosedError()
	}
	return s.load(name, version)
}

// Save writes doc as the next version of its name.
func (s *FilesystemStorage) Save(ctx context.Context, doc *StoredDocument) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := validateDocumentName(doc.Name); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return NewStorageClosedError()
	}

	dir := filepath.Join(s.root, doc.Name)
	if err := os.MkdirAll(dir, FilesystemDirPermissions); err != nil {
		return &StorageError{Message: ErrMsgCreateStorageDir, Name: dir, Cause: err}
	}

	versions, err := s.versions(doc.Name)
	if err != nil {
		return err
	}
	nextVersion := 1
	if len(versions) > 0 {
		nextVersion = versions[0] + 1
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

	data, err := json.MarshalIndent(stored, "", "  ")
	if err != nil {
		return &StorageError{Message: ErrMsgMarshalDocument, Name: doc.Name, Cause: err}
	}

	filename := s.path(doc.Name, nextVersion)
	if err := os.WriteFile(filename, data, FilesystemFilePermissions); err != nil {
		return &StorageError{Message: ErrMsgWriteDocument, Name: filename, Cause: err}
	}

	doc.ID = stored.ID
	doc.Version = stored.Version
	doc.CreatedAt = stored.CreatedAt
	doc.UpdatedAt = stored.UpdatedAt
	return nil
}

// Delete removes all versions of a document.
func (s *FilesystemStorage) Delete(ctx context.Context, name string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := validateDocumentName(name); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return NewStorageClosedError()
	}

	dir := filepath.Join(s.root, name)
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return NewDocumentNotFoundError(name)
	}
	if err := os.RemoveAll(dir); err != nil {
		return &StorageError{Message: ErrMsgDeleteDocument, Name: name, Cause: err}
	}
	return nil
}

// List returns the latest version of each document whose name has prefix.
func (s *FilesystemStorage) List(ctx context.Context, prefix string) ([]*StoredDocument, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, NewStorageClosedError()
	}

	entries, err := os.ReadDir(s.root)
	if err != nil {
		return nil, &StorageError{Message: ErrMsgListDocuments, Name: s.root, Cause: err}
	}

	results := make([]*StoredDocument, 0, len(entries))
	for _, entry := range entries {
		name := entry.Name()
		if !entry.IsDir() || !strings.HasPrefix(name, prefix) {
			continue
		}
		versions, err := s.versions(name)
		if err != nil || len(versions) == 0 {
			continue
		}
		doc, err := s.load(name, versions[0])
		if err != nil {
			continue
		}
		results = append(results, doc)
	}

	sort.Slice(results, func(i, j int) bool {
		return results[i].Name < results[j].Name
	})
	return results, nil
}

// Exists checks if a document with the given name exists.
func (s *FilesystemStorage) Exists(ctx context.Context, name string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	if err := validateDocumentName(name); err != nil {
		return false, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return false, NewStorageClosedError()
	}

	versions, err := s.versions(name)
	if err != nil {
		return false, err
	}
	return len(versions) > 0, nil
}

// ListVersions returns all version numbers of a document, newest first.
func (s *FilesystemStorage) ListVersions(ctx context.Context, name string) ([]int, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := validateDocumentName(name); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, NewStorageClosedError()
	}
	return s.versions(name)
}

// Close marks the storage as closed.
func (s *FilesystemStorage) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.closed = true
	return nil
}

func (s *FilesystemStorage) path(name string, version int) string {
	return filepath.Join(s.root, name, FilesystemVersionPrefix+strconv.Itoa(version)+FilesystemVersionSuffix)
}

// versions lists version numbers for name, newest first. Caller holds the lock.
func (s *FilesystemStorage) versions(name string) ([]int, error) {
	entries, err := os.ReadDir(filepath.Join(s.root, name))
	if err != nil {
		if os.IsNotExist(err) {
			return []int{}, nil
		}
		return nil, &StorageError{Message: ErrMsgReadDocument, Name: name, Cause: err}
	}

	versions := make([]int, 0, len(entries))
	for _, entry := range entries {
		filename := entry.Name()
		if entry.IsDir() ||
			!strings.HasPrefix(filename, FilesystemVersionPrefix) ||
			!strings.HasSuffix(filename, FilesystemVersionSuffix) {
			continue
		}
		digits := strings.TrimSuffix(strings.TrimPrefix(filename, FilesystemVersionPrefix), FilesystemVersionSuffix)
		version, err := strconv.Atoi(digits)
		if err != nil || version <= 0 {
			continue
		}
		versions = append(versions, version)
	}

	sort.Sort(sort.Reverse(sort.IntSlice(versions)))
	return versions, nil
}

func (s *FilesystemStorage) load(name string, version int) (*StoredDocument, error) {
	filename := s.path(name, version)
	data, err := os.ReadFile(filename)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, NewVersionNotFoundError(name, version)
		}
		return nil, &StorageError{Message: ErrMsgReadDocument, Name: filename, Cause: err}
	}

	var doc StoredDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, &StorageError{Message: ErrMsgUnmarshalDocument, Name: filename, Cause: err}
	}
	return &doc, nil
}

// validateDocumentName rejects names that would escape the storage root.
func validateDocumentName(name string) error {
	if name == "" {
		return &StorageError{Message: ErrMsgInvalidDocumentName}
	}
	if strings.Contains(name, FilesystemPathTraversal) {
		return &StorageError{Message: ErrMsgPathTraversalDetected, Name: name}
	}
	if strings.ContainsAny(name, FilesystemInvalidChars) {
		return &StorageError{Message: ErrMsgInvalidDocumentName, Name: name}
	}
	return nil
}
