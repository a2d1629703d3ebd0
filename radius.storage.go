package radius

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"sort"
	"strconv"
	"sync"
	"time"
)

// DocumentID is a unique identifier for a stored document version.
// Uses prefixed random format (e.g., "doc_6ByTSYmGzT2cQx1a").
type DocumentID string

// StoredDocument is a radius document kept in a storage backend.
type StoredDocument struct {
	// ID is the unique identifier for this document version.
	ID DocumentID `json:"id"`

	// Name is the document name used for lookups and by snippet tags.
	Name string `json:"name"`

	// Source is the raw, unexpanded document text.
	Source string `json:"source"`

	// Version is the version number (1, 2, 3, ...). Higher is newer.
	Version int `json:"version"`

	// Metadata contains arbitrary key-value pairs.
	Metadata map[string]string `json:"metadata,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// DocumentStorage is the interface for pluggable storage backends.
// Implementations must be safe for concurrent use.
type DocumentStorage interface {
	// Get retrieves the latest version of a document by name.
	// Returns an error matching ErrDocumentNotFound if it doesn't exist.
	Get(ctx context.Context, name string) (*StoredDocument, error)

	// GetVersion retrieves a specific version of a document.
	GetVersion(ctx context.Context, name string, version int) (*StoredDocument, error)

	// Save stores a document. If one with the same name exists a new version
	// is created. ID, Version, CreatedAt and UpdatedAt are set on doc.
	Save(ctx context.Context, doc *StoredDocument) error

	// Delete removes all versions of a document.
	Delete(ctx context.Context, name string) error

	// List returns the latest version of every document whose name starts
	// with prefix, ordered by name. An empty prefix lists everything.
	List(ctx context.Context, prefix string) ([]*StoredDocument, error)

	// Exists checks if a document with the given name exists.
	Exists(ctx context.Context, name string) (bool, error)

	// ListVersions returns all version numbers of a document, newest first.
	ListVersions(ctx context.Context, name string) ([]int, error)

	// Close releases any resources held by the storage.
	Close() error
}

// StorageDriver is a factory for creating storage instances.
// Drivers register themselves during init().
type StorageDriver interface {
	// Open creates a new storage instance. The connection string format is
	// driver-specific.
	Open(connectionString string) (DocumentStorage, error)
}

// Storage driver registry
var (
	storageDriversMu sync.RWMutex
	storageDrivers   = make(map[string]StorageDriver)
)

// RegisterStorageDriver registers a storage driver by name.
// Panics if a driver with the same name is already registered.
func RegisterStorageDriver(name string, driver StorageDriver) {
	storageDriversMu.Lock()
	defer storageDriversMu.Unlock()

	if driver == nil {
		panic(ErrMsgNilStorageDriver)
	}
	if _, exists := storageDrivers[name]; exists {
		panic(ErrMsgDriverAlreadyRegistered + ": " + name)
	}
	storageDrivers[name] = driver
}

// OpenStorage opens a storage connection using the named driver.
//
//	storage, err := radius.OpenStorage("memory", "")
//	storage, err := radius.OpenStorage("filesystem", "/var/lib/radius")
//	storage, err := radius.OpenStorage("postgres", "postgres://...")
func OpenStorage(driverName, connectionString string) (DocumentStorage, error) {
	storageDriversMu.RLock()
	driver, ok := storageDrivers[driverName]
	storageDriversMu.RUnlock()

	if !ok {
		return nil, &StorageError{Message: ErrMsgStorageDriverNotFound, Name: driverName}
	}

	return driver.Open(connectionString)
}

// ListStorageDrivers returns the names of all registered storage drivers, sorted.
func ListStorageDrivers() []string {
	storageDriversMu.RLock()
	defer storageDriversMu.RUnlock()

	names := make([]string, 0, len(storageDrivers))
	for name := range storageDrivers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ErrDocumentNotFound is matched by errors.Is for missing documents and versions.
var ErrDocumentNotFound = errors.New(ErrMsgDocumentNotFound)

// Storage error message constants
const (
	ErrMsgNilStorageDriver        = "storage driver is nil"
	ErrMsgDriverAlreadyRegistered = "storage driver already registered"
	ErrMsgStorageDriverNotFound   = "storage driver not found"
	ErrMsgStorageClosed           = "storage is closed"
	ErrMsgDocumentNotFound        = "document not found"
	ErrMsgVersionNotFound         = "document version not found"
	ErrMsgInvalidDocumentName     = "invalid document name"
	ErrMsgPathTraversalDetected   = "path traversal detected in document name"
	ErrMsgInvalidStorageRoot      = "storage root directory cannot be empty"
	ErrMsgCreateStorageDir        = "failed to create storage directory"
	ErrMsgMarshalDocument         = "failed to marshal document"
	ErrMsgUnmarshalDocument       = "failed to unmarshal document"
	ErrMsgReadDocument            = "failed to read document file"
	ErrMsgWriteDocument           = "failed to write document file"
	ErrMsgDeleteDocument          = "failed to delete document"
	ErrMsgListDocuments           = "failed to list documents"
)

// StorageError represents a storage-related error.
type StorageError struct {
	Message string
	Name    string
	Version int
	Cause   error
}

// Error implements the error interface.
func (e *StorageError) Error() string {
	msg := e.Message
	if e.Name != "" && e.Version > 0 {
		msg += ": " + e.Name + " v" + strconv.Itoa(e.Version)
	} else if e.Name != "" {
		msg += ": " + e.Name
	}
	if e.Cause != nil && !errors.Is(e.Cause, ErrDocumentNotFound) {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause.
func (e *StorageError) Unwrap() error {
	return e.Cause
}

// NewDocumentNotFoundError creates an error for a missing document.
func NewDocumentNotFoundError(name string) error {
	return &StorageError{
		Message: ErrMsgDocumentNotFound,
		Name:    name,
		Cause:   ErrDocumentNotFound,
	}
}

// NewVersionNotFoundError creates an error for a missing document version.
func NewVersionNotFoundError(name string, version int) error {
	return &StorageError{
		Message: ErrMsgVersionNotFound,
		Name:    name,
		Version: version,
		Cause:   ErrDocumentNotFound,
	}
}

// NewStorageClosedError creates an error for operations on closed storage.
func NewStorageClosedError() error {
	return &StorageError{Message: ErrMsgStorageClosed}
}

// generateDocumentID creates a new random document ID.
func generateDocumentID() DocumentID {
	b := make([]byte, DocumentIDBytes)
	_, _ = rand.Read(b)
	return DocumentID(DocumentIDPrefix + base64.RawURLEncoding.EncodeToString(b))
}

// copyStoredDocument creates a deep copy of a StoredDocument.
func copyStoredDocument(doc *StoredDocument) *StoredDocument {
	if doc == nil {
		return nil
	}
	return &StoredDocument{
		ID:        doc.ID,
		Name:      doc.Name,
		Source:    doc.Source,
		Version:   doc.Version,
		Metadata:  copyStringMap(doc.Metadata),
		CreatedAt: doc.CreatedAt,
		UpdatedAt: doc.UpdatedAt,
	}
}

// copyStringMap creates a shallow copy of a string map.
func copyStringMap(m map[string]string) map[string]string {
	if m == nil {
		return nil
	}
	result := make(map[string]string, len(m))
	for k, v := range m {
		result[k] = v
	}
	return result
}
