package internal

import (
	"fmt"
	"sort"
	"sync"

	"go.uber.org/zap"
)

// Registry maps tag names to handlers.
// It is thread-safe for concurrent read/write access.
type Registry struct {
	handlers map[string]TagHandler
	mu       sync.RWMutex
	logger   *zap.Logger
}

// NewRegistry creates a new tag registry.
func NewRegistry(logger *zap.Logger) *Registry {
	if logger == nil {
		logger = zap.NewNop()
	}
	logger.Debug(LogMsgRegistryCreated)
	return &Registry{
		handlers: make(map[string]TagHandler),
		logger:   logger,
	}
}

// Register adds a handler with first-come-wins semantics: if the name is
// already taken the existing handler is kept and an error is returned.
func (r *Registry) Register(name string, handler TagHandler) error {
	if err := checkEntry(name, handler); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.handlers[name]; exists {
		r.logger.Warn(LogMsgTagCollision, zap.String(LogFieldTagName, name))
		return NewRegistryError(ErrMsgTagAlreadyExists, name)
	}

	r.handlers[name] = handler
	r.logger.Debug(LogMsgTagRegistered, zap.String(LogFieldTagName, name))
	return nil
}

// Set adds or replaces a handler.
func (r *Registry) Set(name string, handler TagHandler) error {
	if err := checkEntry(name, handler); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.handlers[name]; exists {
		r.logger.Debug(LogMsgTagRedefined, zap.String(LogFieldTagName, name))
	} else {
		r.logger.Debug(LogMsgTagRegistered, zap.String(LogFieldTagName, name))
	}
	r.handlers[name] = handler
	return nil
}

// Get retrieves a handler by tag name.
func (r *Registry) Get(name string) (TagHandler, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	handler, exists := r.handlers[name]
	return handler, exists
}

// Has checks if a handler is registered for the given tag name.
func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, exists := r.handlers[name]
	return exists
}

// List returns all registered tag names in sorted order.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.handlers))
	for name := range r.handlers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Count returns the number of registered handlers.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.handlers)
}

// Clone returns an independent copy. Later changes to either registry do not
// affect the other.
func (r *Registry) Clone() *Registry {
	r.mu.RLock()
	defer r.mu.RUnlock()

	handlers := make(map[string]TagHandler, len(r.handlers))
	for name, handler := range r.handlers {
		handlers[name] = handler
	}
	r.logger.Debug(LogMsgRegistryOverlayed, zap.Int(LogFieldTags, len(handlers)))
	return &Registry{
		handlers: handlers,
		logger:   r.logger,
	}
}

func checkEntry(name string, handler TagHandler) error {
	if handler == nil {
		return NewRegistryError(ErrMsgNilHandler, name)
	}
	if name == StringValueEmpty {
		return NewRegistryError(ErrMsgEmptyTagName, StringValueEmpty)
	}
	if !IsValidTagName(name) {
		return NewRegistryError(ErrMsgInvalidTagName, name)
	}
	return nil
}

// RegistryError represents a registry operation error
type RegistryError struct {
	Message string
	TagName string
}

// NewRegistryError creates a new registry error
func NewRegistryError(message, tagName string) *RegistryError {
	return &RegistryError{
		Message: message,
		TagName: tagName,
	}
}

// Error implements the error interface
func (e *RegistryError) Error() string {
	if e.TagName != StringValueEmpty {
		return fmt.Sprintf(ErrFmtTagMessage, e.Message, e.TagName)
	}
	return e.Message
}

// Registry error message constants
const (
	ErrMsgNilHandler       = "tag handler cannot be nil"
	ErrMsgEmptyTagName     = "tag name cannot be empty"
	ErrMsgInvalidTagName   = "tag name must contain only letters, digits and underscores"
	ErrMsgTagAlreadyExists = "tag already registered"
)
