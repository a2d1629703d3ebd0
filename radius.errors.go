package radius

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/itsatony/go-cuserr"

	"github.com/itsatony/go-radius/internal"
)

// Error message constants - ALL error messages must be constants (NO MAGIC STRINGS)
const (
	// Parse errors
	ErrMsgUnclosedTag   = "missing end tag"
	ErrMsgMismatchedTag = "mismatched end tag"

	// Render errors
	ErrMsgUnrecognizedTag = "undefined tag"
	ErrMsgSnippetDepth    = "snippet nesting too deep"
	ErrMsgMissingName     = "snippet requires a name attribute"
	ErrMsgNoStorage       = "engine has no document storage"

	// Registry errors
	ErrMsgRegistryFailed = "tag registration failed"

	// Definition errors
	ErrMsgDefinitionsInvalid = "invalid tag definitions"
	ErrMsgDefinitionsRead    = "failed to read tag definitions"
)

// NewUnclosedTagError reports a container still open at the end of the document.
func NewUnclosedTagError(tag string) error {
	return cuserr.NewValidationError(ErrCodeParse, fmt.Sprintf(ErrFmtNamed, ErrMsgUnclosedTag, tag)).
		WithMetadata(MetaKeyKind, ErrKindUnclosedTag).
		WithMetadata(MetaKeyTag, tag)
}

// NewMismatchedTagError reports an end tag that does not close the innermost
// open container. expected is the name of that container and is the tag the
// error is about; actual is the name written in the end tag.
func NewMismatchedTagError(expected, actual string) error {
	return cuserr.NewValidationError(ErrCodeParse, fmt.Sprintf(ErrFmtNamed, ErrMsgMismatchedTag, expected)).
		WithMetadata(MetaKeyKind, ErrKindMismatchedTag).
		WithMetadata(MetaKeyTag, expected).
		WithMetadata(MetaKeyExpected, expected).
		WithMetadata(MetaKeyActual, actual)
}

// NewUnrecognizedTagError reports a tag name with no handler.
func NewUnrecognizedTagError(tag string) error {
	return cuserr.NewNotFoundError(MetaKeyTag, fmt.Sprintf(ErrFmtNamed, ErrMsgUnrecognizedTag, tag)).
		WithMetadata(MetaKeyKind, ErrKindUnrecognizedTag).
		WithMetadata(MetaKeyTag, tag)
}

// NewRegistryError wraps a failed tag registration.
func NewRegistryError(tag string, cause error) error {
	return cuserr.WrapStdError(cause, ErrCodeRegistry, ErrMsgRegistryFailed).
		WithMetadata(MetaKeyTag, tag)
}

// NewDefinitionError reports an unusable tag definition document.
func NewDefinitionError(msg string, cause error) error {
	if cause == nil {
		return cuserr.NewValidationError(ErrCodeDefinition, msg)
	}
	return cuserr.WrapStdError(cause, ErrCodeDefinition, msg)
}

// NewSnippetDepthError reports runaway snippet nesting.
func NewSnippetDepthError(name string, depth int) error {
	return cuserr.NewValidationError(ErrCodeRender, fmt.Sprintf(ErrFmtNamed, ErrMsgSnippetDepth, name)).
		WithMetadata(MetaKeyName, name).
		WithMetadata(MetaKeyDepth, strconv.Itoa(depth))
}

// NewMissingNameError reports a snippet tag without a name attribute.
func NewMissingNameError(tag string) error {
	return cuserr.NewValidationError(ErrCodeRender, ErrMsgMissingName).
		WithMetadata(MetaKeyTag, tag)
}

// NewNoStorageError reports a storage-backed call on an engine without storage.
func NewNoStorageError() error {
	return cuserr.NewValidationError(ErrCodeStorage, ErrMsgNoStorage)
}

// IsUnclosedTagError reports whether err is a missing end tag error.
func IsUnclosedTagError(err error) bool {
	return hasKind(err, ErrKindUnclosedTag)
}

// IsMismatchedTagError reports whether err is a mismatched end tag error.
func IsMismatchedTagError(err error) bool {
	return hasKind(err, ErrKindMismatchedTag)
}

// IsUnrecognizedTagError reports whether err is an undefined tag error.
func IsUnrecognizedTagError(err error) bool {
	return hasKind(err, ErrKindUnrecognizedTag)
}

// ErrorTag returns the tag name carried by err, if any.
func ErrorTag(err error) (string, bool) {
	var customErr *cuserr.CustomError
	if !errors.As(err, &customErr) {
		return "", false
	}
	return customErr.GetMetadata(MetaKeyTag)
}

func hasKind(err error, kind string) bool {
	var customErr *cuserr.CustomError
	if !errors.As(err, &customErr) {
		return false
	}
	got, ok := customErr.GetMetadata(MetaKeyKind)
	return ok && got == kind
}

// translateError converts errors raised by the internal engine into public
// errors. Anything else, including resolver errors, is returned unchanged.
func translateError(err error) error {
	if tagErr, ok := err.(*internal.TagError); ok {
		switch tagErr.Kind {
		case internal.TagErrorUnclosed:
			return NewUnclosedTagError(tagErr.Tag)
		case internal.TagErrorMismatched:
			return NewMismatchedTagError(tagErr.Tag, tagErr.EndTag)
		}
	}
	return err
}
