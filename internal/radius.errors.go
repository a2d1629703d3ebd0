package internal

import (
	"fmt"
)

// TagErrorKind classifies structural tag errors
type TagErrorKind string

// Tag error kinds
const (
	TagErrorUnclosed   TagErrorKind = "unclosed_tag"
	TagErrorMismatched TagErrorKind = "mismatched_tag"
)

// Error message constants
const (
	ErrMsgUnclosedTag   = "missing end tag"
	ErrMsgMismatchedTag = "mismatched end tag"
	ErrFmtTagMessage    = "%s: %s"
	ErrFmtMismatched    = "%s: %s closed by %s"
)

// TagError reports a structural pairing failure.
//
// Tag is the name of the container that failed to close: the innermost open
// container for TagErrorUnclosed, the popped container for
// TagErrorMismatched. EndTag is the name written in the offending end tag and
// is only set for TagErrorMismatched.
type TagError struct {
	Kind   TagErrorKind
	Tag    string
	EndTag string
}

// Error implements the error interface
func (e *TagError) Error() string {
	if e.Kind == TagErrorMismatched {
		return fmt.Sprintf(ErrFmtMismatched, ErrMsgMismatchedTag, e.Tag, e.EndTag)
	}
	return fmt.Sprintf(ErrFmtTagMessage, ErrMsgUnclosedTag, e.Tag)
}

func newUnclosedTagError(tag string) *TagError {
	return &TagError{Kind: TagErrorUnclosed, Tag: tag}
}

func newMismatchedTagError(popped, endTag string) *TagError {
	return &TagError{Kind: TagErrorMismatched, Tag: popped, EndTag: endTag}
}
