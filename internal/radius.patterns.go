package internal

import (
	"regexp"
	"strings"
	"sync"

	"go.uber.org/zap"
)

var tagNamePattern = regexp.MustCompile(patternTagName)

// IsValidTagName reports whether name is usable as a tag name.
func IsValidTagName(name string) bool {
	return tagNamePattern.MatchString(name)
}

// Patterns holds the compiled expressions for one tag prefix.
type Patterns struct {
	Prefix string
	// Marker matches either a start tag or an end tag, leftmost first.
	Marker *regexp.Regexp
	// SelfClosing matches a self-closing tag inside literal text.
	SelfClosing *regexp.Regexp
}

var (
	patternCacheMu sync.RWMutex
	patternCache   = make(map[string]*Patterns)
)

// PatternsFor returns the compiled patterns for prefix, compiling and caching
// them on first use. The prefix is matched literally.
func PatternsFor(prefix string, logger *zap.Logger) *Patterns {
	patternCacheMu.RLock()
	p, ok := patternCache[prefix]
	patternCacheMu.RUnlock()
	if ok {
		return p
	}

	if logger == nil {
		logger = zap.NewNop()
	}

	quoted := regexp.QuoteMeta(prefix)
	expand := func(pattern string) string {
		return strings.ReplaceAll(pattern, patternPrefixPlaceholder, quoted)
	}

	p = &Patterns{
		Prefix:      prefix,
		Marker:      regexp.MustCompile(expand(patternStartTag) + "|" + expand(patternEndTag)),
		SelfClosing: regexp.MustCompile(expand(patternSelfClosingTag)),
	}

	patternCacheMu.Lock()
	if existing, ok := patternCache[prefix]; ok {
		p = existing
	} else {
		patternCache[prefix] = p
		logger.Debug(LogMsgPatternsCompiled, zap.String(LogFieldPrefix, prefix))
	}
	patternCacheMu.Unlock()

	return p
}
