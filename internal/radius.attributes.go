package internal

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
)

var attributePattern = regexp.MustCompile(patternAttribute)

// Attributes is a map of tag attribute key-value pairs
type Attributes map[string]string

// Get retrieves an attribute value, returning ok=false if not found
func (a Attributes) Get(key string) (string, bool) {
	if a == nil {
		return "", false
	}
	val, ok := a[key]
	return val, ok
}

// GetDefault retrieves an attribute value with a default fallback
func (a Attributes) GetDefault(key, defaultVal string) string {
	if val, ok := a.Get(key); ok {
		return val
	}
	return defaultVal
}

// Has checks if an attribute exists
func (a Attributes) Has(key string) bool {
	_, ok := a.Get(key)
	return ok
}

// Keys returns all attribute keys in sorted order
func (a Attributes) Keys() []string {
	if a == nil {
		return nil
	}
	keys := make([]string, 0, len(a))
	for k := range a {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Map returns a copy of the underlying map
func (a Attributes) Map() map[string]string {
	result := make(map[string]string, len(a))
	for k, v := range a {
		result[k] = v
	}
	return result
}

// String returns a string representation of the attributes
func (a Attributes) String() string {
	if len(a) == 0 {
		return FmtEmptyBraces
	}
	keys := a.Keys()
	pairs := make([]string, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, k+FmtKeyValueSep+fmt.Sprintf("%q", a[k]))
	}
	return FmtOpenBrace + strings.Join(pairs, FmtCommaSep) + FmtCloseBrace
}

// ParseAttributes lexes a raw attribute fragment such as
// `name="v1" other='v2'` into Attributes.
//
// Values run to the next occurrence of the quote that opened them; there is
// no escaping. A later duplicate key overwrites an earlier one. Text that does
// not form a complete pair is skipped, so malformed fragments never fail.
func ParseAttributes(text string) Attributes {
	attrs := make(Attributes)
	for _, m := range attributePattern.FindAllStringSubmatchIndex(text, -1) {
		name := text[m[2*groupAttrName]:m[2*groupAttrName+1]]
		if m[2*groupAttrDoubleQuoted] >= 0 {
			attrs[name] = text[m[2*groupAttrDoubleQuoted]:m[2*groupAttrDoubleQuoted+1]]
		} else {
			attrs[name] = text[m[2*groupAttrSingleQuoted]:m[2*groupAttrSingleQuoted+1]]
		}
	}
	return attrs
}
