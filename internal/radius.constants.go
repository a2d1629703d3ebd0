package internal

// DefaultPrefix is the tag namespace used when none is configured.
const DefaultPrefix = "radius"

// Pattern fragments. Tag and attribute names are word characters only.
const (
	// {prefix} is replaced with the regexp-quoted prefix before compiling.
	patternPrefixPlaceholder = "{prefix}"

	// Start tag: attribute text may contain quoted values holding "/" or ">",
	// but an unquoted "/" ends the match so self-closing tags never qualify.
	patternStartTag = `<{prefix}:(\w+)(?:\s+((?:[^/>"']|"[^"]*"|'[^']*')*?))?\s*>`
	patternEndTag   = `</{prefix}:(\w+)\s*>`

	// Self-closing tags need at least one whitespace character after the name.
	patternSelfClosingTag = `<{prefix}:(\w+)\s+(.*?)\s*/>`

	patternAttribute = `(\w+)\s*=\s*(?:"([^"]*)"|'([^']*)')`
	patternTagName   = `^\w+$`
)

// Submatch group indexes for the combined marker pattern.
const (
	groupStartName  = 1
	groupStartAttrs = 2
	groupEndName    = 3
)

// Submatch group indexes for the self-closing pattern.
const (
	groupSelfName  = 1
	groupSelfAttrs = 2
)

// Submatch group indexes for the attribute pattern.
const (
	groupAttrName         = 1
	groupAttrDoubleQuoted = 2
	groupAttrSingleQuoted = 3
)

// Log message constants
const (
	LogMsgBuilderCreated    = "builder created"
	LogMsgScanStart         = "starting tag scan"
	LogMsgScanEnd           = "tag scan complete"
	LogMsgEvaluateStart     = "starting evaluation"
	LogMsgEvaluateEnd       = "evaluation complete"
	LogMsgPatternsCompiled  = "tag patterns compiled"
	LogMsgRegistryCreated   = "tag registry created"
	LogMsgTagRegistered     = "tag registered"
	LogMsgTagRedefined      = "tag redefined"
	LogMsgTagCollision      = "tag already registered, keeping first"
	LogMsgRegistryOverlayed = "tag registry overlay created"
)

// Log field constants
const (
	LogFieldPrefix   = "prefix"
	LogFieldSource   = "source_length"
	LogFieldSegments = "segments"
	LogFieldMaxDepth = "max_depth"
	LogFieldNodes    = "nodes"
	LogFieldOutput   = "output_length"
	LogFieldTagName  = "tag_name"
	LogFieldTags     = "tags"
)

// Display constants for node String() output
const (
	MaxStringDisplayLength = 40
	TruncatedStringLength  = 37
	TruncationSuffix       = "..."
	FmtEmptyBraces         = "{}"
	FmtOpenBrace           = "{"
	FmtCloseBrace          = "}"
	FmtKeyValueSep         = "="
	FmtCommaSep            = ", "
)

// StringValueEmpty is the empty string constant.
const StringValueEmpty = ""
