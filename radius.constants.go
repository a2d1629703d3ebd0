package radius

import (
	"os"
	"time"

	"github.com/itsatony/go-radius/internal"
)

// Default configuration values
const (
	// DefaultPrefix is the tag namespace: <radius:name ...>
	DefaultPrefix = internal.DefaultPrefix

	// DefaultMaxSnippetDepth bounds snippet-in-snippet expansion
	DefaultMaxSnippetDepth = 16
)

// Built-in tag names installed by Engine.Render when storage is configured
const (
	TagNameSnippet = "snippet"
	TagNameYield   = "yield"
)

// Attribute names used by built-in tags
const (
	AttrName = "name"
)

// Error codes for categorization
const (
	ErrCodeParse      = "RADIUS_PARSE"
	ErrCodeRender     = "RADIUS_RENDER"
	ErrCodeRegistry   = "RADIUS_REGISTRY"
	ErrCodeDefinition = "RADIUS_DEFINITION"
	ErrCodeStorage    = "RADIUS_STORAGE"
)

// Error kinds stored under MetaKeyKind
const (
	ErrKindUnclosedTag     = "unclosed_tag"
	ErrKindMismatchedTag   = "mismatched_tag"
	ErrKindUnrecognizedTag = "unrecognized_tag"
)

// Metadata keys for cuserr.WithMetadata
const (
	MetaKeyKind     = "kind"
	MetaKeyTag      = "tag"
	MetaKeyExpected = "expected"
	MetaKeyActual   = "actual"
	MetaKeyName     = "name"
	MetaKeyDepth    = "depth"
)

// Log message constants
const (
	LogMsgEngineCreated      = "engine created"
	LogMsgContextCreated     = "tag context created"
	LogMsgParseStart         = "starting parse"
	LogMsgParseEnd           = "parse complete"
	LogMsgDefinitionsLoaded  = "tag definitions loaded"
	LogMsgRenderStart        = "rendering stored document"
	LogMsgSnippetExpand      = "expanding snippet"
	LogMsgDocumentSaved      = "document saved"
	LogMsgStorageDriverOpen  = "opening storage driver"
	LogMsgPostgresMigrations = "applying postgres migrations"
)

// Log field constants
const (
	LogFieldPrefix  = "prefix"
	LogFieldSource  = "source_length"
	LogFieldOutput  = "output_length"
	LogFieldTags    = "tags"
	LogFieldName    = "name"
	LogFieldVersion = "version"
	LogFieldDepth   = "depth"
	LogFieldDriver  = "driver"
	LogFieldStorage = "storage"
)

// Storage driver names
const (
	StorageDriverNameMemory     = "memory"
	StorageDriverNameFilesystem = "filesystem"
	StorageDriverNamePostgres   = "postgres"
)

// Storage constants
const (
	DocumentIDPrefix = "doc_"
	DocumentIDBytes  = 12

	FilesystemVersionPrefix   = "v"
	FilesystemVersionSuffix   = ".json"
	FilesystemDirPermissions  = os.FileMode(0o755)
	FilesystemFilePermissions = os.FileMode(0o644)
	FilesystemPathTraversal   = ".."
	FilesystemInvalidChars    = "/\\:*?\"<>|"

	PostgresDriverName             = "postgres"
	PostgresTablePrefix            = "radius_"
	PostgresDefaultMaxOpenConns    = 25
	PostgresDefaultMaxIdleConns    = 5
	PostgresDefaultConnMaxLifetime = 5 * time.Minute
	PostgresDefaultConnMaxIdleTime = 5 * time.Minute
	PostgresDefaultQueryTimeout    = 30 * time.Second
)

// Cache defaults
const (
	DefaultCacheTTL         = 5 * time.Minute
	DefaultCacheMaxEntries  = 1000
	DefaultCacheNegativeTTL = 30 * time.Second
)

// Definition file constants
const (
	DefinitionContentKey       = "content"
	DefinitionPlaceholderStart = "{"
	DefinitionPlaceholderEnd   = "}"
)

// Format constants
const (
	ErrFmtNamed = "%s: %s"
	FmtJSONNull = "null"
)
