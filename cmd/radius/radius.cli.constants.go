package main

// Command names
const (
	CmdNameRender   = "render"
	CmdNameValidate = "validate"
	CmdNameTags     = "tags"
	CmdNameVersion  = "version"
	CmdNameHelp     = "help"
)

// Flag names - long form
const (
	FlagTemplate    = "template"
	FlagPrefix      = "prefix"
	FlagDefinitions = "definitions"
	FlagStore       = "store"
	FlagName        = "name"
	FlagOutput      = "output"
	FlagFormat      = "format"
	FlagPassthrough = "passthrough"
	FlagVerbose     = "verbose"
)

// Flag names - short form
const (
	FlagTemplateShort    = "t"
	FlagPrefixShort      = "p"
	FlagDefinitionsShort = "D"
	FlagStoreShort       = "s"
	FlagNameShort        = "n"
	FlagOutputShort      = "o"
	FlagFormatShort      = "F"
	FlagVerboseShort     = "v"
)

// Flag default values
const (
	FlagDefaultOutput = "-" // stdout
	FlagDefaultFormat = "text"
)

// Output formats
const (
	OutputFormatText = "text"
	OutputFormatJSON = "json"
)

// Exit codes
const (
	ExitCodeSuccess         = 0
	ExitCodeError           = 1
	ExitCodeUsageError      = 2
	ExitCodeValidationError = 3
	ExitCodeInputError      = 4
)

// Input source indicators
const (
	InputSourceStdin = "-"
)

// Error messages - ALL must be constants
const (
	ErrMsgUnknownCommand    = "unknown command"
	ErrMsgMissingTemplate   = "template source required"
	ErrMsgTemplateAndName   = "use either --template or --name, not both"
	ErrMsgNameNeedsStore    = "--name requires --store"
	ErrMsgReadFileFailed    = "failed to read file"
	ErrMsgWriteOutputFailed = "failed to write output"
	ErrMsgDefinitionsFailed = "failed to load tag definitions"
	ErrMsgStorageFailed     = "failed to open document store"
	ErrMsgExpandFailed      = "expansion failed"
	ErrMsgValidationFailed  = "document is not well formed"
	ErrMsgInvalidFormat     = "invalid output format"
	ErrMsgInvalidFlags      = "invalid flags"
	ErrMsgLoggerFailed      = "failed to create logger"
	ErrMsgJSONMarshalFailed = "failed to marshal JSON"
)

// Help text templates
const (
	HelpMainUsage = `radius - Radius-style template tag expansion CLI

Usage:
    radius <command> [options]

Commands:
    render      Expand the tags in a document
    validate    Check that every tag is closed properly
    tags        List the tag names a document uses
    version     Show version information
    help        Show help for a command

Use "radius help <command>" for more information about a command.`

	HelpRenderUsage = `Expand the tags in a document

Usage:
    radius render [options]

Options:
    -t, --template <file>      Document file (use "-" for stdin)
    -p, --prefix <prefix>      Tag prefix (default: radius)
    -D, --definitions <file>   YAML tag definitions
    -s, --store <dir>          Filesystem document store (enables snippets)
    -n, --name <name>          Render a stored document instead of --template
    -o, --output <file>        Output file (default: stdout)
    -F, --format <format>      Output format: text, json (default: text)
    --passthrough              Undefined tags render their content
    -v, --verbose              Debug logging to stderr

Examples:
    radius render -t page.txt -D tags.yaml
    cat page.txt | radius render -t - -D tags.yaml -F json
    radius render -s ./docs -n home -D tags.yaml`

	HelpValidateUsage = `Check that every tag is closed properly

Usage:
    radius validate [options]

Options:
    -t, --template <file>   Document file (use "-" for stdin)
    -p, --prefix <prefix>   Tag prefix (default: radius)
    -F, --format <format>   Output format: text, json (default: text)

Examples:
    radius validate -t page.txt
    cat page.txt | radius validate -t - -F json`

	HelpTagsUsage = `List the tag names a document uses

Usage:
    radius tags [options]

Options:
    -t, --template <file>   Document file (use "-" for stdin)
    -p, --prefix <prefix>   Tag prefix (default: radius)
    -F, --format <format>   Output format: text, json (default: text)`

	HelpVersionUsage = `Show version information

Usage:
    radius version [options]

Options:
    -F, --format <format>   Output format: text, json (default: text)`

	HelpHelpUsage = `Show help for a command

Usage:
    radius help [command]

Commands:
    render      Show help for render command
    validate    Show help for validate command
    tags        Show help for tags command
    version     Show help for version command`
)

// Version output format templates
const (
	VersionTextTemplate = "go-radius version %s\nCommit: %s\nBranch: %s\nBuilt: %s\nGo: %s"
	VersionUnknown      = "unknown"
	VersionsFileName    = "versions.yaml"
)

// Validation output
const (
	ValidationTextSuccess = "Document is valid"
	ValidationTextFailure = "Document is not valid: %s"
)

// CLI metadata
const (
	CLIName        = "radius"
	CLIDescription = "Radius-style template tag expansion CLI"
)

// File permission constant
const (
	FilePermissions = 0644
)

// Format string constants
const (
	FmtErrorWithDetail = "%s: %s\n"
	FmtErrorWithCause  = "%s: %v\n"
	FmtNewline         = "\n"
	JSONIndent         = "  "
)
