package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"

	"github.com/itsatony/go-radius"
)

// renderConfig holds parsed render command configuration
type renderConfig struct {
	templatePath    string
	prefix          string
	definitionsPath string
	storeDir        string
	name            string
	outputPath      string
	format          string
	passthrough     bool
	verbose         bool
}

// renderOutput represents JSON output for render
type renderOutput struct {
	Output string   `json:"output"`
	Tags   []string `json:"tags"`
}

func runRender(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	cfg, err := parseRenderFlags(args)
	if err != nil {
		fmt.Fprintf(stderr, FmtErrorWithCause, ErrMsgInvalidFlags, err)
		return ExitCodeUsageError
	}

	logger, err := newLogger(cfg.verbose)
	if err != nil {
		fmt.Fprintf(stderr, FmtErrorWithCause, ErrMsgLoggerFailed, err)
		return ExitCodeError
	}
	defer func() { _ = logger.Sync() }()

	opts := []radius.Option{
		radius.WithPrefix(cfg.prefix),
		radius.WithLogger(logger),
	}
	if cfg.passthrough {
		opts = append(opts, radius.WithMissingTag(passthroughTag))
	}

	if cfg.definitionsPath != "" {
		defs, err := os.Open(cfg.definitionsPath)
		if err != nil {
			fmt.Fprintf(stderr, FmtErrorWithCause, ErrMsgReadFileFailed, err)
			return ExitCodeInputError
		}
		defer defs.Close()
		opts = append(opts, radius.WithDefinitions(defs))
	}

	if cfg.storeDir != "" {
		logger.Debug(radius.LogMsgStorageDriverOpen,
			zap.String(radius.LogFieldDriver, radius.StorageDriverNameFilesystem))
		storage, err := radius.OpenStorage(radius.StorageDriverNameFilesystem, cfg.storeDir)
		if err != nil {
			fmt.Fprintf(stderr, FmtErrorWithCause, ErrMsgStorageFailed, err)
			return ExitCodeInputError
		}
		cached := radius.NewCachedStorage(storage, radius.DefaultCacheConfig())
		opts = append(opts, radius.WithStorage(cached))
	}

	engine, err := radius.New(opts...)
	if err != nil {
		fmt.Fprintf(stderr, FmtErrorWithCause, ErrMsgDefinitionsFailed, err)
		return ExitCodeInputError
	}
	defer func() { _ = engine.Close() }()

	source, result, err := expand(engine, cfg, stdin)
	if err != nil {
		var inputErr *inputError
		if errors.As(err, &inputErr) {
			fmt.Fprintf(stderr, FmtErrorWithCause, ErrMsgReadFileFailed, inputErr.cause)
			return ExitCodeInputError
		}
		fmt.Fprintf(stderr, FmtErrorWithCause, ErrMsgExpandFailed, err)
		if radius.IsUnclosedTagError(err) || radius.IsMismatchedTagError(err) {
			return ExitCodeValidationError
		}
		return ExitCodeError
	}

	if cfg.format == OutputFormatJSON {
		tags, _ := engine.Tags(source)
		if tags == nil {
			tags = []string{}
		}
		if err := writeJSON(renderOutput{Output: result, Tags: tags}, stdout); err != nil {
			fmt.Fprintf(stderr, FmtErrorWithCause, ErrMsgWriteOutputFailed, err)
			return ExitCodeError
		}
		return ExitCodeSuccess
	}

	if err := writeOutput(cfg.outputPath, []byte(result), stdout); err != nil {
		fmt.Fprintf(stderr, FmtErrorWithCause, ErrMsgWriteOutputFailed, err)
		return ExitCodeError
	}
	return ExitCodeSuccess
}

// inputError marks failures to read the document itself.
type inputError struct {
	cause error
}

func (e *inputError) Error() string {
	return e.cause.Error()
}

// expand returns the source that was expanded and its expansion.
func expand(engine *radius.Engine, cfg *renderConfig, stdin io.Reader) (string, string, error) {
	if cfg.name != "" {
		ctx := context.Background()
		doc, err := engine.Storage().Get(ctx, cfg.name)
		if err != nil {
			return "", "", &inputError{cause: err}
		}
		result, err := engine.Render(ctx, cfg.name)
		return doc.Source, result, err
	}

	data, err := readInput(cfg.templatePath, stdin)
	if err != nil {
		return "", "", &inputError{cause: err}
	}
	source := string(data)
	result, err := engine.Expand(source)
	return source, result, err
}

// passthroughTag renders an undefined tag as its content.
func passthroughTag(_ string, _ radius.Attributes, inner radius.ContentFunc) (string, error) {
	if inner == nil {
		return "", nil
	}
	return inner(), nil
}

func parseRenderFlags(args []string) (*renderConfig, error) {
	fs := flag.NewFlagSet(CmdNameRender, flag.ContinueOnError)
	fs.SetOutput(io.Discard) // Suppress default error messages

	cfg := &renderConfig{}

	fs.StringVar(&cfg.templatePath, FlagTemplate, "", "")
	fs.StringVar(&cfg.templatePath, FlagTemplateShort, "", "")
	fs.StringVar(&cfg.prefix, FlagPrefix, radius.DefaultPrefix, "")
	fs.StringVar(&cfg.prefix, FlagPrefixShort, radius.DefaultPrefix, "")
	fs.StringVar(&cfg.definitionsPath, FlagDefinitions, "", "")
	fs.StringVar(&cfg.definitionsPath, FlagDefinitionsShort, "", "")
	fs.StringVar(&cfg.storeDir, FlagStore, "", "")
	fs.StringVar(&cfg.storeDir, FlagStoreShort, "", "")
	fs.StringVar(&cfg.name, FlagName, "", "")
	fs.StringVar(&cfg.name, FlagNameShort, "", "")
	fs.StringVar(&cfg.outputPath, FlagOutput, FlagDefaultOutput, "")
	fs.StringVar(&cfg.outputPath, FlagOutputShort, FlagDefaultOutput, "")
	fs.StringVar(&cfg.format, FlagFormat, FlagDefaultFormat, "")
	fs.StringVar(&cfg.format, FlagFormatShort, FlagDefaultFormat, "")
	fs.BoolVar(&cfg.passthrough, FlagPassthrough, false, "")
	fs.BoolVar(&cfg.verbose, FlagVerbose, false, "")
	fs.BoolVar(&cfg.verbose, FlagVerboseShort, false, "")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	switch {
	case cfg.templatePath == "" && cfg.name == "":
		return nil, errors.New(ErrMsgMissingTemplate)
	case cfg.templatePath != "" && cfg.name != "":
		return nil, errors.New(ErrMsgTemplateAndName)
	case cfg.name != "" && cfg.storeDir == "":
		return nil, errors.New(ErrMsgNameNeedsStore)
	}

	if !validFormat(cfg.format) {
		return nil, errors.New(ErrMsgInvalidFormat)
	}

	return cfg, nil
}
