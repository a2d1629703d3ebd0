package main

import (
	"errors"
	"flag"
	"fmt"
	"io"

	"github.com/itsatony/go-radius"
)

// validateConfig holds parsed validate and tags command configuration
type validateConfig struct {
	templatePath string
	prefix       string
	format       string
}

// validationOutput represents JSON output for validation
type validationOutput struct {
	Valid bool   `json:"valid"`
	Error string `json:"error,omitempty"`
	Kind  string `json:"kind,omitempty"`
	Tag   string `json:"tag,omitempty"`
}

// tagsOutput represents JSON output for the tags command
type tagsOutput struct {
	Tags []string `json:"tags"`
}

func runValidate(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	cfg, err := parseValidateFlags(CmdNameValidate, args)
	if err != nil {
		fmt.Fprintf(stderr, FmtErrorWithCause, ErrMsgInvalidFlags, err)
		return ExitCodeUsageError
	}

	source, err := readInput(cfg.templatePath, stdin)
	if err != nil {
		fmt.Fprintf(stderr, FmtErrorWithCause, ErrMsgReadFileFailed, err)
		return ExitCodeInputError
	}

	engine := radius.MustNew(radius.WithPrefix(cfg.prefix))
	verr := engine.Validate(string(source))

	if cfg.format == OutputFormatJSON {
		return outputValidationJSON(verr, stdout)
	}
	return outputValidationText(verr, stdout)
}

func runTags(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	cfg, err := parseValidateFlags(CmdNameTags, args)
	if err != nil {
		fmt.Fprintf(stderr, FmtErrorWithCause, ErrMsgInvalidFlags, err)
		return ExitCodeUsageError
	}

	source, err := readInput(cfg.templatePath, stdin)
	if err != nil {
		fmt.Fprintf(stderr, FmtErrorWithCause, ErrMsgReadFileFailed, err)
		return ExitCodeInputError
	}

	engine := radius.MustNew(radius.WithPrefix(cfg.prefix))
	tags, err := engine.Tags(string(source))
	if err != nil {
		fmt.Fprintf(stderr, FmtErrorWithCause, ErrMsgValidationFailed, err)
		return ExitCodeValidationError
	}

	if cfg.format == OutputFormatJSON {
		if tags == nil {
			tags = []string{}
		}
		if err := writeJSON(tagsOutput{Tags: tags}, stdout); err != nil {
			fmt.Fprintf(stderr, FmtErrorWithCause, ErrMsgWriteOutputFailed, err)
			return ExitCodeError
		}
		return ExitCodeSuccess
	}

	for _, tag := range tags {
		fmt.Fprintln(stdout, tag)
	}
	return ExitCodeSuccess
}

func parseValidateFlags(name string, args []string) (*validateConfig, error) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard) // Suppress default error messages

	cfg := &validateConfig{}

	fs.StringVar(&cfg.templatePath, FlagTemplate, "", "")
	fs.StringVar(&cfg.templatePath, FlagTemplateShort, "", "")
	fs.StringVar(&cfg.prefix, FlagPrefix, radius.DefaultPrefix, "")
	fs.StringVar(&cfg.prefix, FlagPrefixShort, radius.DefaultPrefix, "")
	fs.StringVar(&cfg.format, FlagFormat, FlagDefaultFormat, "")
	fs.StringVar(&cfg.format, FlagFormatShort, FlagDefaultFormat, "")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	if cfg.templatePath == "" {
		return nil, errors.New(ErrMsgMissingTemplate)
	}
	if !validFormat(cfg.format) {
		return nil, errors.New(ErrMsgInvalidFormat)
	}

	return cfg, nil
}

func outputValidationText(verr error, stdout io.Writer) int {
	if verr == nil {
		fmt.Fprintln(stdout, ValidationTextSuccess)
		return ExitCodeSuccess
	}
	fmt.Fprintf(stdout, ValidationTextFailure+FmtNewline, verr)
	return ExitCodeValidationError
}

func outputValidationJSON(verr error, stdout io.Writer) int {
	output := validationOutput{Valid: verr == nil}
	if verr != nil {
		output.Error = verr.Error()
		output.Kind = errorKind(verr)
		output.Tag, _ = radius.ErrorTag(verr)
	}

	_ = writeJSON(output, stdout)

	if !output.Valid {
		return ExitCodeValidationError
	}
	return ExitCodeSuccess
}

func errorKind(err error) string {
	switch {
	case radius.IsUnclosedTagError(err):
		return radius.ErrKindUnclosedTag
	case radius.IsMismatchedTagError(err):
		return radius.ErrKindMismatchedTag
	default:
		return ""
	}
}
