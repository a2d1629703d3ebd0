package main

import (
	"fmt"
	"io"
	"os"

	json "github.com/goccy/go-json"
	"go.uber.org/zap"
)

// readInput reads content from a file or stdin
func readInput(path string, stdin io.Reader) ([]byte, error) {
	if path == InputSourceStdin {
		return io.ReadAll(stdin)
	}
	return os.ReadFile(path)
}

// writeOutput writes content to a file or stdout
func writeOutput(path string, data []byte, stdout io.Writer) error {
	if path == FlagDefaultOutput {
		_, err := stdout.Write(data)
		return err
	}
	return os.WriteFile(path, data, FilePermissions)
}

// writeJSON writes v as indented JSON followed by a newline.
func writeJSON(v any, stdout io.Writer) error {
	jsonBytes, err := json.MarshalIndent(v, "", JSONIndent)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgJSONMarshalFailed, err)
	}
	_, err = fmt.Fprintln(stdout, string(jsonBytes))
	return err
}

// newLogger returns a development logger when verbose is set.
func newLogger(verbose bool) (*zap.Logger, error) {
	if !verbose {
		return zap.NewNop(), nil
	}
	cfg := zap.NewDevelopmentConfig()
	cfg.OutputPaths = []string{"stderr"}
	return cfg.Build()
}

func validFormat(format string) bool {
	return format == OutputFormatText || format == OutputFormatJSON
}
