package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/itsatony/go-radius"
)

// Test data constants
const (
	testDocument       = `<radius:box class="wide"><radius:greeting name="Ada" /></radius:box>`
	testExpectedOutput = `<div class="wide">Hello, Ada!</div>`
	testUnclosed       = "<radius:box>open"
	testDefinitions    = `
tags:
  greeting:
    body: "Hello, {name}!"
    defaults:
      name: World
  box:
    body: "<div class=\"{class}\">{content}</div>"
`
)

// setupTestData creates test files in a temp directory
func setupTestData(t *testing.T) string {
	t.Helper()
	tmpDir := t.TempDir()

	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "page.txt"), []byte(testDocument), FilePermissions))
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "tags.yaml"), []byte(testDefinitions), FilePermissions))
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "unclosed.txt"), []byte(testUnclosed), FilePermissions))

	return tmpDir
}

func runCLI(args []string, stdin string) (int, string, string) {
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	code := run(args, strings.NewReader(stdin), stdout, stderr)
	return code, stdout.String(), stderr.String()
}

// ==================== run() dispatch tests ====================

func TestRun_NoArgs_ShowsHelp(t *testing.T) {
	code, stdout, _ := runCLI(nil, "")

	assert.Equal(t, ExitCodeSuccess, code)
	assert.Contains(t, stdout, CLIName)
	assert.Contains(t, stdout, CmdNameRender)
}

func TestRun_HelpCommand(t *testing.T) {
	for _, cmd := range []string{CmdNameRender, CmdNameValidate, CmdNameTags, CmdNameVersion, CmdNameHelp} {
		t.Run(cmd, func(t *testing.T) {
			code, stdout, _ := runCLI([]string{CmdNameHelp, cmd}, "")
			assert.Equal(t, ExitCodeSuccess, code)
			assert.Contains(t, stdout, "Usage:")
		})
	}
}

func TestRun_UnknownCommand(t *testing.T) {
	code, stdout, _ := runCLI([]string{"unknown"}, "")

	assert.Equal(t, ExitCodeUsageError, code)
	assert.Contains(t, stdout, ErrMsgUnknownCommand)
}

func TestRun_VersionCommand(t *testing.T) {
	code, stdout, _ := runCLI([]string{CmdNameVersion}, "")
	assert.Equal(t, ExitCodeSuccess, code)
	assert.Contains(t, stdout, "go-radius version")

	code, stdout, _ = runCLI([]string{CmdNameVersion, "-F", OutputFormatJSON}, "")
	assert.Equal(t, ExitCodeSuccess, code)

	var info versionInfo
	require.NoError(t, json.Unmarshal([]byte(stdout), &info))
	assert.NotEmpty(t, info.GoVersion)

	code, _, _ = runCLI([]string{CmdNameVersion, "-F", "xml"}, "")
	assert.Equal(t, ExitCodeUsageError, code)
}

// ==================== render tests ====================

func TestRender_File(t *testing.T) {
	dir := setupTestData(t)

	code, stdout, stderr := runCLI([]string{
		CmdNameRender,
		"-t", filepath.Join(dir, "page.txt"),
		"-D", filepath.Join(dir, "tags.yaml"),
	}, "")

	assert.Equal(t, ExitCodeSuccess, code, stderr)
	assert.Equal(t, testExpectedOutput, stdout)
}

func TestRender_Stdin(t *testing.T) {
	dir := setupTestData(t)

	code, stdout, _ := runCLI([]string{
		CmdNameRender, "--template", "-", "--definitions", filepath.Join(dir, "tags.yaml"),
	}, `<radius:greeting />`)

	assert.Equal(t, ExitCodeSuccess, code)
	assert.Equal(t, "Hello, World!", stdout)
}

func TestRender_OutputFile(t *testing.T) {
	dir := setupTestData(t)
	outPath := filepath.Join(dir, "out.html")

	code, stdout, _ := runCLI([]string{
		CmdNameRender,
		"-t", filepath.Join(dir, "page.txt"),
		"-D", filepath.Join(dir, "tags.yaml"),
		"-o", outPath,
	}, "")

	assert.Equal(t, ExitCodeSuccess, code)
	assert.Empty(t, stdout)

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)
	assert.Equal(t, testExpectedOutput, string(data))
}

func TestRender_JSON(t *testing.T) {
	dir := setupTestData(t)

	code, stdout, _ := runCLI([]string{
		CmdNameRender,
		"-t", filepath.Join(dir, "page.txt"),
		"-D", filepath.Join(dir, "tags.yaml"),
		"-F", OutputFormatJSON,
	}, "")
	require.Equal(t, ExitCodeSuccess, code)

	var out renderOutput
	require.NoError(t, json.Unmarshal([]byte(stdout), &out))
	assert.Equal(t, testExpectedOutput, out.Output)
	assert.Equal(t, []string{"box", "greeting"}, out.Tags)
}

func TestRender_Prefix(t *testing.T) {
	code, stdout, _ := runCLI([]string{
		CmdNameRender, "-t", "-", "-p", "r", "--passthrough",
	}, "<r:any>kept</r:any> <radius:any />")

	assert.Equal(t, ExitCodeSuccess, code)
	assert.Equal(t, "kept <radius:any />", stdout)
}

func TestRender_Errors(t *testing.T) {
	dir := setupTestData(t)
	defs := filepath.Join(dir, "tags.yaml")

	tests := []struct {
		name     string
		args     []string
		stdin    string
		exitCode int
		errMsg   string
	}{
		{
			name:     "no template",
			args:     []string{CmdNameRender},
			exitCode: ExitCodeUsageError,
			errMsg:   ErrMsgMissingTemplate,
		},
		{
			name:     "template and name",
			args:     []string{CmdNameRender, "-t", "x", "-n", "y", "-s", dir},
			exitCode: ExitCodeUsageError,
			errMsg:   ErrMsgTemplateAndName,
		},
		{
			name:     "name without store",
			args:     []string{CmdNameRender, "-n", "home"},
			exitCode: ExitCodeUsageError,
			errMsg:   ErrMsgNameNeedsStore,
		},
		{
			name:     "bad format",
			args:     []string{CmdNameRender, "-t", "-", "-F", "xml"},
			exitCode: ExitCodeUsageError,
			errMsg:   ErrMsgInvalidFormat,
		},
		{
			name:     "missing file",
			args:     []string{CmdNameRender, "-t", filepath.Join(dir, "missing.txt")},
			exitCode: ExitCodeInputError,
			errMsg:   ErrMsgReadFileFailed,
		},
		{
			name:     "missing definitions",
			args:     []string{CmdNameRender, "-t", "-", "-D", filepath.Join(dir, "missing.yaml")},
			exitCode: ExitCodeInputError,
			errMsg:   ErrMsgReadFileFailed,
		},
		{
			name:     "unclosed tag",
			args:     []string{CmdNameRender, "-t", filepath.Join(dir, "unclosed.txt"), "-D", defs},
			exitCode: ExitCodeValidationError,
			errMsg:   ErrMsgExpandFailed,
		},
		{
			name:     "undefined tag",
			args:     []string{CmdNameRender, "-t", "-"},
			stdin:    "<radius:nope />",
			exitCode: ExitCodeError,
			errMsg:   radius.ErrMsgUnrecognizedTag,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, _, stderr := runCLI(tt.args, tt.stdin)
			assert.Equal(t, tt.exitCode, code)
			assert.Contains(t, stderr, tt.errMsg)
		})
	}
}

func TestRender_StoredDocument(t *testing.T) {
	dir := setupTestData(t)
	storeDir := filepath.Join(dir, "store")
	ctx := context.Background()

	storage, err := radius.NewFilesystemStorage(storeDir)
	require.NoError(t, err)
	require.NoError(t, storage.Save(ctx, &radius.StoredDocument{
		Name: "layout", Source: "<main><radius:yield /></main>",
	}))
	require.NoError(t, storage.Save(ctx, &radius.StoredDocument{
		Name: "home", Source: `<radius:snippet name="layout"><radius:greeting /></radius:snippet>`,
	}))
	require.NoError(t, storage.Close())

	code, stdout, stderr := runCLI([]string{
		CmdNameRender, "-s", storeDir, "-n", "home", "-D", filepath.Join(dir, "tags.yaml"),
	}, "")
	assert.Equal(t, ExitCodeSuccess, code, stderr)
	assert.Equal(t, "<main>Hello, World!</main>", stdout)

	code, _, stderr = runCLI([]string{CmdNameRender, "-s", storeDir, "-n", "missing"}, "")
	assert.Equal(t, ExitCodeInputError, code)
	assert.Contains(t, stderr, radius.ErrMsgDocumentNotFound)
}

// ==================== validate tests ====================

func TestValidate(t *testing.T) {
	dir := setupTestData(t)

	code, stdout, _ := runCLI([]string{CmdNameValidate, "-t", filepath.Join(dir, "page.txt")}, "")
	assert.Equal(t, ExitCodeSuccess, code)
	assert.Contains(t, stdout, ValidationTextSuccess)

	code, stdout, _ = runCLI([]string{CmdNameValidate, "-t", filepath.Join(dir, "unclosed.txt")}, "")
	assert.Equal(t, ExitCodeValidationError, code)
	assert.Contains(t, stdout, radius.ErrMsgUnclosedTag)
}

func TestValidate_JSON(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		exitCode int
		expected validationOutput
	}{
		{
			name:     "valid",
			input:    "<radius:a>x</radius:a>",
			exitCode: ExitCodeSuccess,
			expected: validationOutput{Valid: true},
		},
		{
			name:     "unclosed",
			input:    "<radius:a>x",
			exitCode: ExitCodeValidationError,
			expected: validationOutput{Kind: radius.ErrKindUnclosedTag, Tag: "a"},
		},
		{
			name:     "mismatched",
			input:    "<radius:a>x</radius:b>",
			exitCode: ExitCodeValidationError,
			expected: validationOutput{Kind: radius.ErrKindMismatchedTag, Tag: "a"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, stdout, _ := runCLI([]string{CmdNameValidate, "-t", "-", "-F", OutputFormatJSON}, tt.input)
			assert.Equal(t, tt.exitCode, code)

			var out validationOutput
			require.NoError(t, json.Unmarshal([]byte(stdout), &out))
			assert.Equal(t, tt.expected.Valid, out.Valid)
			assert.Equal(t, tt.expected.Kind, out.Kind)
			assert.Equal(t, tt.expected.Tag, out.Tag)
			if !out.Valid {
				assert.NotEmpty(t, out.Error)
			}
		})
	}
}

func TestValidate_MissingTemplate(t *testing.T) {
	code, _, stderr := runCLI([]string{CmdNameValidate}, "")
	assert.Equal(t, ExitCodeUsageError, code)
	assert.Contains(t, stderr, ErrMsgMissingTemplate)
}

// ==================== tags tests ====================

func TestTags(t *testing.T) {
	dir := setupTestData(t)

	code, stdout, _ := runCLI([]string{CmdNameTags, "-t", filepath.Join(dir, "page.txt")}, "")
	assert.Equal(t, ExitCodeSuccess, code)
	assert.Equal(t, "box\ngreeting\n", stdout)

	code, stdout, _ = runCLI([]string{CmdNameTags, "-t", "-", "-F", OutputFormatJSON}, "plain text")
	assert.Equal(t, ExitCodeSuccess, code)

	var out tagsOutput
	require.NoError(t, json.Unmarshal([]byte(stdout), &out))
	assert.Empty(t, out.Tags)
	assert.NotNil(t, out.Tags)

	code, _, _ = runCLI([]string{CmdNameTags, "-t", filepath.Join(dir, "unclosed.txt")}, "")
	assert.Equal(t, ExitCodeValidationError, code)
}
