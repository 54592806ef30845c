package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/mcncl/tojson/internal/config"
	"github.com/mcncl/tojson/internal/errors"
	"github.com/mcncl/tojson/internal/value"
)

func newTestContext(stdin string) (*Context, *bytes.Buffer) {
	var stdout bytes.Buffer
	return &Context{
		Config: config.NewConfig(),
		Logger: zap.NewNop(),
		Stdin:  strings.NewReader(stdin),
		Stdout: &stdout,
	}, &stdout
}

func resetCLI(t *testing.T) {
	t.Helper()
	originalCLI := CLI
	t.Cleanup(func() { CLI = originalCLI })
	CLI.Input = ""
	CLI.Output = ""
}

func TestRun_Stdin(t *testing.T) {
	resetCLI(t)

	ctx, stdout := newTestContext("- 1\n- 2\n- 3\n")
	require.NoError(t, run(ctx))
	assert.Equal(t, "[\n  1,\n  2,\n  3\n]\n", stdout.String())
}

func TestRun_RawWithoutNewline(t *testing.T) {
	resetCLI(t)

	ctx, stdout := newTestContext("a: 1\na: 2\n")
	ctx.Config.Output.Raw = true
	ctx.Config.Output.TrailingNewline = false
	require.NoError(t, run(ctx))
	assert.Equal(t, `{"a":2}`, stdout.String())
}

func TestRun_FileInputOutput(t *testing.T) {
	resetCLI(t)
	dir := t.TempDir()

	CLI.Input = filepath.Join(dir, "input.yml")
	CLI.Output = filepath.Join(dir, "output.json")
	require.NoError(t, os.WriteFile(CLI.Input, []byte("size: !filesize 1KiB\nwait: !duration 2s\n"), 0644))

	ctx, stdout := newTestContext("")
	ctx.Config.Output.Raw = true
	require.NoError(t, run(ctx))
	assert.Empty(t, stdout.String())

	written, err := os.ReadFile(CLI.Output)
	require.NoError(t, err)
	assert.Equal(t, "{\"size\":1024,\"wait\":2000000000}\n", string(written))
}

func TestRun_ErrorValue(t *testing.T) {
	resetCLI(t)

	ctx, stdout := newTestContext("- 1\n- !error disk full\n")
	err := run(ctx)
	require.Error(t, err)
	assert.Equal(t, "Error: disk full", errors.UserFriendlyError(err))
	assert.Empty(t, stdout.String())
}

func TestRun_NonFiniteFloat(t *testing.T) {
	resetCLI(t)

	ctx, stdout := newTestContext("[.nan, 1, -.inf]")
	ctx.Config.Output.Raw = true
	require.NoError(t, run(ctx))
	assert.Equal(t, "[null,1,null]\n", stdout.String())
}

func TestRun_EmptyInput(t *testing.T) {
	resetCLI(t)

	ctx, _ := newTestContext("")
	err := run(ctx)
	assert.ErrorIs(t, err, errors.ErrEmptyInput)
}

func TestRun_MissingFile(t *testing.T) {
	resetCLI(t)
	CLI.Input = filepath.Join(t.TempDir(), "missing.yml")

	ctx, _ := newTestContext("")
	err := run(ctx)
	assert.ErrorIs(t, err, errors.ErrFileNotFound)
}

func TestResultText(t *testing.T) {
	text, err := resultText(value.String{Val: "[]"})
	require.NoError(t, err)
	assert.Equal(t, "[]", text)

	_, err = resultText(value.Error{Err: errors.CantConvert("JSON", "list", value.Span{Start: 0, End: 7})})
	require.Error(t, err)
	assert.Contains(t, errors.UserFriendlyError(err), "can't convert list to JSON")

	_, err = resultText(value.Int{Val: 1})
	assert.ErrorIs(t, err, errors.NewConversionError("", nil))
}
