package e2e_test

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	gojson "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

func runCLI(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	cmd := exec.Command("go", append([]string{"run", "../../main.go"}, args...)...)
	cmd.Stdin = strings.NewReader(stdin)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	err := cmd.Run()
	return stdout.String(), stderr.String(), err
}

// TestEndToEnd_Example tests the documented [1 2 3] example
func TestEndToEnd_Example(t *testing.T) {
	stdout, stderr, err := runCLI(t, "[1, 2, 3]")
	require.NoError(t, err, "CLI command failed: %s", stderr)
	assert.Equal(t, "[\n  1,\n  2,\n  3\n]\n", stdout)
}

// TestEndToEnd_AllVariants tests a document exercising every value kind
func TestEndToEnd_AllVariants(t *testing.T) {
	tempDir := t.TempDir()

	content := `
flag: true
count: 42
ratio: 0.5
name: report
size: !filesize 1KiB
took: !duration 1500ms
when: 2023-05-20T14:56:23Z
items: [1, "two", null]
blob: !!binary AAH/
path: !cellpath users.0.name
body: !block 3
span: !range 1..5
nothing: ~
`
	inputFile := filepath.Join(tempDir, "input.yml")
	require.NoError(t, os.WriteFile(inputFile, []byte(content), 0644))
	outputFile := filepath.Join(tempDir, "output.json")

	_, stderr, err := runCLI(t, "", "-i", inputFile, "-o", outputFile)
	require.NoError(t, err, "CLI command failed: %s", stderr)

	written, err := os.ReadFile(outputFile)
	require.NoError(t, err)
	out := string(written)

	require.True(t, gojson.Valid(written), "invalid JSON: %s", out)
	assert.True(t, gjson.Get(out, "flag").Bool())
	assert.Equal(t, int64(42), gjson.Get(out, "count").Int())
	assert.Equal(t, 0.5, gjson.Get(out, "ratio").Float())
	assert.Equal(t, "report", gjson.Get(out, "name").String())
	assert.Equal(t, int64(1024), gjson.Get(out, "size").Int())
	assert.Equal(t, int64(1_500_000_000), gjson.Get(out, "took").Int())
	assert.Equal(t, "2023-05-20 14:56:23 +00:00", gjson.Get(out, "when").String())
	assert.Equal(t, `[1,"two",null]`, compact(t, gjson.Get(out, "items").Raw))
	assert.Equal(t, `[0,1,255]`, compact(t, gjson.Get(out, "blob").Raw))
	assert.Equal(t, `["users",0,"name"]`, compact(t, gjson.Get(out, "path").Raw))
	assert.Equal(t, gjson.Null, gjson.Get(out, "body").Type)
	assert.Equal(t, gjson.Null, gjson.Get(out, "span").Type)
	assert.Equal(t, gjson.Null, gjson.Get(out, "nothing").Type)
}

// TestEndToEnd_Raw tests compact output and duplicate keys
func TestEndToEnd_Raw(t *testing.T) {
	stdout, stderr, err := runCLI(t, "a: 1\nb: 2\na: 3\n", "--raw")
	require.NoError(t, err, "CLI command failed: %s", stderr)
	assert.Equal(t, "{\"b\":2,\"a\":3}\n", stdout)
}

// TestEndToEnd_Indent tests a custom indentation width
func TestEndToEnd_Indent(t *testing.T) {
	stdout, stderr, err := runCLI(t, "[true]", "--indent", "4")
	require.NoError(t, err, "CLI command failed: %s", stderr)
	assert.Equal(t, "[\n    true\n]\n", stdout)
}

// TestEndToEnd_ConfigFile tests settings loaded from a config file
func TestEndToEnd_ConfigFile(t *testing.T) {
	tempDir := t.TempDir()
	configFile := filepath.Join(tempDir, "tojson.yml")
	require.NoError(t, os.WriteFile(configFile, []byte("output:\n  raw: true\n  trailing_newline: false\n"), 0644))

	stdout, stderr, err := runCLI(t, "[1, 2]", "-c", configFile)
	require.NoError(t, err, "CLI command failed: %s", stderr)
	assert.Equal(t, "[1,2]", stdout)
}

// TestEndToEnd_MultipleDocuments tests that a document stream becomes a list
func TestEndToEnd_MultipleDocuments(t *testing.T) {
	stdout, stderr, err := runCLI(t, "1\n---\n2\n", "-r")
	require.NoError(t, err, "CLI command failed: %s", stderr)
	assert.Equal(t, "[1,2]\n", stdout)
}

// TestEndToEnd_NonFiniteFloat tests that NaN and infinities render as null
func TestEndToEnd_NonFiniteFloat(t *testing.T) {
	stdout, stderr, err := runCLI(t, "[.inf, .nan, 2.5]", "-r")
	require.NoError(t, err, "CLI command failed: %s", stderr)
	assert.Equal(t, "[null,null,2.5]\n", stdout)
}

// TestEndToEnd_Errors tests failures reported to the user
func TestEndToEnd_Errors(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"embedded error", "- ok\n- !error upstream failed\n", "Error: upstream failed"},
		{"unknown tag", "!mystery 1", "Value parsing error"},
		{"empty input", "", "Input error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stdout, stderr, err := runCLI(t, tt.input)
			require.Error(t, err)
			assert.Empty(t, stdout)
			assert.Contains(t, stderr, tt.expected)
		})
	}
}

func compact(t *testing.T, raw string) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, gojson.Compact(&buf, []byte(raw)), fmt.Sprintf("invalid JSON: %s", raw))
	return buf.String()
}
