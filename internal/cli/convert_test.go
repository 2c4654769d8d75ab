package cli

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/kore/internal/ast"
	"github.com/roach88/kore/internal/binary"
	"github.com/roach88/kore/internal/loader"
)

func loadTestPattern(t *testing.T) ast.Pattern {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("testdata", "pattern.yaml"))
	require.NoError(t, err)
	p, err := loader.ParsePattern(data, "pattern.yaml")
	require.NoError(t, err)
	return p
}

func writeBinaryPattern(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "pattern.bin")
	data, err := binary.Encode(loadTestPattern(t))
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, data, 0644))
	return path
}

func TestConvert_DetectYAMLToBinary(t *testing.T) {
	stdout, _, err := execute(t, "convert", "testdata/pattern.yaml")
	require.NoError(t, err)

	data := []byte(stdout)
	require.True(t, binary.HasMagicHeader(data))

	got, err := binary.Decode(data)
	require.NoError(t, err)
	assert.Equal(t, loadTestPattern(t).String(), got.String())
}

func TestConvert_DetectBinaryToYAML(t *testing.T) {
	input := writeBinaryPattern(t)
	output := filepath.Join(t.TempDir(), "pattern.yaml")

	stdout, _, err := execute(t, "convert", input, "-o", output)
	require.NoError(t, err)
	assert.Contains(t, stdout, "binary → yaml")

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	got, err := loader.ParsePattern(data, output)
	require.NoError(t, err)
	assert.Equal(t, loadTestPattern(t).String(), got.String())
}

func TestConvert_ToKore(t *testing.T) {
	stdout, _, err := execute(t, "convert", "testdata/pattern.yaml", "--to", "kore")
	require.NoError(t, err)
	assert.Equal(t, loadTestPattern(t).String()+"\n", stdout)
}

func TestConvert_ExplicitFormats(t *testing.T) {
	input := writeBinaryPattern(t)

	stdout, _, err := execute(t, "convert", input, "--from", "binary", "--to", "yaml")
	require.NoError(t, err)
	assert.Contains(t, stdout, "pattern:")

	// Reading binary as YAML fails on the raw bytes.
	_, _, err = execute(t, "convert", input, "--from", "yaml", "--to", "kore")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
}

func TestConvert_JSONSummary(t *testing.T) {
	output := filepath.Join(t.TempDir(), "pattern.bin")

	stdout, _, err := execute(t, "--format", "json", "convert", "testdata/pattern.yaml", "-o", output)
	require.NoError(t, err)
	assert.Contains(t, stdout, `"status": "ok"`)
	assert.Contains(t, stdout, `"to": "binary"`)

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.True(t, binary.HasMagicHeader(data))
}

func TestConvert_InvalidBinary(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.bin")
	data := append(binary.NewSerializer().Data(), 0xFF)
	require.NoError(t, os.WriteFile(path, data, 0644))

	_, stderr, err := execute(t, "convert", path, "--to", "kore")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, stderr, ErrCodeInvalidInput)
}

func TestConvert_ZeroByteString(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nul.yaml")
	require.NoError(t, os.WriteFile(path, []byte("pattern: {str: \"a\\0b\"}\n"), 0644))

	_, _, err := execute(t, "convert", path, "--to", "binary", "-F")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, err.Error(), "zero byte")
}

func TestConvert_MissingInput(t *testing.T) {
	_, _, err := execute(t, "convert", filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestConvert_InvalidFormatFlag(t *testing.T) {
	_, _, err := execute(t, "convert", "testdata/pattern.yaml", "--to", "text")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func runConvertOnTerminal(t *testing.T, force bool) (stdout, stderr *bytes.Buffer, err error) {
	t.Helper()
	opts := &ConvertOptions{
		RootOptions: &RootOptions{Format: "text"},
		From:        FormatDetect,
		To:          FormatDetect,
		Output:      "-",
		Force:       force,
		isTerminal:  func(io.Writer) bool { return true },
	}
	cmd := &cobra.Command{}
	stdout, stderr = &bytes.Buffer{}, &bytes.Buffer{}
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	err = runConvert(opts, filepath.Join("testdata", "pattern.yaml"), cmd)
	return stdout, stderr, err
}

func TestConvert_RefusesBinaryOnTerminal(t *testing.T) {
	stdout, stderr, err := runConvertOnTerminal(t, false)
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Empty(t, stdout.String())
	assert.Equal(t, "Not outputting binary KORE to stdout\nuse -o to specify output file, or -F to force stdout\n", stderr.String())
}

func TestConvert_ForceBinaryOnTerminal(t *testing.T) {
	stdout, _, err := runConvertOnTerminal(t, true)
	require.NoError(t, err)
	assert.True(t, binary.HasMagicHeader(stdout.Bytes()))
}

func TestIsTerminal_NonFile(t *testing.T) {
	assert.False(t, isTerminal(&bytes.Buffer{}))
}
