package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/govalues/apint/internal/interp"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

const sumProgram = "2\nUINT64\n255\nUINT64\n1\nADD 0 0 1\nDUMP\nEND\n"

// executeCommand runs the root command with args, feeding stdin,
// and returns what it wrote to its standard output and error.
func executeCommand(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()

	// Reset flags
	verbose = false
	logFormat = logFormatText
	noColor = false
	showStats = false

	var stdout, stderr bytes.Buffer
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs(append([]string{}, args...))
	t.Cleanup(func() {
		rootCmd.SetIn(nil)
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})

	err := rootCmd.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

func writeProgram(t *testing.T, program string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "program.txt")
	require.NoError(t, os.WriteFile(path, []byte(program), 0o644))
	return path
}

func TestRootCommand(t *testing.T) {
	tests := []struct {
		name    string
		stdin   string
		args    func(t *testing.T) []string
		wantOut string
	}{
		{
			name:    "stdin to stdout",
			stdin:   sumProgram,
			args:    func(t *testing.T) []string { return nil },
			wantOut: "0x0100\n0x01\n\n",
		},
		{
			name:    "dash reads stdin",
			stdin:   sumProgram,
			args:    func(t *testing.T) []string { return []string{"-"} },
			wantOut: "0x0100\n0x01\n\n",
		},
		{
			name:    "input file",
			args:    func(t *testing.T) []string { return []string{writeProgram(t, sumProgram)} },
			wantOut: "0x0100\n0x01\n\n",
		},
		{
			name:    "input file and dash output",
			args:    func(t *testing.T) []string { return []string{writeProgram(t, sumProgram), "-"} },
			wantOut: "0x0100\n0x01\n\n",
		},
		{
			name:    "compare",
			stdin:   "2\nHEX_STRING\n0001\nUINT64\n1\nCMP 0 1\nEND\n",
			args:    func(t *testing.T) []string { return nil },
			wantOut: "0\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stdout, stderr, err := executeCommand(t, tt.stdin, tt.args(t)...)
			require.NoError(t, err)
			assert.Equal(t, tt.wantOut, stdout)
			assert.Empty(t, stderr)
		})
	}
}

func TestRootCommand_OutputFile(t *testing.T) {
	output := filepath.Join(t.TempDir(), "out.txt")

	stdout, _, err := executeCommand(t, "", writeProgram(t, sumProgram), output)
	require.NoError(t, err)
	assert.Empty(t, stdout)

	got, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Equal(t, "0x0100\n0x01\n\n", string(got))
}

func TestRootCommand_OutputFileOnError(t *testing.T) {
	output := filepath.Join(t.TempDir(), "out.txt")

	_, _, err := executeCommand(t, "", writeProgram(t, "1\nUINT64\n1\nDUMP\nSUB\n"), output)
	require.ErrorIs(t, err, interp.ErrInvalidCommand)

	got, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Equal(t, "0x01\n\n", string(got))
}

func TestRootCommand_Errors(t *testing.T) {
	tests := []struct {
		name    string
		stdin   string
		args    []string
		wantErr error
		wantMsg string
		wantOut string
	}{
		{
			name:    "invalid command",
			stdin:   "1\nUINT64\n1\nDUMP\nNOP\n",
			wantErr: interp.ErrInvalidCommand,
			wantOut: "0x01\n\n",
		},
		{
			name:    "register count",
			stdin:   "0\n",
			wantErr: interp.ErrRegisterCount,
		},
		{
			name:    "unexpected end of input",
			stdin:   "1\nUINT64\n1\n",
			wantErr: interp.ErrUnexpectedEOF,
		},
		{
			name:    "missing input file",
			args:    []string{filepath.Join(os.TempDir(), "apint-does-not-exist", "program.txt")},
			wantErr: os.ErrNotExist,
			wantMsg: "opening input",
		},
		{
			name:    "too many arguments",
			args:    []string{"a", "b", "c"},
			wantMsg: "accepts at most 2 arg(s)",
		},
		{
			name:    "invalid log format",
			stdin:   sumProgram,
			args:    []string{"--log-format", "xml"},
			wantMsg: `invalid log format "xml"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stdout, _, err := executeCommand(t, tt.stdin, tt.args...)
			require.Error(t, err)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			}
			if tt.wantMsg != "" {
				assert.ErrorContains(t, err, tt.wantMsg)
			}
			assert.Equal(t, tt.wantOut, stdout)
		})
	}
}

func TestRootCommand_Verbose(t *testing.T) {
	t.Run("text", func(t *testing.T) {
		_, stderr, err := executeCommand(t, sumProgram, "-v")
		require.NoError(t, err)
		assert.Contains(t, stderr, "level=DEBUG")
		assert.Contains(t, stderr, `msg="program finished"`)
		assert.Contains(t, stderr, "op=ADD")
	})

	t.Run("json", func(t *testing.T) {
		_, stderr, err := executeCommand(t, sumProgram, "--verbose", "--log-format", "json")
		require.NoError(t, err)
		assert.Contains(t, stderr, `"msg":"program finished"`)
		assert.Contains(t, stderr, `"commands":2`)
	})

	t.Run("quiet by default", func(t *testing.T) {
		_, stderr, err := executeCommand(t, sumProgram, "--log-format", "json")
		require.NoError(t, err)
		assert.Empty(t, stderr)
	})
}

func TestRootCommand_Stats(t *testing.T) {
	stdout, stderr, err := executeCommand(t, sumProgram, "--stats")
	require.NoError(t, err)
	assert.Equal(t, "0x0100\n0x01\n\n", stdout)
	assert.Contains(t, stderr, "registers: 2\n")
	assert.Contains(t, stderr, "commands: 2\n")
	assert.Contains(t, stderr, "ADD: 1\n")
	assert.Contains(t, stderr, "DUMP: 1\n")
}

func TestVersionCommand(t *testing.T) {
	stdout, _, err := executeCommand(t, "", "version")
	require.NoError(t, err)
	assert.Contains(t, stdout, "apint dev")
	assert.Contains(t, stdout, "commit: none")
	assert.Contains(t, stdout, "built: unknown")
}

func TestPrintError(t *testing.T) {
	t.Cleanup(func() { noColor = false })

	t.Run("plain", func(t *testing.T) {
		noColor = true
		var buf bytes.Buffer
		printError(&buf, errors.New("boom"))
		assert.Equal(t, "Error: boom\n", buf.String())
	})

	t.Run("colored", func(t *testing.T) {
		noColor = false
		var buf bytes.Buffer
		printError(&buf, errors.New("boom"))
		assert.Contains(t, buf.String(), "\x1b[")
		assert.Contains(t, buf.String(), "Error: boom")
	})
}
