package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// execute runs the root command with args and returns stdout, stderr and
// the command error.
func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	var stdout, stderr bytes.Buffer
	cmd := NewRootCommand()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestRootCommand(t *testing.T) {
	cmd := NewRootCommand()
	require.NotNil(t, cmd)
	assert.Equal(t, "geovec", cmd.Use)
	assert.Contains(t, cmd.Long, "ufuncs")
}

func TestCommandPresence(t *testing.T) {
	cmd := NewRootCommand()

	for _, cmdName := range []string{"ops", "eval"} {
		t.Run(cmdName, func(t *testing.T) {
			subCmd, _, err := cmd.Find([]string{cmdName})
			require.NoError(t, err, "Command %s should exist", cmdName)
			assert.Equal(t, cmdName, subCmd.Name())
		})
	}
}

func TestGlobalFlags(t *testing.T) {
	t.Setenv(EnvEngine, "")
	cmd := NewRootCommand()

	verboseFlag := cmd.PersistentFlags().Lookup("verbose")
	require.NotNil(t, verboseFlag)
	assert.Equal(t, "v", verboseFlag.Shorthand)
	assert.Equal(t, "false", verboseFlag.DefValue)

	formatFlag := cmd.PersistentFlags().Lookup("format")
	require.NotNil(t, formatFlag)
	assert.Equal(t, "text", formatFlag.DefValue)

	engineFlag := cmd.PersistentFlags().Lookup("engine")
	require.NotNil(t, engineFlag)
	assert.Equal(t, "planar", engineFlag.DefValue)
}

func TestEngineFromEnv(t *testing.T) {
	t.Setenv(EnvEngine, "custom")
	cmd := NewRootCommand()
	assert.Equal(t, "custom", cmd.PersistentFlags().Lookup("engine").DefValue)

	_, _, err := execute(t, "ops")
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, err.Error(), "unknown engine")
}

func TestInvalidFlags(t *testing.T) {
	t.Setenv(EnvEngine, "")

	tests := []struct {
		name string
		args []string
	}{
		{"format", []string{"ops", "--format", "xml"}},
		{"engine", []string{"ops", "--engine", "nope"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := execute(t, tt.args...)
			require.Error(t, err)
			assert.Equal(t, ExitCommandError, GetExitCode(err))
		})
	}
}

func TestEngineNames(t *testing.T) {
	assert.Contains(t, EngineNames(), "planar")

	_, err := openEngine("nope")
	assert.Error(t, err)
}
