package commands

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoot(t *testing.T) {
	cmd := Root()

	require.NotNil(t, cmd)
	assert.Equal(t, "staticnet", cmd.Use)
	require.NotNil(t, cmd.PersistentFlags().Lookup("debug"))
}

func TestRoot_HasSubcommands(t *testing.T) {
	cmd := Root()

	subcommands := make(map[string]bool)
	for _, sub := range cmd.Commands() {
		subcommands[sub.Name()] = true
	}

	for _, expected := range []string{"serve", "decode", "encode", "validate"} {
		assert.True(t, subcommands[expected], "Expected subcommand %s not found", expected)
	}
}

func TestServe_Flags(t *testing.T) {
	cmd := Serve()

	flag := cmd.Flags().Lookup("config")
	require.NotNil(t, flag)
	assert.Equal(t, "c", flag.Shorthand)
	require.NotNil(t, cmd.Flags().Lookup("env-file"))
}

func TestDecode_MacFlag(t *testing.T) {
	cmd := Decode()

	require.NotNil(t, cmd.Flags().Lookup("mac"))
	assert.Error(t, cmd.Args(cmd, nil), "decode needs at least one file")
}

func TestArgumentCounts(t *testing.T) {
	for _, name := range []string{"encode", "validate"} {
		t.Run(name, func(t *testing.T) {
			cmd := Root()
			cmd.SetOut(&bytes.Buffer{})
			cmd.SetErr(&bytes.Buffer{})
			cmd.SetArgs([]string{name})
			assert.Error(t, cmd.Execute())
		})
	}
}
