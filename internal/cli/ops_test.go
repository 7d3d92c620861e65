package cli

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestOpsText(t *testing.T) {
	t.Setenv(EnvEngine, "")

	out, _, err := execute(t, "ops")
	require.NoError(t, err)
	assert.Contains(t, out, "NAME")
	assert.Contains(t, out, "is_empty")
	assert.Contains(t, out, "(i,d)->()")
}

func TestOpsJSON(t *testing.T) {
	t.Setenv(EnvEngine, "")

	out, _, err := execute(t, "ops", "--kind", "measure", "--format", "json")
	require.NoError(t, err)

	var list []OpInfo
	require.NoError(t, json.Unmarshal([]byte(out), &list))
	require.Len(t, list, 5)
	assert.Equal(t, "area", list[0].Name)
	for _, op := range list {
		assert.Equal(t, "measure", op.Kind)
		assert.Equal(t, 1, op.NIn)
	}
}

func TestOpsYAML(t *testing.T) {
	t.Setenv(EnvEngine, "")

	out, _, err := execute(t, "ops", "--kind", "polygons_with_holes", "--format", "yaml")
	require.NoError(t, err)

	var list []OpInfo
	require.NoError(t, yaml.Unmarshal([]byte(out), &list))
	require.Len(t, list, 1)
	assert.Equal(t, OpInfo{
		Name:      "polygons_with_holes",
		Kind:      "polygons_with_holes",
		NIn:       2,
		Types:     "OO->O",
		Signature: "(),(i)->()",
	}, list[0])
}

func TestOpsUnknownKind(t *testing.T) {
	t.Setenv(EnvEngine, "")

	_, _, err := execute(t, "ops", "--kind", "bogus")
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}
