package cli

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvalJSON(t *testing.T) {
	t.Setenv(EnvEngine, "")

	out, _, err := execute(t, "eval", "distance", "--format", "json", "--args",
		`[{"op":"points","args":[[[0,0],[3,4]]]}, {"op":"points","args":[[[0,0]]]}]`)
	require.NoError(t, err)

	var res struct {
		Op     string    `json:"op"`
		Engine string    `json:"engine"`
		DType  string    `json:"dtype"`
		Shape  []int     `json:"shape"`
		Values []float64 `json:"values"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.Equal(t, "distance", res.Op)
	assert.Equal(t, "planar", res.Engine)
	assert.Equal(t, "float64", res.DType)
	assert.Equal(t, []int{2}, res.Shape)
	assert.Equal(t, []float64{0, 5}, res.Values)
}

func TestEvalGeometryText(t *testing.T) {
	t.Setenv(EnvEngine, "")

	out, _, err := execute(t, "eval", "linearrings", "--args", `[[[[0,0],[1,0],[1,1]]]]`)
	require.NoError(t, err)
	assert.Contains(t, out, "linearrings -> geometry[1]")
	assert.Contains(t, out, "[0] LinearRing (4 coordinates)")
}

func TestEvalScalarAndCodes(t *testing.T) {
	t.Setenv(EnvEngine, "")

	out, _, err := execute(t, "eval", "geom_type_id", "--format", "json", "--args",
		`[{"op":"buffer","args":[{"op":"points","args":[[1,2]]}, 1, 4]}]`)
	require.NoError(t, err)

	var res struct {
		Shape  []int `json:"shape"`
		Values []int `json:"values"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.Equal(t, []int{}, res.Shape)
	assert.Equal(t, []int{3}, res.Values)
}

func TestEvalErrors(t *testing.T) {
	t.Setenv(EnvEngine, "")

	tests := []struct {
		name     string
		args     []string
		code     int
		contains string
	}{
		{"unknown op", []string{"eval", "nope"}, ExitCommandError, "unknown op"},
		{"bad json", []string{"eval", "area", "--args", "{"}, ExitCommandError, "invalid --args"},
		{"ragged", []string{"eval", "points", "--args", "[[[1,2],[3]]]"}, ExitCommandError, "ragged"},
		{"unknown nested", []string{"eval", "area", "--args", `[{"op":"nope"}]`}, ExitCommandError, "unknown op"},
		{"string value", []string{"eval", "area", "--args", `["POINT (1 1)"]`}, ExitCommandError, "unsupported value"},
		{"arity", []string{"eval", "area", "--args", "[]"}, ExitFailure, "takes 1 arguments"},
		{"engine failure", []string{"eval", "get_x", "--args",
			`[{"op":"linestrings","args":[[[0,0],[1,1]]]}]`}, ExitFailure, "not a Point"},
		{"type error", []string{"eval", "area", "--args", "[1.5]"}, ExitFailure, "not a geometry"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := execute(t, tt.args...)
			require.Error(t, err)
			assert.Equal(t, tt.code, GetExitCode(err))
			assert.Contains(t, err.Error(), tt.contains)
		})
	}
}

func TestEvalVerbose(t *testing.T) {
	t.Setenv(EnvEngine, "")

	_, stderr, err := execute(t, "eval", "is_valid", "--verbose", "--args",
		`[{"op":"polygons_without_holes","args":[{"op":"linearrings","args":[[[0,0],[1,1],[1,0],[0,1]]]}]}]`)
	require.NoError(t, err)
	assert.Contains(t, stderr, "context ")
	assert.Contains(t, stderr, "notice:")
	assert.Contains(t, stderr, "Self-intersection")
}

func TestEvalVerboseJSONLogs(t *testing.T) {
	t.Setenv(EnvEngine, "")

	_, stderr, err := execute(t, "eval", "area", "--verbose", "--format", "json", "--args",
		`[{"op":"points","args":[[0,0]]}]`)
	require.NoError(t, err)
	assert.Contains(t, stderr, `"msg":"engine context initialized"`)
	assert.Contains(t, stderr, `"context_id":`)
}

func TestNumericArray(t *testing.T) {
	a, err := numericArray([]any{[]any{1.0, 2.0}, []any{3.0, 4.0}})
	require.NoError(t, err)
	assert.Equal(t, []int{2, 2}, a.Shape())
	assert.Equal(t, []float64{1, 2, 3, 4}, a.Values())

	a, err = numericArray([]any{})
	require.NoError(t, err)
	assert.Equal(t, []int{0}, a.Shape())

	_, err = numericArray([]any{1.0, []any{2.0}})
	assert.ErrorIs(t, err, errMalformedArgs)

	_, err = numericArray([]any{true})
	assert.ErrorIs(t, err, errMalformedArgs)
}
