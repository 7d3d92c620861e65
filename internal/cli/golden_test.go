package cli

import (
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/require"
)

func TestGolden(t *testing.T) {
	t.Setenv(EnvEngine, "")

	tests := []struct {
		name string
		args []string
	}{
		{"ops_codes", []string{"ops", "--kind", "code", "--format", "json"}},
		{"eval_distance", []string{"eval", "distance", "--format", "json", "--args",
			`[{"op":"points","args":[[[0,0],[3,4]]]}, {"op":"points","args":[[[0,0]]]}]`}},
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, _, err := execute(t, tt.args...)
			require.NoError(t, err)
			g.Assert(t, tt.name, []byte(out))
		})
	}
}
