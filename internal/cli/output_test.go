package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSuccessJSONLeavesSignaturesReadable(t *testing.T) {
	var buf bytes.Buffer
	f := &OutputFormatter{Format: "json", Writer: &buf}

	require.NoError(t, f.Success(map[string]string{"types": "OO->B"}))
	assert.Contains(t, buf.String(), `"OO->B"`)
	assert.NotContains(t, buf.String(), `>`)
}
