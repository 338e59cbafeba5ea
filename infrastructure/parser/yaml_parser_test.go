package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestYamlConfigParser_Parse(t *testing.T) {
	data := []byte(`
log_level: debug
log_stdout: false
log_max_size_mb: 5
disabled_extensions:
  - XR_MNDX_xdev_space
`)
	tree, err := NewYamlConfigParser().Parse(data)
	require.NoError(t, err)

	assert.Equal(t, "debug", tree["log_level"])
	assert.Equal(t, false, tree["log_stdout"])
	assert.Equal(t, 5, tree["log_max_size_mb"])
	assert.Equal(t, []any{"XR_MNDX_xdev_space"}, tree["disabled_extensions"])
}

func TestYamlConfigParser_Empty(t *testing.T) {
	tree, err := NewYamlConfigParser().Parse(nil)
	require.NoError(t, err)
	assert.Empty(t, tree)
}

func TestYamlConfigParser_Invalid(t *testing.T) {
	_, err := NewYamlConfigParser().Parse([]byte("log_level: [unterminated"))
	assert.Error(t, err)

	_, err = NewYamlConfigParser().Parse([]byte("- a\n- b\n"))
	assert.Error(t, err, "a top-level list is not a config tree")
}
