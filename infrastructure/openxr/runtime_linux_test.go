package openxr

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xrizer/xrizer-go/internal/testutil"
)

func TestOpen_MissingLoader(t *testing.T) {
	_, err := Open("/nonexistent/libopenxr_loader.so.1", testutil.NewFakeBridge())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "libopenxr_loader.so.1")
}

func TestOpen_LibraryWithoutOpenXR(t *testing.T) {
	bridge := testutil.NewFakeBridge()
	_, err := Open("libc.so.6", bridge)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "xrGetInstanceProcAddr")
	assert.Zero(t, bridge.Callbacks())
}
