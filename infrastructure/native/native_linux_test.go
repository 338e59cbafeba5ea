package native

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpen_MissingLibrary(t *testing.T) {
	_, err := Open("/nonexistent/libopenxr_missing.so")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "libopenxr_missing.so")
}

func TestBridge_BindsLibcFunction(t *testing.T) {
	lib, err := Open("libc.so.6")
	require.NoError(t, err)
	t.Cleanup(func() { _ = lib.Close() })
	assert.Equal(t, "libc.so.6", lib.Path())

	addr, err := lib.Lookup("strlen")
	require.NoError(t, err)
	require.NotZero(t, addr)

	var strlen func(s *byte) uintptr
	NewBridge().Bind(&strlen, addr)

	s := []byte("XR_MNDX_xdev_space\x00")
	assert.Equal(t, uintptr(18), strlen(&s[0]))

	_, err = lib.Lookup("xrGetInstanceProcAddr")
	assert.Error(t, err)
}
