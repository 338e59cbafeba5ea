// Package testutil provides test doubles and assertions shared by the shim's tests.
package testutil

import (
	"runtime"
	"testing"
	"weak"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xrizer/xrizer-go/domain/entities"
	xrerrors "github.com/xrizer/xrizer-go/domain/errors"
)

// RequireResultCode asserts that err carries the given XrResult.
func RequireResultCode(t *testing.T, err error, want entities.Result, msgAndArgs ...interface{}) {
	t.Helper()
	require.Error(t, err, msgAndArgs...)
	got, ok := xrerrors.ResultCode(err)
	require.True(t, ok, "error %v does not carry an XrResult", err)
	require.Equal(t, want, got, msgAndArgs...)
}

// AssertInitError asserts an OpenVR init error value.
func AssertInitError(t *testing.T, want, got entities.InitError, msgAndArgs ...interface{}) {
	t.Helper()
	assert.Equal(t, want.ID(), got.ID(), msgAndArgs...)
}

// RequireCollected runs the garbage collector until the weakly referenced
// object is reclaimed, failing the test if it stays reachable.
func RequireCollected[T any](t *testing.T, w weak.Pointer[T]) {
	t.Helper()
	for i := 0; i < 10; i++ {
		runtime.GC()
		if w.Value() == nil {
			return
		}
	}
	require.Fail(t, "object still reachable after repeated garbage collection")
}

// AssertPanics asserts that the function panics
func AssertPanics(t *testing.T, f func(), msgAndArgs ...interface{}) {
	t.Helper()
	assert.Panics(t, f, msgAndArgs...)
}

// AssertNotPanics asserts that the function does not panic
func AssertNotPanics(t *testing.T, f func(), msgAndArgs ...interface{}) {
	t.Helper()
	assert.NotPanics(t, f, msgAndArgs...)
}
