package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xrizer/xrizer-go/domain/entities"
	"github.com/xrizer/xrizer-go/extensions"
	"github.com/xrizer/xrizer-go/internal/testutil"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestVersionsCmd(t *testing.T) {
	out, err := run(t, "versions")
	require.NoError(t, err)
	assert.Equal(t, "IVRClientCore_002\nIVRClientCore_003\n", out)
}

func TestConfigCmd(t *testing.T) {
	t.Setenv("XRIZER_CONFIG", "")
	t.Setenv("XRIZER_LOG_LEVEL", "")
	path := filepath.Join(t.TempDir(), "xrizer.yaml")
	require.NoError(t, os.WriteFile(path, []byte("log_level: debug\ndisabled_extensions: [XR_MNDX_xdev_space]\n"), 0o600))

	out, err := run(t, "config", "--config", path)
	require.NoError(t, err)
	assert.Contains(t, out, "log_level: debug")
	assert.Contains(t, out, "- XR_MNDX_xdev_space")

	_, err = run(t, "config", "--config", filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestConfigCmd_Schema(t *testing.T) {
	out, err := run(t, "config", "--schema")
	require.NoError(t, err)
	assert.Contains(t, out, `"log_level"`)
	assert.Contains(t, out, `"disabled_extensions"`)
}

func TestProbe(t *testing.T) {
	tests := []struct {
		name     string
		mock     []testutil.MockOption
		disabled []string
		want     string
	}{
		{name: "loaded", want: "XR_MNDX_xdev_space: loaded"},
		{name: "disabled", disabled: []string{extensions.XDevSpaceName}, want: "XR_MNDX_xdev_space: disabled"},
		{name: "not advertised", mock: []testutil.MockOption{testutil.WithAdvertised()}, want: "XR_MNDX_xdev_space: not advertised"},
		{
			name: "failed",
			mock: []testutil.MockOption{testutil.WithProcFailure("xrEnumerateXDevsMNDX", entities.ErrorFunctionUnsupported)},
			want: "XR_MNDX_xdev_space: failed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := testutil.NewMockRuntime(tt.mock...)
			var out bytes.Buffer
			require.NoError(t, probe(&out, m, "probe", tt.disabled))
			assert.Contains(t, out.String(), tt.want)
			assert.Contains(t, out.String(), "metrics:")
			assert.Zero(t, m.LiveInstances())
		})
	}
}
