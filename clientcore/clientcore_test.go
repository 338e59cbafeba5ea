package clientcore_test

import (
	"errors"
	"runtime"
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xrizer/xrizer-go/clientcore"
	"github.com/xrizer/xrizer-go/domain/entities"
	"github.com/xrizer/xrizer-go/domain/ports"
	"github.com/xrizer/xrizer-go/extensions"
	"github.com/xrizer/xrizer-go/internal/abi"
	"github.com/xrizer/xrizer-go/internal/testutil"
)

func opener(m *testutil.MockRuntime) clientcore.RuntimeOpener {
	return func() (ports.XrRuntime, error) { return m, nil }
}

func TestInit_WithoutRuntime(t *testing.T) {
	c := clientcore.New()
	assert.False(t, c.IsHmdPresent())
	testutil.AssertInitError(t, entities.InitErrorInitHmdNotFound, c.Init(entities.ApplicationScene, ""))
	assert.False(t, c.Initialized())
}

func TestInit_LoadsAdvertisedExtensions(t *testing.T) {
	m := testutil.NewMockRuntime()
	c := clientcore.New(clientcore.WithRuntimeOpener(opener(m)), clientcore.WithApplicationName("hello vr"))
	require.True(t, c.IsHmdPresent())

	testutil.AssertInitError(t, entities.InitErrorNone, c.Init(entities.ApplicationScene, "{}"))
	assert.True(t, c.Initialized())
	assert.Equal(t, entities.ApplicationScene, c.ApplicationType())
	assert.NotNil(t, c.Extra().XDevSpace)

	enabled, ok := m.EnabledExtensions(c.Instance())
	require.True(t, ok)
	assert.Equal(t, []string{extensions.XDevSpaceName}, enabled)

	testutil.AssertInitError(t, entities.InitErrorNone, c.Init(entities.ApplicationOverlay, ""))
	assert.Equal(t, 1, m.LiveInstances(), "a second Init reuses the connection")
	assert.Equal(t, entities.ApplicationScene, c.ApplicationType())
}

func TestInit_ExtensionSelection(t *testing.T) {
	tests := []struct {
		name    string
		mock    []testutil.MockOption
		opts    []clientcore.Option
		enabled []string
	}{
		{
			name:    "disabled by configuration",
			opts:    []clientcore.Option{clientcore.WithDisabledExtensions(extensions.XDevSpaceName)},
			enabled: nil,
		},
		{
			name:    "not advertised",
			mock:    []testutil.MockOption{testutil.WithAdvertised("XR_KHR_vulkan_enable")},
			enabled: nil,
		},
		{
			name:    "advertised but fails to load",
			mock:    []testutil.MockOption{testutil.WithProcFailure("xrCreateXDevSpaceMNDX", entities.ErrorFunctionUnsupported)},
			enabled: []string{extensions.XDevSpaceName},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := testutil.NewMockRuntime(tt.mock...)
			c := clientcore.New(append(tt.opts, clientcore.WithRuntimeOpener(opener(m)))...)

			testutil.AssertInitError(t, entities.InitErrorNone, c.Init(entities.ApplicationScene, ""))
			assert.Nil(t, c.Extra().XDevSpace)
			enabled, ok := m.EnabledExtensions(c.Instance())
			require.True(t, ok)
			assert.Equal(t, tt.enabled, enabled)
		})
	}
}

func TestInit_Failures(t *testing.T) {
	c := clientcore.New(clientcore.WithRuntimeOpener(func() (ports.XrRuntime, error) {
		return nil, errors.New("no loader")
	}))
	testutil.AssertInitError(t, entities.InitErrorInitHmdNotFound, c.Init(entities.ApplicationScene, ""))

	m := testutil.NewMockRuntime()
	c = clientcore.New(clientcore.WithRuntimeOpener(opener(m)))
	testutil.AssertInitError(t, entities.InitErrorInitAppInfoInitFailed, c.Init(entities.ApplicationType(99), ""))
	assert.Zero(t, m.LiveInstances())
}

func TestCleanup(t *testing.T) {
	m := testutil.NewMockRuntime()
	c := clientcore.New(clientcore.WithRuntimeOpener(opener(m)))
	require.Equal(t, entities.InitErrorNone, c.Init(entities.ApplicationScene, ""))

	c.Cleanup()
	c.Cleanup()

	assert.Zero(t, m.LiveInstances())
	assert.False(t, c.Initialized())
	assert.Equal(t, entities.NullInstance, c.Instance())
	assert.Nil(t, c.Extra().XDevSpace)

	testutil.AssertInitError(t, entities.InitErrorNone, c.Init(entities.ApplicationScene, ""))
	assert.Equal(t, 1, m.LiveInstances())
}

func TestErrorStrings(t *testing.T) {
	c := clientcore.New()
	assert.Equal(t, "VRInitError_Init_InterfaceNotFound", c.IDForVRInitError(entities.InitErrorInitInterfaceNotFound))
	assert.Equal(t, "Interface Not Found (105)", c.EnglishStringForHmdError(entities.InitErrorInitInterfaceNotFound))
}

func TestGetGenericInterface_RequiresInit(t *testing.T) {
	c := clientcore.New()
	p, code := c.GetGenericInterface(clientcore.Version003)
	assert.Nil(t, p)
	testutil.AssertInitError(t, entities.InitErrorInitNotInitialized, code)
}

func TestNewFactory_RequiresBridge(t *testing.T) {
	_, err := clientcore.NewFactory()
	assert.Error(t, err)
}

type harness struct {
	bridge *testutil.FakeBridge
	mock   *testutil.MockRuntime
}

func newHarness(t *testing.T) (*harness, func(string) (unsafe.Pointer, entities.InitError)) {
	t.Helper()
	h := &harness{bridge: testutil.NewFakeBridge(), mock: testutil.NewMockRuntime()}
	f, err := clientcore.NewFactory(
		clientcore.WithBridge(h.bridge),
		clientcore.WithRuntimeOpener(opener(h.mock)),
	)
	require.NoError(t, err)
	assert.Equal(t, []string{clientcore.Version002, clientcore.Version003}, f.Versions())
	return h, f.Lookup
}

func TestFactory_UnknownVersion(t *testing.T) {
	_, lookup := newHarness(t)
	for _, version := range []string{"IVRClientCore_001", "IVRClientCore_004", "IVRSystem_022"} {
		p, code := lookup(version)
		assert.Nil(t, p)
		testutil.AssertInitError(t, entities.InitErrorInitInterfaceNotFound, code)
	}
}

func TestVtable_ClientCore003(t *testing.T) {
	h, lookup := newHarness(t)
	core, code := lookup(clientcore.Version003)
	require.NotNil(t, core)
	testutil.AssertInitError(t, entities.InitErrorNone, code)

	call := func(slot int, args ...uintptr) uintptr { return h.bridge.CallVtable(core, slot, args...) }

	assert.Equal(t, uintptr(1), call(clientcore.SlotIsHmdPresent))
	assert.Equal(t, uintptr(0), call(clientcore.SlotInit, uintptr(entities.ApplicationScene), abi.CString("{}")))
	assert.Equal(t, 1, h.mock.LiveInstances())

	assert.Equal(t, uintptr(0), call(clientcore.SlotIsInterfaceVersionValid, abi.CString(clientcore.Version002)))
	assert.Equal(t, uintptr(105), call(clientcore.SlotIsInterfaceVersionValid, abi.CString("IVRCompositor_028")))

	status := new(int32)
	*status = -1
	other := call(clientcore.SlotGetGenericInterface, abi.CString(clientcore.Version002), uintptr(unsafe.Pointer(status)))
	assert.NotZero(t, other)
	assert.Equal(t, int32(0), *status)

	missing := call(clientcore.SlotGetGenericInterface, abi.CString("IVRCompositor_028"), uintptr(unsafe.Pointer(status)))
	assert.Zero(t, missing)
	assert.Equal(t, int32(105), *status)
	runtime.KeepAlive(status)

	assert.Equal(t, "Interface Not Found (105)", abi.GoString(call(clientcore.SlotEnglishStringForHmdError, 105)))
	assert.Equal(t, "VRInitError_Init_HmdNotFound", abi.GoString(call(clientcore.SlotIDForVRInitError, 108)))

	call(clientcore.SlotCleanup)
	assert.Zero(t, h.mock.LiveInstances())
}

func TestVtable_ClientCore002(t *testing.T) {
	h, lookup := newHarness(t)
	core, code := lookup(clientcore.Version002)
	require.NotNil(t, core)
	testutil.AssertInitError(t, entities.InitErrorNone, code)

	assert.Equal(t, uintptr(0), h.bridge.CallVtable(core, clientcore.SlotInit, uintptr(entities.ApplicationOverlay)))
	assert.Equal(t, 1, h.mock.LiveInstances())

	h.bridge.CallVtable(core, clientcore.SlotCleanup)
	assert.Zero(t, h.mock.LiveInstances())
}

func TestVtable_GetGenericInterfaceBeforeInit(t *testing.T) {
	h, lookup := newHarness(t)
	core, _ := lookup(clientcore.Version003)

	status := new(int32)
	p := h.bridge.CallVtable(core, clientcore.SlotGetGenericInterface, abi.CString(clientcore.Version003), uintptr(unsafe.Pointer(status)))
	assert.Zero(t, p)
	assert.Equal(t, int32(entities.InitErrorInitNotInitialized), *status)
	runtime.KeepAlive(status)

	assert.Zero(t, h.bridge.CallVtable(core, clientcore.SlotGetGenericInterface, abi.CString(clientcore.Version003), 0),
		"a null status slot is tolerated")
}
