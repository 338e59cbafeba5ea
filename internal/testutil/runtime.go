package testutil

import (
	"slices"
	"sync"
	"unsafe"

	"github.com/xrizer/xrizer-go/domain/entities"
	xrerrors "github.com/xrizer/xrizer-go/domain/errors"
	"github.com/xrizer/xrizer-go/domain/ports"
)

// XDevSpaceExtension is the extension the mock implements.
const XDevSpaceExtension = "XR_MNDX_xdev_space"

// MockDevice is one device reported by the mock runtime.
type MockDevice struct {
	Name           string
	Serial         string
	ID             entities.XDevID
	CanCreateSpace bool
}

// MockRuntime is an in-memory OpenXR runtime implementing ports.XrRuntime and
// the XR_MNDX_xdev_space functions. Its functions are registered with a
// FakeBridge and reached through GetInstanceProcAddr, so callers exercise the
// same resolve-and-bind path they use against a real loader.
type MockRuntime struct {
	bridge *FakeBridge

	mu           sync.Mutex
	advertised   []string
	procs        map[string]uintptr
	procFailures map[string]entities.Result
	lookups      []string
	instances    map[entities.Instance][]string
	devices      []MockDevice
	generation   uint64
	lists        map[entities.XDevList]bool
	spaces       map[entities.Space]entities.XDevID
	nextHandle   uint64
	created      int
	destroyed    map[entities.XDevList]int
	createResult entities.Result
	hotplug      []MockDevice
}

// MockOption configures a MockRuntime.
type MockOption func(*MockRuntime)

// WithAdvertised sets the extension names the runtime advertises.
func WithAdvertised(names ...string) MockOption {
	return func(m *MockRuntime) {
		m.advertised = names
	}
}

// WithProcFailure makes GetInstanceProcAddr fail for name with code.
// Success yields a null pointer with a success status.
func WithProcFailure(name string, code entities.Result) MockOption {
	return func(m *MockRuntime) {
		m.procFailures[name] = code
	}
}

// WithDevices seeds the device set.
func WithDevices(devices ...MockDevice) MockOption {
	return func(m *MockRuntime) {
		m.devices = devices
	}
}

// WithCreateListResult makes xrCreateXDevListMNDX return code.
func WithCreateListResult(code entities.Result) MockOption {
	return func(m *MockRuntime) {
		m.createResult = code
	}
}

// WithHotplug queues devices that appear, one per call, while the caller is
// filling a buffer sized from the previous count. Such a call fails with
// XR_ERROR_SIZE_INSUFFICIENT, the way a runtime reports that the set grew.
func WithHotplug(devices ...MockDevice) MockOption {
	return func(m *MockRuntime) {
		m.hotplug = devices
	}
}

// NewMockRuntime returns a runtime advertising XR_MNDX_xdev_space with no devices.
func NewMockRuntime(opts ...MockOption) *MockRuntime {
	m := &MockRuntime{
		bridge:       NewFakeBridge(),
		advertised:   []string{"XR_KHR_vulkan_enable", XDevSpaceExtension},
		procs:        make(map[string]uintptr),
		procFailures: make(map[string]entities.Result),
		instances:    make(map[entities.Instance][]string),
		lists:        make(map[entities.XDevList]bool),
		spaces:       make(map[entities.Space]entities.XDevID),
		destroyed:    make(map[entities.XDevList]int),
		nextHandle:   0x100,
		generation:   1,
	}
	for _, opt := range opts {
		opt(m)
	}

	m.procs["xrCreateXDevListMNDX"] = m.bridge.Callback(m.createXDevList)
	m.procs["xrGetXDevListGenerationNumberMNDX"] = m.bridge.Callback(m.getGenerationNumber)
	m.procs["xrEnumerateXDevsMNDX"] = m.bridge.Callback(m.enumerateXDevs)
	m.procs["xrGetXDevPropertiesMNDX"] = m.bridge.Callback(m.getXDevProperties)
	m.procs["xrDestroyXDevListMNDX"] = m.bridge.Callback(m.destroyXDevList)
	m.procs["xrCreateXDevSpaceMNDX"] = m.bridge.Callback(m.createXDevSpace)
	return m
}

// Bridge implements ports.XrRuntime.
func (m *MockRuntime) Bridge() ports.FuncBridge {
	return m.bridge
}

// FakeBridge returns the concrete bridge, for vtable assertions.
func (m *MockRuntime) FakeBridge() *FakeBridge {
	return m.bridge
}

// GetInstanceProcAddr implements ports.ProcAddrResolver.
func (m *MockRuntime) GetInstanceProcAddr(instance entities.Instance, name string) (uintptr, entities.Result) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lookups = append(m.lookups, name)

	if instance == entities.NullInstance {
		return 0, entities.ErrorHandleInvalid
	}
	if code, ok := m.procFailures[name]; ok {
		return 0, code
	}
	addr, ok := m.procs[name]
	if !ok {
		return 0, entities.ErrorFunctionUnsupported
	}
	return addr, entities.Success
}

// EnumerateInstanceExtensions implements ports.XrRuntime.
func (m *MockRuntime) EnumerateInstanceExtensions() ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.advertised), nil
}

// CreateInstance implements ports.XrRuntime.
func (m *MockRuntime) CreateInstance(_ string, extensions []string) (entities.Instance, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, ext := range extensions {
		if !slices.Contains(m.advertised, ext) {
			return entities.NullInstance, xrerrors.CheckResult("xrCreateInstance", entities.ErrorExtensionNotPresent)
		}
	}
	instance := entities.Instance(m.newHandle())
	m.instances[instance] = slices.Clone(extensions)
	return instance, nil
}

// DestroyInstance implements ports.XrRuntime.
func (m *MockRuntime) DestroyInstance(instance entities.Instance) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.instances[instance]; !ok {
		return xrerrors.CheckResult("xrDestroyInstance", entities.ErrorHandleInvalid)
	}
	delete(m.instances, instance)
	return nil
}

// EnabledExtensions returns the extensions an instance was created with.
func (m *MockRuntime) EnabledExtensions(instance entities.Instance) ([]string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	exts, ok := m.instances[instance]
	return slices.Clone(exts), ok
}

// LiveInstances returns the number of instances not yet destroyed.
func (m *MockRuntime) LiveInstances() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.instances)
}

// Lookups returns every name passed to GetInstanceProcAddr, in order.
func (m *MockRuntime) Lookups() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.lookups)
}

// SetDevices replaces the device set and advances the generation number.
func (m *MockRuntime) SetDevices(devices ...MockDevice) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.devices = devices
	m.generation++
}

// ListsCreated returns the number of successful xrCreateXDevListMNDX calls.
func (m *MockRuntime) ListsCreated() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.created
}

// DestroyCalls returns how many times xrDestroyXDevListMNDX was called for list.
func (m *MockRuntime) DestroyCalls(list entities.XDevList) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.destroyed[list]
}

// TotalDestroyCalls returns the number of xrDestroyXDevListMNDX calls.
func (m *MockRuntime) TotalDestroyCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	total := 0
	for _, n := range m.destroyed {
		total += n
	}
	return total
}

// LiveLists returns the number of lists not yet destroyed.
func (m *MockRuntime) LiveLists() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.lists)
}

// SpaceDevice returns the device a space created by xrCreateXDevSpaceMNDX is anchored to.
func (m *MockRuntime) SpaceDevice(space entities.Space) (entities.XDevID, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	id, ok := m.spaces[space]
	return id, ok
}

func (m *MockRuntime) newHandle() uint64 {
	m.nextHandle++
	return m.nextHandle
}

func (m *MockRuntime) findDevice(id entities.XDevID) (MockDevice, bool) {
	for _, d := range m.devices {
		if d.ID == id {
			return d, true
		}
	}
	return MockDevice{}, false
}

func (m *MockRuntime) createXDevList(session entities.Session, info *entities.CreateXDevListInfo, list *entities.XDevList) entities.Result {
	m.mu.Lock()
	defer m.mu.Unlock()
	if session == entities.NullSession {
		return entities.ErrorHandleInvalid
	}
	if info == nil || list == nil || info.Type != entities.TypeCreateXDevListInfoMNDX || info.Next != nil {
		return entities.ErrorValidationFailure
	}
	if m.createResult != entities.Success {
		return m.createResult
	}
	handle := entities.XDevList(m.newHandle())
	m.lists[handle] = true
	m.created++
	*list = handle
	return entities.Success
}

func (m *MockRuntime) getGenerationNumber(list entities.XDevList, generation *uint64) entities.Result {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.lists[list] {
		return entities.ErrorHandleInvalid
	}
	if generation == nil {
		return entities.ErrorValidationFailure
	}
	*generation = m.generation
	return entities.Success
}

func (m *MockRuntime) enumerateXDevs(list entities.XDevList, capacity uint32, count *uint32, xdevs *entities.XDevID) entities.Result {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.lists[list] {
		return entities.ErrorHandleInvalid
	}
	if count == nil || (capacity > 0 && xdevs == nil) {
		return entities.ErrorValidationFailure
	}
	grew := false
	if capacity > 0 && len(m.hotplug) > 0 {
		m.devices = append(m.devices, m.hotplug[0])
		m.hotplug = m.hotplug[1:]
		m.generation++
		grew = true
	}
	*count = uint32(len(m.devices))
	if capacity == 0 {
		return entities.Success
	}
	if grew && int(capacity) < len(m.devices) {
		return entities.ErrorSizeInsufficient
	}
	out := unsafe.Slice(xdevs, capacity)
	for i := 0; i < len(m.devices) && i < int(capacity); i++ {
		out[i] = m.devices[i].ID
	}
	return entities.Success
}

func (m *MockRuntime) getXDevProperties(list entities.XDevList, info *entities.GetXDevInfo, props *entities.XDevProperties) entities.Result {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.lists[list] {
		return entities.ErrorHandleInvalid
	}
	if info == nil || props == nil || info.Type != entities.TypeGetXDevInfoMNDX || props.Type != entities.TypeXDevPropertiesMNDX {
		return entities.ErrorValidationFailure
	}
	dev, ok := m.findDevice(info.ID)
	if !ok {
		return entities.ErrorValidationFailure
	}
	entities.PutCString(props.NameBuf[:], dev.Name)
	entities.PutCString(props.SerialBuf[:], dev.Serial)
	props.CanCreateSpace = entities.False
	if dev.CanCreateSpace {
		props.CanCreateSpace = entities.True
	}
	return entities.Success
}

func (m *MockRuntime) destroyXDevList(list entities.XDevList) entities.Result {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.destroyed[list]++
	if !m.lists[list] {
		return entities.ErrorHandleInvalid
	}
	delete(m.lists, list)
	return entities.Success
}

func (m *MockRuntime) createXDevSpace(session entities.Session, info *entities.CreateXDevSpaceInfo, space *entities.Space) entities.Result {
	m.mu.Lock()
	defer m.mu.Unlock()
	if session == entities.NullSession {
		return entities.ErrorHandleInvalid
	}
	if info == nil || space == nil || info.Type != entities.TypeCreateXDevSpaceInfoMNDX {
		return entities.ErrorValidationFailure
	}
	if !m.lists[info.XDevList] {
		return entities.ErrorHandleInvalid
	}
	dev, ok := m.findDevice(info.ID)
	if !ok {
		return entities.ErrorValidationFailure
	}
	if !dev.CanCreateSpace {
		return entities.ErrorFeatureUnsupported
	}
	handle := entities.Space(m.newHandle())
	m.spaces[handle] = dev.ID
	*space = handle
	return entities.Success
}
