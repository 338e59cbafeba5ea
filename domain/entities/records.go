package entities

import (
	"bytes"
	"unsafe"
)

// MaxExtensionNameSize is XR_MAX_EXTENSION_NAME_SIZE.
const MaxExtensionNameSize = 128

// MaxApplicationNameSize is XR_MAX_APPLICATION_NAME_SIZE.
const MaxApplicationNameSize = 128

// MaxEngineNameSize is XR_MAX_ENGINE_NAME_SIZE.
const MaxEngineNameSize = 128

// XDevNameSize is the size of the name and serial buffers in XDevProperties.
const XDevNameSize = 256

// Quaternionf is XrQuaternionf.
type Quaternionf struct {
	X, Y, Z, W float32
}

// Vector3f is XrVector3f.
type Vector3f struct {
	X, Y, Z float32
}

// Posef is XrPosef.
type Posef struct {
	Orientation Quaternionf
	Position    Vector3f
}

// IdentityPose has no rotation and no translation.
var IdentityPose = Posef{Orientation: Quaternionf{W: 1}}

// ExtensionProperties is XrExtensionProperties.
type ExtensionProperties struct {
	Type             StructureType
	Next             unsafe.Pointer
	ExtensionName    [MaxExtensionNameSize]byte
	ExtensionVersion uint32
}

// NewExtensionProperties returns a record with its type tag populated.
func NewExtensionProperties() ExtensionProperties {
	return ExtensionProperties{Type: TypeExtensionProperties}
}

// Name returns the extension name up to the first NUL.
func (p *ExtensionProperties) Name() string {
	return CString(p.ExtensionName[:])
}

// ApplicationInfo is XrApplicationInfo.
type ApplicationInfo struct {
	ApplicationName    [MaxApplicationNameSize]byte
	ApplicationVersion uint32
	EngineName         [MaxEngineNameSize]byte
	EngineVersion      uint32
	APIVersion         Version
}

// InstanceCreateInfo is XrInstanceCreateInfo.
type InstanceCreateInfo struct {
	Type                  StructureType
	Next                  unsafe.Pointer
	CreateFlags           uint64
	ApplicationInfo       ApplicationInfo
	EnabledAPILayerCount  uint32
	EnabledAPILayerNames  **byte
	EnabledExtensionCount uint32
	EnabledExtensionNames **byte
}

// SystemXDevSpaceProperties is XrSystemXDevSpacePropertiesMNDX, chained onto
// XrSystemProperties to ask whether the system supports xdev spaces.
type SystemXDevSpaceProperties struct {
	Type              StructureType
	Next              unsafe.Pointer
	SupportsXDevSpace Bool32
}

// NewSystemXDevSpaceProperties returns a record with its type tag populated.
func NewSystemXDevSpaceProperties() SystemXDevSpaceProperties {
	return SystemXDevSpaceProperties{Type: TypeSystemXDevSpacePropertiesMNDX}
}

// CreateXDevListInfo is XrCreateXDevListInfoMNDX.
type CreateXDevListInfo struct {
	Type StructureType
	Next unsafe.Pointer
}

// NewCreateXDevListInfo returns a record with its type tag populated.
func NewCreateXDevListInfo() CreateXDevListInfo {
	return CreateXDevListInfo{Type: TypeCreateXDevListInfoMNDX}
}

// GetXDevInfo is XrGetXDevInfoMNDX.
type GetXDevInfo struct {
	Type StructureType
	Next unsafe.Pointer
	ID   XDevID
}

// NewGetXDevInfo returns a query record for one device.
func NewGetXDevInfo(id XDevID) GetXDevInfo {
	return GetXDevInfo{Type: TypeGetXDevInfoMNDX, ID: id}
}

// XDevProperties is XrXDevPropertiesMNDX. It is a snapshot returned by a
// single query and has no lifecycle of its own.
type XDevProperties struct {
	Type           StructureType
	Next           unsafe.Pointer
	NameBuf        [XDevNameSize]byte
	SerialBuf      [XDevNameSize]byte
	CanCreateSpace Bool32
}

// NewXDevProperties returns an output record with its type tag populated.
func NewXDevProperties() XDevProperties {
	return XDevProperties{Type: TypeXDevPropertiesMNDX}
}

// Name returns the device name up to the first NUL.
func (p *XDevProperties) Name() string {
	return CString(p.NameBuf[:])
}

// Serial returns the device serial up to the first NUL.
func (p *XDevProperties) Serial() string {
	return CString(p.SerialBuf[:])
}

// CreateXDevSpaceInfo is XrCreateXDevSpaceInfoMNDX.
type CreateXDevSpaceInfo struct {
	Type     StructureType
	Next     unsafe.Pointer
	XDevList XDevList
	ID       XDevID
	Offset   Posef
}

// NewCreateXDevSpaceInfo returns a record anchoring a space to one device.
func NewCreateXDevSpaceInfo(list XDevList, id XDevID, offset Posef) CreateXDevSpaceInfo {
	return CreateXDevSpaceInfo{
		Type:     TypeCreateXDevSpaceInfoMNDX,
		XDevList: list,
		ID:       id,
		Offset:   offset,
	}
}

// CString returns the bytes of buf up to the first NUL as a string.
func CString(buf []byte) string {
	if i := bytes.IndexByte(buf, 0); i >= 0 {
		buf = buf[:i]
	}
	return string(buf)
}

// PutCString copies s into buf as a NUL-terminated string, truncating if
// needed. It returns false when s did not fit.
func PutCString(buf []byte, s string) bool {
	if len(buf) == 0 {
		return false
	}
	n := copy(buf[:len(buf)-1], s)
	buf[n] = 0
	return n == len(s)
}
