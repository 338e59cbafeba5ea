package entities

import "fmt"

// Result is an XrResult. Zero is success, positive values are qualified
// successes and negative values are failures.
type Result int32

// Result codes used by the shim. Values are taken from the OpenXR registry.
const (
	Success                    Result = 0
	TimeoutExpired             Result = 1
	ErrorValidationFailure     Result = -1
	ErrorRuntimeFailure        Result = -2
	ErrorOutOfMemory           Result = -3
	ErrorAPIVersionUnsupported Result = -4
	ErrorInitializationFailed  Result = -6
	ErrorFunctionUnsupported   Result = -7
	ErrorFeatureUnsupported    Result = -8
	ErrorExtensionNotPresent   Result = -9
	ErrorLimitReached          Result = -10
	ErrorSizeInsufficient      Result = -11
	ErrorHandleInvalid         Result = -12
	ErrorInstanceLost          Result = -13
	ErrorSessionLost           Result = -17
	ErrorRuntimeUnavailable    Result = -51
	ErrorNameInvalid           Result = -49
)

var resultNames = map[Result]string{
	Success:                    "XR_SUCCESS",
	TimeoutExpired:             "XR_TIMEOUT_EXPIRED",
	ErrorValidationFailure:     "XR_ERROR_VALIDATION_FAILURE",
	ErrorRuntimeFailure:        "XR_ERROR_RUNTIME_FAILURE",
	ErrorOutOfMemory:           "XR_ERROR_OUT_OF_MEMORY",
	ErrorAPIVersionUnsupported: "XR_ERROR_API_VERSION_UNSUPPORTED",
	ErrorInitializationFailed:  "XR_ERROR_INITIALIZATION_FAILED",
	ErrorFunctionUnsupported:   "XR_ERROR_FUNCTION_UNSUPPORTED",
	ErrorFeatureUnsupported:    "XR_ERROR_FEATURE_UNSUPPORTED",
	ErrorExtensionNotPresent:   "XR_ERROR_EXTENSION_NOT_PRESENT",
	ErrorLimitReached:          "XR_ERROR_LIMIT_REACHED",
	ErrorSizeInsufficient:      "XR_ERROR_SIZE_INSUFFICIENT",
	ErrorHandleInvalid:         "XR_ERROR_HANDLE_INVALID",
	ErrorInstanceLost:          "XR_ERROR_INSTANCE_LOST",
	ErrorSessionLost:           "XR_ERROR_SESSION_LOST",
	ErrorRuntimeUnavailable:    "XR_ERROR_RUNTIME_UNAVAILABLE",
	ErrorNameInvalid:           "XR_ERROR_NAME_INVALID",
}

// Succeeded reports whether r is a success or qualified success code.
func (r Result) Succeeded() bool {
	return r >= 0
}

// String returns the registry name of the code, or its numeric value.
func (r Result) String() string {
	if name, ok := resultNames[r]; ok {
		return name
	}
	return fmt.Sprintf("XrResult(%d)", int32(r))
}

// StructureType is the XrStructureType tag at the head of every extensible record.
type StructureType int32

// Structure types for records built by the shim.
const (
	TypeUnknown                       StructureType = 0
	TypeAPILayerProperties            StructureType = 1
	TypeExtensionProperties           StructureType = 2
	TypeInstanceCreateInfo            StructureType = 3
	TypeSystemXDevSpacePropertiesMNDX StructureType = 1000444001
	TypeCreateXDevListInfoMNDX        StructureType = 1000444002
	TypeGetXDevInfoMNDX               StructureType = 1000444003
	TypeXDevPropertiesMNDX            StructureType = 1000444004
	TypeCreateXDevSpaceInfoMNDX       StructureType = 1000444005
)

// Bool32 is XrBool32.
type Bool32 uint32

// Bool32 values.
const (
	False Bool32 = 0
	True  Bool32 = 1
)

// Bool converts to a Go bool.
func (b Bool32) Bool() bool {
	return b != False
}

// Instance is an XrInstance handle.
type Instance uint64

// Session is an XrSession handle.
type Session uint64

// Space is an XrSpace handle.
type Space uint64

// SystemID is an XrSystemId atom.
type SystemID uint64

// XDevID identifies one device within an XDevList (XrXDevIdMNDX).
type XDevID uint64

// XDevList is an XrXDevListMNDX handle.
type XDevList uint64

// Null handle and atom values.
const (
	NullInstance Instance = 0
	NullSession  Session  = 0
	NullSpace    Space    = 0
	NullXDevID   XDevID   = 0
	NullXDevList XDevList = 0
)

// Version is an XrVersion (major:16 | minor:16 | patch:32).
type Version uint64

// MakeVersion packs a version the way XR_MAKE_VERSION does.
func MakeVersion(major, minor, patch uint32) Version {
	return Version(uint64(major&0xffff)<<48 | uint64(minor&0xffff)<<32 | uint64(patch))
}

// Major returns the major component.
func (v Version) Major() uint32 { return uint32(v >> 48) }

// Minor returns the minor component.
func (v Version) Minor() uint32 { return uint32(v>>32) & 0xffff }

// Patch returns the patch component.
func (v Version) Patch() uint32 { return uint32(v) }

func (v Version) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major(), v.Minor(), v.Patch())
}

// APIVersion10 is the core API version requested at instance creation.
var APIVersion10 = MakeVersion(1, 0, 0)
