package ports

import "github.com/xrizer/xrizer-go/domain/entities"

// ProcAddrResolver resolves OpenXR functions by name (xrGetInstanceProcAddr).
type ProcAddrResolver interface {
	// GetInstanceProcAddr returns the address of the named function for the
	// given instance, or a non-success result.
	GetInstanceProcAddr(instance entities.Instance, name string) (uintptr, entities.Result)
}

// XrRuntime is a connection to an OpenXR runtime.
type XrRuntime interface {
	ProcAddrResolver

	// Bridge returns the bridge used to bind functions resolved from this runtime.
	Bridge() FuncBridge

	// EnumerateInstanceExtensions returns the names of all extensions the
	// runtime advertises.
	EnumerateInstanceExtensions() ([]string, error)

	// CreateInstance creates an instance with the given extensions enabled.
	CreateInstance(appName string, extensions []string) (entities.Instance, error)

	// DestroyInstance destroys an instance created by CreateInstance.
	DestroyInstance(instance entities.Instance) error
}
