package clientcore

import (
	"github.com/xrizer/xrizer-go/domain/ports"
	"github.com/xrizer/xrizer-go/vtable"
)

// RuntimeOpener connects to the OpenXR runtime.
type RuntimeOpener func() (ports.XrRuntime, error)

type coreConfig struct {
	bridge             ports.FuncBridge
	openRuntime        RuntimeOpener
	applicationName    string
	disabledExtensions []string
	interfaces         []vtable.Candidate
}

func defaultCoreConfig() coreConfig {
	return coreConfig{
		applicationName: "XRizer",
	}
}

// Option configures the client core.
type Option func(*coreConfig)

// WithBridge sets the bridge used to export interfaces.
func WithBridge(b ports.FuncBridge) Option {
	return func(c *coreConfig) {
		c.bridge = b
	}
}

// WithRuntimeOpener sets how Init connects to the OpenXR runtime. Without
// it no HMD is ever present.
func WithRuntimeOpener(open RuntimeOpener) Option {
	return func(c *coreConfig) {
		c.openRuntime = open
	}
}

// WithApplicationName sets the name reported at instance creation.
func WithApplicationName(name string) Option {
	return func(c *coreConfig) {
		if name != "" {
			c.applicationName = name
		}
	}
}

// WithDisabledExtensions keeps the named extensions from being enabled even
// when the runtime advertises them.
func WithDisabledExtensions(names ...string) Option {
	return func(c *coreConfig) {
		c.disabledExtensions = append(c.disabledExtensions, names...)
	}
}

// WithInterfaces adds candidates served by GetGenericInterface and the
// process entry point after the client core itself.
func WithInterfaces(candidates ...vtable.Candidate) Option {
	return func(c *coreConfig) {
		c.interfaces = append(c.interfaces, candidates...)
	}
}
