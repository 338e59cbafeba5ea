// Package clientcore implements IVRClientCore, the root interface the
// OpenVR client library asks the process entry point for.
package clientcore

import (
	"log/slog"
	"sync"
	"unsafe"

	"github.com/xrizer/xrizer-go/domain/entities"
	"github.com/xrizer/xrizer-go/domain/ports"
	"github.com/xrizer/xrizer-go/extensions"
	"github.com/xrizer/xrizer-go/vtable"
)

// ClientCore owns the OpenXR connection of the process.
type ClientCore struct {
	vtable.Shared

	cfg        coreConfig
	interfaces *vtable.Factory

	mu       sync.RWMutex
	runtime  ports.XrRuntime
	instance entities.Instance
	extra    extensions.Extra
	appType  entities.ApplicationType
}

// New returns an uninitialized client core. GetGenericInterface serves only
// the candidates given with WithInterfaces.
func New(opts ...Option) *ClientCore {
	cfg := defaultCoreConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return newClientCore(cfg, vtable.NewFactory(cfg.interfaces...))
}

func newClientCore(cfg coreConfig, interfaces *vtable.Factory) *ClientCore {
	return &ClientCore{cfg: cfg, interfaces: interfaces}
}

// Init connects to the runtime and creates an instance with every supported
// extension the runtime advertises. Calling Init again while initialized
// succeeds without reconnecting.
func (c *ClientCore) Init(appType entities.ApplicationType, startupInfo string) entities.InitError {
	if !appType.Valid() {
		slog.Error("invalid application type", "type", int32(appType))
		return entities.InitErrorInitAppInfoInitFailed
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.runtime != nil {
		return entities.InitErrorNone
	}
	if c.cfg.openRuntime == nil {
		return entities.InitErrorInitHmdNotFound
	}

	slog.Info("initializing client core", "application_type", appType.String(), "startup_info", startupInfo)
	rt, err := c.cfg.openRuntime()
	if err != nil {
		slog.Error("failed to open OpenXR runtime", "error", err)
		return entities.InitErrorInitHmdNotFound
	}
	advertised, err := rt.EnumerateInstanceExtensions()
	if err != nil {
		slog.Error("failed to enumerate OpenXR extensions", "error", err)
		return entities.InitErrorInitHmdNotFound
	}
	set := extensions.NewExtraSet(advertised).Without(c.cfg.disabledExtensions)

	instance, err := rt.CreateInstance(c.cfg.applicationName, set.Names())
	if err != nil {
		slog.Error("failed to create OpenXR instance", "error", err)
		return entities.InitErrorInitHmdNotFound
	}
	extra, err := extensions.LoadExtra(instance, set, rt, rt.Bridge())
	if err != nil {
		slog.Warn("some extensions are unavailable", "error", err)
	}

	c.runtime = rt
	c.instance = instance
	c.extra = extra
	c.appType = appType
	return entities.InitErrorNone
}

// Cleanup destroys the instance created by Init.
func (c *ClientCore) Cleanup() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.runtime == nil {
		return
	}
	if err := c.runtime.DestroyInstance(c.instance); err != nil {
		slog.Warn("failed to destroy OpenXR instance", "error", err)
	}
	c.runtime = nil
	c.instance = entities.NullInstance
	c.extra = extensions.Extra{}
}

// IsInterfaceVersionValid reports InitErrorNone when name can be served.
func (c *ClientCore) IsInterfaceVersionValid(name string) entities.InitError {
	if c.interfaces.Has(name) {
		return entities.InitErrorNone
	}
	return entities.InitErrorInitInterfaceNotFound
}

// GetGenericInterface returns the interface named name. It requires Init.
func (c *ClientCore) GetGenericInterface(name string) (unsafe.Pointer, entities.InitError) {
	if !c.Initialized() {
		return nil, entities.InitErrorInitNotInitialized
	}
	return c.interfaces.Lookup(name)
}

// IsHmdPresent reports whether a runtime is configured.
func (c *ClientCore) IsHmdPresent() bool {
	return c.cfg.openRuntime != nil
}

// EnglishStringForHmdError returns the human readable text of err.
func (c *ClientCore) EnglishStringForHmdError(err entities.InitError) string {
	return err.English()
}

// IDForVRInitError returns the symbolic name of err.
func (c *ClientCore) IDForVRInitError(err entities.InitError) string {
	return err.ID()
}

// Initialized reports whether Init has succeeded and Cleanup has not run.
func (c *ClientCore) Initialized() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.runtime != nil
}

// Instance returns the OpenXR instance, or NullInstance before Init.
func (c *ClientCore) Instance() entities.Instance {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.instance
}

// Extra returns the loaded optional extensions.
func (c *ClientCore) Extra() extensions.Extra {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.extra
}

// ApplicationType returns the type passed to the successful Init.
func (c *ClientCore) ApplicationType() entities.ApplicationType {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.appType
}
