// Package openxr connects to an OpenXR runtime through its loader library.
package openxr

import (
	"fmt"
	"log/slog"
	"runtime"
	"sync"

	"github.com/xrizer/xrizer-go/domain/entities"
	xrerrors "github.com/xrizer/xrizer-go/domain/errors"
	"github.com/xrizer/xrizer-go/domain/ports"
	"github.com/xrizer/xrizer-go/infrastructure/native"
)

// EngineName is reported to the runtime at instance creation.
const EngineName = "XRizer"

// Runtime implements ports.XrRuntime over the OpenXR loader.
type Runtime struct {
	lib    *native.Library
	bridge ports.FuncBridge

	getInstanceProcAddr func(instance entities.Instance, name *byte, fn *uintptr) entities.Result
	enumerateExtensions func(layer *byte, capacity uint32, count *uint32, props *entities.ExtensionProperties) entities.Result
	createInstance      func(info *entities.InstanceCreateInfo, instance *entities.Instance) entities.Result

	mu        sync.Mutex
	destroyer map[entities.Instance]func(entities.Instance) entities.Result
}

var _ ports.XrRuntime = (*Runtime)(nil)

// Open loads library and binds the loader's global functions through bridge.
func Open(library string, bridge ports.FuncBridge) (*Runtime, error) {
	if library == "" {
		library = native.DefaultLoader
	}
	lib, err := native.Open(library)
	if err != nil {
		return nil, err
	}
	addr, err := lib.Lookup("xrGetInstanceProcAddr")
	if err != nil {
		_ = lib.Close()
		return nil, err
	}

	r := &Runtime{
		lib:       lib,
		bridge:    bridge,
		destroyer: make(map[entities.Instance]func(entities.Instance) entities.Result),
	}
	bridge.Bind(&r.getInstanceProcAddr, addr)

	if err := r.bindGlobal("xrEnumerateInstanceExtensionProperties", &r.enumerateExtensions); err != nil {
		_ = lib.Close()
		return nil, err
	}
	if err := r.bindGlobal("xrCreateInstance", &r.createInstance); err != nil {
		_ = lib.Close()
		return nil, err
	}
	slog.Info("opened OpenXR loader", "library", lib.Path())
	return r, nil
}

func (r *Runtime) bindGlobal(name string, fptr any) error {
	return r.bind(entities.NullInstance, name, fptr)
}

func (r *Runtime) bind(instance entities.Instance, name string, fptr any) error {
	addr, res := r.GetInstanceProcAddr(instance, name)
	if err := xrerrors.CheckResult("xrGetInstanceProcAddr "+name, res); err != nil {
		return err
	}
	if addr == 0 {
		return &xrerrors.NotFoundError{Kind: "function", Name: name}
	}
	r.bridge.Bind(fptr, addr)
	return nil
}

// Bridge implements ports.XrRuntime.
func (r *Runtime) Bridge() ports.FuncBridge {
	return r.bridge
}

// GetInstanceProcAddr implements ports.ProcAddrResolver.
func (r *Runtime) GetInstanceProcAddr(instance entities.Instance, name string) (uintptr, entities.Result) {
	cname := append([]byte(name), 0)
	var fn uintptr
	res := r.getInstanceProcAddr(instance, &cname[0], &fn)
	return fn, res
}

// EnumerateInstanceExtensions implements ports.XrRuntime.
func (r *Runtime) EnumerateInstanceExtensions() ([]string, error) {
	for {
		var count uint32
		if err := xrerrors.CheckResult("xrEnumerateInstanceExtensionProperties", r.enumerateExtensions(nil, 0, &count, nil)); err != nil {
			return nil, err
		}
		if count == 0 {
			return nil, nil
		}

		props := make([]entities.ExtensionProperties, count)
		for i := range props {
			props[i] = entities.NewExtensionProperties()
		}
		var filled uint32
		res := r.enumerateExtensions(nil, count, &filled, &props[0])
		if res == entities.ErrorSizeInsufficient {
			continue
		}
		if err := xrerrors.CheckResult("xrEnumerateInstanceExtensionProperties", res); err != nil {
			return nil, err
		}

		names := make([]string, 0, filled)
		for i := range props[:min(filled, count)] {
			names = append(names, props[i].Name())
		}
		return names, nil
	}
}

// CreateInstance implements ports.XrRuntime.
func (r *Runtime) CreateInstance(appName string, extensions []string) (entities.Instance, error) {
	info := entities.InstanceCreateInfo{Type: entities.TypeInstanceCreateInfo}
	if !entities.PutCString(info.ApplicationInfo.ApplicationName[:], appName) {
		return entities.NullInstance, fmt.Errorf("application name %q too long", appName)
	}
	entities.PutCString(info.ApplicationInfo.EngineName[:], EngineName)
	info.ApplicationInfo.APIVersion = entities.APIVersion10

	var pinner runtime.Pinner
	defer pinner.Unpin()
	names := make([]*byte, len(extensions))
	for i, ext := range extensions {
		buf := append([]byte(ext), 0)
		pinner.Pin(&buf[0])
		names[i] = &buf[0]
	}
	if len(names) > 0 {
		info.EnabledExtensionCount = uint32(len(names))
		info.EnabledExtensionNames = &names[0]
	}

	var instance entities.Instance
	if err := xrerrors.CheckResult("xrCreateInstance", r.createInstance(&info, &instance)); err != nil {
		return entities.NullInstance, err
	}

	var destroy func(entities.Instance) entities.Result
	if err := r.bind(instance, "xrDestroyInstance", &destroy); err != nil {
		slog.Warn("xrDestroyInstance unavailable", "error", err)
	} else {
		r.mu.Lock()
		r.destroyer[instance] = destroy
		r.mu.Unlock()
	}
	slog.Info("created OpenXR instance", "instance", uint64(instance), "extensions", extensions)
	return instance, nil
}

// DestroyInstance implements ports.XrRuntime.
func (r *Runtime) DestroyInstance(instance entities.Instance) error {
	r.mu.Lock()
	destroy, ok := r.destroyer[instance]
	delete(r.destroyer, instance)
	r.mu.Unlock()
	if !ok {
		return xrerrors.CheckResult("xrDestroyInstance", entities.ErrorHandleInvalid)
	}
	return xrerrors.CheckResult("xrDestroyInstance", destroy(instance))
}

// Close unloads the loader library. Instances must be destroyed first.
func (r *Runtime) Close() error {
	return r.lib.Close()
}
