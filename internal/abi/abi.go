// Package abi manages Go memory that is handed to native callers.
//
// Everything registered here lives for the rest of the process. Exported
// interface objects, their function tables and returned C strings are
// pinned with a runtime.Pinner that is never unpinned, and a reference is
// kept so the garbage collector cannot reclaim them while a foreign caller
// still holds the address.
package abi

import (
	"runtime"
	"sync"
	"unsafe"
)

// MaxCStringLen bounds GoString when reading caller-supplied strings.
const MaxCStringLen = 64 * 1024

var registry = struct {
	sync.RWMutex
	pinner   runtime.Pinner
	objects  map[uintptr]any    // exported address -> owner
	strings  map[string]uintptr // interned C strings
	retained []any              // strong references leaked on purpose
}{
	objects: make(map[uintptr]any),
	strings: make(map[string]uintptr),
}

// Pin pins each pointer for the process lifetime. Non-Go pointers are ignored.
func Pin(ptrs ...any) {
	registry.Lock()
	defer registry.Unlock()
	for _, p := range ptrs {
		registry.pinner.Pin(p)
	}
}

// Register records owner under addr and pins ptr, the Go memory addr points
// into. Registering an address twice replaces the owner.
func Register(addr uintptr, owner any, ptr any) {
	registry.Lock()
	defer registry.Unlock()
	registry.pinner.Pin(ptr)
	registry.objects[addr] = owner
}

// Lookup returns the owner registered under addr.
func Lookup(addr uintptr) (any, bool) {
	if addr == 0 {
		return nil, false
	}
	registry.RLock()
	defer registry.RUnlock()
	v, ok := registry.objects[addr]
	return v, ok
}

// Count returns the number of registered addresses.
func Count() int {
	registry.RLock()
	defer registry.RUnlock()
	return len(registry.objects)
}

// Retain keeps a strong reference to v until the process exits.
func Retain(v any) {
	registry.Lock()
	defer registry.Unlock()
	registry.retained = append(registry.retained, v)
}

// Retained returns the number of values kept alive by Retain.
func Retained() int {
	registry.RLock()
	defer registry.RUnlock()
	return len(registry.retained)
}

// CString returns the address of a NUL-terminated copy of s. Copies are
// interned, so the same string always yields the same address.
func CString(s string) uintptr {
	registry.RLock()
	p, ok := registry.strings[s]
	registry.RUnlock()
	if ok {
		return p
	}

	registry.Lock()
	defer registry.Unlock()
	if p, ok := registry.strings[s]; ok {
		return p
	}
	buf := make([]byte, len(s)+1)
	copy(buf, s)
	registry.pinner.Pin(&buf[0])
	p = uintptr(unsafe.Pointer(&buf[0]))
	registry.strings[s] = p
	registry.retained = append(registry.retained, buf)
	return p
}

// GoString copies the NUL-terminated string at p. A zero address yields "".
// Reading stops after MaxCStringLen bytes.
func GoString(p uintptr) string {
	if p == 0 {
		return ""
	}
	//nolint:gosec // G103: p is a caller-supplied C string
	base := unsafe.Pointer(p)
	n := 0
	for n < MaxCStringLen && *(*byte)(unsafe.Add(base, n)) != 0 {
		n++
	}
	return string(unsafe.Slice((*byte)(base), n))
}

// WriteInt32 stores v at p, the way C writes through an out-parameter.
// It reports false when p is null.
func WriteInt32(p uintptr, v int32) bool {
	if p == 0 {
		return false
	}
	//nolint:gosec // G103: p is a caller-supplied out-parameter
	*(*int32)(unsafe.Pointer(p)) = v
	return true
}

// Bool converts a Go bool into the value a C++ bool return expects.
func Bool(b bool) uintptr {
	if b {
		return 1
	}
	return 0
}
