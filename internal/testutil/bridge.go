package testutil

import (
	"fmt"
	"reflect"
	"sync"
	"unsafe"
)

// FakeBridge is an in-process ports.FuncBridge. Callback hands out fake
// addresses for Go funcs and Bind resolves those addresses back to the same
// funcs, so vtables and extension tables can be exercised without native
// trampolines.
type FakeBridge struct {
	funcs map[uintptr]any
	mu    sync.RWMutex
	next  uintptr
}

// NewFakeBridge returns an empty bridge.
func NewFakeBridge() *FakeBridge {
	return &FakeBridge{
		funcs: make(map[uintptr]any),
		next:  0x10000,
	}
}

// Callback registers fn and returns its fake address.
func (b *FakeBridge) Callback(fn any) uintptr {
	if reflect.TypeOf(fn).Kind() != reflect.Func {
		panic(fmt.Sprintf("fake bridge: callback is %T, not a func", fn))
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	addr := b.next
	b.next += 0x10
	b.funcs[addr] = fn
	return addr
}

// Bind stores the func registered at addr into *fptr. Like purego it panics
// on misuse.
func (b *FakeBridge) Bind(fptr any, addr uintptr) {
	fn, ok := b.Func(addr)
	if !ok {
		panic(fmt.Sprintf("fake bridge: no function at %#x", addr))
	}
	dst := reflect.ValueOf(fptr)
	if dst.Kind() != reflect.Pointer || dst.Elem().Kind() != reflect.Func {
		panic(fmt.Sprintf("fake bridge: bind target is %T, not a pointer to func", fptr))
	}
	src := reflect.ValueOf(fn)
	switch {
	case src.Type().AssignableTo(dst.Elem().Type()):
	case src.Type().ConvertibleTo(dst.Elem().Type()):
		src = src.Convert(dst.Elem().Type())
	default:
		panic(fmt.Sprintf("fake bridge: %s is not assignable to %s", src.Type(), dst.Elem().Type()))
	}
	dst.Elem().Set(src)
}

// Func returns the func registered at addr.
func (b *FakeBridge) Func(addr uintptr) (any, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	fn, ok := b.funcs[addr]
	return fn, ok
}

// Callbacks returns the number of registered funcs.
func (b *FakeBridge) Callbacks() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.funcs)
}

// VtableEntry reads entry index of the function table behind an exported
// interface pointer, the same way a C++ caller does: the first machine word
// of the object is the table address.
func VtableEntry(iface unsafe.Pointer, index int) uintptr {
	table := *(*unsafe.Pointer)(iface)
	return *(*uintptr)(unsafe.Add(table, uintptr(index)*unsafe.Sizeof(uintptr(0))))
}

// CallVtable invokes entry index of an exported interface with iface as the
// implicit this argument, followed by args.
func (b *FakeBridge) CallVtable(iface unsafe.Pointer, index int, args ...uintptr) uintptr {
	addr := VtableEntry(iface, index)
	fn, ok := b.Func(addr)
	if !ok {
		panic(fmt.Sprintf("fake bridge: vtable entry %d points at unknown %#x", index, addr))
	}
	in := make([]reflect.Value, 0, len(args)+1)
	in = append(in, reflect.ValueOf(uintptr(iface)))
	for _, a := range args {
		in = append(in, reflect.ValueOf(a))
	}
	out := reflect.ValueOf(fn).Call(in)
	if len(out) == 0 {
		return 0
	}
	return uintptr(out[0].Uint())
}
