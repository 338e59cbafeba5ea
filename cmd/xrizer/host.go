package main

/*
#include <stdlib.h>

extern void* VRClientCoreFactory(char* interfaceName, int* returnCode);
extern void* HmdSystemFactory(char* interfaceName, int* returnCode);

typedef void* (*factoryFn)(char*, int*);
typedef int (*stringSlotFn)(void*, const char*);

// Status slots start at -1 so an untouched slot is visible to the caller.
static void* hostCallFactory(int hmd, const char* name, int passCode, int* code) {
	factoryFn fn = hmd ? HmdSystemFactory : VRClientCoreFactory;
	int rc = -1;
	void* p = fn((char*)name, passCode ? &rc : NULL);
	*code = rc;
	return p;
}

static int hostCallStringSlot(void* iface, int slot, const char* arg) {
	void** vtbl = *(void***)iface;
	return ((stringSlotFn)vtbl[slot])(iface, arg);
}
*/
import "C"

import "unsafe"

// The functions below call the exported entry points and the returned
// interfaces from C, the way an OpenVR host does, so the values crossing
// the boundary go through cgo's pointer checks.

// hostFactory calls VRClientCoreFactory, or HmdSystemFactory when hmd is
// set. A nil name is passed as NULL. Without withCode the status slot is
// NULL and the returned code is -1.
func hostFactory(hmd bool, name *string, withCode bool) (unsafe.Pointer, int32) {
	var cname *C.char
	if name != nil {
		cname = C.CString(*name)
		defer C.free(unsafe.Pointer(cname))
	}
	var code C.int
	p := C.hostCallFactory(cBool(hmd), cname, cBool(withCode), &code)
	return p, int32(code)
}

// hostCallStringSlot calls vtable entry slot of iface with one string
// argument and returns its int result.
func hostCallStringSlot(iface unsafe.Pointer, slot int, arg string) int32 {
	carg := C.CString(arg)
	defer C.free(unsafe.Pointer(carg))
	return int32(C.hostCallStringSlot(iface, C.int(slot), carg))
}

func cBool(b bool) C.int {
	if b {
		return 1
	}
	return 0
}
