// Command xrizer builds the OpenVR client library (vrclient.so). Build with
// -buildmode=c-shared.
package main

import "C"

import (
	"unsafe"

	"github.com/xrizer/xrizer-go/domain/entities"
)

// VRClientCoreFactory returns the requested IVRClientCore interface, or nil
// with VRInitError_Init_InterfaceNotFound in *returnCode.
//
//export VRClientCoreFactory
func VRClientCoreFactory(interfaceName *C.char, returnCode *C.int) unsafe.Pointer {
	if interfaceName == nil {
		writeCode(returnCode, int32(entities.InitErrorInitInterfaceNotFound))
		return nil
	}
	p, code := lookupInterface(C.GoString(interfaceName))
	writeCode(returnCode, int32(code))
	return p
}

// HmdSystemFactory is looked up by Proton but never used.
//
//export HmdSystemFactory
func HmdSystemFactory(interfaceName *C.char, returnCode *C.int) unsafe.Pointer {
	p, code := hmdSystem(C.GoString(interfaceName))
	writeCode(returnCode, int32(code))
	return p
}

func writeCode(returnCode *C.int, code int32) {
	if returnCode != nil {
		*returnCode = C.int(code)
	}
}

func main() {}
