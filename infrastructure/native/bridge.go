// Package native crosses into and out of C code without cgo, using purego.
package native

import (
	"github.com/ebitengine/purego"

	"github.com/xrizer/xrizer-go/domain/ports"
)

// Bridge implements ports.FuncBridge with purego.
type Bridge struct{}

var _ ports.FuncBridge = Bridge{}

// NewBridge returns the process bridge.
func NewBridge() Bridge {
	return Bridge{}
}

// Callback implements ports.FuncBridge. purego supports a limited number of
// callbacks per process, which bounds the number of distinct interface kinds
// and not the number of exported objects.
func (Bridge) Callback(fn any) uintptr {
	return purego.NewCallback(fn)
}

// Bind implements ports.FuncBridge.
func (Bridge) Bind(fptr any, addr uintptr) {
	purego.RegisterFunc(fptr, addr)
}
