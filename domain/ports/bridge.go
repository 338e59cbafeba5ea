package ports

// FuncBridge crosses the native calling-convention boundary in both
// directions.
type FuncBridge interface {
	// Callback returns a C-callable function pointer that invokes fn.
	// fn must take and return only uintptr-sized integer values. Pointers
	// returned by Callback are never released.
	Callback(fn any) uintptr

	// Bind makes the func variable pointed to by fptr call the C function at
	// addr. Nothing checks that the signature matches; callers transcribe it
	// from the OpenXR and OpenVR headers.
	Bind(fptr any, addr uintptr)
}
