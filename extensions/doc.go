// Package extensions resolves optional OpenXR extensions at run time and
// wraps their functions in managed handle types.
//
// Resolution is all-or-nothing: an extension is usable only when every
// function it requires resolves to a non-null pointer. The resolved
// pointers are bound to typed Go funcs in one place per extension, after
// which the table is immutable and safe to share between goroutines.
package extensions
