// Package vtable exports Go objects to native callers as C++-style
// interfaces.
//
// A foreign caller only ever sees a pointer to an Object header whose first
// word is the address of a function table. Each table entry is a
// C-callable thunk created through a ports.FuncBridge. Thunks receive the
// header address as their first argument, find the owner record kept for
// it and upgrade a weak reference to the owning object on every call, so an
// exported interface never keeps its owner alive.
//
// Versioned lookup is layered on top: a Registry maps interface version
// names to getters for one root type, Root pairs a registry with a
// constructor, and Factory walks an ordered list of roots to answer the
// process entry point.
package vtable
