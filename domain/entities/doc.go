// Package entities provides the core domain types shared across the shim:
// OpenXR handles, status codes and extensible wire records on one side, and
// OpenVR status codes and application types on the other.
// Every record type mirrors a C layout exactly and must not be reordered.
package entities
