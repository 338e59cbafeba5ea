// Package ports defines interfaces for infrastructure operations.
// These ports enable dependency inversion - the export framework and the
// extension loader depend on abstractions, and infrastructure adapters
// (purego, the OpenXR loader, test doubles) implement them.
package ports
