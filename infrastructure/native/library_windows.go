//go:build windows

package native

import (
	"fmt"

	"golang.org/x/sys/windows"
)

// Library is a dynamically loaded DLL.
type Library struct {
	handle windows.Handle
	path   string
}

// Open loads the DLL at path.
func Open(path string) (*Library, error) {
	h, err := windows.LoadLibrary(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	return &Library{handle: h, path: path}, nil
}

// Lookup returns the address of the named export.
func (l *Library) Lookup(name string) (uintptr, error) {
	addr, err := windows.GetProcAddress(l.handle, name)
	if err != nil {
		return 0, fmt.Errorf("%s: lookup %s: %w", l.path, name, err)
	}
	return addr, nil
}

// Close unloads the DLL.
func (l *Library) Close() error {
	return windows.FreeLibrary(l.handle)
}

// Path returns the path the library was opened from.
func (l *Library) Path() string {
	return l.path
}
