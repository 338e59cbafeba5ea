//go:build darwin || freebsd || linux || netbsd

package native

import (
	"fmt"

	"github.com/ebitengine/purego"
)

// Library is a dynamically loaded shared library.
type Library struct {
	handle uintptr
	path   string
}

// Open loads the shared library at path.
func Open(path string) (*Library, error) {
	h, err := purego.Dlopen(path, purego.RTLD_NOW|purego.RTLD_GLOBAL)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	return &Library{handle: h, path: path}, nil
}

// Lookup returns the address of the named symbol.
func (l *Library) Lookup(name string) (uintptr, error) {
	addr, err := purego.Dlsym(l.handle, name)
	if err != nil {
		return 0, fmt.Errorf("%s: lookup %s: %w", l.path, name, err)
	}
	return addr, nil
}

// Close unloads the library.
func (l *Library) Close() error {
	return purego.Dlclose(l.handle)
}

// Path returns the path the library was opened from.
func (l *Library) Path() string {
	return l.path
}
