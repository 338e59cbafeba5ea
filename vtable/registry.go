package vtable

import (
	"fmt"
	"sort"
	"unsafe"
)

// Getter produces the interface pointer of one version for obj.
type Getter[T any] func(e *Exporter, obj *T) unsafe.Pointer

// Registry is an immutable table of interface version names served by *T.
// Once created via NewRegistry, versions cannot be added or removed, so
// lookups need no locking.
type Registry[T any] struct {
	getters map[string]Getter[T]
	names   []string // sorted for consistent iteration
}

// registryBuilder accumulates configuration during registry construction.
type registryBuilder[T any] struct {
	getters map[string]Getter[T]
	errors  []error
}

// RegistryOption configures a Registry under construction.
type RegistryOption[T any] func(*registryBuilder[T])

// NewRegistry creates an immutable Registry with the given options.
// Returns an error if any version name is empty or registered twice.
//
// Example usage:
//
//	registry, err := NewRegistry(
//	    WithKind(clientCore003),
//	    WithKind(clientCore002),
//	)
func NewRegistry[T any](opts ...RegistryOption[T]) (*Registry[T], error) {
	b := &registryBuilder[T]{
		getters: make(map[string]Getter[T]),
	}
	for _, opt := range opts {
		opt(b)
	}
	if len(b.errors) > 0 {
		return nil, b.errors[0]
	}

	names := make([]string, 0, len(b.getters))
	for name := range b.getters {
		names = append(names, name)
	}
	sort.Strings(names)

	return &Registry[T]{getters: b.getters, names: names}, nil
}

func (b *registryBuilder[T]) add(name string, get Getter[T]) error {
	if name == "" {
		return fmt.Errorf("interface version name cannot be empty")
	}
	if get == nil {
		return fmt.Errorf("interface version %q has no getter", name)
	}
	if _, exists := b.getters[name]; exists {
		return fmt.Errorf("duplicate interface version: %q", name)
	}
	b.getters[name] = get
	return nil
}

// WithVersion registers a getter under name.
func WithVersion[T any](name string, get Getter[T]) RegistryOption[T] {
	return func(b *registryBuilder[T]) {
		if err := b.add(name, get); err != nil {
			b.errors = append(b.errors, err)
		}
	}
}

// WithKind registers k under its own name, exporting through Kind.Export.
func WithKind[T any](k *Kind[T]) RegistryOption[T] {
	return WithVersion(k.Name(), k.Export)
}

// SupportedVersions returns the sorted version names.
func (r *Registry[T]) SupportedVersions() []string {
	result := make([]string, len(r.names))
	copy(result, r.names)
	return result
}

// Resolve returns the getter registered under name.
func (r *Registry[T]) Resolve(name string) (Getter[T], bool) {
	get, ok := r.getters[name]
	return get, ok
}

// Has reports whether name is registered.
func (r *Registry[T]) Has(name string) bool {
	_, ok := r.getters[name]
	return ok
}
