package vtable

import (
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"unsafe"

	"github.com/xrizer/xrizer-go/domain/entities"
	"github.com/xrizer/xrizer-go/internal/abi"
	"github.com/xrizer/xrizer-go/internal/metrics"
)

// Candidate is a root object type the process entry point can serve.
// Create reports ok=false when version is not one of SupportedVersions.
type Candidate interface {
	SupportedVersions() []string
	Create(version string) (iface unsafe.Pointer, ok bool, err error)
}

// Root is a Candidate backed by a Registry and a constructor for *T.
type Root[T any] struct {
	registry  *Registry[T]
	exporter  *Exporter
	construct func() (*T, error)
	reuse     bool

	mu       sync.Mutex
	instance *T
}

// RootOption configures a Root.
type RootOption[T any] func(*Root[T])

// WithReuse makes every Create share a single constructed object.
func WithReuse[T any]() RootOption[T] {
	return func(r *Root[T]) {
		r.reuse = true
	}
}

// NewRoot returns a candidate that constructs *T on demand and exports it
// through exporter.
func NewRoot[T any](registry *Registry[T], exporter *Exporter, construct func() (*T, error), opts ...RootOption[T]) *Root[T] {
	r := &Root[T]{
		registry:  registry,
		exporter:  exporter,
		construct: construct,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// SupportedVersions implements Candidate.
func (r *Root[T]) SupportedVersions() []string {
	return r.registry.SupportedVersions()
}

// Create implements Candidate. Objects built here are retained for the life
// of the process, since native callers never release interfaces.
func (r *Root[T]) Create(version string) (unsafe.Pointer, bool, error) {
	get, ok := r.registry.Resolve(version)
	if !ok {
		return nil, false, nil
	}
	obj, err := r.object()
	if err != nil {
		return nil, true, err
	}
	return get(r.exporter, obj), true, nil
}

func (r *Root[T]) object() (*T, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.reuse && r.instance != nil {
		return r.instance, nil
	}
	obj, err := r.construct()
	if err != nil {
		return nil, err
	}
	abi.Retain(obj)
	if r.reuse {
		r.instance = obj
	}
	return obj, nil
}

// Factory answers interface requests by asking each candidate in order.
type Factory struct {
	candidates []Candidate
	logger     *slog.Logger
}

// NewFactory returns a factory over candidates, searched in order.
func NewFactory(candidates ...Candidate) *Factory {
	return &Factory{candidates: candidates, logger: slog.Default()}
}

// Lookup returns the interface pointer for version. An unsupported version
// yields nil and InitErrorInitInterfaceNotFound. A candidate that matches
// but fails to build its object yields nil and InitErrorInitInternal.
func (f *Factory) Lookup(version string) (unsafe.Pointer, entities.InitError) {
	for _, c := range f.candidates {
		p, ok, err := c.Create(version)
		if !ok {
			continue
		}
		if err == nil && p == nil {
			err = fmt.Errorf("getter for %s returned a null interface", version)
		}
		if err != nil {
			metrics.InterfaceLookups.WithLabelValues(metrics.ResultError).Inc()
			f.logger.Error("failed to create interface", "version", version, "error", err)
			return nil, entities.InitErrorInitInternal
		}
		metrics.InterfaceLookups.WithLabelValues(metrics.ResultFound).Inc()
		f.logger.Debug("created interface", "version", version)
		return p, entities.InitErrorNone
	}

	metrics.InterfaceLookups.WithLabelValues(metrics.ResultNotFound).Inc()
	f.logger.Info("unsupported interface requested", "version", version)
	return nil, entities.InitErrorInitInterfaceNotFound
}

// Versions returns every version any candidate supports, sorted.
func (f *Factory) Versions() []string {
	var all []string
	for _, c := range f.candidates {
		all = append(all, c.SupportedVersions()...)
	}
	slices.Sort(all)
	return slices.Compact(all)
}

// Has reports whether some candidate supports version.
func (f *Factory) Has(version string) bool {
	return slices.Contains(f.Versions(), version)
}
