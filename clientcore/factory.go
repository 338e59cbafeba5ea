package clientcore

import (
	"fmt"

	"github.com/xrizer/xrizer-go/vtable"
)

// NewFactory builds the factory behind the process entry point. Every
// lookup of an IVRClientCore version creates a fresh client core that serves
// the same factory through GetGenericInterface.
func NewFactory(opts ...Option) (*vtable.Factory, error) {
	cfg := defaultCoreConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	exporter, err := vtable.NewExporter(vtable.WithBridge(cfg.bridge))
	if err != nil {
		return nil, fmt.Errorf("client core: %w", err)
	}
	registry, err := vtable.NewRegistry(
		vtable.WithKind(clientCore003),
		vtable.WithKind(clientCore002),
	)
	if err != nil {
		return nil, fmt.Errorf("client core: %w", err)
	}

	var factory *vtable.Factory
	root := vtable.NewRoot(registry, exporter, func() (*ClientCore, error) {
		return newClientCore(cfg, factory), nil
	})
	factory = vtable.NewFactory(append([]vtable.Candidate{root}, cfg.interfaces...)...)
	return factory, nil
}
