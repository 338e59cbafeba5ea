package main

import (
	"log/slog"
	"sync"
	"unsafe"

	"github.com/xrizer/xrizer-go/application/config"
	"github.com/xrizer/xrizer-go/clientcore"
	"github.com/xrizer/xrizer-go/domain/entities"
	"github.com/xrizer/xrizer-go/domain/ports"
	"github.com/xrizer/xrizer-go/infrastructure/native"
	"github.com/xrizer/xrizer-go/infrastructure/openxr"
	"github.com/xrizer/xrizer-go/log"
	"github.com/xrizer/xrizer-go/vtable"
)

var (
	setupOnce sync.Once
	factory   *vtable.Factory
	setupErr  error
)

// setup loads configuration, starts logging and builds the interface
// factory. It runs once, on the first call into the library.
func setup() (*vtable.Factory, error) {
	setupOnce.Do(func() {
		cfg, err := config.Load()
		if err != nil {
			fallback := config.DefaultConfig
			cfg = &fallback
		}
		log.Init(cfg.LogSink(), log.WithLevel(cfg.SlogLevel()), log.WithSource(true))
		if err != nil {
			slog.Error("invalid configuration, using defaults", "error", err)
		}

		bridge := native.NewBridge()
		factory, setupErr = clientcore.NewFactory(
			clientcore.WithBridge(bridge),
			clientcore.WithRuntimeOpener(func() (ports.XrRuntime, error) {
				return openxr.Open(cfg.RuntimeLibrary, bridge)
			}),
			clientcore.WithApplicationName(cfg.ApplicationName),
			clientcore.WithDisabledExtensions(cfg.DisabledExtensions...),
		)
		if setupErr != nil {
			slog.Error("failed to build interface factory", "error", setupErr)
		}
	})
	return factory, setupErr
}

func lookupInterface(name string) (unsafe.Pointer, entities.InitError) {
	f, err := setup()
	if err != nil {
		return nil, entities.InitErrorInitInternal
	}
	return f.Lookup(name)
}

func hmdSystem(name string) (unsafe.Pointer, entities.InitError) {
	if _, err := setup(); err == nil {
		log.WarnUnimplemented("HmdSystemFactory")
		slog.Debug("HmdSystemFactory requested", "interface", name)
	}
	return nil, entities.InitErrorInitInterfaceNotFound
}
