package vtable

import (
	"fmt"
	"log/slog"
	"runtime/debug"

	xrerrors "github.com/xrizer/xrizer-go/domain/errors"
	"github.com/xrizer/xrizer-go/internal/abi"
	"github.com/xrizer/xrizer-go/internal/metrics"
	"github.com/xrizer/xrizer-go/log"
)

// Upgrade resolves the interface pointer this to its owner. It fails with a
// *NotFoundError when this was never exported as a T and with a
// *StaleReferenceError once the owner has been collected. The returned name
// is the interface name whenever the owner record was found.
func Upgrade[T any](this uintptr) (*T, string, error) {
	v, ok := abi.Lookup(this)
	if !ok {
		return nil, "", &xrerrors.NotFoundError{Kind: "interface pointer", Name: fmt.Sprintf("%#x", this)}
	}
	w, ok := v.(*exported[T])
	if !ok {
		return nil, "", &xrerrors.NotFoundError{Kind: "interface pointer", Name: fmt.Sprintf("%#x (%T)", this, v)}
	}
	obj := w.backref.Value()
	if obj == nil {
		return nil, w.kind, &xrerrors.StaleReferenceError{Interface: w.kind}
	}
	return obj, w.kind, nil
}

// Dispatch runs fn against the owner of this and returns its result. When
// the owner cannot be reached, or fn panics, it returns fallback instead.
func Dispatch[T, R any](this uintptr, fallback R, fn func(*T) R) (ret R) {
	obj, name, err := Upgrade[T](this)
	if err != nil {
		if name != "" {
			metrics.StaleCalls.WithLabelValues(name).Inc()
		}
		log.WarnOnce("call through unusable interface "+name, "error", err)
		return fallback
	}

	metrics.Calls.WithLabelValues(name).Inc()
	defer func() {
		if r := recover(); r != nil {
			metrics.RecoveredPanics.WithLabelValues(name).Inc()
			slog.Error("panic in exported call", "interface", name, "panic", r, "stack", string(debug.Stack()))
			ret = fallback
		}
	}()
	return fn(obj)
}

// DispatchVoid is Dispatch for methods without a result.
func DispatchVoid[T any](this uintptr, fn func(*T)) {
	Dispatch(this, struct{}{}, func(obj *T) struct{} {
		fn(obj)
		return struct{}{}
	})
}
