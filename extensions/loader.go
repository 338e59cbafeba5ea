package extensions

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/xrizer/xrizer-go/domain/entities"
	xrerrors "github.com/xrizer/xrizer-go/domain/errors"
	"github.com/xrizer/xrizer-go/domain/ports"
)

// FunctionTable maps function names to resolved, non-null addresses.
type FunctionTable map[string]uintptr

// Resolve looks up every name through resolver. The first failing status or
// null pointer aborts the lookup and no table is returned.
func Resolve(resolver ports.ProcAddrResolver, instance entities.Instance, extension string, names ...string) (FunctionTable, error) {
	if extension == "" {
		return nil, fmt.Errorf("resolve: extension name cannot be empty")
	}
	table := make(FunctionTable, len(names))
	for _, name := range names {
		if _, dup := table[name]; dup {
			return nil, fmt.Errorf("extension %s: function %s listed twice", extension, name)
		}
		addr, res := resolver.GetInstanceProcAddr(instance, name)
		if err := xrerrors.CheckResult("xrGetInstanceProcAddr", res); err != nil {
			return nil, &xrerrors.ResolutionError{Extension: extension, Function: name, Err: err}
		}
		if addr == 0 {
			return nil, &xrerrors.ResolutionError{Extension: extension, Function: name}
		}
		table[name] = addr
	}
	return table, nil
}

// Extra holds the loaded optional extensions. A nil field means the
// extension is unavailable.
type Extra struct {
	XDevSpace *XDevSpace
}

// Loaded returns the set of extensions that actually loaded.
func (e Extra) Loaded() ExtraSet {
	return ExtraSet{XDevSpace: e.XDevSpace != nil}
}

// LoadExtra loads every extension in set. An extension that fails to load is
// left nil and its error is joined into the returned error; the others are
// still usable.
func LoadExtra(instance entities.Instance, set ExtraSet, resolver ports.ProcAddrResolver, bridge ports.FuncBridge) (Extra, error) {
	var (
		extra Extra
		errs  []error
	)
	if set.XDevSpace {
		x, err := LoadXDevSpace(instance, resolver, bridge)
		if err != nil {
			slog.Warn("extension unavailable", "name", XDevSpaceName, "error", err)
			errs = append(errs, err)
		} else {
			extra.XDevSpace = x
		}
	}
	return extra, errors.Join(errs...)
}
