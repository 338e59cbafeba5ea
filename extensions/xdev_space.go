package extensions

import (
	"log/slog"

	"github.com/xrizer/xrizer-go/domain/entities"
	"github.com/xrizer/xrizer-go/domain/ports"
	"github.com/xrizer/xrizer-go/internal/metrics"
)

// Signatures of the XR_MNDX_xdev_space functions, transcribed from the
// extension's registry entry.
type (
	CreateXDevListFunc        func(session entities.Session, info *entities.CreateXDevListInfo, list *entities.XDevList) entities.Result
	GetXDevListGenerationFunc func(list entities.XDevList, generation *uint64) entities.Result
	EnumerateXDevsFunc        func(list entities.XDevList, capacity uint32, count *uint32, xdevs *entities.XDevID) entities.Result
	GetXDevPropertiesFunc     func(list entities.XDevList, info *entities.GetXDevInfo, props *entities.XDevProperties) entities.Result
	DestroyXDevListFunc       func(list entities.XDevList) entities.Result
	CreateXDevSpaceFunc       func(session entities.Session, info *entities.CreateXDevSpaceInfo, space *entities.Space) entities.Result
)

const (
	fnCreateXDevList        = "xrCreateXDevListMNDX"
	fnGetXDevListGeneration = "xrGetXDevListGenerationNumberMNDX"
	fnEnumerateXDevs        = "xrEnumerateXDevsMNDX"
	fnGetXDevProperties     = "xrGetXDevPropertiesMNDX"
	fnDestroyXDevList       = "xrDestroyXDevListMNDX"
	fnCreateXDevSpace       = "xrCreateXDevSpaceMNDX"
)

// XDevSpaceFunctions lists the functions XR_MNDX_xdev_space requires.
func XDevSpaceFunctions() []string {
	return []string{
		fnCreateXDevList,
		fnGetXDevListGeneration,
		fnEnumerateXDevs,
		fnGetXDevProperties,
		fnDestroyXDevList,
		fnCreateXDevSpace,
	}
}

// XDevSpace is the resolved dispatch table of XR_MNDX_xdev_space. It is
// immutable once loaded.
type XDevSpace struct {
	createXDevList        CreateXDevListFunc
	getXDevListGeneration GetXDevListGenerationFunc
	enumerateXDevs        EnumerateXDevsFunc
	getXDevProperties     GetXDevPropertiesFunc
	destroyXDevList       DestroyXDevListFunc
	createXDevSpace       CreateXDevSpaceFunc
}

// LoadXDevSpace resolves and binds the extension's functions for instance.
//
// Binding trusts that each address really has the signature declared above;
// the runtime offers no way to check it.
func LoadXDevSpace(instance entities.Instance, resolver ports.ProcAddrResolver, bridge ports.FuncBridge) (*XDevSpace, error) {
	table, err := Resolve(resolver, instance, XDevSpaceName, XDevSpaceFunctions()...)
	if err != nil {
		metrics.ExtensionLoads.WithLabelValues(XDevSpaceName, metrics.ResultFailed).Inc()
		return nil, err
	}

	x := &XDevSpace{}
	bridge.Bind(&x.createXDevList, table[fnCreateXDevList])
	bridge.Bind(&x.getXDevListGeneration, table[fnGetXDevListGeneration])
	bridge.Bind(&x.enumerateXDevs, table[fnEnumerateXDevs])
	bridge.Bind(&x.getXDevProperties, table[fnGetXDevProperties])
	bridge.Bind(&x.destroyXDevList, table[fnDestroyXDevList])
	bridge.Bind(&x.createXDevSpace, table[fnCreateXDevSpace])

	metrics.ExtensionLoads.WithLabelValues(XDevSpaceName, metrics.ResultLoaded).Inc()
	slog.Info("loaded extension", "name", XDevSpaceName, "functions", len(table))
	return x, nil
}

// SupportsXDevSpace reports whether props, chained into an
// xrGetSystemProperties call, says the system supports device spaces.
func SupportsXDevSpace(props *entities.SystemXDevSpaceProperties) bool {
	return props != nil &&
		props.Type == entities.TypeSystemXDevSpacePropertiesMNDX &&
		props.SupportsXDevSpace.Bool()
}
