package vtable

import (
	"fmt"
	"log/slog"
	"reflect"
	"sync"
	"unsafe"
	"weak"

	"github.com/xrizer/xrizer-go/domain/ports"
	"github.com/xrizer/xrizer-go/internal/abi"
	"github.com/xrizer/xrizer-go/internal/metrics"
)

// Object is the header a native caller sees: a C++ object whose first and
// only word is its vtable pointer.
type Object struct {
	Vtbl *uintptr
}

// Sharable is satisfied by types that embed Shared.
type Sharable interface {
	sharable()
}

// Shared marks a type as safe to call from any thread. Only types embedding
// it can be exported.
type Shared struct{}

func (Shared) sharable() {}

// Kind is one ABI shape: a name and the ordered thunks of its function
// table. Each thunk takes the interface pointer as its first uintptr
// argument and is normally built on Dispatch.
type Kind[T any] struct {
	name   string
	thunks []any
}

// NewKind declares an interface kind served by *T. The constraint rejects
// types that do not embed Shared.
func NewKind[T any, PT interface {
	*T
	Sharable
}](name string, thunks ...any) *Kind[T] {
	if name == "" {
		panic("vtable: kind name is empty")
	}
	for i, fn := range thunks {
		t := reflect.TypeOf(fn)
		if t == nil || t.Kind() != reflect.Func || t.NumIn() == 0 || t.In(0).Kind() != reflect.Uintptr {
			panic(fmt.Sprintf("vtable: %s entry %d is %T, want func(this uintptr, ...)", name, i, fn))
		}
	}
	return &Kind[T]{name: name, thunks: thunks}
}

// Name returns the interface name, e.g. "IVRClientCore_003".
func (k *Kind[T]) Name() string {
	return k.name
}

// Len returns the number of function table entries.
func (k *Kind[T]) Len() int {
	return len(k.thunks)
}

// exported is the owner record registered under an exported header. It
// never crosses the boundary: the header handed to C holds only the
// pinned table pointer, and the weak backref stays on the Go side.
type exported[T any] struct {
	header  *Object
	backref weak.Pointer[T]
	kind    string
}

// Exporter builds function tables through a bridge and caches one table per
// kind.
type Exporter struct {
	bridge ports.FuncBridge
	logger *slog.Logger

	mu     sync.Mutex
	tables map[any]*uintptr
}

// ExporterOption configures an Exporter.
type ExporterOption func(*Exporter)

// WithBridge sets the bridge used to create C-callable thunks.
func WithBridge(b ports.FuncBridge) ExporterOption {
	return func(e *Exporter) {
		e.bridge = b
	}
}

// WithLogger sets the logger used for export events.
func WithLogger(l *slog.Logger) ExporterOption {
	return func(e *Exporter) {
		e.logger = l
	}
}

// NewExporter returns an exporter. A bridge must be supplied with WithBridge.
func NewExporter(opts ...ExporterOption) (*Exporter, error) {
	e := &Exporter{
		logger: slog.Default(),
		tables: make(map[any]*uintptr),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.bridge == nil {
		return nil, fmt.Errorf("vtable: exporter requires a bridge")
	}
	return e, nil
}

func (e *Exporter) table(key any, name string, thunks []any) *uintptr {
	e.mu.Lock()
	defer e.mu.Unlock()
	if t, ok := e.tables[key]; ok {
		return t
	}
	entries := make([]uintptr, max(len(thunks), 1))
	for i, fn := range thunks {
		entries[i] = e.bridge.Callback(fn)
	}
	abi.Pin(&entries[0])
	abi.Retain(entries)
	e.tables[key] = &entries[0]
	e.logger.Debug("built function table", "interface", name, "entries", len(thunks))
	return &entries[0]
}

// Export allocates an Object header for obj and returns its address. The
// header is pinned and never freed. Its only field points at the pinned
// function table, so it can be returned through cgo as is. obj is held only
// weakly.
func (k *Kind[T]) Export(e *Exporter, obj *T) unsafe.Pointer {
	if obj == nil {
		panic(fmt.Sprintf("vtable: export of nil %s", k.name))
	}
	header := &Object{Vtbl: e.table(k, k.name, k.thunks)}
	w := &exported[T]{
		header:  header,
		backref: weak.Make(obj),
		kind:    k.name,
	}
	p := unsafe.Pointer(header)
	abi.Register(uintptr(p), w, header)
	metrics.ExportedInterfaces.WithLabelValues(k.name).Inc()
	return p
}
