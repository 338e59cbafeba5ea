package extensions

import (
	"log/slog"
	"runtime"
	"sync"

	"github.com/xrizer/xrizer-go/domain/entities"
	xrerrors "github.com/xrizer/xrizer-go/domain/errors"
	"github.com/xrizer/xrizer-go/internal/metrics"
)

// XDevList owns one runtime device list. The list is destroyed exactly once,
// by Close or, if the owner forgets, when the XDevList is collected. All
// methods are safe for concurrent use and return ErrClosed after Close.
type XDevList struct {
	ext *XDevSpace

	mu      sync.RWMutex
	handle  entities.XDevList
	once    sync.Once
	err     error
	cleanup runtime.Cleanup
}

type leakedList struct {
	ext    *XDevSpace
	handle entities.XDevList
}

// NewXDevList creates a device list for session.
func NewXDevList(session entities.Session, ext *XDevSpace) (*XDevList, error) {
	if ext == nil {
		return nil, &xrerrors.NotFoundError{Kind: "extension", Name: XDevSpaceName}
	}
	info := entities.NewCreateXDevListInfo()
	var handle entities.XDevList
	if err := xrerrors.CheckResult(fnCreateXDevList, ext.createXDevList(session, &info, &handle)); err != nil {
		return nil, err
	}

	l := &XDevList{ext: ext, handle: handle}
	l.cleanup = runtime.AddCleanup(l, destroyLeaked, leakedList{ext: ext, handle: handle})
	metrics.LiveXDevLists.Inc()
	return l, nil
}

func destroyLeaked(l leakedList) {
	res := l.ext.destroyXDevList(l.handle)
	metrics.LiveXDevLists.Dec()
	metrics.XDevListDestroys.Inc()
	slog.Warn("device list collected without Close", "handle", uint64(l.handle), "result", res.String())
}

// Handle returns the runtime handle, or NullXDevList after Close.
func (l *XDevList) Handle() entities.XDevList {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.handle
}

// GenerationNumber returns the list's generation. A different value than
// last observed means the device set changed.
func (l *XDevList) GenerationNumber() (uint64, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if l.handle == entities.NullXDevList {
		return 0, xrerrors.ErrClosed
	}
	var generation uint64
	if err := xrerrors.CheckResult(fnGetXDevListGeneration, l.ext.getXDevListGeneration(l.handle, &generation)); err != nil {
		return 0, err
	}
	return generation, nil
}

// Enumerate fills buf with up to len(buf) device ids and returns the total
// number of devices. An empty buf only queries the count.
func (l *XDevList) Enumerate(buf []entities.XDevID) (uint32, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if l.handle == entities.NullXDevList {
		return 0, xrerrors.ErrClosed
	}
	var (
		count uint32
		first *entities.XDevID
	)
	if len(buf) > 0 {
		first = &buf[0]
	}
	res := l.ext.enumerateXDevs(l.handle, uint32(len(buf)), &count, first)
	if err := xrerrors.CheckResult(fnEnumerateXDevs, res); err != nil {
		return 0, err
	}
	return count, nil
}

// Devices returns every device id in the list. It starts over when the set
// grows between the count and the fill call.
func (l *XDevList) Devices() ([]entities.XDevID, error) {
	for {
		count, err := l.Enumerate(nil)
		if err != nil {
			return nil, err
		}
		if count == 0 {
			return nil, nil
		}
		buf := make([]entities.XDevID, count)
		n, err := l.Enumerate(buf)
		if code, _ := xrerrors.ResultCode(err); code == entities.ErrorSizeInsufficient {
			continue
		}
		if err != nil {
			return nil, err
		}
		if n <= count {
			return buf[:n], nil
		}
	}
}

// Properties returns a snapshot of the properties of device id.
func (l *XDevList) Properties(id entities.XDevID) (entities.XDevProperties, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	props := entities.NewXDevProperties()
	if l.handle == entities.NullXDevList {
		return props, xrerrors.ErrClosed
	}
	info := entities.NewGetXDevInfo(id)
	if err := xrerrors.CheckResult(fnGetXDevProperties, l.ext.getXDevProperties(l.handle, &info, &props)); err != nil {
		return entities.NewXDevProperties(), err
	}
	return props, nil
}

// CreateSpace creates a space anchored to device id, offset by offset.
// The caller owns the returned space.
func (l *XDevList) CreateSpace(session entities.Session, id entities.XDevID, offset entities.Posef) (entities.Space, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if l.handle == entities.NullXDevList {
		return entities.NullSpace, xrerrors.ErrClosed
	}
	info := entities.NewCreateXDevSpaceInfo(l.handle, id, offset)
	var space entities.Space
	if err := xrerrors.CheckResult(fnCreateXDevSpace, l.ext.createXDevSpace(session, &info, &space)); err != nil {
		return entities.NullSpace, err
	}
	return space, nil
}

// Close destroys the list. Only the first call reaches the runtime; later
// calls return the first call's result.
func (l *XDevList) Close() error {
	l.once.Do(func() {
		l.mu.Lock()
		defer l.mu.Unlock()
		l.cleanup.Stop()
		handle := l.handle
		l.handle = entities.NullXDevList
		metrics.LiveXDevLists.Dec()
		metrics.XDevListDestroys.Inc()
		l.err = xrerrors.CheckResult(fnDestroyXDevList, l.ext.destroyXDevList(handle))
	})
	return l.err
}

// Closed reports whether Close has run.
func (l *XDevList) Closed() bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.handle == entities.NullXDevList
}
