package extensions_test

import (
	"errors"
	"runtime"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xrizer/xrizer-go/domain/entities"
	xrerrors "github.com/xrizer/xrizer-go/domain/errors"
	"github.com/xrizer/xrizer-go/extensions"
	"github.com/xrizer/xrizer-go/internal/testutil"
)

const session = entities.Session(0x42)

var (
	hmd = testutil.MockDevice{ID: 11, Name: "Index HMD", Serial: "LHR-0001", CanCreateSpace: true}
	lhc = testutil.MockDevice{ID: 12, Name: "Left Controller", Serial: "LHR-0002", CanCreateSpace: true}
	rhc = testutil.MockDevice{ID: 13, Name: "Right Controller", Serial: "LHR-0003", CanCreateSpace: true}
	bs  = testutil.MockDevice{ID: 14, Name: "Base Station", Serial: "LHB-0004"}
)

func loadXDevSpace(t *testing.T, opts ...testutil.MockOption) (*testutil.MockRuntime, *extensions.XDevSpace) {
	t.Helper()
	m := testutil.NewMockRuntime(opts...)
	x, err := extensions.LoadXDevSpace(newInstance(t, m), m, m.Bridge())
	require.NoError(t, err)
	return m, x
}

func newList(t *testing.T, opts ...testutil.MockOption) (*testutil.MockRuntime, *extensions.XDevList) {
	t.Helper()
	m, x := loadXDevSpace(t, opts...)
	list, err := extensions.NewXDevList(session, x)
	require.NoError(t, err)
	t.Cleanup(func() { _ = list.Close() })
	return m, list
}

func TestNewXDevList(t *testing.T) {
	m, list := newList(t)
	assert.NotEqual(t, entities.NullXDevList, list.Handle())
	assert.Equal(t, 1, m.ListsCreated())
	assert.Equal(t, 1, m.LiveLists())
	assert.False(t, list.Closed())
}

func TestNewXDevList_Failures(t *testing.T) {
	_, err := extensions.NewXDevList(session, nil)
	var nf *xrerrors.NotFoundError
	assert.ErrorAs(t, err, &nf)

	m, x := loadXDevSpace(t, testutil.WithCreateListResult(entities.ErrorLimitReached))
	list, err := extensions.NewXDevList(session, x)
	assert.Nil(t, list)
	testutil.RequireResultCode(t, err, entities.ErrorLimitReached)
	assert.Zero(t, m.ListsCreated())
	assert.Zero(t, m.TotalDestroyCalls())

	_, err = extensions.NewXDevList(entities.NullSession, x)
	testutil.RequireResultCode(t, err, entities.ErrorHandleInvalid)
	assert.NotErrorIs(t, err, xrerrors.ErrClosed)
}

func TestXDevList_GenerationChangesWithDeviceSet(t *testing.T) {
	m, list := newList(t)

	before, err := list.GenerationNumber()
	require.NoError(t, err)
	again, err := list.GenerationNumber()
	require.NoError(t, err)
	assert.Equal(t, before, again)

	m.SetDevices(hmd)

	after, err := list.GenerationNumber()
	require.NoError(t, err)
	assert.NotEqual(t, before, after)
}

func TestXDevList_TwoCallEnumeration(t *testing.T) {
	_, list := newList(t, testutil.WithDevices(hmd, lhc, rhc, bs))
	const sentinel = entities.XDevID(0xdead)
	fill := func(n int) []entities.XDevID {
		buf := make([]entities.XDevID, n)
		for i := range buf {
			buf[i] = sentinel
		}
		return buf
	}

	t.Run("count only", func(t *testing.T) {
		buf := fill(4)
		count, err := list.Enumerate(buf[:0])
		require.NoError(t, err)
		assert.Equal(t, uint32(4), count)
		assert.Equal(t, fill(4), buf, "a zero capacity call writes nothing")
	})

	t.Run("exact", func(t *testing.T) {
		buf := fill(4)
		count, err := list.Enumerate(buf)
		require.NoError(t, err)
		assert.Equal(t, uint32(4), count)
		assert.Equal(t, []entities.XDevID{11, 12, 13, 14}, buf)
	})

	t.Run("larger buffer", func(t *testing.T) {
		buf := fill(6)
		count, err := list.Enumerate(buf)
		require.NoError(t, err)
		assert.Equal(t, uint32(4), count)
		assert.Equal(t, []entities.XDevID{11, 12, 13, 14, sentinel, sentinel}, buf)
	})

	t.Run("partial fill", func(t *testing.T) {
		buf := fill(3)
		count, err := list.Enumerate(buf[:2])
		require.NoError(t, err)
		assert.Equal(t, uint32(4), count)
		assert.Equal(t, []entities.XDevID{11, 12, sentinel}, buf)
	})
}

func TestXDevList_Devices(t *testing.T) {
	m, list := newList(t)

	devices, err := list.Devices()
	require.NoError(t, err)
	assert.Empty(t, devices)

	m.SetDevices(hmd, lhc)
	devices, err = list.Devices()
	require.NoError(t, err)
	assert.Equal(t, []entities.XDevID{11, 12}, devices)
}

func TestXDevList_DevicesRetriesWhenSetGrows(t *testing.T) {
	m, list := newList(t, testutil.WithDevices(hmd), testutil.WithHotplug(lhc, rhc))

	before, err := list.GenerationNumber()
	require.NoError(t, err)

	devices, err := list.Devices()
	require.NoError(t, err)
	assert.Equal(t, []entities.XDevID{11, 12, 13}, devices)

	after, err := list.GenerationNumber()
	require.NoError(t, err)
	assert.Equal(t, before+2, after)
	assert.Zero(t, m.TotalDestroyCalls())
}

func TestXDevList_EnumerateReportsSizeInsufficient(t *testing.T) {
	_, list := newList(t, testutil.WithDevices(hmd), testutil.WithHotplug(lhc))

	buf := make([]entities.XDevID, 1)
	_, err := list.Enumerate(buf)
	testutil.RequireResultCode(t, err, entities.ErrorSizeInsufficient)
}

func TestXDevList_Properties(t *testing.T) {
	_, list := newList(t, testutil.WithDevices(hmd, bs))

	props, err := list.Properties(hmd.ID)
	require.NoError(t, err)
	assert.Equal(t, "Index HMD", props.Name())
	assert.Equal(t, "LHR-0001", props.Serial())
	assert.True(t, props.CanCreateSpace.Bool())

	props, err = list.Properties(bs.ID)
	require.NoError(t, err)
	assert.Equal(t, "Base Station", props.Name())
	assert.False(t, props.CanCreateSpace.Bool())

	props, err = list.Properties(999)
	testutil.RequireResultCode(t, err, entities.ErrorValidationFailure)
	assert.Empty(t, props.Name())
}

func TestXDevList_CreateSpace(t *testing.T) {
	m, list := newList(t, testutil.WithDevices(hmd, bs))

	space, err := list.CreateSpace(session, hmd.ID, entities.IdentityPose)
	require.NoError(t, err)
	assert.NotEqual(t, entities.NullSpace, space)
	id, ok := m.SpaceDevice(space)
	require.True(t, ok)
	assert.Equal(t, hmd.ID, id)

	_, err = list.CreateSpace(session, bs.ID, entities.IdentityPose)
	testutil.RequireResultCode(t, err, entities.ErrorFeatureUnsupported)

	_, err = list.CreateSpace(session, 999, entities.IdentityPose)
	testutil.RequireResultCode(t, err, entities.ErrorValidationFailure)
}

func TestXDevList_CloseDestroysExactlyOnce(t *testing.T) {
	m, list := newList(t, testutil.WithDevices(hmd))
	handle := list.Handle()

	require.NoError(t, list.Close())
	require.NoError(t, list.Close())

	assert.Equal(t, 1, m.DestroyCalls(handle))
	assert.Zero(t, m.LiveLists())
	assert.True(t, list.Closed())
	assert.Equal(t, entities.NullXDevList, list.Handle())

	_, err := list.GenerationNumber()
	assert.ErrorIs(t, err, xrerrors.ErrClosed)
	_, err = list.Enumerate(nil)
	assert.ErrorIs(t, err, xrerrors.ErrClosed)
	_, err = list.Devices()
	assert.ErrorIs(t, err, xrerrors.ErrClosed)
	_, err = list.Properties(hmd.ID)
	assert.ErrorIs(t, err, xrerrors.ErrClosed)
	_, err = list.CreateSpace(session, hmd.ID, entities.IdentityPose)
	assert.ErrorIs(t, err, xrerrors.ErrClosed)

	assert.Equal(t, 1, m.DestroyCalls(handle))
}

var errLater = errors.New("later step failed")

func TestXDevList_DestroyedOnErrorPath(t *testing.T) {
	m, x := loadXDevSpace(t, testutil.WithDevices(hmd))

	var handle entities.XDevList
	build := func() error {
		list, err := extensions.NewXDevList(session, x)
		if err != nil {
			return err
		}
		defer list.Close()
		handle = list.Handle()
		return errLater
	}

	assert.ErrorIs(t, build(), errLater)
	assert.Equal(t, 1, m.ListsCreated())
	assert.Equal(t, 1, m.DestroyCalls(handle))
	assert.Equal(t, 1, m.TotalDestroyCalls())
}

func TestXDevList_CollectedListIsDestroyed(t *testing.T) {
	m, x := loadXDevSpace(t)

	func() {
		_, err := extensions.NewXDevList(session, x)
		require.NoError(t, err)
	}()

	assert.Eventually(t, func() bool {
		runtime.GC()
		return m.TotalDestroyCalls() == 1
	}, 5*time.Second, 10*time.Millisecond)
	assert.Zero(t, m.LiveLists())
}

func TestXDevList_ConcurrentUse(t *testing.T) {
	m, list := newList(t, testutil.WithDevices(hmd, lhc, rhc))
	handle := list.Handle()

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 50 {
				devices, err := list.Devices()
				if err != nil {
					assert.ErrorIs(t, err, xrerrors.ErrClosed)
					return
				}
				for _, id := range devices {
					if _, err := list.Properties(id); err != nil {
						assert.ErrorIs(t, err, xrerrors.ErrClosed)
						return
					}
				}
			}
		}()
	}
	for range 4 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = list.Close()
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, m.DestroyCalls(handle))
}

func TestXDevSpace_EndToEnd(t *testing.T) {
	m := testutil.NewMockRuntime()

	advertised, err := m.EnumerateInstanceExtensions()
	require.NoError(t, err)
	set := extensions.NewExtraSet(advertised)
	require.True(t, set.XDevSpace)

	instance, err := m.CreateInstance("end to end", set.Names())
	require.NoError(t, err)
	extra, err := extensions.LoadExtra(instance, set, m, m.Bridge())
	require.NoError(t, err)
	require.NotNil(t, extra.XDevSpace)

	list, err := extensions.NewXDevList(session, extra.XDevSpace)
	require.NoError(t, err)

	count, err := list.Enumerate(nil)
	require.NoError(t, err)
	assert.Zero(t, count)

	before, err := list.GenerationNumber()
	require.NoError(t, err)
	m.SetDevices(hmd, lhc, rhc)
	after, err := list.GenerationNumber()
	require.NoError(t, err)
	assert.NotEqual(t, before, after)

	devices, err := list.Devices()
	require.NoError(t, err)
	assert.Len(t, devices, 3)

	_, err = list.Properties(entities.XDevID(12345))
	testutil.RequireResultCode(t, err, entities.ErrorValidationFailure)

	handle := list.Handle()
	require.NoError(t, list.Close())
	assert.Equal(t, 1, m.DestroyCalls(handle))
	require.NoError(t, m.DestroyInstance(instance))
}
