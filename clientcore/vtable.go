package clientcore

import (
	"github.com/xrizer/xrizer-go/domain/entities"
	"github.com/xrizer/xrizer-go/internal/abi"
	"github.com/xrizer/xrizer-go/vtable"
)

// Interface versions.
const (
	Version002 = "IVRClientCore_002"
	Version003 = "IVRClientCore_003"
)

// Function table slots, in IVRClientCore declaration order.
const (
	SlotInit = iota
	SlotCleanup
	SlotIsInterfaceVersionValid
	SlotGetGenericInterface
	SlotIsHmdPresent
	SlotEnglishStringForHmdError
	SlotIDForVRInitError
)

var notInitialized = uintptr(entities.InitErrorInitNotInitialized)

var (
	clientCore003 = vtable.NewKind[ClientCore](Version003,
		func(this, appType, startupInfo uintptr) uintptr {
			return vtable.Dispatch(this, notInitialized, func(c *ClientCore) uintptr {
				return initError(c.Init(applicationType(appType), abi.GoString(startupInfo)))
			})
		},
		cleanup,
		isInterfaceVersionValid,
		getGenericInterface,
		isHmdPresent,
		englishStringForHmdError,
		idForVRInitError,
	)

	clientCore002 = vtable.NewKind[ClientCore](Version002,
		func(this, appType uintptr) uintptr {
			return vtable.Dispatch(this, notInitialized, func(c *ClientCore) uintptr {
				return initError(c.Init(applicationType(appType), ""))
			})
		},
		cleanup,
		isInterfaceVersionValid,
		getGenericInterface,
		isHmdPresent,
		englishStringForHmdError,
		idForVRInitError,
	)
)

func initError(e entities.InitError) uintptr {
	return uintptr(uint32(e))
}

func applicationType(v uintptr) entities.ApplicationType {
	return entities.ApplicationType(int32(v))
}

func toInitError(v uintptr) entities.InitError {
	return entities.InitError(int32(v))
}

func cleanup(this uintptr) {
	vtable.DispatchVoid(this, (*ClientCore).Cleanup)
}

func isInterfaceVersionValid(this, name uintptr) uintptr {
	return vtable.Dispatch(this, notInitialized, func(c *ClientCore) uintptr {
		return initError(c.IsInterfaceVersionValid(abi.GoString(name)))
	})
}

type lookup struct {
	iface uintptr
	err   entities.InitError
}

func getGenericInterface(this, name, errOut uintptr) uintptr {
	res := vtable.Dispatch(this, lookup{err: entities.InitErrorInitNotInitialized}, func(c *ClientCore) lookup {
		p, err := c.GetGenericInterface(abi.GoString(name))
		return lookup{iface: uintptr(p), err: err}
	})
	abi.WriteInt32(errOut, int32(res.err))
	return res.iface
}

func isHmdPresent(this uintptr) uintptr {
	return vtable.Dispatch(this, abi.Bool(false), func(c *ClientCore) uintptr {
		return abi.Bool(c.IsHmdPresent())
	})
}

func englishStringForHmdError(this, e uintptr) uintptr {
	err := toInitError(e)
	return vtable.Dispatch(this, abi.CString(err.English()), func(c *ClientCore) uintptr {
		return abi.CString(c.EnglishStringForHmdError(err))
	})
}

func idForVRInitError(this, e uintptr) uintptr {
	err := toInitError(e)
	return vtable.Dispatch(this, abi.CString(err.ID()), func(c *ClientCore) uintptr {
		return abi.CString(c.IDForVRInitError(err))
	})
}
