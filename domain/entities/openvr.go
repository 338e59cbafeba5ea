package entities

import "fmt"

// InitError is vr::EVRInitError, the status type of the OpenVR client core.
type InitError int32

// OpenVR init error codes.
const (
	InitErrorNone    InitError = 0
	InitErrorUnknown InitError = 1

	InitErrorInitInstallationNotFound       InitError = 100
	InitErrorInitInstallationCorrupt        InitError = 101
	InitErrorInitVRClientDLLNotFound        InitError = 102
	InitErrorInitFileNotFound               InitError = 103
	InitErrorInitFactoryNotFound            InitError = 104
	InitErrorInitInterfaceNotFound          InitError = 105
	InitErrorInitInvalidInterface           InitError = 106
	InitErrorInitUserConfigDirInvalid       InitError = 107
	InitErrorInitHmdNotFound                InitError = 108
	InitErrorInitNotInitialized             InitError = 109
	InitErrorInitPathRegistryNotFound       InitError = 110
	InitErrorInitNoConfigPath               InitError = 111
	InitErrorInitNoLogPath                  InitError = 112
	InitErrorInitPathRegistryNotWritable    InitError = 113
	InitErrorInitAppInfoInitFailed          InitError = 114
	InitErrorInitRetry                      InitError = 115
	InitErrorInitCanceledByUser             InitError = 116
	InitErrorInitAnotherAppLaunching        InitError = 117
	InitErrorInitSettingsInitFailed         InitError = 118
	InitErrorInitShuttingDown               InitError = 119
	InitErrorInitTooManyObjects             InitError = 120
	InitErrorInitNoServerForBackgroundApp   InitError = 121
	InitErrorInitNotSupportedWithCompositor InitError = 122
	InitErrorInitNotAvailableToUtilityApps  InitError = 123
	InitErrorInitInternal                   InitError = 124

	InitErrorDriverFailed     InitError = 200
	InitErrorDriverUnknown    InitError = 201
	InitErrorDriverHmdUnknown InitError = 202
	InitErrorDriverNotLoaded  InitError = 203

	InitErrorIPCServerInitFailed InitError = 300
	InitErrorIPCConnectFailed    InitError = 301
)

type initErrorInfo struct {
	id      string
	english string
}

var initErrors = map[InitError]initErrorInfo{
	InitErrorNone:                           {"VRInitError_None", "No Error (0)"},
	InitErrorUnknown:                        {"VRInitError_Unknown", "Unknown Error (1)"},
	InitErrorInitInstallationNotFound:       {"VRInitError_Init_InstallationNotFound", "Installation Not Found (100)"},
	InitErrorInitInstallationCorrupt:        {"VRInitError_Init_InstallationCorrupt", "Installation Corrupt (101)"},
	InitErrorInitVRClientDLLNotFound:        {"VRInitError_Init_VRClientDLLNotFound", "vrclient Shared Lib Not Found (102)"},
	InitErrorInitFileNotFound:               {"VRInitError_Init_FileNotFound", "File Not Found (103)"},
	InitErrorInitFactoryNotFound:            {"VRInitError_Init_FactoryNotFound", "Factory Function Not Found (104)"},
	InitErrorInitInterfaceNotFound:          {"VRInitError_Init_InterfaceNotFound", "Interface Not Found (105)"},
	InitErrorInitInvalidInterface:           {"VRInitError_Init_InvalidInterface", "Invalid Interface (106)"},
	InitErrorInitUserConfigDirInvalid:       {"VRInitError_Init_UserConfigDirectoryInvalid", "User Config Directory Invalid (107)"},
	InitErrorInitHmdNotFound:                {"VRInitError_Init_HmdNotFound", "Hmd Not Found (108)"},
	InitErrorInitNotInitialized:             {"VRInitError_Init_NotInitialized", "Not Initialized (109)"},
	InitErrorInitPathRegistryNotFound:       {"VRInitError_Init_PathRegistryNotFound", "Installation path could not be located (110)"},
	InitErrorInitNoConfigPath:               {"VRInitError_Init_NoConfigPath", "Config path could not be located (111)"},
	InitErrorInitNoLogPath:                  {"VRInitError_Init_NoLogPath", "Log path could not be located (112)"},
	InitErrorInitPathRegistryNotWritable:    {"VRInitError_Init_PathRegistryNotWritable", "Unable to write path registry (113)"},
	InitErrorInitAppInfoInitFailed:          {"VRInitError_Init_AppInfoInitFailed", "App info manager init failed (114)"},
	InitErrorInitRetry:                      {"VRInitError_Init_Retry", "Internal Retry (115)"},
	InitErrorInitCanceledByUser:             {"VRInitError_Init_InitCanceledByUser", "User Canceled Init (116)"},
	InitErrorInitAnotherAppLaunching:        {"VRInitError_Init_AnotherAppLaunching", "Another app was already launching (117)"},
	InitErrorInitSettingsInitFailed:         {"VRInitError_Init_SettingsInitFailed", "Settings manager init failed (118)"},
	InitErrorInitShuttingDown:               {"VRInitError_Init_ShuttingDown", "VR system shutting down (119)"},
	InitErrorInitTooManyObjects:             {"VRInitError_Init_TooManyObjects", "Too many tracked objects (120)"},
	InitErrorInitNoServerForBackgroundApp:   {"VRInitError_Init_NoServerForBackgroundApp", "Not starting vrserver for background app (121)"},
	InitErrorInitNotSupportedWithCompositor: {"VRInitError_Init_NotSupportedWithCompositor", "The requested interface is incompatible with the compositor and the compositor is running (122)"},
	InitErrorInitNotAvailableToUtilityApps:  {"VRInitError_Init_NotAvailableToUtilityApps", "This interface is not available to utility applications (123)"},
	InitErrorInitInternal:                   {"VRInitError_Init_Internal", "vrserver internal error (124)"},
	InitErrorDriverFailed:                   {"VRInitError_Driver_Failed", "Driver Failed (200)"},
	InitErrorDriverUnknown:                  {"VRInitError_Driver_Unknown", "Driver Not Known (201)"},
	InitErrorDriverHmdUnknown:               {"VRInitError_Driver_HmdUnknown", "HMD Not Known (202)"},
	InitErrorDriverNotLoaded:                {"VRInitError_Driver_NotLoaded", "Driver Not Loaded (203)"},
	InitErrorIPCServerInitFailed:            {"VRInitError_IPC_ServerInitFailed", "VR Server Init Failed (300)"},
	InitErrorIPCConnectFailed:               {"VRInitError_IPC_ConnectFailed", "Connect to VR Server Failed (301)"},
}

// ID returns the symbolic enum name, e.g. "VRInitError_Init_InterfaceNotFound".
func (e InitError) ID() string {
	if info, ok := initErrors[e]; ok {
		return info.id
	}
	return fmt.Sprintf("VRInitError_%d", int32(e))
}

// English returns the human-readable description OpenVR shows to users.
func (e InitError) English() string {
	if info, ok := initErrors[e]; ok {
		return info.english
	}
	return fmt.Sprintf("Unknown error (%d)", int32(e))
}

func (e InitError) String() string {
	return e.ID()
}

// ApplicationType is vr::EVRApplicationType.
type ApplicationType int32

// OpenVR application types.
const (
	ApplicationOther          ApplicationType = 0
	ApplicationScene          ApplicationType = 1
	ApplicationOverlay        ApplicationType = 2
	ApplicationBackground     ApplicationType = 3
	ApplicationUtility        ApplicationType = 4
	ApplicationVRMonitor      ApplicationType = 5
	ApplicationSteamWatchdog  ApplicationType = 6
	ApplicationBootstrapper   ApplicationType = 7
	ApplicationWebHelper      ApplicationType = 8
	ApplicationOpenXRInstance ApplicationType = 9
	ApplicationOpenXRScene    ApplicationType = 10
	ApplicationOpenXROverlay  ApplicationType = 11
	ApplicationPrism          ApplicationType = 12
	ApplicationRoomView       ApplicationType = 13
)

var applicationTypeNames = map[ApplicationType]string{
	ApplicationOther:          "Other",
	ApplicationScene:          "Scene",
	ApplicationOverlay:        "Overlay",
	ApplicationBackground:     "Background",
	ApplicationUtility:        "Utility",
	ApplicationVRMonitor:      "VRMonitor",
	ApplicationSteamWatchdog:  "SteamWatchdog",
	ApplicationBootstrapper:   "Bootstrapper",
	ApplicationWebHelper:      "WebHelper",
	ApplicationOpenXRInstance: "OpenXRInstance",
	ApplicationOpenXRScene:    "OpenXRScene",
	ApplicationOpenXROverlay:  "OpenXROverlay",
	ApplicationPrism:          "Prism",
	ApplicationRoomView:       "RoomView",
}

func (t ApplicationType) String() string {
	if name, ok := applicationTypeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("ApplicationType(%d)", int32(t))
}

// Valid reports whether t is a known application type.
func (t ApplicationType) Valid() bool {
	_, ok := applicationTypeNames[t]
	return ok
}
