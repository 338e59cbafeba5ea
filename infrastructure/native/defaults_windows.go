package native

// DefaultLoader is the OpenXR loader library name.
const DefaultLoader = "openxr_loader.dll"
