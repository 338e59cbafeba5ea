package native

// DefaultLoader is the OpenXR loader library name.
const DefaultLoader = "libopenxr_loader.so.1"
