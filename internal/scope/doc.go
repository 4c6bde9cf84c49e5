// Package scope owns one component namespace rooted at a directory.
//
// A scope root holds one subdirectory per component type (modes/, workflows/,
// scripts/, hooks/, agents/, commands/, templates/) and an optional
// config.yaml. Discovery is lazy and cached; writers must call ClearCache
// after mutating the directory.
//
// File organization:
//   - store.go: Store (config and component access, initialization)
//   - discovery.go: directory scan shared with the built-in provider
//   - metadata.go: metadata extraction by file extension
package scope
