//go:build !debug

package buildflags

// Debug reports whether the binary was built with the debug tag.
// Release builds drop debug-only passes and turn assertions into logged no-ops.
const Debug = false
