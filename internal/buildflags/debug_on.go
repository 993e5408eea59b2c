//go:build debug

package buildflags

const Debug = true
