// Package config carries compiler-wide constants and the optional
// on-disk settings file, in the style of the teacher's own
// config-constants package.
package config

// Version is the current nyxc version. Set at build time via
// -ldflags, or left at this default for local builds.
var Version = "0.1.0"

const SourceFileExt = ".nyx"

// SourceFileExtensions are all recognized source file extensions.
var SourceFileExtensions = []string{".nyx"}

// HasSourceExt returns true if the path ends with a recognized source
// extension.
func HasSourceExt(path string) bool {
	ext := SourceFileExt
	return len(path) >= len(ext) && path[len(path)-len(ext):] == ext
}

// DefaultMaxRecursionDepth bounds the parser's expression nesting
// before it gives up with a diagnostic, guarding against stack
// overflow on pathological or adversarial input.
const DefaultMaxRecursionDepth = 256
