// Package fonts bundles a few freely licensed fonts so that a sheet can be
// produced on hosts that lack the system fonts named by the default face.
package fonts
