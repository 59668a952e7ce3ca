/*
Package canvasrenderer renders dial-face pages with github.com/tdewolff/canvas
and serializes them as PDF or SVG.

Fonts are looked up by name: injected resources first, then "embed:" sources,
font file paths and finally the fonts installed on the host. A font that
cannot be found is an error; there is no fallback face.
*/
package canvasrenderer

import "github.com/npillmayer/schuko/tracing"

// tracer traces with key 'meterfaces.renderer'.
func tracer() tracing.Trace {
	return tracing.Select("meterfaces.renderer")
}
