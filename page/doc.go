/*
Package page lays a sheet of dial faces onto a single surface.

Faces are tiled with layout.Tile; each face is drawn inside its own
Save/Translate/Restore bracket so no transform leaks between sibling faces.
An optional crosshair grid is drawn in page coordinates before any face.
*/
package page

import "github.com/npillmayer/schuko/tracing"

// tracer traces with key 'meterfaces.page'.
func tracer() tracing.Trace {
	return tracing.Select("meterfaces.page")
}
