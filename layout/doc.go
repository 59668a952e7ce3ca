/*
Package layout computes page geometry for dial-face sheets: unit conversion
between millimeters and points, and the tiling of identical faces across a
page within its margins.

All values in this package are millimeters unless a name says otherwise.
*/
package layout

import "github.com/npillmayer/schuko/tracing"

// tracer traces with key 'meterfaces.layout'.
func tracer() tracing.Trace {
	return tracing.Select("meterfaces.layout")
}
