/*
Package face draws one ammeter-clock dial face.

A face is drawn in its own local frame: the origin is the pivot of the meter
needle, which sits below the face border by the centre-hole diameter. Two
rulers share one angular sweep: the hour ruler (0..12, ticks pointing out)
and the minute ruler (0..60, ticks pointing in). The pure geometry (ticks,
label anchors and label frames) is exposed so it can be checked without a
drawing backend.
*/
package face

import "github.com/npillmayer/schuko/tracing"

// tracer traces with key 'meterfaces.face'.
func tracer() tracing.Trace {
	return tracing.Select("meterfaces.face")
}
