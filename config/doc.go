/*
Package config holds the run configuration of the dial-face generator.

Default() reproduces the 85c1 face on an A4 sheet. A YAML file may overlay
any subset of the values; lengths are written as literals such as "59.4mm"
or "0.25mm", angles as "225deg", font sizes as "8pt". Texts may reference
${vars} defined in the same file.
*/
package config

import "github.com/npillmayer/schuko/tracing"

// tracer traces with key 'meterfaces.config'.
func tracer() tracing.Trace {
	return tracing.Select("meterfaces.config")
}
