package cli

import "github.com/npillmayer/schuko/tracing"

// tracer traces with key 'tyqn.cli'
func tracer() tracing.Trace {
	return tracing.Select("tyqn.cli")
}
