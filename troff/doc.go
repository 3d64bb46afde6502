/*
Package troff produces the command stream for a line-oriented typesetter
of the troff/nroff family.

Equation renditions are built inside device string registers with .ds and
.as requests and interpolated into the document with \*(N escapes. All
commands for one equation are collected in a Buffer first and copied to
the document writer only when the equation translated successfully; a
buffer of a failed equation is simply dropped, so the document never sees
a half-built register.
*/
package troff

import "github.com/npillmayer/schuko/tracing"

// tracer traces with key 'tyqn.troff'
func tracer() tracing.Trace {
	return tracing.Select("tyqn.troff")
}
