/*
Package symbol translates equation text into device character sequences.

Two mechanisms cooperate: a name table resolving well-known symbol names
(Greek letters, relations, function names) into their device escapes, and
a per-character translator for arbitrary tokens, which recognizes
multi-character operators, inserts spacing hints, and passes device
escapes through untouched.
*/
package symbol

import "github.com/npillmayer/schuko/tracing"

// tracer traces with key 'tyqn.symbol'
func tracer() tracing.Trace {
	return tracing.Select("tyqn.symbol")
}
