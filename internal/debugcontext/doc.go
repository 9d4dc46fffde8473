// Package debugcontext provides a passive, append-only data structure that
// accumulates diagnostic entries (errors, warnings, info, traces) as the
// assembler pipeline progresses. It does not perform I/O or formatting;
// a separate renderer consumes the entries to produce output.
//
// A separate renderer (internal/diagreport) turns entries into the
// "file:line: message" text the CLI prints.
package debugcontext
