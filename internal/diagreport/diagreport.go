// Package diagreport renders the entries accumulated in a
// debugcontext.DebugContext as human-readable lines. It is the
// formatter debugcontext's package doc describes as living apart from
// the passive recording structure itself.
package diagreport

import (
	"fmt"
	"io"

	"github.com/CorpsSansOrganes/casm/internal/debugcontext"
)

// Write renders every entry in ctx to w, one line per entry, in
// insertion order. Format: "severity: filePath:line: message", followed
// by an indented snippet line and an indented "hint: ..." line when set.
func Write(w io.Writer, ctx *debugcontext.DebugContext) {
	for _, entry := range ctx.Entries() {
		writeEntry(w, entry)
	}
}

func writeEntry(w io.Writer, entry *debugcontext.Entry) {
	fmt.Fprintf(w, "%s: %s: %s\n", entry.Severity(), entry.Location().String(), entry.Message())
	if entry.Snippet() != "" {
		fmt.Fprintf(w, "    %s\n", entry.Snippet())
	}
	if entry.Hint() != "" {
		fmt.Fprintf(w, "    hint: %s\n", entry.Hint())
	}
}

// Summary formats a one-line "N error(s), M warning(s)" count for a
// finished file, or "ok" when neither occurred.
func Summary(ctx *debugcontext.DebugContext) string {
	errs := len(ctx.Errors())
	warns := len(ctx.Warnings())
	if errs == 0 && warns == 0 {
		return "ok"
	}
	return fmt.Sprintf("%d error(s), %d warning(s)", errs, warns)
}
