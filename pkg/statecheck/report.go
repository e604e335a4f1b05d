package statecheck

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/google/go-cmp/cmp"
)

// exportAll lets cmp look into unexported fields of SUT and model types.
var exportAll = cmp.Exporter(func(reflect.Type) bool { return true })

// Diff returns a human-readable diff between two states (-old +new), or ""
// if they are equal.
func Diff[T any](old, cur T) string {
	return cmp.Diff(old, cur, exportAll)
}

// FormatSteps renders a run's steps, marking skipped steps and pointing at
// the failing one.
func FormatSteps(steps []Step) string {
	if len(steps) == 0 {
		return "Commands: (none)"
	}

	var b strings.Builder

	b.WriteString("Commands:")

	for _, s := range steps {
		b.WriteString("\n")

		switch s.Status {
		case StatusFailed:
			b.WriteString("→ ")
			b.WriteString(s.Command)
			b.WriteString("  ← postcondition failed")
		case StatusSkipped:
			b.WriteString("  ")
			b.WriteString(s.Command)
			b.WriteString("  (skipped)")
		default:
			b.WriteString("  ")
			b.WriteString(s.Command)
		}
	}

	return b.String()
}

// FormatFailure renders the violated postcondition and the state diffs of
// the failing step.
func FormatFailure[S, M any](f *Failure[S, M]) string {
	if f == nil {
		return ""
	}

	var b strings.Builder

	fmt.Fprintf(&b, "Violated: %s (step %d)", f.Postcondition(), f.Index)

	if d := Diff(f.OldSUT, f.NewSUT); d != "" {
		fmt.Fprintf(&b, "\nSUT (-old +new):\n%s", strings.TrimRight(d, "\n"))
	}

	if d := Diff(f.OldModel, f.NewModel); d != "" {
		fmt.Fprintf(&b, "\nModel (-old +new):\n%s", strings.TrimRight(d, "\n"))
	}

	return b.String()
}

// String renders the report: the verdict, the minimal sequence and the
// violated postcondition.
func (r Report[S, M]) String() string {
	if r.Passed {
		suffix := ""
		if r.Interrupted {
			suffix = " (stopped early)"
		}

		return fmt.Sprintf("statecheck: passed %d cases (seed %d)%s", r.Cases, r.Seed, suffix)
	}

	var b strings.Builder

	fmt.Fprintf(&b, "statecheck: falsified after %d cases (seed %d, case seed %d)", r.Cases, r.Seed, r.CaseSeed)

	if r.Shrunk == nil {
		return b.String()
	}

	fmt.Fprintf(&b, "\nShrunk %d → %d commands (%d attempts, %d accepted)\n",
		len(r.Original), len(r.Shrunk.Commands), r.Shrunk.Attempts, r.Shrunk.Accepted)
	b.WriteString(FormatSteps(r.Shrunk.Steps))

	if f := FormatFailure(r.Shrunk.Failure); f != "" {
		b.WriteString("\n")
		b.WriteString(f)
	}

	return b.String()
}
