package classify

import (
	"slices"
	"strings"

	"github.com/yaklabco/gobrackets/pkg/document"
)

// lineShift records how one change moved lines. Bounds are zero-based and
// inclusive.
type lineShift struct {
	oldStart, oldEnd int
	newStart, newEnd int
}

// shiftsOf converts a change batch, in any order, into line shifts sorted
// top to bottom.
func shiftsOf(changes []document.ContentChange) []lineShift {
	sorted := slices.Clone(changes)
	slices.SortStableFunc(sorted, func(a, b document.ContentChange) int {
		switch {
		case a.Range.Start.Before(b.Range.Start):
			return -1
		case b.Range.Start.Before(a.Range.Start):
			return 1
		default:
			return 0
		}
	})

	out := make([]lineShift, 0, len(sorted))
	delta := 0

	for _, c := range sorted {
		s, e := c.Range.Start.Line-1, c.Range.End.Line-1
		added := strings.Count(c.Text, "\n")
		ns := s + delta

		out = append(out, lineShift{oldStart: s, oldEnd: e, newStart: ns, newEnd: ns + added})
		delta += added - (e - s)
	}

	return out
}

// toOld maps a new line to the old line it came from. It reports false for
// lines inside a change.
func toOld(shifts []lineShift, line int) (int, bool) {
	for _, sh := range shifts {
		if line < sh.newStart {
			return line - (sh.newStart - sh.oldStart), true
		}

		if line <= sh.newEnd {
			return 0, false
		}
	}

	if len(shifts) == 0 {
		return line, true
	}

	last := shifts[len(shifts)-1]

	return line - (last.newEnd - last.oldEnd), true
}

// toNew maps an old line to where it moved. It reports false for lines a
// change replaced.
func toNew(shifts []lineShift, line int) (int, bool) {
	for _, sh := range shifts {
		if line < sh.oldStart {
			return line + (sh.newStart - sh.oldStart), true
		}

		if line <= sh.oldEnd {
			return 0, false
		}
	}

	if len(shifts) == 0 {
		return line, true
	}

	last := shifts[len(shifts)-1]

	return line + (last.newEnd - last.oldEnd), true
}
