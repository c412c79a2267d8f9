// Package linediff turns two line slices into hunk-level change records.
// It wraps sergi/go-diff's line mode; the rest of the engine only ever sees
// model.ChangeRecord values and stays independent of the diff library.
package linediff

import (
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"

	"github.com/sokinpui/dpane/model"
)

// Compute diffs the two documents and returns their hunks in file order.
// Results are rebuilt from scratch on every call; no identity is preserved
// across calls.
//
// Encoding of the absent side: for a pure deletion the modified range is
// {Start: line the deleted content would occupy in modified, End: 0}; pure
// insertions mirror that on the original side. End == 0 is the absence
// marker consumed by the decoration and merge layers.
func Compute(originalLines, modifiedLines []string) []model.ChangeRecord {
	text1 := JoinLines(originalLines)
	text2 := JoinLines(modifiedLines)
	if text1 == text2 {
		return nil
	}

	dmp := diffmatchpatch.New()
	chars1, chars2, lineArray := dmp.DiffLinesToChars(text1, text2)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(chars1, chars2, false), lineArray)

	var records []model.ChangeRecord
	origLine, modLine := 0, 0 // lines consumed so far on each side

	for i := 0; i < len(diffs); i++ {
		diff := diffs[i]
		lines := splitDiffText(diff.Text)

		switch diff.Type {
		case diffmatchpatch.DiffEqual:
			origLine += len(lines)
			modLine += len(lines)

		case diffmatchpatch.DiffDelete:
			if i+1 < len(diffs) && diffs[i+1].Type == diffmatchpatch.DiffInsert {
				// Delete followed by insert is one replacement hunk.
				inserted := splitDiffText(diffs[i+1].Text)
				records = append(records, model.ChangeRecord{
					Original: model.LineRange{Start: origLine + 1, End: origLine + len(lines)},
					Modified: model.LineRange{Start: modLine + 1, End: modLine + len(inserted)},
				})
				origLine += len(lines)
				modLine += len(inserted)
				i++
				continue
			}
			records = append(records, model.ChangeRecord{
				Original: model.LineRange{Start: origLine + 1, End: origLine + len(lines)},
				Modified: model.LineRange{Start: modLine + 1, End: 0},
			})
			origLine += len(lines)

		case diffmatchpatch.DiffInsert:
			records = append(records, model.ChangeRecord{
				Original: model.LineRange{Start: origLine + 1, End: 0},
				Modified: model.LineRange{Start: modLine + 1, End: modLine + len(lines)},
			})
			modLine += len(lines)
		}
	}

	return records
}

// JoinLines joins lines with a trailing \n per line, the terminator format
// diffmatchpatch's line mode expects. ["a", ""] becomes "a\n\n" (two lines).
func JoinLines(lines []string) string {
	if len(lines) == 0 {
		return ""
	}
	var b strings.Builder
	for _, line := range lines {
		b.WriteString(line)
		b.WriteByte('\n')
	}
	return b.String()
}

// splitDiffText splits diff run text back into lines. Each line carries its
// trailing \n, so the empty element strings.Split leaves at the end is
// spurious and dropped.
func splitDiffText(text string) []string {
	lines := strings.Split(text, "\n")
	if len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}
