package ops

import (
	"encoding/csv"
	"fmt"
	"io"

	"hourzero/internal/errors"
)

// WriteCSV writes a schedule as three-column CSV (id,start,end) followed by
// comment-style trailer lines summarizing the generation. The trailer lines
// start with "# " so spreadsheet imports can skip them.
func WriteCSV(w io.Writer, out *GenerateOutput) error {
	cw := csv.NewWriter(w)

	if err := cw.Write([]string{"id", "start", "end"}); err != nil {
		return errors.NewInternal(err)
	}
	for _, row := range out.Rows {
		record := []string{fmt.Sprintf("%d", row.Day), row.Start, row.End}
		if err := cw.Write(record); err != nil {
			return errors.NewInternal(err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return errors.NewInternal(err)
	}

	return writeCSVTrailer(w, out)
}

// writeCSVTrailer appends the summary comment lines.
func writeCSVTrailer(w io.Writer, out *GenerateOutput) error {
	lines := []string{
		fmt.Sprintf("# initial window: %s - %s (%d min)", out.Input.Start, out.Input.End, out.Summary.LengthMin),
	}

	if out.Summary.DailyShrinkMin != nil && out.Summary.PerSideShrinkMin != nil {
		lines = append(lines, fmt.Sprintf("# shrink per day: %d min (%d min per side)",
			*out.Summary.DailyShrinkMin, *out.Summary.PerSideShrinkMin))
	} else {
		lines = append(lines, fmt.Sprintf("# shrink per day: varies (%s curve)", out.Input.Curve))
	}

	lines = append(lines,
		fmt.Sprintf("# hour zero: %s", out.Summary.Collapse),
		fmt.Sprintf("# days: %d, finish mode: %s, rounding: %s, curve: %s",
			out.Input.Days, out.Input.FinishMode, out.Input.Rounding, out.Input.Curve),
	)

	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return errors.NewInternal(err)
		}
	}
	return nil
}
