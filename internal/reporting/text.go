package reporting

import (
	"fmt"
	"io"

	"github.com/codewithboateng/rulebench/internal/model"
)

// WriteText emits the plain-text verification report: one line per case in
// catalog order, then the summary counts. This is the machine-greppable
// surface; JSON and HTML carry the detail.
func WriteText(w io.Writer, run *model.Run) error {
	for _, r := range run.Results {
		if _, err := fmt.Fprintf(w, "%s %s %s %s\n", r.CaseID, r.Standard, r.ExpectedRule, r.Outcome); err != nil {
			return err
		}
	}
	s := run.Summary
	if _, err := fmt.Fprintf(w, "PASS=%d MISSED=%d BUILD_FAILED=%d TOOL_ERROR=%d\n",
		s.Pass, s.Missed, s.BuildFailed, s.ToolError); err != nil {
		return err
	}
	if s.Suppressed > 0 {
		if _, err := fmt.Fprintf(w, "SUPPRESSED=%d\n", s.Suppressed); err != nil {
			return err
		}
	}
	return nil
}
