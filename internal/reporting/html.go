package reporting

import (
	"fmt"
	"html"
	"os"
	"path/filepath"

	"github.com/codewithboateng/rulebench/internal/model"
	"github.com/codewithboateng/rulebench/internal/rulepacks"
)

func WriteHTML(runID, outDir string, run *model.Run) (string, error) {
	path := filepath.Join(outDir, runID+".html")
	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	// Head + styles
	fmt.Fprintf(f, "<!doctype html><html><head><meta charset='utf-8'><title>%s</title>", html.EscapeString(runID))
	fmt.Fprint(f, "<style>body{font-family:system-ui,Arial,sans-serif;padding:20px;line-height:1.4} table{border-collapse:collapse;margin:8px 0} td,th{border:1px solid #ddd;padding:6px} h1,h2{margin:6px 0 4px} .dim{color:#666} .mono{font-family:ui-monospace,Menlo,Consolas,monospace} .pass{color:#0a0} .fail{color:#a00}</style>")
	fmt.Fprint(f, "</head><body>")

	// Title + summary
	s := run.Summary
	fmt.Fprintf(f, "<h1>rulebench report – <span class='mono'>%s</span></h1>", html.EscapeString(runID))
	fmt.Fprintf(f, "<p>Catalog: <span class='mono'>%s</span> &nbsp; Selector: %s &nbsp; Cases: %d</p>",
		html.EscapeString(run.CatalogPath), html.EscapeString(run.Selector), len(run.Cases))
	fmt.Fprintf(f, "<p><b>PASS=%d MISSED=%d BUILD_FAILED=%d TOOL_ERROR=%d</b>", s.Pass, s.Missed, s.BuildFailed, s.ToolError)
	if s.Suppressed > 0 {
		fmt.Fprintf(f, " <span class='dim'>(suppressed: %d)</span>", s.Suppressed)
	}
	fmt.Fprint(f, "</p>")

	// Failures first
	var failures []model.VerificationResult
	for _, r := range run.Results {
		if r.Outcome != model.OutcomePass {
			failures = append(failures, r)
		}
	}
	if len(failures) > 0 {
		fmt.Fprint(f, "<h2>Failures</h2><table><tr><th>Case</th><th>Standard</th><th>Rule</th><th>Outcome</th><th>Detail</th></tr>")
		for _, r := range failures {
			detail := r.Detail
			if r.Suppressed {
				detail += " [suppressed]"
			}
			fmt.Fprintf(f, "<tr><td class='mono'>%s</td><td>%s</td><td class='mono'>%s</td><td class='fail'>%s</td><td>%s</td></tr>",
				html.EscapeString(r.CaseID),
				html.EscapeString(string(r.Standard)),
				html.EscapeString(r.ExpectedRule),
				html.EscapeString(string(r.Outcome)),
				html.EscapeString(detail),
			)
		}
		fmt.Fprint(f, "</table>")
	}

	// All results, annotated with rule titles where registered
	fmt.Fprint(f, "<h2>All Cases</h2><table><tr><th>Case</th><th>Standard</th><th>Rule</th><th>Outcome</th><th>Findings</th><th>Rule Title</th></tr>")
	for _, r := range run.Results {
		title := ""
		if m, ok := rulepacks.Get(r.ExpectedRule); ok {
			title = m.Title
		}
		cls := "fail"
		if r.Outcome == model.OutcomePass {
			cls = "pass"
		}
		fmt.Fprintf(f, "<tr><td class='mono'>%s</td><td>%s</td><td class='mono'>%s</td><td class='%s'>%s</td><td>%d</td><td class='dim'>%s</td></tr>",
			html.EscapeString(r.CaseID),
			html.EscapeString(string(r.Standard)),
			html.EscapeString(r.ExpectedRule),
			cls,
			html.EscapeString(string(r.Outcome)),
			len(r.Findings),
			html.EscapeString(title),
		)
	}
	fmt.Fprint(f, "</table>")

	fmt.Fprint(f, "</body></html>")
	return path, nil
}
