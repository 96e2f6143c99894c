package verify

import (
	"context"
	"path/filepath"
	"strings"
	"time"

	"github.com/codewithboateng/rulebench/internal/model"
	"github.com/codewithboateng/rulebench/internal/toolchain"
)

// Analyze invokes the external analyzer over the workspace. The call is
// serialized through the workspace analyzer lock: most static-analysis tools
// cannot run concurrently against the same tree, so at most one invocation
// is in flight per workspace and queued callers wait.
func Analyze(ctx context.Context, ws *toolchain.Workspace, an toolchain.Analyzer, selector string, timeout time.Duration) ([]model.Finding, error) {
	var findings []model.Finding
	err := ws.WithAnalyzerLock(ctx, func() error {
		actx := ctx
		if timeout > 0 {
			var cancel context.CancelFunc
			actx, cancel = context.WithTimeout(ctx, timeout)
			defer cancel()
		}
		fs, err := an.Analyze(actx, ws.Root(), selector)
		if err != nil {
			return err
		}
		findings = fs
		return nil
	})
	if err != nil {
		return nil, err
	}
	return findings, nil
}

// Reconcile resolves every case to its terminal outcome, in catalog order:
//
//   - source failed to build            -> BUILD_FAILED (analyzer not consulted)
//   - analyzer failed for the run       -> TOOL_ERROR
//   - >=1 finding with matching rule
//     and file                          -> PASS (ANY-match; duplicates collapse)
//   - otherwise                         -> MISSED
//
// The rule code is authoritative and the file must match; the expected line
// range is advisory only, tolerating line drift between compiler front ends.
// Reconcile is a pure function: re-running it on the same inputs yields the
// same results.
func Reconcile(cases []model.ViolationCase, artifacts map[string]model.BuildArtifact, findings []model.Finding, analyzeErr error) []model.VerificationResult {
	out := make([]model.VerificationResult, 0, len(cases))
	for _, c := range cases {
		r := model.VerificationResult{
			CaseID:       c.ID,
			Standard:     c.Standard,
			ExpectedRule: c.RuleCode,
			Outcome:      model.OutcomePending,
		}

		art, built := artifacts[c.SourcePath]
		if !built || !art.Succeeded {
			r.Outcome = model.OutcomeBuildFailed
			r.Detail = firstLine(art.Diagnostics)
			out = append(out, r)
			continue
		}

		if analyzeErr != nil {
			r.Outcome = model.OutcomeToolError
			r.Detail = analyzeErr.Error()
			out = append(out, r)
			continue
		}

		for _, f := range findings {
			if !ruleMatches(f.RuleCode, c.RuleCode) {
				continue
			}
			if !fileMatches(f.File, c.SourcePath) {
				continue
			}
			r.Findings = append(r.Findings, f)
		}
		if len(r.Findings) > 0 {
			r.Matched = true
			r.Outcome = model.OutcomePass
		} else {
			// Zero findings of any kind for the file is the same signal as
			// wrong findings: the expected detection did not fire.
			r.Outcome = model.OutcomeMissed
		}
		out = append(out, r)
	}
	return out
}

func ruleMatches(got, want string) bool {
	return strings.EqualFold(strings.TrimSpace(got), strings.TrimSpace(want))
}

// fileMatches compares analyzer-reported paths against the catalog source
// path. Analyzers report paths relative to their own working directory, so
// the comparison is on cleaned slash paths with a suffix/basename fallback.
func fileMatches(got, want string) bool {
	g := filepath.ToSlash(filepath.Clean(got))
	w := filepath.ToSlash(filepath.Clean(want))
	if g == w {
		return true
	}
	if strings.HasSuffix(w, "/"+g) || strings.HasSuffix(g, "/"+w) {
		return true
	}
	return filepath.Base(g) == filepath.Base(w)
}

func firstLine(diags []string) string {
	if len(diags) == 0 {
		return ""
	}
	return diags[0]
}
