package verify

import (
	"strings"

	"github.com/codewithboateng/rulebench/internal/model"
	"github.com/codewithboateng/rulebench/internal/storage"
)

// ApplySuppressions marks non-PASS results covered by an active suppression.
// The outcome stays what it was; only the exit-code contribution changes.
// Returns the updated results and the number suppressed.
func ApplySuppressions(in []model.VerificationResult, sups []storage.Suppression) ([]model.VerificationResult, int) {
	if len(sups) == 0 || len(in) == 0 {
		return in, 0
	}
	suppressed := 0
	out := make([]model.VerificationResult, len(in))
	copy(out, in)
nextResult:
	for i, r := range out {
		if r.Outcome == model.OutcomePass {
			continue
		}
		for _, s := range sups {
			if s.CaseID != "" && !eqCI(r.CaseID, s.CaseID) {
				continue
			}
			if s.RuleCode != "" && !eqCI(r.ExpectedRule, s.RuleCode) {
				continue
			}
			if s.CaseID == "" && s.RuleCode == "" {
				continue // an unscoped suppression matches nothing
			}
			out[i].Suppressed = true
			suppressed++
			continue nextResult
		}
	}
	return out, suppressed
}

func eqCI(a, b string) bool { return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b)) }
