package reporting

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/codewithboateng/rulebench/internal/model"
)

// OutcomeChange records one case whose outcome differs between two runs.
type OutcomeChange struct {
	CaseID   string        `json:"case_id"`
	RuleCode string        `json:"rule_code"`
	Base     model.Outcome `json:"base"`
	Head     model.Outcome `json:"head"`
}

// Diff compares two runs by case id.
type Diff struct {
	BaseRun     string          `json:"base_run"`
	HeadRun     string          `json:"head_run"`
	Regressions []OutcomeChange `json:"regressions,omitempty"` // PASS in base, not in head
	Fixes       []OutcomeChange `json:"fixes,omitempty"`       // not PASS in base, PASS in head
	Changed     []OutcomeChange `json:"changed,omitempty"`     // other outcome transitions
	AddedCases  []string        `json:"added_cases,omitempty"`
	GoneCases   []string        `json:"gone_cases,omitempty"`
}

// BuildDiff computes the outcome delta between a base and a head run.
func BuildDiff(base, head *model.Run) Diff {
	d := Diff{BaseRun: base.ID, HeadRun: head.ID}

	baseByID := make(map[string]model.VerificationResult, len(base.Results))
	for _, r := range base.Results {
		baseByID[r.CaseID] = r
	}
	headSeen := make(map[string]struct{}, len(head.Results))

	for _, h := range head.Results {
		headSeen[h.CaseID] = struct{}{}
		b, ok := baseByID[h.CaseID]
		if !ok {
			d.AddedCases = append(d.AddedCases, h.CaseID)
			continue
		}
		if b.Outcome == h.Outcome {
			continue
		}
		ch := OutcomeChange{CaseID: h.CaseID, RuleCode: h.ExpectedRule, Base: b.Outcome, Head: h.Outcome}
		switch {
		case b.Outcome == model.OutcomePass:
			d.Regressions = append(d.Regressions, ch)
		case h.Outcome == model.OutcomePass:
			d.Fixes = append(d.Fixes, ch)
		default:
			d.Changed = append(d.Changed, ch)
		}
	}
	for _, b := range base.Results {
		if _, ok := headSeen[b.CaseID]; !ok {
			d.GoneCases = append(d.GoneCases, b.CaseID)
		}
	}
	return d
}

// WriteDiffJSON renders the diff of two runs into <base>_vs_<head>.json.
func WriteDiffJSON(baseID, headID, outDir string, base, head *model.Run) (string, error) {
	d := BuildDiff(base, head)
	path := filepath.Join(outDir, fmt.Sprintf("%s_vs_%s.json", baseID, headID))
	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer f.Close()
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(d); err != nil {
		return "", err
	}
	return path, nil
}
