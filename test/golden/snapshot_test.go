package golden

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"os"
	"path/filepath"
	"testing"

	"github.com/codewithboateng/rulebench/internal/builder"
	"github.com/codewithboateng/rulebench/internal/catalog"
	"github.com/codewithboateng/rulebench/internal/model"
	"github.com/codewithboateng/rulebench/internal/verify"
)

var update = flag.Bool("update", false, "update golden snapshot")

const goldenFile = "expected.json"

const sampleCatalog = `cases:
  - id: golden-pass
    standard: MISRA-C
    rule: MISRA-C-21.3
    source: a.c
    function: misra_rule_21_3
  - id: golden-missed
    standard: CERT-C
    rule: CERT-C-ARR30-C
    source: a.c
    function: cert_arr30
  - id: golden-broken
    standard: AUTOSAR-CPP
    rule: AUTOSAR-CPP-A18-5-1
    source: bad.cpp
    function: autosar_a18_5_1
`

// goldenCompiler builds everything except bad.cpp.
type goldenCompiler struct{}

func (goldenCompiler) Compile(ctx context.Context, sourcePath, outDir string) model.BuildArtifact {
	if filepath.Base(sourcePath) == "bad.cpp" {
		return model.BuildArtifact{
			SourcePath:  sourcePath,
			Diagnostics: []string{"bad.cpp:1: error: expected declaration"},
		}
	}
	return model.BuildArtifact{SourcePath: sourcePath, Succeeded: true}
}

func TestGolden_RunSnapshot(t *testing.T) {
	// Build a temp catalog dir
	dir := t.TempDir()
	for _, name := range []string{"a.c", "bad.cpp"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("int x;\n"), 0o644); err != nil {
			t.Fatalf("write source: %v", err)
		}
	}
	catPath := filepath.Join(dir, "catalog.yaml")
	if err := os.WriteFile(catPath, []byte(sampleCatalog), 0o644); err != nil {
		t.Fatalf("write catalog: %v", err)
	}

	// Catalog -> build -> findings -> reconcile, as the run command does.
	cases, err := catalog.Load(catPath)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	artifacts := builder.BuildAll(context.Background(), goldenCompiler{}, catalog.SourceUnits(cases), t.TempDir(), builder.Options{Jobs: 2})

	findings := []model.Finding{
		{RuleCode: "MISRA-C-21.3", File: "a.c", Line: 101, Message: "malloc used"},
	}
	results := verify.Reconcile(cases, artifacts, findings, nil)

	run := model.Run{
		ID:       "run-golden", // stable id for snapshot
		Selector: "all",
		Results:  results,
		Summary:  model.Summarize(results),
	}

	got, err := json.MarshalIndent(normalize(run), "", "  ")
	if err != nil {
		t.Fatalf("marshal got: %v", err)
	}

	if *update {
		if err := os.WriteFile(goldenFile, got, 0o644); err != nil {
			t.Fatalf("write golden: %v", err)
		}
		t.Logf("updated %s", goldenFile)
		return
	}

	want, err := os.ReadFile(goldenFile)
	if err != nil {
		t.Fatalf("read golden (%s): %v\nRun with: go test ./test/golden -run TestGolden_RunSnapshot -args -update", goldenFile, err)
	}

	if !bytes.Equal(bytes.TrimSpace(got), bytes.TrimSpace(want)) {
		tmp := filepath.Join(t.TempDir(), "got.json")
		_ = os.WriteFile(tmp, got, 0o644)
		t.Fatalf("golden mismatch.\n  golden: %s\n  actual: %s\nTip: update with\n  go test ./test/golden -run TestGolden_RunSnapshot -count=1 -args -update", goldenFile, tmp)
	}
}

type runLite struct {
	ID       string        `json:"id"`
	Selector string        `json:"selector"`
	Results  []resultLite  `json:"results"`
	Summary  model.Summary `json:"summary"`
}

type resultLite struct {
	CaseID   string `json:"case_id"`
	Standard string `json:"standard"`
	Rule     string `json:"rule"`
	Outcome  string `json:"outcome"`
	Findings int    `json:"findings"`
}

// normalize drops volatile fields (timestamps, temp paths) before snapshot.
func normalize(run model.Run) runLite {
	out := runLite{ID: run.ID, Selector: run.Selector, Summary: run.Summary}
	for _, r := range run.Results {
		out.Results = append(out.Results, resultLite{
			CaseID:   r.CaseID,
			Standard: string(r.Standard),
			Rule:     r.ExpectedRule,
			Outcome:  string(r.Outcome),
			Findings: len(r.Findings),
		})
	}
	return out
}
