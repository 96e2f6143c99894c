package perf

import (
	"fmt"
	"testing"

	"github.com/codewithboateng/rulebench/internal/model"
	"github.com/codewithboateng/rulebench/internal/verify"
)

func BenchmarkReconcile_MediumCatalog(b *testing.B) {
	const nCases = 200
	const nFindings = 1000

	cases := make([]model.ViolationCase, 0, nCases)
	artifacts := make(map[string]model.BuildArtifact)
	for i := 0; i < nCases; i++ {
		src := fmt.Sprintf("src/file_%d.c", i%20)
		cases = append(cases, model.ViolationCase{
			ID:         fmt.Sprintf("case-%d", i),
			Standard:   model.MISRAC,
			RuleCode:   fmt.Sprintf("MISRA-C-%d.%d", i%22+1, i%10+1),
			SourcePath: src,
		})
		artifacts[src] = model.BuildArtifact{SourcePath: src, Succeeded: true}
	}
	findings := make([]model.Finding, 0, nFindings)
	for i := 0; i < nFindings; i++ {
		findings = append(findings, model.Finding{
			RuleCode: fmt.Sprintf("MISRA-C-%d.%d", i%22+1, i%10+1),
			File:     fmt.Sprintf("src/file_%d.c", i%20),
			Line:     i + 1,
		})
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		results := verify.Reconcile(cases, artifacts, findings, nil)
		if len(results) != nCases {
			b.Fatal("wrong result count")
		}
	}
}
