package fuzz

import (
	"testing"

	"github.com/codewithboateng/rulebench/internal/toolchain"
)

// Fuzz the findings-document parser with arbitrary bytes to ensure it never
// panics: malformed analyzer output must surface as an error, nothing worse.
func FuzzParseFindingsNoPanic(f *testing.F) {
	seeds := [][]byte{
		[]byte(`{"runs": []}`),
		[]byte(`{"runs": [{"results": [{"ruleId": "MISRA-C-21.3"}]}]}`),
		[]byte(`{"runs": [{"results": [{"ruleId": "X", "locations": [{"physicalLocation": {"artifactLocation": {"uri": "a.c"}, "region": {"startLine": 1}}}]}]}]}`),
		[]byte(`garbage-but-should-not-panic`),
		[]byte(`{"runs": "not-an-array"}`),
	}
	for _, s := range seeds {
		f.Add(s)
	}
	f.Fuzz(func(t *testing.T, data []byte) {
		_, _ = toolchain.ParseFindings(data) // we only assert "no panic"
	})
}
