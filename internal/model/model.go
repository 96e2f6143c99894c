package model

import "time"

const Version = "1.0"

// Standard identifies a coding-standard rule pack.
type Standard string

const (
	MISRAC     Standard = "MISRA-C"
	CERTC      Standard = "CERT-C"
	MISRACPP   Standard = "MISRA-CPP"
	CERTCPP    Standard = "CERT-CPP"
	AUTOSARCPP Standard = "AUTOSAR-CPP"
)

// Standards lists all supported rule packs in stable order.
func Standards() []Standard {
	return []Standard{MISRAC, CERTC, MISRACPP, CERTCPP, AUTOSARCPP}
}

// KnownStandard reports whether s names a supported rule pack.
func KnownStandard(s Standard) bool {
	for _, k := range Standards() {
		if k == s {
			return true
		}
	}
	return false
}

// Outcome is the terminal state of one verified case. PENDING is the
// initial state only; it never appears in a finished run.
type Outcome string

const (
	OutcomePending     Outcome = "PENDING"
	OutcomePass        Outcome = "PASS"
	OutcomeMissed      Outcome = "MISSED"
	OutcomeBuildFailed Outcome = "BUILD_FAILED"
	OutcomeToolError   Outcome = "TOOL_ERROR"
)

// ViolationCase is one catalog entry: a snippet that intentionally breaks
// exactly one named rule, plus where the detection is expected.
// Immutable once loaded.
type ViolationCase struct {
	ID         string   `json:"id" yaml:"id"`
	Standard   Standard `json:"standard" yaml:"standard"`
	RuleCode   string   `json:"rule_code" yaml:"rule"`
	SourcePath string   `json:"source_path" yaml:"source"`
	Function   string   `json:"function,omitempty" yaml:"function"`
	StartLine  int      `json:"start_line,omitempty" yaml:"start_line"`
	EndLine    int      `json:"end_line,omitempty" yaml:"end_line"`
	Severity   string   `json:"severity,omitempty" yaml:"severity"` // required|advisory|mandatory
}

// BuildArtifact is the result of compiling one translation unit.
// Owned by the build adapter; replaced wholesale on rebuild.
type BuildArtifact struct {
	SourcePath  string   `json:"source_path"`
	ObjectPath  string   `json:"object_path,omitempty"`
	Succeeded   bool     `json:"succeeded"`
	Diagnostics []string `json:"diagnostics,omitempty"`
}

// Finding is one reported violation instance from the external analyzer.
type Finding struct {
	RuleCode string `json:"rule_code"`
	File     string `json:"file"`
	Line     int    `json:"line"`
	Message  string `json:"message,omitempty"`
}

// VerificationResult reconciles one case against the analyzer output.
type VerificationResult struct {
	CaseID       string    `json:"case_id"`
	Standard     Standard  `json:"standard"`
	ExpectedRule string    `json:"expected_rule"`
	Matched      bool      `json:"matched"`
	Findings     []Finding `json:"findings,omitempty"`
	Outcome      Outcome   `json:"outcome"`
	Detail       string    `json:"detail,omitempty"`     // diagnostics excerpt for BUILD_FAILED / TOOL_ERROR
	Suppressed   bool      `json:"suppressed,omitempty"` // active suppression covers a non-PASS outcome
}

// Summary aggregates outcomes for one run.
type Summary struct {
	Pass        int `json:"pass"`
	Missed      int `json:"missed"`
	BuildFailed int `json:"build_failed"`
	ToolError   int `json:"tool_error"`
	Suppressed  int `json:"suppressed,omitempty"`
}

// Total returns the number of counted cases.
func (s Summary) Total() int {
	return s.Pass + s.Missed + s.BuildFailed + s.ToolError
}

// AllPass reports whether the run should exit zero: every case passed or
// every non-PASS case is suppressed.
func (s Summary) AllPass() bool {
	return s.Missed+s.BuildFailed+s.ToolError-s.Suppressed <= 0
}

// Summarize counts outcomes over a finished result set.
func Summarize(results []VerificationResult) Summary {
	var s Summary
	for _, r := range results {
		switch r.Outcome {
		case OutcomePass:
			s.Pass++
		case OutcomeMissed:
			s.Missed++
		case OutcomeBuildFailed:
			s.BuildFailed++
		case OutcomeToolError:
			s.ToolError++
		}
		if r.Suppressed && r.Outcome != OutcomePass {
			s.Suppressed++
		}
	}
	return s
}

// Run is one full harness execution over a catalog.
type Run struct {
	ID          string    `json:"id"`
	StartedAt   time.Time `json:"started_at"`
	CatalogPath string    `json:"catalog_path,omitempty"`
	Selector    string    `json:"selector,omitempty"`
	Version     string    `json:"version,omitempty"`

	Cases    []ViolationCase      `json:"cases"`
	Findings []Finding            `json:"findings,omitempty"`
	Results  []VerificationResult `json:"results"`
	Summary  Summary              `json:"summary"`
}
