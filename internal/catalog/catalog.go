package catalog

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/codewithboateng/rulebench/internal/model"
)

// ConfigError marks a malformed catalog. It aborts the run before any case
// executes and maps to exit code 2 in the CLI.
type ConfigError struct {
	msg string
}

func (e *ConfigError) Error() string { return e.msg }

func errf(format string, args ...any) error {
	return &ConfigError{msg: fmt.Sprintf(format, args...)}
}

type document struct {
	Cases []model.ViolationCase `yaml:"cases"`
}

// Load reads and validates a catalog file. The returned slice preserves file
// order; two loads of the same file yield the same sequence.
//
// Source paths in the file are relative to the catalog's directory and are
// resolved before being returned.
func Load(path string) ([]model.ViolationCase, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, errf("read catalog: %v", err)
	}
	var doc document
	if err := yaml.Unmarshal(b, &doc); err != nil {
		return nil, errf("parse catalog yaml: %v", err)
	}
	if len(doc.Cases) == 0 {
		return nil, errf("catalog %s declares no cases", path)
	}

	base := filepath.Dir(path)
	seen := make(map[string]struct{}, len(doc.Cases))
	out := make([]model.ViolationCase, 0, len(doc.Cases))
	for i, c := range doc.Cases {
		if c.ID == "" || c.RuleCode == "" || c.SourcePath == "" {
			return nil, errf("case #%d: id, rule and source are required", i+1)
		}
		if !model.KnownStandard(c.Standard) {
			return nil, errf("case %q: unknown standard %q", c.ID, c.Standard)
		}
		if _, dup := seen[c.ID]; dup {
			return nil, errf("duplicate case id %q", c.ID)
		}
		seen[c.ID] = struct{}{}

		if c.StartLine < 0 || c.EndLine < 0 || (c.EndLine > 0 && c.EndLine < c.StartLine) {
			return nil, errf("case %q: invalid line range %d..%d", c.ID, c.StartLine, c.EndLine)
		}

		c.SourcePath = filepath.Join(base, filepath.FromSlash(c.SourcePath))
		if st, err := os.Stat(c.SourcePath); err != nil || st.IsDir() {
			return nil, errf("case %q: source %s not found", c.ID, c.SourcePath)
		}
		out = append(out, c)
	}
	return out, nil
}

// Filter keeps the cases matching a rule selector: a standard name or "all".
// An unknown selector is a ConfigError so a typo never silently runs zero
// cases.
func Filter(cases []model.ViolationCase, selector string) ([]model.ViolationCase, error) {
	sel := strings.TrimSpace(selector)
	if sel == "" || strings.EqualFold(sel, "all") {
		return cases, nil
	}
	std := model.Standard(strings.ToUpper(sel))
	if !model.KnownStandard(std) {
		return nil, errf("unknown rule selector %q (want one of %v or all)", selector, model.Standards())
	}
	var out []model.ViolationCase
	for _, c := range cases {
		if c.Standard == std {
			out = append(out, c)
		}
	}
	return out, nil
}

// SourceUnits returns the distinct source paths referenced by cases, in
// first-seen order. Each path is one translation unit for the build adapter.
func SourceUnits(cases []model.ViolationCase) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, c := range cases {
		if _, ok := seen[c.SourcePath]; ok {
			continue
		}
		seen[c.SourcePath] = struct{}{}
		out = append(out, c.SourcePath)
	}
	return out
}
