package rulepacks

import (
	"sort"
	"strings"

	"github.com/codewithboateng/rulebench/internal/model"
)

// RuleMeta describes one rule of a coding-standard pack. The harness never
// implements the rule; the metadata annotates reports and feeds the API.
type RuleMeta struct {
	Code     string         `json:"code"`
	Standard model.Standard `json:"standard"`
	Title    string         `json:"title"`
	Severity string         `json:"severity"` // required|advisory|mandatory per the standard
	Docs     string         `json:"docs,omitempty"`
}

var (
	registry  []RuleMeta
	ruleIndex = map[string]int{} // UPPER(code) -> index
)

func Register(m RuleMeta) {
	registry = append(registry, m)
	ruleIndex[strings.ToUpper(strings.TrimSpace(m.Code))] = len(registry) - 1
}

// List returns all registered rules sorted by standard then code.
func List() []RuleMeta {
	out := make([]RuleMeta, len(registry))
	copy(out, registry)
	sort.Slice(out, func(i, j int) bool {
		if out[i].Standard == out[j].Standard {
			return out[i].Code < out[j].Code
		}
		return out[i].Standard < out[j].Standard
	})
	return out
}

// ByStandard returns the registered rules of one pack, sorted by code.
func ByStandard(std model.Standard) []RuleMeta {
	var out []RuleMeta
	for _, m := range registry {
		if m.Standard == std {
			out = append(out, m)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out
}

// Get returns a rule's metadata by code if registered.
func Get(code string) (RuleMeta, bool) {
	idx, ok := ruleIndex[strings.ToUpper(strings.TrimSpace(code))]
	if !ok || idx < 0 || idx >= len(registry) {
		return RuleMeta{}, false
	}
	return registry[idx], true
}
