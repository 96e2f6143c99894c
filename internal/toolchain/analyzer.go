package toolchain

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/xeipuuv/gojsonschema"

	"github.com/codewithboateng/rulebench/internal/model"
)

// Analyzer is the opaque external static-analysis capability. An error means
// the tool itself failed (crash, timeout, malformed output); affected cases
// resolve to TOOL_ERROR.
type Analyzer interface {
	Analyze(ctx context.Context, workspaceDir, selector string) ([]model.Finding, error)
}

// ExecAnalyzer invokes a real analyzer binary. The tool is expected to write
// a findings document (see findingsSchema) at <workspaceDir>/<Output>.
type ExecAnalyzer struct {
	Command string
	Args    []string // tool-specific args, appended before the workspace path
	Output  string   // findings document filename, default findings.json
}

func (a *ExecAnalyzer) Analyze(ctx context.Context, workspaceDir, selector string) ([]model.Finding, error) {
	if a.Command == "" {
		return nil, errors.New("analyzer command not configured")
	}
	outName := a.Output
	if outName == "" {
		outName = "findings.json"
	}

	args := append(append([]string{}, a.Args...), "--rules", selector, workspaceDir)
	cmd := exec.CommandContext(ctx, a.Command, args...)
	out, err := cmd.CombinedOutput()
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, fmt.Errorf("analyzer timed out")
		}
		return nil, fmt.Errorf("run analyzer: %w: %s", err, string(out))
	}

	b, err := os.ReadFile(filepath.Join(workspaceDir, outName))
	if err != nil {
		return nil, fmt.Errorf("read findings document: %w", err)
	}
	return ParseFindings(b)
}

// findingsSchema is the contract for the analyzer output: a SARIF-style
// subset with runs[].results[] carrying ruleId, message and locations.
const findingsSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["runs"],
  "properties": {
    "runs": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["results"],
        "properties": {
          "results": {
            "type": "array",
            "items": {
              "type": "object",
              "required": ["ruleId"],
              "properties": {
                "ruleId": {"type": "string", "minLength": 1},
                "message": {
                  "type": "object",
                  "properties": {"text": {"type": "string"}}
                },
                "locations": {"type": "array"}
              }
            }
          }
        }
      }
    }
  }
}`

type findingsDoc struct {
	Runs []struct {
		Results []struct {
			RuleID  string `json:"ruleId"`
			Message struct {
				Text string `json:"text"`
			} `json:"message"`
			Locations []struct {
				PhysicalLocation struct {
					ArtifactLocation struct {
						URI string `json:"uri"`
					} `json:"artifactLocation"`
					Region struct {
						StartLine int `json:"startLine"`
					} `json:"region"`
				} `json:"physicalLocation"`
			} `json:"locations"`
		} `json:"results"`
	} `json:"runs"`
}

// ParseFindings validates a findings document against the schema and
// flattens it into Findings. A document that does not conform is a tool
// error, not a silent empty result.
func ParseFindings(b []byte) ([]model.Finding, error) {
	res, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(findingsSchema),
		gojsonschema.NewBytesLoader(b),
	)
	if err != nil {
		return nil, fmt.Errorf("validate findings document: %w", err)
	}
	if !res.Valid() {
		return nil, fmt.Errorf("malformed findings document: %v", res.Errors())
	}

	var doc findingsDoc
	if err := json.Unmarshal(b, &doc); err != nil {
		return nil, fmt.Errorf("decode findings document: %w", err)
	}

	var out []model.Finding
	for _, run := range doc.Runs {
		for _, r := range run.Results {
			f := model.Finding{
				RuleCode: r.RuleID,
				Message:  r.Message.Text,
			}
			if len(r.Locations) > 0 {
				loc := r.Locations[0].PhysicalLocation
				f.File = filepath.ToSlash(loc.ArtifactLocation.URI)
				f.Line = loc.Region.StartLine
			}
			out = append(out, f)
		}
	}
	return out, nil
}
