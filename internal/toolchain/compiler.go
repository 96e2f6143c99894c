package toolchain

import (
	"context"
	"errors"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/codewithboateng/rulebench/internal/model"
)

// Compiler prepares one translation unit for analysis. A failed compile is
// data (Succeeded=false plus diagnostics), never an error: one broken unit
// must not abort the run.
type Compiler interface {
	Compile(ctx context.Context, sourcePath, outDir string) model.BuildArtifact
}

// ExecCompiler shells out to a real toolchain driver (gcc, clang, ...).
type ExecCompiler struct {
	Command  string
	CFlags   []string // used for .c units
	CXXFlags []string // used for everything else
}

func (c *ExecCompiler) Compile(ctx context.Context, sourcePath, outDir string) model.BuildArtifact {
	art := model.BuildArtifact{SourcePath: sourcePath}

	base := filepath.Base(sourcePath)
	obj := filepath.Join(outDir, strings.TrimSuffix(base, filepath.Ext(base))+".o")

	flags := c.CXXFlags
	if strings.EqualFold(filepath.Ext(base), ".c") {
		flags = c.CFlags
	}
	args := append(append([]string{}, flags...), "-o", obj, sourcePath)

	cmd := exec.CommandContext(ctx, c.Command, args...)
	out, err := cmd.CombinedOutput()
	for _, line := range strings.Split(strings.TrimSpace(string(out)), "\n") {
		if line != "" {
			art.Diagnostics = append(art.Diagnostics, line)
		}
	}
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			art.Diagnostics = append(art.Diagnostics, "compile timed out")
		} else {
			art.Diagnostics = append(art.Diagnostics, err.Error())
		}
		return art
	}
	art.ObjectPath = obj
	art.Succeeded = true
	return art
}
