package builder

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/codewithboateng/rulebench/internal/model"
	"github.com/codewithboateng/rulebench/internal/toolchain"
)

type Options struct {
	Jobs    int           // bounded worker pool size; <=0 means 4
	Timeout time.Duration // per translation unit; <=0 means no limit
}

// BuildAll compiles every translation unit through a bounded worker pool.
// Builds are independent per source file, so they may run in parallel; each
// failure stays isolated in its own BuildArtifact. The returned map is keyed
// by source path and holds exactly one artifact per unit.
func BuildAll(ctx context.Context, comp toolchain.Compiler, units []string, outDir string, opts Options) map[string]model.BuildArtifact {
	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = 4
	}

	var mu sync.Mutex
	artifacts := make(map[string]model.BuildArtifact, len(units))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(jobs)
	for _, unit := range units {
		unit := unit
		g.Go(func() error {
			bctx := gctx
			if opts.Timeout > 0 {
				var cancel context.CancelFunc
				bctx, cancel = context.WithTimeout(gctx, opts.Timeout)
				defer cancel()
			}
			art := comp.Compile(bctx, unit, outDir)
			if !art.Succeeded {
				slog.Warn("build failed", "source", unit, "diagnostics", len(art.Diagnostics))
			}
			mu.Lock()
			artifacts[unit] = art
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait() // workers never return errors; failures live in artifacts

	return artifacts
}
