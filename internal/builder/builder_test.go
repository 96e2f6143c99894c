package builder

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/codewithboateng/rulebench/internal/model"
)

// fakeCompiler fails the units listed in failing and records call counts.
type fakeCompiler struct {
	mu      sync.Mutex
	calls   map[string]int
	failing map[string]bool
	delay   time.Duration
}

func (f *fakeCompiler) Compile(ctx context.Context, sourcePath, outDir string) model.BuildArtifact {
	f.mu.Lock()
	if f.calls == nil {
		f.calls = map[string]int{}
	}
	f.calls[sourcePath]++
	f.mu.Unlock()

	if f.delay > 0 {
		select {
		case <-time.After(f.delay):
		case <-ctx.Done():
			return model.BuildArtifact{SourcePath: sourcePath, Diagnostics: []string{"compile timed out"}}
		}
	}
	if f.failing[sourcePath] {
		return model.BuildArtifact{
			SourcePath:  sourcePath,
			Diagnostics: []string{sourcePath + ": error: bad syntax"},
		}
	}
	return model.BuildArtifact{SourcePath: sourcePath, Succeeded: true, ObjectPath: sourcePath + ".o"}
}

func TestBuildAll_OneArtifactPerUnit(t *testing.T) {
	comp := &fakeCompiler{}
	units := []string{"a.c", "b.c", "c.cpp"}

	arts := BuildAll(context.Background(), comp, units, t.TempDir(), Options{Jobs: 2})
	if len(arts) != 3 {
		t.Fatalf("want 3 artifacts, got %d", len(arts))
	}
	for _, u := range units {
		if comp.calls[u] != 1 {
			t.Fatalf("unit %s compiled %d times", u, comp.calls[u])
		}
		if !arts[u].Succeeded {
			t.Fatalf("unit %s should have built", u)
		}
	}
}

func TestBuildAll_FailureIsIsolated(t *testing.T) {
	comp := &fakeCompiler{failing: map[string]bool{"b.c": true}}
	units := []string{"a.c", "b.c", "c.cpp"}

	arts := BuildAll(context.Background(), comp, units, t.TempDir(), Options{Jobs: 4})

	if !arts["a.c"].Succeeded || !arts["c.cpp"].Succeeded {
		t.Fatal("healthy units must not be affected by a failing one")
	}
	bad := arts["b.c"]
	if bad.Succeeded {
		t.Fatal("failing unit reported success")
	}
	if len(bad.Diagnostics) == 0 || !strings.Contains(bad.Diagnostics[0], "bad syntax") {
		t.Fatalf("diagnostics not captured: %v", bad.Diagnostics)
	}
}

func TestBuildAll_TimeoutForcesFailure(t *testing.T) {
	comp := &fakeCompiler{delay: 200 * time.Millisecond}

	arts := BuildAll(context.Background(), comp, []string{"slow.c"}, t.TempDir(), Options{
		Jobs:    1,
		Timeout: 20 * time.Millisecond,
	})
	a := arts["slow.c"]
	if a.Succeeded {
		t.Fatal("timed-out build reported success")
	}
	if len(a.Diagnostics) == 0 || !strings.Contains(a.Diagnostics[0], "timed out") {
		t.Fatalf("want timeout diagnostic, got %v", a.Diagnostics)
	}
}

func TestBuildAll_DefaultJobs(t *testing.T) {
	comp := &fakeCompiler{}
	arts := BuildAll(context.Background(), comp, []string{"a.c"}, t.TempDir(), Options{})
	if len(arts) != 1 {
		t.Fatalf("want 1 artifact, got %d", len(arts))
	}
}
