package toolchain

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/gofrs/flock"
)

// Workspace is the run-scoped artifact directory. It is exclusively owned by
// the build adapter for the duration of a run and removed on Cleanup unless
// retention was requested.
type Workspace struct {
	root string
	keep bool

	mu   sync.Mutex   // serializes analyzer calls within this process
	lock *flock.Flock // serializes analyzer calls across processes
}

// NewWorkspace creates <baseDir>/<runID>/objects and prepares the analyzer
// lock file at <baseDir>/analyzer.lock (shared by all runs on the same
// workspace base, so two harness processes never analyze concurrently).
func NewWorkspace(baseDir, runID string, keep bool) (*Workspace, error) {
	root := filepath.Join(baseDir, runID)
	if err := os.MkdirAll(filepath.Join(root, "objects"), 0o755); err != nil {
		return nil, fmt.Errorf("create workspace: %w", err)
	}
	return &Workspace{
		root: root,
		keep: keep,
		lock: flock.New(filepath.Join(baseDir, "analyzer.lock")),
	}, nil
}

func (w *Workspace) Root() string       { return w.root }
func (w *Workspace) ObjectsDir() string { return filepath.Join(w.root, "objects") }

// Path resolves a file name inside the workspace root.
func (w *Workspace) Path(name string) string { return filepath.Join(w.root, name) }

// WithAnalyzerLock runs fn while holding both the in-process mutex and the
// cross-process file lock. Lock acquisition respects ctx; queued callers
// block until the current analyzer call finishes.
func (w *Workspace) WithAnalyzerLock(ctx context.Context, fn func() error) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	ok, err := w.lock.TryLockContext(ctx, 100*time.Millisecond)
	if err != nil {
		return fmt.Errorf("acquire analyzer lock: %w", err)
	}
	if !ok {
		return fmt.Errorf("acquire analyzer lock: not acquired")
	}
	defer func() { _ = w.lock.Unlock() }()

	return fn()
}

// Cleanup removes the run directory. Call it via defer so partial artifacts
// are discarded on every exit path.
func (w *Workspace) Cleanup() error {
	if w.keep {
		return nil
	}
	return os.RemoveAll(w.root)
}
