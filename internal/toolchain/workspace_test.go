package toolchain

import (
	"context"
	"errors"
	"os"
	"testing"
)

func TestWorkspace_CleanupRemovesRunDir(t *testing.T) {
	base := t.TempDir()
	ws, err := NewWorkspace(base, "run-test", false)
	if err != nil {
		t.Fatalf("new workspace: %v", err)
	}
	if _, err := os.Stat(ws.ObjectsDir()); err != nil {
		t.Fatalf("objects dir missing: %v", err)
	}
	if err := os.WriteFile(ws.Path("findings.json"), []byte(`{"runs":[]}`), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	if err := ws.Cleanup(); err != nil {
		t.Fatalf("cleanup: %v", err)
	}
	if _, err := os.Stat(ws.Root()); !os.IsNotExist(err) {
		t.Fatal("run dir should be gone after cleanup")
	}
}

func TestWorkspace_KeepRetainsArtifacts(t *testing.T) {
	base := t.TempDir()
	ws, err := NewWorkspace(base, "run-keep", true)
	if err != nil {
		t.Fatalf("new workspace: %v", err)
	}
	if err := ws.Cleanup(); err != nil {
		t.Fatalf("cleanup: %v", err)
	}
	if _, err := os.Stat(ws.Root()); err != nil {
		t.Fatal("kept workspace was removed")
	}
}

func TestWorkspace_AnalyzerLockSerializes(t *testing.T) {
	base := t.TempDir()
	ws, err := NewWorkspace(base, "run-lock", false)
	if err != nil {
		t.Fatalf("new workspace: %v", err)
	}
	defer ws.Cleanup()

	inFlight := 0
	max := 0
	done := make(chan error, 4)
	for i := 0; i < 4; i++ {
		go func() {
			done <- ws.WithAnalyzerLock(context.Background(), func() error {
				inFlight++
				if inFlight > max {
					max = inFlight
				}
				inFlight--
				return nil
			})
		}()
	}
	for i := 0; i < 4; i++ {
		if err := <-done; err != nil {
			t.Fatalf("lock: %v", err)
		}
	}
	if max != 1 {
		t.Fatalf("analyzer calls overlapped: max in flight = %d", max)
	}
}

func TestWorkspace_AnalyzerLockPropagatesError(t *testing.T) {
	base := t.TempDir()
	ws, err := NewWorkspace(base, "run-err", false)
	if err != nil {
		t.Fatalf("new workspace: %v", err)
	}
	defer ws.Cleanup()

	want := errors.New("analyzer crashed")
	got := ws.WithAnalyzerLock(context.Background(), func() error { return want })
	if !errors.Is(got, want) {
		t.Fatalf("want wrapped analyzer error, got %v", got)
	}
}
