package catalog

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/codewithboateng/rulebench/internal/model"
)

func writeCatalog(t *testing.T, dir, body string, sources ...string) string {
	t.Helper()
	for _, s := range sources {
		p := filepath.Join(dir, s)
		if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
			t.Fatalf("mkdir: %v", err)
		}
		if err := os.WriteFile(p, []byte("int x;\n"), 0o644); err != nil {
			t.Fatalf("write source: %v", err)
		}
	}
	path := filepath.Join(dir, "catalog.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write catalog: %v", err)
	}
	return path
}

const validCatalog = `cases:
  - id: misra-c-21.3
    standard: MISRA-C
    rule: MISRA-C-21.3
    source: src/misra_violations.c
    function: misra_rule_21_3
    start_line: 90
    end_line: 110
  - id: cert-c-arr30
    standard: CERT-C
    rule: CERT-C-ARR30-C
    source: src/cert_c_violations.c
`

func TestLoad_OrderIsStable(t *testing.T) {
	dir := t.TempDir()
	path := writeCatalog(t, dir, validCatalog, "src/misra_violations.c", "src/cert_c_violations.c")

	first, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(first) != 2 {
		t.Fatalf("want 2 cases, got %d", len(first))
	}
	if first[0].ID != "misra-c-21.3" || first[1].ID != "cert-c-arr30" {
		t.Fatalf("file order not preserved: %v, %v", first[0].ID, first[1].ID)
	}

	second, err := Load(path)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("case %d differs between loads", i)
		}
	}
}

func TestLoad_ResolvesSourceRelativeToCatalog(t *testing.T) {
	dir := t.TempDir()
	path := writeCatalog(t, dir, validCatalog, "src/misra_violations.c", "src/cert_c_violations.c")

	cases, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	want := filepath.Join(dir, "src", "misra_violations.c")
	if cases[0].SourcePath != want {
		t.Fatalf("source path = %q, want %q", cases[0].SourcePath, want)
	}
}

func TestLoad_DuplicateIDIsConfigError(t *testing.T) {
	dir := t.TempDir()
	body := `cases:
  - id: dup-1
    standard: MISRA-C
    rule: MISRA-C-2.2
    source: a.c
  - id: dup-1
    standard: CERT-C
    rule: CERT-C-EXP33-C
    source: b.c
`
	path := writeCatalog(t, dir, body, "a.c", "b.c")

	_, err := Load(path)
	if err == nil {
		t.Fatal("want error for duplicate id")
	}
	var ce *ConfigError
	if !errors.As(err, &ce) {
		t.Fatalf("want ConfigError, got %T: %v", err, err)
	}
}

func TestLoad_MissingSourceIsConfigError(t *testing.T) {
	dir := t.TempDir()
	body := `cases:
  - id: ghost
    standard: MISRA-C
    rule: MISRA-C-2.2
    source: not_there.c
`
	path := writeCatalog(t, dir, body)

	_, err := Load(path)
	var ce *ConfigError
	if !errors.As(err, &ce) {
		t.Fatalf("want ConfigError for missing source, got %v", err)
	}
}

func TestLoad_UnknownStandardIsConfigError(t *testing.T) {
	dir := t.TempDir()
	body := `cases:
  - id: weird
    standard: MISRA-FORTRAN
    rule: X-1
    source: a.c
`
	path := writeCatalog(t, dir, body, "a.c")

	_, err := Load(path)
	var ce *ConfigError
	if !errors.As(err, &ce) {
		t.Fatalf("want ConfigError for unknown standard, got %v", err)
	}
}

func TestFilter(t *testing.T) {
	cases := []model.ViolationCase{
		{ID: "a", Standard: model.MISRAC},
		{ID: "b", Standard: model.CERTC},
		{ID: "c", Standard: model.MISRAC},
	}

	all, err := Filter(cases, "all")
	if err != nil || len(all) != 3 {
		t.Fatalf("all: %v (%d)", err, len(all))
	}

	misra, err := Filter(cases, "misra-c")
	if err != nil {
		t.Fatalf("filter: %v", err)
	}
	if len(misra) != 2 || misra[0].ID != "a" || misra[1].ID != "c" {
		t.Fatalf("misra filter wrong: %+v", misra)
	}

	if _, err := Filter(cases, "misra-basic"); err == nil {
		t.Fatal("want error for unknown selector")
	}
}

func TestSourceUnits_DedupesInOrder(t *testing.T) {
	cases := []model.ViolationCase{
		{ID: "a", SourcePath: "x.c"},
		{ID: "b", SourcePath: "y.c"},
		{ID: "c", SourcePath: "x.c"},
	}
	units := SourceUnits(cases)
	if len(units) != 2 || units[0] != "x.c" || units[1] != "y.c" {
		t.Fatalf("units = %v", units)
	}
}
