package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/codewithboateng/rulebench/internal/api"
	"github.com/codewithboateng/rulebench/internal/builder"
	"github.com/codewithboateng/rulebench/internal/catalog"
	"github.com/codewithboateng/rulebench/internal/model"
	"github.com/codewithboateng/rulebench/internal/reporting"
	"github.com/codewithboateng/rulebench/internal/security"
	"github.com/codewithboateng/rulebench/internal/shared"
	"github.com/codewithboateng/rulebench/internal/storage"
	"github.com/codewithboateng/rulebench/internal/toolchain"
	"github.com/codewithboateng/rulebench/internal/verify"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}
	switch os.Args[1] {
	case "run":
		os.Exit(runCmd(os.Args[2:]))
	case "report":
		os.Exit(reportCmd(os.Args[2:]))
	case "diff":
		os.Exit(diffCmd(os.Args[2:]))
	case "serve":
		os.Exit(serveCmd(os.Args[2:]))
	case "user-add":
		os.Exit(userAddCmd(os.Args[2:]))
	case "version":
		fmt.Println("rulebench", model.Version)
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, `rulebench – rule-pack conformance harness

Usage:
  rulebench run      --catalog <path> --rule-selector <standard|all> --timeout <seconds>
                     [--config ./configs/rulebench.yaml] [--db ./rulebench.db] [--out <dir>]
                     [--jobs <n>] [--keep-artifacts]
  rulebench report   --run <run-id> [--db ./rulebench.db] [--out <dir>] [--config <yaml>]
  rulebench diff     --base <run-id> --head <run-id> [--db ./rulebench.db] [--out <dir>]
  rulebench serve    [--addr :8080] [--db ./rulebench.db] [--config <yaml>]
  rulebench user-add --username <u> --role <admin|viewer> [--db ./rulebench.db]
                     (password read from RULEBENCH_PASSWORD)
  rulebench version

Exit codes for run: 0 all cases pass, 1 any case failed, 2 catalog error.
`)
}

func runCmd(args []string) int {
	fs := flag.NewFlagSet("run", flag.ExitOnError)
	configPath := fs.String("config", "", "Path to YAML config (optional)")
	catalogPath := fs.String("catalog", "", "Path to catalog YAML")
	selector := fs.String("rule-selector", "all", "Standard to verify (MISRA-C, CERT-C, MISRA-CPP, CERT-CPP, AUTOSAR-CPP) or all")
	timeoutSec := fs.Int("timeout", 0, "Per build / analyzer timeout in seconds")
	dbPath := fs.String("db", "", "SQLite database path")
	outDir := fs.String("out", "", "Output directory for reports")
	jobs := fs.Int("jobs", 0, "Parallel build workers")
	keep := fs.Bool("keep-artifacts", false, "Retain the workspace after the run")
	_ = fs.Parse(args)

	cfg, _ := shared.LoadConfig(*configPath)
	shared.InitLogger(cfg.Logging.Format, cfg.Logging.Level)

	// precedence: flags > config > defaults
	if *catalogPath == "" {
		*catalogPath = cfg.Catalog.Path
	}
	if *dbPath == "" {
		*dbPath = cfg.Database.DSN
	}
	if *outDir == "" {
		*outDir = cfg.Reporting.OutDir
	}
	if *jobs == 0 {
		*jobs = cfg.Run.Jobs
	}
	if *timeoutSec == 0 {
		*timeoutSec = cfg.Run.TimeoutSeconds
	}
	keepArtifacts := *keep || cfg.Run.KeepArtifacts
	timeout := time.Duration(*timeoutSec) * time.Second

	cases, err := catalog.Load(*catalogPath)
	if err != nil {
		return configExit(err)
	}
	cases, err = catalog.Filter(cases, *selector)
	if err != nil {
		return configExit(err)
	}
	if len(cases) == 0 {
		fmt.Fprintf(os.Stderr, "run: selector %q matches no cases\n", *selector)
		return 2
	}

	run := model.Run{
		ID:          "run-" + strings.Split(uuid.NewString(), "-")[0],
		StartedAt:   time.Now().UTC(),
		CatalogPath: *catalogPath,
		Selector:    *selector,
		Version:     model.Version,
		Cases:       cases,
	}

	ws, err := toolchain.NewWorkspace(cfg.Workspace.Dir, run.ID, keepArtifacts)
	if err != nil {
		slog.Error("workspace error", "err", err)
		return 1
	}
	defer func() {
		if err := ws.Cleanup(); err != nil {
			slog.Warn("workspace cleanup failed", "err", err)
		}
	}()

	ctx := context.Background()

	comp := &toolchain.ExecCompiler{
		Command:  cfg.Toolchain.Compiler.Command,
		CFlags:   cfg.Toolchain.Compiler.CFlags,
		CXXFlags: cfg.Toolchain.Compiler.CXXFlags,
	}
	units := catalog.SourceUnits(cases)
	slog.Info("building", "units", len(units), "jobs", *jobs)
	artifacts := builder.BuildAll(ctx, comp, units, ws.ObjectsDir(), builder.Options{
		Jobs:    *jobs,
		Timeout: timeout,
	})

	anyBuilt := false
	for _, a := range artifacts {
		if a.Succeeded {
			anyBuilt = true
			break
		}
	}

	var (
		findings   []model.Finding
		analyzeErr error
	)
	if anyBuilt {
		an := &toolchain.ExecAnalyzer{
			Command: cfg.Toolchain.Analyzer.Command,
			Args:    cfg.Toolchain.Analyzer.Args,
			Output:  cfg.Toolchain.Analyzer.Output,
		}
		slog.Info("analyzing", "workspace", ws.Root(), "selector", *selector)
		findings, analyzeErr = verify.Analyze(ctx, ws, an, *selector, timeout)
		if analyzeErr != nil {
			slog.Error("analyzer failed", "err", analyzeErr)
		}
	}

	results := verify.Reconcile(cases, artifacts, findings, analyzeErr)

	// Suppressions + persistence share the DB; a broken DB downgrades to a
	// report-only run rather than losing the results.
	var db *storage.DB
	if d, err := storage.OpenSQLite(*dbPath); err != nil {
		slog.Error("db open error", "err", err)
	} else if err := d.CreateSchema(); err != nil {
		slog.Error("db schema error", "err", err)
		d.Close()
	} else {
		db = d
		defer db.Close()
		if sups, err := db.ListSuppressions(true); err == nil {
			var n int
			results, n = verify.ApplySuppressions(results, sups)
			if n > 0 {
				slog.Info("suppressions applied", "count", n)
			}
		}
	}

	run.Findings = findings
	run.Results = results
	run.Summary = model.Summarize(results)

	if db != nil {
		if err := db.SaveRun(&run); err != nil {
			slog.Error("db save run error", "err", err)
		}
	}

	if err := os.MkdirAll(*outDir, 0o755); err == nil {
		if p, err := reporting.WriteJSON(run.ID, *outDir, &run); err == nil {
			slog.Info("json report written", "path", p)
		}
		if p, err := reporting.WriteHTML(run.ID, *outDir, &run); err == nil {
			slog.Info("html report written", "path", p)
		}
	}

	if err := reporting.WriteText(os.Stdout, &run); err != nil {
		slog.Error("report write error", "err", err)
		return 1
	}
	if run.Summary.AllPass() {
		return 0
	}
	return 1
}

func reportCmd(args []string) int {
	fs := flag.NewFlagSet("report", flag.ExitOnError)
	configPath := fs.String("config", "", "Path to YAML config (optional)")
	runID := fs.String("run", "", "Run ID")
	dbPath := fs.String("db", "", "SQLite database path")
	outDir := fs.String("out", "", "Output directory")
	_ = fs.Parse(args)

	cfg, _ := shared.LoadConfig(*configPath)
	shared.InitLogger(cfg.Logging.Format, cfg.Logging.Level)

	if *dbPath == "" {
		*dbPath = cfg.Database.DSN
	}
	if *outDir == "" {
		*outDir = cfg.Reporting.OutDir
	}
	if *runID == "" {
		fmt.Fprintln(os.Stderr, "report: --run is required")
		return 2
	}

	db, err := storage.OpenSQLite(*dbPath)
	if err != nil {
		slog.Error("db open error", "err", err)
		return 1
	}
	defer db.Close()

	run, err := db.LoadRun(*runID)
	if err != nil {
		slog.Error("load run error", "err", err)
		return 1
	}
	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		slog.Error("cannot create out dir", "err", err)
		return 1
	}
	jsonPath, _ := reporting.WriteJSON(run.ID, *outDir, &run)
	htmlPath, _ := reporting.WriteHTML(run.ID, *outDir, &run)
	fmt.Fprintf(os.Stderr, "Report OK\n  Run: %s\n  JSON: %s\n  HTML: %s\n", run.ID, jsonPath, htmlPath)
	if err := reporting.WriteText(os.Stdout, &run); err != nil {
		return 1
	}
	return 0
}

func diffCmd(args []string) int {
	fs := flag.NewFlagSet("diff", flag.ExitOnError)
	configPath := fs.String("config", "", "Path to YAML config (optional)")
	base := fs.String("base", "", "Base run ID")
	head := fs.String("head", "", "Head run ID")
	dbPath := fs.String("db", "", "SQLite database path")
	outDir := fs.String("out", "", "Output directory")
	_ = fs.Parse(args)

	cfg, _ := shared.LoadConfig(*configPath)
	shared.InitLogger(cfg.Logging.Format, cfg.Logging.Level)

	if *dbPath == "" {
		*dbPath = cfg.Database.DSN
	}
	if *outDir == "" {
		*outDir = cfg.Reporting.OutDir
	}
	if *base == "" || *head == "" {
		fmt.Fprintln(os.Stderr, "diff: --base and --head are required")
		return 2
	}

	db, err := storage.OpenSQLite(*dbPath)
	if err != nil {
		slog.Error("db open error", "err", err)
		return 1
	}
	defer db.Close()

	br, err := db.LoadRun(*base)
	if err != nil {
		slog.Error("load base run error", "err", err)
		return 1
	}
	hr, err := db.LoadRun(*head)
	if err != nil {
		slog.Error("load head run error", "err", err)
		return 1
	}
	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		slog.Error("cannot create out dir", "err", err)
		return 1
	}
	path, err := reporting.WriteDiffJSON(*base, *head, *outDir, &br, &hr)
	if err != nil {
		slog.Error("diff write error", "err", err)
		return 1
	}
	d := reporting.BuildDiff(&br, &hr)
	fmt.Printf("Diff OK\n  %s\n  regressions=%d fixes=%d changed=%d\n",
		path, len(d.Regressions), len(d.Fixes), len(d.Changed))
	return 0
}

func serveCmd(args []string) int {
	fs := flag.NewFlagSet("serve", flag.ExitOnError)
	configPath := fs.String("config", "", "Path to YAML config (optional)")
	addr := fs.String("addr", ":8080", "Listen address")
	dbPath := fs.String("db", "", "SQLite database path")
	_ = fs.Parse(args)

	cfg, _ := shared.LoadConfig(*configPath)
	logger := shared.InitLogger(cfg.Logging.Format, cfg.Logging.Level)

	if *dbPath == "" {
		*dbPath = cfg.Database.DSN
	}
	db, err := storage.OpenSQLite(*dbPath)
	if err != nil {
		slog.Error("db open error", "err", err)
		return 1
	}
	defer db.Close()
	if err := db.CreateSchema(); err != nil {
		slog.Error("db schema error", "err", err)
		return 1
	}

	srv := &api.Server{
		DB:              db,
		UserStore:       db,
		Logger:          logger,
		SessionDuration: 12 * time.Hour,
	}
	slog.Info("serving", "addr", *addr, "db", *dbPath)
	if err := http.ListenAndServe(*addr, srv.Routes()); err != nil {
		slog.Error("server error", "err", err)
		return 1
	}
	return 0
}

func userAddCmd(args []string) int {
	fs := flag.NewFlagSet("user-add", flag.ExitOnError)
	configPath := fs.String("config", "", "Path to YAML config (optional)")
	username := fs.String("username", "", "Username")
	role := fs.String("role", "viewer", "Role (admin|viewer)")
	dbPath := fs.String("db", "", "SQLite database path")
	_ = fs.Parse(args)

	cfg, _ := shared.LoadConfig(*configPath)
	shared.InitLogger(cfg.Logging.Format, cfg.Logging.Level)

	if *dbPath == "" {
		*dbPath = cfg.Database.DSN
	}
	if *username == "" {
		fmt.Fprintln(os.Stderr, "user-add: --username is required")
		return 2
	}
	if *role != "admin" && *role != "viewer" {
		fmt.Fprintln(os.Stderr, "user-add: --role must be admin or viewer")
		return 2
	}
	pw := os.Getenv("RULEBENCH_PASSWORD")
	if pw == "" {
		fmt.Fprintln(os.Stderr, "user-add: set RULEBENCH_PASSWORD")
		return 2
	}

	db, err := storage.OpenSQLite(*dbPath)
	if err != nil {
		slog.Error("db open error", "err", err)
		return 1
	}
	defer db.Close()
	if err := db.CreateSchema(); err != nil {
		slog.Error("db schema error", "err", err)
		return 1
	}

	hash, err := security.HashPassword(pw)
	if err != nil {
		slog.Error("hash error", "err", err)
		return 1
	}
	id, err := db.CreateUser(*username, hash, *role)
	if err != nil {
		slog.Error("create user error", "err", err)
		return 1
	}
	fmt.Printf("User created: %s (id=%d, role=%s)\n", *username, id, *role)
	return 0
}

func configExit(err error) int {
	var ce *catalog.ConfigError
	if errors.As(err, &ce) {
		fmt.Fprintln(os.Stderr, "catalog error:", err)
		return 2
	}
	fmt.Fprintln(os.Stderr, err)
	return 2
}
