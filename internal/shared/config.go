package shared

import (
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Database struct {
		Driver string `yaml:"driver"` // "sqlite" (default)
		DSN    string `yaml:"dsn"`    // "./rulebench.db"
	} `yaml:"database"`

	Catalog struct {
		Path string `yaml:"path"` // "./testdata/catalog.yaml"
	} `yaml:"catalog"`

	Toolchain struct {
		Compiler struct {
			Command  string   `yaml:"command"`   // "gcc"
			CFlags   []string `yaml:"c_flags"`   // flags for .c units
			CXXFlags []string `yaml:"cxx_flags"` // flags for .cpp units
		} `yaml:"compiler"`
		Analyzer struct {
			Command string   `yaml:"command"` // external analyzer binary
			Args    []string `yaml:"args"`    // extra args before the workspace path
			Output  string   `yaml:"output"`  // findings document filename inside the workspace
		} `yaml:"analyzer"`
	} `yaml:"toolchain"`

	Run struct {
		Jobs           int  `yaml:"jobs"`            // parallel builds
		TimeoutSeconds int  `yaml:"timeout_seconds"` // per build / analyzer call
		KeepArtifacts  bool `yaml:"keep_artifacts"`  // retain workspace after run
	} `yaml:"run"`

	Workspace struct {
		Dir string `yaml:"dir"` // ".rulebench"
	} `yaml:"workspace"`

	Reporting struct {
		OutDir string `yaml:"out_dir"` // "./reports"
	} `yaml:"reporting"`

	Logging struct {
		Format string `yaml:"format"` // "json"|"text"
		Level  string `yaml:"level"`  // "info"|"debug"|"warn"|"error"
	} `yaml:"logging"`
}

func DefaultConfig() Config {
	var c Config
	c.Database.Driver = "sqlite"
	c.Database.DSN = "./rulebench.db"
	c.Catalog.Path = "./testdata/catalog.yaml"
	c.Toolchain.Compiler.Command = "gcc"
	c.Toolchain.Compiler.CFlags = []string{"-c", "-std=c99", "-Wall"}
	c.Toolchain.Compiler.CXXFlags = []string{"-c", "-std=c++14", "-Wall"}
	c.Toolchain.Analyzer.Output = "findings.json"
	c.Run.Jobs = 4
	c.Run.TimeoutSeconds = 120
	c.Workspace.Dir = ".rulebench"
	c.Reporting.OutDir = "./reports"
	c.Logging.Format = "json"
	c.Logging.Level = "info"
	return c
}

func LoadConfig(path string) (Config, error) {
	c := DefaultConfig()
	if path != "" {
		if b, err := os.ReadFile(path); err == nil {
			_ = yaml.Unmarshal(b, &c)
		}
	}
	// Env overrides (simple, explicit)
	if v := os.Getenv("RULEBENCH_DB_DSN"); v != "" {
		c.Database.DSN = v
	}
	if v := os.Getenv("RULEBENCH_CATALOG"); v != "" {
		c.Catalog.Path = v
	}
	if v := os.Getenv("RULEBENCH_COMPILER"); v != "" {
		c.Toolchain.Compiler.Command = v
	}
	if v := os.Getenv("RULEBENCH_ANALYZER"); v != "" {
		c.Toolchain.Analyzer.Command = v
	}
	if v := os.Getenv("RULEBENCH_JOBS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			c.Run.Jobs = n
		}
	}
	if v := os.Getenv("RULEBENCH_TIMEOUT_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			c.Run.TimeoutSeconds = n
		}
	}
	if v := os.Getenv("RULEBENCH_OUT_DIR"); v != "" {
		c.Reporting.OutDir = v
	}
	if v := os.Getenv("RULEBENCH_LOG_FORMAT"); v != "" {
		c.Logging.Format = v
	}
	if v := os.Getenv("RULEBENCH_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
	return c, nil
}
