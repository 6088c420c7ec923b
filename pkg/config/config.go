// Package config holds the benchmark harness's configuration: file paths
// and run parameters for the host program that drives the hnsw package.
// None of this is read by the core index — per the core's contract it
// takes only a dimension and a contiguous base buffer — so everything
// here is in service of cmd/annbench.
package config

import (
	"fmt"
	"os"
	"strconv"
)

// HarnessConfig holds the file paths and run parameters for a single
// build-then-query benchmark invocation.
type HarnessConfig struct {
	BasePath        string // base vectors, whitespace-separated floats
	QueryPath       string // query vectors, same format
	GroundTruthPath string // optional; if empty, recall is computed via brute force

	Workers int // build parallelism; 0 means runtime.GOMAXPROCS(0)
	QPS     int // query issue rate for the benchmark loop; 0 means unthrottled

	// M, EfConstruction, EfSearch, and K override the hnsw package's
	// compile-time hyperparameter defaults for this run; 0 keeps the
	// package default. Exposed here so they can be set from a flag or an
	// environment variable without the harness reaching into pkg/hnsw
	// internals.
	M              int
	EfConstruction int
	EfSearch       int
	K              int
}

// Default returns the harness defaults: unthrottled, auto-parallel, ground
// truth computed on the fly rather than loaded from a file, and every hnsw
// hyperparameter left at the package default.
func Default() *HarnessConfig {
	return &HarnessConfig{
		Workers: 0,
		QPS:     0,
	}
}

// LoadFromEnv overlays ANNBENCH_* environment variables onto the
// defaults, mirroring the harness's --flag names for callers that prefer
// environment-based configuration (e.g. containerized benchmark runs).
func LoadFromEnv() *HarnessConfig {
	cfg := Default()

	if v := os.Getenv("ANNBENCH_BASE"); v != "" {
		cfg.BasePath = v
	}
	if v := os.Getenv("ANNBENCH_QUERY"); v != "" {
		cfg.QueryPath = v
	}
	if v := os.Getenv("ANNBENCH_GROUND_TRUTH"); v != "" {
		cfg.GroundTruthPath = v
	}
	if v := os.Getenv("ANNBENCH_WORKERS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Workers = n
		}
	}
	if v := os.Getenv("ANNBENCH_QPS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.QPS = n
		}
	}
	if v := os.Getenv("ANNBENCH_M"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.M = n
		}
	}
	if v := os.Getenv("ANNBENCH_EF_CONSTRUCTION"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.EfConstruction = n
		}
	}
	if v := os.Getenv("ANNBENCH_EF_SEARCH"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.EfSearch = n
		}
	}
	if v := os.Getenv("ANNBENCH_K"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.K = n
		}
	}

	return cfg
}

// Validate checks that the paths required to run a benchmark are present.
func (c *HarnessConfig) Validate() error {
	if c.BasePath == "" {
		return fmt.Errorf("config: base vector path not specified")
	}
	if c.QueryPath == "" {
		return fmt.Errorf("config: query vector path not specified")
	}
	if c.Workers < 0 {
		return fmt.Errorf("config: workers must be >= 0, got %d", c.Workers)
	}
	if c.QPS < 0 {
		return fmt.Errorf("config: qps must be >= 0, got %d", c.QPS)
	}
	if c.M < 0 {
		return fmt.Errorf("config: m must be >= 0, got %d", c.M)
	}
	if c.EfConstruction < 0 {
		return fmt.Errorf("config: ef-construction must be >= 0, got %d", c.EfConstruction)
	}
	if c.EfSearch < 0 {
		return fmt.Errorf("config: ef-search must be >= 0, got %d", c.EfSearch)
	}
	if c.K < 0 {
		return fmt.Errorf("config: k must be >= 0, got %d", c.K)
	}
	return nil
}
