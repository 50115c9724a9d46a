package goqubo

import (
	"math"
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// RunConfig describes one solve: the problem instance, its QUBO weights, how backend output is read back, and where results are catalogued.
type RunConfig struct {
	Problem ProblemConfig `yaml:"problem"`
	QUBO    QUBOConfig    `yaml:"qubo"`
	Readout ReadoutConfig `yaml:"readout"`
	Catalog CatalogConfig `yaml:"catalog"`
}

// ProblemConfig selects a random MIS instance, or an explicit graph when Graph is set.
type ProblemConfig struct {
	NumVertices    int     `yaml:"num_vertices"`
	ConnectionProb float64 `yaml:"connection_prob"`
	Seed           uint32  `yaml:"seed"`
	Graph          string  `yaml:"graph"` // optional edge expression, e.g. "0-1-2, 3-4"
}

type QUBOConfig struct {
	WDiag float64 `yaml:"w_diag"`
	WOff  float64 `yaml:"w_off"`
}

type ReadoutConfig struct {
	RunID      string `yaml:"run_id"`
	TargetCost int32  `yaml:"target_cost"`
	TraceFile  string `yaml:"trace_file"` // recorded backend output to replay; empty skips the readout
	History    bool   `yaml:"history"`
}

type CatalogConfig struct {
	Path     string `yaml:"path"` // empty denotes an in-memory catalog
	ReadOnly bool   `yaml:"read_only"`
}

// DefaultRunConfig returns the configuration of the reference MIS example.
func DefaultRunConfig() RunConfig {
	return RunConfig{
		Problem: ProblemConfig{
			NumVertices:    10,
			ConnectionProb: 0.75,
			Seed:           42,
		},
		QUBO: QUBOConfig{
			WDiag: 1,
			WOff:  4,
		},
		Readout: ReadoutConfig{
			RunID:      "run-0",
			TargetCost: -2,
		},
	}
}

// LoadRunConfig reads a YAML run config, starting from DefaultRunConfig so omitted fields keep their defaults.
func LoadRunConfig(pathname string) (RunConfig, error) {
	cfg := DefaultRunConfig()

	buf, err := os.ReadFile(pathname)
	if err != nil {
		return cfg, errors.Wrapf(err, "reading run config %q", pathname)
	}
	if err = yaml.Unmarshal(buf, &cfg); err != nil {
		return cfg, errors.Wrapf(err, "parsing run config %q", pathname)
	}
	if err = cfg.Validate(); err != nil {
		return cfg, errors.Wrapf(err, "run config %q", pathname)
	}
	return cfg, nil
}

// Validate checks the fields a run cannot start without.
func (cfg *RunConfig) Validate() error {
	p := cfg.Problem
	if p.NumVertices <= 0 {
		return errors.Wrapf(ErrInvalidParameter, "problem.num_vertices must be > 0 (got %d)", p.NumVertices)
	}
	if len(p.Graph) == 0 && !(p.ConnectionProb >= 0 && p.ConnectionProb <= 1) {
		return errors.Wrapf(ErrInvalidParameter, "problem.connection_prob must be in [0,1] (got %v)", p.ConnectionProb)
	}
	if !isPositive(cfg.QUBO.WDiag) {
		return errors.Wrapf(ErrInvalidParameter, "qubo.w_diag must be > 0 (got %v)", cfg.QUBO.WDiag)
	}
	if !isPositive(cfg.QUBO.WOff) {
		return errors.Wrapf(ErrInvalidParameter, "qubo.w_off must be > 0 (got %v)", cfg.QUBO.WOff)
	}
	if cfg.Catalog.ReadOnly && len(cfg.Catalog.Path) == 0 {
		return errors.Wrap(ErrBadCatalogParam, "catalog.path must be specified for a read-only catalog")
	}
	return nil
}

func isPositive(w float64) bool {
	return w > 0 && !math.IsInf(w, 1)
}
