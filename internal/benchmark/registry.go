// Package benchmark holds the versioned sector benchmark table and the
// registry that resolves a company's sector to its reference medians.
package benchmark

import (
	"bytes"
	_ "embed"
	"fmt"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/quantbr/fundascore/internal/contracts"
	"github.com/quantbr/fundascore/pkg/logger"
)

//go:embed data/benchmarks.yaml
var benchmarksYAML []byte

// Benchmark is the reference profile of one sector.
type Benchmark struct {
	PERatioMedian       float64 `yaml:"pe_ratio_median" json:"pe_ratio_median"`
	PBRatioMedian       float64 `yaml:"pb_ratio_median" json:"pb_ratio_median"`
	ROEMedian           float64 `yaml:"roe_median" json:"roe_median"`
	NetMarginMedian     float64 `yaml:"net_margin_median" json:"net_margin_median"`
	RevenueGrowthMedian float64 `yaml:"revenue_growth_median" json:"revenue_growth_median"`
	DebtToEquityMedian  float64 `yaml:"debt_to_equity_median" json:"debt_to_equity_median"`
	LeverageP75         float64 `yaml:"leverage_p75" json:"leverage_p75"`
}

type dataset struct {
	Version int                  `yaml:"version"`
	AsOf    string               `yaml:"as_of"`
	Default Benchmark            `yaml:"default"`
	Sectors map[string]Benchmark `yaml:"sectors"`
}

// sectorAliases maps provider spellings onto canonical table keys.
var sectorAliases = map[string]string{
	"Petróleo":                 "Petróleo e Gás",
	"Óleo e Gás":               "Petróleo e Gás",
	"Financeiro":               "Bancos",
	"Utilidades":               "Utilities",
	"Energia Elétrica":         "Utilities",
	"Tecnologia da Informação": "Tecnologia",
	"Comércio":                 "Varejo",
	"Telefonia":                "Telecomunicações",
}

// Registry is the loaded, validated benchmark table.
type Registry struct {
	version int
	asOf    string
	def     Benchmark
	sectors map[string]Benchmark
	log     *logger.Logger
}

// Load parses and validates the embedded benchmark dataset.
// A dataset that violates the cross-sector invariants never loads.
func Load(log *logger.Logger) (*Registry, error) {
	ds, err := decode(benchmarksYAML)
	if err != nil {
		return nil, err
	}
	if err := validate(ds); err != nil {
		return nil, err
	}

	r := &Registry{
		version: ds.Version,
		asOf:    ds.AsOf,
		def:     ds.Default,
		sectors: ds.Sectors,
		log:     log,
	}

	log.WithFields(map[string]interface{}{
		"version": ds.Version,
		"as_of":   ds.AsOf,
		"sectors": len(ds.Sectors),
	}).Info("sector benchmarks loaded")

	return r, nil
}

func decode(raw []byte) (*dataset, error) {
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)

	var ds dataset
	if err := dec.Decode(&ds); err != nil {
		return nil, fmt.Errorf("parse benchmarks: %w", err)
	}
	if ds.Version < 1 {
		return nil, &ValidationError{Field: "version", Message: "must be >= 1"}
	}
	if len(ds.Sectors) == 0 {
		return nil, &ValidationError{Field: "sectors", Message: "dataset has no sectors"}
	}
	return &ds, nil
}

// Version reports the dataset version.
func (r *Registry) Version() int { return r.version }

// AsOf reports the reference date of the dataset.
func (r *Registry) AsOf() string { return r.asOf }

// Sectors lists the canonical sector names in sorted order.
func (r *Registry) Sectors() []string {
	names := make([]string, 0, len(r.sectors))
	for name := range r.sectors {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Get resolves a sector name to its benchmark. Aliases are folded onto
// canonical keys; an unknown sector falls back to the default profile
// and the returned warning is non-nil.
func (r *Registry) Get(sector string) (Benchmark, *contracts.Warning) {
	name := strings.TrimSpace(sector)
	if canonical, ok := sectorAliases[name]; ok {
		name = canonical
	}
	if bm, ok := r.sectors[name]; ok {
		return bm, nil
	}

	r.log.WithField("sector", sector).Warn("sector not in benchmark table, using default profile")
	return r.def, &contracts.Warning{
		Code:    contracts.WarnSectorUnknown,
		Message: fmt.Sprintf("sector %q not in benchmark table, default profile applied", sector),
	}
}

// Dump returns the full table keyed by canonical sector name, with the
// default profile under "default". Used by the CLI inspection command.
func (r *Registry) Dump() map[string]Benchmark {
	out := make(map[string]Benchmark, len(r.sectors)+1)
	for name, bm := range r.sectors {
		out[name] = bm
	}
	out["default"] = r.def
	return out
}
