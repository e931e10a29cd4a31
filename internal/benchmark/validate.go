package benchmark

import (
	"errors"
	"fmt"
)

// ValidationError describes one benchmark dataset violation.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("benchmark validation: %s: %s", e.Field, e.Message)
}

// validate enforces the economic consistency of the dataset. Banks run
// on high leverage and fat margins, technology trades at high multiples
// with fast growth, oil trades cheap. A table that contradicts these
// relationships is broken data and must not load.
func validate(ds *dataset) error {
	var errs []error

	fail := func(field, format string, args ...interface{}) {
		errs = append(errs, &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)})
	}

	entries := map[string]Benchmark{"default": ds.Default}
	for name, bm := range ds.Sectors {
		entries[name] = bm
	}
	for name, bm := range entries {
		if bm.PERatioMedian <= 0 {
			fail(name+".pe_ratio_median", "must be > 0, got %.2f", bm.PERatioMedian)
		}
		if bm.PBRatioMedian <= 0 {
			fail(name+".pb_ratio_median", "must be > 0, got %.2f", bm.PBRatioMedian)
		}
		if bm.ROEMedian <= 0 {
			fail(name+".roe_median", "must be > 0, got %.2f", bm.ROEMedian)
		}
		if bm.NetMarginMedian <= 0 {
			fail(name+".net_margin_median", "must be > 0, got %.2f", bm.NetMarginMedian)
		}
		if bm.DebtToEquityMedian < 0 {
			fail(name+".debt_to_equity_median", "must be >= 0, got %.2f", bm.DebtToEquityMedian)
		}
		if bm.LeverageP75 < bm.DebtToEquityMedian {
			fail(name+".leverage_p75", "p75 (%.2f) below median (%.2f)", bm.LeverageP75, bm.DebtToEquityMedian)
		}
	}

	// Cross-sector ordering checks require the core sectors to exist.
	core := []string{"Bancos", "Tecnologia", "Varejo", "Utilities", "Petróleo e Gás"}
	for _, name := range core {
		if _, ok := ds.Sectors[name]; !ok {
			fail("sectors", "core sector %q missing", name)
		}
	}
	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	bancos := ds.Sectors["Bancos"]
	tech := ds.Sectors["Tecnologia"]
	varejo := ds.Sectors["Varejo"]
	util := ds.Sectors["Utilities"]
	oil := ds.Sectors["Petróleo e Gás"]

	greater := func(field string, pairs ...[2]float64) {
		for _, p := range pairs {
			if p[0] <= p[1] {
				fail(field, "ordering violated: %.2f <= %.2f", p[0], p[1])
			}
		}
	}

	greater("roe_median",
		[2]float64{bancos.ROEMedian, tech.ROEMedian},
		[2]float64{tech.ROEMedian, util.ROEMedian},
		[2]float64{varejo.ROEMedian, oil.ROEMedian},
	)
	if bancos.ROEMedian <= 20 {
		fail("Bancos.roe_median", "must exceed 20, got %.2f", bancos.ROEMedian)
	}

	greater("pe_ratio_median",
		[2]float64{tech.PERatioMedian, varejo.PERatioMedian},
		[2]float64{varejo.PERatioMedian, util.PERatioMedian},
		[2]float64{util.PERatioMedian, bancos.PERatioMedian},
		[2]float64{bancos.PERatioMedian, oil.PERatioMedian},
	)
	if tech.PERatioMedian <= 25 {
		fail("Tecnologia.pe_ratio_median", "must exceed 25, got %.2f", tech.PERatioMedian)
	}
	if oil.PERatioMedian >= 10 {
		fail("Petróleo e Gás.pe_ratio_median", "must stay below 10, got %.2f", oil.PERatioMedian)
	}

	greater("pb_ratio_median",
		[2]float64{tech.PBRatioMedian, varejo.PBRatioMedian},
		[2]float64{varejo.PBRatioMedian, util.PBRatioMedian},
	)

	greater("net_margin_median",
		[2]float64{bancos.NetMarginMedian, tech.NetMarginMedian},
		[2]float64{tech.NetMarginMedian, util.NetMarginMedian},
		[2]float64{util.NetMarginMedian, varejo.NetMarginMedian},
	)
	if varejo.NetMarginMedian >= 10 {
		fail("Varejo.net_margin_median", "must stay below 10, got %.2f", varejo.NetMarginMedian)
	}

	greater("revenue_growth_median",
		[2]float64{tech.RevenueGrowthMedian, varejo.RevenueGrowthMedian},
		[2]float64{varejo.RevenueGrowthMedian, bancos.RevenueGrowthMedian},
		[2]float64{bancos.RevenueGrowthMedian, util.RevenueGrowthMedian},
	)
	if tech.RevenueGrowthMedian <= 20 {
		fail("Tecnologia.revenue_growth_median", "must exceed 20, got %.2f", tech.RevenueGrowthMedian)
	}

	greater("debt_to_equity_median",
		[2]float64{bancos.DebtToEquityMedian, util.DebtToEquityMedian},
		[2]float64{util.DebtToEquityMedian, varejo.DebtToEquityMedian},
		[2]float64{varejo.DebtToEquityMedian, tech.DebtToEquityMedian},
	)

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}
