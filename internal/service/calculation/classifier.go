package calculation

import (
	"github.com/traum0123-design/traum0123/internal/domain/fieldpref"
	"github.com/traum0123-design/traum0123/internal/domain/payroll"
)

// Classification is the resolved view of a company's field configuration that
// the deduction calculator and the exporter consume. It is derived once per
// request from loaded preferences and never mutated afterwards.
type Classification struct {
	Earnings   map[string]bool
	Deductions map[string]bool

	// ExemptionLimits caps how much of a field is excluded from contribution
	// bases. Aliased fields register the limit under the display label too so
	// lookups by either key succeed.
	ExemptionLimits map[string]int64

	// Explicit opt-in contribution bases. Empty means "use the default base"
	// for that insurance type.
	NHISInclusion map[string]bool
	EIInclusion   map[string]bool

	Aliases map[string]string

	// Prorate records the explicit per-field proration flag; fields without a
	// preference are absent and fall back to the exporter's default.
	Prorate map[string]bool
}

// Classify resolves field preferences against the declared columns of a
// company. baseExemptions seeds the exemption table before per-company
// overrides apply.
func Classify(
	columns []fieldpref.Column,
	extras []fieldpref.ExtraField,
	prefs []fieldpref.Preference,
	baseExemptions map[string]int64,
) Classification {
	cls := Classification{
		Earnings:        map[string]bool{},
		Deductions:      map[string]bool{},
		ExemptionLimits: map[string]int64{},
		NHISInclusion:   map[string]bool{},
		EIInclusion:     map[string]bool{},
		Aliases:         map[string]string{},
		Prorate:         map[string]bool{},
	}

	groups := map[string]fieldpref.Group{}
	type exemptState struct {
		enabled bool
		limit   int64
	}
	exempt := map[string]exemptState{}
	for name, limit := range baseExemptions {
		if limit > 0 {
			exempt[name] = exemptState{enabled: true, limit: limit}
		}
	}

	for _, pref := range prefs {
		if pref.Group != "" && pref.Group != fieldpref.GroupNone {
			groups[pref.Field] = pref.Group
		}
		if pref.Alias != "" {
			cls.Aliases[pref.Field] = pref.Alias
		}
		enabled := pref.ExemptEnabled && pref.ExemptLimit > 0
		_, seeded := exempt[pref.Field]
		if !seeded || enabled || pref.ExemptLimit > 0 {
			// A seeded base exemption survives unless the preference carries
			// an explicit override.
			exempt[pref.Field] = exemptState{enabled: enabled, limit: pref.ExemptLimit}
		}
		if pref.InsNHIS {
			cls.NHISInclusion[pref.Field] = true
		}
		if pref.InsEI {
			cls.EIInclusion[pref.Field] = true
		}
		cls.Prorate[pref.Field] = pref.Prorate
	}

	declared := make([]string, 0, len(columns)+len(extras))
	for _, col := range columns {
		declared = append(declared, col.Name)
	}
	for _, ef := range extras {
		declared = append(declared, ef.Name)
	}
	for _, name := range declared {
		switch groups[name] {
		case fieldpref.GroupEarn:
			cls.Earnings[name] = true
		case fieldpref.GroupDeduct:
			cls.Deductions[name] = true
		}
	}

	// No explicit earnings grouping: everything declared that is not a
	// statutory deduction counts as an earning.
	if len(cls.Earnings) == 0 {
		statutory := payroll.StatutoryDeductionFields()
		for _, name := range declared {
			if !statutory[name] {
				cls.Earnings[name] = true
			}
		}
	}

	for field, state := range exempt {
		if !state.enabled || state.limit <= 0 {
			continue
		}
		cls.ExemptionLimits[field] = state.limit
		if alias, ok := cls.Aliases[field]; ok && alias != "" {
			cls.ExemptionLimits[alias] = state.limit
		}
	}

	return cls
}
