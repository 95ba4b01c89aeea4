package policy

import (
	"encoding/json"
	"strconv"

	"github.com/shopspring/decimal"
)

// InsuranceRule is the resolved configuration of one contribution type.
type InsuranceRule struct {
	Rate     decimal.Decimal
	MinBase  *int64
	MaxBase  *int64
	RoundTo  int64
	Rounding string

	// Long-term-care add-on, meaningful on the NHIS rule only. Applied to the
	// already-rounded health-insurance amount, not to the base.
	LTCRate     decimal.Decimal
	LTCRoundTo  int64
	LTCRounding string
}

// LocalTaxRule configures the local income-tax surcharge applied to the
// looked-up withholding tax.
type LocalTaxRule struct {
	Rate     decimal.Decimal
	RoundTo  int64
	Rounding string
}

// ProrationRule configures the exporter's day-proration behaviour.
type ProrationRule struct {
	ExcludeBonus bool
}

// Effective is the fully merged policy used for one calculation.
type Effective struct {
	NPS       InsuranceRule
	NHIS      InsuranceRule
	EI        InsuranceRule
	LocalTax  LocalTaxRule
	Proration ProrationRule
}

// FromDocument decodes a merged document into the typed form the calculator
// consumes. Missing sections decode to zero-rate rules; missing round/mode
// keys fall back to step 10 and half-up, matching the statutory convention.
func FromDocument(doc Document) Effective {
	var e Effective
	e.NPS = insuranceRule(doc["nps"])
	e.NHIS = insuranceRule(doc["nhis"])
	e.EI = insuranceRule(doc["ei"])

	lt := doc["local_tax"]
	e.LocalTax = LocalTaxRule{
		Rate:     sectionRate(lt, "rate"),
		RoundTo:  sectionInt(lt, "round_to", 10),
		Rounding: sectionString(lt, "rounding", "round"),
	}

	pr := doc["proration"]
	e.Proration = ProrationRule{
		ExcludeBonus: sectionBool(pr, "exclude_bonus", true),
	}
	return e
}

func insuranceRule(sec map[string]any) InsuranceRule {
	rule := InsuranceRule{
		Rate:     sectionRate(sec, "rate"),
		MinBase:  sectionOptInt(sec, "min_base"),
		MaxBase:  sectionOptInt(sec, "max_base"),
		RoundTo:  sectionInt(sec, "round_to", 10),
		Rounding: sectionString(sec, "rounding", "round"),
	}
	rule.LTCRate = sectionRate(sec, "ltc_rate")
	rule.LTCRoundTo = sectionInt(sec, "ltc_round_to", rule.RoundTo)
	rule.LTCRounding = sectionString(sec, "ltc_rounding", rule.Rounding)
	return rule
}

// sectionRate reads a decimal fraction, tolerating every numeric shape JSON
// decoding can produce. Unparseable values degrade to zero.
func sectionRate(sec map[string]any, key string) decimal.Decimal {
	if sec == nil {
		return decimal.Zero
	}
	switch v := sec[key].(type) {
	case nil:
		return decimal.Zero
	case float64:
		return decimal.NewFromFloat(v)
	case int:
		return decimal.NewFromInt(int64(v))
	case int64:
		return decimal.NewFromInt(v)
	case decimal.Decimal:
		return v
	case json.Number:
		d, err := decimal.NewFromString(v.String())
		if err != nil {
			return decimal.Zero
		}
		return d
	case string:
		d, err := decimal.NewFromString(v)
		if err != nil {
			return decimal.Zero
		}
		return d
	default:
		return decimal.Zero
	}
}

func sectionInt(sec map[string]any, key string, fallback int64) int64 {
	n := sectionOptInt(sec, key)
	if n == nil || *n == 0 {
		return fallback
	}
	return *n
}

func sectionOptInt(sec map[string]any, key string) *int64 {
	if sec == nil {
		return nil
	}
	var n int64
	switch v := sec[key].(type) {
	case nil:
		return nil
	case float64:
		n = int64(v)
	case int:
		n = int64(v)
	case int64:
		n = v
	case json.Number:
		parsed, err := v.Int64()
		if err != nil {
			return nil
		}
		n = parsed
	case string:
		parsed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return nil
		}
		n = parsed
	default:
		return nil
	}
	return &n
}

func sectionString(sec map[string]any, key, fallback string) string {
	if sec == nil {
		return fallback
	}
	if s, ok := sec[key].(string); ok && s != "" {
		return s
	}
	return fallback
}

func sectionBool(sec map[string]any, key string, fallback bool) bool {
	if sec == nil {
		return fallback
	}
	if b, ok := sec[key].(bool); ok {
		return b
	}
	return fallback
}
