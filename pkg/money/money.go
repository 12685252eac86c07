// Package money normalizes monetary values to two fractional digits.
// Every arithmetic step in the order/ledger core passes through Round so
// repeated additions never accumulate float drift.
package money

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Round snaps a value to the cent boundary using half-away-from-zero
// rounding. Non-finite input collapses to zero. Round is idempotent.
func Round(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	out, _ := decimal.NewFromFloat(v).Round(2).Float64()
	return out
}

// Coerce converts loosely-typed input into a rounded amount. Monetary
// fields arrive from serialized payloads as floats, strings, or numbers;
// anything unparseable is treated as zero rather than erroring.
func Coerce(v any) float64 {
	switch val := v.(type) {
	case nil:
		return 0
	case float64:
		return Round(val)
	case float32:
		return Round(float64(val))
	case int:
		return Round(float64(val))
	case int64:
		return Round(float64(val))
	case json.Number:
		f, err := val.Float64()
		if err != nil {
			return 0
		}
		return Round(f)
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(val), 64)
		if err != nil {
			return 0
		}
		return Round(f)
	case *float64:
		if val == nil {
			return 0
		}
		return Round(*val)
	default:
		return 0
	}
}

// Add sums two amounts and re-rounds the result.
func Add(a, b float64) float64 {
	out, _ := decimal.NewFromFloat(Round(a)).Add(decimal.NewFromFloat(Round(b))).Round(2).Float64()
	return out
}
