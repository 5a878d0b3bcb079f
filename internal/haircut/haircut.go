// Package haircut resolves a posted collateral item's haircut rate from
// the CSA eligible-collateral schedule. Resolution is a pure lookup,
// decoupled from the margin calculation: the calculator only ever sees
// already-resolved rates.
package haircut

import (
	"fmt"
	"math"

	"frizo/csa_margin_engine/internal/csa"
	"github.com/shopspring/decimal"
)

// Query describes the item to resolve. Maturity bounds are in years from
// the valuation date; nil means unbounded on that side (cash and other
// non-maturing collateral leave both nil).
type Query struct {
	StandardizedType csa.CollateralType
	MaturityMin      *float64
	MaturityMax      *float64
}

// Resolution the resolved rate plus enough context to audit the pick.
type Resolution struct {
	HaircutRate         decimal.Decimal
	ValuationPercentage decimal.Decimal
	BucketMin           *float64
	BucketMax           *float64
	Ambiguous           bool // several buckets overlapped; most conservative chosen
}

// Resolve finds the haircut for q in the schedule.
//
// A schedule entry without maturity buckets resolves to its flat haircut.
// With buckets, every bucket whose maturity range overlaps the query range
// is a candidate; on ambiguity the highest haircut wins (conservative for
// the secured party). No overlapping bucket falls back the same way to the
// most punitive bucket of the entry.
func Resolve(schedule []csa.EligibleCollateral, q Query) (Resolution, error) {
	entry, ok := findEntry(schedule, q.StandardizedType)
	if !ok {
		return Resolution{}, fmt.Errorf("collateral type %s is not in the eligible collateral schedule", q.StandardizedType)
	}

	if len(entry.MaturityBuckets) == 0 {
		return Resolution{
			HaircutRate:         entry.FlatHaircut,
			ValuationPercentage: entry.ValuationPercentage,
		}, nil
	}

	var candidates []csa.MaturityBucket
	for _, bucket := range entry.MaturityBuckets {
		if overlaps(q.MaturityMin, q.MaturityMax, bucket.MinYears, bucket.MaxYears) {
			candidates = append(candidates, bucket)
		}
	}

	ambiguous := len(candidates) > 1
	if len(candidates) == 0 {
		// Maturity outside every stated bucket: take the most punitive
		// bucket rather than inventing a rate of zero.
		candidates = entry.MaturityBuckets
		ambiguous = true
	}

	chosen := candidates[0]
	for _, bucket := range candidates[1:] {
		if bucket.Haircut.GreaterThan(chosen.Haircut) {
			chosen = bucket
		}
	}

	return Resolution{
		HaircutRate:         chosen.Haircut,
		ValuationPercentage: chosen.ValuationPercentage,
		BucketMin:           chosen.MinYears,
		BucketMax:           chosen.MaxYears,
		Ambiguous:           ambiguous,
	}, nil
}

func findEntry(schedule []csa.EligibleCollateral, t csa.CollateralType) (csa.EligibleCollateral, bool) {
	for _, entry := range schedule {
		if entry.StandardizedType == t {
			return entry, true
		}
	}
	return csa.EligibleCollateral{}, false
}

// overlaps reports whether [qMin, qMax] and [bMin, bMax] intersect, with
// nil meaning 0 on the low side and unbounded on the high side.
func overlaps(qMin, qMax, bMin, bMax *float64) bool {
	return bound(qMin, 0) <= bound(bMax, math.Inf(1)) &&
		bound(qMax, math.Inf(1)) >= bound(bMin, 0)
}

func bound(v *float64, def float64) float64 {
	if v == nil {
		return def
	}
	return *v
}
