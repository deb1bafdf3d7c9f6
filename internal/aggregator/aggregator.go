// Package aggregator turns a loaded coupon set into the analysis report:
// counts by promotion type, discount statistics (global and per retailer)
// and the most frequent title and description words.
package aggregator

import (
	"sort"

	"coupon-analytics-go/internal/types"
)

// Promotion types the report computes statistics for. Any other type is
// still counted in NumberOfCouponsByType.
const (
	PercentOff = "percent-off"
	DollarOff  = "dollar-off"
)

type Options struct {
	// TopWords caps each word-frequency table. Zero means DefaultTopWords.
	TopWords int
}

func (o Options) topWords() int {
	if o.TopWords <= 0 {
		return DefaultTopWords
	}
	return o.TopWords
}

// Aggregate computes the full report over coupons. It keeps no state between
// calls and never mutates its input.
func Aggregate(coupons []types.Coupon, opts Options) types.Report {
	byRetail := GroupByRetailer(coupons)

	titles := make([]string, len(coupons))
	descriptions := make([]string, len(coupons))
	for i, c := range coupons {
		titles[i] = c.Title
		descriptions[i] = c.Description
	}

	return types.Report{
		TotalCoupons:                len(coupons),
		NumberOfCouponsByType:       CountByType(coupons),
		PercentOffDiscounts:         Calculate(coupons, PercentOff).DiscountStats(types.UnitPercent),
		DollarOffDiscounts:          Calculate(coupons, DollarOff).DiscountStats(types.UnitDollar),
		PercentOffDiscountsByRetail: Calculate(byRetail, PercentOff).DiscountStats(types.UnitPercent),
		DollarOffDiscountsByRetail:  Calculate(byRetail, DollarOff).DiscountStats(types.UnitDollar),
		RelevantWords: types.RelevantWords{
			InTitle:       TopWords(titles, opts.topWords()),
			InDescription: TopWords(descriptions, opts.topWords()),
		},
	}
}

// CountByType counts coupons per promotion type, unknown types included.
// The result is ranked by descending count; ties keep first-appearance order.
func CountByType(coupons []types.Coupon) types.TypeCounts {
	index := make(map[string]int)
	counts := make(types.TypeCounts, 0)
	for _, c := range coupons {
		if i, ok := index[c.PromotionType]; ok {
			counts[i].Count++
			continue
		}
		index[c.PromotionType] = len(counts)
		counts = append(counts, types.TypeCount{Type: c.PromotionType, Count: 1})
	}
	sort.SliceStable(counts, func(i, j int) bool { return counts[i].Count > counts[j].Count })
	return counts
}
