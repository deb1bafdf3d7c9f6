package aggregator

import "coupon-analytics-go/internal/types"

// Record is anything the statistic calculator can filter and count:
// a coupon or a grouped row.
type Record interface {
	PromotionKey() string
	DiscountValue() float64
}

// Statistic holds the min/mean/max discount of the records matching a
// promotion type, and for each of them the number of records in the whole
// set (any promotion type) whose value equals it exactly.
type Statistic struct {
	Matched   int
	Min       float64
	Mean      float64
	Max       float64
	MinCount  int
	MeanCount int
	MaxCount  int
}

// NoData reports whether the promotion type matched no record.
func (s Statistic) NoData() bool { return s.Matched == 0 }

// Calculate computes the statistic for promotionType over records.
func Calculate[R Record](records []R, promotionType string) Statistic {
	var st Statistic
	var sum float64
	for _, r := range records {
		if r.PromotionKey() != promotionType {
			continue
		}
		v := r.DiscountValue()
		if st.Matched == 0 || v < st.Min {
			st.Min = v
		}
		if st.Matched == 0 || v > st.Max {
			st.Max = v
		}
		sum += v
		st.Matched++
	}
	if st.Matched == 0 {
		return st
	}

	// rounding in sum can push the mean just outside [Min, Max]
	st.Mean = min(max(sum/float64(st.Matched), st.Min), st.Max)

	st.MinCount = countValue(records, st.Min)
	st.MeanCount = countValue(records, st.Mean)
	st.MaxCount = countValue(records, st.Max)
	return st
}

func countValue[R Record](records []R, value float64) int {
	n := 0
	for _, r := range records {
		if r.DiscountValue() == value {
			n++
		}
	}
	return n
}

// DiscountStats shapes the statistic for the report.
func (s Statistic) DiscountStats(unit types.Unit) types.DiscountStats {
	out := types.DiscountStats{
		Min:  s.MinCount,
		Mean: s.MeanCount,
		Max:  s.MaxCount,
		Unit: unit,
	}
	if s.NoData() {
		out.NoData = true
		return out
	}
	minV, meanV, maxV := s.Min, s.Mean, s.Max
	out.Values = types.DiscountValues{Min: &minV, Mean: &meanV, Max: &maxV}
	return out
}
