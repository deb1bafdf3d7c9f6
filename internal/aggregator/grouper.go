package aggregator

import "coupon-analytics-go/internal/types"

type groupKey struct {
	retailer      string
	promotionType string
	value         float64
}

// GroupByRetailer groups coupons on (retailer, promotion type, value) and
// counts each combination. Rows come out in order of first appearance.
func GroupByRetailer(coupons []types.Coupon) []types.GroupedCoupon {
	index := make(map[groupKey]int)
	rows := make([]types.GroupedCoupon, 0)
	for _, c := range coupons {
		k := groupKey{retailer: c.Retailer, promotionType: c.PromotionType, value: c.Value}
		if i, ok := index[k]; ok {
			rows[i].Count++
			continue
		}
		index[k] = len(rows)
		rows = append(rows, types.GroupedCoupon{
			Retailer:      c.Retailer,
			PromotionType: c.PromotionType,
			Value:         c.Value,
			Count:         1,
		})
	}
	return rows
}
