package types

// Coupon is one promotional offer from the source document.
type Coupon struct {
	PromotionType string  `json:"promotion_type"`
	Value         float64 `json:"value"`
	Retailer      string  `json:"coupon_webshop_name"`
	Title         string  `json:"title"`
	Description   string  `json:"description"`
}

func (c Coupon) PromotionKey() string   { return c.PromotionType }
func (c Coupon) DiscountValue() float64 { return c.Value }

// GroupedCoupon summarizes every coupon sharing a retailer, promotion type and value.
type GroupedCoupon struct {
	Retailer      string  `json:"coupon_webshop_name"`
	PromotionType string  `json:"promotion_type"`
	Value         float64 `json:"value"`
	Count         int     `json:"count"`
}

func (g GroupedCoupon) PromotionKey() string   { return g.PromotionType }
func (g GroupedCoupon) DiscountValue() float64 { return g.Value }
