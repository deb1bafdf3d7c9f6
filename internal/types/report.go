// internal/types/report.go
package types

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// --------------------------------------------
// Discount units
// --------------------------------------------
type Unit string

const (
	UnitPercent Unit = "%"
	UnitDollar  Unit = "$"
)

// --------------------------------------------
// Final output delivered by /api/v1/analysis
// --------------------------------------------
type Report struct {
	TotalCoupons                int            `json:"totalCoupons"`
	NumberOfCouponsByType       TypeCounts     `json:"numberOfCouponsByType"`
	PercentOffDiscounts         DiscountStats  `json:"percentOffDiscounts"`
	DollarOffDiscounts          DiscountStats  `json:"dollarOffDiscounts"`
	PercentOffDiscountsByRetail DiscountStats  `json:"percentOffDiscountsByRetail"`
	DollarOffDiscountsByRetail  DiscountStats  `json:"dollarOffDiscountsByRetail"`
	RelevantWords               RelevantWords  `json:"relevantWords"`
}

// --------------------------------------------
// Discount statistics block
//
// Min, Mean and Max are value-collision counts: how many records in the
// examined set carry exactly the min, mean or max discount value.
// --------------------------------------------
type DiscountStats struct {
	Min    int            `json:"min"`
	Mean   int            `json:"mean"`
	Max    int            `json:"max"`
	Unit   Unit           `json:"unit"`
	NoData bool           `json:"noData,omitempty"`
	Values DiscountValues `json:"values"`
}

// DiscountValues are nil when the promotion type matched nothing.
type DiscountValues struct {
	Min  *float64 `json:"min"`
	Mean *float64 `json:"mean"`
	Max  *float64 `json:"max"`
}

// --------------------------------------------
// Word frequency block
// --------------------------------------------
type RelevantWords struct {
	InTitle       WordFrequencies `json:"inTitle"`
	InDescription WordFrequencies `json:"inDescription"`
}

type WordCount struct {
	Word  string
	Count int
}

// WordFrequencies is ranked by descending count. It encodes as a JSON object
// whose keys keep that ranking.
type WordFrequencies []WordCount

func (w WordFrequencies) MarshalJSON() ([]byte, error) {
	return rankedObject(len(w), func(i int) (string, int) { return w[i].Word, w[i].Count })
}

// Map drops the ranking.
func (w WordFrequencies) Map() map[string]int {
	m := make(map[string]int, len(w))
	for _, wc := range w {
		m[wc.Word] = wc.Count
	}
	return m
}

// --------------------------------------------
// Promotion type counts
// --------------------------------------------
type TypeCount struct {
	Type  string
	Count int
}

// TypeCounts is ranked by descending count and encodes like WordFrequencies.
type TypeCounts []TypeCount

func (c TypeCounts) MarshalJSON() ([]byte, error) {
	return rankedObject(len(c), func(i int) (string, int) { return c[i].Type, c[i].Count })
}

func (c TypeCounts) Map() map[string]int {
	m := make(map[string]int, len(c))
	for _, tc := range c {
		m[tc.Type] = tc.Count
	}
	return m
}

// rankedObject writes n key/count pairs as a JSON object in the given order.
func rankedObject(n int, entry func(i int) (string, int)) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i := 0; i < n; i++ {
		if i > 0 {
			buf.WriteByte(',')
		}
		name, count := entry(i)
		key, err := json.Marshal(name)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.WriteString(strconv.Itoa(count))
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
