package dataset

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"coupon-analytics-go/internal/errs"
	"coupon-analytics-go/internal/types"
)

// LoadXLSX reads coupons from the first sheet of a workbook. The header row
// must name all five source fields; column order is free and other columns
// are ignored. Fully blank rows are skipped. Record errors carry the sheet row
// of the offending cell.
func LoadXLSX(path string) ([]types.Coupon, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open file: %w: %w", errs.ErrSourceUnavailable, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("%w: no sheets", errs.ErrMalformedSource)
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read rows: %w: %w", errs.ErrMalformedSource, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: no header row", errs.ErrMalformedSource)
	}

	// find columns
	idx := map[string]int{}
	for i, h := range rows[0] {
		name := strings.ToLower(strings.TrimSpace(h))
		if _, seen := idx[name]; !seen {
			idx[name] = i
		}
	}
	fields := []string{FieldPromotionType, FieldValue, FieldRetailer, FieldTitle, FieldDescription}
	for _, name := range fields {
		if _, ok := idx[name]; !ok {
			return nil, fmt.Errorf("%w: missing column %q", errs.ErrMalformedSource, name)
		}
	}

	cell := func(r []string, name string) string {
		if i := idx[name]; i < len(r) {
			return r[i]
		}
		return ""
	}

	out := make([]types.Coupon, 0, len(rows)-1)
	for i, r := range rows[1:] {
		if blankRow(r) {
			continue
		}
		// header is row 1
		recErr := func(err error) error {
			return &errs.RecordError{Index: len(out), Row: i + 2, Field: FieldValue, Err: err}
		}
		raw := strings.TrimSpace(cell(r, FieldValue))
		if raw == "" {
			return nil, recErr(errors.New("missing"))
		}
		value, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, recErr(err)
		}
		if math.IsNaN(value) || math.IsInf(value, 0) {
			return nil, recErr(fmt.Errorf("not a finite number: %q", raw))
		}
		out = append(out, types.Coupon{
			PromotionType: cell(r, FieldPromotionType),
			Value:         value,
			Retailer:      cell(r, FieldRetailer),
			Title:         cell(r, FieldTitle),
			Description:   cell(r, FieldDescription),
		})
	}
	return out, nil
}

func blankRow(r []string) bool {
	for _, c := range r {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
