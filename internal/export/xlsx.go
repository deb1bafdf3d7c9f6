// Package export renders an analysis report as an XLSX workbook.
package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"coupon-analytics-go/internal/types"
)

// Sheet names, in workbook order.
const (
	SheetSummary          = "Summary"
	SheetTypes            = "Types"
	SheetTitleWords       = "TitleWords"
	SheetDescriptionWords = "DescriptionWords"
)

const ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// WriteXLSX writes the report as a workbook to w.
func WriteXLSX(w io.Writer, r types.Report) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), SheetSummary); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}
	for _, name := range []string{SheetTypes, SheetTitleWords, SheetDescriptionWords} {
		if _, err := f.NewSheet(name); err != nil {
			return fmt.Errorf("new sheet %s: %w", name, err)
		}
	}

	summary := [][]any{
		{"section", "unit", "min count", "mean count", "max count", "min value", "mean value", "max value", "no data"},
		statsRow("percentOffDiscounts", r.PercentOffDiscounts),
		statsRow("dollarOffDiscounts", r.DollarOffDiscounts),
		statsRow("percentOffDiscountsByRetail", r.PercentOffDiscountsByRetail),
		statsRow("dollarOffDiscountsByRetail", r.DollarOffDiscountsByRetail),
		{},
		{"totalCoupons", r.TotalCoupons},
	}
	if err := writeRows(f, SheetSummary, summary); err != nil {
		return err
	}

	typeRows := [][]any{{"promotion_type", "count"}}
	for _, tc := range r.NumberOfCouponsByType {
		typeRows = append(typeRows, []any{tc.Type, tc.Count})
	}
	if err := writeRows(f, SheetTypes, typeRows); err != nil {
		return err
	}

	if err := writeRows(f, SheetTitleWords, wordRows(r.RelevantWords.InTitle)); err != nil {
		return err
	}
	if err := writeRows(f, SheetDescriptionWords, wordRows(r.RelevantWords.InDescription)); err != nil {
		return err
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func statsRow(section string, s types.DiscountStats) []any {
	row := []any{section, string(s.Unit), s.Min, s.Mean, s.Max}
	if s.NoData {
		return append(row, "", "", "", true)
	}
	return append(row, *s.Values.Min, *s.Values.Mean, *s.Values.Max, false)
}

func wordRows(words types.WordFrequencies) [][]any {
	rows := [][]any{{"word", "count"}}
	for _, wc := range words {
		rows = append(rows, []any{wc.Word, wc.Count})
	}
	return rows
}

func writeRows(f *excelize.File, sheet string, rows [][]any) error {
	for i, row := range rows {
		if len(row) == 0 {
			continue
		}
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("write %s row %d: %w", sheet, i+1, err)
		}
	}
	return nil
}
