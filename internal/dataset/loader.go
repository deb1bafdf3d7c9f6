package dataset

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"coupon-analytics-go/internal/errs"
	"coupon-analytics-go/internal/types"
)

// Source field names.
const (
	FieldPromotionType = "promotion_type"
	FieldValue         = "value"
	FieldRetailer      = "coupon_webshop_name"
	FieldTitle         = "title"
	FieldDescription   = "description"
)

// Load reads every coupon from path. Files ending in .xlsx are read as
// spreadsheets; everything else is decoded as a JSON document.
func Load(path string) ([]types.Coupon, error) {
	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		return LoadXLSX(path)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w: %w", path, errs.ErrSourceUnavailable, err)
	}
	defer f.Close()
	return Decode(f)
}

// rawCoupon keeps fields as pointers so a missing key is told apart from a
// zero value.
type rawCoupon struct {
	PromotionType *string  `json:"promotion_type"`
	Value         *float64 `json:"value"`
	Retailer      *string  `json:"coupon_webshop_name"`
	Title         *string  `json:"title"`
	Description   *string  `json:"description"`
}

// Decode parses a document of the form {"coupons": [...]}. Unknown fields are
// ignored; a missing field, a non-numeric value or trailing data after the
// document fails the whole document.
func Decode(r io.Reader) ([]types.Coupon, error) {
	var doc struct {
		Coupons *[]json.RawMessage `json:"coupons"`
	}
	dec := json.NewDecoder(r)
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode: %w: %w", errs.ErrMalformedSource, err)
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, fmt.Errorf("%w: trailing data after document", errs.ErrMalformedSource)
	}
	if doc.Coupons == nil {
		return nil, fmt.Errorf("%w: missing %q array", errs.ErrMalformedSource, "coupons")
	}

	out := make([]types.Coupon, 0, len(*doc.Coupons))
	for i, raw := range *doc.Coupons {
		c, err := decodeCoupon(i, raw)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}

func decodeCoupon(i int, raw json.RawMessage) (types.Coupon, error) {
	var rc rawCoupon
	if err := json.Unmarshal(raw, &rc); err != nil {
		field := ""
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			field = typeErr.Field
		}
		return types.Coupon{}, &errs.RecordError{Index: i, Field: field, Err: err}
	}

	missing := func(field string) error {
		return &errs.RecordError{Index: i, Field: field, Err: errors.New("missing")}
	}
	switch {
	case rc.PromotionType == nil:
		return types.Coupon{}, missing(FieldPromotionType)
	case rc.Value == nil:
		return types.Coupon{}, missing(FieldValue)
	case rc.Retailer == nil:
		return types.Coupon{}, missing(FieldRetailer)
	case rc.Title == nil:
		return types.Coupon{}, missing(FieldTitle)
	case rc.Description == nil:
		return types.Coupon{}, missing(FieldDescription)
	}

	return types.Coupon{
		PromotionType: *rc.PromotionType,
		Value:         *rc.Value,
		Retailer:      *rc.Retailer,
		Title:         *rc.Title,
		Description:   *rc.Description,
	}, nil
}

// Check reports whether path can be opened for reading.
func Check(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open %s: %w: %w", path, errs.ErrSourceUnavailable, err)
	}
	return f.Close()
}
