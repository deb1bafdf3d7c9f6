// Package errs holds the sentinel errors shared by the loader, the processor
// and the HTTP layer, plus their mapping to status codes.
package errs

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrSourceUnavailable = errors.New("coupon source unavailable")
	ErrMalformedSource   = errors.New("malformed coupon source")
	ErrMalformedRecord   = errors.New("malformed coupon record")
	ErrTimeout           = errors.New("operation timed out")
)

// RecordError reports which record of the source failed validation. Index
// counts records from 0. Row is the 1-based sheet row for workbook sources
// and zero otherwise.
type RecordError struct {
	Index int
	Row   int
	Field string
	Err   error
}

func (e *RecordError) Error() string {
	if e.Row > 0 {
		return fmt.Sprintf("coupon %d (row %d): field %q: %v", e.Index, e.Row, e.Field, e.Err)
	}
	return fmt.Sprintf("coupon %d: field %q: %v", e.Index, e.Field, e.Err)
}

func (e *RecordError) Unwrap() []error {
	return []error{ErrMalformedRecord, e.Err}
}

func HTTPStatusCode(err error) int {
	switch {
	case errors.Is(err, ErrSourceUnavailable):
		return http.StatusServiceUnavailable
	case errors.Is(err, ErrMalformedSource), errors.Is(err, ErrMalformedRecord):
		return http.StatusUnprocessableEntity
	case errors.Is(err, ErrTimeout):
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}
