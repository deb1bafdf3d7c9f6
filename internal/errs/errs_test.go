package errs

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestHTTPStatusCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"source unavailable", fmt.Errorf("open: %w", ErrSourceUnavailable), http.StatusServiceUnavailable},
		{"malformed source", fmt.Errorf("decode: %w", ErrMalformedSource), http.StatusUnprocessableEntity},
		{"malformed record", &RecordError{Index: 3, Field: "value", Err: errors.New("not a number")}, http.StatusUnprocessableEntity},
		{"timeout", ErrTimeout, http.StatusGatewayTimeout},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := HTTPStatusCode(tt.err); got != tt.want {
				t.Errorf("HTTPStatusCode() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestRecordErrorUnwrap(t *testing.T) {
	cause := errors.New("missing")
	err := fmt.Errorf("load: %w", &RecordError{Index: 0, Field: "title", Err: cause})
	if !errors.Is(err, ErrMalformedRecord) {
		t.Error("expected errors.Is(err, ErrMalformedRecord)")
	}
	if !errors.Is(err, cause) {
		t.Error("expected errors.Is(err, cause)")
	}
	var recErr *RecordError
	if !errors.As(err, &recErr) || recErr.Field != "title" {
		t.Errorf("errors.As = %v, want field title", recErr)
	}
}

func TestRecordErrorMessage(t *testing.T) {
	tests := []struct {
		name string
		err  *RecordError
		want string
	}{
		{"json record", &RecordError{Index: 2, Field: "value", Err: errors.New("missing")}, `coupon 2: field "value": missing`},
		{"sheet row", &RecordError{Index: 1, Row: 4, Field: "value", Err: errors.New("missing")}, `coupon 1 (row 4): field "value": missing`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}
