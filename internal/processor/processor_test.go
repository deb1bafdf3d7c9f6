package processor

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"coupon-analytics-go/internal/aggregator"
	"coupon-analytics-go/internal/errs"
	"coupon-analytics-go/internal/logger"
)

const scenario = `{"coupons": [
	{"promotion_type": "percent-off", "value": 10, "coupon_webshop_name": "A", "title": "sale sale", "description": "big"},
	{"promotion_type": "percent-off", "value": 20, "coupon_webshop_name": "B", "title": "sale now", "description": "deal"},
	{"promotion_type": "dollar-off", "value": 5, "coupon_webshop_name": "A", "title": "now", "description": "deal"}
]}`

type recordingObserver struct {
	runs    int
	coupons int
	lastErr error
}

func (o *recordingObserver) ObserveAnalysis(_ time.Duration, coupons int, err error) {
	o.runs++
	o.coupons = coupons
	o.lastErr = err
}

func writeSource(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "coupons.json")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestRun(t *testing.T) {
	obs := &recordingObserver{}
	p := New(writeSource(t, scenario), aggregator.Options{}, logger.Discard(), obs)

	res, err := p.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if res.Coupons != 3 || res.Report.TotalCoupons != 3 {
		t.Errorf("coupons = %d / %d, want 3", res.Coupons, res.Report.TotalCoupons)
	}
	if got := res.Report.NumberOfCouponsByType.Map()["percent-off"]; got != 2 {
		t.Errorf("percent-off = %d, want 2", got)
	}
	if obs.runs != 1 || obs.coupons != 3 || obs.lastErr != nil {
		t.Errorf("observer = %+v", obs)
	}
}

func TestRunReloadsEveryCall(t *testing.T) {
	path := writeSource(t, scenario)
	p := New(path, aggregator.Options{}, logger.Discard(), nil)

	first, err := p.Run(context.Background())
	if err != nil {
		t.Fatalf("first Run() error = %v", err)
	}
	if err := os.WriteFile(path, []byte(`{"coupons": []}`), 0o644); err != nil {
		t.Fatal(err)
	}
	second, err := p.Run(context.Background())
	if err != nil {
		t.Fatalf("second Run() error = %v", err)
	}
	if first.Coupons != 3 || second.Coupons != 0 {
		t.Errorf("coupons = %d then %d, want 3 then 0", first.Coupons, second.Coupons)
	}
}

func TestRunIdempotentOutput(t *testing.T) {
	p := New(writeSource(t, scenario), aggregator.Options{}, logger.Discard(), nil)
	var outputs [][]byte
	for i := 0; i < 2; i++ {
		res, err := p.Run(context.Background())
		if err != nil {
			t.Fatalf("Run() error = %v", err)
		}
		data, err := json.Marshal(res.Report)
		if err != nil {
			t.Fatal(err)
		}
		outputs = append(outputs, data)
	}
	if !bytes.Equal(outputs[0], outputs[1]) {
		t.Errorf("outputs differ:\n%s\n%s", outputs[0], outputs[1])
	}
}

func TestRunErrors(t *testing.T) {
	tests := []struct {
		name     string
		path     func(t *testing.T) string
		sentinel error
	}{
		{"missing file", func(t *testing.T) string { return filepath.Join(t.TempDir(), "gone.json") }, errs.ErrSourceUnavailable},
		{"malformed document", func(t *testing.T) string { return writeSource(t, `{"coupons": {}}`) }, errs.ErrMalformedSource},
		{"malformed record", func(t *testing.T) string {
			return writeSource(t, `{"coupons": [{"promotion_type": "percent-off", "value": "x",
				"coupon_webshop_name": "A", "title": "", "description": ""}]}`)
		}, errs.ErrMalformedRecord},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			obs := &recordingObserver{}
			p := New(tt.path(t), aggregator.Options{}, logger.Discard(), obs)
			res, err := p.Run(context.Background())
			if !errors.Is(err, tt.sentinel) {
				t.Errorf("Run() error = %v, want %v", err, tt.sentinel)
			}
			if res.Report.NumberOfCouponsByType != nil {
				t.Error("failed run must not return a partial report")
			}
			if obs.runs != 1 || obs.lastErr == nil {
				t.Errorf("observer = %+v, want one failed run", obs)
			}
		})
	}
}

func TestRunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	p := New(writeSource(t, scenario), aggregator.Options{}, logger.Discard(), nil)
	if _, err := p.Run(ctx); !errors.Is(err, errs.ErrTimeout) {
		t.Errorf("Run() error = %v, want ErrTimeout", err)
	}
}
