// internal/processor/processor.go
package processor

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"coupon-analytics-go/internal/aggregator"
	"coupon-analytics-go/internal/dataset"
	"coupon-analytics-go/internal/errs"
	"coupon-analytics-go/internal/logger"
	"coupon-analytics-go/internal/types"
)

// Result is one full analysis run.
type Result struct {
	Report     types.Report
	Coupons    int
	DurationMs int64
	Duration   time.Duration
}

// Observer is notified after every run, successful or not.
type Observer interface {
	ObserveAnalysis(duration time.Duration, coupons int, err error)
}

type Processor struct {
	path     string
	opts     aggregator.Options
	log      *logger.Logger
	observer Observer
}

func New(path string, opts aggregator.Options, log *logger.Logger, observer Observer) *Processor {
	return &Processor{
		path:     path,
		opts:     opts,
		log:      log.Component("processor"),
		observer: observer,
	}
}

func (p *Processor) SourcePath() string { return p.path }

// Run reloads the source and recomputes the report. Nothing is kept between
// runs; any failure aborts the run without a partial report.
func (p *Processor) Run(ctx context.Context) (Result, error) {
	start := time.Now()
	log := p.log.WithField("path", p.path)

	res, err := p.run(ctx)
	res.Duration = time.Since(start)
	res.DurationMs = res.Duration.Milliseconds()
	if p.observer != nil {
		p.observer.ObserveAnalysis(res.Duration, res.Coupons, err)
	}
	if err != nil {
		log.WithField("error", err.Error()).Warn("analysis failed")
		return Result{}, err
	}

	log.WithFields(logrus.Fields{
		"coupons":     res.Coupons,
		"types":       len(res.Report.NumberOfCouponsByType),
		"duration_ms": res.DurationMs,
	}).Info("analysis complete")
	return res, nil
}

func (p *Processor) run(ctx context.Context) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, fmt.Errorf("before load: %w: %w", errs.ErrTimeout, err)
	}
	coupons, err := dataset.Load(p.path)
	if err != nil {
		return Result{}, fmt.Errorf("load coupons: %w", err)
	}
	p.log.WithField("coupons", len(coupons)).Debug("coupons loaded")

	if err := ctx.Err(); err != nil {
		return Result{Coupons: len(coupons)}, fmt.Errorf("after load: %w: %w", errs.ErrTimeout, err)
	}
	return Result{
		Report:  aggregator.Aggregate(coupons, p.opts),
		Coupons: len(coupons),
	}, nil
}
