package colgo

import "time"

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems like Prometheus.
//
// Example Prometheus integration:
//
//	type PrometheusCollector struct {
//	    sortCounter   prometheus.Counter
//	    sortHistogram prometheus.Histogram
//	}
//
//	func (p *PrometheusCollector) RecordSort(rows int, duration time.Duration, err error) {
//	    p.sortCounter.Inc()
//	    // ... record error state, duration, etc.
//	}
type MetricsCollector interface {
	// RecordSort is called after each table sort.
	// rows is the number of rows sorted, err is nil if successful.
	RecordSort(rows int, duration time.Duration, err error)

	// RecordGroupBy is called after each group-by.
	// groups is the number of distinct keys produced.
	RecordGroupBy(rows, groups int, duration time.Duration, err error)

	// RecordFilter is called after each table filter.
	// selected is the number of rows kept.
	RecordFilter(rows, selected int, duration time.Duration, err error)

	// RecordAggregate is called after each aggregation.
	RecordAggregate(duration time.Duration, err error)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordSort(int, time.Duration, error)         {}
func (NoopMetricsCollector) RecordGroupBy(int, int, time.Duration, error) {}
func (NoopMetricsCollector) RecordFilter(int, int, time.Duration, error)  {}
func (NoopMetricsCollector) RecordAggregate(time.Duration, error)         {}
