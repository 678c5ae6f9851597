package profiler

import "time"

// ProfilerBuilderOption is a functional option for configuring a Profiler via NewProfiler.
type ProfilerBuilderOption func(*Profiler)

// WithInterval sets how often stats are reported. Non-positive values keep the default.
//
// Parameters:
//   - interval: the reporting interval
//
// Returns:
//   - ProfilerBuilderOption: option function to apply
func WithInterval(interval time.Duration) ProfilerBuilderOption {
	return func(p *Profiler) {
		if interval > 0 {
			p.updateInterval = interval
		}
	}
}

// WithClock replaces the time source.
//
// Parameters:
//   - now: a function returning the current time
//
// Returns:
//   - ProfilerBuilderOption: option function to apply
func WithClock(now func() time.Time) ProfilerBuilderOption {
	return func(p *Profiler) {
		if now != nil {
			p.now = now
		}
	}
}

// WithReporter replaces the log output with a custom sink.
//
// Parameters:
//   - report: a function receiving each Stats report
//
// Returns:
//   - ProfilerBuilderOption: option function to apply
func WithReporter(report func(Stats)) ProfilerBuilderOption {
	return func(p *Profiler) {
		if report != nil {
			p.report = report
		}
	}
}
