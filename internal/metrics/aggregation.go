package metrics

import (
	"sort"
	"time"
)

// Summary provides a summary of metrics for a filter.
type Summary struct {
	Count          int           `json:"count"`
	SuccessCount   int           `json:"success_count"`
	ErrorCount     int           `json:"error_count"`
	TotalTime      time.Duration `json:"total_time"`
	AvgTimeSeconds float64       `json:"avg_time_seconds"`
	AvgMatched     float64       `json:"avg_matched"`
}

// GetSummary returns a summary of metrics matching the filter.
func (r *Recorder) GetSummary(f Filter) *Summary {
	metrics := r.List(f, 0)

	s := &Summary{Count: len(metrics)}
	var matched int
	for _, m := range metrics {
		s.TotalTime += time.Duration(m.TotalSeconds * float64(time.Second))
		matched += m.Matched
		if m.Success {
			s.SuccessCount++
		} else {
			s.ErrorCount++
		}
	}

	if s.Count > 0 {
		s.AvgTimeSeconds = s.TotalTime.Seconds() / float64(s.Count)
		s.AvgMatched = float64(matched) / float64(s.Count)
	}
	return s
}

// DetailedStats adds latency percentiles and error breakdown to a Summary.
type DetailedStats struct {
	Summary

	// Latency percentiles (seconds)
	LatencyP50 float64 `json:"latency_p50"`
	LatencyP95 float64 `json:"latency_p95"`
	LatencyP99 float64 `json:"latency_p99"`
	LatencyMin float64 `json:"latency_min"`
	LatencyMax float64 `json:"latency_max"`

	Errors map[string]int `json:"errors,omitempty"`
}

// GetDetailedStats returns statistics including latency percentiles.
func (r *Recorder) GetDetailedStats(f Filter) *DetailedStats {
	stats := &DetailedStats{Summary: *r.GetSummary(f)}
	metrics := r.List(f, 0)
	if len(metrics) == 0 {
		return stats
	}

	latencies := make([]float64, 0, len(metrics))
	for _, m := range metrics {
		latencies = append(latencies, m.TotalSeconds)
		if m.ErrorType != "" {
			if stats.Errors == nil {
				stats.Errors = make(map[string]int)
			}
			stats.Errors[m.ErrorType]++
		}
	}

	sort.Float64s(latencies)
	stats.LatencyMin = latencies[0]
	stats.LatencyMax = latencies[len(latencies)-1]
	stats.LatencyP50 = percentile(latencies, 50)
	stats.LatencyP95 = percentile(latencies, 95)
	stats.LatencyP99 = percentile(latencies, 99)
	return stats
}

// OperationStats returns detailed stats grouped by operation.
func (r *Recorder) OperationStats() map[string]*DetailedStats {
	ops := make(map[string]bool)
	for _, m := range r.List(Filter{}, 0) {
		ops[m.Operation] = true
	}
	out := make(map[string]*DetailedStats, len(ops))
	for op := range ops {
		out[op] = r.GetDetailedStats(Filter{Operation: op})
	}
	return out
}

// percentile calculates the p-th percentile from a sorted slice of values.
func percentile(sorted []float64, p float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	if len(sorted) == 1 {
		return sorted[0]
	}

	// Interpolate between floor and ceil indices
	idx := (p / 100.0) * float64(len(sorted)-1)
	lower := int(idx)
	upper := lower + 1
	if upper >= len(sorted) {
		return sorted[len(sorted)-1]
	}
	weight := idx - float64(lower)
	return sorted[lower]*(1-weight) + sorted[upper]*weight
}
