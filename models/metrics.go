package models

import "time"

// Metric names shared by all benchmark tools.
const (
	MetricRecords       = "records"
	MetricRecordsPerSec = "records_per_sec"
	MetricMBPerSec      = "mbps"
	MetricLatencyAvgMs  = "latency_avg_ms"
	MetricLatencyMaxMs  = "latency_max_ms"
	MetricLatency50th   = "latency_50th_ms"
	MetricLatency95th   = "latency_95th_ms"
	MetricLatency99th   = "latency_99th_ms"
	MetricLatency999th  = "latency_999th_ms"

	// Derived fields so producer-style and consumer-style records can be
	// compared with each other.
	MetricTotalMB       = "total_mb"
	MetricRateMBPerSec  = "rate_mbps"
	MetricRateMsgPerSec = "rate_mps"
)

// Metrics maps a metric name to its value. A record is immutable once a
// worker has produced it.
type Metrics map[string]float64

// NodeResult is the outcome of one benchmark worker on one node.
// Metrics is empty when the tool is log-only or the node failed.
type NodeResult struct {
	Hostname string    `json:"hostname"`
	Metrics  Metrics   `json:"metrics,omitempty"`
	Samples  []Metrics `json:"samples,omitempty"`
	Error    string    `json:"error,omitempty"`
}

type RunResult struct {
	Name     string       `json:"name"`
	Started  time.Time    `json:"started"`
	Finished time.Time    `json:"finished"`
	Nodes    []NodeResult `json:"nodes"`
}
