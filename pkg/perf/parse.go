package perf

import (
	"fmt"
	"kafkaperf/models"
	"sort"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// ErrNotMetricsLine marks a line that does not have the expected metrics
// shape. Benchmark tools interleave plain log lines with their output, so
// callers attempt parsing only on the designated last line or marker lines
// and treat this error as "skip".
var ErrNotMetricsLine = errors.New("not a metrics line")

// Settings are extra key=value tokens appended verbatim to a tool
// invocation. Keys are appended in sorted order so commands are
// deterministic.
type Settings map[string]string

func (s Settings) appendTo(cmd string) string {
	keys := make([]string, 0, len(s))
	for key := range s {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		cmd += fmt.Sprintf(" %s=%s", key, s[key])
	}
	return cmd
}

func firstToken(field string) (string, error) {
	tokens := strings.Fields(field)
	if len(tokens) == 0 {
		return "", errors.Wrap(ErrNotMetricsLine, "empty field")
	}
	return tokens[0], nil
}

func firstFloat(field string) (float64, error) {
	token, err := firstToken(field)
	if err != nil {
		return 0, err
	}

	value, err := strconv.ParseFloat(token, 64)
	if err != nil {
		return 0, errors.Wrapf(ErrNotMetricsLine, "%q is not numeric", token)
	}
	return value, nil
}

// parenFloat extracts the leading float of the first parenthesized group,
// e.g. "500.0 records/sec (2.5 MB/sec)" -> 2.5
func parenFloat(field string) (float64, error) {
	_, rest, ok := strings.Cut(field, "(")
	if !ok {
		return 0, errors.Wrapf(ErrNotMetricsLine, "no parenthesized value in %q", field)
	}
	return firstFloat(rest)
}

// parseProducerStats parses the comma-separated summary shape shared by the
// producer-style tools into the nine canonical fields:
//
//	1000 records, 500.0 records/sec (2.5 MB/sec), 10.0 ms avg, 50.0 ms max,
//	8.0 ms 50th, 20.0 ms 95th, 30.0 ms 99th, 40.0 ms 99.9th
func parseProducerStats(line string) (models.Metrics, error) {
	parts := strings.Split(line, ",")
	if len(parts) < 8 {
		return nil, errors.Wrapf(ErrNotMetricsLine, "expected at least 8 comma-separated fields, got %d", len(parts))
	}

	recordsToken, err := firstToken(parts[0])
	if err != nil {
		return nil, err
	}
	records, err := strconv.Atoi(recordsToken)
	if err != nil {
		return nil, errors.Wrapf(ErrNotMetricsLine, "%q is not a record count", recordsToken)
	}

	recordsPerSec, err := firstFloat(parts[1])
	if err != nil {
		return nil, err
	}

	mbps, err := parenFloat(parts[1])
	if err != nil {
		return nil, err
	}

	m := models.Metrics{
		models.MetricRecords:       float64(records),
		models.MetricRecordsPerSec: recordsPerSec,
		models.MetricMBPerSec:      mbps,
	}

	latencies := []string{
		models.MetricLatencyAvgMs,
		models.MetricLatencyMaxMs,
		models.MetricLatency50th,
		models.MetricLatency95th,
		models.MetricLatency99th,
		models.MetricLatency999th,
	}
	for i, name := range latencies {
		value, err := firstFloat(parts[2+i])
		if err != nil {
			return nil, err
		}
		m[name] = value
	}

	return m, nil
}

// ParseSummary parses a producer-style summary line and adds the derived
// fields (total_mb, rate_mbps, rate_mps) that make the record comparable
// with consumer-style results.
func ParseSummary(line string) (models.Metrics, error) {
	m, err := parseProducerStats(line)
	if err != nil {
		return nil, err
	}

	m[models.MetricTotalMB] = m[models.MetricMBPerSec] * m[models.MetricRecords] / m[models.MetricRecordsPerSec]
	m[models.MetricRateMBPerSec] = m[models.MetricMBPerSec]
	m[models.MetricRateMsgPerSec] = m[models.MetricRecordsPerSec]

	return m, nil
}

// parseConsumerStats parses the consumer perf tool's summary row. The tool
// emits a fixed CSV row where field 3 is total MB consumed, field 4 is MB/s
// and field 6 is messages/s.
func parseConsumerStats(line string) (models.Metrics, error) {
	parts := strings.Split(line, ",")
	if len(parts) < 7 {
		return nil, errors.Wrapf(ErrNotMetricsLine, "expected at least 7 comma-separated fields, got %d", len(parts))
	}

	m := models.Metrics{}
	for _, field := range []struct {
		name string
		idx  int
	}{
		{models.MetricTotalMB, 3},
		{models.MetricMBPerSec, 4},
		{models.MetricRecordsPerSec, 6},
	} {
		value, err := strconv.ParseFloat(strings.TrimSpace(parts[field.idx]), 64)
		if err != nil {
			return nil, errors.Wrapf(ErrNotMetricsLine, "field %d %q is not numeric", field.idx, parts[field.idx])
		}
		m[field.name] = value
	}

	return m, nil
}

// tokenFloat parses whitespace-separated token idx of line as a float,
// tolerating trailing "," and "ms" decorations ("10.0ms," -> 10.0)
func tokenFloat(line string, idx int) (float64, error) {
	fields := strings.Fields(line)
	if len(fields) <= idx {
		return 0, errors.Wrapf(ErrNotMetricsLine, "no token %d in %q", idx, line)
	}

	token := strings.TrimSuffix(fields[idx], ",")
	token = strings.TrimSuffix(token, "ms")

	value, err := strconv.ParseFloat(token, 64)
	if err != nil {
		return 0, errors.Wrapf(ErrNotMetricsLine, "%q is not numeric", fields[idx])
	}
	return value, nil
}
