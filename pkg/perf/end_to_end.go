package perf

import (
	"fmt"
	"kafkaperf/models"
	"kafkaperf/pkg/app/pretty_log"
	"kafkaperf/pkg/services"
	"strings"

	"github.com/pkg/errors"
)

// EndToEndLatency drives kafka.tools.TestEndToEndLatency. The tool has no
// single summary line; instead the whole stream is scanned for the
// "Avg latency:" and "Percentiles" marker lines.
type EndToEndLatency struct {
	Kafka      *services.Kafka
	Topic      string
	NumRecords int

	// ConsumerFetchMaxWait defaults to 100, Acks to 1.
	ConsumerFetchMaxWait int
	Acks                 int
}

func (e *EndToEndLatency) Name() string {
	return "EndToEndLatency"
}

func (e *EndToEndLatency) command() string {
	fetchMaxWait := e.ConsumerFetchMaxWait
	if fetchMaxWait == 0 {
		fetchMaxWait = 100
	}
	acks := e.Acks
	if acks == 0 {
		acks = 1
	}

	return fmt.Sprintf("%s/bin/kafka-run-class.sh kafka.tools.TestEndToEndLatency "+
		"%s %s %s %d %d %d",
		kafkaPath(), e.Kafka.BootstrapServers(), e.Kafka.ZkConnect(), e.Topic, e.NumRecords, fetchMaxWait, acks)
}

func (e *EndToEndLatency) Run(idx int, node Node) (models.Metrics, []models.Metrics, error) {
	cmd := e.command()
	pretty_log.Debug("End-to-end latency %d command: %s", idx, cmd)

	lines, err := node.Capture(cmd)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "end-to-end latency %d on %s", idx, node.Hostname())
	}

	result := models.Metrics{}
	for line := range lines {
		pretty_log.Debug("End-to-end latency %d: %s", idx, strings.TrimSpace(line))

		if strings.HasPrefix(line, "Avg latency:") {
			if value, err := tokenFloat(line, 2); err == nil {
				result[models.MetricLatencyAvgMs] = value
			}
		}
		if strings.HasPrefix(line, "Percentiles") {
			for _, p := range []struct {
				name string
				idx  int
			}{
				{models.MetricLatency50th, 3},
				{models.MetricLatency99th, 6},
				{models.MetricLatency999th, 9},
			} {
				if value, err := tokenFloat(line, p.idx); err == nil {
					result[p.name] = value
				}
			}
		}
	}

	if len(result) == 0 {
		return nil, nil, errors.Errorf("end-to-end latency %d on %s emitted no latency summary", idx, node.Hostname())
	}
	return result, nil, nil
}
