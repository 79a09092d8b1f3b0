package perf

import (
	"fmt"
	"kafkaperf/models"
	"kafkaperf/pkg/app/pretty_log"
	"kafkaperf/pkg/services"
	"strings"

	"github.com/pkg/errors"
)

// ProducerPerf drives org.apache.kafka.clients.tools.ProducerPerformance on
// each node. With IntermediateStats enabled it also collects the per-interval
// stats lines the tool prints while running.
type ProducerPerf struct {
	Kafka      *services.Kafka
	Topic      string
	NumRecords int
	RecordSize int
	Throughput int
	Settings   Settings

	IntermediateStats bool
}

func (p *ProducerPerf) Name() string {
	return "ProducerPerformance"
}

func (p *ProducerPerf) command() string {
	cmd := fmt.Sprintf("%s/bin/kafka-run-class.sh org.apache.kafka.clients.tools.ProducerPerformance "+
		"%s %d %d %d bootstrap.servers=%s",
		kafkaPath(), p.Topic, p.NumRecords, p.RecordSize, p.Throughput, p.Kafka.BootstrapServers())
	return p.Settings.appendTo(cmd)
}

func (p *ProducerPerf) Run(idx int, node Node) (models.Metrics, []models.Metrics, error) {
	cmd := p.command()
	pretty_log.Debug("Producer performance %d command: %s", idx, cmd)

	lines, err := node.Capture(cmd)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "producer performance %d on %s", idx, node.Hostname())
	}

	var samples []models.Metrics
	var last string
	seen := false
	for line := range lines {
		pretty_log.Debug("Producer performance %d: %s", idx, strings.TrimSpace(line))

		if p.IntermediateStats {
			sample, serr := parseProducerStats(line)
			if serr == nil {
				samples = append(samples, sample)
			} else if !errors.Is(serr, ErrNotMetricsLine) {
				return nil, samples, serr
			}
			// Extraneous log lines between stats are expected; skip them.
		}

		last = line
		seen = true
	}

	if !seen {
		return nil, nil, errors.Errorf("producer performance %d on %s produced no output", idx, node.Hostname())
	}

	result, err := parseProducerStats(last)
	if err != nil {
		return nil, samples, errors.Wrapf(err, "bad last line %q", last)
	}
	return result, samples, nil
}
