package perf

import (
	"fmt"
	"kafkaperf/models"
	"kafkaperf/pkg/services"

	"github.com/pkg/errors"
)

// RestProducerPerf drives io.confluent.kafkarest.tools.ProducerPerformance
// against the REST proxy.
type RestProducerPerf struct {
	Rest       *services.RestProxy
	Topic      string
	NumRecords int
	RecordSize int
	BatchSize  int
	Throughput int
	Settings   Settings
}

func (p *RestProducerPerf) Name() string {
	return "RestProducerPerformance"
}

func (p *RestProducerPerf) command() string {
	// The tool matches the requested throughput against its batching, so an
	// unlimited (non-positive) throughput must be passed as -batchSize.
	throughput := p.Throughput
	if throughput <= 0 {
		throughput = -p.BatchSize
	}

	cmd := fmt.Sprintf("%s/bin/kafka-rest-run-class io.confluent.kafkarest.tools.ProducerPerformance "+
		"'%s' %s %d %d %d %d",
		restPath(), p.Rest.URL(), p.Topic, p.NumRecords, p.RecordSize, p.BatchSize, throughput)
	return p.Settings.appendTo(cmd)
}

func (p *RestProducerPerf) Run(idx int, node Node) (models.Metrics, []models.Metrics, error) {
	last, err := runToLastLine("REST producer performance", idx, node, p.command())
	if err != nil {
		return nil, nil, err
	}

	result, err := parseProducerStats(last)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "bad last line %q", last)
	}
	return result, nil, nil
}
