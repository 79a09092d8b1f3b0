package perf

import (
	"fmt"
	"kafkaperf/models"
	"kafkaperf/pkg/services"

	"github.com/pkg/errors"
)

// RestConsumerPerf drives io.confluent.kafkarest.tools.ConsumerPerformance
// against the REST proxy.
type RestConsumerPerf struct {
	Rest       *services.RestProxy
	Topic      string
	NumRecords int
	Throughput int
	Settings   Settings
}

func (c *RestConsumerPerf) Name() string {
	return "RestConsumerPerformance"
}

func (c *RestConsumerPerf) command() string {
	// An unlimited (non-positive) throughput must be at least as large as
	// the messages returned per request, currently 100.
	throughput := c.Throughput
	if throughput <= 0 {
		throughput = -100
	}

	cmd := fmt.Sprintf("%s/bin/kafka-rest-run-class io.confluent.kafkarest.tools.ConsumerPerformance "+
		"'%s' %s %d %d",
		restPath(), c.Rest.URL(), c.Topic, c.NumRecords, throughput)
	return c.Settings.appendTo(cmd)
}

func (c *RestConsumerPerf) Run(idx int, node Node) (models.Metrics, []models.Metrics, error) {
	last, err := runToLastLine("REST consumer performance", idx, node, c.command())
	if err != nil {
		return nil, nil, err
	}

	result, err := ParseSummary(last)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "bad last line %q", last)
	}
	return result, nil, nil
}
