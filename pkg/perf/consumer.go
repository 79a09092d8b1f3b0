package perf

import (
	"fmt"
	"kafkaperf/models"
	"kafkaperf/pkg/services"

	"github.com/pkg/errors"
)

// ConsumerPerf drives kafka-consumer-perf-test.sh on each node. Throughput
// and Threads are part of the run configuration but the tool takes neither
// on its command line.
type ConsumerPerf struct {
	Kafka      *services.Kafka
	Topic      string
	NumRecords int
	Throughput int
	Threads    int
	Settings   Settings
}

func (c *ConsumerPerf) Name() string {
	return "ConsumerPerformance"
}

func (c *ConsumerPerf) command() string {
	cmd := fmt.Sprintf("%s/bin/kafka-consumer-perf-test.sh "+
		"--topic %s --messages %d --zookeeper %s",
		kafkaPath(), c.Topic, c.NumRecords, c.Kafka.ZkConnect())
	return c.Settings.appendTo(cmd)
}

func (c *ConsumerPerf) Run(idx int, node Node) (models.Metrics, []models.Metrics, error) {
	last, err := runToLastLine("Consumer performance", idx, node, c.command())
	if err != nil {
		return nil, nil, err
	}

	result, err := parseConsumerStats(last)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "bad last line %q", last)
	}
	return result, nil, nil
}
