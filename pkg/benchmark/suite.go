package benchmark

import (
	"context"
	"kafkaperf/models"
	"kafkaperf/pkg/app"
	"kafkaperf/pkg/app/pretty_log"
	"kafkaperf/pkg/cluster"
	"kafkaperf/pkg/perf"
	"kafkaperf/pkg/services"
	"kafkaperf/utils"
	"time"
)

// Suite wires the benchmark variants to the cluster and the collaborator
// services.
type Suite struct {
	Cluster  *cluster.Cluster
	Kafka    *services.Kafka
	Rest     *services.RestProxy
	Registry *services.SchemaRegistry
	Hadoop   *services.Hadoop
}

func (s *Suite) Definitions() []Definition {
	return []Definition{
		{
			Name: "producer-throughput",
			Func: s.ProducerThroughput,
		},
		{
			Name: "consumer-throughput",
			Func: s.ConsumerThroughput,
		},
		{
			Name: "end-to-end-latency",
			Func: s.EndToEndLatency,
		},
		{
			Name:     "rest-producer-throughput",
			Func:     s.RestProducerThroughput,
			Disabled: true,
		},
		{
			Name:     "rest-consumer-throughput",
			Func:     s.RestConsumerThroughput,
			Disabled: true,
		},
		{
			Name:     "schema-registry-throughput",
			Func:     s.SchemaRegistryThroughput,
			Disabled: true,
		},
	}
}

func (s *Suite) ensureTopic(topic string) error {
	id := pretty_log.BeginTask("Ensuring topic %s exists", topic)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.Kafka.EnsureTopic(ctx, topic, 6, 3); err != nil {
		pretty_log.FailTask(id)
		return err
	}

	pretty_log.CompleteTask(id)
	return nil
}

func (s *Suite) ProducerThroughput() (*models.RunResult, error) {
	topic := "perf-producer"
	if err := s.ensureTopic(topic); err != nil {
		return nil, err
	}

	return execute("producer-throughput", s.Cluster, app.Config.Benchmarks.Nodes, &perf.ProducerPerf{
		Kafka:             s.Kafka,
		Topic:             topic,
		NumRecords:        app.Config.Benchmarks.NumRecords,
		RecordSize:        app.Config.Benchmarks.RecordSize,
		Throughput:        app.Config.Benchmarks.Throughput,
		Settings:          perf.Settings{"acks": "1"},
		IntermediateStats: true,
	})
}

func (s *Suite) ConsumerThroughput() (*models.RunResult, error) {
	topic := "perf-producer"

	return execute("consumer-throughput", s.Cluster, app.Config.Benchmarks.Nodes, &perf.ConsumerPerf{
		Kafka:      s.Kafka,
		Topic:      topic,
		NumRecords: app.Config.Benchmarks.NumRecords,
		Throughput: app.Config.Benchmarks.Throughput,
		Threads:    1,
	})
}

func (s *Suite) EndToEndLatency() (*models.RunResult, error) {
	topic := utils.RandomName("perf-latency")
	if err := s.ensureTopic(topic); err != nil {
		return nil, err
	}

	return execute("end-to-end-latency", s.Cluster, 1, &perf.EndToEndLatency{
		Kafka:      s.Kafka,
		Topic:      topic,
		NumRecords: 10000,
	})
}

func (s *Suite) RestProducerThroughput() (*models.RunResult, error) {
	topic := "perf-rest-producer"
	if err := s.ensureTopic(topic); err != nil {
		return nil, err
	}

	return execute("rest-producer-throughput", s.Cluster, app.Config.Benchmarks.Nodes, &perf.RestProducerPerf{
		Rest:       s.Rest,
		Topic:      topic,
		NumRecords: app.Config.Benchmarks.NumRecords,
		RecordSize: app.Config.Benchmarks.RecordSize,
		BatchSize:  200,
		Throughput: app.Config.Benchmarks.Throughput,
	})
}

func (s *Suite) RestConsumerThroughput() (*models.RunResult, error) {
	topic := "perf-rest-producer"

	return execute("rest-consumer-throughput", s.Cluster, app.Config.Benchmarks.Nodes, &perf.RestConsumerPerf{
		Rest:       s.Rest,
		Topic:      topic,
		NumRecords: app.Config.Benchmarks.NumRecords,
		Throughput: app.Config.Benchmarks.Throughput,
	})
}

func (s *Suite) SchemaRegistryThroughput() (*models.RunResult, error) {
	return execute("schema-registry-throughput", s.Cluster, 1, &perf.SchemaRegistryPerf{
		Registry:      s.Registry,
		Subject:       utils.RandomName("perf-subject"),
		NumSchemas:    10000,
		SchemasPerSec: 1000,
	})
}
