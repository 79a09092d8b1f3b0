package perf

import (
	"kafkaperf/pkg/services"
	"testing"

	"github.com/stretchr/testify/assert"
)

func testKafka() *services.Kafka {
	return services.NewKafka("worker1:9092,worker2:9092", "zk1:2181")
}

func TestProducerPerfCommand(t *testing.T) {
	p := &ProducerPerf{
		Kafka:      testKafka(),
		Topic:      "test-topic",
		NumRecords: 1000,
		RecordSize: 100,
		Throughput: 10000,
	}

	assert.Equal(t,
		"/opt/kafka/bin/kafka-run-class.sh org.apache.kafka.clients.tools.ProducerPerformance "+
			"test-topic 1000 100 10000 bootstrap.servers=worker1:9092,worker2:9092",
		p.command())

	t.Run("SettingsAppended", func(t *testing.T) {
		p.Settings = Settings{"compression.type": "snappy", "acks": "1"}
		assert.Equal(t,
			"/opt/kafka/bin/kafka-run-class.sh org.apache.kafka.clients.tools.ProducerPerformance "+
				"test-topic 1000 100 10000 bootstrap.servers=worker1:9092,worker2:9092 "+
				"acks=1 compression.type=snappy",
			p.command())
	})
}

func TestRestProducerPerfCommand(t *testing.T) {
	p := &RestProducerPerf{
		Rest:       services.NewRestProxy("http://rest:8082"),
		Topic:      "test-topic",
		NumRecords: 1000,
		RecordSize: 100,
		BatchSize:  200,
		Throughput: 5000,
	}

	assert.Equal(t,
		"/opt/kafka-rest/bin/kafka-rest-run-class io.confluent.kafkarest.tools.ProducerPerformance "+
			"'http://rest:8082' test-topic 1000 100 200 5000",
		p.command())

	t.Run("NonPositiveThroughputBecomesNegativeBatchSize", func(t *testing.T) {
		p.Throughput = 0
		assert.Contains(t, p.command(), " 200 -200")

		p.Throughput = -1
		assert.Contains(t, p.command(), " 200 -200")
	})
}

func TestConsumerPerfCommand(t *testing.T) {
	c := &ConsumerPerf{
		Kafka:      testKafka(),
		Topic:      "test-topic",
		NumRecords: 1000,
		Throughput: 10000,
		Threads:    1,
	}

	assert.Equal(t,
		"/opt/kafka/bin/kafka-consumer-perf-test.sh "+
			"--topic test-topic --messages 1000 --zookeeper zk1:2181",
		c.command())
}

func TestRestConsumerPerfCommand(t *testing.T) {
	c := &RestConsumerPerf{
		Rest:       services.NewRestProxy("http://rest:8082"),
		Topic:      "test-topic",
		NumRecords: 1000,
		Throughput: 5000,
	}

	assert.Equal(t,
		"/opt/kafka-rest/bin/kafka-rest-run-class io.confluent.kafkarest.tools.ConsumerPerformance "+
			"'http://rest:8082' test-topic 1000 5000",
		c.command())

	t.Run("NonPositiveThroughputBecomesMinusHundred", func(t *testing.T) {
		c.Throughput = 0
		assert.Contains(t, c.command(), " 1000 -100")

		c.Throughput = -42
		assert.Contains(t, c.command(), " 1000 -100")
	})
}

func TestSchemaRegistryPerfCommand(t *testing.T) {
	s := &SchemaRegistryPerf{
		Registry:      services.NewSchemaRegistry("http://registry:8081"),
		Subject:       "test-subject",
		NumSchemas:    10000,
		SchemasPerSec: 1000,
	}

	assert.Equal(t,
		"/opt/schema-registry/bin/schema-registry-run-class io.confluent.kafka.schemaregistry.tools.SchemaRegistryPerformance "+
			"'http://registry:8081' test-subject 10000 1000",
		s.command())
}

func TestEndToEndLatencyCommand(t *testing.T) {
	e := &EndToEndLatency{
		Kafka:      testKafka(),
		Topic:      "test-topic",
		NumRecords: 10000,
	}

	// fetch max wait defaults to 100, acks to 1
	assert.Equal(t,
		"/opt/kafka/bin/kafka-run-class.sh kafka.tools.TestEndToEndLatency "+
			"worker1:9092,worker2:9092 zk1:2181 test-topic 10000 100 1",
		e.command())

	t.Run("ExplicitValues", func(t *testing.T) {
		e.ConsumerFetchMaxWait = 500
		e.Acks = -1
		assert.Equal(t,
			"/opt/kafka/bin/kafka-run-class.sh kafka.tools.TestEndToEndLatency "+
				"worker1:9092,worker2:9092 zk1:2181 test-topic 10000 500 -1",
			e.command())
	})
}

func TestHadoopPerfCommand(t *testing.T) {
	h := &HadoopPerf{Hadoop: services.NewHadoop("/opt/hadoop-cdh", false)}

	assert.Equal(t,
		"HADOOP_CONF_DIR=/mnt /opt/hadoop-cdh/bin/hadoop jar "+
			"/opt/hadoop-cdh/share/hadoop/mapreduce1/hadoop-examples-2.5.0-mr1-cdh5.3.0.jar pi 2 10",
		h.command())

	t.Run("YarnExampleJar", func(t *testing.T) {
		h.Hadoop = services.NewHadoop("/opt/hadoop-cdh", true)
		assert.Contains(t, h.command(), "share/hadoop/mapreduce/hadoop-mapreduce-examples-2.5.0-cdh5.3.0.jar")
	})
}

func TestCamusPerfCommands(t *testing.T) {
	c := &CamusPerf{
		Kafka:    testKafka(),
		Hadoop:   services.NewHadoop("/opt/hadoop-cdh", true),
		Registry: services.NewSchemaRegistry("http://registry:8081"),
	}

	assert.Equal(t,
		"java -jar /vagrant/avro-producer/avro-producer-1.0-SNAPSHOT-jar-with-dependencies.jar "+
			"testAvro worker1:9092,worker2:9092 http://registry:8081 10",
		c.produceCommand())

	assert.Equal(t,
		"HADOOP_CONF_DIR=/mnt /opt/hadoop-cdh/bin/hadoop jar "+
			"/opt/camus/camus-example/target/camus-example-0.1.0-SNAPSHOT-shaded.jar "+
			"com.linkedin.camus.etl.kafka.CamusJob "+
			"-D schema.registry.url=http://registry:8081 -P /mnt/camus.properties "+
			"-Dlog4j.configuration=file:/opt/camus/camus-example/log4j.xml",
		c.jobCommand())

	t.Run("PropertiesTemplate", func(t *testing.T) {
		props := c.propertiesFile()
		assert.Contains(t, props, "kafka.brokers=worker1:9092,worker2:9092")
		assert.Contains(t, props, "kafka.whitelist.topics=testAvro")
	})
}
