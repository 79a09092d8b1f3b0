package perf

import (
	"fmt"
	"kafkaperf/models"
	"kafkaperf/pkg/services"
)

const (
	camusPath       = "/opt/camus/camus-example/"
	camusJar        = "camus-example-0.1.0-SNAPSHOT-shaded.jar"
	camusMain       = "com.linkedin.camus.etl.kafka.CamusJob"
	camusProperties = "/mnt/camus.properties"

	avroProducerPath = "/vagrant/avro-producer"
	avroProducerJar  = "avro-producer-1.0-SNAPSHOT-jar-with-dependencies.jar"
)

const camusPropertiesTemplate = `camus.job.name=Camus Job
etl.destination.path=/camus/topics
etl.execution.base.path=/camus/exec
etl.execution.history.path=/camus/exec/history
kafka.brokers=%s
kafka.whitelist.topics=%s
camus.message.timestamp.field=time
camus.message.timestamp.format=unix_milliseconds
etl.record.writer.provider.class=com.linkedin.camus.etl.kafka.common.AvroRecordWriterProvider
`

// CamusPerf is the multi-stage Kafka-to-HDFS ETL benchmark: seed the topic
// with avro records, distribute the Hadoop confs, write the templated Camus
// properties file on the node, then run the Camus job. Log-only.
type CamusPerf struct {
	Kafka    *services.Kafka
	Hadoop   *services.Hadoop
	Registry *services.SchemaRegistry
	Settings Settings

	// Topic defaults to "testAvro", NumMessages to 10.
	Topic       string
	NumMessages int
}

func (c *CamusPerf) Name() string {
	return "CamusPerformance"
}

func (c *CamusPerf) topic() string {
	if c.Topic == "" {
		return "testAvro"
	}
	return c.Topic
}

func (c *CamusPerf) produceCommand() string {
	numMessages := c.NumMessages
	if numMessages == 0 {
		numMessages = 10
	}

	return fmt.Sprintf("java -jar %s/%s %s %s %s %d",
		avroProducerPath, avroProducerJar, c.topic(), c.Kafka.BootstrapServers(), c.Registry.URL(), numMessages)
}

func (c *CamusPerf) jobCommand() string {
	cmd := fmt.Sprintf("HADOOP_CONF_DIR=%s %s/bin/hadoop jar %starget/%s %s "+
		"-D schema.registry.url=%s -P %s -Dlog4j.configuration=file:%slog4j.xml",
		services.ConfDir, c.Hadoop.Path(), camusPath, camusJar, camusMain,
		c.Registry.URL(), camusProperties, camusPath)
	return c.Settings.appendTo(cmd)
}

func (c *CamusPerf) propertiesFile() string {
	return fmt.Sprintf(camusPropertiesTemplate, c.Kafka.BootstrapServers(), c.topic())
}

func (c *CamusPerf) Run(idx int, node Node) (models.Metrics, []models.Metrics, error) {
	if err := drain("Avro producer", idx, node, c.produceCommand()); err != nil {
		return nil, nil, err
	}

	if err := c.Hadoop.DistributeConfigs(node); err != nil {
		return nil, nil, err
	}

	if err := node.CreateFile(camusProperties, c.propertiesFile()); err != nil {
		return nil, nil, err
	}

	if err := drain("Camus performance", idx, node, c.jobCommand()); err != nil {
		return nil, nil, err
	}
	return nil, nil, nil
}
