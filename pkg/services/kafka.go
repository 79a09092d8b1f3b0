package services

import (
	"context"
	"kafkaperf/pkg/app"
	"kafkaperf/utils"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/segmentio/kafka-go"
)

// Kafka points the benchmark tools at an existing Kafka cluster. The cluster
// itself is managed elsewhere; this only carries its addresses and can create
// topics ahead of a run.
type Kafka struct {
	bootstrapServers string
	zkConnect        string
}

func NewKafka(bootstrapServers string, zkConnect string) *Kafka {
	return &Kafka{
		bootstrapServers: bootstrapServers,
		zkConnect:        zkConnect,
	}
}

func KafkaFromConfig() *Kafka {
	return NewKafka(app.Config.Kafka.BootstrapServers, app.Config.Kafka.ZookeeperConnect)
}

func (k *Kafka) BootstrapServers() string {
	return k.bootstrapServers
}

func (k *Kafka) ZkConnect() string {
	return k.zkConnect
}

// EnsureTopic creates the topic if it does not exist yet
func (k *Kafka) EnsureTopic(ctx context.Context, topic string, partitions int, replicationFactor int) error {
	dialer := &kafka.Dialer{Timeout: 10 * time.Second}

	conn, err := dialer.DialContext(ctx, "tcp", utils.FirstAddr(k.bootstrapServers))
	if err != nil {
		return errors.Wrapf(err, "dial kafka at %s", k.bootstrapServers)
	}
	defer func(conn *kafka.Conn) {
		_ = conn.Close()
	}(conn)

	controller, err := conn.Controller()
	if err != nil {
		return errors.Wrap(err, "look up kafka controller")
	}

	controllerConn, err := dialer.DialContext(ctx, "tcp", net.JoinHostPort(controller.Host, strconv.Itoa(controller.Port)))
	if err != nil {
		return errors.Wrap(err, "dial kafka controller")
	}
	defer func(conn *kafka.Conn) {
		_ = conn.Close()
	}(controllerConn)

	err = controllerConn.CreateTopics(kafka.TopicConfig{
		Topic:             topic,
		NumPartitions:     partitions,
		ReplicationFactor: replicationFactor,
	})
	if err != nil && !strings.Contains(err.Error(), "already exists") {
		return errors.Wrapf(err, "create topic %s", topic)
	}

	return nil
}
