package main

import (
	"kafkaperf/pkg/app"
	"kafkaperf/pkg/app/pretty_log"
	"kafkaperf/pkg/benchmark"
	"kafkaperf/pkg/cluster"
	"kafkaperf/pkg/services"
	"log"
)

func main() {
	app.LoadConfig(nil)
	pretty_log.SetVerbose(app.Config.Verbose)

	suite := &benchmark.Suite{
		Cluster:  cluster.FromConfig(),
		Kafka:    services.KafkaFromConfig(),
		Rest:     services.RestProxyFromConfig(),
		Registry: services.SchemaRegistryFromConfig(),
		Hadoop:   services.HadoopFromConfig(),
	}

	err := benchmark.RunAll(suite.Definitions())
	if err != nil {
		log.Fatalln(err.Error())
	}
}
