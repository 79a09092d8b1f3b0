package app

import (
	"gopkg.in/yaml.v3"
	"log"
	"os"
)

type ConfigType struct {
	Cluster struct {
		// Hosts are handed out to benchmark runs in order by the allocator
		Hosts []string `yaml:"hosts"`
		// Username is the SSH username for all cluster hosts
		Username string `yaml:"username"`
		// Password is the SSH password for all cluster hosts
		Password string `yaml:"password"`
	} `yaml:"cluster"`

	Kafka struct {
		BootstrapServers string `yaml:"bootstrapServers"`
		ZookeeperConnect string `yaml:"zookeeperConnect"`
		// Path is the Kafka install directory on the cluster hosts
		Path string `yaml:"path"`
	} `yaml:"kafka"`

	RestProxy struct {
		URL  string `yaml:"url"`
		Path string `yaml:"path"`
	} `yaml:"restProxy"`

	SchemaRegistry struct {
		URL  string `yaml:"url"`
		Path string `yaml:"path"`
	} `yaml:"schemaRegistry"`

	Hadoop struct {
		Path string `yaml:"path"`
		// UseYarn selects the YARN confs instead of MR1
		UseYarn bool `yaml:"useYarn"`
	} `yaml:"hadoop"`

	Benchmarks struct {
		// Nodes is how many cluster hosts each benchmark run drives
		Nodes      int `yaml:"nodes"`
		NumRecords int `yaml:"numRecords"`
		RecordSize int `yaml:"recordSize"`
		// Throughput <= 0 means unlimited
		Throughput int `yaml:"throughput"`
	} `yaml:"benchmarks"`

	OutputDir string `yaml:"outputDir"`
	Verbose   bool   `yaml:"verbose"`
}

var Config ConfigType

// LoadConfig loads the configuration from the given path
// If the path is empty, it will load the configuration from ./config.yml
func LoadConfig(path *string) {
	if path == nil {
		p := "./config.yml"
		path = &p
	}

	// Load YAML file from path
	yamlFile, err := os.ReadFile(*path)
	if err != nil {
		log.Fatalf(err.Error())
	}

	err = yaml.Unmarshal(yamlFile, &Config)
	if err != nil {
		log.Fatalf(err.Error())
	}

	applyDefaults()
}

func applyDefaults() {
	if Config.Kafka.Path == "" {
		Config.Kafka.Path = "/opt/kafka"
	}
	if Config.RestProxy.Path == "" {
		Config.RestProxy.Path = "/opt/kafka-rest"
	}
	if Config.SchemaRegistry.Path == "" {
		Config.SchemaRegistry.Path = "/opt/schema-registry"
	}
	if Config.Hadoop.Path == "" {
		Config.Hadoop.Path = "/opt/hadoop-cdh"
	}
	if Config.Benchmarks.Nodes == 0 {
		Config.Benchmarks.Nodes = 1
	}
	if Config.Benchmarks.NumRecords == 0 {
		Config.Benchmarks.NumRecords = 50000000
	}
	if Config.Benchmarks.RecordSize == 0 {
		Config.Benchmarks.RecordSize = 100
	}
	if Config.OutputDir == "" {
		Config.OutputDir = "results"
	}
}
