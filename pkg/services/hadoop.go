package services

import (
	"fmt"
	"kafkaperf/pkg/app"
)

// ConfDir is where distributed Hadoop configuration lands on each node.
// The benchmark commands point HADOOP_CONF_DIR here.
const ConfDir = "/mnt"

// Node is the subset of a cluster node the services need
type Node interface {
	Hostname() string
	Run(command string) ([]string, error)
}

// Hadoop describes the Hadoop installation on the cluster hosts and
// distributes its configuration before a job runs
type Hadoop struct {
	path    string
	useYarn bool
}

func NewHadoop(path string, useYarn bool) *Hadoop {
	return &Hadoop{path: path, useYarn: useYarn}
}

func HadoopFromConfig() *Hadoop {
	return NewHadoop(app.Config.Hadoop.Path, app.Config.Hadoop.UseYarn)
}

func (h *Hadoop) Path() string {
	return h.path
}

func (h *Hadoop) ExampleJar() string {
	if h.useYarn {
		return "share/hadoop/mapreduce/hadoop-mapreduce-examples-2.5.0-cdh5.3.0.jar"
	}
	return "share/hadoop/mapreduce1/hadoop-examples-2.5.0-mr1-cdh5.3.0.jar"
}

// DistributeConfigs copies the HDFS confs plus the MR1 or YARN confs into
// ConfDir on the node
func (h *Hadoop) DistributeConfigs(node Node) error {
	confs := []string{"conf-hdfs"}
	if h.useYarn {
		confs = append(confs, "conf-yarn")
	} else {
		confs = append(confs, "conf-mr1")
	}

	if _, err := node.Run(fmt.Sprintf("mkdir -p %s", ConfDir)); err != nil {
		return err
	}

	for _, conf := range confs {
		if _, err := node.Run(fmt.Sprintf("cp -r %s/%s/* %s", h.path, conf, ConfDir)); err != nil {
			return err
		}
	}

	return nil
}
