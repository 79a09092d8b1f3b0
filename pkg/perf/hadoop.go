package perf

import (
	"fmt"
	"kafkaperf/models"
	"kafkaperf/pkg/services"
)

// HadoopPerf runs the Hadoop pi example after distributing the cluster's
// Hadoop confs to the node. Log-only: the job reports nothing parseable, so
// the node's result slot stays empty.
type HadoopPerf struct {
	Hadoop   *services.Hadoop
	Settings Settings
}

func (h *HadoopPerf) Name() string {
	return "HadoopPerformance"
}

func (h *HadoopPerf) command() string {
	cmd := fmt.Sprintf("HADOOP_CONF_DIR=%s %s/bin/hadoop jar %s/%s pi 2 10",
		services.ConfDir, h.Hadoop.Path(), h.Hadoop.Path(), h.Hadoop.ExampleJar())
	return h.Settings.appendTo(cmd)
}

func (h *HadoopPerf) Run(idx int, node Node) (models.Metrics, []models.Metrics, error) {
	if err := h.Hadoop.DistributeConfigs(node); err != nil {
		return nil, nil, err
	}

	if err := drain("Hadoop performance", idx, node, h.command()); err != nil {
		return nil, nil, err
	}
	return nil, nil, nil
}
