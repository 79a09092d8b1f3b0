package benchmark

import (
	"encoding/json"
	"fmt"
	"kafkaperf/models"
	"kafkaperf/pkg/app"
	"kafkaperf/pkg/app/pretty_log"
	"kafkaperf/pkg/cluster"
	"kafkaperf/pkg/perf"
	"os"
	"path/filepath"
	"strings"
	"time"
)

type Definition struct {
	Name     string
	Func     func() (*models.RunResult, error)
	Disabled bool
}

// RunAll executes the definitions in order. A failed benchmark is logged and
// does not stop the remaining ones; successful results are persisted.
func RunAll(defs []Definition) error {
	pretty_log.TaskGroup("=== Running benchmarks ===")

	for idx, def := range defs {
		if def.Disabled {
			continue
		}

		pretty_log.TaskGroup("Running benchmark %d/%d: %s", idx+1, len(defs), def.Name)
		timeStart := time.Now()

		result, err := def.Func()
		if err != nil {
			pretty_log.TaskResultBad("Benchmark %s failed: %s", def.Name, err.Error())
			continue
		}

		pretty_log.TaskGroup("Benchmark %s complete (%s)", def.Name, time.Since(timeStart).String())

		for _, node := range result.Nodes {
			if node.Error != "" {
				pretty_log.TaskResultBad("%s on %s: %s", def.Name, node.Hostname, node.Error)
				continue
			}
			pretty_log.TaskResult("%s on %s: %v", def.Name, node.Hostname, node.Metrics)
		}

		if err := SaveResult(result); err != nil {
			return err
		}
	}

	pretty_log.TaskGroup("=== Benchmarks complete ===")
	return nil
}

// SaveResult saves the result of a benchmark run to a file.
// It saves the result to results/{name}-{date}.json
func SaveResult(result *models.RunResult) error {
	dir := app.Config.OutputDir
	err := os.MkdirAll(dir, os.ModePerm)
	if err != nil {
		return err
	}

	bytes, err := json.Marshal(result)
	if err != nil {
		return err
	}

	return os.WriteFile(filepath.Join(dir, fmt.Sprintf("%s_%s.json", strings.ToLower(result.Name), time.Now().Format("2006-01-02-15-04-05"))), bytes, os.ModePerm)
}

// execute drives the full lifecycle of one run over freshly allocated nodes
// and folds the per-node slots into a RunResult. Nodes are released after
// the results have been read.
func execute(name string, clstr *cluster.Cluster, numNodes int, bench perf.Benchmark) (*models.RunResult, error) {
	nodes, err := clstr.Allocate(numNodes)
	if err != nil {
		return nil, err
	}

	run := perf.NewRun(bench, asPerfNodes(nodes))
	started := time.Now()

	if err := run.Start(); err != nil {
		return nil, err
	}
	if err := run.Wait(); err != nil {
		return nil, err
	}

	result := &models.RunResult{
		Name:     name,
		Started:  started,
		Finished: time.Now(),
	}
	for idx, node := range nodes {
		nodeResult := models.NodeResult{
			Hostname: node.Hostname(),
			Metrics:  run.Results()[idx],
			Samples:  run.Samples()[idx],
		}
		if err := run.Errs()[idx]; err != nil {
			nodeResult.Error = err.Error()
		}
		result.Nodes = append(result.Nodes, nodeResult)
	}

	if err := run.Stop(); err != nil {
		return nil, err
	}
	return result, nil
}

func asPerfNodes(nodes []*cluster.Node) []perf.Node {
	out := make([]perf.Node, len(nodes))
	for idx, node := range nodes {
		out[idx] = node
	}
	return out
}
