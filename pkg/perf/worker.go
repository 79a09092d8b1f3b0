package perf

import (
	"kafkaperf/pkg/app"
	"kafkaperf/pkg/app/pretty_log"
	"strings"

	"github.com/pkg/errors"
)

func toolPath(configured string, fallback string) string {
	if configured != "" {
		return configured
	}
	return fallback
}

func kafkaPath() string {
	return toolPath(app.Config.Kafka.Path, "/opt/kafka")
}

func restPath() string {
	return toolPath(app.Config.RestProxy.Path, "/opt/kafka-rest")
}

func registryPath() string {
	return toolPath(app.Config.SchemaRegistry.Path, "/opt/schema-registry")
}

// runToLastLine streams the command's output, echoing each line at debug
// level, and returns the final line for summary parsing. The fold keeps only
// the latest line; everything before it is treated as tool chatter.
func runToLastLine(name string, idx int, node Node, cmd string) (string, error) {
	pretty_log.Debug("%s %d command: %s", name, idx, cmd)

	lines, err := node.Capture(cmd)
	if err != nil {
		return "", errors.Wrapf(err, "%s %d on %s", name, idx, node.Hostname())
	}

	var last string
	seen := false
	for line := range lines {
		pretty_log.Debug("%s %d: %s", name, idx, strings.TrimSpace(line))
		last = line
		seen = true
	}

	if !seen {
		return "", errors.Errorf("%s %d on %s produced no output", name, idx, node.Hostname())
	}
	return last, nil
}

// drain consumes a log-only command's output, echoing each line
func drain(name string, idx int, node Node, cmd string) error {
	pretty_log.Debug("%s %d command: %s", name, idx, cmd)

	lines, err := node.Capture(cmd)
	if err != nil {
		return errors.Wrapf(err, "%s %d on %s", name, idx, node.Hostname())
	}

	for line := range lines {
		pretty_log.Debug("%s %d: %s", name, idx, strings.TrimSpace(line))
	}
	return nil
}
