package perf

import (
	"fmt"
	"kafkaperf/models"
	"kafkaperf/pkg/services"

	"github.com/pkg/errors"
)

// SchemaRegistryPerf drives
// io.confluent.kafka.schemaregistry.tools.SchemaRegistryPerformance.
type SchemaRegistryPerf struct {
	Registry      *services.SchemaRegistry
	Subject       string
	NumSchemas    int
	SchemasPerSec int
	Settings      Settings
}

func (s *SchemaRegistryPerf) Name() string {
	return "SchemaRegistryPerformance"
}

func (s *SchemaRegistryPerf) command() string {
	cmd := fmt.Sprintf("%s/bin/schema-registry-run-class io.confluent.kafka.schemaregistry.tools.SchemaRegistryPerformance "+
		"'%s' %s %d %d",
		registryPath(), s.Registry.URL(), s.Subject, s.NumSchemas, s.SchemasPerSec)
	return s.Settings.appendTo(cmd)
}

func (s *SchemaRegistryPerf) Run(idx int, node Node) (models.Metrics, []models.Metrics, error) {
	last, err := runToLastLine("Schema registry performance", idx, node, s.command())
	if err != nil {
		return nil, nil, err
	}

	result, err := ParseSummary(last)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "bad last line %q", last)
	}
	return result, nil, nil
}
