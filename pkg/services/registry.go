package services

import "kafkaperf/pkg/app"

// SchemaRegistry is the schema registry the registry perf tool and the Camus
// job read schemas from
type SchemaRegistry struct {
	url string
}

func NewSchemaRegistry(url string) *SchemaRegistry {
	return &SchemaRegistry{url: url}
}

func SchemaRegistryFromConfig() *SchemaRegistry {
	return NewSchemaRegistry(app.Config.SchemaRegistry.URL)
}

func (s *SchemaRegistry) URL() string {
	return s.url
}
