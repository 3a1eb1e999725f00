package sections

import (
	"embed"
	"path"
	"strings"

	"github.com/afdei/federation-cms/internal/validation"
)

//go:embed schemas/*.json
var schemaFS embed.FS

// DefaultSchemas returns the payload schemas for the known sections. Schemas
// only pin field types, so partially written payloads still pass.
func DefaultSchemas() *validation.SchemaSet {
	entries, err := schemaFS.ReadDir("schemas")
	if err != nil {
		return validation.NewSchemaSet(nil)
	}
	sources := make(map[string][]byte, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		raw, err := schemaFS.ReadFile(path.Join("schemas", entry.Name()))
		if err != nil {
			continue
		}
		sources[strings.TrimSuffix(entry.Name(), ".json")] = raw
	}
	return validation.NewSchemaSet(sources)
}
