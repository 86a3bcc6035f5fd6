// Command schemagen emits a JSON Schema for the save document and the
// engine's event envelope: a one-shot generator external tooling (save
// editors, replay viewers) can run to validate documents without
// importing the Go types.
package main

import (
	"encoding/json"
	"flag"
	"log"
	"os"
	"path/filepath"
	"reflect"

	"github.com/invopop/jsonschema"

	"towerdefense/server/internal/events"
	"towerdefense/server/internal/save"
)

func main() {
	var outPath string
	flag.StringVar(&outPath, "out", "", "output path for the JSON schema")
	flag.Parse()

	if outPath == "" {
		log.Fatal("schemagen: missing -out path")
	}

	schema := buildSchema()

	data, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		log.Fatalf("schemagen: marshal schema: %v", err)
	}
	data = append(data, '\n')

	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		log.Fatalf("schemagen: create output dir: %v", err)
	}
	if err := os.WriteFile(outPath, data, 0o644); err != nil {
		log.Fatalf("schemagen: write schema: %v", err)
	}
}

func buildSchema() *jsonschema.Schema {
	reflector := jsonschema.Reflector{
		RequiredFromJSONSchemaTags: true,
		DoNotReference:             true,
	}

	docSchema := reflector.ReflectFromType(reflect.TypeOf(save.Document{}))
	docSchema.Version = ""
	docSchema.Title = "Save Document"
	docSchema.Description = "Versioned save document produced by internal/save.FromSnapshot."

	eventSchema := reflector.ReflectFromType(reflect.TypeOf(events.Event{}))
	eventSchema.Version = ""
	eventSchema.Title = "Engine Event"
	eventSchema.Description = "One entry of the per-tick event stream drained from the engine's event buffer."

	return &jsonschema.Schema{
		Version:     jsonschema.Version,
		Title:       "Tower Defense Wire Formats",
		Description: "Save document and event payload shapes for external tooling.",
		Definitions: jsonschema.Definitions{
			"SaveDocument": docSchema,
			"Event":        eventSchema,
		},
	}
}
