package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-formbind/pkg/openapi"
	"github.com/goliatone/go-formbind/pkg/schema"
)

// generate-definitions converts every OpenAPI operation with an object
// request body into a native definition file that schema.LoadFS can read.
func main() {
	var (
		schemaPath = flag.String("schema", "pkg/openapi/testdata/account.yaml", "OpenAPI document path")
		outputDir  = flag.String("output", "pkg/schema/testdata/generated", "directory for the generated definitions")
	)
	flag.Parse()

	ctx := context.Background()

	data, err := os.ReadFile(*schemaPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to read schema: %v\n", err)
		os.Exit(1)
	}
	doc, err := schema.NewDocument(schema.SourceFromFile(*schemaPath), data)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load schema: %v\n", err)
		os.Exit(1)
	}
	defs, err := openapi.New().Definitions(ctx, doc)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to derive definitions: %v\n", err)
		os.Exit(1)
	}

	if err := os.MkdirAll(*outputDir, 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "failed to create output dir: %v\n", err)
		os.Exit(1)
	}
	for _, id := range openapi.OperationIDs(defs) {
		payload, err := yaml.Marshal(defs[id])
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to encode %s: %v\n", id, err)
			os.Exit(1)
		}
		path := filepath.Join(*outputDir, fileName(id)+".yaml")
		if err := os.WriteFile(path, payload, 0o644); err != nil {
			fmt.Fprintf(os.Stderr, "failed to write %s: %v\n", path, err)
			os.Exit(1)
		}
		fmt.Printf("%s -> %s\n", id, path)
	}
}

func fileName(id string) string {
	return strings.Trim(strings.NewReplacer(":", "-", "/", "-", "{", "", "}", "").Replace(id), "-")
}
