package theme

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	gotheme "github.com/goliatone/go-theme"
	"gopkg.in/yaml.v3"
)

type manifestFile struct {
	Name     string                 `yaml:"name"`
	Version  string                 `yaml:"version"`
	Tokens   map[string]string      `yaml:"tokens"`
	Variants map[string]variantFile `yaml:"variants"`
}

type variantFile struct {
	Tokens map[string]string `yaml:"tokens"`
}

// ParseManifest decodes a JSON or YAML theme manifest:
//
//	name: acme
//	tokens:
//	  primary: "#123456"
//	variants:
//	  dark:
//	    tokens:
//	      primary: "#654321"
func ParseManifest(data []byte) (*gotheme.Manifest, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, errors.New("theme: manifest is empty")
	}
	var file manifestFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("theme: parse manifest: %w", err)
	}
	name := strings.TrimSpace(file.Name)
	if name == "" {
		return nil, errors.New("theme: manifest name is required")
	}

	manifest := &gotheme.Manifest{
		Name:    name,
		Version: file.Version,
		Tokens:  file.Tokens,
	}
	if len(file.Variants) > 0 {
		manifest.Variants = make(map[string]gotheme.Variant, len(file.Variants))
		for key, variant := range file.Variants {
			manifest.Variants[key] = gotheme.Variant{Tokens: variant.Tokens}
		}
	}
	return manifest, nil
}
