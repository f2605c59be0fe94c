package i18n

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"path"
	"strings"

	"gopkg.in/yaml.v3"
)

type catalogFile struct {
	Locale   string            `json:"locale" yaml:"locale"`
	Messages map[string]string `json:"messages" yaml:"messages"`
}

// LoadFS walks fsys and loads every JSON/YAML catalog file into a Catalog.
// A file declares its locale with a top-level "locale" key; when omitted the
// file name stem is used ("es.yaml" -> "es").
func LoadFS(fsys fs.FS, fallback string) (*Catalog, error) {
	catalog := NewCatalog(fallback)
	if fsys == nil {
		return catalog, nil
	}

	err := fs.WalkDir(fsys, ".", func(p string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if entry.IsDir() || !isCatalogFile(p) {
			return nil
		}

		data, err := fs.ReadFile(fsys, p)
		if err != nil {
			return fmt.Errorf("i18n: read %s: %w", p, err)
		}
		file, err := parseCatalog(data, p)
		if err != nil {
			return err
		}
		locale := strings.TrimSpace(file.Locale)
		if locale == "" {
			locale = strings.TrimSuffix(path.Base(p), path.Ext(p))
		}
		catalog.Add(locale, file.Messages)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return catalog, nil
}

func parseCatalog(data []byte, source string) (catalogFile, error) {
	var file catalogFile
	if len(strings.TrimSpace(string(data))) == 0 {
		return catalogFile{}, fmt.Errorf("i18n: file %s is empty", source)
	}
	if err := json.Unmarshal(data, &file); err == nil {
		return file, nil
	}
	file = catalogFile{}
	if err := yaml.Unmarshal(data, &file); err == nil {
		return file, nil
	}
	return catalogFile{}, fmt.Errorf("i18n: parse %s: invalid JSON or YAML", source)
}

func isCatalogFile(p string) bool {
	switch strings.ToLower(path.Ext(p)) {
	case ".json", ".yaml", ".yml":
		return true
	default:
		return false
	}
}
