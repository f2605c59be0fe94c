package schema

import (
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
)

// Store holds definitions keyed by id.
type Store struct {
	definitions map[string]Definition
}

// LoadFS walks fsys and parses every JSON/YAML definition. A definition
// without an id takes the file name stem. When fsys is nil the store is empty.
func LoadFS(fsys fs.FS) (*Store, error) {
	store := &Store{definitions: make(map[string]Definition)}
	if fsys == nil {
		return store, nil
	}

	err := fs.WalkDir(fsys, ".", func(p string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if entry.IsDir() || !isDefinitionFile(p) {
			return nil
		}

		data, err := fs.ReadFile(fsys, p)
		if err != nil {
			return fmt.Errorf("schema: read %s: %w", p, err)
		}
		def, err := Parse(data, p)
		if err != nil {
			return err
		}
		if strings.TrimSpace(def.ID) == "" {
			def.ID = strings.TrimSuffix(path.Base(p), path.Ext(p))
		}
		if _, exists := store.definitions[def.ID]; exists {
			return fmt.Errorf("schema: duplicate definition %q (file %s)", def.ID, p)
		}
		store.definitions[def.ID] = def
		return nil
	})
	if err != nil {
		return nil, err
	}
	return store, nil
}

// Definition returns the definition registered under id.
func (s *Store) Definition(id string) (Definition, bool) {
	if s == nil {
		return Definition{}, false
	}
	def, ok := s.definitions[id]
	return def, ok
}

// IDs lists the loaded definition ids in sorted order.
func (s *Store) IDs() []string {
	if s == nil {
		return nil
	}
	ids := make([]string, 0, len(s.definitions))
	for id := range s.definitions {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Empty reports whether the store holds any definitions.
func (s *Store) Empty() bool {
	return s == nil || len(s.definitions) == 0
}

func isDefinitionFile(p string) bool {
	switch strings.ToLower(path.Ext(p)) {
	case ".json", ".yaml", ".yml":
		return true
	default:
		return false
	}
}
