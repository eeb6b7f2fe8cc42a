package def

import (
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"
)

// LoadDir loads every definition file in dir into the registry, picking
// the loader by file extension. Files with no loader are skipped.
// Loading continues past failures; the first error is returned.
func LoadDir(dir string, registry *Registry, loaders map[string]LoaderFunc) error {
	entries, err := filepath.Glob(filepath.Join(dir, "*"))
	if err != nil {
		return err
	}

	var firstErr error
	for _, path := range entries {
		loader, ok := loaders[strings.ToLower(filepath.Ext(path))]
		if !ok {
			continue
		}

		ft, err := loader(path)
		if err == nil {
			err = registry.Put(ft)
		}
		if err != nil {
			log.Warn().Err(err).Str("path", path).Msg("definition load failed")
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		log.Debug().Str("path", path).Str("filetype", ft.Name).Msg("definition loaded")
	}
	return firstErr
}
