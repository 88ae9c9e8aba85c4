package i18n

import (
	"embed"
	"io/fs"
	"sync"
)

//go:embed locales/*.yaml
var defaultLocales embed.FS

var (
	defaultOnce    sync.Once
	defaultCatalog *Catalog
)

// Default returns the process-wide catalog holding the built-in widget and
// validation messages. It is built once and safe for concurrent reads.
func Default() *Catalog {
	defaultOnce.Do(func() {
		files, err := fs.Sub(defaultLocales, "locales")
		if err != nil {
			panic(err)
		}
		catalog, err := NewCatalog(WithFS(files))
		if err != nil {
			panic(err)
		}
		defaultCatalog = catalog
	})
	return defaultCatalog
}
