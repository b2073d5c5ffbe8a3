// Package i18n loads flat key/value translation catalogs and renders keys
// with {{placeholder}} substitution.
package i18n

import (
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"strings"
	"sync"

	"github.com/saradorri/tournamenthub/internal/infrastructure/logger"
	"go.uber.org/zap"
)

// Fallback is the language used when another catalog cannot be loaded
const Fallback = "en"

//go:embed locales/*.json
var embedded embed.FS

// Catalog holds the translation tables loaded so far
type Catalog struct {
	fsys   fs.FS
	logger *logger.Logger

	mu     sync.RWMutex
	tables map[string]map[string]string
}

// New creates a catalog over the embedded locales
func New(log *logger.Logger) *Catalog {
	sub, err := fs.Sub(embedded, "locales")
	if err != nil {
		panic("i18n: embedded locales missing: " + err.Error())
	}
	return NewCatalog(sub, log)
}

// NewCatalog creates a catalog reading <lang>.json files from fsys
func NewCatalog(fsys fs.FS, log *logger.Logger) *Catalog {
	return &Catalog{
		fsys:   fsys,
		logger: log,
		tables: make(map[string]map[string]string),
	}
}

// Load (re)reads the catalog for lang and returns the language that is now
// active. A non-fallback language that fails to load switches to Fallback.
func (c *Catalog) Load(lang string) (string, error) {
	err := c.load(lang)
	if err == nil {
		return lang, nil
	}
	c.logger.Error("Failed to load translations",
		zap.String("language", lang),
		zap.Error(err),
	)
	if lang == Fallback {
		return lang, err
	}
	if err := c.load(Fallback); err != nil {
		return Fallback, err
	}
	return Fallback, nil
}

func (c *Catalog) load(lang string) error {
	if lang == "" || strings.ContainsAny(lang, "/\\.") {
		return fmt.Errorf("invalid language %q", lang)
	}
	data, err := fs.ReadFile(c.fsys, lang+".json")
	if err != nil {
		return fmt.Errorf("could not load %s.json: %w", lang, err)
	}
	table := make(map[string]string)
	if err := json.Unmarshal(data, &table); err != nil {
		return fmt.Errorf("could not parse %s.json: %w", lang, err)
	}

	c.mu.Lock()
	c.tables[lang] = table
	c.mu.Unlock()
	return nil
}

// Loaded reports whether a table for lang is available
func (c *Catalog) Loaded(lang string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.tables[lang]
	return ok
}

// T renders key in lang. Unknown keys render as the key itself. Each
// {{name}} placeholder is substituted once with the matching replacement.
func (c *Catalog) T(lang, key string, replacements map[string]interface{}) string {
	c.mu.RLock()
	translation, ok := c.tables[lang][key]
	c.mu.RUnlock()
	if !ok || translation == "" {
		translation = key
	}
	for placeholder, value := range replacements {
		translation = strings.Replace(translation, "{{"+placeholder+"}}", fmt.Sprint(value), 1)
	}
	return translation
}
