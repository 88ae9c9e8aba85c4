package i18n

import (
	"fmt"
	stdhtml "html"
	"io/fs"
	"path"
	"sort"
	"strings"
	"sync"

	"github.com/flosch/pongo2/v6"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

// DefaultLocale is used when a catalog is built without WithFallback.
const DefaultLocale = "en"

// Option configures a Catalog during construction.
type Option func(*config)

type config struct {
	fallback string
	sources  []fs.FS
}

// WithFallback sets the locale consulted when a key is missing from the
// requested locale.
func WithFallback(locale string) Option {
	return func(cfg *config) {
		if trimmed := strings.TrimSpace(locale); trimmed != "" {
			cfg.fallback = trimmed
		}
	}
}

// WithFS loads every <locale>.yaml / <locale>.yml file at the root of files.
func WithFS(files fs.FS) Option {
	return func(cfg *config) {
		if files != nil {
			cfg.sources = append(cfg.sources, files)
		}
	}
}

// Catalog is an in-memory Translator keyed by locale. Messages may use
// pongo2 expressions ({{ row_index }}) to interpolate named arguments.
type Catalog struct {
	mu       sync.RWMutex
	fallback string
	messages map[string]map[string]string
	locales  []string
	matcher  language.Matcher
	compiled map[string]*pongo2.Template
}

// Ensure Catalog satisfies Translator.
var _ Translator = (*Catalog)(nil)

// NewCatalog builds a catalog and loads any configured sources.
func NewCatalog(options ...Option) (*Catalog, error) {
	cfg := config{fallback: DefaultLocale}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	c := &Catalog{
		fallback: canonicalLocale(cfg.fallback),
		messages: make(map[string]map[string]string),
		compiled: make(map[string]*pongo2.Template),
	}
	for _, files := range cfg.sources {
		if err := c.LoadFS(files); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// Add merges messages for locale; later values win.
func (c *Catalog) Add(locale string, messages map[string]string) {
	locale = canonicalLocale(locale)
	if locale == "" || len(messages) == 0 {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	table, ok := c.messages[locale]
	if !ok {
		table = make(map[string]string, len(messages))
		c.messages[locale] = table
	}
	for key, msg := range messages {
		if key = strings.TrimSpace(key); key != "" {
			table[key] = msg
		}
	}
	c.rebuildMatcher()
}

// LoadYAML merges a YAML document for locale. Nested mappings are flattened
// into dotted keys.
func (c *Catalog) LoadYAML(locale string, data []byte) error {
	var doc map[string]any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("i18n: decode %q catalog: %w", locale, err)
	}
	flat := make(map[string]string)
	flatten("", doc, flat)
	c.Add(locale, flat)
	return nil
}

// LoadFS loads <locale>.yaml and <locale>.yml files from the root of files.
func (c *Catalog) LoadFS(files fs.FS) error {
	entries, err := fs.ReadDir(files, ".")
	if err != nil {
		return fmt.Errorf("i18n: read catalog dir: %w", err)
	}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := path.Ext(entry.Name())
		if ext != ".yaml" && ext != ".yml" {
			continue
		}
		data, err := fs.ReadFile(files, entry.Name())
		if err != nil {
			return fmt.Errorf("i18n: read %q: %w", entry.Name(), err)
		}
		if err := c.LoadYAML(strings.TrimSuffix(entry.Name(), ext), data); err != nil {
			return err
		}
	}
	return nil
}

// Fallback returns the fallback locale.
func (c *Catalog) Fallback() string {
	return c.fallback
}

// Languages returns the loaded locales, sorted.
func (c *Catalog) Languages() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]string(nil), c.locales...)
}

// Match returns the best loaded locale for the requested one, or the fallback
// when nothing is close enough.
func (c *Catalog) Match(locale string) string {
	canonical := canonicalLocale(locale)

	c.mu.RLock()
	defer c.mu.RUnlock()

	if _, ok := c.messages[canonical]; ok {
		return canonical
	}
	if c.matcher == nil || canonical == "" {
		return c.fallback
	}
	_, idx, confidence := c.matcher.Match(language.Make(canonical))
	if confidence == language.No || idx < 0 || idx >= len(c.locales) {
		return c.fallback
	}
	return c.locales[idx]
}

// Translate implements Translator. The requested locale is matched against
// the loaded ones before falling back.
func (c *Catalog) Translate(locale, key string, args ...any) (string, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return "", fmt.Errorf("i18n: empty key: %w", ErrMissingTranslation)
	}

	msg, ok := c.lookup(c.Match(locale), key)
	if !ok {
		msg, ok = c.lookup(c.fallback, key)
	}
	if !ok {
		return "", fmt.Errorf("i18n: %q (%s): %w", key, locale, ErrMissingTranslation)
	}
	if !strings.Contains(msg, "{{") && !strings.Contains(msg, "{%") {
		return msg, nil
	}
	return c.interpolate(msg, args)
}

func (c *Catalog) lookup(locale, key string) (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	table, ok := c.messages[locale]
	if !ok {
		return "", false
	}
	msg, ok := table[key]
	return msg, ok
}

func (c *Catalog) interpolate(msg string, args []any) (string, error) {
	tpl, err := c.template(msg)
	if err != nil {
		return "", err
	}
	out, err := tpl.Execute(argsContext(args))
	if err != nil {
		return "", fmt.Errorf("i18n: interpolate %q: %w", msg, err)
	}
	// Output becomes element text, which is escaped again at render time.
	return stdhtml.UnescapeString(out), nil
}

func (c *Catalog) template(msg string) (*pongo2.Template, error) {
	c.mu.RLock()
	tpl, ok := c.compiled[msg]
	c.mu.RUnlock()
	if ok {
		return tpl, nil
	}

	tpl, err := pongo2.FromString(msg)
	if err != nil {
		return nil, fmt.Errorf("i18n: parse message %q: %w", msg, err)
	}

	c.mu.Lock()
	c.compiled[msg] = tpl
	c.mu.Unlock()
	return tpl, nil
}

func (c *Catalog) rebuildMatcher() {
	locales := make([]string, 0, len(c.messages))
	for locale := range c.messages {
		locales = append(locales, locale)
	}
	sort.Strings(locales)

	tags := make([]language.Tag, 0, len(locales))
	for _, locale := range locales {
		tags = append(tags, language.Make(locale))
	}
	c.locales = locales
	c.matcher = language.NewMatcher(tags)
}

func argsContext(args []any) pongo2.Context {
	ctx := pongo2.Context{}
	var positional []any
	for _, arg := range args {
		switch v := arg.(type) {
		case nil:
		case map[string]any:
			for key, value := range v {
				ctx[key] = value
			}
		case map[string]string:
			for key, value := range v {
				ctx[key] = value
			}
		default:
			positional = append(positional, v)
		}
	}
	if len(positional) > 0 {
		ctx["args"] = positional
	}
	return ctx
}

func flatten(prefix string, in map[string]any, out map[string]string) {
	for key, value := range in {
		full := key
		if prefix != "" {
			full = prefix + "." + key
		}
		switch v := value.(type) {
		case map[string]any:
			flatten(full, v, out)
		case nil:
			out[full] = ""
		default:
			out[full] = fmt.Sprint(v)
		}
	}
}

func canonicalLocale(locale string) string {
	locale = strings.TrimSpace(locale)
	if locale == "" {
		return ""
	}
	tag, err := language.Parse(locale)
	if err != nil {
		return strings.ToLower(locale)
	}
	return tag.String()
}
