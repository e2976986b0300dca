// Package i18n resolves translation keys used by schema components (section
// expand/collapse labels, tab fallbacks, label keys). Catalogs are YAML
// documents named after their locale; nested keys are flattened with dots.
package i18n

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

// ErrMissingTranslation is returned when no catalog entry matches.
var ErrMissingTranslation = errors.New("i18n: missing translation")

// Translator resolves a key for a locale. Args may contain a
// map[string]any whose entries replace ":name" placeholders.
type Translator interface {
	Translate(locale, key string, args ...any) (string, error)
}

//go:embed lang/*.yaml
var embeddedLang embed.FS

// Catalog is an in-memory Translator. Lookups fall back from "ckb-IQ" to
// "ckb" and finally to the fallback locale.
type Catalog struct {
	mu       sync.RWMutex
	fallback string
	messages map[string]map[string]string
}

// NewCatalog returns an empty catalog using fallback as the last-resort locale.
func NewCatalog(fallback string) *Catalog {
	return &Catalog{
		fallback: normalizeLocale(fallback),
		messages: make(map[string]map[string]string),
	}
}

var (
	defaultOnce    sync.Once
	defaultCatalog *Catalog
	defaultErr     error
)

// Default returns the catalog built from the embedded language files.
func Default() (*Catalog, error) {
	defaultOnce.Do(func() {
		sub, err := fs.Sub(embeddedLang, "lang")
		if err != nil {
			defaultErr = err
			return
		}
		defaultCatalog, defaultErr = LoadFS(sub, "en")
	})
	return defaultCatalog, defaultErr
}

// LoadFS reads every <locale>.yaml/.yml file at the root of fsys.
func LoadFS(fsys fs.FS, fallback string) (*Catalog, error) {
	catalog := NewCatalog(fallback)
	if fsys == nil {
		return catalog, nil
	}
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return nil, fmt.Errorf("i18n: read catalog dir: %w", err)
	}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := strings.ToLower(path.Ext(entry.Name()))
		if ext != ".yaml" && ext != ".yml" {
			continue
		}
		data, err := fs.ReadFile(fsys, entry.Name())
		if err != nil {
			return nil, fmt.Errorf("i18n: read %s: %w", entry.Name(), err)
		}
		var raw map[string]any
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("i18n: parse %s: %w", entry.Name(), err)
		}
		flat := make(map[string]string)
		flatten("", raw, flat)
		catalog.Add(strings.TrimSuffix(entry.Name(), path.Ext(entry.Name())), flat)
	}
	return catalog, nil
}

// Add merges messages into the catalog for locale.
func (c *Catalog) Add(locale string, messages map[string]string) {
	locale = normalizeLocale(locale)
	c.mu.Lock()
	defer c.mu.Unlock()
	bucket := c.messages[locale]
	if bucket == nil {
		bucket = make(map[string]string, len(messages))
		c.messages[locale] = bucket
	}
	for key, value := range messages {
		bucket[key] = value
	}
}

// Locales lists the locales loaded into the catalog.
func (c *Catalog) Locales() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]string, 0, len(c.messages))
	for locale := range c.messages {
		out = append(out, locale)
	}
	sort.Strings(out)
	return out
}

func (c *Catalog) Translate(locale, key string, args ...any) (string, error) {
	if c == nil {
		return "", ErrMissingTranslation
	}
	key = strings.TrimSpace(key)
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, candidate := range candidates(normalizeLocale(locale), c.fallback) {
		if msg, ok := c.messages[candidate][key]; ok {
			return replacePlaceholders(msg, args), nil
		}
	}
	return "", fmt.Errorf("%w: %s (%s)", ErrMissingTranslation, key, locale)
}

// Translate resolves key through t, returning fallback (or the key itself)
// when the translator is nil or has no entry.
func Translate(t Translator, locale, key, fallback string) string {
	key = strings.TrimSpace(key)
	if key == "" {
		return fallback
	}
	if t != nil {
		if msg, err := t.Translate(locale, key); err == nil && strings.TrimSpace(msg) != "" {
			return msg
		}
	}
	if strings.TrimSpace(fallback) != "" {
		return fallback
	}
	return key
}

func candidates(locale, fallback string) []string {
	out := make([]string, 0, 3)
	if locale != "" {
		out = append(out, locale)
		if base, _, ok := strings.Cut(locale, "-"); ok {
			out = append(out, base)
		}
	}
	if fallback != "" {
		out = append(out, fallback)
	}
	return out
}

func normalizeLocale(locale string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(locale)), "_", "-")
}

func flatten(prefix string, in map[string]any, out map[string]string) {
	for key, value := range in {
		full := key
		if prefix != "" {
			full = prefix + "." + key
		}
		switch typed := value.(type) {
		case map[string]any:
			flatten(full, typed, out)
		case nil:
			continue
		default:
			out[full] = fmt.Sprint(typed)
		}
	}
}

func replacePlaceholders(msg string, args []any) string {
	for _, arg := range args {
		params, ok := arg.(map[string]any)
		if !ok {
			continue
		}
		for name, value := range params {
			msg = strings.ReplaceAll(msg, ":"+name, fmt.Sprint(value))
		}
	}
	return msg
}

// Format replaces :name placeholders in msg with params.
func Format(msg string, params map[string]any) string {
	return replacePlaceholders(msg, []any{params})
}
