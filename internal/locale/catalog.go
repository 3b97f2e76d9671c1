package locale

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

// ErrMissingKey is returned when the catalogs of the two locales disagree on their key sets.
var ErrMissingKey = errors.New("locale: catalogs have different keys")

//go:embed locales/*.yaml
var embeddedCatalogFS embed.FS

// Table maps dotted message keys ("hero.title1") to display strings. Tables are never mutated after load.
type Table map[string]string

// Keys returns the table's keys in sorted order.
func (t Table) Keys() []string {
	keys := make([]string, 0, len(t))
	for k := range t {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

type catalogFile struct {
	Locale   string         `yaml:"locale"`
	Messages map[string]any `yaml:"messages"`
}

// Catalogs holds the loaded table of each supported tag.
type Catalogs map[Tag]Table

// Snapshot returns an immutable snapshot of one language without touching any store.
func (c Catalogs) Snapshot(tag Tag) *Snapshot {
	return &Snapshot{Tag: tag, Table: c[tag]}
}

// LoadEmbedded loads the catalogs compiled into the binary.
//
// Returns:
//   - Catalogs: one table per supported tag
//   - error: error if a catalog is missing or malformed
func LoadEmbedded() (Catalogs, error) {
	return LoadFromFS(embeddedCatalogFS)
}

// LoadFromFS loads "locales/*.yaml" catalogs from the given filesystem.
// Every supported tag must be present and all tables must share one key set.
//
// Parameters:
//   - catalogFS: the filesystem holding the catalogs
//
// Returns:
//   - Catalogs: one table per supported tag
//   - error: error if a catalog is missing or malformed, wrapping ErrMissingKey on key mismatch
func LoadFromFS(catalogFS fs.FS) (Catalogs, error) {
	paths, err := fs.Glob(catalogFS, "locales/*.yaml")
	if err != nil {
		return nil, fmt.Errorf("glob locale catalogs: %w", err)
	}
	sort.Strings(paths)

	out := Catalogs{}
	for _, p := range paths {
		data, err := fs.ReadFile(catalogFS, p)
		if err != nil {
			return nil, fmt.Errorf("read catalog %s: %w", p, err)
		}
		var file catalogFile
		if err := yaml.Unmarshal(data, &file); err != nil {
			return nil, fmt.Errorf("parse catalog %s: %w", p, err)
		}
		tag, err := tagFromLocale(file.Locale)
		if err != nil {
			return nil, fmt.Errorf("catalog %s: %w", path.Base(p), err)
		}
		table := Table{}
		if err := flatten("", file.Messages, table); err != nil {
			return nil, fmt.Errorf("catalog %s: %w", path.Base(p), err)
		}
		out[tag] = table
	}

	for _, tag := range Tags() {
		if _, ok := out[tag]; !ok {
			return nil, fmt.Errorf("no catalog for locale %s", tag)
		}
	}
	if err := checkKeySets(out); err != nil {
		return nil, err
	}
	return out, nil
}

// flatten walks a decoded YAML mapping and writes dotted keys into dst.
func flatten(prefix string, node map[string]any, dst Table) error {
	for k, v := range node {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}
		switch val := v.(type) {
		case string:
			dst[key] = val
		case map[string]any:
			if err := flatten(key, val, dst); err != nil {
				return err
			}
		default:
			return fmt.Errorf("message %q: unsupported value type %T", key, v)
		}
	}
	return nil
}

func tagFromLocale(s string) (Tag, error) {
	parsed, err := language.Parse(s)
	if err != nil {
		return 0, fmt.Errorf("invalid locale %q: %w", s, err)
	}
	base, _ := parsed.Base()
	switch base.String() {
	case "en":
		return EN, nil
	case "pt":
		return PT, nil
	default:
		return 0, fmt.Errorf("unsupported locale %q", s)
	}
}

func checkKeySets(c Catalogs) error {
	ref := c[EN]
	for _, tag := range Tags() {
		t := c[tag]
		var missing []string
		for k := range ref {
			if _, ok := t[k]; !ok {
				missing = append(missing, k)
			}
		}
		for k := range t {
			if _, ok := ref[k]; !ok {
				missing = append(missing, k)
			}
		}
		if len(missing) > 0 {
			sort.Strings(missing)
			return fmt.Errorf("%w: %s differs on %s", ErrMissingKey, tag, strings.Join(missing, ", "))
		}
	}
	return nil
}
