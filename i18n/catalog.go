// Package i18n renders user-facing messages by key through an x/text catalog
package i18n

import (
	"fmt"
	"sort"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"

	"github.com/lixenwraith/colormix/core"
)

// BaseLocale is the canonical locale; every key exists there
const BaseLocale = "en-US"

var locales = map[string]map[string]string{
	"en-US": enUS,
	"pl-PL": plPL,
}

// Catalog renders messages for one locale with fallback to BaseLocale
type Catalog struct {
	tag     language.Tag
	printer *message.Printer
	base    *message.Printer
	own     map[string]string
}

// New builds a catalog for locale; unknown locales fall back to BaseLocale
func New(locale string) (*Catalog, error) {
	base := language.MustParse(BaseLocale)
	b := catalog.NewBuilder(catalog.Fallback(base))

	names := make([]string, 0, len(locales))
	for name := range locales {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		tag, err := language.Parse(name)
		if err != nil {
			return nil, fmt.Errorf("parse locale tag %q: %w", name, err)
		}
		for key, msg := range locales[name] {
			// Catalog strings go through fmt; protect literal percent signs
			if err := b.SetString(tag, key, strings.ReplaceAll(msg, "%", "%%")); err != nil {
				return nil, fmt.Errorf("register %s/%s: %w", name, key, err)
			}
		}
	}

	resolved := base
	if tag, err := language.Parse(locale); err == nil {
		supported := b.Languages()
		_, idx, conf := language.NewMatcher(supported).Match(tag)
		if conf != language.No {
			resolved = supported[idx]
		}
	}

	return &Catalog{
		tag:     resolved,
		printer: message.NewPrinter(resolved, message.Catalog(b)),
		base:    message.NewPrinter(base, message.Catalog(b)),
		own:     locales[resolved.String()],
	}, nil
}

// lookup resolves key in the catalog locale, then the base locale
func (c *Catalog) lookup(key string) (string, bool) {
	if _, ok := c.own[key]; ok {
		return c.printer.Sprintf(key), true
	}
	if _, ok := enUS[key]; ok {
		return c.base.Sprintf(key), true
	}
	return "", false
}

// Locale returns the resolved locale tag
func (c *Catalog) Locale() string {
	return c.tag.String()
}

// Has reports whether key can be rendered
func (c *Catalog) Has(key string) bool {
	_, ok := c.lookup(key)
	return ok
}

// Render looks up key and substitutes {name} placeholders from pairs of name, value
// Numbers are formatted for the locale. Unknown keys render as the key itself
func (c *Catalog) Render(key string, params ...any) string {
	text, ok := c.lookup(key)
	if !ok {
		return key
	}
	if len(params) < 2 {
		return text
	}

	pairs := make([]string, 0, len(params))
	for i := 0; i+1 < len(params); i += 2 {
		name, ok := params[i].(string)
		if !ok {
			continue
		}
		pairs = append(pairs, "{"+name+"}", c.printer.Sprint(params[i+1]))
	}
	return strings.NewReplacer(pairs...).Replace(text)
}

// ColorName returns the localized name of a palette color
func (c *Catalog) ColorName(col core.Color) string {
	if name, ok := c.lookup(colorKeyPrefix + col.String()); ok {
		return name
	}
	return col.String()
}
