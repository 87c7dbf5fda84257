package i18n

import (
	"embed"
	"fmt"
	"html/template"
	"path"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"gopkg.in/yaml.v3"
)

//go:embed locales/*.yaml
var localesFS embed.FS

// Catalog holds the translated UI strings for every configured locale.
type Catalog struct {
	fallback string
	messages map[string]map[string]template.HTML
}

// Load reads the embedded catalogs for the given locale codes. Every code must
// have a catalog file.
func Load(codes []string, fallback string) (*Catalog, error) {
	policy := markupPolicy()
	cat := &Catalog{
		fallback: fallback,
		messages: make(map[string]map[string]template.HTML, len(codes)),
	}

	for _, code := range codes {
		data, err := localesFS.ReadFile(path.Join("locales", code+".yaml"))
		if err != nil {
			return nil, fmt.Errorf("failed to read catalog %s: %w", code, err)
		}

		var raw map[string]string
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("failed to parse catalog %s: %w", code, err)
		}

		msgs := make(map[string]template.HTML, len(raw))
		for k, v := range raw {
			msgs[k] = template.HTML(strings.TrimSpace(policy.Sanitize(v)))
		}
		cat.messages[code] = msgs
	}

	if _, ok := cat.messages[fallback]; !ok {
		return nil, fmt.Errorf("fallback locale %s has no catalog", fallback)
	}
	return cat, nil
}

// markupPolicy allows the little inline markup catalogs use.
func markupPolicy() *bluemonday.Policy {
	p := bluemonday.NewPolicy()
	p.AllowElements("strong", "em", "br")
	p.AllowAttrs("href").OnElements("a")
	p.AllowStandardURLs()
	p.RequireNoFollowOnLinks(false)
	return p
}

// T looks key up in lang, then in the fallback locale, and finally returns
// the key itself.
func (c *Catalog) T(lang, key string) template.HTML {
	if msg, ok := c.messages[lang][key]; ok {
		return msg
	}
	if msg, ok := c.messages[c.fallback][key]; ok {
		return msg
	}
	return template.HTML(template.HTMLEscapeString(key))
}

// Has reports whether lang has its own entry for key.
func (c *Catalog) Has(lang, key string) bool {
	_, ok := c.messages[lang][key]
	return ok
}
