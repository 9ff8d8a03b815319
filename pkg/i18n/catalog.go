package i18n

import (
	_ "embed"
	"errors"
	"fmt"
	"sort"
	"strings"

	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

const DefaultLanguage = "en"

var ErrUnsupportedLanguage = errors.New("unsupported language")

//go:embed catalog.yaml
var catalogYAML []byte

// Labeler resolves a symbolic key for a language. Unresolved keys come back unchanged.
type Labeler interface {
	T(lang, key string) string
	Format(lang, key string, params map[string]string) string
}

type Catalog struct {
	entries   map[string]map[string]string
	languages []string
	matcher   language.Matcher
	fallback  string
}

// Default returns the catalog embedded in the binary.
func Default() *Catalog {
	c, err := Parse(catalogYAML, DefaultLanguage)
	if err != nil {
		panic(fmt.Sprintf("i18n: embedded catalog: %v", err))
	}
	return c
}

// Parse builds a catalog from "key -> lang -> text" YAML.
func Parse(data []byte, fallback string) (*Catalog, error) {
	entries := map[string]map[string]string{}
	if err := yaml.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	seen := map[string]bool{}
	for _, byLang := range entries {
		for l := range byLang {
			seen[l] = true
		}
	}
	if !seen[fallback] {
		return nil, fmt.Errorf("parse catalog: fallback language %q has no entries", fallback)
	}
	langs := make([]string, 0, len(seen))
	for l := range seen {
		if l != fallback {
			langs = append(langs, l)
		}
	}
	sort.Strings(langs)
	// the matcher treats its first tag as the default
	langs = append([]string{fallback}, langs...)

	tags := make([]language.Tag, 0, len(langs))
	for _, l := range langs {
		tag, err := language.Parse(l)
		if err != nil {
			return nil, fmt.Errorf("parse catalog: language %q: %w", l, err)
		}
		tags = append(tags, tag)
	}
	return &Catalog{
		entries:   entries,
		languages: langs,
		matcher:   language.NewMatcher(tags),
		fallback:  fallback,
	}, nil
}

func (c *Catalog) Languages() []string {
	out := make([]string, len(c.languages))
	copy(out, c.languages)
	return out
}

func (c *Catalog) Fallback() string { return c.fallback }

func (c *Catalog) T(lang, key string) string {
	if key == "" {
		return ""
	}
	byLang, ok := c.entries[key]
	if !ok {
		return key
	}
	if s, ok := byLang[lang]; ok && s != "" {
		return s
	}
	return key
}

// Format resolves key and substitutes {name} placeholders from params.
func (c *Catalog) Format(lang, key string, params map[string]string) string {
	s := c.T(lang, key)
	if len(params) == 0 {
		return s
	}
	pairs := make([]string, 0, len(params)*2)
	for k, v := range params {
		pairs = append(pairs, "{"+k+"}", v)
	}
	return strings.NewReplacer(pairs...).Replace(s)
}

// Match picks the best supported language for an Accept-Language header value.
func (c *Catalog) Match(accept string) string {
	if strings.TrimSpace(accept) == "" {
		return c.fallback
	}
	tags, _, err := language.ParseAcceptLanguage(accept)
	if err != nil || len(tags) == 0 {
		return c.fallback
	}
	_, idx, conf := c.matcher.Match(tags...)
	if conf == language.No {
		return c.fallback
	}
	return c.languages[idx]
}

// Normalize maps a requested language onto a supported one.
func (c *Catalog) Normalize(lang string) (string, error) {
	lang = strings.ToLower(strings.TrimSpace(lang))
	for _, l := range c.languages {
		if l == lang {
			return l, nil
		}
	}
	tag, err := language.Parse(lang)
	if err == nil {
		base, _ := tag.Base()
		for _, l := range c.languages {
			if l == base.String() {
				return l, nil
			}
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedLanguage, lang)
}

// Lookup returns the first key under prefix whose text in any language matches s,
// ignoring case and surrounding space. The key itself also matches.
func (c *Catalog) Lookup(prefix, s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", false
	}
	keys := make([]string, 0, len(c.entries))
	for k := range c.entries {
		if strings.HasPrefix(k, prefix) {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	for _, k := range keys {
		if strings.EqualFold(k, s) {
			return k, true
		}
		for _, text := range c.entries[k] {
			if strings.EqualFold(strings.TrimSpace(text), s) {
				return k, true
			}
		}
	}
	return "", false
}
