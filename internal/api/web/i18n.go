package web

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
	"gopkg.in/yaml.v3"
)

//go:embed locales/*.yaml
var localeFS embed.FS

// Translator resolves interface strings for negotiated request languages
type Translator struct {
	catalog   *catalog.Builder
	supported []language.Tag
	matcher   language.Matcher
}

// NewTranslator loads the bundled locale files. The default language comes
// first in negotiation; languages restricts the offered set when not empty.
func NewTranslator(defaultLanguage string, languages []string) (*Translator, error) {
	defaultTag, err := language.Parse(defaultLanguage)
	if err != nil {
		return nil, fmt.Errorf("invalid default language %q: %w", defaultLanguage, err)
	}

	builder := catalog.NewBuilder(catalog.Fallback(defaultTag))
	loaded, err := loadLocales(builder)
	if err != nil {
		return nil, err
	}

	supported := []language.Tag{defaultTag}
	offered := loaded
	if len(languages) > 0 {
		offered = offered[:0:0]
		for _, l := range languages {
			tag, err := language.Parse(l)
			if err != nil {
				return nil, fmt.Errorf("invalid site language %q: %w", l, err)
			}
			offered = append(offered, tag)
		}
	}
	for _, tag := range offered {
		if tag != defaultTag {
			supported = append(supported, tag)
		}
	}

	return &Translator{
		catalog:   builder,
		supported: supported,
		matcher:   language.NewMatcher(supported),
	}, nil
}

func loadLocales(builder *catalog.Builder) ([]language.Tag, error) {
	files, err := fs.Glob(localeFS, "locales/*.yaml")
	if err != nil {
		return nil, err
	}

	var tags []language.Tag
	for _, file := range files {
		tag, err := language.Parse(strings.TrimSuffix(path.Base(file), ".yaml"))
		if err != nil {
			return nil, fmt.Errorf("locale file %s: %w", file, err)
		}

		data, err := localeFS.ReadFile(file)
		if err != nil {
			return nil, err
		}
		var messages map[string]string
		if err := yaml.Unmarshal(data, &messages); err != nil {
			return nil, fmt.Errorf("failed to parse locale file %s: %w", file, err)
		}
		for key, msg := range messages {
			if err := builder.SetString(tag, key, msg); err != nil {
				return nil, fmt.Errorf("locale file %s, key %s: %w", file, key, err)
			}
		}
		tags = append(tags, tag)
	}
	return tags, nil
}

// Languages returns the offered languages, default first
func (t *Translator) Languages() []language.Tag {
	return t.supported
}

// Negotiate picks the offered language for an explicit choice (a "lang" query
// or cookie value) and an Accept-Language header. The explicit choice wins.
func (t *Translator) Negotiate(choice, acceptLanguage string) language.Tag {
	var wanted []language.Tag
	if choice != "" {
		if tag, err := language.Parse(choice); err == nil {
			wanted = append(wanted, tag)
		}
	}
	if tags, _, err := language.ParseAcceptLanguage(acceptLanguage); err == nil {
		wanted = append(wanted, tags...)
	}

	_, index, confidence := t.matcher.Match(wanted...)
	if confidence == language.No {
		return t.supported[0]
	}
	return t.supported[index]
}

// Translate returns the message stored under key for tag, or key itself
func (t *Translator) Translate(tag language.Tag, key string) string {
	return message.NewPrinter(tag, message.Catalog(t.catalog)).Sprintf(key)
}
