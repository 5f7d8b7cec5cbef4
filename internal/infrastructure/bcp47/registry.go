package bcp47

import (
	"bufio"
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/hpusset/ELRI-sub001/internal/domain/langtags"

	"golang.org/x/text/language"
)

//go:embed language-subtag-registry.txt
var embeddedRegistry []byte

// Subtag types
const (
	TypeLanguage = "language"
	TypeScript   = "script"
	TypeRegion   = "region"
	TypeVariant  = "variant"
)

// Record is one entry of the registry
type Record struct {
	Type           string
	Subtag         string
	Descriptions   []string
	Prefixes       []string
	Deprecated     string
	PreferredValue string
	Comments       string
}

// Description returns the first registered description
func (r *Record) Description() string {
	if len(r.Descriptions) == 0 {
		return r.Subtag
	}
	return r.Descriptions[0]
}

// Registry indexes registry records by type and subtag
type Registry struct {
	FileDate string
	records  map[string]map[string]*Record
	variants []*Record
}

var _ langtags.VariantLookup = (*Registry)(nil)

// Load reads the registry file at path, or the embedded subset when path is empty
func Load(path string) (*Registry, error) {
	if path == "" {
		return Parse(bytes.NewReader(embeddedRegistry))
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open subtag registry %s: %w", path, err)
	}
	defer f.Close()

	return Parse(f)
}

// Parse reads a registry in record-jar format: fields "Name: value",
// continuation lines starting with whitespace, records separated by "%%".
func Parse(r io.Reader) (*Registry, error) {
	reg := &Registry{records: make(map[string]map[string]*Record)}

	var fields [][2]string
	flush := func() error {
		if len(fields) == 0 {
			return nil
		}
		defer func() { fields = fields[:0] }()

		rec := &Record{}
		for _, f := range fields {
			switch f[0] {
			case "File-Date":
				reg.FileDate = f[1]
			case "Type":
				rec.Type = f[1]
			case "Subtag", "Tag":
				rec.Subtag = f[1]
			case "Description":
				rec.Descriptions = append(rec.Descriptions, f[1])
			case "Prefix":
				rec.Prefixes = append(rec.Prefixes, f[1])
			case "Deprecated":
				rec.Deprecated = f[1]
			case "Preferred-Value":
				rec.PreferredValue = f[1]
			case "Comments":
				rec.Comments = f[1]
			}
		}
		if rec.Type == "" {
			return nil
		}
		if rec.Subtag == "" {
			return fmt.Errorf("registry record of type %s has no subtag", rec.Type)
		}
		if reg.records[rec.Type] == nil {
			reg.records[rec.Type] = make(map[string]*Record)
		}
		reg.records[rec.Type][strings.ToLower(rec.Subtag)] = rec
		if rec.Type == TypeVariant {
			reg.variants = append(reg.variants, rec)
		}
		return nil
	}

	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		text := scanner.Text()
		switch {
		case strings.TrimSpace(text) == "%%":
			if err := flush(); err != nil {
				return nil, err
			}
		case strings.TrimSpace(text) == "":
		case text[0] == ' ' || text[0] == '\t':
			if len(fields) == 0 {
				return nil, fmt.Errorf("registry line %d: continuation without field", line)
			}
			fields[len(fields)-1][1] += " " + strings.TrimSpace(text)
		default:
			name, value, ok := strings.Cut(text, ":")
			if !ok {
				return nil, fmt.Errorf("registry line %d: missing ':' separator", line)
			}
			fields = append(fields, [2]string{strings.TrimSpace(name), strings.TrimSpace(value)})
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read subtag registry: %w", err)
	}
	if err := flush(); err != nil {
		return nil, err
	}
	return reg, nil
}

// Lookup returns the record of a subtag of the given type
func (r *Registry) Lookup(typ, subtag string) (*Record, bool) {
	rec, ok := r.records[typ][strings.ToLower(subtag)]
	return rec, ok
}

// Count returns the number of records of a type
func (r *Registry) Count(typ string) int {
	return len(r.records[typ])
}

// LanguageVariants implements langtags.VariantLookup
func (r *Registry) LanguageVariants(lang string) []string {
	base, ok := canonicalLanguage(lang)
	if !ok {
		return nil
	}
	return descriptions(r.variantsWithPrefix(func(p []string) bool {
		return len(p) == 1 && p[0] == base
	}))
}

// ScriptVariants implements langtags.VariantLookup
func (r *Registry) ScriptVariants(lang, script string) []string {
	base, ok := canonicalLanguage(lang)
	if !ok {
		return nil
	}
	scr, err := language.ParseScript(strings.TrimSpace(script))
	if err != nil {
		return r.LanguageVariants(base)
	}
	want := strings.ToLower(scr.String())

	matched := r.variantsWithPrefix(func(p []string) bool {
		return len(p) == 2 && p[0] == base && p[1] == want
	})
	if len(matched) == 0 {
		return r.LanguageVariants(base)
	}
	return descriptions(matched)
}

// VariantVariants implements langtags.VariantLookup
func (r *Registry) VariantVariants(lang, variant string) []string {
	base, ok := canonicalLanguage(lang)
	if !ok {
		return nil
	}
	v, err := language.ParseVariant(strings.TrimSpace(variant))
	if err != nil {
		return nil
	}
	want := strings.ToLower(v.String())

	return descriptions(r.variantsWithPrefix(func(p []string) bool {
		if p[0] != base {
			return false
		}
		for _, sub := range p[1:] {
			if sub == want {
				return true
			}
		}
		return false
	}))
}

// variantsWithPrefix returns variants having at least one prefix accepted by match.
// Prefixes are passed lower-cased and split into subtags.
func (r *Registry) variantsWithPrefix(match func(prefix []string) bool) []*Record {
	var out []*Record
	for _, rec := range r.variants {
		for _, prefix := range rec.Prefixes {
			if match(strings.Split(strings.ToLower(prefix), "-")) {
				out = append(out, rec)
				break
			}
		}
	}
	return out
}

// canonicalLanguage validates a language subtag and maps deprecated codes to their replacement (iw -> he)
func canonicalLanguage(lang string) (string, bool) {
	lang = strings.TrimSpace(lang)
	if lang == "" {
		return "", false
	}
	if _, err := language.ParseBase(lang); err != nil {
		return "", false
	}
	tag, err := language.Parse(lang)
	if err != nil {
		return "", false
	}
	base, conf := tag.Base()
	if conf != language.Exact {
		return "", false
	}
	return strings.ToLower(base.String()), true
}

func descriptions(records []*Record) []string {
	out := make([]string, 0, len(records))
	for _, rec := range records {
		out = append(out, rec.Description())
	}
	return out
}
