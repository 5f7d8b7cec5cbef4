package app

import (
	"bytes"
	"context"
	"encoding/xml"
	"fmt"
	"path"
	"sort"
	"strings"

	"github.com/hpusset/ELRI-sub001/internal/domain/tm"
	"github.com/hpusset/ELRI-sub001/internal/pkg/logger"

	"golang.org/x/text/language"
)

const (
	defaultUnitLimit = 100
	maxUnitLimit     = 1000
)

// tmxDocument is the subset of TMX read on upload
type tmxDocument struct {
	XMLName xml.Name `xml:"tmx"`
	Header  struct {
		SrcLang string `xml:"srclang,attr"`
	} `xml:"header"`
	Units []struct {
		TUID     string `xml:"tuid,attr"`
		Variants []struct {
			XMLLang string `xml:"http://www.w3.org/XML/1998/namespace lang,attr"`
			Lang    string `xml:"lang,attr"`
			Seg     string `xml:"seg"`
		} `xml:"tuv"`
	} `xml:"body>tu"`
}

type unitsResult struct {
	Units []*tm.TranslationUnit `xml:"tu"`
}

// tmService implements the TMService interface over a BaseX database
type tmService struct {
	opener   tm.SessionOpener
	database string
	logger   logger.Logger
}

// NewTMService creates a new instance of TMService storing documents in database
func NewTMService(opener tm.SessionOpener, database string, logger logger.Logger) (tm.TMService, error) {
	if database == "" {
		return nil, fmt.Errorf("translation memory database is required")
	}
	return &tmService{
		opener:   opener,
		database: database,
		logger:   logger,
	}, nil
}

func (s *tmService) AddDocument(ctx context.Context, name string, tmx []byte) (*tm.Document, error) {
	doc, err := parseTMX(tmx)
	if err != nil {
		return nil, err
	}

	docPath := path.Base(strings.ReplaceAll(name, "\\", "/"))
	if docPath == "." || docPath == "/" {
		return nil, fmt.Errorf("%w: missing document name", tm.ErrInvalidTMX)
	}
	doc.Path = docPath

	session, err := s.opener.Dial(ctx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = session.Close() }()

	// CHECK opens the database, creating it when missing
	if _, err := session.Execute("CHECK " + s.database); err != nil {
		return nil, fmt.Errorf("failed to open translation memory %s: %w", s.database, err)
	}
	if err := session.Replace(docPath, string(tmx)); err != nil {
		return nil, fmt.Errorf("failed to store %s: %w", docPath, err)
	}

	s.logger.Info("translation memory document stored",
		"path", docPath,
		"units", doc.Units,
		"languages", strings.Join(doc.Languages, ","))
	return doc, nil
}

// Units matches language tags by primary language, so "en" also finds "en-GB" variants.
func (s *tmService) Units(ctx context.Context, sourceLang, targetLang string, limit int) ([]*tm.TranslationUnit, error) {
	src, err := canonicalTag(sourceLang)
	if err != nil {
		return nil, err
	}
	tgt, err := canonicalTag(targetLang)
	if err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = defaultUnitLimit
	}
	if limit > maxUnitLimit {
		limit = maxUnitLimit
	}

	session, err := s.opener.Open(ctx, s.database)
	if err != nil {
		return nil, err
	}
	defer func() { _ = session.Close() }()

	out, err := session.Execute("XQUERY " + unitsQuery(strings.ToLower(src), strings.ToLower(tgt), limit))
	if err != nil {
		return nil, fmt.Errorf("failed to query translation units: %w", err)
	}

	var result unitsResult
	if err := xml.Unmarshal([]byte(out), &result); err != nil {
		return nil, fmt.Errorf("failed to decode translation units: %w", err)
	}
	for _, unit := range result.Units {
		unit.SourceLang = src
		unit.TargetLang = tgt
	}
	return result.Units, nil
}

func unitsQuery(src, tgt string, limit int) string {
	return strings.Join([]string{
		"declare function local:is($tuv, $lang) {",
		"let $l := lower-case(string(($tuv/@xml:lang, $tuv/@lang)[1]))",
		"return $l = $lang or starts-with($l, concat($lang, '-')) };",
		fmt.Sprintf("<units>{ for $tu in subsequence(//tu[tuv[local:is(., '%s')] and tuv[local:is(., '%s')]], 1, %d)", src, tgt, limit),
		fmt.Sprintf("let $s := ($tu/tuv[local:is(., '%s')])[1] let $t := ($tu/tuv[local:is(., '%s')])[1]", src, tgt),
		"return <tu id='{$tu/@tuid}'><src>{string($s/seg)}</src><tgt>{string($t/seg)}</tgt></tu> }</units>",
	}, " ")
}

// parseTMX checks the document structure and summarizes it
func parseTMX(data []byte) (*tm.Document, error) {
	var doc tmxDocument
	dec := xml.NewDecoder(bytes.NewReader(data))
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: %v", tm.ErrInvalidTMX, err)
	}
	if len(doc.Units) == 0 {
		return nil, fmt.Errorf("%w: no translation units", tm.ErrInvalidTMX)
	}

	seen := make(map[string]struct{})
	for _, unit := range doc.Units {
		for _, variant := range unit.Variants {
			lang := variant.XMLLang
			if lang == "" {
				lang = variant.Lang
			}
			tag, err := canonicalTag(lang)
			if err != nil {
				return nil, fmt.Errorf("%w: unit %q: %v", tm.ErrInvalidTMX, unit.TUID, err)
			}
			seen[tag] = struct{}{}
		}
	}

	languages := make([]string, 0, len(seen))
	for lang := range seen {
		languages = append(languages, lang)
	}
	sort.Strings(languages)

	result := &tm.Document{
		Units:     len(doc.Units),
		Languages: languages,
	}
	if doc.Header.SrcLang != "" && !strings.EqualFold(doc.Header.SrcLang, "*all*") {
		if tag, err := canonicalTag(doc.Header.SrcLang); err == nil {
			result.SourceLang = tag
		}
	}
	return result, nil
}

// canonicalTag returns the canonical form of a BCP47 tag, e.g. "iw" becomes "he"
func canonicalTag(s string) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", fmt.Errorf("%w: empty", tm.ErrInvalidLanguage)
	}
	tag, err := language.Parse(s)
	if err != nil {
		return "", fmt.Errorf("%w %q: %v", tm.ErrInvalidLanguage, s, err)
	}
	return tag.String(), nil
}
