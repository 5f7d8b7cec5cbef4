package web

import (
	"strings"

	"github.com/hpusset/ELRI-sub001/internal/pkg/config"
	"github.com/hpusset/ELRI-sub001/internal/pkg/logger"

	"golang.org/x/text/language"
)

// ContextProcessor exposes site settings to every rendered page
type ContextProcessor struct {
	site   *config.SiteSettings
	emails map[string]string
	logger logger.Logger
}

// NewContextProcessor creates a ContextProcessor. Email keys are matched case-insensitively.
func NewContextProcessor(site *config.SiteSettings, logger logger.Logger) *ContextProcessor {
	emails := make(map[string]string, len(site.EmailAddresses))
	for key, address := range site.EmailAddresses {
		emails[strings.ToLower(key)] = address
	}
	return &ContextProcessor{site: site, emails: emails, logger: logger}
}

// Context returns the template values shared by all pages
func (p *ContextProcessor) Context(lang language.Tag) map[string]interface{} {
	return map[string]interface{}{
		"COUNTRY":         p.site.Country,
		"LANGUAGE_CODE":   p.site.LanguageCode,
		"LANGUAGE":        lang.String(),
		"EMAIL_ADDRESSES": p.emails,
	}
}

// Email returns the configured address for key. Unknown keys are logged and yield "".
func (p *ContextProcessor) Email(key string) string {
	address, ok := p.emails[strings.ToLower(key)]
	if !ok {
		p.logger.Warn("email address not configured", "key", key)
		return ""
	}
	return address
}
