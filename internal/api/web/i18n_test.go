//go:build unit
// +build unit

package web

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
)

func TestNewTranslator(t *testing.T) {
	translator, err := NewTranslator("en", nil)
	require.NoError(t, err)

	langs := translator.Languages()
	require.NotEmpty(t, langs)
	assert.Equal(t, language.English, langs[0])
	assert.Contains(t, langs, language.Greek)
}

func TestNewTranslator_InvalidLanguage(t *testing.T) {
	_, err := NewTranslator("not a tag!", nil)
	assert.Error(t, err)

	_, err = NewTranslator("en", []string{"??"})
	assert.Error(t, err)
}

func TestTranslator_Negotiate(t *testing.T) {
	translator, err := NewTranslator("en", []string{"en", "el"})
	require.NoError(t, err)

	tests := []struct {
		name           string
		choice         string
		acceptLanguage string
		want           language.Tag
	}{
		{"Default", "", "", language.English},
		{"AcceptLanguage", "", "el-GR,el;q=0.9,en;q=0.8", language.Greek},
		{"ExplicitChoiceWins", "en", "el", language.English},
		{"Unsupported", "", "de", language.English},
		{"InvalidChoiceIgnored", "!!", "el", language.Greek},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, translator.Negotiate(tt.choice, tt.acceptLanguage))
		})
	}
}

func TestTranslator_Translate(t *testing.T) {
	translator, err := NewTranslator("en", nil)
	require.NoError(t, err)

	assert.Equal(t, "Home", translator.Translate(language.English, "nav.home"))
	assert.Equal(t, "Αρχική", translator.Translate(language.Greek, "nav.home"))
	assert.Equal(t, "no.such.key", translator.Translate(language.Greek, "no.such.key"))
}
