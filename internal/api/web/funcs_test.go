//go:build unit
// +build unit

package web

import (
	"html/template"
	"testing"

	"github.com/hpusset/ELRI-sub001/internal/pkg/validators"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrettyQuotes(t *testing.T) {
	assert.Equal(t, "the “Greek” corpus", PrettyQuotes(`the "Greek" corpus`))
	assert.Equal(t, "“a” and “b”", PrettyQuotes(`"a" and "b"`))
	assert.Equal(t, "Europe’s corpus", PrettyQuotes("Europe's corpus"))
	assert.Equal(t, "", PrettyQuotes(""))
}

func TestURLValid(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"   ", ""},
		{"elrc-share.eu", "http://elrc-share.eu"},
		{" elrc-share.eu/x ", "http://elrc-share.eu/x"},
		{"http://elrc-share.eu", "http://elrc-share.eu"},
		{"HTTPS://elrc-share.eu", "HTTPS://elrc-share.eu"},
		{"ftp://files.example.org", "ftp://files.example.org"},
		{"sftp://files.example.org", "sftp://files.example.org"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, URLValid(tt.in))
		})
	}
}

func TestURLValid_KeepsHomepageSchemes(t *testing.T) {
	for _, scheme := range validators.URLSchemes {
		url := scheme + "elrc-share.eu"
		assert.Equal(t, url, URLValid(url))
	}
}

func TestAddAttribute(t *testing.T) {
	got, err := AddAttribute(`<img src="logo.png">`, "alt", "ELRI")
	require.NoError(t, err)
	assert.Equal(t, template.HTML(`<img src="logo.png" alt="ELRI"/>`), got)

	got, err = AddAttribute(`<a href="/" class="old">home</a>`, "class", "brand")
	require.NoError(t, err)
	assert.Equal(t, template.HTML(`<a href="/" class="brand">home</a>`), got)
}

func TestAddAttribute_OnlyFirstElement(t *testing.T) {
	got, err := AddAttribute(`<span>a</span><span>b</span>`, "id", "x")
	require.NoError(t, err)
	assert.Equal(t, template.HTML(`<span id="x">a</span><span>b</span>`), got)
}

func TestLinksTargetBlank(t *testing.T) {
	got, err := LinksTargetBlank(`see <a href="https://elrc-share.eu">ELRC</a>`)
	require.NoError(t, err)
	assert.Equal(t, template.HTML(`see <a href="https://elrc-share.eu" target="_blank" rel="noopener noreferrer">ELRC</a>`), got)
}

func TestLinksTargetBlank_RelativeLinkUntouched(t *testing.T) {
	got, err := LinksTargetBlank(`<a href="/repository/">local</a>`)
	require.NoError(t, err)
	assert.Equal(t, template.HTML(`<a href="/repository/">local</a>`), got)
}
