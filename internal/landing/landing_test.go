package landing

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Embedded(t *testing.T) {
	c, err := Load("en")
	require.NoError(t, err)

	assert.Equal(t, []string{"en", "fr"}, c.Languages())

	en := c.Select("", "")
	assert.Equal(t, "en", en.Lang)
	assert.Equal(t, "Thank You", en.Heading)
	assert.Equal(t, "One Year of Vidio Di Jour", en.Tagline)
	assert.Len(t, en.Paragraphs, 5)
	assert.Equal(t, "- Ismail B.", en.Signature)
}

func TestCatalog_Select(t *testing.T) {
	c, err := Load("en")
	require.NoError(t, err)

	tests := []struct {
		name   string
		lang   string
		accept string
		want   string
	}{
		{"nothing requested", "", "", "en"},
		{"explicit lang", "fr", "", "fr"},
		{"explicit wins over header", "en", "fr-FR,fr;q=0.9", "en"},
		{"header", "", "fr-CA,fr;q=0.8,en;q=0.5", "fr"},
		{"header weights", "", "de;q=0.9,fr;q=0.5", "fr"},
		{"unsupported falls back", "", "ja", "en"},
		{"garbage header", "", ";;;=", "en"},
		{"garbage lang", "@@", "", "en"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := c.Select(tt.lang, tt.accept)
			require.NotNil(t, got)
			assert.Equal(t, tt.want, got.Lang)
		})
	}
}

func TestLoad_DefaultLang(t *testing.T) {
	c, err := Load("fr")
	require.NoError(t, err)

	assert.Equal(t, "fr", c.Select("", "").Lang)
	assert.Equal(t, "fr", c.Select("", "ja").Lang)
	assert.Equal(t, "en", c.Select("", "en-US").Lang)
}

func TestLoad_UnavailableDefaultUsesEnglish(t *testing.T) {
	c, err := Load("ja")
	require.NoError(t, err)
	assert.Equal(t, "en", c.Languages()[0])
}

func TestLoadFS_Errors(t *testing.T) {
	_, err := loadFS(fstest.MapFS{}, "copy", "en")
	assert.ErrorContains(t, err, "no translations")

	_, err = loadFS(fstest.MapFS{
		"copy/en.toml": {Data: []byte("heading = ")},
	}, "copy", "en")
	assert.ErrorContains(t, err, "copy/en.toml")
}

func TestLoadFS_Paragraphs(t *testing.T) {
	c, err := loadFS(fstest.MapFS{
		"copy/en.toml": {Data: []byte("heading = \"Hi\"\nmessage = \"\"\"\none\n\ntwo\n\n\n\nthree\n\"\"\"\n")},
	}, "copy", "")
	require.NoError(t, err)

	assert.Equal(t, []string{"one", "two", "three"}, c.Select("", "").Paragraphs)
}

func TestSplitParagraphs(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{"empty", "", []string{}},
		{"single", "just one", []string{"just one"}},
		{"crlf", "a\r\n\r\nb", []string{"a", "b"}},
		{"single newline stays", "line one\nline two", []string{"line one\nline two"}},
		{"padding", "\n\n  a  \n\n\n\n b \n", []string{"a", "b"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SplitParagraphs(tt.in))
		})
	}
}
