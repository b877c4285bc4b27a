// Package landing serves the anniversary page copy in the viewer's language.
package landing

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"strings"

	"github.com/BurntSushi/toml"
	"golang.org/x/text/language"
)

//go:embed copy/*.toml
var copyFS embed.FS

// Copy is the page text for one language.
type Copy struct {
	Lang       string   `toml:"-" json:"lang"`
	Heading    string   `toml:"heading" json:"heading"`
	Years      string   `toml:"years" json:"years"`
	Tagline    string   `toml:"tagline" json:"tagline"`
	Message    string   `toml:"message" json:"-"`
	Paragraphs []string `toml:"-" json:"paragraphs"`
	Signature  string   `toml:"signature" json:"signature"`
	Footer     string   `toml:"footer" json:"footer"`
}

// Catalog holds every available translation.
type Catalog struct {
	copies  map[language.Tag]*Copy
	tags    []language.Tag
	matcher language.Matcher
}

// Load reads the embedded translations. defaultLang is preferred when
// nothing in a request matches; it falls back to English if unavailable.
func Load(defaultLang string) (*Catalog, error) {
	return loadFS(copyFS, "copy", defaultLang)
}

func loadFS(fsys fs.FS, dir, defaultLang string) (*Catalog, error) {
	files, err := fs.Glob(fsys, path.Join(dir, "*.toml"))
	if err != nil {
		return nil, err
	}

	c := &Catalog{copies: make(map[language.Tag]*Copy)}
	for _, name := range files {
		tag, err := language.Parse(strings.TrimSuffix(path.Base(name), ".toml"))
		if err != nil {
			return nil, fmt.Errorf("landing copy %s: %w", name, err)
		}
		data, err := fs.ReadFile(fsys, name)
		if err != nil {
			return nil, fmt.Errorf("landing copy %s: %w", name, err)
		}

		var cp Copy
		if _, err := toml.Decode(string(data), &cp); err != nil {
			return nil, fmt.Errorf("landing copy %s: %w", name, err)
		}
		cp.Lang = tag.String()
		cp.Paragraphs = SplitParagraphs(cp.Message)
		c.copies[tag] = &cp
		c.tags = append(c.tags, tag)
	}
	if len(c.tags) == 0 {
		return nil, fmt.Errorf("landing copy: no translations in %s", dir)
	}

	// the first tag is the matcher's fallback
	preferred := language.English
	if defaultLang != "" {
		if t, err := language.Parse(defaultLang); err == nil {
			preferred = t
		}
	}
	c.tags = moveFirst(c.tags, preferred)
	c.matcher = language.NewMatcher(c.tags)
	return c, nil
}

// moveFirst returns tags with the closest match to want in front.
func moveFirst(tags []language.Tag, want language.Tag) []language.Tag {
	_, idx, conf := language.NewMatcher(tags).Match(want)
	if conf == language.No {
		_, idx, conf = language.NewMatcher(tags).Match(language.English)
		if conf == language.No {
			return tags
		}
	}
	out := make([]language.Tag, 0, len(tags))
	out = append(out, tags[idx])
	for i, t := range tags {
		if i != idx {
			out = append(out, t)
		}
	}
	return out
}

// Select picks the best translation. An explicit lang wins over the
// Accept-Language header; both may be empty.
func (c *Catalog) Select(lang, acceptLanguage string) *Copy {
	var want []language.Tag
	if lang != "" {
		if t, err := language.Parse(lang); err == nil {
			want = append(want, t)
		}
	}
	if acceptLanguage != "" {
		if tags, _, err := language.ParseAcceptLanguage(acceptLanguage); err == nil {
			want = append(want, tags...)
		}
	}

	_, idx, _ := c.matcher.Match(want...)
	return c.copies[c.tags[idx]]
}

// Languages lists the available translations, fallback first.
func (c *Catalog) Languages() []string {
	out := make([]string, len(c.tags))
	for i, t := range c.tags {
		out[i] = t.String()
	}
	return out
}

// SplitParagraphs splits text on blank lines, trimming each paragraph and
// dropping empty ones.
func SplitParagraphs(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	paragraphs := []string{}
	for _, p := range strings.Split(text, "\n\n") {
		if p = strings.TrimSpace(p); p != "" {
			paragraphs = append(paragraphs, p)
		}
	}
	return paragraphs
}
