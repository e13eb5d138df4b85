// Package note models the generated Markdown note and its filing convention.
package note

import (
	"fmt"
	"path"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Generated is the parsed output of the formatter for one transcript.
type Generated struct {
	Title string   `json:"title"`
	Body  string   `json:"content"`
	Tags  []string `json:"tags"`
	Todos []string `json:"todos"`
}

// frontMatter is the YAML block at the top of a filed note.
type frontMatter struct {
	Title   string   `yaml:"title"`
	Created string   `yaml:"created"`
	Tags    []string `yaml:"tags"`
	Source  string   `yaml:"source"`
}

// MaxSlugLen caps the slug portion of a filename.
const MaxSlugLen = 60

// Slugify derives a filesystem-safe, human-readable slug from a note title.
// Lowercase, spaces and underscores become hyphens, everything outside
// [a-z0-9-] is dropped, hyphen runs collapse. Deterministic for a given title.
func Slugify(title string) string {
	var b strings.Builder
	prevHyphen := false
	for _, r := range strings.ToLower(strings.TrimSpace(title)) {
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			b.WriteRune(r)
			prevHyphen = false
		case r == ' ' || r == '_' || r == '-' || r == '\t':
			if !prevHyphen && b.Len() > 0 {
				b.WriteByte('-')
				prevHyphen = true
			}
		}
	}
	slug := strings.Trim(b.String(), "-")
	if len(slug) > MaxSlugLen {
		slug = strings.Trim(slug[:MaxSlugLen], "-")
	}
	if slug == "" {
		return "untitled"
	}
	return slug
}

// Filename computes the note filename for a given date and title:
// yyyy-MM-dd-<slug>.md.
func Filename(date time.Time, title string) string {
	return fmt.Sprintf("%s-%s.md", date.Format("2006-01-02"), Slugify(title))
}

// RenderOptions carries everything Render needs besides the note itself.
type RenderOptions struct {
	Tags      []string // final, namespaced tags
	AudioLink string   // vault-relative path of the archived audio
	Created   time.Time
}

// Render produces the full Markdown document for a filed note: YAML front
// matter, title heading, body, optional task checklist and the link back to
// the archived audio.
func Render(n *Generated, opts RenderOptions) (string, error) {
	fm := frontMatter{
		Title:   n.Title,
		Created: opts.Created.Format(time.RFC3339),
		Tags:    opts.Tags,
		Source:  path.Base(opts.AudioLink),
	}
	fmBytes, err := yaml.Marshal(&fm)
	if err != nil {
		return "", fmt.Errorf("marshal front matter: %w", err)
	}

	var b strings.Builder
	b.WriteString("---\n")
	b.Write(fmBytes)
	b.WriteString("---\n\n")
	b.WriteString("# " + n.Title + "\n\n")
	b.WriteString(strings.TrimSpace(n.Body))
	b.WriteString("\n")

	if len(opts.Tags) > 0 {
		b.WriteString("\n## Tags\n\n")
		for i, tag := range opts.Tags {
			if i > 0 {
				b.WriteByte(' ')
			}
			b.WriteString("#" + tag)
		}
		b.WriteString("\n")
	}

	if len(n.Todos) > 0 {
		b.WriteString("\n## Tasks\n\n")
		for _, todo := range n.Todos {
			b.WriteString("- [ ] " + todo + "\n")
		}
	}

	if opts.AudioLink != "" {
		b.WriteString("\n## Source\n\n")
		b.WriteString(fmt.Sprintf("![[%s]]\n", opts.AudioLink))
	}

	return b.String(), nil
}
