package source

import (
	"regexp"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
	"gopkg.in/yaml.v2"
)

var frontMatterRe = regexp.MustCompile(`(?ms)^---\n(.+?)\n---`)

// markdownTitle extracts a display title from a markdown file: the
// frontmatter title when present, otherwise the first heading.
func markdownTitle(content []byte) string {
	if m := frontMatterRe.FindSubmatch(content); len(m) >= 2 {
		var data struct {
			Title string `yaml:"title"`
		}
		if err := yaml.Unmarshal(m[1], &data); err == nil {
			if title := strings.TrimSpace(data.Title); title != "" {
				return title
			}
		}
	}

	return firstHeading(content)
}

func firstHeading(content []byte) string {
	parser := goldmark.DefaultParser()
	document := parser.Parse(text.NewReader(content))

	var title string
	ast.Walk(document, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		if heading, ok := n.(*ast.Heading); ok {
			title = strings.TrimSpace(string(heading.Text(content)))
			return ast.WalkStop, nil
		}
		return ast.WalkContinue, nil
	})

	return title
}
