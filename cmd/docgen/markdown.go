package main

import (
	"fmt"
	"strings"
)

// renderPage turns gomarkdoc output into a page with frontmatter.
func renderPage(pkg Package, content string) string {
	frontmatter := fmt.Sprintf("---\nid: %s\ntitle: %s\nsidebar_position: %d\n---\n\n",
		pkg.Name, pkg.Title, pkg.Position)
	return frontmatter + processMarkdown(content)
}

// processMarkdown drops the parts of gomarkdoc output the reference pages
// replace: the package heading, the index, import blocks and the HTML
// wrappers around examples.
func processMarkdown(content string) string {
	lines := strings.Split(content, "\n")
	var result []string
	inImport := false
	inIndex := false

	for i, line := range lines {
		if i == 0 && strings.HasPrefix(line, "# ") {
			continue
		}

		if line == "## Index" {
			inIndex = true
			continue
		}
		if inIndex {
			if !strings.HasPrefix(line, "## ") {
				continue
			}
			inIndex = false
		}

		if strings.HasPrefix(line, "```go") && i+1 < len(lines) && strings.HasPrefix(lines[i+1], "import ") {
			inImport = true
		}
		if inImport {
			if line == "```" {
				inImport = false
			}
			continue
		}

		if summary, ok := strings.CutPrefix(line, "<details><summary>"); ok {
			if summary, ok := strings.CutSuffix(summary, "</summary>"); ok {
				result = append(result, "", fmt.Sprintf("**%s:**", summary), "")
				continue
			}
		}

		if line == "</details>" || line == "<p>" || line == "</p>" {
			continue
		}

		result = append(result, line)
	}

	return strings.Join(result, "\n")
}
