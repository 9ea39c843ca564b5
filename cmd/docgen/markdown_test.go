package main

import (
	"strings"
	"testing"
)

func TestProcessMarkdown(t *testing.T) {
	in := strings.Join([]string{
		"# animation",
		"",
		"```go",
		`import "github.com/go-drift/timing/pkg/animation"`,
		"```",
		"",
		"Package animation computes effect timing.",
		"",
		"## Index",
		"",
		"- [func Normalize](<#Normalize>)",
		"",
		"## func Normalize",
		"",
		"<details><summary>Example</summary>",
		"<p>",
		"",
		"```go",
		"fmt.Println(1)",
		"```",
		"",
		"</p>",
		"</details>",
	}, "\n")

	want := strings.Join([]string{
		"",
		"",
		"Package animation computes effect timing.",
		"",
		"## func Normalize",
		"",
		"",
		"**Example:**",
		"",
		"",
		"```go",
		"fmt.Println(1)",
		"```",
		"",
	}, "\n")

	if got := processMarkdown(in); got != want {
		t.Errorf("processMarkdown() =\n%q\nwant\n%q", got, want)
	}
}

func TestRenderPage(t *testing.T) {
	page := renderPage(packages[0], "# animation\nbody")
	if !strings.HasPrefix(page, "---\nid: animation\ntitle: Animation Timing\nsidebar_position: 1\n---\n\n") {
		t.Errorf("unexpected frontmatter:\n%s", page)
	}
	if !strings.HasSuffix(page, "body") {
		t.Errorf("body missing:\n%s", page)
	}
}
