package projects

import (
	"fmt"
	"strings"
)

// Markdown renders the detail page of a project.
func Markdown(p Project) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", p.Title)
	if p.Year > 0 {
		fmt.Fprintf(&b, "*%d*\n\n", p.Year)
	}
	if len(p.TechStack) > 0 {
		tags := make([]string, len(p.TechStack))
		for i, t := range p.TechStack {
			tags[i] = "`" + t + "`"
		}
		b.WriteString(strings.Join(tags, " "))
		b.WriteString("\n\n")
	}

	b.WriteString("## About this project\n\n")
	desc := p.Description
	if desc == "" {
		desc = p.ShortDescription
	}
	b.WriteString(desc)
	b.WriteString("\n\n")

	if p.Link != "" || p.GitHub != "" {
		b.WriteString("## Links\n\n")
		if p.Link != "" {
			fmt.Fprintf(&b, "- [View Live Project](%s)\n", p.Link)
		}
		if p.GitHub != "" {
			fmt.Fprintf(&b, "- [View on GitHub](%s)\n", p.GitHub)
		}
		b.WriteString("\n")
	}
	return b.String()
}

// NotFoundMarkdown is shown for an unknown slug.
func NotFoundMarkdown(slug string) string {
	return fmt.Sprintf("# Project Not Found\n\nSorry, the project `%s` doesn't exist or has been moved.\n", slug)
}
