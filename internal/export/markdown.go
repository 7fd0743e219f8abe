package export

import (
	"strings"

	"github.com/mkarren/gherkit/internal/ast"
)

// Markdown renders a feature tree as documentation: headings for the
// feature, rules and scenarios, bullet steps, pipe tables and fenced code
// blocks for doc strings. The output is for reading, not for parsing back.
func Markdown(f *ast.Feature) string {
	var b strings.Builder

	b.WriteString("# " + f.Title + "\n")
	writeTagLine(&b, f.Tags)
	writeParagraph(&b, f.Description)

	if f.Background != nil {
		writeBackgroundMD(&b, "## Background", f.Background)
	}
	for _, child := range f.Children {
		switch {
		case child.Scenario != nil:
			writeScenarioMD(&b, "##", child.Scenario)
		case child.Outline != nil:
			writeOutlineMD(&b, "##", child.Outline)
		case child.Rule != nil:
			writeRuleMD(&b, child.Rule)
		}
	}
	return b.String()
}

func writeRuleMD(b *strings.Builder, r *ast.Rule) {
	b.WriteString("\n## Rule: " + r.Title + "\n")
	writeTagLine(b, r.Tags)
	writeParagraph(b, r.Description)
	if r.Background != nil {
		writeBackgroundMD(b, "### Background", r.Background)
	}
	for _, child := range r.Children {
		switch {
		case child.Scenario != nil:
			writeScenarioMD(b, "###", child.Scenario)
		case child.Outline != nil:
			writeOutlineMD(b, "###", child.Outline)
		}
	}
}

func writeBackgroundMD(b *strings.Builder, heading string, bg *ast.Background) {
	b.WriteString("\n" + heading)
	if bg.Name != "" {
		b.WriteString(": " + bg.Name)
	}
	b.WriteString("\n")
	writeParagraph(b, bg.Description)
	writeStepsMD(b, bg.Steps)
}

func writeScenarioMD(b *strings.Builder, heading string, sc *ast.Scenario) {
	b.WriteString("\n" + heading + " Scenario: " + sc.Title + "\n")
	writeTagLine(b, sc.Tags)
	writeParagraph(b, sc.Description)
	writeStepsMD(b, sc.Steps)
}

func writeOutlineMD(b *strings.Builder, heading string, so *ast.ScenarioOutline) {
	b.WriteString("\n" + heading + " Scenario Outline: " + so.Title + "\n")
	writeTagLine(b, so.Tags)
	writeParagraph(b, so.Description)
	writeStepsMD(b, so.Steps)
	for _, ex := range so.Examples {
		b.WriteString("\n**Examples")
		if ex.Name != "" {
			b.WriteString(": " + ex.Name)
		}
		b.WriteString("**\n\n")
		writeTableMD(b, ex.Table)
	}
}

func writeStepsMD(b *strings.Builder, steps []ast.Step) {
	if len(steps) == 0 {
		return
	}
	b.WriteString("\n")
	for _, s := range steps {
		keyword := strings.TrimSpace(string(s.Keyword))
		b.WriteString("- **" + keyword + "** " + s.Text + "\n")
		if s.Table != nil {
			b.WriteString("\n")
			writeTableMD(b, *s.Table)
			b.WriteString("\n")
		}
		if s.DocString != nil {
			b.WriteString("\n```" + s.DocString.MediaType + "\n")
			b.WriteString(s.DocString.Content + "\n")
			b.WriteString("```\n\n")
		}
	}
}

// writeTableMD renders a Markdown table with the first row as header and
// the mandatory separator row.
func writeTableMD(b *strings.Builder, t ast.DataTable) {
	for i, row := range t.Rows {
		b.WriteString("| " + strings.Join(row, " | ") + " |\n")
		if i == 0 {
			seps := make([]string, len(row))
			for j := range seps {
				seps[j] = "---"
			}
			b.WriteString("| " + strings.Join(seps, " | ") + " |\n")
		}
	}
}

func writeTagLine(b *strings.Builder, tags []ast.Tag) {
	if len(tags) == 0 {
		return
	}
	rendered := make([]string, len(tags))
	for i, t := range tags {
		rendered[i] = "`" + t.String() + "`"
	}
	b.WriteString("\n" + strings.Join(rendered, " ") + "\n")
}

func writeParagraph(b *strings.Builder, text string) {
	if text == "" {
		return
	}
	b.WriteString("\n" + text + "\n")
}
