// Package formatter renders an ast.Feature back to Gherkin text in the
// feature's language, always using each construct's canonical keyword.
// Rendering is deterministic and the output reparses to a structurally
// equal tree.
package formatter

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/mkarren/gherkit/internal/ast"
	"github.com/mkarren/gherkit/internal/language"
)

var directiveShapedRE = regexp.MustCompile(`^\s*language:\s*\S+\s*$`)

// Config controls indentation and blank-line policy.
type Config struct {
	// IndentChar is the character repeated to indent, normally a space.
	IndentChar rune
	// IndentWidth is the number of IndentChar per nesting level.
	IndentWidth int
	// Compact suppresses all blank separator lines.
	Compact bool
}

// DefaultConfig renders with two spaces per level and blank separators.
func DefaultConfig() Config {
	return Config{IndentChar: ' ', IndentWidth: 2}
}

// Format renders the feature tree as localized Gherkin text.
func Format(f *ast.Feature, cfg Config) string {
	if cfg.IndentChar == 0 {
		cfg.IndentChar = ' '
	}
	if cfg.IndentWidth <= 0 {
		cfg.IndentWidth = 2
	}
	w := &writer{cfg: cfg, keywords: language.Keywords(f.Language)}

	// A comment whose text reads as a language directive would be taken
	// for one when re-read at the top of the document, so the real
	// directive must come first in that case even for the default
	// language.
	needHeader := f.Language != language.Default
	for _, c := range f.Comments {
		if directiveShapedRE.MatchString(c.Text) {
			needHeader = true
			break
		}
	}
	if needHeader {
		w.line(0, "# language: "+f.Language)
		w.separator()
	}
	for _, c := range f.Comments {
		w.line(0, "#"+c.Text)
	}
	w.tags(0, f.Tags)
	w.line(0, w.keywords.Feature[0]+": "+f.Title)
	w.description(1, f.Description)

	if f.Background != nil {
		w.background(1, f.Background)
	}
	for _, child := range f.Children {
		switch {
		case child.Scenario != nil:
			w.scenario(1, child.Scenario)
		case child.Outline != nil:
			w.outline(1, child.Outline)
		case child.Rule != nil:
			w.rule(child.Rule)
		}
	}
	return w.sb.String()
}

type writer struct {
	sb       strings.Builder
	cfg      Config
	keywords language.Table
	pending  bool // a blank separator is due before the next line
}

// separator requests one blank line before the next content line.
// Consecutive requests collapse so separators never double up.
func (w *writer) separator() {
	if !w.cfg.Compact && w.sb.Len() > 0 {
		w.pending = true
	}
}

func (w *writer) line(level int, text string) {
	if w.pending {
		w.sb.WriteByte('\n')
		w.pending = false
	}
	if text != "" {
		w.sb.WriteString(strings.Repeat(string(w.cfg.IndentChar), w.cfg.IndentWidth*level))
		w.sb.WriteString(text)
	}
	w.sb.WriteByte('\n')
}

func (w *writer) tags(level int, tags []ast.Tag) {
	if len(tags) == 0 {
		return
	}
	rendered := make([]string, len(tags))
	for i, t := range tags {
		rendered[i] = t.String()
	}
	w.line(level, strings.Join(rendered, " "))
}

// description writes free text one level deeper than its owner's header,
// followed by a separator when it spans multiple lines.
func (w *writer) description(level int, text string) {
	if text == "" {
		return
	}
	lines := strings.Split(text, "\n")
	for _, l := range lines {
		w.line(level, l)
	}
	if len(lines) > 1 {
		w.separator()
	}
}

func (w *writer) background(level int, bg *ast.Background) {
	w.separator()
	header := w.keywords.Background[0] + ":"
	if bg.Name != "" {
		header += " " + bg.Name
	}
	w.line(level, header)
	w.description(level+1, bg.Description)
	w.steps(level+1, bg.Steps)
}

func (w *writer) scenario(level int, sc *ast.Scenario) {
	w.separator()
	w.tags(level, sc.Tags)
	w.line(level, w.keywords.Scenario[0]+": "+sc.Title)
	w.description(level+1, sc.Description)
	w.steps(level+1, sc.Steps)
}

func (w *writer) outline(level int, so *ast.ScenarioOutline) {
	w.separator()
	w.tags(level, so.Tags)
	w.line(level, w.keywords.ScenarioOutline[0]+": "+so.Title)
	w.description(level+1, so.Description)
	w.steps(level+1, so.Steps)
	for _, ex := range so.Examples {
		w.examples(level+1, ex)
	}
}

func (w *writer) examples(level int, ex ast.Examples) {
	w.tags(level, ex.Tags)
	header := w.keywords.Examples[0] + ":"
	if ex.Name != "" {
		header += " " + ex.Name
	}
	w.line(level, header)
	w.table(level+1, ex.Table)
}

func (w *writer) rule(r *ast.Rule) {
	w.separator()
	w.tags(1, r.Tags)
	w.line(1, w.keywords.Rule[0]+": "+r.Title)
	w.description(2, r.Description)
	if r.Background != nil {
		w.background(2, r.Background)
	}
	for _, child := range r.Children {
		switch {
		case child.Scenario != nil:
			w.scenario(2, child.Scenario)
		case child.Outline != nil:
			w.outline(2, child.Outline)
		}
	}
}

func (w *writer) steps(level int, steps []ast.Step) {
	for _, s := range steps {
		w.line(level, w.stepKeyword(s.Keyword)+s.Text)
		if s.Table != nil {
			w.table(level+1, *s.Table)
		}
		if s.DocString != nil {
			w.docString(level+1, *s.DocString)
		}
	}
}

// stepKeyword returns the canonical rendering prefix for a step keyword.
// The table entries carry their own separator, so the prefix is rendered
// directly in front of the step text.
func (w *writer) stepKeyword(k ast.StepKeyword) string {
	switch k {
	case ast.Given:
		return w.keywords.Given[0]
	case ast.When:
		return w.keywords.When[0]
	case ast.Then:
		return w.keywords.Then[0]
	case ast.And:
		return w.keywords.And[0]
	case ast.But:
		return w.keywords.But[0]
	default:
		return "* "
	}
}

// table renders every row with identical pipe positions: each column is
// padded to the widest cell in that column, with one space on either side.
func (w *writer) table(level int, t ast.DataTable) {
	widths := columnWidths(t)
	for _, row := range t.Rows {
		var b strings.Builder
		b.WriteByte('|')
		for i, cell := range row {
			width := utf8.RuneCountInString(cell)
			if i < len(widths) {
				width = widths[i]
			}
			b.WriteByte(' ')
			b.WriteString(cell)
			b.WriteString(strings.Repeat(" ", width-utf8.RuneCountInString(cell)))
			b.WriteString(" |")
		}
		w.line(level, b.String())
	}
}

func columnWidths(t ast.DataTable) []int {
	var widths []int
	for _, row := range t.Rows {
		for i, cell := range row {
			n := utf8.RuneCountInString(cell)
			if i >= len(widths) {
				widths = append(widths, n)
			} else if n > widths[i] {
				widths[i] = n
			}
		}
	}
	return widths
}

// docString renders the opening delimiter with its media-type suffix, the
// content verbatim one level deeper than the step, and a bare closing
// delimiter at the delimiter indent. Blank content lines stay empty so no
// trailing whitespace is emitted. A content line that reads as the quote
// delimiter would close the block early, so such content switches the
// block to backticks.
func (w *writer) docString(level int, d ast.DocString) {
	lines := strings.Split(d.Content, "\n")
	delim := `"""`
	for _, l := range lines {
		if strings.TrimSpace(l) == delim {
			delim = "```"
			break
		}
	}
	w.line(level, delim+d.MediaType)
	for _, l := range lines {
		w.line(level, l)
	}
	w.line(level, delim)
}
