// Package parser turns Gherkin document text into an ast.Feature tree. The
// parser is single-pass, line-oriented, and fail-fast: the first fatal
// problem aborts with a line-tagged SyntaxError and no partial tree.
package parser

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/mkarren/gherkit/internal/ast"
	"github.com/mkarren/gherkit/internal/language"
)

var languageDirectiveRE = regexp.MustCompile(`^#\s*language:\s*(\S+)\s*$`)

// SyntaxError is a fatal parse error with a 1-based source line number.
type SyntaxError struct {
	Line    int
	Message string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("line %d: %s", e.Line, e.Message)
}

// Parse parses a complete document and returns the feature tree, or a
// *SyntaxError describing the first fatal problem.
func Parse(src []byte) (*ast.Feature, error) {
	p := &parser{lines: splitLines(src)}
	return p.parseDocument()
}

type parser struct {
	lines    []string
	pos      int // 0-based index of the current line
	keywords language.Table
	comments []ast.Comment
}

// lineNum is the 1-based number of the current line.
func (p *parser) lineNum() int {
	return p.pos + 1
}

func (p *parser) errorf(format string, args ...any) error {
	return &SyntaxError{Line: p.lineNum(), Message: fmt.Sprintf(format, args...)}
}

func (p *parser) eof() bool {
	return p.pos >= len(p.lines)
}

// current returns the current line with indentation stripped.
func (p *parser) current() string {
	return strings.TrimSpace(p.lines[p.pos])
}

func (p *parser) parseDocument() (*ast.Feature, error) {
	code, err := p.parsePreamble()
	if err != nil {
		return nil, err
	}
	p.keywords = language.Keywords(code)

	feature := &ast.Feature{Language: code}

	feature.Tags = p.parseTagLines()
	if p.eof() {
		return nil, p.atEOF("expected 'Feature:'")
	}
	title, ok := p.matchHeader(p.keywords.Feature)
	if !ok {
		return nil, p.errorf("expected 'Feature:', got %q", p.current())
	}
	feature.Title = title
	p.pos++
	feature.Description = p.parseDescription()

	if !p.eof() {
		if bg, matched, err := p.parseBackground(); err != nil {
			return nil, err
		} else if matched {
			feature.Background = bg
		}
	}

	for {
		p.skipBlankAndComments()
		if p.eof() {
			break
		}
		tags := p.parseTagLines()
		p.skipBlankAndComments()
		if p.eof() {
			if len(tags) > 0 {
				return nil, p.atEOF("tags are not attached to any scenario, outline or rule")
			}
			break
		}

		switch {
		case p.headerMatches(p.keywords.Feature):
			return nil, p.errorf("only one Feature is allowed per document")
		case p.headerMatches(p.keywords.ScenarioOutline):
			so, err := p.parseOutline(tags)
			if err != nil {
				return nil, err
			}
			feature.Children = append(feature.Children, ast.FeatureChild{Outline: so})
		case p.headerMatches(p.keywords.Scenario):
			sc, err := p.parseScenario(tags)
			if err != nil {
				return nil, err
			}
			feature.Children = append(feature.Children, ast.FeatureChild{Scenario: sc})
		case p.headerMatches(p.keywords.Rule):
			rule, err := p.parseRule(tags)
			if err != nil {
				return nil, err
			}
			feature.Children = append(feature.Children, ast.FeatureChild{Rule: rule})
		default:
			return nil, p.errorf("expected a scenario, scenario outline or rule, got %q", p.current())
		}
	}

	feature.Comments = p.comments
	return feature, nil
}

// atEOF builds an error pointing at the line after the last one.
func (p *parser) atEOF(msg string) error {
	return &SyntaxError{Line: len(p.lines) + 1, Message: msg}
}

// parsePreamble consumes leading blank and comment lines and returns the
// language code from a `# language: <code>` directive, or the default. An
// unknown code is fatal. The directive itself is not kept as a comment.
func (p *parser) parsePreamble() (string, error) {
	code := language.Default
	seenDirective := false
	for !p.eof() {
		line := p.current()
		switch {
		case line == "":
			p.pos++
		case strings.HasPrefix(line, "#"):
			if m := languageDirectiveRE.FindStringSubmatch(line); m != nil && !seenDirective {
				if _, known := language.Lookup(m[1]); !known {
					return "", p.errorf("unsupported language: %q", m[1])
				}
				code = m[1]
				seenDirective = true
			} else {
				p.comments = append(p.comments, ast.Comment{Text: strings.TrimPrefix(line, "#")})
			}
			p.pos++
		default:
			return code, nil
		}
	}
	return code, nil
}

// skipBlankAndComments advances past blank lines and comments, collecting
// comment text in source order.
func (p *parser) skipBlankAndComments() {
	for !p.eof() {
		line := p.current()
		if line == "" {
			p.pos++
			continue
		}
		if strings.HasPrefix(line, "#") {
			p.comments = append(p.comments, ast.Comment{Text: strings.TrimPrefix(line, "#")})
			p.pos++
			continue
		}
		return
	}
}

// parseTagLines consumes consecutive tag lines, skipping interleaved blank
// lines and comments.
func (p *parser) parseTagLines() []ast.Tag {
	var tags []ast.Tag
	for {
		p.skipBlankAndComments()
		if p.eof() || !strings.HasPrefix(p.current(), "@") {
			return tags
		}
		for _, field := range strings.Fields(p.current()) {
			tags = append(tags, ast.Tag{Name: strings.TrimPrefix(field, "@")})
		}
		p.pos++
	}
}

// headerMatches reports whether the current line starts with one of the
// given header keywords followed by a colon.
func (p *parser) headerMatches(keywords []string) bool {
	_, ok := p.matchHeaderLine(p.current(), keywords)
	return ok
}

// matchHeader matches the current line against header keywords and returns
// the text after the colon.
func (p *parser) matchHeader(keywords []string) (string, bool) {
	return p.matchHeaderLine(p.current(), keywords)
}

func (p *parser) matchHeaderLine(line string, keywords []string) (string, bool) {
	for _, kw := range keywords {
		if strings.HasPrefix(line, kw+":") {
			return strings.TrimSpace(strings.TrimPrefix(line, kw+":")), true
		}
	}
	return "", false
}

// parseDescription accumulates free-text lines until the next structural
// line (keyword, tag, step, table row or doc-string delimiter). Interior
// blank lines are kept; surrounding blank lines are trimmed.
func (p *parser) parseDescription() string {
	var lines []string
	for !p.eof() {
		line := p.current()
		if line == "" {
			lines = append(lines, "")
			p.pos++
			continue
		}
		if strings.HasPrefix(line, "#") {
			p.comments = append(p.comments, ast.Comment{Text: strings.TrimPrefix(line, "#")})
			p.pos++
			continue
		}
		if p.isStructural(line) {
			break
		}
		lines = append(lines, line)
		p.pos++
	}
	for len(lines) > 0 && lines[0] == "" {
		lines = lines[1:]
	}
	for len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return strings.Join(lines, "\n")
}

// isStructural reports whether line starts any recognized construct: a
// header keyword, a step keyword, a tag line, a table row or a doc-string
// delimiter.
func (p *parser) isStructural(line string) bool {
	if strings.HasPrefix(line, "@") || strings.HasPrefix(line, "|") || isDocStringDelimiter(line) {
		return true
	}
	headers := [][]string{
		p.keywords.Feature, p.keywords.Rule, p.keywords.Background,
		p.keywords.Scenario, p.keywords.ScenarioOutline, p.keywords.Examples,
	}
	for _, kws := range headers {
		if _, ok := p.matchHeaderLine(line, kws); ok {
			return true
		}
	}
	_, _, ok := p.matchStep(line)
	return ok
}

// matchStep matches line against the active step keyword tables plus the
// structural wildcard marker. The longest matching literal wins so that a
// synonym sharing a prefix with another cannot shadow it.
func (p *parser) matchStep(line string) (ast.StepKeyword, string, bool) {
	type candidate struct {
		kw      ast.StepKeyword
		literal string
	}
	groups := []struct {
		kw       ast.StepKeyword
		literals []string
	}{
		{ast.Given, p.keywords.Given},
		{ast.When, p.keywords.When},
		{ast.Then, p.keywords.Then},
		{ast.And, p.keywords.And},
		{ast.But, p.keywords.But},
		{ast.Wildcard, []string{"* "}},
	}
	var best candidate
	for _, g := range groups {
		for _, lit := range g.literals {
			if strings.HasPrefix(line, lit) && len(lit) > len(best.literal) {
				best = candidate{kw: g.kw, literal: lit}
			}
		}
	}
	if best.literal == "" {
		return "", "", false
	}
	return best.kw, strings.TrimSpace(strings.TrimPrefix(line, best.literal)), true
}

// parseBackground parses an optional Background block at the current
// position. Returns matched=false without consuming input when the current
// line is not a Background header.
func (p *parser) parseBackground() (*ast.Background, bool, error) {
	p.skipBlankAndComments()
	if p.eof() {
		return nil, false, nil
	}
	name, ok := p.matchHeader(p.keywords.Background)
	if !ok {
		return nil, false, nil
	}
	p.pos++
	bg := &ast.Background{Name: name}
	bg.Description = p.parseDescription()
	steps, err := p.parseSteps()
	if err != nil {
		return nil, false, err
	}
	bg.Steps = steps
	return bg, true, nil
}

func (p *parser) parseScenario(tags []ast.Tag) (*ast.Scenario, error) {
	title, _ := p.matchHeader(p.keywords.Scenario)
	p.pos++
	sc := &ast.Scenario{Title: title, Tags: tags}
	sc.Description = p.parseDescription()
	steps, err := p.parseSteps()
	if err != nil {
		return nil, err
	}
	sc.Steps = steps
	return sc, nil
}

func (p *parser) parseOutline(tags []ast.Tag) (*ast.ScenarioOutline, error) {
	title, _ := p.matchHeader(p.keywords.ScenarioOutline)
	startLine := p.lineNum()
	p.pos++
	so := &ast.ScenarioOutline{Title: title, Tags: tags}
	so.Description = p.parseDescription()
	steps, err := p.parseSteps()
	if err != nil {
		return nil, err
	}
	so.Steps = steps

	for {
		p.skipBlankAndComments()
		mark, cmark := p.pos, len(p.comments)
		exTags := p.parseTagLines()
		p.skipBlankAndComments()
		if p.eof() || !p.headerMatches(p.keywords.Examples) {
			// Tags here belong to the next feature child, not to an
			// Examples block; rewind so the caller sees them again.
			p.pos, p.comments = mark, p.comments[:cmark]
			break
		}
		ex, err := p.parseExamples(exTags)
		if err != nil {
			return nil, err
		}
		so.Examples = append(so.Examples, *ex)
	}

	if len(so.Examples) == 0 {
		return nil, &SyntaxError{Line: startLine, Message: fmt.Sprintf("scenario outline %q has no Examples", title)}
	}
	return so, nil
}

func (p *parser) parseExamples(tags []ast.Tag) (*ast.Examples, error) {
	name, _ := p.matchHeader(p.keywords.Examples)
	p.pos++
	ex := &ast.Examples{Name: name, Tags: tags}

	p.skipBlankAndComments()
	for !p.eof() && strings.HasPrefix(p.current(), "|") {
		ex.Table.Rows = append(ex.Table.Rows, parseTableRow(p.current()))
		p.pos++
	}

	// Steps after an Examples block would belong to nothing.
	p.skipBlankAndComments()
	if !p.eof() {
		if _, _, ok := p.matchStep(p.current()); ok {
			return nil, p.errorf("steps must precede the Examples blocks of an outline")
		}
	}
	return ex, nil
}

func (p *parser) parseRule(tags []ast.Tag) (*ast.Rule, error) {
	title, _ := p.matchHeader(p.keywords.Rule)
	p.pos++
	rule := &ast.Rule{Title: title, Tags: tags}
	rule.Description = p.parseDescription()

	if bg, matched, err := p.parseBackground(); err != nil {
		return nil, err
	} else if matched {
		rule.Background = bg
	}

	for {
		p.skipBlankAndComments()
		if p.eof() {
			break
		}
		mark, cmark := p.pos, len(p.comments)
		childTags := p.parseTagLines()
		p.skipBlankAndComments()
		if p.eof() {
			p.pos, p.comments = mark, p.comments[:cmark]
			break
		}
		switch {
		case p.headerMatches(p.keywords.ScenarioOutline):
			so, err := p.parseOutline(childTags)
			if err != nil {
				return nil, err
			}
			rule.Children = append(rule.Children, ast.RuleChild{Outline: so})
		case p.headerMatches(p.keywords.Scenario):
			sc, err := p.parseScenario(childTags)
			if err != nil {
				return nil, err
			}
			rule.Children = append(rule.Children, ast.RuleChild{Scenario: sc})
		default:
			// Anything else ends the rule; the feature loop decides
			// whether it is legal there.
			p.pos, p.comments = mark, p.comments[:cmark]
			return rule, nil
		}
	}
	return rule, nil
}

// parseSteps parses a contiguous step sequence, attaching data tables and
// doc strings to their preceding step.
func (p *parser) parseSteps() ([]ast.Step, error) {
	var steps []ast.Step
	for {
		p.skipBlankAndComments()
		if p.eof() {
			return steps, nil
		}
		line := p.current()

		if kw, text, ok := p.matchStep(line); ok {
			steps = append(steps, ast.Step{Keyword: kw, Text: text})
			p.pos++
			continue
		}

		if strings.HasPrefix(line, "|") {
			if len(steps) == 0 {
				return nil, p.errorf("table row is not attached to any step")
			}
			last := &steps[len(steps)-1]
			if last.Table != nil || last.DocString != nil {
				return nil, p.errorf("table row is not attached to any step")
			}
			table := &ast.DataTable{}
			for !p.eof() && strings.HasPrefix(p.current(), "|") {
				table.Rows = append(table.Rows, parseTableRow(p.current()))
				p.pos++
			}
			last.Table = table
			continue
		}

		if isDocStringDelimiter(line) {
			if len(steps) == 0 {
				return nil, p.errorf("doc string is not attached to any step")
			}
			last := &steps[len(steps)-1]
			if last.Table != nil || last.DocString != nil {
				return nil, p.errorf("doc string is not attached to any step")
			}
			doc, err := p.parseDocString()
			if err != nil {
				return nil, err
			}
			last.DocString = doc
			continue
		}

		return steps, nil
	}
}

// parseDocString consumes a doc-string block. The current line is the
// opening delimiter, optionally followed by a media-type token. Content
// lines are kept verbatim relative to the opening delimiter's indentation.
func (p *parser) parseDocString() (*ast.DocString, error) {
	openLine := p.lines[p.pos]
	trimmed := strings.TrimSpace(openLine)
	delimiter := `"""`
	if strings.HasPrefix(trimmed, "```") {
		delimiter = "```"
	}
	mediaType := strings.TrimSpace(strings.TrimPrefix(trimmed, delimiter))
	indent := len(openLine) - len(strings.TrimLeft(openLine, " \t"))
	p.pos++

	var content []string
	for !p.eof() {
		raw := p.lines[p.pos]
		if strings.TrimSpace(raw) == delimiter {
			p.pos++
			return &ast.DocString{Content: strings.Join(content, "\n"), MediaType: mediaType}, nil
		}
		content = append(content, trimIndent(raw, indent))
		p.pos++
	}
	return nil, p.atEOF(fmt.Sprintf("doc string opened with %s is never closed", delimiter))
}

// trimIndent removes up to n leading space/tab characters so doc-string
// content keeps only the indentation beyond its opening delimiter.
func trimIndent(line string, n int) string {
	for i := 0; i < n && len(line) > 0; i++ {
		if line[0] != ' ' && line[0] != '\t' {
			break
		}
		line = line[1:]
	}
	return line
}

// parseTableRow splits a pipe-delimited row into trimmed cells.
func parseTableRow(line string) []string {
	line = strings.TrimPrefix(line, "|")
	line = strings.TrimSuffix(line, "|")
	parts := strings.Split(line, "|")
	cells := make([]string, len(parts))
	for i, part := range parts {
		cells[i] = strings.TrimSpace(part)
	}
	return cells
}

func isDocStringDelimiter(trimmed string) bool {
	return strings.HasPrefix(trimmed, `"""`) || strings.HasPrefix(trimmed, "```")
}

// splitLines splits source text into lines, tolerating CRLF endings. A
// trailing newline does not produce an extra empty line.
func splitLines(src []byte) []string {
	text := strings.ReplaceAll(string(src), "\r\n", "\n")
	lines := strings.Split(text, "\n")
	if len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}
