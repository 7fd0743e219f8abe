// Package language provides the localized Gherkin keyword registry. The
// table is bundled with the binary and loaded once, lazily; after that it is
// read-only and safe for concurrent use.
package language

import (
	_ "embed"
	"encoding/json"
	"sort"
	"sync"
)

//go:embed gherkin-languages.json
var rawTable []byte

// Default is the language code used when a document carries no directive
// and the fallback for unknown codes.
const Default = "en"

// Table holds the ordered keyword synonym lists for one language, one list
// per construct. Index 0 is the canonical form used for rendering; any
// index is acceptable for recognition. Step keyword entries include their
// trailing separator (for example "Given " in English, "前提" in Japanese,
// which takes no separator). The wildcard step marker "*" belongs to no
// language and is recognized structurally by the parser.
type Table struct {
	Feature         []string
	Rule            []string
	Background      []string
	Scenario        []string
	ScenarioOutline []string
	Examples        []string
	Given           []string
	When            []string
	Then            []string
	And             []string
	But             []string
}

// Language describes one locale from the bundled table.
type Language struct {
	Code   string
	Name   string
	Native string
}

// entry mirrors one language object in gherkin-languages.json.
type entry struct {
	Name            string   `json:"name"`
	Native          string   `json:"native"`
	Feature         []string `json:"feature"`
	Rule            []string `json:"rule"`
	Background      []string `json:"background"`
	Scenario        []string `json:"scenario"`
	ScenarioOutline []string `json:"scenarioOutline"`
	Examples        []string `json:"examples"`
	Given           []string `json:"given"`
	When            []string `json:"when"`
	Then            []string `json:"then"`
	And             []string `json:"and"`
	But             []string `json:"but"`
}

var (
	loadOnce  sync.Once
	tables    map[string]Table
	languages map[string]Language
)

// englishTable is the hard fallback used when the bundled resource is
// missing or malformed, so the process keeps working in the default
// language instead of crashing.
var englishTable = Table{
	Feature:         []string{"Feature", "Business Need", "Ability"},
	Rule:            []string{"Rule"},
	Background:      []string{"Background"},
	Scenario:        []string{"Scenario", "Example"},
	ScenarioOutline: []string{"Scenario Outline", "Scenario Template"},
	Examples:        []string{"Examples", "Scenarios"},
	Given:           []string{"Given "},
	When:            []string{"When "},
	Then:            []string{"Then "},
	And:             []string{"And "},
	But:             []string{"But "},
}

func load() {
	tables = map[string]Table{Default: englishTable}
	languages = map[string]Language{Default: {Code: Default, Name: "English", Native: "English"}}

	var raw map[string]entry
	if err := json.Unmarshal(rawTable, &raw); err != nil {
		return
	}
	for code, e := range raw {
		t := Table{
			Feature:         e.Feature,
			Rule:            e.Rule,
			Background:      e.Background,
			Scenario:        e.Scenario,
			ScenarioOutline: e.ScenarioOutline,
			Examples:        e.Examples,
			Given:           e.Given,
			When:            e.When,
			Then:            e.Then,
			And:             e.And,
			But:             e.But,
		}
		if !complete(t) {
			continue
		}
		tables[code] = t
		languages[code] = Language{Code: code, Name: e.Name, Native: e.Native}
	}
}

// complete reports whether every construct has at least one keyword.
func complete(t Table) bool {
	lists := [][]string{
		t.Feature, t.Rule, t.Background, t.Scenario, t.ScenarioOutline,
		t.Examples, t.Given, t.When, t.Then, t.And, t.But,
	}
	for _, l := range lists {
		if len(l) == 0 {
			return false
		}
	}
	return true
}

// Keywords returns the keyword table for code, falling back to the default
// language for unknown codes.
func Keywords(code string) Table {
	loadOnce.Do(load)
	if t, ok := tables[code]; ok {
		return t
	}
	return tables[Default]
}

// Lookup returns the language metadata for code and whether the code is
// known to the registry.
func Lookup(code string) (Language, bool) {
	loadOnce.Do(load)
	l, ok := languages[code]
	return l, ok
}

// All returns every bundled language sorted by code.
func All() []Language {
	loadOnce.Do(load)
	out := make([]Language, 0, len(languages))
	for _, l := range languages {
		out = append(out, l)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out
}
