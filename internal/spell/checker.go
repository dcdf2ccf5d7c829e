// Package spell implements the asynchronous spell and grammar service.
// Checks are fire-and-forget per paragraph; results come back on a channel
// tagged with the document generation they were computed against, so stale
// results for edited or deleted paragraphs are discarded rather than
// misapplied.
package spell

import (
	_ "embed"
	"strings"
	"unicode"

	"github.com/sajari/fuzzy"
)

//go:embed dictionary/en_common.txt
var dictionaryData string

// IssueKind distinguishes spelling from grammar findings.
type IssueKind uint8

const (
	KindSpelling IssueKind = iota
	KindGrammar
)

// Issue is a single finding within a paragraph, as a [Start, End) rune
// range.
type Issue struct {
	Start       int
	End         int
	Kind        IssueKind
	Word        string
	Suggestions []string
}

// Checker wraps a fuzzy spelling model trained on an embedded word list.
// Additional vocabulary can be trained at runtime.
type Checker struct {
	model *fuzzy.Model
}

// NewChecker builds a checker from the embedded dictionary.
func NewChecker() *Checker {
	model := fuzzy.NewModel()
	// Depth 2 trades a little accuracy for much faster training and lookup.
	model.SetDepth(2)

	for _, word := range strings.Split(dictionaryData, "\n") {
		word = strings.TrimSpace(word)
		if word != "" {
			model.TrainWord(word)
		}
	}
	return &Checker{model: model}
}

// Train adds words to the model, e.g. from a user dictionary.
func (c *Checker) Train(words []string) {
	for _, w := range words {
		w = strings.TrimSpace(strings.ToLower(w))
		if w != "" {
			c.model.TrainWord(w)
		}
	}
}

// KnownWord reports whether a word is spelled correctly.
func (c *Checker) KnownWord(word string) bool {
	if word == "" {
		return true
	}
	lower := strings.ToLower(word)
	return c.model.SpellCheck(lower) == lower
}

// Check scans paragraph text and returns spelling and grammar issues in
// offset order.
func (c *Checker) Check(text string) []Issue {
	var issues []Issue
	words := splitWords(text)

	for _, w := range words {
		if !isCheckable(w.text) {
			continue
		}
		if !c.KnownWord(w.text) {
			issues = append(issues, Issue{
				Start:       w.start,
				End:         w.end,
				Kind:        KindSpelling,
				Word:        w.text,
				Suggestions: c.suggest(w.text),
			})
		}
	}

	issues = append(issues, grammarIssues(text, words)...)
	return issues
}

// suggest returns up to three alternatives for a misspelled word.
func (c *Checker) suggest(word string) []string {
	sugs := c.model.Suggestions(strings.ToLower(word), false)
	if len(sugs) > 3 {
		sugs = sugs[:3]
	}
	return sugs
}

// span is a word with its rune offsets.
type span struct {
	text  string
	start int
	end   int
}

// splitWords extracts letter runs with their rune offsets.
func splitWords(text string) []span {
	var words []span
	runes := []rune(text)
	i := 0
	for i < len(runes) {
		if !unicode.IsLetter(runes[i]) && runes[i] != '\'' {
			i++
			continue
		}
		start := i
		for i < len(runes) && (unicode.IsLetter(runes[i]) || runes[i] == '\'') {
			i++
		}
		words = append(words, span{text: string(runes[start:i]), start: start, end: i})
	}
	return words
}

// isCheckable skips words the model cannot say anything useful about:
// single letters, all-caps acronyms, and words with digits.
func isCheckable(word string) bool {
	if len([]rune(word)) < 2 {
		return false
	}
	upper := 0
	for _, r := range word {
		if unicode.IsUpper(r) {
			upper++
		}
	}
	return upper <= 1
}

// grammarIssues applies lightweight rules: doubled words and a lowercase
// sentence start.
func grammarIssues(text string, words []span) []Issue {
	var issues []Issue

	for i := 1; i < len(words); i++ {
		if strings.EqualFold(words[i].text, words[i-1].text) {
			issues = append(issues, Issue{
				Start: words[i].start,
				End:   words[i].end,
				Kind:  KindGrammar,
				Word:  words[i].text,
			})
		}
	}

	// Sentence starts: the first word, and any word after ./!/? should be
	// capitalized.
	expectCap := true
	wi := 0
	for i, r := range []rune(text) {
		if wi < len(words) && i == words[wi].start {
			first := []rune(words[wi].text)[0]
			if expectCap && unicode.IsLower(first) {
				issues = append(issues, Issue{
					Start: words[wi].start,
					End:   words[wi].end,
					Kind:  KindGrammar,
					Word:  words[wi].text,
				})
			}
			expectCap = false
			wi++
		}
		if r == '.' || r == '!' || r == '?' {
			expectCap = true
		}
	}

	return issues
}
