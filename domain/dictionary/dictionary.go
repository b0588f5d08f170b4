// Package dictionary implements a Hunspell-compatible word list with affix
// expansion, spelling checks and ranked suggestions.
package dictionary

import (
	"bufio"
	"fmt"
	"strconv"
	"strings"
	"unicode"

	mapset "github.com/deckarep/golang-set/v2"
)

// Lexicon is the read-only view of a dictionary used by the spell checker.
type Lexicon interface {
	Check(word string) bool
	Suggest(word string, limit int) []string
}

// Dictionary is an expanded, immutable word list. It is safe for concurrent
// readers once Parse returns.
type Dictionary struct {
	words     mapset.Set[string]
	forbidden mapset.Set[string]
	noSuggest mapset.Set[string]
	keepCase  mapset.Set[string]
	// prefixes holds every lower-case rune prefix of words
	prefixes mapset.Set[string]

	try      []rune
	reps     []replacement
	adjacent map[rune]mapset.Set[rune]
}

// Parse builds a Dictionary from raw .aff and .dic contents. The encoding
// declared by the affix file's SET directive applies to both.
func Parse(aff, dic []byte) (*Dictionary, error) {
	enc := declaredEncoding(aff)

	affText, err := decode(aff, enc)
	if err != nil {
		return nil, fmt.Errorf("affix file: %w", err)
	}
	rules, err := parseAffix(affText)
	if err != nil {
		return nil, fmt.Errorf("affix file: %w", err)
	}

	dicText, err := decode(dic, enc)
	if err != nil {
		return nil, fmt.Errorf("word list: %w", err)
	}

	d := &Dictionary{
		words:     mapset.NewThreadUnsafeSet[string](),
		forbidden: mapset.NewThreadUnsafeSet[string](),
		noSuggest: mapset.NewThreadUnsafeSet[string](),
		keepCase:  mapset.NewThreadUnsafeSet[string](),
		try:       tryAlphabet(rules.try),
		reps:      rules.reps,
		adjacent:  keyboardAdjacency(rules.keys),
	}
	if err := d.load(dicText, rules); err != nil {
		return nil, fmt.Errorf("word list: %w", err)
	}
	if d.words.Cardinality() == 0 {
		return nil, fmt.Errorf("word list is empty")
	}
	d.prefixes = wordPrefixes(d.words)
	return d, nil
}

func wordPrefixes(words mapset.Set[string]) mapset.Set[string] {
	out := mapset.NewThreadUnsafeSetWithSize[string](words.Cardinality() * 2)
	words.Each(func(w string) bool {
		lower := strings.ToLower(w)
		for i := range lower {
			if i > 0 {
				out.Add(lower[:i])
			}
		}
		out.Add(lower)
		return false
	})
	return out
}

// WordCount returns the number of expanded word forms.
func (d *Dictionary) WordCount() int {
	return d.words.Cardinality()
}

func (d *Dictionary) load(text string, rules *affixData) error {
	scanner := bufio.NewScanner(strings.NewReader(text))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	first := true
	for scanner.Scan() {
		line := scanner.Text()
		if first {
			first = false
			if _, err := strconv.Atoi(strings.TrimSpace(line)); err == nil {
				continue
			}
		}
		if line == "" || line[0] == '#' || line[0] == '\t' {
			continue
		}

		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		stem, flagField := splitEntry(fields[0])
		d.addStem(stem, rules.flags.split(flagField), rules)
	}
	return scanner.Err()
}

// splitEntry separates "word/FLAGS". An escaped slash stays in the word.
func splitEntry(entry string) (string, string) {
	for i := 1; i < len(entry); i++ {
		if entry[i] == '/' && entry[i-1] != '\\' {
			return strings.ReplaceAll(entry[:i], `\/`, "/"), entry[i+1:]
		}
	}
	return strings.ReplaceAll(entry, `\/`, "/"), ""
}

func (d *Dictionary) addStem(stem string, flags []string, rules *affixData) {
	has := func(flag string) bool {
		if flag == "" {
			return false
		}
		for _, f := range flags {
			if f == flag {
				return true
			}
		}
		return false
	}

	if has(rules.forbidden) {
		d.forbidden.Add(stem)
		return
	}
	if has(rules.onlyInCompound) {
		return
	}

	noSuggest := has(rules.noSuggest)
	keepCase := has(rules.keepCase)
	add := func(form string) {
		d.words.Add(form)
		if noSuggest {
			d.noSuggest.Add(form)
		}
		if keepCase {
			d.keepCase.Add(form)
		}
	}

	if !has(rules.needAffix) {
		add(stem)
	}

	var crossPrefixes []*affixClass
	for _, flag := range flags {
		if class, ok := rules.prefixes[flag]; ok {
			for _, rule := range class.rules {
				if form, ok := class.apply(rule, stem); ok {
					add(form)
				}
			}
			if class.crossProduct {
				crossPrefixes = append(crossPrefixes, class)
			}
		}
	}

	for _, flag := range flags {
		class, ok := rules.suffixes[flag]
		if !ok {
			continue
		}
		for _, rule := range class.rules {
			form, ok := class.apply(rule, stem)
			if !ok {
				continue
			}
			add(form)
			if !class.crossProduct {
				continue
			}
			for _, prefix := range crossPrefixes {
				for _, prule := range prefix.rules {
					if both, ok := prefix.apply(prule, form); ok {
						add(both)
					}
				}
			}
		}
	}
}

// Check reports whether word is spelled correctly. Sentence-initial and
// shouted forms of dictionary words are accepted, enclosing apostrophes are
// ignored and plain numbers are always correct.
func (d *Dictionary) Check(word string) bool {
	word = strings.Trim(word, "'")
	if word == "" || isNumber(word) {
		return true
	}
	if d.forbidden.Contains(word) {
		return false
	}
	if d.words.Contains(word) {
		return true
	}

	switch detectCasing(word) {
	case caseTitle:
		return d.acceptsVariant(strings.ToLower(word))
	case caseUpper:
		lower := strings.ToLower(word)
		return d.acceptsVariant(lower) || d.acceptsVariant(toTitle(lower))
	}
	return false
}

func (d *Dictionary) acceptsVariant(form string) bool {
	return d.words.Contains(form) && !d.keepCase.Contains(form) && !d.forbidden.Contains(form)
}

func isNumber(word string) bool {
	digits := 0
	for _, r := range word {
		switch {
		case unicode.IsDigit(r):
			digits++
		case r == '.' || r == ',' || r == '-':
		default:
			return false
		}
	}
	return digits > 0
}

func tryAlphabet(try string) []rune {
	if try == "" {
		try = "abcdefghijklmnopqrstuvwxyz"
	}
	seen := make(map[rune]bool)
	var alphabet []rune
	for _, r := range strings.ToLower(try) {
		if seen[r] || !(unicode.IsLetter(r) || r == '\'') {
			continue
		}
		seen[r] = true
		alphabet = append(alphabet, r)
	}
	return alphabet
}

func keyboardAdjacency(rows []string) map[rune]mapset.Set[rune] {
	adjacent := make(map[rune]mapset.Set[rune])
	link := func(a, b rune) {
		if adjacent[a] == nil {
			adjacent[a] = mapset.NewThreadUnsafeSet[rune]()
		}
		adjacent[a].Add(b)
	}
	for _, row := range rows {
		keys := []rune(strings.ToLower(row))
		for i := 0; i+1 < len(keys); i++ {
			link(keys[i], keys[i+1])
			link(keys[i+1], keys[i])
		}
	}
	return adjacent
}
