package dictionary

import (
	"sort"
	"strings"
	"unicode/utf8"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/hbollon/go-edlib"
)

// maxSecondPassLength bounds the words that get a distance-2 search.
const maxSecondPassLength = 16

// Suggest returns up to limit corrections for word, best first, cased like
// the input.
func (d *Dictionary) Suggest(word string, limit int) []string {
	word = strings.Trim(word, "'")
	if limit <= 0 || word == "" {
		return nil
	}

	shape := detectCasing(word)
	lower := strings.ToLower(word)

	found := mapset.NewThreadUnsafeSet[string]()
	preferred := mapset.NewThreadUnsafeSet[string]()
	collect := func(candidate string) bool {
		if form, ok := d.suggestible(candidate); ok {
			found.Add(form)
		}
		return false
	}

	for _, candidate := range d.replacements(lower) {
		if form, ok := d.suggestible(candidate); ok {
			found.Add(form)
			preferred.Add(form)
		}
	}
	for _, candidate := range d.splits(lower) {
		found.Add(candidate)
	}

	first := d.edits(lower)
	first.Each(collect)

	if found.Cardinality() < limit && utf8.RuneCountInString(lower) <= maxSecondPassLength {
		first.Each(func(edit string) bool {
			d.knownEdits(edit, collect)
			return false
		})
	}
	found.Remove(word)
	found.Remove(lower)

	ranked := d.rank(lower, found.ToSlice(), preferred)

	out := make([]string, 0, limit)
	seen := make(map[string]bool, limit)
	for _, candidate := range ranked {
		candidate = recase(candidate, shape)
		if seen[candidate] {
			continue
		}
		seen[candidate] = true
		out = append(out, candidate)
		if len(out) == limit {
			break
		}
	}
	return out
}

// suggestible resolves a lower-case candidate to the dictionary form that
// may be offered as a suggestion.
func (d *Dictionary) suggestible(candidate string) (string, bool) {
	for _, form := range []string{candidate, toTitle(candidate), strings.ToUpper(candidate)} {
		if d.words.Contains(form) && !d.noSuggest.Contains(form) && !d.forbidden.Contains(form) {
			return form, true
		}
	}
	return "", false
}

// replacements applies each REP pair at every position it occurs.
func (d *Dictionary) replacements(word string) []string {
	var out []string
	for _, rep := range d.reps {
		if rep.from == "" {
			continue
		}
		for offset := 0; ; {
			i := strings.Index(word[offset:], rep.from)
			if i < 0 {
				break
			}
			at := offset + i
			out = append(out, word[:at]+rep.to+word[at+len(rep.from):])
			offset = at + 1
		}
	}
	return out
}

// splits proposes two known words for a run-together pair.
func (d *Dictionary) splits(word string) []string {
	runes := []rune(word)
	var out []string
	for i := 2; i <= len(runes)-2; i++ {
		left, okLeft := d.suggestible(string(runes[:i]))
		right, okRight := d.suggestible(string(runes[i:]))
		if okLeft && okRight {
			out = append(out, left+" "+right)
		}
	}
	return out
}

// edits returns every string one deletion, adjacent transposition,
// substitution or insertion away from word, using the TRY alphabet.
func (d *Dictionary) edits(word string) mapset.Set[string] {
	runes := []rune(word)
	out := mapset.NewThreadUnsafeSet[string]()

	for i := 0; i <= len(runes); i++ {
		left, right := string(runes[:i]), runes[i:]
		if len(right) > 0 {
			out.Add(left + string(right[1:]))
		}
		if len(right) > 1 {
			out.Add(left + string(right[1]) + string(right[0]) + string(right[2:]))
		}
		for _, c := range d.try {
			if len(right) > 0 && c != right[0] {
				out.Add(left + string(c) + string(right[1:]))
			}
			out.Add(left + string(c) + string(right))
		}
	}
	out.Remove(word)
	return out
}

// knownEdits is edits restricted to strings that can still become a
// dictionary word: a position is abandoned as soon as the text to its left
// starts no word, so the search stays proportional to the matching prefix.
func (d *Dictionary) knownEdits(word string, fn func(string) bool) {
	runes := []rune(word)

	for i := 0; i <= len(runes); i++ {
		left, right := string(runes[:i]), runes[i:]
		if i > 0 && !d.prefixes.Contains(left) {
			return
		}
		if len(right) > 0 {
			fn(left + string(right[1:]))
		}
		if len(right) > 1 && d.prefixes.Contains(left+string(right[1])) {
			fn(left + string(right[1]) + string(right[0]) + string(right[2:]))
		}
		for _, c := range d.try {
			head := left + string(c)
			if !d.prefixes.Contains(head) {
				continue
			}
			if len(right) > 0 && c != right[0] {
				fn(head + string(right[1:]))
			}
			fn(head + string(right))
		}
	}
}

type scoredCandidate struct {
	word      string
	distance  int
	preferred bool
	keyboard  int
	sameFirst bool
}

func (d *Dictionary) rank(word string, candidates []string, preferred mapset.Set[string]) []string {
	first, _ := utf8.DecodeRuneInString(word)

	scored := make([]scoredCandidate, 0, len(candidates))
	for _, candidate := range candidates {
		lower := strings.ToLower(candidate)
		head, _ := utf8.DecodeRuneInString(lower)
		scored = append(scored, scoredCandidate{
			word:      candidate,
			distance:  edlib.OSADamerauLevenshteinDistance(word, lower),
			preferred: preferred.Contains(candidate),
			keyboard:  d.keyboardPenalty(word, lower),
			sameFirst: head == first,
		})
	}

	sort.Slice(scored, func(i, j int) bool {
		a, b := scored[i], scored[j]
		if a.distance != b.distance {
			return a.distance < b.distance
		}
		if a.preferred != b.preferred {
			return a.preferred
		}
		if a.keyboard != b.keyboard {
			return a.keyboard < b.keyboard
		}
		if a.sameFirst != b.sameFirst {
			return a.sameFirst
		}
		return a.word < b.word
	})

	out := make([]string, len(scored))
	for i, s := range scored {
		out[i] = s.word
	}
	return out
}

// keyboardPenalty counts substituted runes that are not neighbours on the
// keyboard. Candidates of a different length get a flat penalty of one.
func (d *Dictionary) keyboardPenalty(word, candidate string) int {
	a, b := []rune(word), []rune(candidate)
	if len(a) != len(b) {
		return 1
	}
	penalty := 0
	for i := range a {
		if a[i] == b[i] {
			continue
		}
		if near, ok := d.adjacent[a[i]]; ok && near.Contains(b[i]) {
			continue
		}
		penalty++
	}
	return penalty
}
