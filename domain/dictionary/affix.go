package dictionary

import (
	"bufio"
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
)

type flagMode int

const (
	flagShort flagMode = iota
	flagLong
	flagNum
	flagUTF8
)

// split breaks a flag field into individual flags.
func (m flagMode) split(field string) []string {
	var flags []string
	switch m {
	case flagLong:
		runes := []rune(field)
		for i := 0; i+1 < len(runes); i += 2 {
			flags = append(flags, string(runes[i:i+2]))
		}
	case flagNum:
		for _, part := range strings.Split(field, ",") {
			if part = strings.TrimSpace(part); part != "" {
				flags = append(flags, part)
			}
		}
	default:
		for _, r := range field {
			flags = append(flags, string(r))
		}
	}
	return flags
}

// condUnit matches a single rune of an affix condition.
type condUnit struct {
	chars  string
	negate bool
	any    bool
}

func (u condUnit) match(r rune) bool {
	if u.any {
		return true
	}
	return strings.ContainsRune(u.chars, r) != u.negate
}

type condition []condUnit

func parseCondition(s string) (condition, error) {
	if s == "" || s == "." {
		return nil, nil
	}

	runes := []rune(s)
	var cond condition
	for i := 0; i < len(runes); i++ {
		switch runes[i] {
		case '.':
			cond = append(cond, condUnit{any: true})
		case '[':
			j := i + 1
			negate := false
			if j < len(runes) && runes[j] == '^' {
				negate = true
				j++
			}
			start := j
			for j < len(runes) && runes[j] != ']' {
				j++
			}
			if j == len(runes) {
				return nil, fmt.Errorf("unterminated condition %q", s)
			}
			cond = append(cond, condUnit{chars: string(runes[start:j]), negate: negate})
			i = j
		default:
			cond = append(cond, condUnit{chars: string(runes[i])})
		}
	}
	return cond, nil
}

func (c condition) matchesStart(word []rune) bool {
	if len(c) > len(word) {
		return false
	}
	for i, u := range c {
		if !u.match(word[i]) {
			return false
		}
	}
	return true
}

func (c condition) matchesEnd(word []rune) bool {
	offset := len(word) - len(c)
	if offset < 0 {
		return false
	}
	for i, u := range c {
		if !u.match(word[offset+i]) {
			return false
		}
	}
	return true
}

type affixRule struct {
	strip string
	add   string
	cond  condition
}

type affixClass struct {
	flag         string
	prefix       bool
	crossProduct bool
	rules        []affixRule
}

// apply returns the affixed form of stem, or false when the rule does not
// fit it.
func (c *affixClass) apply(rule affixRule, stem string) (string, bool) {
	runes := []rune(stem)
	if c.prefix {
		if !strings.HasPrefix(stem, rule.strip) || !rule.cond.matchesStart(runes) {
			return "", false
		}
		form := rule.add + stem[len(rule.strip):]
		return form, form != ""
	}

	if !strings.HasSuffix(stem, rule.strip) || !rule.cond.matchesEnd(runes) {
		return "", false
	}
	form := stem[:len(stem)-len(rule.strip)] + rule.add
	return form, form != ""
}

type replacement struct {
	from string
	to   string
}

// affixData is the parsed content of an .aff file.
type affixData struct {
	encoding string
	flags    flagMode
	try      string
	keys     []string
	reps     []replacement
	prefixes map[string]*affixClass
	suffixes map[string]*affixClass

	noSuggest      string
	forbidden      string
	needAffix      string
	onlyInCompound string
	keepCase       string
}

func newAffixData() *affixData {
	return &affixData{
		encoding: "UTF-8",
		prefixes: make(map[string]*affixClass),
		suffixes: make(map[string]*affixClass),
	}
}

// declaredEncoding scans raw .aff bytes for the SET directive.
func declaredEncoding(raw []byte) string {
	scanner := bufio.NewScanner(bytes.NewReader(raw))
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) >= 2 && fields[0] == "SET" {
			return fields[1]
		}
	}
	return "UTF-8"
}

var charmaps = map[string]encoding.Encoding{
	"ISO8859-1":        charmap.ISO8859_1,
	"ISO-8859-1":       charmap.ISO8859_1,
	"ISO8859-2":        charmap.ISO8859_2,
	"ISO-8859-2":       charmap.ISO8859_2,
	"ISO8859-15":       charmap.ISO8859_15,
	"ISO-8859-15":      charmap.ISO8859_15,
	"KOI8-R":           charmap.KOI8R,
	"MICROSOFT-CP1251": charmap.Windows1251,
	"CP1251":           charmap.Windows1251,
}

// decode converts raw file content in the named encoding to UTF-8.
func decode(raw []byte, name string) (string, error) {
	raw = bytes.TrimPrefix(raw, []byte("\xef\xbb\xbf"))

	upper := strings.ToUpper(name)
	if upper == "UTF-8" || upper == "UTF8" {
		return string(raw), nil
	}

	enc, ok := charmaps[upper]
	if !ok {
		return "", fmt.Errorf("unsupported dictionary encoding %q", name)
	}
	out, err := enc.NewDecoder().Bytes(raw)
	if err != nil {
		return "", fmt.Errorf("decode %s: %w", name, err)
	}
	return string(out), nil
}

func parseAffix(text string) (*affixData, error) {
	aff := newAffixData()

	scanner := bufio.NewScanner(strings.NewReader(text))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)

		switch fields[0] {
		case "SET":
			if len(fields) > 1 {
				aff.encoding = fields[1]
			}
		case "FLAG":
			if len(fields) > 1 {
				switch fields[1] {
				case "long":
					aff.flags = flagLong
				case "num":
					aff.flags = flagNum
				case "UTF-8":
					aff.flags = flagUTF8
				}
			}
		case "TRY":
			if len(fields) > 1 {
				aff.try = fields[1]
			}
		case "KEY":
			if len(fields) > 1 {
				aff.keys = strings.Split(fields[1], "|")
			}
		case "REP":
			if len(fields) == 3 {
				aff.reps = append(aff.reps, replacement{
					from: strings.ReplaceAll(fields[1], "_", " "),
					to:   strings.ReplaceAll(fields[2], "_", " "),
				})
			}
		case "NOSUGGEST":
			aff.noSuggest = flagArg(fields)
		case "FORBIDDENWORD":
			aff.forbidden = flagArg(fields)
		case "NEEDAFFIX", "PSEUDOROOT":
			aff.needAffix = flagArg(fields)
		case "ONLYINCOMPOUND":
			aff.onlyInCompound = flagArg(fields)
		case "KEEPCASE":
			aff.keepCase = flagArg(fields)
		case "PFX", "SFX":
			if err := aff.parseAffixLine(fields); err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNo, err)
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return aff, nil
}

func flagArg(fields []string) string {
	if len(fields) > 1 {
		return fields[1]
	}
	return ""
}

func (a *affixData) parseAffixLine(fields []string) error {
	if len(fields) < 4 {
		return fmt.Errorf("malformed %s entry", fields[0])
	}

	prefix := fields[0] == "PFX"
	table := a.suffixes
	if prefix {
		table = a.prefixes
	}

	flag := fields[1]
	class, exists := table[flag]
	if !exists {
		if _, err := strconv.Atoi(fields[3]); err != nil {
			return fmt.Errorf("%s %s header has invalid count %q", fields[0], flag, fields[3])
		}
		table[flag] = &affixClass{
			flag:         flag,
			prefix:       prefix,
			crossProduct: fields[2] == "Y",
		}
		return nil
	}

	strip := fields[2]
	if strip == "0" {
		strip = ""
	}
	add := fields[3]
	if i := strings.IndexByte(add, '/'); i >= 0 {
		add = add[:i]
	}
	if add == "0" {
		add = ""
	}
	condText := "."
	if len(fields) > 4 {
		condText = fields[4]
	}
	cond, err := parseCondition(condText)
	if err != nil {
		return err
	}

	class.rules = append(class.rules, affixRule{strip: strip, add: add, cond: cond})
	return nil
}
