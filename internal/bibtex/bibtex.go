// Package bibtex parses BibTeX citation exports into entry records.
//
// The parser is deliberately forgiving: it understands braced and quoted
// values with nesting, concatenation via # is recorded verbatim, and a
// malformed entry is reported as an error without aborting the rest of
// the file.
package bibtex

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/calder-lab/zotshelf/internal/entry"
)

// FindExportFile locates the citation-export file in a directory.
// Returns the first .bib file found (sorted order) or an error if none exist.
func FindExportFile(dir string) (string, error) {
	matches, err := filepath.Glob(filepath.Join(dir, "*.bib"))
	if err != nil {
		return "", fmt.Errorf("scanning export directory: %w", err)
	}
	if len(matches) == 0 {
		return "", fmt.Errorf("no .bib file found in %s", dir)
	}
	return matches[0], nil
}

// ParseFile parses a BibTeX file and returns its entries.
func ParseFile(path string) ([]entry.Entry, []error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, []error{fmt.Errorf("reading bib file: %w", err)}
	}
	return Parse(data)
}

// Parse parses BibTeX source and returns entries plus per-entry errors.
// @comment, @preamble and @string blocks are skipped.
func Parse(data []byte) ([]entry.Entry, []error) {
	p := &parser{src: string(data)}

	var entries []entry.Entry
	var errs []error

	for {
		if !p.seekTo('@') {
			break
		}
		p.pos++ // consume '@'

		start := p.pos
		e, err := p.parseEntry()
		if err != nil {
			errs = append(errs, fmt.Errorf("entry at offset %d: %w", start, err))
			// Resync at the next '@' so one bad entry doesn't eat the file
			p.pos = start
			continue
		}
		if e != nil {
			entries = append(entries, *e)
		}
	}

	return entries, errs
}

type parser struct {
	src string
	pos int
}

// seekTo advances to the next occurrence of c, returning false at EOF.
func (p *parser) seekTo(c byte) bool {
	idx := strings.IndexByte(p.src[p.pos:], c)
	if idx < 0 {
		p.pos = len(p.src)
		return false
	}
	p.pos += idx
	return true
}

func (p *parser) eof() bool {
	return p.pos >= len(p.src)
}

func (p *parser) skipSpace() {
	for !p.eof() && unicode.IsSpace(rune(p.src[p.pos])) {
		p.pos++
	}
}

// parseEntry parses one @type{key, field = value, ...} block.
// Returns (nil, nil) for skipped block types.
func (p *parser) parseEntry() (*entry.Entry, error) {
	entryType := p.readWord()
	if entryType == "" {
		return nil, fmt.Errorf("missing entry type after @")
	}

	lowerType := strings.ToLower(entryType)
	skip := lowerType == "comment" || lowerType == "preamble" || lowerType == "string"

	p.skipSpace()
	if p.eof() || (p.src[p.pos] != '{' && p.src[p.pos] != '(') {
		if skip {
			return nil, nil // e.g. "@comment text to end of line"
		}
		return nil, fmt.Errorf("expected { after @%s", entryType)
	}
	open := p.src[p.pos]
	p.pos++

	if skip {
		if err := p.skipBalanced(open); err != nil {
			return nil, err
		}
		return nil, nil
	}

	key, err := p.readKey()
	if err != nil {
		return nil, err
	}

	fields := make(map[string]string)
	for {
		p.skipSpace()
		if p.eof() {
			return nil, fmt.Errorf("unterminated entry %q", key)
		}
		c := p.src[p.pos]
		if c == '}' || c == ')' {
			p.pos++
			break
		}
		if c == ',' {
			p.pos++
			continue
		}

		name := p.readWord()
		if name == "" {
			return nil, fmt.Errorf("entry %q: expected field name, got %q", key, string(c))
		}
		p.skipSpace()
		if p.eof() || p.src[p.pos] != '=' {
			return nil, fmt.Errorf("entry %q: field %s: expected =", key, name)
		}
		p.pos++

		value, err := p.readValue()
		if err != nil {
			return nil, fmt.Errorf("entry %q: field %s: %w", key, name, err)
		}
		fields[strings.ToLower(name)] = normalizeValue(value)
	}

	return &entry.Entry{
		Type:   lowerType,
		Key:    key,
		Fields: fields,
	}, nil
}

// readWord reads an identifier (entry type or field name).
func (p *parser) readWord() string {
	p.skipSpace()
	start := p.pos
	for !p.eof() {
		c := rune(p.src[p.pos])
		if unicode.IsLetter(c) || unicode.IsDigit(c) || c == '-' || c == '_' {
			p.pos++
			continue
		}
		break
	}
	return p.src[start:p.pos]
}

// readKey reads the citation key up to the first comma or closing brace.
// An empty key is allowed (some exporters emit keyless entries).
func (p *parser) readKey() (string, error) {
	p.skipSpace()
	start := p.pos
	for !p.eof() {
		c := p.src[p.pos]
		if c == ',' {
			key := strings.TrimSpace(p.src[start:p.pos])
			p.pos++
			return key, nil
		}
		if c == '}' || c == ')' {
			return strings.TrimSpace(p.src[start:p.pos]), nil
		}
		p.pos++
	}
	return "", fmt.Errorf("unterminated entry key")
}

// readValue reads one field value: {braced}, "quoted", or a bare token.
// Concatenations like {a} # {b} are joined.
func (p *parser) readValue() (string, error) {
	var parts []string
	for {
		p.skipSpace()
		if p.eof() {
			return "", fmt.Errorf("unexpected end of input in value")
		}

		var part string
		var err error
		switch p.src[p.pos] {
		case '{':
			part, err = p.readBraced()
		case '"':
			part, err = p.readQuoted()
		default:
			part = p.readBare()
		}
		if err != nil {
			return "", err
		}
		parts = append(parts, part)

		p.skipSpace()
		if !p.eof() && p.src[p.pos] == '#' {
			p.pos++
			continue
		}
		break
	}
	return strings.Join(parts, ""), nil
}

// readBraced reads a {value} with balanced nested braces.
func (p *parser) readBraced() (string, error) {
	p.pos++ // consume '{'
	start := p.pos
	depth := 1
	for !p.eof() {
		switch p.src[p.pos] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				v := p.src[start:p.pos]
				p.pos++
				return v, nil
			}
		}
		p.pos++
	}
	return "", fmt.Errorf("unbalanced braces")
}

// readQuoted reads a "value"; braces inside quotes protect quote chars.
func (p *parser) readQuoted() (string, error) {
	p.pos++ // consume '"'
	start := p.pos
	depth := 0
	for !p.eof() {
		switch p.src[p.pos] {
		case '{':
			depth++
		case '}':
			depth--
		case '"':
			if depth == 0 {
				v := p.src[start:p.pos]
				p.pos++
				return v, nil
			}
		}
		p.pos++
	}
	return "", fmt.Errorf("unterminated quoted value")
}

// readBare reads an unquoted value (number or macro name).
func (p *parser) readBare() string {
	start := p.pos
	for !p.eof() {
		c := p.src[p.pos]
		if c == ',' || c == '}' || c == ')' || c == '#' || unicode.IsSpace(rune(c)) {
			break
		}
		p.pos++
	}
	return p.src[start:p.pos]
}

// skipBalanced consumes a balanced block opened with { or (.
func (p *parser) skipBalanced(open byte) error {
	var closer byte = '}'
	if open == '(' {
		closer = ')'
	}
	depth := 1
	for !p.eof() {
		switch p.src[p.pos] {
		case open:
			depth++
		case closer:
			depth--
			if depth == 0 {
				p.pos++
				return nil
			}
		}
		p.pos++
	}
	return fmt.Errorf("unbalanced @ block")
}

// normalizeValue collapses the line-wrapping whitespace BibTeX exporters
// insert into long values and strips protective outer braces.
func normalizeValue(v string) string {
	v = strings.Join(strings.Fields(v), " ")
	// Strip one layer of full-value protective braces: {Title Case}
	if len(v) >= 2 && v[0] == '{' && v[len(v)-1] == '}' && balancedInner(v[1:len(v)-1]) {
		v = v[1 : len(v)-1]
	}
	return strings.TrimSpace(v)
}

// balancedInner reports whether s never closes more braces than it opens.
func balancedInner(s string) bool {
	depth := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '{':
			depth++
		case '}':
			depth--
			if depth < 0 {
				return false
			}
		}
	}
	return depth == 0
}
