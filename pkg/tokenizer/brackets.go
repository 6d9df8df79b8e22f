package tokenizer

import (
	"cmp"
	"errors"
	"fmt"
	"regexp"
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/yaklabco/gobrackets/pkg/ast"
	"github.com/yaklabco/gobrackets/pkg/catalog"
	"github.com/yaklabco/gobrackets/pkg/densekey"
)

// Errors reported by Compile for pairs it had to skip.
var (
	ErrEmptyToken     = errors.New("empty bracket token")
	ErrMultilineToken = errors.New("bracket token spans lines")
	ErrAmbiguousToken = errors.New("bracket token is both opening and closing")
)

// Bracket is one compiled bracket token.
type Bracket struct {
	Text string
	Role ast.Role

	// Keys holds the pair key of an opening token, or every opening key a
	// closing token can close.
	Keys densekey.Set

	// Node is the shared immutable leaf emitted for every occurrence.
	Node *ast.Node

	wordStart bool
	wordEnd   bool
}

// bounded reports whether the occurrence at [start, start+len) respects word
// boundaries for word-like tokens.
func (b *Bracket) bounded(line string, start int) bool {
	if b.wordStart && start > 0 {
		if r, _ := utf8.DecodeLastRuneInString(line[:start]); isWordRune(r) {
			return false
		}
	}

	end := start + len(b.Text)
	if b.wordEnd && end < len(line) {
		if r, _ := utf8.DecodeRuneInString(line[end:]); isWordRune(r) {
			return false
		}
	}

	return true
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

// Brackets is the compiled token table for one set of pairs.
type Brackets struct {
	pattern *regexp.Regexp
	byText  map[string]*Bracket
	ordered []*Bracket
}

// Compile builds the token table for pairs. Opening tokens take their key
// from keys, so tables compiled with the same provider agree on identities.
//
// Pairs that cannot be represented are skipped, and one error per skipped
// pair is returned alongside the usable table.
func Compile(pairs []catalog.Pair, keys *densekey.Provider) (*Brackets, []error) {
	var warnings []error

	openers := make(map[string]int)
	closers := make(map[string]densekey.Set)

	var openOrder, closeOrder []string

	for _, p := range pairs {
		switch {
		case p.Open == "" || p.Close == "":
			warnings = append(warnings, fmt.Errorf("pair %q: %w", p.String(), ErrEmptyToken))
			continue
		case strings.Contains(p.Open, "\n") || strings.Contains(p.Close, "\n"):
			warnings = append(warnings, fmt.Errorf("pair %q: %w", p.String(), ErrMultilineToken))
			continue
		case p.Open == p.Close:
			warnings = append(warnings, fmt.Errorf("pair %q: %w", p.String(), ErrAmbiguousToken))
			continue
		}

		_, openIsCloser := closers[p.Open]
		_, closeIsOpener := openers[p.Close]

		if openIsCloser || closeIsOpener {
			warnings = append(warnings, fmt.Errorf("pair %q: %w", p.String(), ErrAmbiguousToken))
			continue
		}

		if _, dup := openers[p.Open]; dup {
			continue
		}

		key := keys.Key(p.Open)
		openers[p.Open] = key
		openOrder = append(openOrder, p.Open)

		if _, ok := closers[p.Close]; !ok {
			closeOrder = append(closeOrder, p.Close)
		}

		closers[p.Close] = closers[p.Close].With(key)
	}

	b := &Brackets{byText: make(map[string]*Bracket, len(openers)+len(closers))}

	for _, text := range openOrder {
		set := densekey.Of(openers[text])
		b.add(text, ast.RoleOpening, set)
	}

	for _, text := range closeOrder {
		b.add(text, ast.RoleClosing, closers[text])
	}

	slices.SortStableFunc(b.ordered, func(x, y *Bracket) int {
		if c := cmp.Compare(len(y.Text), len(x.Text)); c != 0 {
			return c
		}

		return strings.Compare(x.Text, y.Text)
	})

	if len(b.ordered) > 0 {
		alternatives := make([]string, len(b.ordered))
		for i, br := range b.ordered {
			alternatives[i] = regexp.QuoteMeta(br.Text)
		}

		b.pattern = regexp.MustCompile(strings.Join(alternatives, "|"))
	}

	return b, warnings
}

func (b *Brackets) add(text string, role ast.Role, keys densekey.Set) {
	first, _ := utf8.DecodeRuneInString(text)
	last, _ := utf8.DecodeLastRuneInString(text)

	br := &Bracket{
		Text:      text,
		Role:      role,
		Keys:      keys,
		Node:      ast.NewBracket(text, role, keys),
		wordStart: isWordRune(first),
		wordEnd:   isWordRune(last),
	}

	b.byText[text] = br
	b.ordered = append(b.ordered, br)
}

// Len returns the number of distinct bracket tokens.
func (b *Brackets) Len() int {
	return len(b.ordered)
}

// Lookup returns the compiled token for text.
func (b *Brackets) Lookup(text string) (*Bracket, bool) {
	br, ok := b.byText[text]
	return br, ok
}

// Tokens returns the compiled tokens, longest first.
func (b *Brackets) Tokens() []*Bracket {
	return slices.Clone(b.ordered)
}

// Find returns the first bracket occurrence in line at or after byte offset
// from. When several tokens start at the same offset the longest one wins.
func (b *Brackets) Find(line string, from int) (int, *Bracket, bool) {
	if b == nil || b.pattern == nil {
		return -1, nil, false
	}

	for from <= len(line) {
		loc := b.pattern.FindStringIndex(line[from:])
		if loc == nil {
			return -1, nil, false
		}

		start := from + loc[0]
		if br := b.matchAt(line, start); br != nil {
			return start, br, true
		}

		_, size := utf8.DecodeRuneInString(line[start:])
		from = start + max(size, 1)
	}

	return -1, nil, false
}

func (b *Brackets) matchAt(line string, start int) *Bracket {
	rest := line[start:]
	for _, br := range b.ordered {
		if strings.HasPrefix(rest, br.Text) && br.bounded(line, start) {
			return br
		}
	}

	return nil
}
