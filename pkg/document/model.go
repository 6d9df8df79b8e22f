// Package document coordinates the bracket trees of one open document.
//
// A Model keeps two tree lineages. The fast lineage is built without
// classification and is served first so brackets appear immediately. The
// token-aware lineage honours the host's comment and string classification
// and is refined as classification progresses. When the host reports that
// classification is complete the model switches to the token-aware tree for
// good and releases the fast one.
package document

import (
	"errors"
	"fmt"
	"slices"

	"github.com/yaklabco/gobrackets/pkg/ast"
	"github.com/yaklabco/gobrackets/pkg/length"
	"github.com/yaklabco/gobrackets/pkg/parser"
	"github.com/yaklabco/gobrackets/pkg/query"
	"github.com/yaklabco/gobrackets/pkg/tokenizer"
)

// Errors returned for malformed host events.
var (
	ErrInvalidRange     = errors.New("invalid change range")
	ErrInvalidLineRange = errors.New("invalid line range")
)

// Options configures Open.
type Options struct {
	// Classification is the host's classification progress at open time.
	Classification Classification
}

// Model is the dual-tree coordinator of one document session.
// It is not safe for concurrent use.
type Model struct {
	source     TextSource
	classifier tokenizer.Classifier
	brackets   *tokenizer.Brackets

	trees     treeState
	listeners map[int]func()
	nextID    int
	stats     parser.Stats
}

// Open parses the document and returns its model.
func Open(source TextSource, classifier tokenizer.Classifier, brackets *tokenizer.Brackets, opts Options) (*Model, error) {
	m := &Model{
		source:     source,
		classifier: classifier,
		brackets:   brackets,
		listeners:  make(map[int]func()),
	}

	if opts.Classification == ClassificationComplete {
		tree, err := m.parseTokenAware(nil, nil)
		if err != nil {
			return nil, err
		}

		m.trees = convergedState{tokenAware: tree}

		return m, nil
	}

	fast, err := m.parseFast(nil, nil)
	if err != nil {
		return nil, err
	}

	tokenAware := fast
	if opts.Classification == ClassificationPartial {
		if tokenAware, err = m.parseTokenAware(nil, nil); err != nil {
			return nil, err
		}
	}

	m.trees = initialState{fast: fast, tokenAware: tokenAware}

	return m, nil
}

// State returns the coordinator state.
func (m *Model) State() State {
	return m.trees.state()
}

// Tree returns the tree queries are served from.
func (m *Model) Tree() *ast.Node {
	return m.trees.current()
}

// FastTree returns the fast tree, or nil once converged.
func (m *Model) FastTree() *ast.Node {
	if s, ok := m.trees.(initialState); ok {
		return s.fast
	}

	return nil
}

// TokenAwareTree returns the token-aware tree.
func (m *Model) TokenAwareTree() *ast.Node {
	switch s := m.trees.(type) {
	case initialState:
		return s.tokenAware
	case convergedState:
		return s.tokenAware
	}

	return nil
}

// LastStats returns the statistics of the most recent token-aware parse.
func (m *Model) LastStats() parser.Stats {
	return m.stats
}

// OnDidChange registers fn to be called whenever the served brackets may
// have changed. The returned function removes the listener.
func (m *Model) OnDidChange(fn func()) func() {
	id := m.nextID
	m.nextID++
	m.listeners[id] = fn

	return func() { delete(m.listeners, id) }
}

func (m *Model) fire() {
	ids := make([]int, 0, len(m.listeners))
	for id := range m.listeners {
		ids = append(ids, id)
	}

	slices.Sort(ids)

	for _, id := range ids {
		if fn, ok := m.listeners[id]; ok {
			fn()
		}
	}
}

// HandleContentChanged updates both lineages after the host applied ev to
// the source. On error the previous trees are kept.
func (m *Model) HandleContentChanged(ev ChangeEvent) error {
	edits := make([]parser.TextEditInfo, 0, len(ev.Changes))

	for i, c := range ev.Changes {
		if !c.Range.IsValid() {
			return fmt.Errorf("change %d %s: %w", i, c.Range, ErrInvalidRange)
		}

		start, end := length.RangeToLengths(c.Range)
		edits = append(edits, parser.NewTextEditInfo(start, end, length.Of(c.Text)))
	}

	switch s := m.trees.(type) {
	case initialState:
		fast, err := m.parseFast(edits, s.fast)
		if err != nil {
			return err
		}

		tokenAware, err := m.parseTokenAware(edits, s.tokenAware)
		if err != nil {
			return err
		}

		m.trees = initialState{fast: fast, tokenAware: tokenAware}
	case convergedState:
		tokenAware, err := m.parseTokenAware(edits, s.tokenAware)
		if err != nil {
			return err
		}

		m.trees = convergedState{tokenAware: tokenAware}
	}

	m.fire()

	return nil
}

// HandleClassificationChanged re-parses the lines the host re-classified in
// the token-aware lineage. A complete event moves the model to the converged
// state, which fires exactly one notification.
func (m *Model) HandleClassificationChanged(ev ClassificationEvent) error {
	tree := m.TokenAwareTree()

	edits, err := lineRangeEdits(ev.Ranges, tree.Length())
	if err != nil {
		return err
	}

	if len(edits) > 0 {
		if tree, err = m.parseTokenAware(edits, tree); err != nil {
			return err
		}
	}

	switch s := m.trees.(type) {
	case initialState:
		if ev.Complete {
			m.trees = convergedState{tokenAware: tree}
			m.fire()

			return nil
		}

		m.trees = initialState{fast: s.fast, tokenAware: tree}
	case convergedState:
		m.trees = convergedState{tokenAware: tree}
		if len(edits) > 0 {
			m.fire()
		}
	}

	return nil
}

// BracketsInRange returns the brackets of the served tree in r.
func (m *Model) BracketsInRange(r length.Range) []query.BracketInfo {
	return query.InRange(m.Tree(), r)
}

// Collect streams the brackets of the served tree in r into sink.
func (m *Model) Collect(r length.Range, sink query.Sink) query.Stats {
	start, end := length.RangeToLengths(r)
	return query.Collect(m.Tree(), start, end, sink)
}

func (m *Model) parseFast(edits []parser.TextEditInfo, previous *ast.Node) (*ast.Node, error) {
	tree, err := parser.Parse(tokenizer.NewFast(m.source.Text(), m.brackets), edits, previous)
	if err != nil {
		return nil, fmt.Errorf("fast tree: %w", err)
	}

	return tree, nil
}

func (m *Model) parseTokenAware(edits []parser.TextEditInfo, previous *ast.Node) (*ast.Node, error) {
	tree, stats, err := parser.ParseWithStats(tokenizer.NewTokenAware(m.source, m.classifier, m.brackets), edits, previous)
	if err != nil {
		return nil, fmt.Errorf("token-aware tree: %w", err)
	}

	m.stats = stats

	return tree, nil
}

// lineRangeEdits turns re-classified line ranges into edits that replace
// each range with itself, ordered bottom-to-top.
func lineRangeEdits(ranges []LineRange, docLength length.Length) ([]parser.TextEditInfo, error) {
	if len(ranges) == 0 {
		return nil, nil
	}

	sorted := slices.Clone(ranges)
	for i, r := range sorted {
		if r.From < 1 || r.To < r.From {
			return nil, fmt.Errorf("range %d [%d, %d]: %w", i, r.From, r.To, ErrInvalidLineRange)
		}
	}

	slices.SortFunc(sorted, func(a, b LineRange) int { return a.From - b.From })

	merged := sorted[:1]
	for _, r := range sorted[1:] {
		last := &merged[len(merged)-1]
		if r.From <= last.To+1 {
			last.To = max(last.To, r.To)
			continue
		}

		merged = append(merged, r)
	}

	edits := make([]parser.TextEditInfo, 0, len(merged))
	for _, r := range slices.Backward(merged) {
		start := length.FromLineColumn(r.From-1, 0)
		if start > docLength {
			continue
		}

		end := length.Min(length.FromLineColumn(r.To, 0), docLength)
		edits = append(edits, parser.NewTextEditInfo(start, end, length.Diff(start, end)))
	}

	return edits, nil
}
