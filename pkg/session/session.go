// Package session hosts one editable document: it owns the text buffer,
// the classifier, the bracket key provider and the document model, and
// turns edits into the events the model expects.
package session

import (
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/yaklabco/gobrackets/internal/logging"
	"github.com/yaklabco/gobrackets/pkg/ast"
	"github.com/yaklabco/gobrackets/pkg/catalog"
	"github.com/yaklabco/gobrackets/pkg/classify"
	"github.com/yaklabco/gobrackets/pkg/densekey"
	"github.com/yaklabco/gobrackets/pkg/document"
	"github.com/yaklabco/gobrackets/pkg/length"
	"github.com/yaklabco/gobrackets/pkg/query"
	"github.com/yaklabco/gobrackets/pkg/textbuf"
	"github.com/yaklabco/gobrackets/pkg/tokenizer"
)

// DefaultChunkLines is the number of lines delivered per classification
// progress event.
const DefaultChunkLines = 500

// Options configures Open.
type Options struct {
	// Language is the catalog language id. When empty it is derived from
	// Filename by the caller; an unknown language has no brackets.
	Language string

	// Filename is used to pick a lexer when Language has none.
	Filename string

	// Catalog supplies the bracket pairs. Nil means catalog.Default.
	Catalog *catalog.Catalog

	// Overrides are extra pairs that take precedence over the catalog.
	Overrides []catalog.Pair

	// Classify enables comment and string classification. Without it every
	// bracket is code and the model starts converged.
	Classify bool

	// ChunkLines is the size of classification progress events. Zero means
	// DefaultChunkLines.
	ChunkLines int

	// Logger receives debug events. Nil means logging.Default.
	Logger *log.Logger
}

// Session is one open document. It is not safe for concurrent use.
type Session struct {
	language   string
	buf        *textbuf.Buffer
	keys       *densekey.Provider
	brackets   *tokenizer.Brackets
	classifier *classify.Classifier
	model      *document.Model
	chunk      int
	warnings   []error
	logger     *log.Logger
}

// Open creates a session over text.
func Open(text string, opts Options) (*Session, error) {
	cat := opts.Catalog
	if cat == nil {
		cat = catalog.Default()
	}

	logger := opts.Logger
	if logger == nil {
		logger = logging.Default()
	}

	chunk := opts.ChunkLines
	if chunk <= 0 {
		chunk = DefaultChunkLines
	}

	keys := densekey.NewProvider()
	brackets, warnings := tokenizer.Compile(cat.Pairs(opts.Language, opts.Overrides), keys)

	for _, w := range warnings {
		logger.Debug("skipping bracket token", logging.FieldLanguage, opts.Language, logging.FieldError, w)
	}

	s := &Session{
		language: opts.Language,
		buf:      textbuf.New(text),
		keys:     keys,
		brackets: brackets,
		chunk:    chunk,
		warnings: warnings,
		logger:   logger,
	}

	initial := document.ClassificationComplete

	if opts.Classify {
		if lexer, ok := classify.For(opts.Language, opts.Filename); ok {
			s.classifier = classify.New(lexer)
			initial = document.ClassificationPending

			logger.Debug("classifier selected", logging.FieldLanguage, opts.Language, logging.FieldLexer, lexer.Name())
		}
	}

	var classifier tokenizer.Classifier
	if s.classifier != nil {
		classifier = s.classifier
	}

	model, err := document.Open(s.buf, classifier, brackets, document.Options{Classification: initial})
	if err != nil {
		return nil, fmt.Errorf("open document: %w", err)
	}

	s.model = model

	logger.Debug("document opened",
		logging.FieldLanguage, opts.Language,
		logging.FieldLines, s.buf.LineCount(),
		logging.FieldBrackets, brackets.Len(),
		logging.FieldState, model.State(),
	)

	return s, nil
}

// Language returns the session language id.
func (s *Session) Language() string {
	return s.language
}

// Lexer names the classifier's lexer, or returns "" when classification
// is disabled.
func (s *Session) Lexer() string {
	if s.classifier == nil || s.classifier.Lexer() == nil {
		return ""
	}

	return s.classifier.Lexer().Name()
}

// Warnings returns the bracket tokens skipped while compiling the catalog.
func (s *Session) Warnings() []error {
	return s.warnings
}

// Buffer returns the text buffer. Mutate it through the session only.
func (s *Session) Buffer() *textbuf.Buffer {
	return s.buf
}

// Text returns the current text.
func (s *Session) Text() string {
	return s.buf.Text()
}

// Model returns the document model.
func (s *Session) Model() *document.Model {
	return s.model
}

// Keys returns the session's bracket key provider.
func (s *Session) Keys() *densekey.Provider {
	return s.keys
}

// Brackets returns the compiled bracket table.
func (s *Session) Brackets() *tokenizer.Brackets {
	return s.brackets
}

// Tree returns the tree queries are served from.
func (s *Session) Tree() *ast.Node {
	return s.model.Tree()
}

// State returns the model state.
func (s *Session) State() document.State {
	return s.model.State()
}

// OnDidChange registers fn to run after the served tree changes.
func (s *Session) OnDidChange(fn func()) func() {
	return s.model.OnDidChange(fn)
}

// Query returns the brackets overlapping r.
func (s *Session) Query(r length.Range) []query.BracketInfo {
	return s.model.BracketsInRange(r)
}

// All returns every bracket of the document.
func (s *Session) All() []query.BracketInfo {
	return query.BracketsInRange(s.model.Tree(), length.Zero, s.buf.Length())
}

// Classify runs the classifier over the whole text and delivers the
// result to the model in chunks, the last one marked complete. It is a
// no-op when classification is disabled or already complete.
func (s *Session) Classify() error {
	if s.classifier == nil || s.classifier.Ready() {
		return nil
	}

	ranges, err := s.classifier.Update(s.buf.Text())
	if err != nil {
		return fmt.Errorf("classify: %w", err)
	}

	events := Chunk(ranges, s.chunk)
	for i, ev := range events {
		if err = s.model.HandleClassificationChanged(ev); err != nil {
			return fmt.Errorf("classification event %d: %w", i, err)
		}
	}

	s.logger.Debug("classification complete",
		logging.FieldRanges, len(ranges),
		logging.FieldState, s.model.State(),
	)

	return nil
}

// Edit applies a batch of edits to the buffer and refreshes the trees.
func (s *Session) Edit(edits ...textbuf.TextEdit) error {
	ev, err := s.buf.Apply(edits)
	if err != nil {
		return err
	}

	return s.changed(ev)
}

// SetText replaces the text, deriving minimal edits from a diff.
func (s *Session) SetText(text string) error {
	ev, err := s.buf.SetText(text)
	if err != nil {
		return err
	}

	return s.changed(ev)
}

func (s *Session) changed(ev document.ChangeEvent) error {
	if len(ev.Changes) == 0 {
		return nil
	}

	// The classifier sees the new text before the token-aware reparse so
	// freshly tokenized regions are classified correctly; reused regions
	// are then corrected from the reported lines.
	var ranges []document.LineRange

	if s.classifier != nil && s.classifier.Ready() {
		var err error
		if ranges, err = s.classifier.UpdateAfter(s.buf.Text(), ev.Changes); err != nil {
			return fmt.Errorf("classify: %w", err)
		}
	}

	if err := s.model.HandleContentChanged(ev); err != nil {
		return fmt.Errorf("content change: %w", err)
	}

	if len(ranges) > 0 {
		err := s.model.HandleClassificationChanged(document.ClassificationEvent{
			Ranges:   ranges,
			Complete: true,
		})
		if err != nil {
			return fmt.Errorf("classification change: %w", err)
		}
	}

	stats := s.model.LastStats()
	s.logger.Debug("document edited",
		logging.FieldVersion, s.buf.Version(),
		logging.FieldEdits, len(ev.Changes),
		logging.FieldReusedNodes, stats.ReusedNodes,
		logging.FieldReusedLength, stats.ReusedLength,
		logging.FieldTokens, stats.Tokens,
	)

	return nil
}

// Chunk splits changed line ranges into progress events of at most lines
// lines each. The last event is marked complete; an empty input still
// yields one complete event.
func Chunk(ranges []document.LineRange, lines int) []document.ClassificationEvent {
	if lines <= 0 {
		lines = DefaultChunkLines
	}

	var (
		events  []document.ClassificationEvent
		current []document.LineRange
		size    int
	)

	for _, r := range ranges {
		for from := r.From; from <= r.To; {
			to := min(r.To, from+lines-size-1)
			current = append(current, document.LineRange{From: from, To: to})
			size += to - from + 1
			from = to + 1

			if size == lines {
				events = append(events, document.ClassificationEvent{Ranges: current})
				current, size = nil, 0
			}
		}
	}

	if len(current) > 0 || len(events) == 0 {
		events = append(events, document.ClassificationEvent{Ranges: current})
	}

	events[len(events)-1].Complete = true

	return events
}
