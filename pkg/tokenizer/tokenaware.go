package tokenizer

// TokenAware tokenizes lines supplied by the host and drops bracket
// candidates the classifier places outside code.
type TokenAware struct {
	*scanner
}

// NewTokenAware returns a tokenizer over lines. A nil classifier treats
// every position as code.
func NewTokenAware(lines LineSource, classifier Classifier, brackets *Brackets) *TokenAware {
	var accept func(line, column int) bool
	if classifier != nil {
		accept = classifier.IsCode
	}

	return &TokenAware{scanner: newScanner(lines, brackets, accept)}
}
