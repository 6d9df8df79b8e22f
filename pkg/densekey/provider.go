// Package densekey maps bracket identities to compact integers and provides
// an immutable set type over those integers.
package densekey

// Provider is a growing bijection between bracket identity strings and dense
// integer keys. Keys are handed out in first-seen order starting at zero and
// are never reused or removed, so a key stays valid for the whole session.
//
// A Provider is not safe for concurrent use.
type Provider struct {
	keys  map[string]int
	texts []string
}

// NewProvider returns an empty provider.
func NewProvider() *Provider {
	return &Provider{keys: make(map[string]int)}
}

// Key returns the key for text, allocating a new one on first use.
func (p *Provider) Key(text string) int {
	if key, ok := p.keys[text]; ok {
		return key
	}

	key := len(p.texts)
	p.keys[text] = key
	p.texts = append(p.texts, text)

	return key
}

// Lookup returns the key for text without allocating.
func (p *Provider) Lookup(text string) (int, bool) {
	key, ok := p.keys[text]
	return key, ok
}

// Text returns the identity string registered for key.
func (p *Provider) Text(key int) (string, bool) {
	if key < 0 || key >= len(p.texts) {
		return "", false
	}

	return p.texts[key], true
}

// Len returns the number of keys handed out so far.
func (p *Provider) Len() int {
	return len(p.texts)
}
