package document

import "github.com/yaklabco/gobrackets/pkg/ast"

// State names the coordinator state.
type State uint8

// Coordinator states.
const (
	StateInitial State = iota
	StateConverged
)

// String implements fmt.Stringer.
func (s State) String() string {
	if s == StateConverged {
		return "converged"
	}

	return "initial"
}

// treeState holds the live trees. Exactly one of the two implementations is
// active; the fast tree exists only in the initial state.
type treeState interface {
	state() State
	current() *ast.Node
}

// initialState serves the fast tree while classification is in progress.
type initialState struct {
	fast       *ast.Node
	tokenAware *ast.Node
}

func (s initialState) state() State       { return StateInitial }
func (s initialState) current() *ast.Node { return s.fast }

// convergedState serves the token-aware tree only.
type convergedState struct {
	tokenAware *ast.Node
}

func (s convergedState) state() State       { return StateConverged }
func (s convergedState) current() *ast.Node { return s.tokenAware }
