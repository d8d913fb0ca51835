package dom

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by mutation methods.
var (
	// ErrInvalidName is returned when an attribute name contains characters
	// that are not allowed in markup.
	ErrInvalidName = errors.New("dom: invalid attribute name")

	// ErrNotChild is returned when a reference node is not a child of the
	// node being mutated.
	ErrNotChild = errors.New("dom: node is not a child")

	// ErrNoParent is returned when replacing a node that is not attached.
	ErrNoParent = errors.New("dom: node has no parent")

	// ErrHierarchy is returned when an insertion would create a cycle or
	// place children under a node type that cannot hold them.
	ErrHierarchy = errors.New("dom: hierarchy request error")
)

// MutationError records which operation failed and on what node.
type MutationError struct {
	Op   string // Operation that failed, e.g. "setAttribute"
	Node string // Short description of the target node
	Err  error  // Underlying error
}

// Error returns the error message with operation context.
func (e *MutationError) Error() string {
	return fmt.Sprintf("dom: %s on %s: %v", e.Op, e.Node, e.Err)
}

// Unwrap returns the underlying error.
func (e *MutationError) Unwrap() error {
	return e.Err
}

func mutationErr(op string, n *Node, err error) error {
	return &MutationError{Op: op, Node: n.String(), Err: err}
}
