// Package errors provides coded, structured errors for the engine and its
// command line tool.
//
// # Error Categories
//
// Errors are organized into categories:
//   - patch: a patch could not be applied to the real tree
//   - dom: the real tree rejected a mutation
//   - parse: HTML input could not be turned into a virtual tree
//   - config: configuration loading or validation failed
//   - cli: bad command line input
//
// # Error Codes
//
// Each error has a unique code (e.g., "E100") that maps to a short message
// and a detailed explanation.
//
// # Usage
//
//	err := errors.New("E100").
//	    WithOp("InsertBefore").
//	    Wrap(domErr)
//
//	fmt.Println(err.Format())
//	// Output:
//	// ERROR E100: DOM mutation rejected (InsertBefore)
//	//
//	//   The real tree refused a mutation while patches were applied. The tree
//	//   may be partially updated.
//	//
//	//   Cause: dom: insertBefore: node is not a child
//
// Invariant violations inside the engine (a patch addressing a node that
// does not exist, a registry entry that should be present) are programming
// errors and panic instead.
package errors
