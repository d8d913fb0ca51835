// Package events keeps event handlers associated with real nodes across
// re-renders.
//
// Each real node with bindings carries an ID (stored under IDProperty).
// The Registry maps IDs to the current handler per event name. Delegated
// events (clicks, key presses) are handled by one Delegator listener on the
// mount root that walks from the target up through its ancestors; other
// events get one listener per node that looks up the handler at dispatch
// time, so Overwrite swaps closures without reattaching anything.
package events
