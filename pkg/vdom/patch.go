package vdom

import (
	"fmt"
	"sort"
	"strings"
)

// PatchOp is the type of patch operation.
type PatchOp uint8

const (
	PatchReplace             PatchOp = 0x01 // Replace node entirely
	PatchChangeText          PatchOp = 0x02 // Update text content
	PatchAddAttributes       PatchOp = 0x03 // Set/update attributes
	PatchRemoveAttributes    PatchOp = 0x04 // Remove attributes
	PatchValueUnchanged      PatchOp = 0x05 // Re-apply input value
	PatchCheckedUnchanged    PatchOp = 0x06 // Re-apply checked property
	PatchAppendChildren      PatchOp = 0x07 // Append new children to parent
	PatchTruncateChildren    PatchOp = 0x08 // Keep only the first Count children
	PatchInsertBefore        PatchOp = 0x09 // Insert new nodes before anchor
	PatchMoveNodesBefore     PatchOp = 0x0A // Move existing nodes before anchor
	PatchMoveToEndOfSiblings PatchOp = 0x0B // Move existing nodes to end of parent
	PatchRemoveChildren      PatchOp = 0x0C // Remove existing children of parent
	PatchAddEvents           PatchOp = 0x0D // Bind new event names
	PatchRemoveEvents        PatchOp = 0x0E // Unbind event names
	PatchCallOnCreate        PatchOp = 0x0F // Run on-create hook on existing node
	PatchCallOnRemove        PatchOp = 0x10 // Run old on-remove hook on existing node
	PatchSetInnerHTML        PatchOp = 0x11 // Set raw inner HTML
	PatchRemoveInnerHTML     PatchOp = 0x12 // Clear raw inner HTML
)

// String returns the string representation of the PatchOp.
func (op PatchOp) String() string {
	switch op {
	case PatchReplace:
		return "Replace"
	case PatchChangeText:
		return "ChangeText"
	case PatchAddAttributes:
		return "AddAttributes"
	case PatchRemoveAttributes:
		return "RemoveAttributes"
	case PatchValueUnchanged:
		return "ValueUnchanged"
	case PatchCheckedUnchanged:
		return "CheckedUnchanged"
	case PatchAppendChildren:
		return "AppendChildren"
	case PatchTruncateChildren:
		return "TruncateChildren"
	case PatchInsertBefore:
		return "InsertBefore"
	case PatchMoveNodesBefore:
		return "MoveNodesBefore"
	case PatchMoveToEndOfSiblings:
		return "MoveToEndOfSiblings"
	case PatchRemoveChildren:
		return "RemoveChildren"
	case PatchAddEvents:
		return "AddEvents"
	case PatchRemoveEvents:
		return "RemoveEvents"
	case PatchCallOnCreate:
		return "CallOnCreate"
	case PatchCallOnRemove:
		return "CallOnRemove"
	case PatchSetInnerHTML:
		return "SetInnerHTML"
	case PatchRemoveInnerHTML:
		return "RemoveInnerHTML"
	default:
		return "Unknown"
	}
}

// IsStructural reports whether the op changes markup. ValueUnchanged and
// CheckedUnchanged only resynchronize live control state.
func (op PatchOp) IsStructural() bool {
	return op != PatchValueUnchanged && op != PatchCheckedUnchanged
}

// Patch is a single mutation addressed by old-tree traversal index.
//
// OldIdx is the node the patch targets. For InsertBefore and MoveNodesBefore
// it is the anchor sibling; for AppendChildren, TruncateChildren,
// MoveToEndOfSiblings and RemoveChildren it is the parent.
type Patch struct {
	Op         PatchOp                   // Operation type
	OldIdx     uint32                    // Target, anchor or parent index
	NewNode    *VNode                    // Replace, ChangeText, CallOnCreate, SetInnerHTML
	OldNode    *VNode                    // CallOnRemove
	Attrs      map[string]AttributeValue // AddAttributes
	AttrNames  []string                  // RemoveAttributes, sorted
	Value      AttributeValue            // ValueUnchanged, CheckedUnchanged
	Nodes      []*VNode                  // AppendChildren, InsertBefore
	Indices    []uint32                  // MoveNodesBefore, MoveToEndOfSiblings, RemoveChildren
	Count      int                       // TruncateChildren
	Events     Events                    // AddEvents
	EventNames []EventName               // RemoveEvents, sorted
}

// Targets returns every old-tree index the patch needs resolved.
func (p Patch) Targets() []uint32 {
	out := make([]uint32, 0, 1+len(p.Indices))
	out = append(out, p.OldIdx)
	return append(out, p.Indices...)
}

// String returns a compact description, e.g. "AddAttributes@3 class=\"x\"".
func (p Patch) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s@%d", p.Op, p.OldIdx)
	switch p.Op {
	case PatchReplace, PatchSetInnerHTML, PatchCallOnCreate:
		fmt.Fprintf(&b, " %s", describe(p.NewNode))
	case PatchChangeText:
		fmt.Fprintf(&b, " %q", p.NewNode.Text)
	case PatchAddAttributes:
		keys := make([]string, 0, len(p.Attrs))
		for k := range p.Attrs {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Fprintf(&b, " %s=%#v", k, p.Attrs[k])
		}
	case PatchRemoveAttributes:
		fmt.Fprintf(&b, " %s", strings.Join(p.AttrNames, " "))
	case PatchValueUnchanged, PatchCheckedUnchanged:
		fmt.Fprintf(&b, " %#v", p.Value)
	case PatchAppendChildren, PatchInsertBefore:
		for _, n := range p.Nodes {
			fmt.Fprintf(&b, " %s", describe(n))
		}
	case PatchMoveNodesBefore, PatchMoveToEndOfSiblings, PatchRemoveChildren:
		fmt.Fprintf(&b, " %v", p.Indices)
	case PatchTruncateChildren:
		fmt.Fprintf(&b, " %d", p.Count)
	case PatchAddEvents:
		for _, n := range p.Events.Names() {
			fmt.Fprintf(&b, " %s", n)
		}
	case PatchRemoveEvents:
		for _, n := range p.EventNames {
			fmt.Fprintf(&b, " %s", n)
		}
	case PatchCallOnRemove:
		fmt.Fprintf(&b, " %s", describe(p.OldNode))
	}
	return b.String()
}

func describe(v *VNode) string {
	switch {
	case v == nil:
		return "<nil>"
	case v.IsText():
		return fmt.Sprintf("#text(%q)", v.Text)
	case v.Key != "":
		return fmt.Sprintf("<%s key=%q>", v.Tag, v.Key)
	default:
		return "<" + v.Tag + ">"
	}
}
