// Copyright 2017 Santhosh Kumar Tekuri. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package elementpath

import (
	"github.com/jonbwhite/elementpath/node"
)

// NodeSeq is a single-consumer pull sequence produced by one of the
// Context's axis methods. Advancing it mutates the owning Context's
// focus (Item, Position, Size, Axis); once the sequence is exhausted
// the pre-iteration focus is restored automatically, the save/yield/
// restore discipline every axis iterator follows.
//
// Abandoning a NodeSeq before Next returns false leaves the context's
// focus mutated: callers that break out of a loop early must call
// Close themselves if they need the focus restored.
type NodeSeq struct {
	advance func() (node.Node, bool)
	restore func()
	done    bool
}

// Next advances the sequence, returning the next node and true, or
// (nil, false) once exhausted. The focus snapshot taken when the
// sequence started is restored the moment it is exhausted.
func (s *NodeSeq) Next() (node.Node, bool) {
	if s.done {
		return nil, false
	}
	n, ok := s.advance()
	if !ok {
		s.Close()
		return nil, false
	}
	return n, true
}

// Close restores the owning context's pre-iteration focus. It is a
// no-op if the sequence already ran to completion or was already
// closed.
func (s *NodeSeq) Close() {
	if !s.done {
		s.done = true
		if s.restore != nil {
			s.restore()
		}
	}
}

// All drains the sequence to a slice, restoring focus on completion.
// Convenient for selectors that need the whole result set rather than
// streaming node by node.
func (s *NodeSeq) All() []node.Node {
	var out []node.Node
	for {
		n, ok := s.Next()
		if !ok {
			return out
		}
		out = append(out, n)
	}
}

// focusSnapshot is the (item, size, position, axis) tuple every axis
// iterator saves before mutating the context and restores once it is
// done.
type focusSnapshot struct {
	item     node.Node
	size     int
	position int
	axis     Axis
}

func (c *Context) snapshot() focusSnapshot {
	return focusSnapshot{c.Item, c.Size, c.Position, c.Axis}
}

func (s focusSnapshot) restoreTo(c *Context) {
	c.Item, c.Size, c.Position, c.Axis = s.item, s.size, s.position, s.axis
}

// emptySeq never yields anything and never touches the context's
// focus at all, which trivially satisfies the restore invariant: an
// axis that short-circuits before doing any work leaves nothing to
// restore.
func emptySeq() *NodeSeq {
	return &NodeSeq{advance: func() (node.Node, bool) { return nil, false }}
}

// passthroughSeq yields n once without mutating the context's focus:
// used by the reentrant "context step" cases (a '.' or repeated '@'
// step while already positioned on the matching node kind) where the
// axis is, by definition, not actually being stepped.
func passthroughSeq(n node.Node) *NodeSeq {
	emitted := false
	return &NodeSeq{
		advance: func() (node.Node, bool) {
			if emitted {
				return nil, false
			}
			emitted = true
			return n, true
		},
	}
}

// runAxis builds a NodeSeq lazily: the first call to Next snapshots
// the context's focus, sets axis, calls build to materialize the node
// sequence, and assigns ascending positions (1..size) as it advances.
// It backs self, attribute, child, parent, following-sibling, following
// and preceding, and the IterResults/IterSelector drivers; the
// descendant axes run their own loop in IterDescendants.
func (c *Context) runAxis(axis Axis, build func() []node.Node) *NodeSeq {
	var status focusSnapshot
	started := false
	var seq []node.Node
	idx := 0
	return &NodeSeq{
		advance: func() (node.Node, bool) {
			if !started {
				started = true
				status = c.snapshot()
				c.Axis = axis
				seq = build()
				c.Size = len(seq)
			}
			if idx >= len(seq) {
				return nil, false
			}
			n := seq[idx]
			idx++
			c.Position = idx
			c.Item = n
			return n, true
		},
		restore: func() {
			if started {
				status.restoreTo(c)
			}
		},
	}
}

// runAxisCounting is runAxis's reverse-axis counterpart: build must
// return the sequence already in the order it should be emitted, and
// position counts down from size to 1 as the sequence advances. It
// backs preceding-sibling, which the reference implementation yields
// in forward document order while decrementing position (the position
// pairing, not the emission order, is what makes the axis "reverse").
func (c *Context) runAxisCounting(axis Axis, build func() []node.Node) *NodeSeq {
	var status focusSnapshot
	started := false
	var seq []node.Node
	idx := 0
	return &NodeSeq{
		advance: func() (node.Node, bool) {
			if !started {
				started = true
				status = c.snapshot()
				c.Axis = axis
				seq = build()
				c.Size = len(seq)
				c.Position = len(seq)
			}
			if idx >= len(seq) {
				return nil, false
			}
			n := seq[idx]
			idx++
			c.Position = len(seq) - idx + 1
			c.Item = n
			return n, true
		},
		restore: func() {
			if started {
				status.restoreTo(c)
			}
		},
	}
}

// IterSelf is the iterator for the 'self' axis and the '.' shortcut.
func (c *Context) IterSelf() *NodeSeq {
	item := c.Item
	return c.runAxis(AxisSelf, func() []node.Node {
		return []node.Node{item}
	})
}

func isAttributeNode(n node.Node) bool {
	switch n.(type) {
	case *node.Attribute, *node.TypedAttribute:
		return true
	default:
		return false
	}
}

// IterAttributes is the iterator for the 'attribute' axis and the '@'
// shortcut. Re-entering it while already positioned on an attribute
// under the attribute axis yields that attribute unchanged (S5);
// anything other than an element yields nothing.
func (c *Context) IterAttributes() *NodeSeq {
	if isAttributeNode(c.Item) && c.Axis == AxisAttribute {
		return passthroughSeq(c.Item)
	}
	if !node.IsElementNode(c.Item) {
		return emptySeq()
	}
	return c.runAxis(AxisAttribute, func() []node.Node {
		elem := node.UnwrapElement(c.Item)
		out := make([]node.Node, len(elem.Attrs))
		for i, a := range elem.Attrs {
			out[i] = a
		}
		return out
	})
}

// IterChildrenOrSelf is the iterator for the 'child' forward axis and
// the '/' step. When childAxis is false and an axis is already active,
// it yields the current item unchanged: this is how a plain context
// step is told apart from an explicit new axis step (§4.3).
func (c *Context) IterChildrenOrSelf(childAxis bool) *NodeSeq {
	if !childAxis && c.Axis != AxisNone {
		return passthroughSeq(c.Item)
	}
	item := node.Unwrap(c.Item)
	return c.runAxis(AxisChild, func() []node.Node {
		switch {
		case item == nil:
			root, ok := rootElement(c.Root)
			if !ok {
				return nil
			}
			return []node.Node{root}
		case node.IsEtreeElement(item):
			elem := item.(*node.Element)
			var out []node.Node
			if elem.Text != "" {
				out = append(out, &node.Text{Data: elem.Text, Owner: elem})
			}
			for _, ch := range elem.Children {
				out = append(out, ch)
			}
			return out
		case node.IsDocumentNode(item):
			doc := item.(*node.Document)
			if doc.Root == nil {
				return nil
			}
			return []node.Node{doc.Root}
		default:
			return nil
		}
	})
}

// IterParent is the iterator for the 'parent' reverse axis and the
// '..' shortcut: empty if item has no parent, a singleton otherwise.
func (c *Context) IterParent() *NodeSeq {
	parent := c.GetParent(node.Unwrap(c.Item))
	if parent == nil {
		return emptySeq()
	}
	return c.runAxis(AxisParent, func() []node.Node {
		return []node.Node{parent}
	})
}

// IterSiblings is the iterator for the 'following-sibling' forward
// axis and the 'preceding-sibling' reverse axis. A callable (PI/
// comment) item, or one with no parent, short-circuits to empty.
func (c *Context) IterSiblings(axis Axis) *NodeSeq {
	target := node.UnwrapElement(c.Item)
	if target == nil || target.Callable {
		return emptySeq()
	}
	parent := node.UnwrapElement(c.GetParent(target))
	if parent == nil {
		return emptySeq()
	}

	if axis == AxisPrecedingSibling {
		return c.runAxisCounting(AxisPrecedingSibling, func() []node.Node {
			var out []node.Node
			for _, ch := range parent.Children {
				if ch == target {
					break
				}
				out = append(out, ch)
			}
			return out
		})
	}
	return c.runAxis(AxisFollowingSibling, func() []node.Node {
		var out []node.Node
		following := false
		for _, ch := range parent.Children {
			if following {
				out = append(out, ch)
			} else if ch == target {
				following = true
			}
		}
		return out
	})
}

// collectDescendants appends e (if withSelf) and its text/descendants
// to out, in document order, excluding attribute nodes.
func collectDescendants(e *node.Element, withSelf bool, out *[]node.Node) {
	if withSelf {
		*out = append(*out, e)
	}
	if e.Text != "" {
		*out = append(*out, &node.Text{Data: e.Text, Owner: e})
	}
	for _, ch := range e.Children {
		collectDescendants(ch, true, out)
		if ch.Tail != "" {
			*out = append(*out, &node.Text{Data: ch.Tail, Owner: e, IsTail: true})
		}
	}
}

// IterDescendants is the iterator for the 'descendant' and
// 'descendant-or-self' forward axes and the '//' shortcut. item lets a
// caller drive the walk from a node other than the context item; axis
// defaults to descendant-or-self. When root is a document and the
// starting point is the document node itself, the document is yielded
// first (with size and position both 1) before the element descendant
// sequence begins, an intentional quirk preserved from the reference
// implementation (§9).
func (c *Context) IterDescendants(item node.Node, axis Axis) *NodeSeq {
	if axis == AxisNone {
		axis = AxisDescendantOrSelf
	}
	var status focusSnapshot
	started := false
	var special node.Node
	hasSpecial := false
	specialDone := false
	var seq []node.Node
	idx := 0

	return &NodeSeq{
		advance: func() (node.Node, bool) {
			if !started {
				started = true
				status = c.snapshot()
				c.Axis = axis

				var start node.Node
				if item != nil {
					start = node.Unwrap(item)
				} else {
					start = node.Unwrap(c.Item)
				}

				var mainRoot *node.Element
				switch {
				case start == nil:
					if root, ok := rootElement(c.Root); ok {
						hasSpecial = true
						special = c.Root
						mainRoot = root
					}
				case node.IsElementNode(start):
					mainRoot, _ = start.(*node.Element)
				case node.IsDocumentNode(start):
					doc := start.(*node.Document)
					hasSpecial = true
					special = doc
					mainRoot = doc.Root
				}

				if hasSpecial {
					c.Size, c.Position = 1, 1
				}
				if mainRoot != nil {
					collectDescendants(mainRoot, axis != AxisDescendant, &seq)
				}
			}

			if hasSpecial && !specialDone {
				specialDone = true
				c.Item = special
				return special, true
			}

			c.Size = len(seq)
			if idx >= len(seq) {
				return nil, false
			}
			n := seq[idx]
			idx++
			c.Position = idx
			c.Item = n
			return n, true
		},
		restore: func() {
			if started {
				status.restoreTo(c)
			}
		},
	}
}

// IterAncestors is the iterator for the 'ancestor' and
// 'ancestor-or-self' reverse axes. Ancestors are yielded root-to-self,
// with position counting down to 1 at the context item (S3); size and
// position both default to 1, never 0, even when there are no
// ancestors to yield, matching the reference implementation's
// `len(ancestors) or 1`.
func (c *Context) IterAncestors(axis Axis) *NodeSeq {
	if axis == AxisNone {
		axis = AxisAncestorOrSelf
	}
	var status focusSnapshot
	started := false
	var seq []node.Node
	idx := 0

	return &NodeSeq{
		advance: func() (node.Node, bool) {
			if !started {
				started = true
				status = c.snapshot()
				c.Axis = axis

				item := node.Unwrap(c.Item)
				var ancestors []node.Node
				if axis == AxisAncestorOrSelf {
					ancestors = append(ancestors, item)
				}
				for parent := c.GetParent(item); parent != nil; parent = c.GetParent(parent) {
					ancestors = append(ancestors, parent)
				}
				for i, j := 0, len(ancestors)-1; i < j; i, j = i+1, j-1 {
					ancestors[i], ancestors[j] = ancestors[j], ancestors[i]
				}
				seq = ancestors

				size := len(seq)
				if size == 0 {
					size = 1
				}
				c.Size, c.Position = size, size
			}
			if idx >= len(seq) {
				return nil, false
			}
			n := seq[idx]
			idx++
			c.Position = len(seq) - idx + 1
			c.Item = n
			return n, true
		},
		restore: func() {
			if started {
				status.restoreTo(c)
			}
		},
	}
}

// IterPreceding is the iterator for the 'preceding' reverse axis. It
// walks the host tree's element-only document order (root.Iter()),
// excluding item's ancestors, stopping once item itself is reached. A
// non-element item, the root element itself, or a callable (PI/
// comment) item yields nothing.
func (c *Context) IterPreceding() *NodeSeq {
	item := node.UnwrapElement(c.Item)
	root, ok := rootElement(c.Root)
	if item == nil || !ok || item == root || item.Callable {
		return emptySeq()
	}
	return c.runAxis(AxisPreceding, func() []node.Node {
		ancestors := make(map[*node.Element]bool)
		for elem := item; ; {
			parent := node.UnwrapElement(c.GetParent(elem))
			if parent == nil {
				break
			}
			ancestors[parent] = true
			elem = parent
		}
		var out []node.Node
		for _, e := range root.Iter() {
			if e == item {
				break
			}
			if !ancestors[e] {
				out = append(out, e)
			}
		}
		return out
	})
}

// IterFollowings is the iterator for the 'following' forward axis. It
// walks the whole document (elements and text, no attributes) in
// order, excluding item's own subtree, starting right after item is
// reached. item == nil (the document focus) or item == root yields
// nothing, matching the reference implementation's unspecified
// behavior for the root element (§9, Open Questions).
func (c *Context) IterFollowings() *NodeSeq {
	if c.Item == nil || c.Item == c.Root {
		return emptySeq()
	}
	elem, ok := node.Unwrap(c.Item).(*node.Element)
	if !ok || elem.Callable {
		return emptySeq()
	}
	root, ok := rootElement(c.Root)
	if !ok {
		return emptySeq()
	}
	return c.runAxis(AxisFollowing, func() []node.Node {
		var subtree []node.Node
		collectNodes(elem, false, &subtree)
		inSubtree := make(map[node.Node]bool, len(subtree))
		for _, n := range subtree {
			inSubtree[n] = true
		}

		var whole []node.Node
		collectNodes(root, false, &whole)

		var out []node.Node
		following := false
		for _, n := range whole {
			if following {
				if !inSubtree[n] {
					out = append(out, n)
				}
			} else if n == node.Node(elem) {
				following = true
			}
		}
		return out
	})
}
