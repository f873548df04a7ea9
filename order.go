// Copyright 2017 Santhosh Kumar Tekuri. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package elementpath

import (
	"github.com/jonbwhite/elementpath/node"
)

// Compare orders a and b as document order would: negative if a comes
// before b, positive if a comes after b, zero if they are the same
// node (by identity, after unwrapping typed wrappers). It is the
// primitive a selector needs to sort and deduplicate a node set (e.g.
// the output of a union) into document order without re-walking the
// whole tree for every pair.
//
// Attribute nodes sort after their owner element and before its text
// and children; two attributes on the same owner order by declaration
// order.
func (c *Context) Compare(a, b node.Node) int {
	a, b = node.Unwrap(a), node.Unwrap(b)
	if a == b {
		return 0
	}

	ownerA, aIsAttr := attrOwner(a)
	ownerB, bIsAttr := attrOwner(b)

	switch {
	case aIsAttr && bIsAttr && ownerA == ownerB:
		return compareAttrs(a.(*node.Attribute), b.(*node.Attribute), ownerA)
	case aIsAttr && !bIsAttr:
		if b == node.Node(ownerA) {
			return 1
		}
		anchorB := anchorElement(b)
		if anchorB == ownerA {
			return -1
		}
	case bIsAttr && !aIsAttr:
		if a == node.Node(ownerB) {
			return -1
		}
		anchorA := anchorElement(a)
		if anchorA == ownerB {
			return 1
		}
	}

	anchorA, anchorB := anchorElement(a), anchorElement(b)
	if aIsAttr {
		anchorA = ownerA
	}
	if bIsAttr {
		anchorB = ownerB
	}
	if anchorA == nil || anchorB == nil {
		return 0
	}
	if anchorA == anchorB {
		if aIsAttr != bIsAttr {
			if aIsAttr {
				return -1
			}
			return 1
		}
		var seq []node.Node
		collectNodes(anchorA, false, &seq)
		return indexOf(seq, a) - indexOf(seq, b)
	}

	chainA := c.ancestorChain(anchorA)
	chainB := c.ancestorChain(anchorB)

	common := 0
	for common < len(chainA) && common < len(chainB) && chainA[common] == chainB[common] {
		common++
	}
	switch {
	case common == len(chainA):
		return -1 // anchorA is an ancestor of (or is) anchorB
	case common == len(chainB):
		return 1 // anchorB is an ancestor of (or is) anchorA
	default:
		parent := chainA[common-1]
		return compareChildren(parent, chainA[common], chainB[common])
	}
}

// Sort orders ns into document order in place, using Compare.
func (c *Context) Sort(ns []node.Node) {
	// insertion sort: result sets in practice are small and mostly
	// ordered already; Compare's cost (an ancestor walk) makes a simple
	// stable sort preferable to re-deriving positions from scratch.
	for i := 1; i < len(ns); i++ {
		for j := i; j > 0 && c.Compare(ns[j-1], ns[j]) > 0; j-- {
			ns[j-1], ns[j] = ns[j], ns[j-1]
		}
	}
}

func attrOwner(n node.Node) (*node.Element, bool) {
	if a, ok := n.(*node.Attribute); ok {
		return a.Owner, true
	}
	return nil, false
}

// anchorElement returns the element a non-attribute node is housed
// under: itself for an Element, its Owner for a Text.
func anchorElement(n node.Node) *node.Element {
	switch v := n.(type) {
	case *node.Element:
		return v
	case *node.Text:
		return v.Owner
	default:
		return nil
	}
}

func compareAttrs(a, b *node.Attribute, owner *node.Element) int {
	if a == b {
		return 0
	}
	ia, ib := -1, -1
	for i, at := range owner.Attrs {
		if at == a {
			ia = i
		}
		if at == b {
			ib = i
		}
	}
	return ia - ib
}

func indexOf(seq []node.Node, n node.Node) int {
	for i, s := range seq {
		if s == n {
			return i
		}
	}
	return -1
}

// ancestorChain returns the chain of elements from root down to and
// including e itself.
func (c *Context) ancestorChain(e *node.Element) []*node.Element {
	var chain []*node.Element
	for cur := e; cur != nil; {
		chain = append(chain, cur)
		cur = node.UnwrapElement(c.GetParent(cur))
	}
	for i, j := 0, len(chain)-1; i < j; i, j = i+1, j-1 {
		chain[i], chain[j] = chain[j], chain[i]
	}
	return chain
}

// compareChildren orders two distinct children of parent by position
// in parent's children slice.
func compareChildren(parent, a, b *node.Element) int {
	ia, ib := -1, -1
	for i, ch := range parent.Children {
		if ch == a {
			ia = i
		}
		if ch == b {
			ib = i
		}
	}
	return ia - ib
}
