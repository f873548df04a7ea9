// Copyright 2017 Santhosh Kumar Tekuri. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package node defines the XPath node model: the tagged union of node
// kinds an XPathContext navigates, and the handful of predicates the
// evaluation core uses to tell them apart.
//
// The tree itself (an Element's children, text and tail) is the "host
// tree" described by the evaluator: it carries no parent pointers, so
// callers that need parent information go through a Context's parent
// index instead of a field on Node.
package node

// Node is implemented by every node kind the evaluator can focus on:
// Element, Attribute, Text, Document, TypedElement and TypedAttribute.
type Node interface {
	isNode()
}

// Element is an opaque handle into the host tree: a tag, an ordered
// attribute list, ordered element children, and optional text/tail.
//
// Callable reports a host-tree convention: some trees represent
// processing instructions and comments as elements whose tag is not a
// plain name but a callable sentinel. Such elements must be treated as
// non-elements by element-centric axes (child, descendant, sibling,
// following, preceding), matching ElementTree/lxml's behavior.
type Element struct {
	Tag      string
	Callable bool
	Attrs    []*Attribute
	Children []*Element
	Text     string
	Tail     string
}

func (*Element) isNode() {}

// IsElement reports whether e is usable as an XPath element node, i.e.
// non-nil and not a callable (PI/comment) sentinel.
func (e *Element) IsElement() bool {
	return e != nil && !e.Callable
}

// Iter returns e and all of its descendant elements in document order,
// the host-tree primitive `root.iter()` described by the evaluator's
// external interface. Callable (PI/comment) elements are included,
// since parent-map construction needs every element in the tree.
func (e *Element) Iter() []*Element {
	var out []*Element
	var walk func(*Element)
	walk = func(el *Element) {
		out = append(out, el)
		for _, c := range el.Children {
			walk(c)
		}
	}
	walk(e)
	return out
}

// Attribute is a qualified-name/string-value pair bound to its owner
// element. Unlike the child/parent relation between elements, the
// attribute-to-owner edge is direct: no parent-map lookup is needed to
// answer get_parent(attr).
type Attribute struct {
	Name  string
	Value string
	Owner *Element
}

func (*Attribute) isNode() {}

// Text is a textual chunk: either an element's .text (IsTail == false)
// or a child element's .tail (IsTail == true, Owner is the parent the
// tail text logically belongs to for path/parent purposes).
type Text struct {
	Data   string
	Owner  *Element
	IsTail bool
}

func (*Text) isNode() {}

// Document is a root container owning exactly one root element.
type Document struct {
	Root *Element
}

func (*Document) isNode() {}

// GetRoot returns the document's single root element.
func (d *Document) GetRoot() *Element {
	return d.Root
}

// TypedElement pairs an Element with an XSD-decoded value for
// schema-aware evaluation. The underlying element is reachable through
// Elem (the "position-0 projection" the spec describes).
type TypedElement struct {
	Elem  *Element
	Value interface{}
}

func (*TypedElement) isNode() {}

// TypedAttribute pairs an Attribute with an XSD-decoded value.
type TypedAttribute struct {
	Attr  *Attribute
	Value interface{}
}

func (*TypedAttribute) isNode() {}

// IsElementNode reports whether n is an element, bare or typed, and
// not a callable (PI/comment) sentinel.
func IsElementNode(n Node) bool {
	switch v := n.(type) {
	case *Element:
		return v.IsElement()
	case *TypedElement:
		return v.Elem.IsElement()
	default:
		return false
	}
}

// IsDocumentNode reports whether n is a Document.
func IsDocumentNode(n Node) bool {
	_, ok := n.(*Document)
	return ok
}

// IsEtreeElement reports whether n is a bare *Element (typed wrappers
// don't count: callers that need unwrapping call Unwrap first).
func IsEtreeElement(n Node) bool {
	_, ok := n.(*Element)
	return ok
}

// Unwrap strips a TypedElement/TypedAttribute wrapper down to the
// underlying physical node it pairs with a decoded value. Any other
// node, including nil, is returned unchanged.
func Unwrap(n Node) Node {
	switch v := n.(type) {
	case *TypedElement:
		return v.Elem
	case *TypedAttribute:
		return v.Attr
	default:
		return n
	}
}

// UnwrapElement returns the *Element underneath n, whether n is a bare
// element or a TypedElement, and nil for anything else.
func UnwrapElement(n Node) *Element {
	switch v := n.(type) {
	case *Element:
		return v
	case *TypedElement:
		return v.Elem
	default:
		return nil
	}
}

// UnwrapAttribute returns the *Attribute underneath n, whether n is a
// bare attribute or a TypedAttribute, and nil for anything else.
func UnwrapAttribute(n Node) *Attribute {
	switch v := n.(type) {
	case *Attribute:
		return v
	case *TypedAttribute:
		return v.Attr
	default:
		return nil
	}
}

// Same reports whether a and b refer to the same node by identity:
// XPath node comparisons are never by value.
func Same(a, b Node) bool {
	return a == b
}
