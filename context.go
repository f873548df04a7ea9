// Copyright 2017 Santhosh Kumar Tekuri. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package elementpath

import (
	"time"

	"github.com/jonbwhite/elementpath/node"
)

// Axis identifies the direction of navigation a Context is currently
// engaged in. A zero Axis (AxisNone) means no axis step is in
// progress: each axis iterator sets its axis while it yields and
// restores the previous value once it is exhausted or closed.
type Axis int

const (
	AxisNone Axis = iota
	AxisSelf
	AxisChild
	AxisParent
	AxisAttribute
	AxisFollowingSibling
	AxisPrecedingSibling
	AxisAncestor
	AxisAncestorOrSelf
	AxisDescendant
	AxisDescendantOrSelf
	AxisFollowing
	AxisPreceding
)

var axisNames = [...]string{
	AxisNone:            "",
	AxisSelf:             "self",
	AxisChild:            "child",
	AxisParent:           "parent",
	AxisAttribute:        "attribute",
	AxisFollowingSibling: "following-sibling",
	AxisPrecedingSibling: "preceding-sibling",
	AxisAncestor:         "ancestor",
	AxisAncestorOrSelf:   "ancestor-or-self",
	AxisDescendant:       "descendant",
	AxisDescendantOrSelf: "descendant-or-self",
	AxisFollowing:        "following",
	AxisPreceding:        "preceding",
}

func (a Axis) String() string {
	if int(a) < len(axisNames) {
		return axisNames[a]
	}
	return "unknown"
}

// Config carries the named parameters a Context may be constructed
// with. Every field is optional; NewContext fills in the documented
// defaults for whatever is left zero.
type Config struct {
	Item              node.Node
	Position          int
	Size              int
	Axis              Axis
	VariableValues    map[string]interface{}
	CurrentDateTime   time.Time
	Timezone          *time.Location
	Documents         map[string]*node.Document
	Collections       map[string][]node.Node
	DefaultCollection []node.Node

	// ParentCacheSize bounds the optional LRU memo in front of the
	// parent map (see GetParent). 0 uses the default of 1024, a
	// negative value disables memoization entirely.
	ParentCacheSize int
}

// Context is the XPath dynamic context: the root of the tree being
// navigated, the current focus (item, position, size, axis), variable
// bindings, and the ambient values (current date-time, implicit
// timezone, available documents/collections) an expression may read
// during evaluation.
//
// A Context is owned by exactly one evaluation at a time; nested
// selectors get their own focus via Copy, never by mutating a shared
// Context from two goroutines at once.
type Context struct {
	Root node.Node // *node.Document or *node.Element

	Item     node.Node
	Position int
	Size     int
	Axis     Axis

	VariableValues  map[string]interface{}
	CurrentDateTime time.Time
	Timezone        *time.Location

	Documents         map[string]*node.Document
	Collections       map[string][]node.Node
	DefaultCollection []node.Node

	elem node.Node // anchor element used to resolve attribute/text paths

	parentMap   map[node.Node]node.Node
	parentCache *parentCache
}

// NewContext constructs a dynamic context rooted at root, which must
// be either a *node.Document or a non-callable *node.Element.
//
// When root is an element and cfg.Item is nil, the item defaults to
// root itself (invariant 2). When root is a document and cfg.Item is
// nil, the item is left nil, meaning the focus is on the document node
// (invariant 4).
func NewContext(root node.Node, cfg Config) (*Context, error) {
	c := &Context{
		Root:              root,
		Position:          cfg.Position,
		Size:              cfg.Size,
		Axis:              cfg.Axis,
		CurrentDateTime:   cfg.CurrentDateTime,
		Timezone:          cfg.Timezone,
		Documents:         cfg.Documents,
		Collections:       cfg.Collections,
		DefaultCollection: cfg.DefaultCollection,
	}
	if c.Position == 0 {
		c.Position = 1
	}
	if c.Size == 0 {
		c.Size = 1
	}

	switch r := root.(type) {
	case *node.Element:
		if r.Callable {
			return nil, InvalidRootError{Root: root}
		}
		if cfg.Item == nil {
			c.Item = r
			c.elem = r
		} else if el, ok := cfg.Item.(*node.Element); ok && el.IsElement() {
			c.Item = el
			c.elem = el
		} else {
			c.Item = cfg.Item
			c.elem = r
		}
	case *node.Document:
		c.Item = cfg.Item
		if node.IsElementNode(cfg.Item) {
			c.elem = cfg.Item
		} else {
			c.elem = r.Root
		}
	default:
		return nil, InvalidRootError{Root: root}
	}

	if cfg.VariableValues == nil {
		c.VariableValues = make(map[string]interface{})
	} else {
		c.VariableValues = make(map[string]interface{}, len(cfg.VariableValues))
		for k, v := range cfg.VariableValues {
			c.VariableValues[k] = v
		}
	}

	if c.Timezone == nil {
		c.Timezone = time.Local
	}
	if c.CurrentDateTime.IsZero() {
		c.CurrentDateTime = time.Now().In(c.Timezone)
	}

	if cfg.ParentCacheSize >= 0 {
		c.parentCache = newParentCache(cfg.ParentCacheSize)
	}

	return c, nil
}

// Copy produces a shallow clone of c, suitable for independent axis
// traversal by a nested selector: same root, a fresh map holding the
// same variable values, the same document/collection tables, and the
// same parent-map/cache (callers never mutate it). When clearAxis is
// true (the common case) the clone's axis is reset to AxisNone;
// otherwise the current axis is preserved.
func (c *Context) Copy(clearAxis bool) *Context {
	clone := &Context{
		Root:              c.Root,
		Item:              c.Item,
		Position:          c.Position,
		Size:              c.Size,
		CurrentDateTime:   c.CurrentDateTime,
		Timezone:          c.Timezone,
		Documents:         c.Documents,
		Collections:       c.Collections,
		DefaultCollection: c.DefaultCollection,
		elem:              c.elem,
		parentMap:         c.parentMap,
		parentCache:       c.parentCache,
	}
	clone.VariableValues = make(map[string]interface{}, len(c.VariableValues))
	for k, v := range c.VariableValues {
		clone.VariableValues[k] = v
	}
	if !clearAxis {
		clone.Axis = c.Axis
	}
	return clone
}

// IsPrincipalNodeKind reports whether the context item is of the node
// kind its active axis selects by default: an attribute under the
// attribute axis, an element under every other axis.
func (c *Context) IsPrincipalNodeKind() bool {
	if c.Axis == AxisAttribute {
		switch c.Item.(type) {
		case *node.Attribute, *node.TypedAttribute:
			return true
		default:
			return false
		}
	}
	return node.IsElementNode(c.Item)
}

// Iter walks every node reachable from the context's root in document
// order, including attribute and text nodes: it is the basis for
// IterResults. When root is a document,
// the document node is yielded first, per external interface §6.
func (c *Context) Iter() []node.Node {
	var out []node.Node
	root := c.Root
	if doc, ok := root.(*node.Document); ok {
		out = append(out, doc)
		root = doc.Root
	}
	elem, ok := root.(*node.Element)
	if !ok {
		return out
	}
	collectNodes(elem, true, &out)
	return out
}

// collectNodes appends e, (optionally) its attribute nodes, and its
// text/children/tail in document order to out, recursing into children.
func collectNodes(e *node.Element, withAttributes bool, out *[]node.Node) {
	*out = append(*out, e)
	if withAttributes {
		for _, a := range e.Attrs {
			*out = append(*out, a)
		}
	}
	if e.Text != "" {
		*out = append(*out, &node.Text{Data: e.Text, Owner: e})
	}
	for _, c := range e.Children {
		collectNodes(c, withAttributes, out)
		if c.Tail != "" {
			*out = append(*out, &node.Text{Data: c.Tail, Owner: e, IsTail: true})
		}
	}
}
