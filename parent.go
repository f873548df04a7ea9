// Copyright 2017 Santhosh Kumar Tekuri. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package elementpath

import (
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/jonbwhite/elementpath/node"
)

const defaultParentCacheSize = 1024

// parentCache is an optional bounded memo in front of a Context's
// parent map. The map itself stays the source of truth (see
// buildParentMap); the cache only saves repeated map lookups for
// elements that are probed often, mirroring the effect of Python's
// functools.lru_cache(maxsize=1024) on the reference implementation's
// get_parent. A nil *parentCache disables memoization entirely.
type parentCache struct {
	lru *lru.Cache[node.Node, node.Node]
}

func newParentCache(size int) *parentCache {
	if size == 0 {
		size = defaultParentCacheSize
	}
	c, err := lru.New[node.Node, node.Node](size)
	if err != nil {
		return nil
	}
	return &parentCache{lru: c}
}

func (p *parentCache) get(n node.Node) (node.Node, bool) {
	if p == nil {
		return nil, false
	}
	return p.lru.Get(n)
}

func (p *parentCache) put(n, parent node.Node) {
	if p == nil {
		return
	}
	p.lru.Add(n, parent)
}

// rootElement returns the single element a context's root resolves to:
// the root itself, or a document's root element.
func rootElement(root node.Node) (*node.Element, bool) {
	switch r := root.(type) {
	case *node.Element:
		return r, true
	case *node.Document:
		if r.Root == nil {
			return nil, false
		}
		return r.Root, true
	default:
		return nil, false
	}
}

// buildParentMap computes {child: parent for parent in root.iter() for
// child in parent.children}, the O(N) rebuild the reference
// implementation performs on a parent-map lookup miss.
func (c *Context) buildParentMap() map[node.Node]node.Node {
	m := make(map[node.Node]node.Node)
	root, ok := rootElement(c.Root)
	if !ok {
		return m
	}
	for _, parent := range root.Iter() {
		for _, child := range parent.Children {
			m[child] = parent
		}
	}
	return m
}

// ParentMap returns a read-only view of the cached reverse index from
// child element identity to parent element. It is computed lazily on
// first use (by GetParent) and is nil until then.
func (c *Context) ParentMap() map[node.Node]node.Node {
	return c.parentMap
}

// GetParent returns the parent of node, or nil if node is the root, is
// not part of the tree, or has no navigable parent (a Document, or an
// Element/Attribute that was never linked into this context's tree).
//
// TypedElement is unwrapped to its Element first. Attribute and Text
// nodes resolve their parent directly through their Owner field: the
// tree stores that edge explicitly, so no parent-map lookup is needed.
// Any other node (including an Element with no entry in the tree) is
// looked up in the cached parent map, which is rebuilt once on a miss
// and the lookup retried; a second miss returns nil.
func (c *Context) GetParent(n node.Node) node.Node {
	if attr := node.UnwrapAttribute(n); attr != nil {
		if attr.Owner == nil {
			return nil
		}
		return attr.Owner
	}
	if txt, ok := n.(*node.Text); ok {
		if txt.Owner == nil {
			return nil
		}
		return txt.Owner
	}

	elem := node.UnwrapElement(n)
	if elem == nil {
		return nil
	}
	if root, ok := rootElement(c.Root); ok && elem == root {
		return nil
	}

	if parent, ok := c.parentCache.get(elem); ok {
		return parent
	}

	if c.parentMap == nil {
		c.parentMap = c.buildParentMap()
		logParentMapRebuilt(len(c.parentMap))
	}
	if parent, ok := c.parentMap[elem]; ok {
		c.parentCache.put(elem, parent)
		return parent
	}

	// Lookup miss: the map may be stale (invariant 6). Rebuild once
	// and retry before giving up.
	c.parentMap = c.buildParentMap()
	logParentMapRebuilt(len(c.parentMap))
	parent, ok := c.parentMap[elem]
	if !ok {
		logParentLookupMiss(elem.Tag)
		return nil
	}
	c.parentCache.put(elem, parent)
	return parent
}

// GetPath returns the absolute path to item: ancestor tags joined by
// '/', anchored at the root, with an attribute's "@name" appended last
// when item is an attribute. An attribute is anchored on the context's
// elem field rather than on its Owner; with no such anchor it resolves
// to "@name" alone. An item that resolves to nothing returns "".
func (c *Context) GetPath(item node.Node) string {
	var path []string

	working := item
	if attr := node.UnwrapAttribute(item); attr != nil {
		path = append(path, "@"+attr.Name)
		working = c.elem
	}

	if working == nil {
		if len(path) == 0 {
			return ""
		}
		return path[0]
	}

	elem := node.UnwrapElement(working)
	if elem == nil {
		if len(path) == 0 {
			return ""
		}
		return path[0]
	}

	for {
		parent := c.GetParent(elem)
		path = append(path, elem.Tag)
		if parent == nil {
			break
		}
		pe := node.UnwrapElement(parent)
		if pe == nil {
			break
		}
		elem = pe
	}

	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return "/" + strings.Join(path, "/")
}
