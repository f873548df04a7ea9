// Copyright 2017 Santhosh Kumar Tekuri. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package node

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func tree() (*Element, *Element, *Element) {
	c1 := &Element{Tag: "c1"}
	b1 := &Element{Tag: "b1", Children: []*Element{c1}}
	b2 := &Element{Tag: "b2"}
	a := &Element{Tag: "a", Children: []*Element{b1, b2}}
	return a, b1, c1
}

func TestElementIterDocumentOrder(t *testing.T) {
	a, b1, c1 := tree()
	b2 := a.Children[1]
	got := a.Iter()
	assert.Equal(t, []*Element{a, b1, c1, b2}, got)
}

func TestIsElementNode(t *testing.T) {
	a, _, _ := tree()
	assert.True(t, IsElementNode(a))

	comment := &Element{Tag: "comment()", Callable: true}
	assert.False(t, IsElementNode(comment))

	typed := &TypedElement{Elem: a, Value: 42}
	assert.True(t, IsElementNode(typed))

	assert.False(t, IsElementNode(&Attribute{Name: "x"}))
}

func TestUnwrapTransparent(t *testing.T) {
	a, _, _ := tree()
	attr := &Attribute{Name: "id", Value: "1", Owner: a}

	assert.Same(t, a, UnwrapElement(a))
	assert.Same(t, a, UnwrapElement(&TypedElement{Elem: a, Value: "v"}))
	assert.Nil(t, UnwrapElement(attr))

	assert.Same(t, attr, UnwrapAttribute(attr))
	assert.Same(t, attr, UnwrapAttribute(&TypedAttribute{Attr: attr, Value: "v"}))
	assert.Nil(t, UnwrapAttribute(a))
}

func TestSameIdentity(t *testing.T) {
	a, b1, _ := tree()
	assert.True(t, Same(a, a))
	assert.False(t, Same(a, b1))

	a2 := &Element{Tag: "a"}
	assert.False(t, Same(a, a2), "equal tags must not imply node identity")
}

func TestDocumentGetRoot(t *testing.T) {
	a, _, _ := tree()
	doc := &Document{Root: a}
	assert.Same(t, a, doc.GetRoot())
	assert.True(t, IsDocumentNode(doc))
	assert.False(t, IsDocumentNode(a))
}
