// Copyright 2017 Santhosh Kumar Tekuri. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package elementpath

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonbwhite/elementpath/node"
)

// S1: Root <a><b/><c/></a>. From item=root, children yields [b, c].
func TestIterChildrenOrSelf_S1(t *testing.T) {
	b := &node.Element{Tag: "b"}
	cEl := &node.Element{Tag: "c"}
	a := &node.Element{Tag: "a", Children: []*node.Element{b, cEl}}

	ctx, err := NewContext(a, Config{})
	require.NoError(t, err)

	seq := ctx.IterChildrenOrSelf(true)
	first, ok := seq.Next()
	require.True(t, ok)
	assert.Equal(t, 2, ctx.Size)
	got := append([]node.Node{first}, seq.All()...)
	assert.Equal(t, []node.Node{b, cEl}, got)
	assert.Equal(t, AxisNone, ctx.Axis, "focus restored after exhaustion")
}

// S2: Root <a>x<b/>y</a> with b.tail='y'. Child axis of a yields
// [text("x"), b]; the tail is not a child.
func TestIterChildrenOrSelf_S2(t *testing.T) {
	b := &node.Element{Tag: "b", Tail: "y"}
	a := &node.Element{Tag: "a", Text: "x", Children: []*node.Element{b}}

	ctx, err := NewContext(a, Config{})
	require.NoError(t, err)

	got := ctx.IterChildrenOrSelf(true).All()
	require.Len(t, got, 2)
	text, ok := got[0].(*node.Text)
	require.True(t, ok)
	assert.Equal(t, "x", text.Data)
	assert.Same(t, b, got[1])

	// b's tail surfaces via a descendant walk of a, not as a's child.
	desc := ctx.IterDescendants(a, AxisDescendant).All()
	var sawTail bool
	for _, n := range desc {
		if txt, ok := n.(*node.Text); ok && txt.IsTail && txt.Data == "y" {
			sawTail = true
		}
	}
	assert.True(t, sawTail)
}

// S3: <a><b1><c1/></b1><b2/></a>. From item=c1, ancestor-or-self
// yields [a, b1, c1] with position starting at 3 down to 1.
func TestIterAncestors_S3(t *testing.T) {
	a, b1, c1, _ := tree()
	ctx, err := NewContext(a, Config{Item: c1})
	require.NoError(t, err)

	seq := ctx.IterAncestors(AxisAncestorOrSelf)

	n, ok := seq.Next()
	require.True(t, ok)
	assert.Same(t, a, n)
	assert.Equal(t, 3, ctx.Position)

	n, ok = seq.Next()
	require.True(t, ok)
	assert.Same(t, b1, n)
	assert.Equal(t, 2, ctx.Position)

	n, ok = seq.Next()
	require.True(t, ok)
	assert.Same(t, c1, n)
	assert.Equal(t, 1, ctx.Position)

	_, ok = seq.Next()
	assert.False(t, ok)
}

// S4: same tree. From item=b1, following yields [b2] (c1 excluded as
// a descendant of b1). From item=b2, preceding yields [b1, c1].
func TestIterFollowingsAndPreceding_S4(t *testing.T) {
	a, b1, c1, b2 := tree()

	ctx, err := NewContext(a, Config{Item: b1})
	require.NoError(t, err)
	following := ctx.IterFollowings().All()
	assert.Equal(t, []node.Node{b2}, following)

	ctx2, err := NewContext(a, Config{Item: b2})
	require.NoError(t, err)
	preceding := ctx2.IterPreceding().All()
	assert.Equal(t, []node.Node{b1, c1}, preceding)
}

// S5: <a x="1" y="2"/>. iter_attributes yields two attributes, size 2;
// re-entering on an attribute item under the attribute axis yields it
// unchanged.
func TestIterAttributes_S5(t *testing.T) {
	a := &node.Element{Tag: "a"}
	x := &node.Attribute{Name: "x", Value: "1", Owner: a}
	y := &node.Attribute{Name: "y", Value: "2", Owner: a}
	a.Attrs = []*node.Attribute{x, y}

	ctx, err := NewContext(a, Config{})
	require.NoError(t, err)

	seq := ctx.IterAttributes()
	first, ok := seq.Next()
	require.True(t, ok)
	assert.Equal(t, 2, ctx.Size)
	got := append([]node.Node{first}, seq.All()...)
	assert.Equal(t, []node.Node{x, y}, got)

	ctx.Item = x
	ctx.Axis = AxisAttribute
	again := ctx.IterAttributes().All()
	assert.Equal(t, []node.Node{x}, again)
}

func TestIterSiblings(t *testing.T) {
	a, b1, c1, b2 := tree()
	_ = c1

	ctx, err := NewContext(a, Config{Item: b1})
	require.NoError(t, err)
	following := ctx.IterSiblings(AxisFollowingSibling).All()
	assert.Equal(t, []node.Node{b2}, following)

	ctx2, err := NewContext(a, Config{Item: b2})
	require.NoError(t, err)
	seq := ctx2.IterSiblings(AxisPrecedingSibling)
	n, ok := seq.Next()
	require.True(t, ok)
	assert.Same(t, b1, n)
	assert.Equal(t, 1, ctx2.Position)
	_, ok = seq.Next()
	assert.False(t, ok)
}

func TestIterParent(t *testing.T) {
	a, b1, c1, _ := tree()
	ctx, err := NewContext(a, Config{Item: c1})
	require.NoError(t, err)
	got := ctx.IterParent().All()
	assert.Equal(t, []node.Node{b1}, got)

	ctxRoot, err := NewContext(a, Config{})
	require.NoError(t, err)
	assert.Empty(t, ctxRoot.IterParent().All())
}

func TestIterSelfPassthrough(t *testing.T) {
	a, _, _, _ := tree()
	ctx, err := NewContext(a, Config{})
	require.NoError(t, err)
	got := ctx.IterSelf().All()
	assert.Equal(t, []node.Node{a}, got)
}

func TestIterDescendantOrSelfIncludesSelf(t *testing.T) {
	a, b1, c1, b2 := tree()
	ctx, err := NewContext(a, Config{})
	require.NoError(t, err)
	got := ctx.IterDescendants(a, AxisDescendantOrSelf).All()
	assert.Equal(t, []node.Node{a, b1, c1, b2}, got)
}

func TestIterDescendantExcludesSelf(t *testing.T) {
	a, b1, c1, b2 := tree()
	ctx, err := NewContext(a, Config{})
	require.NoError(t, err)
	got := ctx.IterDescendants(a, AxisDescendant).All()
	assert.Equal(t, []node.Node{b1, c1, b2}, got)
}

func TestAbandonedSequenceLeavesFocusMutated(t *testing.T) {
	a, b1, _, _ := tree()
	ctx, err := NewContext(a, Config{})
	require.NoError(t, err)

	seq := ctx.IterChildrenOrSelf(true)
	n, ok := seq.Next()
	require.True(t, ok)
	assert.Same(t, b1, n)
	assert.Equal(t, AxisChild, ctx.Axis, "focus left mutated until Close or exhaustion")

	seq.Close()
	assert.Equal(t, AxisNone, ctx.Axis)
}
