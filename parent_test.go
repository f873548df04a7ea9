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

func TestGetParentRootIsNil(t *testing.T) {
	a, _, _, _ := tree()
	ctx, err := NewContext(a, Config{})
	require.NoError(t, err)
	assert.Nil(t, ctx.GetParent(a))
}

func TestGetParentBuildsMapLazily(t *testing.T) {
	a, b1, c1, _ := tree()
	ctx, err := NewContext(a, Config{})
	require.NoError(t, err)
	assert.Nil(t, ctx.ParentMap())

	assert.Same(t, b1, ctx.GetParent(c1))
	assert.NotNil(t, ctx.ParentMap())
	assert.Same(t, a, ctx.GetParent(b1))
}

func TestGetParentAttributeUsesOwnerDirectly(t *testing.T) {
	a := &node.Element{Tag: "a"}
	attr := &node.Attribute{Name: "id", Value: "1", Owner: a}
	a.Attrs = []*node.Attribute{attr}

	ctx, err := NewContext(a, Config{})
	require.NoError(t, err)
	assert.Same(t, a, ctx.GetParent(attr))
}

func TestGetParentUnwrapsTypedElement(t *testing.T) {
	a, b1, _, _ := tree()
	ctx, err := NewContext(a, Config{})
	require.NoError(t, err)

	typed := &node.TypedElement{Elem: b1, Value: 42}
	assert.Same(t, a, ctx.GetParent(typed))
}

func TestGetParentOutOfTreeIsNil(t *testing.T) {
	a, _, _, _ := tree()
	stranger := &node.Element{Tag: "stranger"}
	ctx, err := NewContext(a, Config{})
	require.NoError(t, err)
	assert.Nil(t, ctx.GetParent(stranger))
}

func TestGetParentRecoversFromStaleMap(t *testing.T) {
	a, b1, c1, _ := tree()
	ctx, err := NewContext(a, Config{})
	require.NoError(t, err)

	// force a build against the tree as it stood before a new child is
	// attached, then confirm the miss-and-rebuild path finds it anyway.
	_ = ctx.GetParent(c1)

	d1 := &node.Element{Tag: "d1"}
	b1.Children = append(b1.Children, d1)

	assert.Same(t, b1, ctx.GetParent(d1))
}

func TestGetPathElement(t *testing.T) {
	a, b1, c1, _ := tree()
	ctx, err := NewContext(a, Config{Item: c1})
	require.NoError(t, err)
	assert.Equal(t, "/a/b1/c1", ctx.GetPath(c1))
}

func TestGetPathAttribute(t *testing.T) {
	a := &node.Element{Tag: "a"}
	attr := &node.Attribute{Name: "id", Value: "1", Owner: a}
	a.Attrs = []*node.Attribute{attr}

	ctx, err := NewContext(a, Config{})
	require.NoError(t, err)
	assert.Equal(t, "/a/@id", ctx.GetPath(attr))
}

func TestParentCacheDisabledWithNegativeSize(t *testing.T) {
	a, b1, c1, _ := tree()
	ctx, err := NewContext(a, Config{ParentCacheSize: -1})
	require.NoError(t, err)
	assert.Same(t, b1, ctx.GetParent(c1))
}
