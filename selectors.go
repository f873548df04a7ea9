// Copyright 2017 Santhosh Kumar Tekuri. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package elementpath

import (
	"github.com/jonbwhite/elementpath/node"
)

// Selector is the shape of a compiled XPath step or expression: a
// function of the current context that returns the nodes (or, for
// value-producing expressions, items) it selects. The axis methods on
// Context are the primitives selectors are built from; Selector itself
// is owned by a downstream compiler package, not by this one.
type Selector func(c *Context) []node.Node

// IterResults walks the context's whole tree in document order,
// yielding each node present in results as that walk reaches it, with
// size set to len(results) and position counting up from 1. This is
// how a selector that has already gathered an unordered/mixed set of
// results reports them back in document order.
//
// Matching a tree node against results honors typed-wrapper promotion
// (§4.1): a bare element or attribute present in the tree matches a
// TypedElement/TypedAttribute in results wrapping that same underlying
// node by identity, and the wrapper (not the bare node) is what gets
// yielded.
func (c *Context) IterResults(results []node.Node) *NodeSeq {
	byUnderlying := make(map[node.Node]node.Node, len(results))
	for _, r := range results {
		byUnderlying[node.Unwrap(r)] = r
	}

	seq := c.runAxis(c.Axis, func() []node.Node {
		var out []node.Node
		for _, n := range c.Iter() {
			if hit, ok := byUnderlying[node.Unwrap(n)]; ok {
				out = append(out, hit)
			}
		}
		return out
	})
	advance := seq.advance
	seq.advance = func() (node.Node, bool) {
		n, ok := advance()
		c.Size = len(results)
		return n, ok
	}
	return seq
}

// IterSelector invokes selector against a fresh clone of c (so the
// selector's own axis traversal doesn't disturb c's focus mid-call),
// then replays the materialized output through c's own focus: size is
// set to the result count and position counts up from 1 as each node
// is yielded. This gives a selector a clean focus to evaluate under
// while still pacing the caller's position()/last().
func (c *Context) IterSelector(selector Selector) *NodeSeq {
	return c.runAxis(c.Axis, func() []node.Node {
		clone := c.Copy(true)
		return selector(clone)
	})
}

// productState tracks one coordinate of a Cartesian product: the
// selector that produces its values, the values materialized for the
// current outer-loop pass, and the index of the value currently bound.
type productState struct {
	selector Selector
	varname  string
	values   []node.Node
	idx      int
}

// ProductSeq is the tuple-yielding counterpart of NodeSeq, returned by
// IterProduct: each advance produces one combination of the Cartesian
// product rather than a single node.
type ProductSeq struct {
	advance func() ([]node.Node, bool)
	restore func()
	done    bool
}

// Next advances the product sequence, returning the next tuple (one
// value per selector, in selector order) and true, or (nil, false)
// once the outermost coordinate is exhausted.
func (s *ProductSeq) Next() ([]node.Node, bool) {
	if s.done {
		return nil, false
	}
	tuple, ok := s.advance()
	if !ok {
		s.Close()
		return nil, false
	}
	return tuple, true
}

// Close restores the owning context's pre-iteration focus, if not
// already done.
func (s *ProductSeq) Close() {
	if !s.done {
		s.done = true
		if s.restore != nil {
			s.restore()
		}
	}
}

// All drains the sequence to a slice of tuples.
func (s *ProductSeq) All() [][]node.Node {
	var out [][]node.Node
	for {
		tuple, ok := s.Next()
		if !ok {
			return out
		}
		out = append(out, tuple)
	}
}

// IterProduct drives the Cartesian product of selectors, re-invoking
// selector k (for k > 0) each time coordinate k-1 advances, and
// binding VariableValues[varnames[k]] to the current coordinate's
// value as it is produced. varnames shorter than selectors leaves the
// extra coordinates unbound in the variable map; varnames may be nil.
// Iteration ends when the outermost (index 0) coordinate is exhausted,
// yielding each combination as a []node.Node tuple, one value per
// selector in selector order.
func (c *Context) IterProduct(selectors []Selector, varnames []string) *ProductSeq {
	if len(selectors) == 0 {
		return &ProductSeq{advance: func() ([]node.Node, bool) { return nil, false }}
	}

	states := make([]*productState, len(selectors))
	for i, sel := range selectors {
		var name string
		if i < len(varnames) {
			name = varnames[i]
		}
		states[i] = &productState{selector: sel, varname: name}
	}

	var status focusSnapshot
	started := false
	exhausted := false

	bind := func(i int, n node.Node) {
		if states[i].varname != "" {
			c.VariableValues[states[i].varname] = n
		}
	}

	// refill reloads coordinate i's values from a fresh clone and resets
	// its index to 0, binding the new current value immediately so that
	// a refill of coordinate j (triggered from advanceTuple below) sees
	// every coordinate to its left already rebound to its post-advance
	// value. It returns false if the selector produced nothing.
	refill := func(i int) bool {
		clone := c.Copy(false)
		states[i].values = states[i].selector(clone)
		states[i].idx = 0
		if len(states[i].values) == 0 {
			return false
		}
		bind(i, states[i].values[0])
		return true
	}

	currentTuple := func() []node.Node {
		tuple := make([]node.Node, len(states))
		for k, s := range states {
			tuple[k] = s.values[s.idx]
		}
		return tuple
	}

	// advanceTuple steps the rightmost coordinate; on overflow it carries
	// into the coordinate to its left, refilling every coordinate to the
	// right of the one that advanced. The advanced coordinate's variable
	// is rebound before those refills run, so a selector for coordinate
	// j>i that reads varnames[i] to compute a dependent range (e.g. "for
	// $i in ..., $j in f($i)") sees the value $i was just advanced to,
	// not its pre-advance value; refill itself rebinds each coordinate it
	// resets, so the same holds transitively for j>i+1.
	advanceTuple := func() ([]node.Node, bool) {
		i := len(states) - 1
	carry:
		for {
			if i < 0 {
				return nil, false
			}
			states[i].idx++
			if states[i].idx < len(states[i].values) {
				break
			}
			if i == 0 {
				return nil, false
			}
			i--
		}
		bind(i, states[i].values[states[i].idx])
		for j := i + 1; j < len(states); j++ {
			if !refill(j) {
				// coordinate j is empty for this value of i: step i again
				i = j - 1
				goto carry
			}
		}
		return currentTuple(), true
	}

	return &ProductSeq{
		advance: func() ([]node.Node, bool) {
			if exhausted {
				return nil, false
			}
			if !started {
				started = true
				status = c.snapshot()
				for i := range states {
					if !refill(i) {
						tuple, ok := advanceTuple()
						exhausted = !ok
						return tuple, ok
					}
				}
				return currentTuple(), true
			}
			tuple, ok := advanceTuple()
			if !ok {
				exhausted = true
				return nil, false
			}
			return tuple, true
		},
		restore: func() {
			if started {
				status.restoreTo(c)
			}
		},
	}
}
