// Copyright 2017 Santhosh Kumar Tekuri. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package elementpath implements the dynamic evaluation core of an XPath
engine: the context object that tracks the current focus during
expression evaluation, and the axis iterators that walk an XML tree
according to XPath's axes (every axis except the namespace axis).

This package does not parse XPath expressions or implement the
function library; it is the runtime a parser's compiled selectors run
against. A selector is any function of the shape

	func(*Context) []node.Node

and the Context methods in this package (IterChildrenOrSelf,
IterDescendants, IterResults, and so on) are what such selectors call
to walk the tree while keeping position(), last() and axis identity
consistent.
*/
package elementpath
