// Copyright 2017 Santhosh Kumar Tekuri. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package elementpath

// SchemaContext wraps a Context to flag it as a static-analysis
// context: same layout and navigation semantics as the wrapped
// Context, but its presence tells an evaluator to perform schema-based
// type inference over a schema tree rather than instance evaluation.
// The navigation core treats the two identically; every Context method
// is reached through the embedded field unchanged.
type SchemaContext struct {
	*Context
}

// NewSchemaContext wraps an existing Context as a schema context.
func NewSchemaContext(c *Context) *SchemaContext {
	return &SchemaContext{Context: c}
}

// IsSchemaContext reports whether c is actually a *SchemaContext in
// disguise, the one place the navigation core is allowed to care about
// the distinction (a selector choosing between instance and schema
// evaluation strategies upstream of this package).
func IsSchemaContext(c interface{}) bool {
	_, ok := c.(*SchemaContext)
	return ok
}
