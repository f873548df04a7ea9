// Copyright 2017 Santhosh Kumar Tekuri. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package elementpath

import (
	"fmt"

	"github.com/jonbwhite/elementpath/node"
)

// InvalidRootError is the error type returned by NewContext. It tells
// that the given root is neither a non-callable Element nor a Document,
// the only two node kinds a Context may be rooted at.
type InvalidRootError struct {
	Root node.Node
}

func (e InvalidRootError) Error() string {
	return fmt.Sprintf("invalid root, an Element or an ElementTree instance required, got %T", e.Root)
}

// MissingContextError is returned by callers that need a Context to
// evaluate a step (e.g. a variable reference or a function argument)
// but were not supplied one. The navigation core itself never returns
// this error: it is surfaced by downstream selectors/functions that
// are out of scope for this package.
type MissingContextError struct {
	Op string
}

func (e MissingContextError) Error() string {
	return fmt.Sprintf("%s: dynamic context required", e.Op)
}
