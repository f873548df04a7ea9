// Copyright 2017 Santhosh Kumar Tekuri. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package elementpath

import (
	log "github.com/sirupsen/logrus"
)

// log is package-scoped on purpose: the navigation core is a hot path
// threaded through every step of an evaluation, so logging here is
// debug-only and off by default (logrus' default level is Info).
// Callers embedding this package can raise the level, or call
// logrus.SetOutput(io.Discard) to silence it entirely.

func logParentMapRebuilt(size int) {
	log.WithField("entries", size).Debug("parent map rebuilt")
}

func logParentLookupMiss(tag string) {
	log.WithField("tag", tag).Debug("parent lookup missed twice, returning nil")
}
