// Package snapshot maintains an immutable in-memory view of all stored
// directives. Readers load the current snapshot without locking; writers
// build a fresh snapshot and swap it atomically after the store changes.
package snapshot

import (
	"encoding/json"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/cespare/xxhash/v2"

	"github.com/airworthy/adcheck/internal/rules"
)

// Snapshot is a point-in-time view of the directive set. The ETag is a
// content hash: identical directive sets produce identical tags, so
// clients can revalidate with If-None-Match.
type Snapshot struct {
	ETag       string            `json:"etag"`
	Directives []rules.Directive `json:"directives"`
	UpdatedAt  time.Time         `json:"updatedAt"`
}

var current atomic.Pointer[Snapshot]

// Load returns the current snapshot. Before the first Update it returns
// an empty snapshot rather than nil.
func Load() *Snapshot {
	if s := current.Load(); s != nil {
		return s
	}
	return &Snapshot{ETag: emptyETag, Directives: []rules.Directive{}, UpdatedAt: time.Now().UTC()}
}

// Update swaps in a new snapshot.
func Update(s *Snapshot) {
	current.Store(s)
}

var emptyETag = etagFor([]rules.Directive{})

// Build constructs a snapshot from the given directives. The slice is
// expected to be ordered (the store lists by ID); ordering is part of the
// hashed content.
func Build(directives []rules.Directive) *Snapshot {
	if directives == nil {
		directives = []rules.Directive{}
	}
	return &Snapshot{
		ETag:       etagFor(directives),
		Directives: directives,
		UpdatedAt:  time.Now().UTC(),
	}
}

func etagFor(directives []rules.Directive) string {
	blob, _ := json.Marshal(directives)
	return fmt.Sprintf(`W/"%016x"`, xxhash.Sum64(blob))
}
