package stage

import (
	"fmt"

	"github.com/google/uuid"
)

// IDSource produces candidate identifiers. It may return an id that is
// already in use; IDs filters those out.
type IDSource func() string

// UUIDSource returns random version 4 UUID strings.
func UUIDSource() string { return uuid.NewString() }

// Counter returns a deterministic source yielding prefix-1, prefix-2, ...
func Counter(prefix string) IDSource {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("%s-%d", prefix, n)
	}
}

// IDs hands out identifiers that never collide with any id it has seen.
type IDs struct {
	src  IDSource
	used map[string]struct{}
}

// NewIDs creates an allocator backed by src (UUIDSource when nil) that
// already knows about the ids in existing.
func NewIDs(src IDSource, existing ...Item) *IDs {
	if src == nil {
		src = UUIDSource
	}
	g := &IDs{src: src, used: make(map[string]struct{})}
	g.Observe(existing)
	return g
}

// Observe marks the ids of items as taken. Ids are never released, so an id
// that came back through undo can not be handed out twice.
func (g *IDs) Observe(items []Item) {
	for _, it := range items {
		g.used[it.ID] = struct{}{}
	}
}

// Next returns a fresh id.
func (g *IDs) Next() string {
	for {
		id := g.src()
		if id == "" {
			continue
		}
		if _, ok := g.used[id]; ok {
			continue
		}
		g.used[id] = struct{}{}
		return id
	}
}
