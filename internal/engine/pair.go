// Package engine holds the relationship rules of the product: how swipes
// become matches, how message requests graduate into chats, and how the
// inbox views are projected from a snapshot of stored state. Nothing in
// this package performs I/O; callers load state and persist effects.
package engine

// SwipeKind distinguishes the two directed edge kinds a user can create.
type SwipeKind string

const (
	KindLike    SwipeKind = "like"
	KindDislike SwipeKind = "dislike"
)

// Valid reports whether k is a known swipe kind.
func (k SwipeKind) Valid() bool {
	return k == KindLike || k == KindDislike
}

// CanonicalPair returns the unordered pair (a, b) with the smaller id
// first. Matches and chats are keyed this way so that whichever side
// triggers materialization produces the same key.
func CanonicalPair(a, b uint64) (uint64, uint64) {
	if a < b {
		return a, b
	}
	return b, a
}

// Counterpart returns the other member of the pair (a, b) from viewer's
// perspective, and whether viewer is part of the pair at all.
func Counterpart(a, b, viewer uint64) (uint64, bool) {
	if a == viewer {
		return b, true
	}
	if b == viewer {
		return a, true
	}
	return 0, false
}
