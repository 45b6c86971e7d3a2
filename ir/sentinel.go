package ir

import "fmt"

// Sentinel identifies a write-time placeholder. Sentinels are resolved by
// the store at commit time and never appear in values read back from it.
type Sentinel int

const (
	NoSentinel Sentinel = iota

	// ServerTimestampSentinel marks a position to be filled with the
	// store's commit timestamp.
	ServerTimestampSentinel

	// DeleteSentinel marks an object field for removal on write.
	DeleteSentinel
)

func (s Sentinel) String() string {
	switch s {
	case NoSentinel:
		return "none"
	case ServerTimestampSentinel:
		return "server-timestamp"
	case DeleteSentinel:
		return "delete"
	}
	return fmt.Sprintf("<unknown sentinel %d>", int(s))
}

// ServerTimestamp returns a sentinel node standing for the store's commit
// timestamp.
func ServerTimestamp() *Node {
	return &Node{Type: SentinelType, Sentinel: ServerTimestampSentinel}
}

// Delete returns a sentinel node marking its object field for removal.
func Delete() *Node {
	return &Node{Type: SentinelType, Sentinel: DeleteSentinel}
}

// HasSentinel reports whether any sentinel node remains in the tree rooted
// at y.
func (y *Node) HasSentinel() bool {
	found := false
	y.Visit(func(n *Node, isPost bool) (bool, error) {
		if n.Type == SentinelType {
			found = true
		}
		return !found, nil
	})
	return found
}
