package searcher

import "creatures/cache"

const DefaultTTCapacity = 1 << 18

type ttFlag uint8

const (
	ttExact ttFlag = iota
	ttLower        // score is a lower bound (fail high)
	ttUpper        // score is an upper bound (fail low)
)

// terminalDepth marks entries for decided positions, valid at any depth.
const terminalDepth = 127

type ttEntry struct {
	score int32
	depth int8
	flag  ttFlag
	move  int16 // best cell index, -1 if none
}

// table is the transposition table. Scores are stored from the searching
// player's perspective, so keys must include that player and the tier.
type table struct {
	entries *cache.Bounded[uint64, ttEntry]
}

func newTable(capacity int) *table {
	return &table{entries: cache.NewBounded[uint64, ttEntry](capacity)}
}

func (t *table) probe(key uint64) (ttEntry, bool) {
	return t.entries.Get(key)
}

// store keeps the deeper of the old and new entries for a key.
func (t *table) store(key uint64, e ttEntry) {
	if old, ok := t.entries.Peek(key); ok && old.depth > e.depth {
		return
	}
	t.entries.Put(key, e)
}

func (t *table) clear() {
	t.entries.Clear()
}

func (t *table) len() int {
	return t.entries.Len()
}
