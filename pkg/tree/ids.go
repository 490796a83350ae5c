package tree

import (
	"math/rand/v2"
	"strconv"
)

// IDGenerator allocates fresh node ids. taken reports ids already in use.
type IDGenerator interface {
	Next(taken func(string) bool) string
}

// MaxPrefix bounds the random numeric prefix of generated ids.
const MaxPrefix = 10000

// RandomIDs generates node_<prefix>_<suffix> ids. Each call draws a random
// prefix and takes the smallest suffix not yet taken under it; on collision
// only the suffix advances.
type RandomIDs struct {
	rng *rand.Rand
}

// NewRandomIDs returns a generator seeded from the runtime source.
func NewRandomIDs() *RandomIDs {
	return NewSeededIDs(rand.Uint64())
}

// NewSeededIDs returns a reproducible generator.
func NewSeededIDs(seed uint64) *RandomIDs {
	return &RandomIDs{rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

func (g *RandomIDs) Next(taken func(string) bool) string {
	return firstFree(g.rng.IntN(MaxPrefix), taken)
}

// SequenceIDs always uses the same prefix, so ids come out as
// node_<prefix>_0, node_<prefix>_1 and so on.
type SequenceIDs struct {
	Prefix int
}

func (g SequenceIDs) Next(taken func(string) bool) string {
	return firstFree(g.Prefix, taken)
}

func firstFree(prefix int, taken func(string) bool) string {
	base := "node_" + strconv.Itoa(prefix) + "_"
	for suffix := 0; ; suffix++ {
		id := base + strconv.Itoa(suffix)
		if taken == nil || !taken(id) {
			return id
		}
	}
}
