package board

import "math/rand"

// Queue deals future pieces with the 7-bag discipline: each of the seven
// kinds is drawn once before the bag refills. The randomness source is
// injected; the queue never touches a global generator.
type Queue struct {
	rng      *rand.Rand
	bag      []PieceKind
	pieces   []PieceKind
	previews int
}

// NewQueue creates a queue exposing the given number of previews.
func NewQueue(previews int, rng *rand.Rand) *Queue {
	q := &Queue{rng: rng, previews: previews}
	for i := 0; i < previews; i++ {
		q.deal()
	}
	return q
}

func (q *Queue) deal() {
	if len(q.bag) == 0 {
		q.bag = append(q.bag, Kinds[:]...)
	}
	i := q.rng.Intn(len(q.bag))
	q.pieces = append(q.pieces, q.bag[i])
	q.bag = append(q.bag[:i], q.bag[i+1:]...)
}

// Next takes the front piece and deals a replacement.
func (q *Queue) Next() PieceKind {
	head := q.pieces[0]
	q.pieces = q.pieces[1:]
	q.deal()
	return head
}

// Get returns the piece at preview index i.
func (q *Queue) Get(i int) PieceKind {
	return q.pieces[i]
}

// MaxPreviews returns the configured preview count.
func (q *Queue) MaxPreviews() int {
	return q.previews
}

// Previews returns a copy of the visible previews.
func (q *Queue) Previews() []PieceKind {
	out := make([]PieceKind, len(q.pieces))
	copy(out, q.pieces)
	return out
}

// GarbageGen chooses hole columns for incoming garbage rows. Consecutive
// rows keep the previous hole column with probability sameProb; a change
// picks uniformly from the other nine columns. The probability is policy,
// not a rule of the board, so it is configurable.
type GarbageGen struct {
	rng      *rand.Rand
	sameProb float64
	last     int
	primed   bool
}

// NewGarbageGen creates a generator with the given same-column
// probability (guideline battles commonly use 0.7).
func NewGarbageGen(sameProb float64, rng *rand.Rand) *GarbageGen {
	return &GarbageGen{rng: rng, sameProb: sameProb}
}

// Holes returns hole columns for n garbage rows.
func (g *GarbageGen) Holes(n int) []int {
	out := make([]int, n)
	for i := range out {
		switch {
		case !g.primed:
			g.last = g.rng.Intn(10)
			g.primed = true
		case g.rng.Float64() >= g.sameProb:
			h := g.rng.Intn(9)
			if h >= g.last {
				h++
			}
			g.last = h
		}
		out[i] = g.last
	}
	return out
}
