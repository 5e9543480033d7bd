package game

import (
	"fmt"

	"golang.org/x/exp/rand"
)

// HexCoord is an axial hex coordinate (q, r).
type HexCoord struct {
	Q int `json:"q"`
	R int `json:"r"`
}

// S returns the implicit third cube coordinate.
func (h HexCoord) S() int {
	return -h.Q - h.R
}

func (h HexCoord) Add(o HexCoord) HexCoord {
	return HexCoord{h.Q + o.Q, h.R + o.R}
}

func (h HexCoord) String() string {
	return fmt.Sprintf("(%d,%d)", h.Q, h.R)
}

// Directions defines the 6 neighbor offsets in axial coordinates.
var Directions = [6]HexCoord{
	{1, 0}, {1, -1}, {0, -1},
	{-1, 0}, {-1, 1}, {0, 1},
}

// Distance returns the hex (ring) distance between a and b.
func Distance(a, b HexCoord) int {
	dq, dr := a.Q-b.Q, a.R-b.R
	return max(abs(dq), abs(dr), abs(dq+dr))
}

// CellCount returns the number of cells on a board of the given radius.
func CellCount(radius int) int {
	return 1 + 3*radius*(radius+1)
}

// Grid is the static shape of a hexagonal board: every coordinate within
// radius, a dense index for each one, neighbor tables and zobrist keys.
// A Grid never changes after construction and is shared by all clones of a board.
type Grid struct {
	radius    int
	coords    []HexCoord
	index     map[HexCoord]int
	neighbors [][]int
	ring      []int // distance from the origin, by index

	cellKeys [][2]uint64 // [index][player]
	sideKeys [2]uint64
}

// NewGrid enumerates all cells with |q| <= radius, |r| <= radius, |q+r| <= radius.
func NewGrid(radius int) *Grid {
	if radius < 0 {
		panic("negative board radius")
	}
	n := CellCount(radius)
	g := &Grid{
		radius:    radius,
		coords:    make([]HexCoord, 0, n),
		index:     make(map[HexCoord]int, n),
		neighbors: make([][]int, n),
		ring:      make([]int, n),
		cellKeys:  make([][2]uint64, n),
	}
	for q := -radius; q <= radius; q++ {
		r1 := max(-radius, -q-radius)
		r2 := min(radius, -q+radius)
		for r := r1; r <= r2; r++ {
			c := HexCoord{q, r}
			g.index[c] = len(g.coords)
			g.coords = append(g.coords, c)
		}
	}
	origin := HexCoord{}
	for i, c := range g.coords {
		for _, d := range Directions {
			if j, ok := g.index[c.Add(d)]; ok {
				g.neighbors[i] = append(g.neighbors[i], j)
			}
		}
		g.ring[i] = Distance(c, origin)
	}

	// Fixed seed per radius: hashes are reproducible across processes.
	rng := rand.New(rand.NewSource(0x9E3779B97F4A7C15 ^ uint64(radius)))
	for i := range g.cellKeys {
		g.cellKeys[i] = [2]uint64{nonZero(rng), nonZero(rng)}
	}
	g.sideKeys = [2]uint64{nonZero(rng), nonZero(rng)}
	return g
}

func nonZero(rng *rand.Rand) uint64 {
	v := rng.Uint64()
	for v == 0 {
		v = rng.Uint64()
	}
	return v
}

func (g *Grid) Radius() int {
	return g.radius
}

// Len returns the number of cells.
func (g *Grid) Len() int {
	return len(g.coords)
}

// Coords returns every coordinate in index order. The slice must not be modified.
func (g *Grid) Coords() []HexCoord {
	return g.coords
}

func (g *Grid) Coord(i int) HexCoord {
	return g.coords[i]
}

// Index maps a coordinate to its dense index.
func (g *Grid) Index(c HexCoord) (int, bool) {
	i, ok := g.index[c]
	return i, ok
}

func (g *Grid) Contains(c HexCoord) bool {
	_, ok := g.index[c]
	return ok
}

// Neighbors returns the in-bounds neighbor indices of cell i.
func (g *Grid) Neighbors(i int) []int {
	return g.neighbors[i]
}

// Ring returns the hex distance of cell i from the origin.
func (g *Grid) Ring(i int) int {
	return g.ring[i]
}

func (g *Grid) cellKey(i int, p Player) uint64 {
	if p == None {
		return 0
	}
	return g.cellKeys[i][p.index()]
}

func (g *Grid) sideKey(p Player) uint64 {
	if p == None {
		return 0
	}
	return g.sideKeys[p.index()]
}

// scoreKey hashes a score counter without a table, so any score fits.
func scoreKey(p Player, score int) uint64 {
	if score == 0 {
		return 0
	}
	return mix64(uint64(p)<<32 | uint64(score))
}

// mix64 is the splitmix64 finalizer.
func mix64(x uint64) uint64 {
	x += 0x9E3779B97F4A7C15
	x = (x ^ (x >> 30)) * 0xBF58476D1CE4E5B9
	x = (x ^ (x >> 27)) * 0x94D049BB133111EB
	return x ^ (x >> 31)
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
