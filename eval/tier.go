package eval

import (
	"fmt"

	"github.com/pkg/errors"
)

// Tier is an AI strength level, weakest first.
type Tier int

const (
	Beginner Tier = iota + 1
	Easy
	Medium
	Hard
	Expert
)

// Tiers lists every tier, weakest first.
var Tiers = []Tier{Beginner, Easy, Medium, Hard, Expert}

func (t Tier) String() string {
	switch t {
	case Beginner:
		return "beginner"
	case Easy:
		return "easy"
	case Medium:
		return "medium"
	case Hard:
		return "hard"
	case Expert:
		return "expert"
	}
	return fmt.Sprintf("tier(%d)", int(t))
}

func (t Tier) Valid() bool {
	return t >= Beginner && t <= Expert
}

// Deep reports whether the tier evaluates the deep positional and tactical terms.
func (t Tier) Deep() bool {
	return t >= Medium
}

// ParseTier accepts a tier name or its number.
func ParseTier(s string) (Tier, error) {
	for _, t := range Tiers {
		if s == t.String() || s == fmt.Sprint(int(t)) {
			return t, nil
		}
	}
	return 0, errors.Errorf("unknown tier %q", s)
}

// Weights holds every evaluation coefficient. A zero weight disables its term.
type Weights struct {
	Capture     int    // per point of score difference
	Composition [5]int // bonus per creature, indexed by size
	Center      int    // per piece, per ring closer to the origin
	Jitter      int    // uniform noise amplitude

	Territory    int
	Connectivity int // per squared creature size
	Opportunity  int // per capturing move available
	SwarmThreat  int // per own size 4 creature exposed to a swarm
	Defense      int // opponent can win next move
	Fork         int
	Chain        int
	Breakthrough int

	// LookaheadDiscount folds the side to move's best immediate capture into
	// the static score. 0 disables the lookahead.
	LookaheadDiscount float64
}

// DefaultWeights returns the weights for a tier. Unknown tiers get Beginner weights.
func DefaultWeights(t Tier) Weights {
	w := Weights{Capture: 1000, Jitter: 60}
	if t < Easy || !t.Valid() {
		return w
	}

	w.Composition = [5]int{0, 10, 40, 40, 15}
	w.Center = 6
	w.Jitter = 25
	if t < Medium {
		return w
	}

	w.Jitter = 8
	w.Territory = 4
	w.Connectivity = 3
	w.Opportunity = 60
	w.SwarmThreat = 150
	w.Defense = 5000
	w.Fork = 120
	w.Chain = 25
	w.Breakthrough = 40
	if t < Hard {
		return w
	}

	w.Jitter = 2
	w.Opportunity = 80
	w.Fork = 180
	w.Breakthrough = 60
	if t < Expert {
		return w
	}

	w.Jitter = 0
	w.LookaheadDiscount = 0.5
	return w
}
