package metrics

import (
	"sync/atomic"
	"time"
)

type SearchMetric struct {
	Tier     int
	Budget   time.Duration
	Duration time.Duration
	Nodes    int
	TTProbes int
	TTHits   int
	Cutoffs  int
	Depth    int // deepest completed iteration, 0 for single-ply tiers
	Score    int
	Aborted  bool // an iteration ran out of time
}

type MoveMetric struct {
	Step     int
	Player   string
	Move     string
	Captured int
	SearchMetric
}

type GameMetric struct {
	ID         string
	Black      string // agent names
	White      string
	Winner     string
	Status     string
	BlackScore int
	WhiteScore int
	StartTime  time.Time
	EndTime    time.Time
	Duration   time.Duration
	TotalMoves int
}

type Collector interface {
	Start(tier int, budget time.Duration)
	AddNode()
	AddProbe(hit bool)
	AddCutoff()
	CompleteDepth(depth, score int)
	Abort()
	Complete() SearchMetric
}

type collector struct {
	tier      int
	budget    time.Duration
	startTime time.Time
	nodes     atomic.Int64
	probes    atomic.Int64
	hits      atomic.Int64
	cutoffs   atomic.Int64
	depth     atomic.Int32
	score     atomic.Int64
	aborted   atomic.Bool
}

func NewCollector() Collector {
	return &collector{}
}

func (m *collector) Start(tier int, budget time.Duration) {
	m.startTime = time.Now()
	m.tier = tier
	m.budget = budget
	m.nodes.Store(0)
	m.probes.Store(0)
	m.hits.Store(0)
	m.cutoffs.Store(0)
	m.depth.Store(0)
	m.score.Store(0)
	m.aborted.Store(false)
}

func (m *collector) AddNode() {
	m.nodes.Add(1)
}

func (m *collector) AddProbe(hit bool) {
	m.probes.Add(1)
	if hit {
		m.hits.Add(1)
	}
}

func (m *collector) AddCutoff() {
	m.cutoffs.Add(1)
}

func (m *collector) CompleteDepth(depth, score int) {
	m.depth.Store(int32(depth))
	m.score.Store(int64(score))
}

func (m *collector) Abort() {
	m.aborted.Store(true)
}

func (m *collector) Complete() SearchMetric {
	return SearchMetric{
		Tier:     m.tier,
		Budget:   m.budget,
		Duration: time.Since(m.startTime),
		Nodes:    int(m.nodes.Load()),
		TTProbes: int(m.probes.Load()),
		TTHits:   int(m.hits.Load()),
		Cutoffs:  int(m.cutoffs.Load()),
		Depth:    int(m.depth.Load()),
		Score:    int(m.score.Load()),
		Aborted:  m.aborted.Load(),
	}
}

type dummyCollector struct{}

func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (m *dummyCollector) Start(tier int, budget time.Duration) {}
func (m *dummyCollector) AddNode()                             {}
func (m *dummyCollector) AddProbe(hit bool)                    {}
func (m *dummyCollector) AddCutoff()                           {}
func (m *dummyCollector) CompleteDepth(depth, score int)       {}
func (m *dummyCollector) Abort()                               {}
func (m *dummyCollector) Complete() SearchMetric               { return SearchMetric{} }
