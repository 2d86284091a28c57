package pathfind_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/rpg-battle/internal/engine/grid"
	"github.com/KirkDiggler/rpg-battle/internal/engine/pathfind"
)

type occupant struct {
	id    string
	alive bool
	pos   grid.Cell
}

func (o *occupant) GetID() string       { return o.id }
func (o *occupant) IsAlive() bool       { return o.alive }
func (o *occupant) Position() grid.Cell { return o.pos }

type FinderTestSuite struct {
	suite.Suite
	notices []pathfind.Unreachable
}

func TestFinderSuite(t *testing.T) {
	suite.Run(t, new(FinderTestSuite))
}

func (s *FinderTestSuite) SetupTest() {
	s.notices = nil
}

func (s *FinderTestSuite) newFinder(g grid.Grid, algorithm pathfind.Algorithm) *pathfind.Finder {
	f, err := pathfind.NewFinder(&pathfind.Config{
		Grid:      g,
		Algorithm: algorithm,
		Notifier: pathfind.NotifierFunc(func(u pathfind.Unreachable) {
			s.notices = append(s.notices, u)
		}),
	})
	s.Require().NoError(err)
	return f
}

func (s *FinderTestSuite) algorithms() []pathfind.Algorithm {
	return []pathfind.Algorithm{pathfind.AlgorithmBFS, pathfind.AlgorithmBidirectional}
}

func (s *FinderTestSuite) TestNewFinder_InvalidConfig() {
	testCases := []struct {
		name   string
		config *pathfind.Config
		errMsg string
	}{
		{name: "nil config", config: nil, errMsg: "config is required"},
		{name: "zero grid", config: &pathfind.Config{}, errMsg: "grid.width"},
		{
			name:   "oversized grid",
			config: &pathfind.Config{Grid: grid.New(4294967296, 4294967296)},
			errMsg: "must be between 1 and 1024",
		},
		{
			name:   "unknown algorithm",
			config: &pathfind.Config{Grid: grid.Default(), Algorithm: "astar"},
			errMsg: "algorithm",
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			f, err := pathfind.NewFinder(tc.config)
			s.Error(err)
			s.Contains(err.Error(), tc.errMsg)
			s.Nil(f)
		})
	}
}

func (s *FinderTestSuite) TestExampleScenario() {
	for _, algorithm := range s.algorithms() {
		s.Run(string(algorithm), func() {
			f := s.newFinder(grid.Default(), algorithm)

			path := f.FindPath(grid.Cell{X: 1, Y: 1}, grid.Cell{X: 1, Y: 4}, []grid.Cell{{X: 1, Y: 2}})

			s.Require().Len(path, 4)
			s.Equal(grid.Cell{X: 1, Y: 1}, path[0])
			s.Equal(grid.Cell{X: 1, Y: 4}, path[3])
			s.NotContains(path, grid.Cell{X: 1, Y: 2})
			s.assertKingSteps(path)
		})
	}
}

func (s *FinderTestSuite) TestBFSTieBreakFollowsNeighborOrder() {
	f := s.newFinder(grid.Default(), pathfind.AlgorithmBFS)

	path := f.FindPath(grid.Cell{X: 1, Y: 1}, grid.Cell{X: 1, Y: 4}, []grid.Cell{{X: 1, Y: 2}})

	s.Equal([]grid.Cell{{X: 1, Y: 1}, {X: 2, Y: 2}, {X: 2, Y: 3}, {X: 1, Y: 4}}, path)
}

func (s *FinderTestSuite) TestStartEqualsGoal() {
	for _, algorithm := range s.algorithms() {
		s.Run(string(algorithm), func() {
			f := s.newFinder(grid.Default(), algorithm)
			c := grid.Cell{X: 4, Y: 4}

			s.Equal([]grid.Cell{c}, f.FindPath(c, c, []grid.Cell{c}))
		})
	}
}

func (s *FinderTestSuite) TestOutOfBounds() {
	f := s.newFinder(grid.Default(), pathfind.AlgorithmBFS)

	s.Empty(f.FindPath(grid.Cell{X: -1, Y: 0}, grid.Cell{X: 3, Y: 3}, nil))
	s.Empty(f.FindPath(grid.Cell{X: 0, Y: 0}, grid.Cell{X: 27, Y: 3}, nil))
	s.Empty(s.notices, "out of bounds is not an unreachable notification")
}

func (s *FinderTestSuite) TestGoalIsEnterableWhenBlocked() {
	for _, algorithm := range s.algorithms() {
		s.Run(string(algorithm), func() {
			f := s.newFinder(grid.Default(), algorithm)
			goal := grid.Cell{X: 5, Y: 5}

			path := f.FindPath(grid.Cell{X: 2, Y: 5}, goal, []grid.Cell{goal})

			s.Len(path, 4)
			s.Equal(goal, path[len(path)-1])
		})
	}
}

func (s *FinderTestSuite) TestDiagonalSqueezeAllowed() {
	for _, algorithm := range s.algorithms() {
		s.Run(string(algorithm), func() {
			f := s.newFinder(grid.New(2, 2), algorithm)

			path := f.FindPath(grid.Cell{X: 0, Y: 0}, grid.Cell{X: 1, Y: 1},
				[]grid.Cell{{X: 1, Y: 0}, {X: 0, Y: 1}})

			s.Equal([]grid.Cell{{X: 0, Y: 0}, {X: 1, Y: 1}}, path)
		})
	}
}

func (s *FinderTestSuite) TestWallAcrossFullWidth() {
	g := grid.Default()
	wall := make([]grid.Cell, 0, g.Width)
	for x := 0; x < g.Width; x++ {
		wall = append(wall, grid.Cell{X: x, Y: 10})
	}

	for _, algorithm := range s.algorithms() {
		s.Run(string(algorithm), func() {
			s.notices = nil
			f := s.newFinder(g, algorithm)

			path := f.FindPath(grid.Cell{X: 3, Y: 2}, grid.Cell{X: 20, Y: 18}, wall)

			s.Empty(path)
			s.Require().Len(s.notices, 1)
			s.Equal(grid.Cell{X: 3, Y: 2}, s.notices[0].From)
			s.Equal(grid.Cell{X: 20, Y: 18}, s.notices[0].To)
		})
	}
}

func (s *FinderTestSuite) TestNilNotifierIsNoop() {
	f, err := pathfind.NewFinder(&pathfind.Config{Grid: grid.New(3, 3)})
	s.Require().NoError(err)

	path := f.FindPath(grid.Cell{X: 0, Y: 0}, grid.Cell{X: 2, Y: 2},
		[]grid.Cell{{X: 0, Y: 1}, {X: 1, Y: 1}, {X: 1, Y: 0}})

	s.Empty(path)
}

func (s *FinderTestSuite) TestFindTargetPath() {
	attacker := &occupant{id: "archer", alive: true, pos: grid.Cell{X: 1, Y: 1}}
	target := &occupant{id: "knight", alive: true, pos: grid.Cell{X: 1, Y: 4}}
	wall := &occupant{id: "pikeman", alive: true, pos: grid.Cell{X: 1, Y: 2}}

	f := s.newFinder(grid.Default(), pathfind.AlgorithmBFS)
	path := f.FindTargetPath(attacker, target, []pathfind.Occupant{attacker, target, wall})

	s.Len(path, 4)
	s.NotContains(path, wall.pos)
	s.Nil(f.FindTargetPath(nil, target, nil))
}

func (s *FinderTestSuite) TestFindTargetPath_DeadOccupantsDoNotBlock() {
	attacker := &occupant{id: "archer", alive: true, pos: grid.Cell{X: 0, Y: 0}}
	target := &occupant{id: "knight", alive: true, pos: grid.Cell{X: 2, Y: 0}}
	corpse := &occupant{id: "swordsman", alive: false, pos: grid.Cell{X: 1, Y: 0}}

	f := s.newFinder(grid.New(3, 1), pathfind.AlgorithmBFS)
	path := f.FindTargetPath(attacker, target, []pathfind.Occupant{attacker, corpse, target})

	s.Equal([]grid.Cell{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 2, Y: 0}}, path)

	corpse.alive = true
	s.Empty(f.FindTargetPath(attacker, target, []pathfind.Occupant{attacker, corpse, target}))
	s.Len(s.notices, 1)
}

func (s *FinderTestSuite) TestFindTargetPath_NotifiesWithIdentities() {
	attacker := &occupant{id: "archer", alive: true, pos: grid.Cell{X: 0, Y: 0}}
	target := &occupant{id: "knight", alive: true, pos: grid.Cell{X: 2, Y: 2}}
	blockers := []pathfind.Occupant{
		attacker, target,
		&occupant{id: "a", alive: true, pos: grid.Cell{X: 1, Y: 0}},
		&occupant{id: "b", alive: true, pos: grid.Cell{X: 0, Y: 1}},
		&occupant{id: "c", alive: true, pos: grid.Cell{X: 1, Y: 1}},
	}

	f := s.newFinder(grid.New(3, 3), pathfind.AlgorithmBidirectional)

	s.Empty(f.FindTargetPath(attacker, target, blockers))
	s.Require().Len(s.notices, 1)
	s.Equal("archer", s.notices[0].FromID)
	s.Equal("knight", s.notices[0].ToID)
}

func (s *FinderTestSuite) TestRandomGrids_ValidOptimalDeterministic() {
	rng := rand.New(rand.NewSource(7))
	g := grid.New(7, 6)

	for i := 0; i < 200; i++ {
		blocked := make([]grid.Cell, 0)
		for y := 0; y < g.Height; y++ {
			for x := 0; x < g.Width; x++ {
				if rng.Intn(100) < 30 {
					blocked = append(blocked, grid.Cell{X: x, Y: y})
				}
			}
		}
		start := grid.Cell{X: rng.Intn(g.Width), Y: rng.Intn(g.Height)}
		goal := grid.Cell{X: rng.Intn(g.Width), Y: rng.Intn(g.Height)}
		want := bruteForceDistance(g, start, goal, blocked)

		for _, algorithm := range s.algorithms() {
			f := s.newFinder(g, algorithm)
			path := f.FindPath(start, goal, blocked)

			s.Equal(path, f.FindPath(start, goal, blocked), "deterministic")

			if want < 0 {
				s.Empty(path)
				continue
			}
			s.Require().Len(path, want+1, "case %d %s: %v -> %v", i, algorithm, start, goal)
			s.Equal(start, path[0])
			s.Equal(goal, path[len(path)-1])
			s.assertKingSteps(path)
			for _, c := range path[:len(path)-1] {
				if c == start {
					continue
				}
				s.NotContains(blocked, c)
			}
		}
	}
}

func (s *FinderTestSuite) assertKingSteps(path []grid.Cell) {
	for i := 1; i < len(path); i++ {
		s.True(path[i-1].Adjacent(path[i]), "step %v -> %v", path[i-1], path[i])
	}
}

// bruteForceDistance relaxes every cell until nothing changes. It shares no
// code with the finder.
func bruteForceDistance(g grid.Grid, start, goal grid.Cell, blocked []grid.Cell) int {
	if start == goal {
		return 0
	}
	wall := make(map[grid.Cell]bool, len(blocked))
	for _, c := range blocked {
		wall[c] = true
	}
	open := func(c grid.Cell) bool { return c == start || c == goal || !wall[c] }

	const inf = 1 << 30
	dist := make(map[grid.Cell]int)
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			dist[grid.Cell{X: x, Y: y}] = inf
		}
	}
	dist[start] = 0

	for changed := true; changed; {
		changed = false
		for c, d := range dist {
			if d == inf || !open(c) {
				continue
			}
			for dx := -1; dx <= 1; dx++ {
				for dy := -1; dy <= 1; dy++ {
					n := grid.Cell{X: c.X + dx, Y: c.Y + dy}
					nd, ok := dist[n]
					if !ok || n == c || !open(n) || nd <= d+1 {
						continue
					}
					dist[n] = d + 1
					changed = true
				}
			}
		}
	}

	if dist[goal] == inf {
		return -1
	}
	return dist[goal]
}
