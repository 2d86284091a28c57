package preset_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/rpg-battle/internal/engine/grid"
	"github.com/KirkDiggler/rpg-battle/internal/engine/preset"
	"github.com/KirkDiggler/rpg-battle/internal/entities/army"
	"github.com/KirkDiggler/rpg-battle/internal/pkg/idgen"
)

type PresetTestSuite struct {
	suite.Suite
	gen       *preset.Generator
	swordsman army.Template
	pikeman   army.Template
	archer    army.Template
	knight    army.Template
}

func TestPresetSuite(t *testing.T) {
	suite.Run(t, new(PresetTestSuite))
}

func (s *PresetTestSuite) SetupTest() {
	cfg := preset.DefaultConfig()
	cfg.IDGen = idgen.NewSequential("unit")

	var err error
	s.gen, err = preset.NewGenerator(cfg)
	s.Require().NoError(err)

	s.swordsman = army.Template{Type: "Swordsman", Health: 50, BaseAttack: 30, Cost: 20}
	s.pikeman = army.Template{Type: "Pikeman", Health: 40, BaseAttack: 10, Cost: 10}
	s.archer = army.Template{Type: "Archer", Health: 30, BaseAttack: 20, Cost: 40, AttackType: army.AttackRanged}
	s.knight = army.Template{Type: "Knight", Health: 120, BaseAttack: 60, Cost: 900}
}

func (s *PresetTestSuite) countByType(a *army.Army) map[string]int {
	counts := map[string]int{}
	for _, u := range a.Units() {
		counts[u.Type]++
	}
	return counts
}

func (s *PresetTestSuite) TestNewGenerator_InvalidConfig() {
	_, err := preset.NewGenerator(nil)
	s.Error(err)

	_, err = preset.NewGenerator(&preset.Config{MaxPerType: 1, Width: 0, Height: 1})
	s.Error(err)
	s.Contains(err.Error(), "width")
}

func (s *PresetTestSuite) TestBestRatioBoughtFirst() {
	a := s.gen.Generate("Computer", []army.Template{s.pikeman, s.archer, s.swordsman}, 100, rand.New(rand.NewSource(1)))

	s.Equal(map[string]int{"Swordsman": 5}, s.countByType(a))
	s.Equal(100, a.Points())
	s.Equal("Computer", a.Name())
}

func (s *PresetTestSuite) TestTypeCapMovesToNextTemplate() {
	a := s.gen.Generate("Computer", []army.Template{s.pikeman, s.swordsman}, 1000, rand.New(rand.NewSource(1)))

	s.Equal(map[string]int{"Swordsman": 11, "Pikeman": 11}, s.countByType(a))
	s.Equal(11*20+11*10, a.Points())
}

func (s *PresetTestSuite) TestLeftoverBudgetBelowCheapestTemplate() {
	a := s.gen.Generate("Computer", []army.Template{s.swordsman, s.archer}, 230, rand.New(rand.NewSource(2)))

	s.Equal(map[string]int{"Swordsman": 11}, s.countByType(a), "10 points left cannot buy an archer")
	s.Equal(220, a.Points())
}

func (s *PresetTestSuite) TestUnaffordableAndFreeTemplatesIgnored() {
	free := army.Template{Type: "Ghost", Health: 1, BaseAttack: 99, Cost: 0}
	a := s.gen.Generate("Computer", []army.Template{free, s.knight, s.pikeman}, 35, rand.New(rand.NewSource(3)))

	s.Equal(map[string]int{"Pikeman": 3}, s.countByType(a))
	s.Equal(30, a.Points())
}

func (s *PresetTestSuite) TestEmptyInputs() {
	rng := rand.New(rand.NewSource(4))

	s.Empty(s.gen.Generate("A", nil, 100, rng).Units())
	s.Empty(s.gen.Generate("A", []army.Template{s.pikeman}, 0, rng).Units())
	s.Equal(0, s.gen.Generate("A", []army.Template{s.pikeman}, -5, rng).Points())
}

func (s *PresetTestSuite) TestPlacementUniqueAndInsideStrip() {
	templates := []army.Template{s.swordsman, s.pikeman, s.archer,
		{Type: "Crossbowman", Health: 20, BaseAttack: 15, Cost: 30},
		{Type: "Healer", Health: 10, BaseAttack: 1, Cost: 5},
		{Type: "Mage", Health: 10, BaseAttack: 5, Cost: 15},
	}
	a := s.gen.Generate("Player", templates, 100000, rand.New(rand.NewSource(5)))

	s.Len(a.Units(), 3*grid.DefaultHeight, "formation is full")

	seen := map[grid.Cell]bool{}
	for _, u := range a.Units() {
		c := u.Position()
		s.False(seen[c], "cell %v used twice", c)
		seen[c] = true
		s.GreaterOrEqual(c.X, 0)
		s.Less(c.X, preset.DefaultWidth)
		s.GreaterOrEqual(c.Y, 0)
		s.Less(c.Y, grid.DefaultHeight)
		s.True(u.IsAlive())
	}
}

func (s *PresetTestSuite) TestNamesAndIDs() {
	a := s.gen.Generate("Player", []army.Template{s.swordsman}, 60, rand.New(rand.NewSource(6)))

	s.Require().Len(a.Units(), 3)
	for i, u := range a.Units() {
		s.Equal("Swordsman "+string(rune('1'+i)), u.Name)
	}
	s.Equal("unit_1", a.Units()[0].ID)
	s.Equal("unit_3", a.Units()[2].ID)
}

func (s *PresetTestSuite) TestSameSeedSameArmy() {
	templates := []army.Template{s.swordsman, s.pikeman}

	place := func() []grid.Cell {
		a := s.gen.Generate("Player", templates, 300, rand.New(rand.NewSource(42)))
		cells := make([]grid.Cell, 0, len(a.Units()))
		for _, u := range a.Units() {
			cells = append(cells, u.Position())
		}
		return cells
	}

	s.Equal(place(), place())
}

func (s *PresetTestSuite) TestTinyStripFallsBackToScan() {
	gen, err := preset.NewGenerator(&preset.Config{MaxPerType: 5, Width: 1, Height: 2})
	s.Require().NoError(err)

	a := gen.Generate("A", []army.Template{s.pikeman}, 100, rand.New(rand.NewSource(7)))

	s.Len(a.Units(), 2)
	s.NotEqual(a.Units()[0].Position(), a.Units()[1].Position())
}

func (s *PresetTestSuite) TestPlaceOffset() {
	a := s.gen.Generate("Computer", []army.Template{s.pikeman}, 30, rand.New(rand.NewSource(8)))
	before := make([]int, 0)
	for _, u := range a.Units() {
		before = append(before, u.X)
	}

	preset.PlaceOffset(a, grid.DefaultWidth-preset.DefaultWidth)

	for i, u := range a.Units() {
		s.Equal(before[i]+24, u.X)
	}
}
