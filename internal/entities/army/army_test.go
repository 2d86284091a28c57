package army_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/rpg-battle/internal/engine/battle"
	"github.com/KirkDiggler/rpg-battle/internal/engine/grid"
	"github.com/KirkDiggler/rpg-battle/internal/entities/army"
)

type ArmyTestSuite struct {
	suite.Suite
	archer army.Template
}

func TestArmySuite(t *testing.T) {
	suite.Run(t, new(ArmyTestSuite))
}

func (s *ArmyTestSuite) SetupTest() {
	s.archer = army.Template{
		Type:       "Archer",
		Health:     50,
		BaseAttack: 40,
		Cost:       80,
		AttackType: army.AttackRanged,
		DiceCount:  1,
		DiceSize:   6,
	}
}

func (s *ArmyTestSuite) TestTemplate_NewUnit() {
	u := s.archer.NewUnit("u_1", "Archer 1", 2, 7)

	s.Equal("u_1", u.GetID())
	s.Equal("Archer", u.GetType())
	s.Equal("Archer 1", u.GetName())
	s.Equal(40, u.Power())
	s.Equal(grid.Cell{X: 2, Y: 7}, u.Position())
	s.True(u.IsAlive())
	s.Nil(u.Action())

	plain := army.Template{Type: "Pikeman", Health: 1, Cost: 1}
	s.Equal(army.AttackMelee, plain.NewUnit("u_2", "Pikeman 1", 0, 0).AttackType)
}

func (s *ArmyTestSuite) TestTemplate_Validate() {
	testCases := []struct {
		name     string
		template army.Template
		errMsg   string
	}{
		{name: "valid", template: s.archer},
		{name: "missing type", template: army.Template{Health: 1, Cost: 1}, errMsg: "type"},
		{name: "no health", template: army.Template{Type: "x", Cost: 1}, errMsg: "health"},
		{name: "free unit", template: army.Template{Type: "x", Health: 1}, errMsg: "cost"},
		{
			name:     "bad attack type",
			template: army.Template{Type: "x", Health: 1, Cost: 1, AttackType: "magic"},
			errMsg:   "attack_type",
		},
		{
			name:     "half dice",
			template: army.Template{Type: "x", Health: 1, Cost: 1, DiceCount: 2},
			errMsg:   "dice",
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			err := tc.template.Validate()
			if tc.errMsg == "" {
				s.NoError(err)
				return
			}
			s.Error(err)
			s.Contains(err.Error(), tc.errMsg)
		})
	}
}

func (s *ArmyTestSuite) TestUnit_TakeDamage() {
	u := s.archer.NewUnit("u_1", "Archer 1", 0, 0)

	s.Equal(20, u.TakeDamage(20))
	s.Equal(30, u.Health)
	s.True(u.IsAlive())

	s.Equal(0, u.TakeDamage(-5))
	s.Equal(30, u.TakeDamage(100))
	s.Equal(0, u.Health)
	s.False(u.IsAlive())

	s.Equal(0, u.TakeDamage(10), "dead units take no damage")

	var missing *army.Unit
	s.False(missing.IsAlive())
}

func (s *ArmyTestSuite) TestUnit_ActionKeepsFormationCell() {
	u := s.archer.NewUnit("u_1", "Archer 1", 4, 5)
	u.Program = battle.ActionFunc(func(context.Context) (battle.Combatant, error) { return nil, nil })

	s.Require().NotNil(u.Action())
	_, err := u.Action().Act(context.Background())
	s.Require().NoError(err)
	s.Equal(grid.Cell{X: 4, Y: 5}, u.Position())
}

func (s *ArmyTestSuite) TestArmy() {
	a1 := s.archer.NewUnit("u_1", "Archer 1", 0, 0)
	a2 := s.archer.NewUnit("u_2", "Archer 2", 0, 1)
	a := army.New("Player", a1)
	a.Add(nil)
	a.Add(a2)
	a.SetPoints(160)

	s.Equal("Player", a.Name())
	s.Equal(160, a.Points())
	s.Len(a.Units(), 3)
	s.Len(a.Combatants(), 2, "nil units are not combatants")
}
