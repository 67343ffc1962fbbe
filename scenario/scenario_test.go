package scenario

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nathoo/actioncore/types"
)

func TestLoad_YAML(t *testing.T) {
	s, err := Load("testdata/bribe.yaml")
	require.NoError(t, err)

	assert.Equal(t, "bribe a guarded warrior", s.Name)
	assert.Equal(t, int64(42), s.Seed)
	assert.Equal(t, "testdata/bribe.yaml", s.Path())
	assert.Equal(t, filepath.Join("testdata", "../../loader/testdata/classic"), s.RulesetDir())
	require.Len(t, s.Queries, 2)
	assert.Equal(t, &Expect{Enabled: "yes", Prob: "[75%]"}, s.Queries[0].Expect)

	actor, target := s.Contexts()
	assert.Equal(t, types.DiplWar, actor.Player.Relations["blue"].State)
	assert.Equal(t, 3, actor.Unit.MovesLeft)
	assert.Same(t, s.UnitTypes["Spy"], actor.Unit.Type, "named unit type should be linked")
	assert.Equal(t, 150, actor.Unit.Type.VeteranLevels[1].PowerFact)

	require.Len(t, target.Tile.Units, 2)
	assert.Same(t, target.Tile.Units[0], target.Unit, "victim should be the tile's unit")
	assert.Equal(t, "blue", target.Unit.Owner)
	assert.Same(t, s.UnitTypes["Diplomat"], target.Tile.Units[1].Type)
	assert.NotNil(t, target.Player.Relations, "relations map should never be nil")
}

func TestLoad_JSON(t *testing.T) {
	s, err := Load("testdata/fortify.json")
	require.NoError(t, err)

	actor, target := s.Contexts()
	assert.Same(t, actor, target, "a scenario without target asks about the actor")
	assert.Equal(t, []string{"CanFortify"}, actor.Unit.Type.ClassFlags, "inline unit types are kept")
	assert.Empty(t, s.RulesetDir())
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load("testdata/noactor.yaml")
	assert.ErrorIs(t, err, ErrNoActor)

	_, err = Load("testdata/missing.yaml")
	assert.Error(t, err)

	_, err = Parse([]byte("actor: [not, a, context]"))
	assert.Error(t, err)
}

func TestLink_CombatDefender(t *testing.T) {
	s, err := Parse([]byte(`
actor:
  unit: {id: r1, owner: red}
target:
  tile:
    units:
      - {id: b1, owner: blue, visible: true}
  combat:
    defender: {id: b1}
    win_chance: 0.25
`))
	require.NoError(t, err)
	assert.Same(t, s.Target.Tile.Units[0], s.Target.Combat.Defender)
	assert.True(t, s.Target.Combat.Defender.VisibleToAct)
}

func TestSave_RoundTrip(t *testing.T) {
	s, err := Load("testdata/bribe.yaml")
	require.NoError(t, err)

	dir := t.TempDir()
	for _, name := range []string{"copy.yaml", "copy.json"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, name)
			require.NoError(t, Save(s, path))
			assert.Equal(t, path, s.Path())

			back, err := Load(path)
			require.NoError(t, err)
			assert.Equal(t, s.Name, back.Name)
			assert.Equal(t, s.Queries, back.Queries)
			assert.Equal(t, s.Actor.Unit.Type.Flags, back.Actor.Unit.Type.Flags)
			assert.Len(t, back.Target.Tile.Units, 2)
		})
	}
}
