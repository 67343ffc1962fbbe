// Package scenario implements reading and writing of query scenarios: the
// actor and target snapshots a question is asked about, and the questions.
package scenario

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/nathoo/actioncore/types"
)

// ErrNoActor is returned for a scenario without an acting unit.
var ErrNoActor = errors.New("scenario has no actor unit")

// Expect is what a query should answer. Empty fields are not checked.
type Expect struct {
	Enabled string `yaml:"enabled,omitempty" json:"enabled,omitempty"` // yes, no or maybe
	Prob    string `yaml:"prob,omitempty" json:"prob,omitempty"`       // as printed, e.g. "[75%]"
}

// Query is one action asked about in a scenario.
type Query struct {
	Action string  `yaml:"action" json:"action"`
	Expect *Expect `yaml:"expect,omitempty" json:"expect,omitempty"`
}

// Scenario is the file format.
type Scenario struct {
	Name        string                     `yaml:"name" json:"name"`
	Description string                     `yaml:"description,omitempty" json:"description,omitempty"`
	Ruleset     string                     `yaml:"ruleset,omitempty" json:"ruleset,omitempty"` // relative to the scenario file
	Seed        int64                      `yaml:"seed,omitempty" json:"seed,omitempty"`
	UnitTypes   map[string]*types.UnitType `yaml:"unit_types,omitempty" json:"unit_types,omitempty"`
	Actor       *types.Context             `yaml:"actor" json:"actor"`
	Target      *types.Context             `yaml:"target,omitempty" json:"target,omitempty"`
	Queries     []Query                    `yaml:"queries,omitempty" json:"queries,omitempty"`

	path string
}

// Load reads and links a scenario file. YAML is a superset of JSON so
// both formats load the same way.
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	s, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	s.path = path
	return s, nil
}

// Parse decodes a scenario and links unit types, defenders and victims.
func Parse(data []byte) (*Scenario, error) {
	var s Scenario
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, err
	}
	if s.Actor == nil || s.Actor.Unit == nil {
		return nil, ErrNoActor
	}
	if s.UnitTypes == nil {
		s.UnitTypes = map[string]*types.UnitType{}
	}
	for name, ut := range s.UnitTypes {
		if ut.Name == "" {
			ut.Name = name
		}
	}
	s.link(s.Actor)
	s.link(s.Target)
	return &s, nil
}

// Marshal encodes s as JSON when path ends in .json and as YAML
// otherwise.
func Marshal(s *Scenario, path string) ([]byte, error) {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return json.MarshalIndent(s, "", "  ")
	}
	return yaml.Marshal(s)
}

// Save writes s to path.
func Save(s *Scenario, path string) error {
	data, err := Marshal(s, path)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return err
	}
	s.path = path
	return nil
}

// Path returns the file s was loaded from or saved to.
func (s *Scenario) Path() string { return s.path }

// Contexts returns the actor and the target. A scenario without a target
// asks about the actor itself.
func (s *Scenario) Contexts() (actor, target *types.Context) {
	if s.Target == nil {
		return s.Actor, s.Actor
	}
	return s.Actor, s.Target
}

// RulesetDir returns the ruleset directory named by the scenario,
// resolved against the scenario file's directory. It is "" when the
// scenario names none.
func (s *Scenario) RulesetDir() string {
	if s.Ruleset == "" {
		return ""
	}
	if filepath.IsAbs(s.Ruleset) || s.path == "" {
		return s.Ruleset
	}
	return filepath.Join(filepath.Dir(s.path), s.Ruleset)
}

// link replaces unit types given by name with the scenario's definitions
// and makes the context's unit and combat defender point into the tile's
// unit list, so the engine sees one unit where the file names one.
func (s *Scenario) link(c *types.Context) {
	if c == nil {
		return
	}
	if c.Player != nil && c.Player.Relations == nil {
		c.Player.Relations = map[string]types.Relation{}
	}
	c.UnitType = s.unitType(c.UnitType)

	if c.Tile != nil {
		for _, u := range c.Tile.Units {
			if u != nil {
				u.Type = s.unitType(u.Type)
			}
		}
	}
	if c.Unit != nil {
		c.Unit.Type = s.unitType(c.Unit.Type)
		c.Unit = tileUnit(c.Tile, c.Unit)
	}
	if c.Combat != nil && c.Combat.Defender != nil {
		c.Combat.Defender.Type = s.unitType(c.Combat.Defender.Type)
		c.Combat.Defender = tileUnit(c.Tile, c.Combat.Defender)
	}
}

func (s *Scenario) unitType(ut *types.UnitType) *types.UnitType {
	if ut == nil {
		return nil
	}
	if def, ok := s.UnitTypes[ut.Name]; ok {
		return def
	}
	return ut
}

// tileUnit returns the unit of tile with u's id, or u itself.
func tileUnit(tile *types.Tile, u *types.Unit) *types.Unit {
	if tile == nil {
		return u
	}
	for _, tu := range tile.Units {
		if tu != nil && tu.ID == u.ID {
			return tu
		}
	}
	return u
}
