// Package actions holds the static catalog of every action an actor can
// attempt and its structural properties.
package actions

import (
	"errors"
	"fmt"
	"strings"

	"github.com/nathoo/actioncore/types"
)

// ErrNoSuchAction is returned for an id outside the catalog.
var ErrNoSuchAction = errors.New("no such action")

// UnlimitedDistance is the MaxDistance of actions without an upper bound.
const UnlimitedDistance = -1

// MaxParadropRange bounds the paradrop window.
const MaxParadropRange = 65535

// Action describes one kind of interaction.
type Action struct {
	ID              types.ActionID
	Result          types.ActionResult
	SubResults      []types.SubResult
	ActorKind       types.ActorKind
	TargetKind      types.TargetKind
	Hostile         bool
	RequiresDetails bool // the actor must pick an extra detail (a building, a tech)
	RarePopUp       bool // not offered when moving into the target
	MinDistance     int
	MaxDistance     int
	RuleName        string
	UIName          string
}

// DistanceAccepted reports whether d falls within the action's window.
func (a *Action) DistanceAccepted(d int) bool {
	if d < a.MinDistance {
		return false
	}
	return a.MaxDistance == UnlimitedDistance || d <= a.MaxDistance
}

func (a *Action) String() string { return a.RuleName }

// Catalog is the immutable action table.
type Catalog struct {
	byID   []*Action
	byName map[string]*Action
}

// NewCatalog builds the catalog from the static table.
func NewCatalog() *Catalog {
	c := &Catalog{
		byID:   make([]*Action, types.ActionCount),
		byName: make(map[string]*Action, types.ActionCount),
	}
	for i := range table {
		a := table[i]
		if a.UIName == "" {
			a.UIName = a.RuleName
		}
		c.byID[a.ID] = &a
		c.byName[strings.ToLower(a.RuleName)] = &a
	}
	return c
}

// ByID returns the action with the given id.
func (c *Catalog) ByID(id types.ActionID) (*Action, error) {
	if id < 0 || int(id) >= len(c.byID) || c.byID[id] == nil {
		return nil, fmt.Errorf("%w: %d", ErrNoSuchAction, id)
	}
	return c.byID[id], nil
}

// ByRuleName looks an action up by its rule name, ignoring case.
func (c *Catalog) ByRuleName(name string) (*Action, bool) {
	a, ok := c.byName[strings.ToLower(strings.TrimSpace(name))]
	return a, ok
}

// All returns every action in id order.
func (c *Catalog) All() []*Action {
	out := make([]*Action, 0, len(c.byID))
	for _, a := range c.byID {
		if a != nil {
			out = append(out, a)
		}
	}
	return out
}

// ForResult returns the actions that share a result.
func (c *Catalog) ForResult(res types.ActionResult) []*Action {
	var out []*Action
	for _, a := range c.byID {
		if a != nil && a.Result == res {
			out = append(out, a)
		}
	}
	return out
}

// ForSubResult returns the actions that may cause sub.
func (c *Catalog) ForSubResult(sub types.SubResult) []*Action {
	var out []*Action
	for _, a := range c.byID {
		if a == nil {
			continue
		}
		for _, s := range a.SubResults {
			if s == sub {
				out = append(out, a)
				break
			}
		}
	}
	return out
}

// ResultName returns a readable name for a result.
func ResultName(res types.ActionResult) string {
	if res < 0 || res >= types.ResultCount {
		return fmt.Sprintf("result(%d)", res)
	}
	return resultNames[res]
}

// TargetKindName returns a readable name for a target kind.
func TargetKindName(k types.TargetKind) string {
	switch k {
	case types.TargetCity:
		return "City"
	case types.TargetUnit:
		return "Unit"
	case types.TargetUnits:
		return "Units"
	case types.TargetTile:
		return "Tile"
	case types.TargetExtras:
		return "Extras"
	case types.TargetSelf:
		return "Self"
	}
	return fmt.Sprintf("target(%d)", k)
}
