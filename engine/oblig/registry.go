// Package oblig keeps the obligatory hard requirements every enabler of an
// action result must imply, and validates rulesets against them.
package oblig

import (
	"errors"
	"fmt"

	"github.com/nathoo/actioncore/types"
)

var (
	// ErrEmptyGroup is returned when a contradiction group has no alternatives.
	ErrEmptyGroup = errors.New("contradiction group needs at least one alternative")
	// ErrNoResults is returned when registering a group for nothing.
	ErrNoResults = errors.New("no action results given")
	// ErrUnknownGroup is returned for a group id the registry does not hold.
	ErrUnknownGroup = errors.New("unknown contradiction group")
	// ErrInvalidResult is returned for a result or sub result out of range.
	ErrInvalidResult = errors.New("invalid action result")
)

// Alternative is one requirement an enabler may contradict to satisfy a
// group. IsTarget selects the enabler's target vector instead of its
// actor vector.
type Alternative struct {
	Req      types.Requirement
	IsTarget bool
}

// GroupID identifies a contradiction group in a Registry.
type GroupID int

// group is a contradiction group shared by every result it is registered
// for. It is freed when its last user is released.
type group struct {
	alts  []Alternative
	users int
}

// Obligatory is one obligatory hard requirement: an enabler must
// contradict at least one of Alternatives.
type Obligatory struct {
	Group        GroupID
	Alternatives []Alternative
	Message      string // %s is replaced with the action name
}

// Registry owns contradiction groups and the obligatory requirements
// registered per action result and sub result.
type Registry struct {
	groups   map[GroupID]*group
	next     GroupID
	byResult [types.ResultCount][]Obligatory
	bySub    [types.SubResultCount][]Obligatory
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{groups: map[GroupID]*group{}}
}

// NewGroup creates a contradiction group with no users yet.
func (r *Registry) NewGroup(alts ...Alternative) (GroupID, error) {
	if len(alts) == 0 {
		return 0, ErrEmptyGroup
	}
	id := r.next
	r.next++
	r.groups[id] = &group{alts: append([]Alternative(nil), alts...)}
	return id, nil
}

// Register makes group obligatory for each of results. Each result adds
// one user to the group.
func (r *Registry) Register(id GroupID, message string, results []types.ActionResult) error {
	g, ok := r.groups[id]
	if !ok {
		return fmt.Errorf("%w: %d", ErrUnknownGroup, id)
	}
	if len(results) == 0 {
		return ErrNoResults
	}
	for _, res := range results {
		if res < 0 || res >= types.ResultCount {
			return fmt.Errorf("%w: %d", ErrInvalidResult, res)
		}
	}
	for _, res := range results {
		r.byResult[res] = append(r.byResult[res], Obligatory{Group: id, Alternatives: g.alts, Message: message})
	}
	g.users += len(results)
	return nil
}

// RegisterSubResult makes group obligatory for each of subs.
func (r *Registry) RegisterSubResult(id GroupID, message string, subs []types.SubResult) error {
	g, ok := r.groups[id]
	if !ok {
		return fmt.Errorf("%w: %d", ErrUnknownGroup, id)
	}
	if len(subs) == 0 {
		return ErrNoResults
	}
	for _, s := range subs {
		if s < 0 || s >= types.SubResultCount {
			return fmt.Errorf("%w: sub result %d", ErrInvalidResult, s)
		}
	}
	for _, s := range subs {
		r.bySub[s] = append(r.bySub[s], Obligatory{Group: id, Alternatives: g.alts, Message: message})
	}
	g.users += len(subs)
	return nil
}

// RegisterOne registers a single requirement group for results.
func (r *Registry) RegisterOne(req types.Requirement, isTarget bool, message string, results []types.ActionResult) error {
	id, err := r.NewGroup(Alternative{Req: req, IsTarget: isTarget})
	if err != nil {
		return err
	}
	if err := r.Register(id, message, results); err != nil {
		delete(r.groups, id)
		return err
	}
	return nil
}

// Get returns the obligatory requirements of res.
func (r *Registry) Get(res types.ActionResult) []Obligatory {
	if res < 0 || res >= types.ResultCount {
		return nil
	}
	return r.byResult[res]
}

// GetSub returns the obligatory requirements of sub.
func (r *Registry) GetSub(sub types.SubResult) []Obligatory {
	if sub < 0 || sub >= types.SubResultCount {
		return nil
	}
	return r.bySub[sub]
}

// Users returns how many registrations hold group id. Freed groups have none.
func (r *Registry) Users(id GroupID) int {
	if g, ok := r.groups[id]; ok {
		return g.users
	}
	return 0
}

// Groups returns the number of live groups.
func (r *Registry) Groups() int {
	return len(r.groups)
}

// Close releases every registration. Groups are freed as their last user
// goes away.
func (r *Registry) Close() {
	for i := range r.byResult {
		for _, o := range r.byResult[i] {
			r.release(o.Group)
		}
		r.byResult[i] = nil
	}
	for i := range r.bySub {
		for _, o := range r.bySub[i] {
			r.release(o.Group)
		}
		r.bySub[i] = nil
	}
	// Groups created but never registered have no users to release them.
	for id, g := range r.groups {
		if g.users < 1 {
			delete(r.groups, id)
		}
	}
}

func (r *Registry) release(id GroupID) {
	g, ok := r.groups[id]
	if !ok {
		return
	}
	g.users--
	if g.users < 1 {
		delete(r.groups, id)
	}
}
