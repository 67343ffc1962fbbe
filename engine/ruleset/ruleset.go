// Package ruleset holds a loaded ruleset: the action catalog, the authored
// enablers, effects and settings, and the obligatory requirement registry.
// A ruleset is mutable while loading and read-only once frozen.
package ruleset

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/nathoo/actioncore/engine/actions"
	"github.com/nathoo/actioncore/engine/oblig"
	"github.com/nathoo/actioncore/types"
)

var (
	// ErrNoSuchEnabler is returned when removing or looking up an unknown enabler.
	ErrNoSuchEnabler = errors.New("no such enabler")
	// ErrDuplicateEnabler is returned when an enabler id is reused.
	ErrDuplicateEnabler = errors.New("duplicate enabler id")
	// ErrFrozen is returned when mutating a frozen ruleset.
	ErrFrozen = errors.New("ruleset is frozen")
)

// Ruleset is one loaded ruleset snapshot.
type Ruleset struct {
	Info     types.RulesetInfo
	Settings types.Settings
	Nations  []types.Nation
	Effects  []types.Effect

	catalog  *actions.Catalog
	enablers [types.ActionCount][]*types.Enabler
	byID     map[string]*types.Enabler
	oblig    *oblig.Registry
	frozen   bool

	readers  atomic.Int64 // snapshots handed out by Holder.Acquire
	retired  atomic.Bool
	teardown sync.Once
}

// New returns an empty ruleset with the ruleset independent obligatory
// requirements registered.
func New() (*Ruleset, error) {
	reg := oblig.NewRegistry()
	if err := oblig.HardCoded(reg); err != nil {
		return nil, fmt.Errorf("hard coded requirements: %w", err)
	}
	return &Ruleset{
		catalog: actions.NewCatalog(),
		byID:    map[string]*types.Enabler{},
		oblig:   reg,
	}, nil
}

// Catalog returns the action catalog.
func (rs *Ruleset) Catalog() *actions.Catalog { return rs.catalog }

// Oblig returns the obligatory requirement registry.
func (rs *Ruleset) Oblig() *oblig.Registry { return rs.oblig }

// Frozen reports whether the ruleset is read-only.
func (rs *Ruleset) Frozen() bool { return rs.frozen }

// AddEnabler appends e to its action's enablers. An empty id is replaced
// by one derived from the action's rule name.
func (rs *Ruleset) AddEnabler(e *types.Enabler) error {
	if rs.frozen {
		return ErrFrozen
	}
	a, err := rs.catalog.ByID(e.Action)
	if err != nil {
		return err
	}
	if e.ID == "" {
		e.ID = fmt.Sprintf("%s#%d", a.RuleName, len(rs.enablers[e.Action])+1)
	}
	if _, dup := rs.byID[e.ID]; dup {
		return fmt.Errorf("%w: %s", ErrDuplicateEnabler, e.ID)
	}
	rs.enablers[e.Action] = append(rs.enablers[e.Action], e)
	rs.byID[e.ID] = e
	return nil
}

// RemoveEnabler deletes the enabler with the given id.
func (rs *Ruleset) RemoveEnabler(id string) error {
	if rs.frozen {
		return ErrFrozen
	}
	e, ok := rs.byID[id]
	if !ok {
		return fmt.Errorf("%w: %s", ErrNoSuchEnabler, id)
	}
	list := rs.enablers[e.Action]
	for i, x := range list {
		if x == e {
			rs.enablers[e.Action] = append(list[:i:i], list[i+1:]...)
			break
		}
	}
	delete(rs.byID, id)
	return nil
}

// Enablers returns the enablers of an action in insertion order. Unknown
// actions have none.
func (rs *Ruleset) Enablers(id types.ActionID) []*types.Enabler {
	if id < 0 || id >= types.ActionCount {
		return nil
	}
	return rs.enablers[id]
}

// Enabler returns the enabler with the given id.
func (rs *Ruleset) Enabler(id string) (*types.Enabler, error) {
	e, ok := rs.byID[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNoSuchEnabler, id)
	}
	return e, nil
}

// EnablerCount returns the total number of enablers.
func (rs *Ruleset) EnablerCount() int {
	return len(rs.byID)
}

// AddEffect appends an effect.
func (rs *Ruleset) AddEffect(e types.Effect) error {
	if rs.frozen {
		return ErrFrozen
	}
	rs.Effects = append(rs.Effects, e)
	return nil
}

// AddNation appends a nation.
func (rs *Ruleset) AddNation(n types.Nation) error {
	if rs.frozen {
		return ErrFrozen
	}
	rs.Nations = append(rs.Nations, n)
	return nil
}

// Nation returns the nation with the given id.
func (rs *Ruleset) Nation(id string) (types.Nation, bool) {
	for _, n := range rs.Nations {
		if n.ID == id {
			return n, true
		}
	}
	return types.Nation{}, false
}

// Freeze registers the obligatory requirements that depend on ruleset
// data and makes the ruleset read-only.
func (rs *Ruleset) Freeze() error {
	if rs.frozen {
		return ErrFrozen
	}
	if err := oblig.RulesetDependent(rs.oblig, rs.Nations); err != nil {
		return fmt.Errorf("ruleset dependent requirements: %w", err)
	}
	rs.frozen = true
	return nil
}

// Teardown releases enablers and obligatory requirements. The ruleset
// must not be used afterwards. Calls after the first do nothing.
func (rs *Ruleset) Teardown() {
	rs.teardown.Do(func() {
		for i := range rs.enablers {
			rs.enablers[i] = nil
		}
		rs.byID = map[string]*types.Enabler{}
		rs.oblig.Close()
	})
}

// Retire tears the ruleset down as soon as no reader holds it. It is for
// snapshots that a Holder no longer publishes.
func (rs *Ruleset) Retire() {
	rs.retired.Store(true)
	if rs.readers.Load() == 0 {
		rs.Teardown()
	}
}

func (rs *Ruleset) release() {
	if rs.readers.Add(-1) == 0 && rs.retired.Load() {
		rs.Teardown()
	}
}

// Holder publishes the current ruleset snapshot to concurrent readers.
// Reloading builds a new snapshot and swaps it in.
type Holder struct {
	p atomic.Pointer[Ruleset]
}

// NewHolder returns a holder publishing rs.
func NewHolder(rs *Ruleset) *Holder {
	h := &Holder{}
	h.p.Store(rs)
	return h
}

// Load returns the current snapshot. Readers that may run while another
// goroutine replaces it use Acquire instead.
func (h *Holder) Load() *Ruleset {
	return h.p.Load()
}

// Acquire returns the current snapshot and a func releasing it. A
// snapshot replaced while held is torn down only after its last release.
// Acquire returns nil and a no-op release when nothing is published.
func (h *Holder) Acquire() (*Ruleset, func()) {
	for {
		rs := h.p.Load()
		if rs == nil {
			return nil, func() {}
		}
		rs.readers.Add(1)
		if h.p.Load() == rs {
			return rs, sync.OnceFunc(rs.release)
		}
		// Replaced between the two loads.
		rs.release()
	}
}

// Swap publishes rs and returns the previous snapshot, which the caller
// tears down once no reader uses it.
func (h *Holder) Swap(rs *Ruleset) *Ruleset {
	return h.p.Swap(rs)
}

// Replace publishes rs and retires the previous snapshot, so that it is
// torn down when its last Acquire reader releases it.
func (h *Holder) Replace(rs *Ruleset) {
	if old := h.p.Swap(rs); old != nil && old != rs {
		old.Retire()
	}
}
