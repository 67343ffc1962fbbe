// Package resolve maps user-typed action and result names to catalog
// entries.
package resolve

import (
	"fmt"
	"strings"

	"github.com/nathoo/actioncore/engine/actions"
	"github.com/nathoo/actioncore/types"
)

// AmbiguityError indicates multiple actions matched a name.
type AmbiguityError struct {
	Name       string
	Candidates []string
}

func (e *AmbiguityError) Error() string {
	names := strings.Join(e.Candidates, ", ")
	return fmt.Sprintf("which %s? (%s)", e.Name, names)
}

// NotFoundError indicates no action matched a name.
type NotFoundError struct {
	Name string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("no action matches %q", e.Name)
}

// Action resolves a name to an action. The name may be the rule name, the
// UI name, a snake_case form of either, or enough leading letters of each
// word to single one action out.
func Action(c *actions.Catalog, name string) (*actions.Action, error) {
	// 1. Exact rule name.
	if a, ok := c.ByRuleName(name); ok {
		return a, nil
	}

	all := c.All()
	names := make([][]string, len(all))
	for i, a := range all {
		names[i] = []string{a.RuleName, a.UIName}
	}
	i, err := pick(name, names, func(i int) string { return all[i].RuleName })
	if err != nil {
		return nil, err
	}
	return all[i], nil
}

// Result resolves a name to an action result the same way Action does.
func Result(name string) (types.ActionResult, error) {
	names := make([][]string, types.ResultCount)
	for r := types.ActionResult(0); r < types.ResultCount; r++ {
		names[r] = []string{actions.ResultName(r)}
	}
	i, err := pick(name, names, func(i int) string { return actions.ResultName(types.ActionResult(i)) })
	if err != nil {
		return 0, err
	}
	return types.ActionResult(i), nil
}

// pick returns the index of the single entry of names that matches query.
// Each entry lists the alternative names of one candidate.
func pick(query string, names [][]string, label func(int) string) (int, error) {
	q := normalize(query)
	if q == "" {
		return 0, &NotFoundError{Name: query}
	}

	// 2. Exact match on any name, after normalization.
	for i, alts := range names {
		for _, n := range alts {
			if normalize(n) == q {
				return i, nil
			}
		}
	}

	// 3. Word prefix match: every query word starts a word of the name,
	// in order.
	var matches []int
	for i, alts := range names {
		for _, n := range alts {
			if wordPrefixMatch(strings.Fields(q), strings.Fields(normalize(n))) {
				matches = append(matches, i)
				break
			}
		}
	}

	switch len(matches) {
	case 0:
		return 0, &NotFoundError{Name: query}
	case 1:
		return matches[0], nil
	default:
		candidates := make([]string, len(matches))
		for j, i := range matches {
			candidates[j] = label(i)
		}
		return 0, &AmbiguityError{Name: query, Candidates: candidates}
	}
}

// normalize lower-cases s and turns underscores, hyphens and runs of
// spaces into single spaces. e.g. "Bribe_Unit" becomes "bribe unit".
func normalize(s string) string {
	s = strings.ToLower(s)
	s = strings.NewReplacer("_", " ", "-", " ", "(", " ", ")", " ").Replace(s)
	return strings.Join(strings.Fields(s), " ")
}

// wordPrefixMatch reports whether each query word is a prefix of a name
// word, with the name words consumed in order.
func wordPrefixMatch(query, name []string) bool {
	j := 0
	for _, w := range query {
		for j < len(name) && !strings.HasPrefix(name[j], w) {
			j++
		}
		if j == len(name) {
			return false
		}
		j++
	}
	return true
}
