// Package substitution builds and applies the ordered old→new rule set
// derived from every case style of two names.
package substitution

import (
	"sort"

	"github.com/arthur-debert/liscaf/pkg/casing"
	"github.com/arthur-debert/liscaf/pkg/errors"
	"github.com/arthur-debert/liscaf/pkg/logging"
)

// Rule is one literal substitution tagged with the style it came from
type Rule struct {
	Style       casing.CaseStyle `json:"style"`
	Pattern     string           `json:"pattern"`
	Replacement string           `json:"replacement"`

	rank int
}

// Plan is an ordered rule set. Rules are sorted by descending pattern
// length, ties broken by style priority. Build plans with BuildPlan or
// NewPlan; a zero Plan has no rules and rewrites nothing.
type Plan struct {
	OldName string `json:"old_name"`
	NewName string `json:"new_name"`
	Rules   []Rule `json:"rules"`

	// Degraded is set when one of the names produced no words and the plan
	// fell back to a single literal raw substitution.
	Degraded bool `json:"degraded"`

	index map[byte][]int
}

// BuildPlan derives both names with table and pairs up identical styles.
// Pairs whose forms are equal are dropped but still claim their pattern,
// so a lower priority style can never turn an unchanged form into a
// changed one.
func BuildPlan(table casing.Table, oldName, newName string) (*Plan, error) {
	logger := logging.GetLogger("substitution.plan")

	oldV, err := table.Derive(oldName)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrConfiguration, "invalid template base name")
	}
	newV, err := table.Derive(newName)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrConfiguration, "invalid new project name")
	}

	styles := table.Styles()
	degraded := oldV.Degenerate() || newV.Degenerate()
	if degraded {
		logger.Warn().
			Str("old", oldV.Name).
			Str("new", newV.Name).
			Msg("Name has no words, falling back to a literal raw substitution")
		styles = []casing.CaseStyle{casing.Raw}
	}

	var rules []Rule
	claimed := make(map[string]bool)
	for _, style := range styles {
		pattern, replacement := oldV.Form(style), newV.Form(style)
		if pattern == "" || replacement == "" || claimed[pattern] {
			continue
		}
		claimed[pattern] = true
		if pattern == replacement {
			logger.Trace().Str("style", string(style)).Str("form", pattern).Msg("Dropping no-op rule")
			continue
		}
		rules = append(rules, Rule{
			Style:       style,
			Pattern:     pattern,
			Replacement: replacement,
			rank:        table.Priority(style),
		})
	}

	plan := NewPlan(rules)
	plan.OldName = oldV.Name
	plan.NewName = newV.Name
	plan.Degraded = degraded

	logger.Debug().
		Str("old", plan.OldName).
		Str("new", plan.NewName).
		Int("rules", len(plan.Rules)).
		Bool("degraded", degraded).
		Msg("Substitution plan built")

	return plan, nil
}

// NewPlan sorts rules and prepares them for scanning. Rules with an empty
// pattern are discarded, and of several rules sharing a pattern only the
// highest priority one (first in input order on equal rank) is kept.
func NewPlan(rules []Rule) *Plan {
	kept := make([]Rule, 0, len(rules))
	for _, r := range rules {
		if r.Pattern == "" {
			continue
		}
		dup := false
		for j := range kept {
			if kept[j].Pattern == r.Pattern {
				dup = true
				if r.rank < kept[j].rank {
					kept[j] = r
				}
				break
			}
		}
		if !dup {
			kept = append(kept, r)
		}
	}

	sort.SliceStable(kept, func(i, j int) bool {
		if len(kept[i].Pattern) != len(kept[j].Pattern) {
			return len(kept[i].Pattern) > len(kept[j].Pattern)
		}
		return kept[i].rank < kept[j].rank
	})

	index := make(map[byte][]int)
	for i, r := range kept {
		index[r.Pattern[0]] = append(index[r.Pattern[0]], i)
	}

	return &Plan{Rules: kept, index: index}
}

// Reverse returns the plan that maps new forms back to old forms
func (p *Plan) Reverse() *Plan {
	rules := make([]Rule, 0, len(p.Rules))
	for _, r := range p.Rules {
		rules = append(rules, Rule{
			Style:       r.Style,
			Pattern:     r.Replacement,
			Replacement: r.Pattern,
			rank:        r.rank,
		})
	}
	// Restore priority order before deduplication so the same style wins
	// as in the forward direction.
	sort.SliceStable(rules, func(i, j int) bool { return rules[i].rank < rules[j].rank })

	reversed := NewPlan(rules)
	reversed.OldName = p.NewName
	reversed.NewName = p.OldName
	reversed.Degraded = p.Degraded
	return reversed
}

// Empty reports whether the plan rewrites nothing
func (p *Plan) Empty() bool {
	return p == nil || len(p.Rules) == 0
}
