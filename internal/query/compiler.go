package query

import "strings"

// Compiled is the result of turning Criteria into query fragments. Where and
// Args (likewise Having and HavingArgs) are appended in lockstep: the n-th
// `?` placeholder across the joined clauses binds the n-th argument. Clause
// text is fixed at compile time; caller values only ever travel as bound
// parameters.
type Compiled struct {
	Where      []string
	WhereArgs  []any
	Having     []string
	HavingArgs []any
}

// clauseSpec ties one criteria field to exactly one predicate. The expr is a
// fixed template; extract pulls the bound value out of the criteria, or
// reports false when the field is absent. Aggregate clauses apply to the
// session-level HAVING set instead of the per-row WHERE set.
type clauseSpec struct {
	expr      string
	aggregate bool
	extract   func(Criteria) (any, bool)
}

var clauses = []clauseSpec{
	{
		expr: "json_extract(metadata, '$.agent_name') = ?",
		extract: func(c Criteria) (any, bool) {
			return c.AgentName, c.AgentName != ""
		},
	},
	{
		expr: "user_id = ?",
		extract: func(c Criteria) (any, bool) {
			return c.UserID, c.UserID != ""
		},
	},
	{
		expr: "model = ?",
		extract: func(c Criteria) (any, bool) {
			return c.Model, c.Model != ""
		},
	},
	{
		expr: "start_time >= ?",
		extract: func(c Criteria) (any, bool) {
			if c.StartDate == nil {
				return nil, false
			}
			return FormatTime(*c.StartDate), true
		},
	},
	{
		expr: "start_time <= ?",
		extract: func(c Criteria) (any, bool) {
			if c.EndDate == nil {
				return nil, false
			}
			return FormatTime(*c.EndDate), true
		},
	},
	{
		expr:      "SUM(cost) >= ?",
		aggregate: true,
		extract: func(c Criteria) (any, bool) {
			if c.MinCost == nil {
				return nil, false
			}
			return *c.MinCost, true
		},
	},
	{
		expr:      "SUM(cost) <= ?",
		aggregate: true,
		extract: func(c Criteria) (any, bool) {
			if c.MaxCost == nil {
				return nil, false
			}
			return *c.MaxCost, true
		},
	},
}

// Compile walks the fixed clause table and emits predicates for the fields
// present in c. Empty criteria compile to empty predicate sets, which join to
// an always-true clause: a full scan is a valid query, not an error.
func Compile(c Criteria) Compiled {
	var out Compiled
	for _, spec := range clauses {
		arg, ok := spec.extract(c)
		if !ok {
			continue
		}
		if spec.aggregate {
			out.Having = append(out.Having, spec.expr)
			out.HavingArgs = append(out.HavingArgs, arg)
		} else {
			out.Where = append(out.Where, spec.expr)
			out.WhereArgs = append(out.WhereArgs, arg)
		}
	}
	return out
}

// Join ANDs a predicate set into one clause body, or "1=1" when the set is
// empty so callers can splice it into a fixed query skeleton unconditionally.
func Join(conds []string) string {
	if len(conds) == 0 {
		return "1=1"
	}
	return strings.Join(conds, " AND ")
}
